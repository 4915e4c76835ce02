package actions

import (
	"context"
	"time"

	"cajj-backend/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	List(ctx context.Context) ([]Action, error)
	Update(ctx context.Context, actionID string, set bson.M) (Action, error)
	// SetOrder assigns order values by slug in a single write.
	SetOrder(ctx context.Context, orders map[string]int, at time.Time) error
	Seed(ctx context.Context, a Action) (bool, error)
}

type MongoRepository struct {
	store *db.Store[Action]
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{store: db.NewStore[Action](col)}
}

func (r *MongoRepository) List(ctx context.Context) ([]Action, error) {
	return r.store.Find(ctx, bson.M{}, bson.D{
		{Key: "order", Value: 1},
		{Key: "action_id", Value: 1},
	})
}

func (r *MongoRepository) Update(ctx context.Context, actionID string, set bson.M) (Action, error) {
	return r.store.Set(ctx, bson.M{"action_id": actionID}, set)
}

func (r *MongoRepository) SetOrder(ctx context.Context, orders map[string]int, at time.Time) error {
	if len(orders) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(orders))
	for actionID, order := range orders {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"action_id": actionID}).
			SetUpdate(bson.M{"$set": bson.M{"order": order, "updated_at": at}}))
	}
	_, err := r.store.Collection().BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

func (r *MongoRepository) Seed(ctx context.Context, a Action) (bool, error) {
	return r.store.InsertIfMissing(ctx, bson.M{"action_id": a.ActionID}, bson.M{
		"_id":         primitive.NewObjectID().Hex(),
		"action_id":   a.ActionID,
		"title":       a.Title,
		"description": a.Description,
		"order":       a.Order,
		"created_at":  a.CreatedAt,
		"updated_at":  a.UpdatedAt,
	})
}
