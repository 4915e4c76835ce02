package documentations

import (
	"context"

	"cajj-backend/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	Create(ctx context.Context, item Documentation) error
	Get(ctx context.Context, id string) (Documentation, error)
	Update(ctx context.Context, id string, set bson.M) (Documentation, error)
	Delete(ctx context.Context, id string) (Documentation, error)
	List(ctx context.Context, visibleOnly bool) ([]Documentation, error)
}

type MongoRepository struct {
	store *db.Store[Documentation]
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{store: db.NewStore[Documentation](col)}
}

func (r *MongoRepository) Create(ctx context.Context, item Documentation) error {
	return r.store.Insert(ctx, item)
}

func (r *MongoRepository) Get(ctx context.Context, id string) (Documentation, error) {
	return r.store.FindOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Documentation, error) {
	return r.store.Set(ctx, bson.M{"_id": id}, set)
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (Documentation, error) {
	return r.store.Remove(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) List(ctx context.Context, visibleOnly bool) ([]Documentation, error) {
	filter := bson.M{}
	if visibleOnly {
		filter["visible"] = true
	}
	return r.store.Find(ctx, filter, bson.D{{Key: "created_at", Value: -1}})
}
