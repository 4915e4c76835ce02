package news

import (
	"context"

	"cajj-backend/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	Create(ctx context.Context, item News) error
	Get(ctx context.Context, id string) (News, error)
	Update(ctx context.Context, id string, set bson.M) (News, error)
	Delete(ctx context.Context, id string) (News, error)
	List(ctx context.Context, visibleOnly bool) ([]News, error)
}

type MongoRepository struct {
	store *db.Store[News]
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{store: db.NewStore[News](col)}
}

func (r *MongoRepository) Create(ctx context.Context, item News) error {
	return r.store.Insert(ctx, item)
}

func (r *MongoRepository) Get(ctx context.Context, id string) (News, error) {
	return r.store.FindOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (News, error) {
	return r.store.Set(ctx, bson.M{"_id": id}, set)
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (News, error) {
	return r.store.Remove(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) List(ctx context.Context, visibleOnly bool) ([]News, error) {
	filter := bson.M{}
	if visibleOnly {
		filter["visible"] = true
	}
	return r.store.Find(ctx, filter, bson.D{
		{Key: "date", Value: -1},
		{Key: "created_at", Value: -1},
	})
}
