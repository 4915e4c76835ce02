package gallery

import (
	"context"

	"cajj-backend/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PhotoRepository interface {
	Create(ctx context.Context, item Photo) error
	Get(ctx context.Context, id string) (Photo, error)
	Update(ctx context.Context, id string, set bson.M) (Photo, error)
	Delete(ctx context.Context, id string) (Photo, error)
	List(ctx context.Context, visibleOnly bool) ([]Photo, error)
}

type VideoRepository interface {
	Create(ctx context.Context, item Video) error
	Get(ctx context.Context, id string) (Video, error)
	Update(ctx context.Context, id string, set bson.M) (Video, error)
	Delete(ctx context.Context, id string) (Video, error)
	List(ctx context.Context, visibleOnly bool) ([]Video, error)
}

// MongoRepository serves both photo and video collections; T selects which.
type MongoRepository[T Photo | Video] struct {
	store *db.Store[T]
}

func NewPhotoRepository(col *mongo.Collection) *MongoRepository[Photo] {
	return &MongoRepository[Photo]{store: db.NewStore[Photo](col)}
}

func NewVideoRepository(col *mongo.Collection) *MongoRepository[Video] {
	return &MongoRepository[Video]{store: db.NewStore[Video](col)}
}

func (r *MongoRepository[T]) Create(ctx context.Context, item T) error {
	return r.store.Insert(ctx, item)
}

func (r *MongoRepository[T]) Get(ctx context.Context, id string) (T, error) {
	return r.store.FindOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository[T]) Update(ctx context.Context, id string, set bson.M) (T, error) {
	return r.store.Set(ctx, bson.M{"_id": id}, set)
}

func (r *MongoRepository[T]) Delete(ctx context.Context, id string) (T, error) {
	return r.store.Remove(ctx, bson.M{"_id": id})
}

func (r *MongoRepository[T]) List(ctx context.Context, visibleOnly bool) ([]T, error) {
	filter := bson.M{}
	if visibleOnly {
		filter["visible"] = true
	}
	return r.store.Find(ctx, filter, bson.D{{Key: "created_at", Value: -1}})
}
