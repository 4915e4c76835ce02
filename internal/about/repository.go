package about

import (
	"context"

	"cajj-backend/internal/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	List(ctx context.Context) ([]Section, error)
	Update(ctx context.Context, sectionID string, set bson.M) (Section, error)
	// Seed inserts s unless a section with the same SectionID exists.
	Seed(ctx context.Context, s Section) (bool, error)
}

type MongoRepository struct {
	store *db.Store[Section]
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{store: db.NewStore[Section](col)}
}

func (r *MongoRepository) List(ctx context.Context) ([]Section, error) {
	return r.store.Find(ctx, bson.M{}, bson.D{
		{Key: "position", Value: 1},
		{Key: "section_id", Value: 1},
	})
}

func (r *MongoRepository) Update(ctx context.Context, sectionID string, set bson.M) (Section, error) {
	return r.store.Set(ctx, bson.M{"section_id": sectionID}, set)
}

func (r *MongoRepository) Seed(ctx context.Context, s Section) (bool, error) {
	return r.store.InsertIfMissing(ctx, bson.M{"section_id": s.SectionID}, bson.M{
		"_id":        primitive.NewObjectID().Hex(),
		"section_id": s.SectionID,
		"title":      s.Title,
		"content":    s.Content,
		"position":   s.Position,
		"created_at": s.CreatedAt,
		"updated_at": s.UpdatedAt,
	})
}
