package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps one collection of T documents. Lookups that match nothing
// return mongo.ErrNoDocuments.
type Store[T any] struct {
	col *mongo.Collection
}

func NewStore[T any](col *mongo.Collection) *Store[T] {
	return &Store[T]{col: col}
}

func (s *Store[T]) Collection() *mongo.Collection {
	return s.col
}

func (s *Store[T]) Insert(ctx context.Context, item T) error {
	_, err := s.col.InsertOne(ctx, item)
	return err
}

func (s *Store[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var item T
	err := s.col.FindOne(ctx, filter).Decode(&item)
	return item, err
}

// Set applies a $set to the first match and returns the updated document.
func (s *Store[T]) Set(ctx context.Context, filter bson.M, set bson.M) (T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated T
	err := s.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	return updated, err
}

// Remove deletes the first match and returns the document as it was.
func (s *Store[T]) Remove(ctx context.Context, filter bson.M) (T, error) {
	var deleted T
	err := s.col.FindOneAndDelete(ctx, filter).Decode(&deleted)
	return deleted, err
}

func (s *Store[T]) Find(ctx context.Context, filter bson.M, sort bson.D) ([]T, error) {
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// InsertIfMissing upserts with $setOnInsert so an existing document is left
// untouched. It reports whether a document was created.
func (s *Store[T]) InsertIfMissing(ctx context.Context, filter bson.M, doc bson.M) (bool, error) {
	res, err := s.col.UpdateOne(ctx, filter, bson.M{"$setOnInsert": doc}, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}
