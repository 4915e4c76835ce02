package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collections struct {
	News           *mongo.Collection
	Photos         *mongo.Collection
	Videos         *mongo.Collection
	Publications   *mongo.Collection
	AboutSections  *mongo.Collection
	Actions        *mongo.Collection
	Documentations *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *Collections, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	return client, NewCollections(client.Database(dbName)), nil
}

func NewCollections(db *mongo.Database) *Collections {
	return &Collections{
		News:           db.Collection("news"),
		Photos:         db.Collection("photos"),
		Videos:         db.Collection("videos"),
		Publications:   db.Collection("publications"),
		AboutSections:  db.Collection("about_sections"),
		Actions:        db.Collection("actions"),
		Documentations: db.Collection("documentations"),
	}
}

func EnsureIndexes(ctx context.Context, cols *Collections) error {
	indexTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := cols.AboutSections.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "section_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	_, err = cols.Actions.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "action_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "order", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = cols.News.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "visible", Value: 1}, {Key: "date", Value: -1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = cols.Publications.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "type", Value: 1}, {Key: "visible", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return err
	}

	for _, col := range []*mongo.Collection{cols.Photos, cols.Videos, cols.Documentations} {
		_, err = col.Indexes().CreateOne(indexTimeout, mongo.IndexModel{
			Keys: bson.D{{Key: "visible", Value: 1}, {Key: "created_at", Value: -1}},
		})
		if err != nil {
			return err
		}
	}

	return nil
}
