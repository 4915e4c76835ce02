package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Integration tests against a real MongoDB.
//
//	GO_TEST_INTEGRATION=1 go test ./internal/db -v -count=1

type doc struct {
	ID      string    `bson:"_id"`
	Slug    string    `bson:"slug"`
	Title   string    `bson:"title"`
	Visible bool      `bson:"visible"`
	Created time.Time `bson:"created_at"`
}

func startMongo(t *testing.T) *mongo.Database {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "mongo:7.0",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	client, cols, err := Connect(ctx, fmt.Sprintf("mongodb://%s:%s", host, port.Port()), "cajj_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	require.NoError(t, EnsureIndexes(ctx, cols))

	return client.Database("cajj_test")
}

func TestIntegration_StoreCRUD(t *testing.T) {
	database := startMongo(t)
	ctx := context.Background()
	store := NewStore[doc](database.Collection("docs"))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Insert(ctx, doc{ID: "a", Title: "A", Visible: true, Created: base}))
	require.NoError(t, store.Insert(ctx, doc{ID: "b", Title: "B", Visible: false, Created: base.Add(time.Hour)}))

	items, err := store.Find(ctx, bson.M{}, bson.D{{Key: "created_at", Value: -1}})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)

	visible, err := store.Find(ctx, bson.M{"visible": true}, nil)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	updated, err := store.Set(ctx, bson.M{"_id": "a"}, bson.M{"title": "A2"})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Title)
	assert.True(t, updated.Visible)

	_, err = store.Set(ctx, bson.M{"_id": "zzz"}, bson.M{"title": "x"})
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	removed, err := store.Remove(ctx, bson.M{"_id": "b"})
	require.NoError(t, err)
	assert.Equal(t, "B", removed.Title)
	_, err = store.FindOne(ctx, bson.M{"_id": "b"})
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestIntegration_InsertIfMissingKeepsEdits(t *testing.T) {
	database := startMongo(t)
	ctx := context.Background()
	store := NewStore[doc](database.Collection("about_sections"))

	created, err := store.InsertIfMissing(ctx, bson.M{"slug": "vision"}, bson.M{"_id": "1", "slug": "vision", "title": "Notre vision"})
	require.NoError(t, err)
	assert.True(t, created)

	_, err = store.Set(ctx, bson.M{"slug": "vision"}, bson.M{"title": "Vision modifiée"})
	require.NoError(t, err)

	created, err = store.InsertIfMissing(ctx, bson.M{"slug": "vision"}, bson.M{"_id": "2", "slug": "vision", "title": "Notre vision"})
	require.NoError(t, err)
	assert.False(t, created)

	got, err := store.FindOne(ctx, bson.M{"slug": "vision"})
	require.NoError(t, err)
	assert.Equal(t, "Vision modifiée", got.Title)
}
