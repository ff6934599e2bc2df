//go:build integration

package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"library/internal/stocks/repository"
	"library/pkg/model"
)

const (
	DefaultMongoURI     = "mongodb://localhost:27017"
	DefaultDatabaseName = "library"
	ConnectionTimeout   = 10 * time.Second
)

type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
	DBName   string
}

func NewMongoHelper(t *testing.T, mongoURI, dbName string) *MongoHelper {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	return &MongoHelper{
		Client:   client,
		Database: client.Database(dbName),
		DBName:   dbName,
	}
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()
	if err := m.Client.Disconnect(ctx); err != nil {
		t.Errorf("failed to disconnect from MongoDB: %v", err)
	}
}

// CleanDatabase empties the collections but keeps their validators and indexes.
func (m *MongoHelper) CleanDatabase(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	for _, name := range []string{
		repository.RentalCollectionName,
		repository.StockCollectionName,
		repository.BookCollectionName,
	} {
		if _, err := m.Database.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			t.Fatalf("failed to clean %s: %v", name, err)
		}
	}
}

func (m *MongoHelper) InsertBooks(t *testing.T, books ...model.Book) {
	t.Helper()
	insertMany(t, m.Database.Collection(repository.BookCollectionName), books)
}

func (m *MongoHelper) InsertRentals(t *testing.T, rentals ...model.Rental) {
	t.Helper()
	insertMany(t, m.Database.Collection(repository.RentalCollectionName), rentals)
}

func (m *MongoHelper) CountDocuments(t *testing.T, collection string) int64 {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	count, err := m.Database.Collection(collection).CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("failed to count %s: %v", collection, err)
	}
	return count
}

func insertMany[T any](t *testing.T, coll *mongo.Collection, docs []T) {
	t.Helper()
	if len(docs) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	batch := make([]any, len(docs))
	for i := range docs {
		batch[i] = docs[i]
	}
	if _, err := coll.InsertMany(ctx, batch); err != nil {
		t.Fatalf("failed to insert into %s: %v", coll.Name(), err)
	}
}
