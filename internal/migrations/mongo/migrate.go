package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"library/internal/migrations/mongo/validators"
	"library/internal/stocks/repository"
	"library/pkg/logger"
)

var (
	StocksIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "deleted_at", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{
			{Key: "book_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "deleted_at", Value: 1},
		}},
	}

	RentalsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "stock_id", Value: 1},
			{Key: "status", Value: 1},
			{Key: "expected_rental_on", Value: 1},
			{Key: "expected_return_on", Value: 1},
		}},
	}
)

type collectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	collections := []collectionDef{
		{Name: repository.BookCollectionName, Validator: validators.BookValidator},
		{Name: repository.StockCollectionName, Indexes: StocksIndexes, Validator: validators.StockValidator},
		{Name: repository.RentalCollectionName, Indexes: RentalsIndexes, Validator: validators.RentalValidator},
	}

	for _, def := range collections {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if len(def.Indexes) == 0 {
			continue
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All Mongo migrations applied")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
