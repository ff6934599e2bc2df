package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	stockerrors "library/internal/stocks/errors"
	"library/pkg/config"
	"library/pkg/model"
)

type mongoBookRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookRepository(cfg *config.Config) BookRepository {
	return &mongoBookRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(BookCollectionName),
	}
}

func (r *mongoBookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var book model.Book
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %d", stockerrors.ErrBookNotFound, id)
		}
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	return &book, nil
}

func (r *mongoBookRepository) FindAll(ctx context.Context) ([]*model.Book, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []*model.Book
	if err = cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}
	return books, nil
}
