package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	stockerrors "library/internal/stocks/errors"
	"library/pkg/config"
	"library/pkg/db"
	mongotx "library/pkg/db/mongo"
	"library/pkg/model"
)

type mongoStockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	rentals    *mongo.Collection
	txManager  db.TransactionManager
}

func NewMongoStockRepository(cfg *config.Config) StockRepository {
	database := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoStockRepository{
		cfg:        cfg,
		collection: database.Collection(StockCollectionName),
		rentals:    database.Collection(RentalCollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoStockRepository) ExecuteTransaction(ctx context.Context, fn db.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *mongoStockRepository) FindByID(ctx context.Context, id string) (*model.Stock, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var stock model.Stock
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&stock)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", stockerrors.ErrStockNotFound, id)
		}
		return nil, fmt.Errorf("failed to find stock: %w", err)
	}
	return &stock, nil
}

func (r *mongoStockRepository) FindByDeletedAtIsNull(ctx context.Context) ([]*model.Stock, error) {
	return r.find(ctx, bson.M{"deleted_at": nil})
}

func (r *mongoStockRepository) FindByDeletedAtIsNullAndStatus(ctx context.Context, status model.StockStatus) ([]*model.Stock, error) {
	return r.find(ctx, bson.M{"deleted_at": nil, "status": status})
}

func (r *mongoStockRepository) FindByBookIDAndStatus(ctx context.Context, bookID int64, status model.StockStatus) ([]*model.Stock, error) {
	return r.find(ctx, bson.M{"deleted_at": nil, "book_id": bookID, "status": status})
}

func (r *mongoStockRepository) find(ctx context.Context, filter bson.M) ([]*model.Stock, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	defer cursor.Close(ctx)

	stocks := make([]*model.Stock, 0)
	if err = cursor.All(ctx, &stocks); err != nil {
		return nil, fmt.Errorf("failed to decode stocks: %w", err)
	}
	return stocks, nil
}

// FindLendableOnDate lists the available copies of bookID that no pending or active
// rental covers on date, ordered by stock id.
func (r *mongoStockRepository) FindLendableOnDate(ctx context.Context, bookID int64, date time.Time) ([]model.LendableStock, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	filter := bson.M{"deleted_at": nil, "book_id": bookID, "status": model.StockAvailable}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query lendable stocks: %w", err)
	}
	defer cursor.Close(ctx)

	var candidates []model.LendableStock
	if err = cursor.All(ctx, &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode lendable stocks: %w", err)
	}
	if len(candidates) == 0 {
		return []model.LendableStock{}, nil
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.StockID
	}

	// Rental dates are stored as UTC midnight of the calendar day.
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	rented, err := r.rentals.Distinct(ctx, "stock_id", bson.M{
		"stock_id":           bson.M{"$in": ids},
		"status":             bson.M{"$in": model.ActiveRentalStatuses},
		"expected_rental_on": bson.M{"$lte": day},
		"expected_return_on": bson.M{"$gte": day},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query rentals: %w", err)
	}

	blocked := make(map[string]struct{}, len(rented))
	for _, v := range rented {
		if id, ok := v.(string); ok {
			blocked[id] = struct{}{}
		}
	}

	lendable := make([]model.LendableStock, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := blocked[c.StockID]; !ok {
			lendable = append(lendable, c)
		}
	}
	return lendable, nil
}

// Save upserts stock by id.
func (r *mongoStockRepository) Save(ctx context.Context, stock *model.Stock) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	if stock.CreatedAt.IsZero() {
		stock.CreatedAt = now
	}
	stock.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": stock.ID}, stock, opts); err != nil {
		return fmt.Errorf("failed to save stock: %w", err)
	}
	return nil
}
