package repository

import (
	"context"
	"time"

	"library/pkg/config"
	"library/pkg/db"
	"library/pkg/model"
)

const (
	BookCollectionName   = "Book_mst"
	StockCollectionName  = "Stocks"
	RentalCollectionName = "Rental_manage"

	BookTableName   = "book_mst"
	StockTableName  = "stocks"
	RentalTableName = "rental_manage"
)

type BookRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	FindAll(ctx context.Context) ([]*model.Book, error)
}

type StockRepository interface {
	FindByID(ctx context.Context, id string) (*model.Stock, error)
	FindByDeletedAtIsNull(ctx context.Context) ([]*model.Stock, error)
	FindByDeletedAtIsNullAndStatus(ctx context.Context, status model.StockStatus) ([]*model.Stock, error)
	FindByBookIDAndStatus(ctx context.Context, bookID int64, status model.StockStatus) ([]*model.Stock, error)
	FindLendableOnDate(ctx context.Context, bookID int64, date time.Time) ([]model.LendableStock, error)
	Save(ctx context.Context, stock *model.Stock) error

	ExecuteTransaction(ctx context.Context, fn db.TransactionFunc) error
}

func NewBookRepository(cfg *config.Config) BookRepository {
	if cfg.StorageDriver == config.StoragePostgres {
		return NewPostgresBookRepository(cfg)
	}
	return NewMongoBookRepository(cfg)
}

func NewStockRepository(cfg *config.Config) StockRepository {
	if cfg.StorageDriver == config.StoragePostgres {
		return NewPostgresStockRepository(cfg)
	}
	return NewMongoStockRepository(cfg)
}

// withTimeout bounds ctx by timeout, keeping an earlier deadline if ctx has one.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
