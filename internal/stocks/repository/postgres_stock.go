package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	stockerrors "library/internal/stocks/errors"
	"library/pkg/config"
	"library/pkg/db"
	"library/pkg/db/postgres"
	"library/pkg/model"
)

type postgresStockRepository struct {
	cfg       *config.Config
	db        *sqlx.DB
	txManager db.TransactionManager
}

func NewPostgresStockRepository(cfg *config.Config) StockRepository {
	return &postgresStockRepository{
		cfg:       cfg,
		db:        cfg.Client.Postgres,
		txManager: postgres.NewTransactionManager(cfg.Client.Postgres),
	}
}

func (r *postgresStockRepository) ExecuteTransaction(ctx context.Context, fn db.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *postgresStockRepository) FindByID(ctx context.Context, id string) (*model.Stock, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query, args, err := pgDialect.From(StockTableName).
		Select(stockColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build stock query: %w", err)
	}

	var stock model.Stock
	if err := sqlx.GetContext(ctx, postgres.QueryerFromContext(ctx, r.db), &stock, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", stockerrors.ErrStockNotFound, id)
		}
		return nil, fmt.Errorf("failed to find stock: %w", err)
	}
	return &stock, nil
}

func (r *postgresStockRepository) FindByDeletedAtIsNull(ctx context.Context) ([]*model.Stock, error) {
	return r.find(ctx, goqu.C("deleted_at").IsNull())
}

func (r *postgresStockRepository) FindByDeletedAtIsNullAndStatus(ctx context.Context, status model.StockStatus) ([]*model.Stock, error) {
	return r.find(ctx,
		goqu.C("deleted_at").IsNull(),
		goqu.C("status").Eq(status),
	)
}

func (r *postgresStockRepository) FindByBookIDAndStatus(ctx context.Context, bookID int64, status model.StockStatus) ([]*model.Stock, error) {
	return r.find(ctx,
		goqu.C("deleted_at").IsNull(),
		goqu.C("book_id").Eq(bookID),
		goqu.C("status").Eq(status),
	)
}

func (r *postgresStockRepository) find(ctx context.Context, where ...exp.Expression) ([]*model.Stock, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query, args, err := pgDialect.From(StockTableName).
		Select(stockColumns...).
		Where(where...).
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build stocks query: %w", err)
	}

	stocks := make([]*model.Stock, 0)
	if err := sqlx.SelectContext(ctx, postgres.QueryerFromContext(ctx, r.db), &stocks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	return stocks, nil
}

func (r *postgresStockRepository) FindLendableOnDate(ctx context.Context, bookID int64, date time.Time) ([]model.LendableStock, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query, args, err := buildLendableQuery(bookID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to build lendable query: %w", err)
	}

	lendable := make([]model.LendableStock, 0)
	if err := sqlx.SelectContext(ctx, postgres.QueryerFromContext(ctx, r.db), &lendable, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query lendable stocks: %w", err)
	}
	return lendable, nil
}

// buildLendableQuery compares against date columns using the calendar day of date,
// independent of the session time zone.
func buildLendableQuery(bookID int64, date time.Time) (string, []any, error) {
	day := goqu.L("?::date", date.Format(time.DateOnly))

	statuses := make([]any, len(model.ActiveRentalStatuses))
	for i, s := range model.ActiveRentalStatuses {
		statuses[i] = int(s)
	}

	activeRental := pgDialect.From(goqu.T(RentalTableName).As("r")).
		Select(goqu.L("1")).
		Where(
			goqu.I("r.stock_id").Eq(goqu.I("s.id")),
			goqu.I("r.status").In(statuses...),
			goqu.I("r.expected_rental_on").Lte(day),
			goqu.I("r.expected_return_on").Gte(day),
		)

	return pgDialect.From(goqu.T(StockTableName).As("s")).
		Select(goqu.I("s.id")).
		Where(
			goqu.I("s.book_id").Eq(bookID),
			goqu.I("s.status").Eq(int(model.StockAvailable)),
			goqu.I("s.deleted_at").IsNull(),
			goqu.L("NOT EXISTS ?", activeRental),
		).
		Order(goqu.I("s.id").Asc()).
		Prepared(true).
		ToSQL()
}

// Save upserts stock by id.
func (r *postgresStockRepository) Save(ctx context.Context, stock *model.Stock) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Microsecond)
	if stock.CreatedAt.IsZero() {
		stock.CreatedAt = now
	}
	stock.UpdatedAt = now

	query, args, err := pgDialect.Insert(StockTableName).
		Rows(goqu.Record{
			"id":         stock.ID,
			"book_id":    stock.BookID,
			"status":     int(stock.Status),
			"price":      stock.Price,
			"created_at": stock.CreatedAt,
			"updated_at": stock.UpdatedAt,
			"deleted_at": stock.DeletedAt,
		}).
		OnConflict(goqu.DoUpdate("id", goqu.Record{
			"book_id":    goqu.L("EXCLUDED.book_id"),
			"status":     goqu.L("EXCLUDED.status"),
			"price":      goqu.L("EXCLUDED.price"),
			"updated_at": goqu.L("EXCLUDED.updated_at"),
			"deleted_at": goqu.L("EXCLUDED.deleted_at"),
		})).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build stock upsert: %w", err)
	}

	if _, err := postgres.QueryerFromContext(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save stock: %w", err)
	}
	return nil
}
