package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	stockerrors "library/internal/stocks/errors"
	"library/pkg/config"
	"library/pkg/db/postgres"
	"library/pkg/model"
)

type postgresBookRepository struct {
	cfg *config.Config
	db  *sqlx.DB
}

func NewPostgresBookRepository(cfg *config.Config) BookRepository {
	return &postgresBookRepository{
		cfg: cfg,
		db:  cfg.Client.Postgres,
	}
}

func (r *postgresBookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query, args, err := pgDialect.From(BookTableName).
		Select("id", "title").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build book query: %w", err)
	}

	var book model.Book
	if err := sqlx.GetContext(ctx, postgres.QueryerFromContext(ctx, r.db), &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", stockerrors.ErrBookNotFound, id)
		}
		return nil, fmt.Errorf("failed to find book: %w", err)
	}
	return &book, nil
}

func (r *postgresBookRepository) FindAll(ctx context.Context) ([]*model.Book, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query, args, err := pgDialect.From(BookTableName).
		Select("id", "title").
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build books query: %w", err)
	}

	books := make([]*model.Book, 0)
	if err := sqlx.SelectContext(ctx, postgres.QueryerFromContext(ctx, r.db), &books, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	return books, nil
}
