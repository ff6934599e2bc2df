package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"library/pkg/db"
)

type txKey struct{}

type postgresTransactionManager struct {
	db *sqlx.DB
}

func NewTransactionManager(conn *sqlx.DB) db.TransactionManager {
	return &postgresTransactionManager{
		db: conn,
	}
}

// ExecuteTransaction commits when fn succeeds and rolls back otherwise. fn's error is
// returned unchanged. A nested call joins the outer transaction.
func (m *postgresTransactionManager) ExecuteTransaction(ctx context.Context, fn db.TransactionFunc) (err error) {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if fnErr := fn(context.WithValue(ctx, txKey{}, tx)); fnErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, context.Canceled) {
			return errors.Join(fnErr, fmt.Errorf("rollback failed: %w", rbErr))
		}
		return fnErr
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func TxFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx, ok
}

// Queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type Queryer interface {
	sqlx.ExtContext
}

// QueryerFromContext returns the transaction in ctx, or conn when there is none.
func QueryerFromContext(ctx context.Context, conn *sqlx.DB) Queryer {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return conn
}
