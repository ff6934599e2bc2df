package db

import "context"

// TransactionFunc runs inside a store transaction. ctx carries the session or tx;
// repositories must use it for every call that belongs to the unit of work.
type TransactionFunc func(ctx context.Context) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}
