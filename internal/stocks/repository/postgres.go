package repository

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

const dialectPostgres = "postgres"

var pgDialect = goqu.Dialect(dialectPostgres)

var stockColumns = []any{"id", "book_id", "status", "price", "created_at", "updated_at", "deleted_at"}
