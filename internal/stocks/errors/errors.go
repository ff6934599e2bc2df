package errors

import "errors"

var (
	ErrStockNotFound = errors.New("stock not found")

	ErrBookNotFound = errors.New("book not found")
)
