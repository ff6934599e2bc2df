package model

import "time"

type StockStatus int

const (
	StockAvailable   StockStatus = 0
	StockUnavailable StockStatus = 1
)

func (s StockStatus) String() string {
	switch s {
	case StockAvailable:
		return "available"
	case StockUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Stock is one physical copy of a book.
type Stock struct {
	ID        string      `json:"id" bson:"_id" db:"id"`
	BookID    int64       `json:"book_id" bson:"book_id" db:"book_id"`
	Status    StockStatus `json:"status" bson:"status" db:"status"`
	Price     int         `json:"price" bson:"price" db:"price"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at" db:"updated_at"`
	DeletedAt *time.Time  `json:"deleted_at,omitempty" bson:"deleted_at" db:"deleted_at"`
}

type StockRequest struct {
	ID     string      `json:"id,omitempty" validate:"omitempty,max=64"`
	BookID int64       `json:"book_id" validate:"required,gt=0"`
	Status StockStatus `json:"status" validate:"oneof=0 1"`
	Price  int         `json:"price" validate:"min=0"`
}

// LendableStock is a row of the per-day availability query.
type LendableStock struct {
	StockID string `json:"stock_id" bson:"_id" db:"id"`
}
