package model

import "time"

type RentalStatus int

const (
	RentalPending  RentalStatus = 0
	RentalRented   RentalStatus = 1
	RentalReturned RentalStatus = 2
	RentalCanceled RentalStatus = 3
)

// ActiveRentalStatuses block a copy from being lent on the dates they cover.
var ActiveRentalStatuses = []RentalStatus{RentalPending, RentalRented}

type Rental struct {
	ID               string       `json:"id" bson:"_id" db:"id"`
	StockID          string       `json:"stock_id" bson:"stock_id" db:"stock_id"`
	Status           RentalStatus `json:"status" bson:"status" db:"status"`
	ExpectedRentalOn time.Time    `json:"expected_rental_on" bson:"expected_rental_on" db:"expected_rental_on"`
	ExpectedReturnOn time.Time    `json:"expected_return_on" bson:"expected_return_on" db:"expected_return_on"`
}
