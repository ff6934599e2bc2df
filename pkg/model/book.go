package model

// Book is a catalog entry. The stock service only reads it.
type Book struct {
	ID    int64  `json:"id" bson:"_id" db:"id"`
	Title string `json:"title" bson:"title" db:"title"`
}
