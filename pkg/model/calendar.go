package model

import "time"

type DailyAvailable struct {
	Date          time.Time `json:"date"`
	LendableCount int       `json:"lendable_count"`
	StockID       *string   `json:"stock_id"`
}

type CalendarSummary struct {
	Title       string           `json:"title"`
	TotalCount  int              `json:"total_count"`
	DailyDetail []DailyAvailable `json:"daily_detail"`
}

type Calendar struct {
	Year       int                `json:"year"`
	Month      int                `json:"month"`
	DaysOfWeek []string           `json:"days_of_week"`
	Values     []*CalendarSummary `json:"values"`
}
