// Package calendar builds the dates and day labels of a month view.
package calendar

import (
	"fmt"
	"time"

	apperrors "library/pkg/errors"
)

const (
	LocaleJapanese = "ja"
	LocaleEnglish  = "en"
)

var weekdayLabels = map[string][7]string{
	LocaleJapanese: {"日", "月", "火", "水", "木", "金", "土"},
	LocaleEnglish:  {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}

// DaysIn returns the number of days of month in year.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func Validate(year, month, daysInMonth int) error {
	if year < 1 || year > 9999 {
		return apperrors.InvalidInput(fmt.Sprintf("year must be between 1 and 9999, got: %d", year))
	}
	if month < 1 || month > 12 {
		return apperrors.InvalidInput(fmt.Sprintf("month must be between 1 and 12, got: %d", month))
	}
	if last := DaysIn(year, month); daysInMonth < 1 || daysInMonth > last {
		return apperrors.InvalidInput(fmt.Sprintf("days in month must be between 1 and %d for %04d-%02d, got: %d", last, year, month, daysInMonth))
	}
	return nil
}

// Date returns midnight of the given day in loc.
func Date(year, month, day int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

type Formatter struct {
	labels [7]string
	loc    *time.Location
}

func NewFormatter(locale string, loc *time.Location) (*Formatter, error) {
	labels, ok := weekdayLabels[locale]
	if !ok {
		return nil, fmt.Errorf("unsupported calendar locale: %q", locale)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{labels: labels, loc: loc}, nil
}

func (f *Formatter) Location() *time.Location {
	return f.loc
}

// DaysOfWeek returns one "DD(W)" label per day, e.g. "01(木)".
func (f *Formatter) DaysOfWeek(year, month, daysInMonth int) ([]string, error) {
	if err := Validate(year, month, daysInMonth); err != nil {
		return nil, err
	}

	labels := make([]string, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := Date(year, month, day, f.loc)
		labels = append(labels, fmt.Sprintf("%02d(%s)", day, f.labels[date.Weekday()]))
	}
	return labels, nil
}
