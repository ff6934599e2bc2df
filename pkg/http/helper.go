package http

import (
	"net/http"
	"strconv"
	"time"

	apperrors "library/pkg/errors"
)

// ExtractYearMonth reads the year and month query parameters. Missing values
// default to the current month in loc.
func ExtractYearMonth(r *http.Request, loc *time.Location) (int, int, error) {
	query := r.URL.Query()
	now := time.Now().In(loc)

	year := now.Year()
	if s := query.Get("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid year parameter: " + s)
		}
		year = v
	}

	month := int(now.Month())
	if s := query.Get("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid month parameter: " + s)
		}
		month = v
	}

	return year, month, nil
}

// ExtractBool reads a boolean query parameter; absent means false.
func ExtractBool(r *http.Request, name string) (bool, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, apperrors.InvalidInput("invalid " + name + " parameter: " + s)
	}
	return v, nil
}
