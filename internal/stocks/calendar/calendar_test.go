package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "library/pkg/errors"
)

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2024, 1, 31},
		{2024, 2, 29},
		{2023, 2, 28},
		{1900, 2, 28},
		{2000, 2, 29},
		{2024, 4, 30},
		{2024, 12, 31},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysIn(tt.year, tt.month), "%04d-%02d", tt.year, tt.month)
	}
}

func TestFormatter_DaysOfWeek_Japanese(t *testing.T) {
	f, err := NewFormatter(LocaleJapanese, time.UTC)
	require.NoError(t, err)

	labels, err := f.DaysOfWeek(2024, 2, 29)
	require.NoError(t, err)

	require.Len(t, labels, 29)
	assert.Equal(t, "01(木)", labels[0])
	assert.Equal(t, "04(日)", labels[3])
	assert.Equal(t, "29(木)", labels[28])
}

func TestFormatter_DaysOfWeek_English(t *testing.T) {
	f, err := NewFormatter(LocaleEnglish, time.UTC)
	require.NoError(t, err)

	labels, err := f.DaysOfWeek(2025, 6, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"01(Sun)", "02(Mon)", "03(Tue)"}, labels)
}

func TestFormatter_DaysOfWeek_LengthMatchesEveryMonth(t *testing.T) {
	f, err := NewFormatter(LocaleJapanese, time.UTC)
	require.NoError(t, err)

	for month := 1; month <= 12; month++ {
		days := DaysIn(2023, month)
		labels, err := f.DaysOfWeek(2023, month, days)
		require.NoError(t, err)
		assert.Len(t, labels, days, "month %d", month)
	}
}

func TestFormatter_DaysOfWeek_UsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	f, err := NewFormatter(LocaleEnglish, tokyo)
	require.NoError(t, err)

	labels, err := f.DaysOfWeek(2024, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"01(Mon)"}, labels)
}

func TestFormatter_DaysOfWeek_InvalidInput(t *testing.T) {
	f, err := NewFormatter(LocaleJapanese, nil)
	require.NoError(t, err)

	tests := []struct {
		name                     string
		year, month, daysInMonth int
	}{
		{"month zero", 2024, 0, 10},
		{"month thirteen", 2024, 13, 10},
		{"zero days", 2024, 5, 0},
		{"february overflow", 2023, 2, 29},
		{"april overflow", 2024, 4, 31},
		{"year zero", 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels, err := f.DaysOfWeek(tt.year, tt.month, tt.daysInMonth)
			require.Error(t, err)
			assert.Nil(t, labels)

			appErr := apperrors.AsAppError(err)
			assert.Equal(t, apperrors.CodeInvalidInput, appErr.Code)
		})
	}
}

func TestNewFormatter_UnsupportedLocale(t *testing.T) {
	_, err := NewFormatter("fr", time.UTC)
	assert.Error(t, err)
}

func TestDate(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	d := Date(2024, 3, 15, tokyo)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, tokyo, d.Location())
}
