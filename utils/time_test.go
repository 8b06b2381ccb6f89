package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

func TestParseDate(t *testing.T) {
	loc := kolkata(t)

	parsed, err := ParseDate("2026-09-01", loc)
	require.NoError(t, err)

	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.September, parsed.Month())
	assert.Equal(t, 1, parsed.Day())
	assert.Equal(t, loc, parsed.Location())
}

func TestParseDateRejectsGarbage(t *testing.T) {
	loc := kolkata(t)

	_, err := ParseDate("01/09/2026", loc)
	assert.Error(t, err)

	_, err = ParseDate("", loc)
	assert.Error(t, err)
}

func TestDateOfAlignsToLocalMidnight(t *testing.T) {
	loc := kolkata(t)

	// UTC 21:00 在加尔各答时间已是次日 02:30
	instant := time.Date(2026, 8, 31, 21, 0, 0, 0, time.UTC)
	day := DateOf(instant, loc)

	assert.Equal(t, 1, day.Day())
	assert.Equal(t, time.September, day.Month())
	assert.Equal(t, 0, day.Hour())
}

func TestFormatDateRoundTrip(t *testing.T) {
	loc := kolkata(t)

	day, err := ParseDate("2026-09-01", loc)
	require.NoError(t, err)

	assert.Equal(t, "2026-09-01", FormatDate(day))
}
