package repository

import (
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeToString_KeepsNanosAndSortsLexically(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	times := []time.Time{
		base.Add(time.Second),
		base.Add(120 * time.Millisecond),
		base,
		base.Add(123456789),
	}

	stored := make([]string, len(times))
	for i, tm := range times {
		stored[i] = timeToString(tm)
	}
	sort.Strings(stored)
	assert.Equal(t, []string{
		"2026-05-01T10:00:00.000000000Z",
		"2026-05-01T10:00:00.120000000Z",
		"2026-05-01T10:00:00.123456789Z",
		"2026-05-01T10:00:01.000000000Z",
	}, stored)

	got, err := parseTime("due_date", stored[2])
	require.NoError(t, err)
	assert.True(t, got.Equal(base.Add(123456789)))
}

func TestParseNullableTime_AcceptsSecondPrecisionRows(t *testing.T) {
	got := parseNullableTime(sql.NullString{String: "2026-05-01T10:00:00Z", Valid: true})
	require.NotNil(t, got)
	assert.True(t, got.Equal(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)))

	assert.Nil(t, parseNullableTime(sql.NullString{}))
}

func TestNullableTimeToString_StoresUTC(t *testing.T) {
	local := time.Date(2026, 5, 1, 12, 0, 0, 500_000_000, time.FixedZone("CEST", 2*60*60))
	assert.Equal(t, "2026-05-01T10:00:00.500000000Z", nullableTimeToString(&local))
	assert.Nil(t, nullableTimeToString(nil))
}
