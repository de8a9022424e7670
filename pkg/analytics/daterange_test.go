package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadpilot-inc/lead-engine/pkg/apperrors"
)

// reference instant: Wednesday, January 15, 2025 at 14:30 UTC.
func referenceWednesday() time.Time {
	return time.Date(2025, time.January, 15, 14, 30, 0, 0, time.UTC)
}

func TestResolveDateRange_Today(t *testing.T) {
	now := referenceWednesday()

	start, end, err := ResolveDateRange(RangeToday, now, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, now, end)
}

func TestResolveDateRange_ThisWeek_StartsOnSunday(t *testing.T) {
	now := referenceWednesday()

	start, end, err := ResolveDateRange(RangeThisWeek, now, time.UTC)
	require.NoError(t, err)

	// Most recent Sunday on/before Wednesday Jan 15 is Jan 12.
	assert.Equal(t, time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Weekday(0), start.Weekday())
	assert.Equal(t, now, end)
}

func TestResolveDateRange_LastWeek(t *testing.T) {
	now := referenceWednesday()

	start, end, err := ResolveDateRange(RangeLastWeek, now, time.UTC)
	require.NoError(t, err)

	// Last week runs Sunday Jan 5 through Saturday Jan 11 23:59:59.999.
	assert.Equal(t, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.January, 11, 23, 59, 59, int(999*time.Millisecond), time.UTC), end)
	assert.Equal(t, time.Saturday, end.Weekday())
}

func TestResolveDateRange_ThisMonth(t *testing.T) {
	now := referenceWednesday()

	start, end, err := ResolveDateRange(RangeThisMonth, now, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, now, end)
}

func TestResolveDateRange_OnSunday(t *testing.T) {
	// When today is Sunday, this_week starts today and last_week is the
	// previous full Sunday..Saturday week.
	sunday := time.Date(2025, time.January, 12, 9, 0, 0, 0, time.UTC)

	start, _, err := ResolveDateRange(RangeThisWeek, sunday, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC), start)

	lastStart, lastEnd, err := ResolveDateRange(RangeLastWeek, sunday, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), lastStart)
	assert.Equal(t, time.Date(2025, time.January, 11, 23, 59, 59, int(999*time.Millisecond), time.UTC), lastEnd)
}

func TestResolveDateRange_UnknownSelector(t *testing.T) {
	_, _, err := ResolveDateRange(RangeSelector("last_year"), referenceWednesday(), time.UTC)
	assert.ErrorIs(t, err, apperrors.ErrUnknownRange)
}

func TestParseRangeSelector(t *testing.T) {
	for _, valid := range []string{"today", "this_week", "last_week", "this_month"} {
		sel, err := ParseRangeSelector(valid)
		require.NoError(t, err)
		assert.Equal(t, RangeSelector(valid), sel)
	}

	_, err := ParseRangeSelector("yesterday")
	assert.ErrorIs(t, err, apperrors.ErrUnknownRange)

	_, err = ParseRangeSelector("")
	assert.ErrorIs(t, err, apperrors.ErrUnknownRange)
}
