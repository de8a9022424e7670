package analytics

import (
	"time"

	"github.com/leadpilot-inc/lead-engine/pkg/apperrors"
)

// RangeSelector is a symbolic dashboard date range.
type RangeSelector string

// The selector set is closed; anything else is rejected, never defaulted.
const (
	RangeToday     RangeSelector = "today"
	RangeThisWeek  RangeSelector = "this_week"
	RangeLastWeek  RangeSelector = "last_week"
	RangeThisMonth RangeSelector = "this_month"
)

// ParseRangeSelector validates a raw selector string.
func ParseRangeSelector(s string) (RangeSelector, error) {
	switch RangeSelector(s) {
	case RangeToday, RangeThisWeek, RangeLastWeek, RangeThisMonth:
		return RangeSelector(s), nil
	}
	return "", apperrors.ErrUnknownRange
}

// ResolveDateRange maps a selector and a reference instant to a concrete
// [start, end] pair in loc. Weeks start on Sunday; last_week ends at
// 23:59:59.999 on the Saturday before this week's Sunday.
func ResolveDateRange(sel RangeSelector, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	now = now.In(loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch sel {
	case RangeToday:
		return midnight, now, nil

	case RangeThisWeek:
		start := midnight.AddDate(0, 0, -int(midnight.Weekday()))
		return start, now, nil

	case RangeLastWeek:
		start := midnight.AddDate(0, 0, -int(midnight.Weekday())-7)
		lastSaturday := midnight.AddDate(0, 0, -int(midnight.Weekday())-1)
		end := time.Date(lastSaturday.Year(), lastSaturday.Month(), lastSaturday.Day(),
			23, 59, 59, int(999*time.Millisecond), loc)
		return start, end, nil

	case RangeThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return start, now, nil
	}

	return time.Time{}, time.Time{}, apperrors.ErrUnknownRange
}
