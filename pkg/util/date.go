package util

import "time"

// CalendarDaysForBars converts a trading-bar count to the calendar span that
// roughly contains it (5 trading days per 7 calendar days).
func CalendarDaysForBars(bars int) int {
	if bars <= 0 {
		return 0
	}
	return bars * 7 / 5
}

// AlignToDay truncates a timestamp to midnight UTC, the resolution daily
// bars are keyed on.
func AlignToDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
