package models

import "time"

// ClosedSentinel marks a non-operating day in an opening hours entry.
const ClosedSentinel = "Closed"

// OpeningHours is one weekday's open/close times as "HH:MM" strings,
// or the "Closed" sentinel on non-operating days.
type OpeningHours struct {
	Open  string `bson:"open" json:"open"`
	Close string `bson:"close" json:"close"`
}

// IsOpenAt reports whether hours keyed by weekday name contain an open
// interval covering t. Unknown days and malformed times count as closed.
func IsOpenAt(hours map[string]OpeningHours, t time.Time) bool {
	day, ok := hours[t.Weekday().String()]
	if !ok {
		return false
	}
	if day.Open == ClosedSentinel || day.Close == ClosedSentinel {
		return false
	}

	open, err := time.Parse("15:04", day.Open)
	if err != nil {
		return false
	}
	closing, err := time.Parse("15:04", day.Close)
	if err != nil {
		return false
	}

	now := time.Date(0, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
	return !now.Before(open) && !now.After(closing)
}

// IsOpenNow is IsOpenAt against the wall clock.
func IsOpenNow(hours map[string]OpeningHours) bool {
	return IsOpenAt(hours, time.Now())
}
