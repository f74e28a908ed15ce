package kernel

import (
	"fmt"
	"time"
)

// CutoffHour is the business-day cutoff: timestamps before 06:00 local time
// belong to the previous calendar day, so late-night orders are accounted
// to the shift that produced them.
const CutoffHour = 6

// dateKeyLayout formats a business date as YYYYMMDD for sequence keys
// and display numbers.
const dateKeyLayout = "20060102"

// BusinessDate is the operating "day" for accounting purposes.
// It is derived from a timestamp by applying the early-morning cutoff and is
// stable for all timestamps within [cutoff, cutoff+24h).
//
// BusinessDate is a value object: immutable and safe for concurrent use.
// Two orders created at 23:50 and 01:30 the next calendar day share the same
// BusinessDate, and therefore the same order-number sequence.
type BusinessDate struct {
	year  int
	month time.Month
	day   int
}

// BusinessDateOf derives the business date for a timestamp.
// Timestamps with hour < CutoffHour belong to the previous calendar day;
// all others belong to their own calendar day. Only the date component is
// shifted, never the time component.
func BusinessDateOf(t time.Time) BusinessDate {
	if t.Hour() < CutoffHour {
		t = t.AddDate(0, 0, -1)
	}
	year, month, day := t.Date()
	return BusinessDate{year: year, month: month, day: day}
}

// BusinessDateFromKey parses a YYYYMMDD key back into a BusinessDate.
// Used when reconstructing orders from persistence and when parsing
// shift-summary request paths.
func BusinessDateFromKey(key string) (BusinessDate, error) {
	t, err := time.Parse(dateKeyLayout, key)
	if err != nil {
		return BusinessDate{}, fmt.Errorf("invalid business date key %q: %w", key, err)
	}
	year, month, day := t.Date()
	return BusinessDate{year: year, month: month, day: day}, nil
}

// Key returns the YYYYMMDD representation used as the daily sequence key
// and as the persisted form of the business date.
func (d BusinessDate) Key() string {
	return fmt.Sprintf("%04d%02d%02d", d.year, d.month, d.day)
}

// String returns the YYYYMMDD representation.
func (d BusinessDate) String() string {
	return d.Key()
}

// IsEqual compares two business dates.
func (d BusinessDate) IsEqual(other BusinessDate) bool {
	return d == other
}

// IsZero reports whether the business date is the uninitialized zero value.
func (d BusinessDate) IsZero() bool {
	return d == BusinessDate{}
}

// DailySequenceKey derives the daily counter shard key for a timestamp:
// the YYYYMMDD form of its business date. All orders of one business day
// contend on a single counter row under this key.
func DailySequenceKey(t time.Time) string {
	return BusinessDateOf(t).Key()
}

// HourlySequenceKey derives the hourly counter shard key for a timestamp:
// YYYYMMDDHH, where the date component is the business date (cutoff applied)
// and the hour component is the original hour of the timestamp. The hour is
// never itself subject to the cutoff rule, so 02:30 on Jan 20 yields
// "2026011902": date rolled back to Jan 19, hour stays 02.
//
// Hourly sharding only spreads counter contention across 24 rows per business
// day; the numbering semantics visible to users stay scoped per business day.
func HourlySequenceKey(t time.Time) string {
	return fmt.Sprintf("%s%02d", BusinessDateOf(t).Key(), t.Hour())
}
