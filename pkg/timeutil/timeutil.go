// Package timeutil holds the civil-time helpers used by billing and reporting.
// All date bucketing in the system is computed against IST regardless of the
// server's locale.
package timeutil

import (
	"fmt"
	"time"
)

// IST is the fixed civil timezone (UTC+05:30, no DST)
var IST = time.FixedZone("IST", 5*3600+30*60)

const dateLayout = "2006-01-02"

// Bounds is an inclusive start/end instant pair for range comparison
// against stored timestamps.
type Bounds struct {
	Start time.Time
	End   time.Time
}

// ParseDate parses a YYYY-MM-DD string as a civil date in IST
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, dateStr, IST)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return t, nil
}

// Today returns the current date in IST as YYYY-MM-DD
func Today() string {
	return time.Now().In(IST).Format(dateLayout)
}

// DayBounds returns midnight and end-of-day instants for the given date
func DayBounds(dateStr string) (Bounds, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return Bounds{}, err
	}
	return dayBoundsOf(d), nil
}

func dayBoundsOf(d time.Time) Bounds {
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, IST)
	end := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999999999, IST)
	return Bounds{Start: start, End: end}
}

// WeekBounds returns the Monday-to-Sunday week containing the given date
func WeekBounds(dateStr string) (Bounds, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return Bounds{}, err
	}

	// time.Weekday puts Sunday at 0; shift so Monday starts the week
	offset := int(d.Weekday()) - 1
	if offset < 0 {
		offset = 6
	}
	monday := d.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)

	return Bounds{
		Start: dayBoundsOf(monday).Start,
		End:   dayBoundsOf(sunday).End,
	}, nil
}

// MonthBounds returns the first and last instants of the month containing
// the given date. Day 0 of the next month normalizes to the last calendar
// day regardless of month length.
func MonthBounds(dateStr string) (Bounds, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return Bounds{}, err
	}

	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, IST)
	lastDay := time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, IST)

	return Bounds{
		Start: start,
		End:   dayBoundsOf(lastDay).End,
	}, nil
}

// DateRange expands a start/end date pair into the ordered sequence of
// calendar dates between them, inclusive. Used to zero-fill report buckets.
func DateRange(startDate, endDate string) ([]string, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}

// FormatDate renders an instant as its IST calendar date
func FormatDate(t time.Time) string {
	return t.In(IST).Format(dateLayout)
}

// HourOf returns the civil hour-of-day (0-23) of an instant in IST
func HourOf(t time.Time) int {
	return t.In(IST).Hour()
}

// BillNumber formats the human-facing sequential order identifier,
// YYYYMMDD-XXXX, unique per calendar day.
func BillNumber(t time.Time, sequence int) string {
	return fmt.Sprintf("%s-%04d", t.In(IST).Format("20060102"), sequence)
}

// FormatCurrency renders an amount in whole rupees
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("₹%.0f", amount)
}
