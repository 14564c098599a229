// Package period computes the fixed bi-weekly pay periods all payroll data is
// keyed by. Periods are 14 calendar days long and are aligned to a reference
// Monday; every date is interpreted in Philippine local time.
package period

import (
	"errors"
	"fmt"
	"time"
)

// Length is the number of calendar days in a pay period.
const Length = 14

const DateLayout = "2006-01-02"

// Manila is Philippine Standard Time. The Philippines has no DST, so a fixed
// zone avoids depending on the host tzdata.
var Manila = time.FixedZone("Asia/Manila", 8*60*60)

// DefaultAnchor is the Monday the first period of the scheme starts on.
var DefaultAnchor = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	ErrAnchorNotMonday = errors.New("period anchor must be a Monday")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNotPeriodStart  = errors.New("date is not the start of a pay period")
	ErrInvalidYear     = errors.New("year must be between 2000 and 2100")
)

// Period is an inclusive range of calendar dates, each held as midnight UTC.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the calendar date d falls within the period.
func (p Period) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Year is the calendar year the period is reported under: the year of its end date.
func (p Period) Year() int {
	return p.End.Year()
}

// Key is the canonical string form used for storage and URLs.
func (p Period) Key() string {
	return p.Start.Format(DateLayout)
}

// Days returns every date in the period in order.
func (p Period) Days() []time.Time {
	days := make([]time.Time, 0, Length)
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// LocalBounds returns the half-open instant range [from, to) covered by the
// period in Manila time.
func (p Period) LocalBounds() (from, to time.Time) {
	from = time.Date(p.Start.Year(), p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, Manila)
	end := p.End.AddDate(0, 0, 1)
	to = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, Manila)
	return from, to
}

// Format renders a display label such as "Jan 01 - Jan 14, 2024".
func Format(p Period) string {
	if p.Start.Year() != p.End.Year() {
		return fmt.Sprintf("%s - %s", p.Start.Format("Jan 02, 2006"), p.End.Format("Jan 02, 2006"))
	}
	return fmt.Sprintf("%s - %s", p.Start.Format("Jan 02"), p.End.Format("Jan 02, 2006"))
}

// DateOf converts an instant to its Manila calendar date at midnight UTC.
// A date already held as midnight UTC maps to itself.
func DateOf(t time.Time) time.Time {
	local := t.In(Manila)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}
