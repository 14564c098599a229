package period

import (
	"fmt"
	"time"
)

const secondsPerDay = 24 * 60 * 60

type Calculator struct {
	anchor time.Time
}

func NewCalculator(anchor time.Time) (*Calculator, error) {
	anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)
	if anchor.Weekday() != time.Monday {
		return nil, fmt.Errorf("%w: %s is a %s", ErrAnchorNotMonday, anchor.Format(DateLayout), anchor.Weekday())
	}
	return &Calculator{anchor: anchor}, nil
}

// NewDefaultCalculator anchors periods at DefaultAnchor.
func NewDefaultCalculator() *Calculator {
	return &Calculator{anchor: DefaultAnchor}
}

func (c *Calculator) Anchor() time.Time {
	return c.anchor
}

// Containing returns the period holding the Manila calendar date of t.
func (c *Calculator) Containing(t time.Time) Period {
	d := DateOf(t)
	// both are midnight UTC; Duration would saturate about 292 years out
	days := int((d.Unix() - c.anchor.Unix()) / secondsPerDay)
	index := floorDiv(days, Length)
	start := c.anchor.AddDate(0, 0, index*Length)
	return Period{Start: start, End: start.AddDate(0, 0, Length-1)}
}

func (c *Calculator) Next(p Period) Period {
	return c.Containing(p.Start.AddDate(0, 0, Length))
}

func (c *Calculator) Previous(p Period) Period {
	return c.Containing(p.Start.AddDate(0, 0, -Length))
}

// ParseStart parses s and requires it to be the first day of a period.
func (c *Calculator) ParseStart(s string) (Period, error) {
	d, err := ParseDate(s)
	if err != nil {
		return Period{}, err
	}
	p := c.Containing(d)
	if !p.Start.Equal(d) {
		return Period{}, fmt.Errorf("%w: %s (period starts %s)", ErrNotPeriodStart, s, p.Key())
	}
	return p, nil
}

// InYear lists the periods whose end date falls in year.
func (c *Calculator) InYear(year int) ([]Period, error) {
	if year < 2000 || year > 2100 {
		return nil, ErrInvalidYear
	}

	first := c.Containing(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
	if first.End.Year() < year {
		first = c.Next(first)
	}

	var periods []Period
	for p := first; p.End.Year() == year; p = c.Next(p) {
		periods = append(periods, p)
	}
	return periods, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
