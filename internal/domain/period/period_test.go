package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculator_Containing(t *testing.T) {
	c := NewDefaultCalculator()

	tests := []struct {
		name      string
		in        time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"anchor day", date(2024, 1, 1), date(2024, 1, 1), date(2024, 1, 14)},
		{"last day of first period", date(2024, 1, 14), date(2024, 1, 1), date(2024, 1, 14)},
		{"first day of second period", date(2024, 1, 15), date(2024, 1, 15), date(2024, 1, 28)},
		{"before anchor", date(2023, 12, 31), date(2023, 12, 18), date(2023, 12, 31)},
		{"well before anchor", date(2023, 12, 17), date(2023, 12, 4), date(2023, 12, 17)},
		{"crosses month", date(2024, 2, 1), date(2024, 1, 29), date(2024, 2, 11)},
		{"crosses year", date(2025, 1, 2), date(2024, 12, 30), date(2025, 1, 12)},
		{"manila evening still same date", time.Date(2024, 1, 14, 15, 59, 0, 0, time.UTC), date(2024, 1, 1), date(2024, 1, 14)},
		{"utc evening is next manila day", time.Date(2024, 1, 14, 16, 0, 0, 0, time.UTC), date(2024, 1, 15), date(2024, 1, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := c.Containing(tt.in)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.wantEnd, p.End)
			assert.True(t, p.Contains(tt.in))
		})
	}
}

func TestCalculator_NextPreviousRoundTrip(t *testing.T) {
	c := NewDefaultCalculator()

	p := c.Containing(date(2023, 6, 1))
	for i := 0; i < 80; i++ {
		next := c.Next(p)
		assert.Equal(t, p, c.Previous(next))
		assert.Equal(t, p, c.Next(c.Previous(p)))
		assert.Equal(t, p.End.AddDate(0, 0, 1), next.Start, "periods must be contiguous")
		assert.Equal(t, Length-1, int(p.End.Sub(p.Start).Hours()/24))
		p = next
	}
}

func TestCalculator_EveryDateInExactlyOnePeriod(t *testing.T) {
	c := NewDefaultCalculator()

	for d := date(2023, 12, 1); d.Before(date(2025, 2, 1)); d = d.AddDate(0, 0, 1) {
		p := c.Containing(d)
		require.True(t, p.Contains(d), d.Format(DateLayout))
		assert.False(t, c.Next(p).Contains(d))
		assert.False(t, c.Previous(p).Contains(d))
	}
}

func TestCalculator_FarDates(t *testing.T) {
	c := NewDefaultCalculator()

	for _, d := range []time.Time{date(1700, 1, 1), date(1731, 9, 9), date(2316, 4, 24), date(2400, 1, 1), date(9999, 12, 31)} {
		t.Run(d.Format(DateLayout), func(t *testing.T) {
			p := c.Containing(d)
			require.True(t, p.Contains(d))
			assert.Equal(t, time.Monday, p.Start.Weekday())
			assert.Equal(t, p, c.Next(c.Previous(p)))
			assert.Equal(t, p, c.Previous(c.Next(p)))
		})
	}

	p, err := c.ParseStart(c.Containing(date(2400, 1, 1)).Key())
	require.NoError(t, err)
	assert.True(t, p.Contains(date(2400, 1, 1)))
}

func TestNewCalculator_RejectsNonMonday(t *testing.T) {
	_, err := NewCalculator(date(2024, 1, 2))
	assert.ErrorIs(t, err, ErrAnchorNotMonday)

	c, err := NewCalculator(date(2024, 1, 8))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 8), c.Containing(date(2024, 1, 10)).Start)
}

func TestCalculator_ParseStart(t *testing.T) {
	c := NewDefaultCalculator()

	p, err := c.ParseStart("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 28), p.End)

	_, err = c.ParseStart("2024-01-16")
	assert.ErrorIs(t, err, ErrNotPeriodStart)

	_, err = c.ParseStart("15/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCalculator_InYear(t *testing.T) {
	c := NewDefaultCalculator()

	periods, err := c.InYear(2024)
	require.NoError(t, err)
	require.NotEmpty(t, periods)
	assert.Equal(t, date(2024, 1, 1), periods[0].Start)
	for _, p := range periods {
		assert.Equal(t, 2024, p.Year())
	}
	last := periods[len(periods)-1]
	assert.Equal(t, 2025, c.Next(last).Year())

	// 2024-12-30 .. 2025-01-12 is reported under 2025.
	periods2025, err := c.InYear(2025)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 12, 30), periods2025[0].Start)

	_, err = c.InYear(1999)
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "Jan 01 - Jan 14, 2024", Format(Period{Start: date(2024, 1, 1), End: date(2024, 1, 14)}))
	assert.Equal(t, "Dec 30, 2024 - Jan 12, 2025", Format(Period{Start: date(2024, 12, 30), End: date(2025, 1, 12)}))
}

func TestPeriod_LocalBounds(t *testing.T) {
	p := Period{Start: date(2024, 1, 1), End: date(2024, 1, 14)}
	from, to := p.LocalBounds()

	assert.Equal(t, time.Date(2023, 12, 31, 16, 0, 0, 0, time.UTC), from.UTC())
	assert.Equal(t, time.Date(2024, 1, 14, 16, 0, 0, 0, time.UTC), to.UTC())
	assert.Len(t, p.Days(), Length)
}

func TestToResponse(t *testing.T) {
	r := ToResponse(Period{Start: date(2024, 12, 30), End: date(2025, 1, 12)})
	assert.Equal(t, "2024-12-30", r.Start)
	assert.Equal(t, "2025-01-12", r.End)
	assert.Equal(t, 2025, r.Year)
	assert.Equal(t, "Dec 30, 2024 - Jan 12, 2025", r.Label)
}
