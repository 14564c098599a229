package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/period"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
)

const (
	nightStartHour = 22
	nightEndHour   = 6
)

type interval struct {
	start, end time.Time
}

type dayWork struct {
	intervals  []interval
	inProgress bool
	corrected  bool
}

// Aggregate categorizes one employee's hours for a period. It is pure: the
// same input always produces the same PeriodAttendance.
func Aggregate(in attendance.AggregateInput) attendance.PeriodAttendance {
	days := make(map[time.Time]*dayWork)
	dayOf := func(d time.Time) *dayWork {
		w, ok := days[d]
		if !ok {
			w = &dayWork{}
			days[d] = w
		}
		return w
	}

	result := attendance.PeriodAttendance{
		EmployeeID: in.EmployeeID,
		Period:     in.Period,
		Days:       []attendance.DaySummary{},
	}

	for _, e := range in.Entries {
		date := period.DateOf(e.ClockIn)
		if !in.Period.Contains(date) || e.Status == attendance.EntryStatusRejected {
			continue
		}
		if e.ClockOut == nil || e.Status == attendance.EntryStatusClockedIn {
			dayOf(date).inProgress = true
			result.InProgressEntryIDs = append(result.InProgressEntryIDs, e.ID)
			continue
		}
		if !e.Status.Counts() || !e.ClockOut.After(e.ClockIn) {
			continue
		}
		w := dayOf(date)
		w.intervals = append(w.intervals, interval{start: e.ClockIn, end: *e.ClockOut})
	}

	replaced := make(map[time.Time]bool)
	for _, c := range in.Corrections {
		date := period.DateOf(c.WorkDate)
		if c.Status != attendance.CorrectionStatusApproved || !in.Period.Contains(date) || !c.ClockOut.After(c.ClockIn) {
			continue
		}
		w := dayOf(date)
		if c.Mode == attendance.CorrectionModeReplace && !replaced[date] {
			replaced[date] = true
			w.intervals = nil
		}
		w.corrected = true
	}
	// Second pass so a replace correction never discards a supplement of the same day.
	for _, c := range in.Corrections {
		date := period.DateOf(c.WorkDate)
		if c.Status != attendance.CorrectionStatusApproved || !in.Period.Contains(date) || !c.ClockOut.After(c.ClockIn) {
			continue
		}
		w := dayOf(date)
		w.intervals = append(w.intervals, interval{start: c.ClockIn, end: c.ClockOut})
	}

	approvedOT := make(map[time.Time]int64)
	for _, ot := range in.Overtime {
		approvedOT[period.DateOf(ot.Date)] += money.MinutesFromHours(ot.Hours)
	}

	holidays := make(map[time.Time]attendance.HolidayKind)
	for _, h := range in.Holidays {
		d := period.DateOf(h.Date)
		// A regular holiday outranks a special day falling on the same date.
		if existing, ok := holidays[d]; ok && existing == attendance.HolidayKindRegular {
			continue
		}
		holidays[d] = h.Kind
	}

	regularCapMin := money.MinutesFromHours(in.Schedule.RegularHoursPerDay)
	breakMin := int64(in.Schedule.BreakMinutes)

	var totals struct {
		regular, restDay, special, regularHoliday, overtime, night, unapproved int64
	}

	dates := make([]time.Time, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	for _, date := range dates {
		w := days[date]
		merged := mergeIntervals(w.intervals)

		var workedMin int64
		for _, iv := range merged {
			workedMin += int64(iv.end.Sub(iv.start) / time.Minute)
		}
		if workedMin > attendance.BreakThresholdMinutes {
			workedMin -= breakMin
		}

		regularMin := min(workedMin, regularCapMin)
		excessMin := workedMin - regularMin
		overtimeMin := min(excessMin, approvedOT[date])
		unapprovedMin := excessMin - overtimeMin

		nightMin := int64(0)
		for _, iv := range merged {
			nightMin += nightOverlapMinutes(iv)
		}
		nightMin = min(nightMin, regularMin+overtimeMin)

		var holiday *attendance.HolidayKind
		if kind, ok := holidays[date]; ok {
			holiday = &kind
		}
		dayType := attendance.ResolveDayType(in.Schedule.IsRestDay(date.Weekday()), holiday)

		switch {
		case dayType.IsRegularHoliday():
			totals.regularHoliday += regularMin
		case dayType.IsSpecialHoliday():
			totals.special += regularMin
		case dayType == attendance.DayTypeRestDay:
			totals.restDay += regularMin
		default:
			totals.regular += regularMin
		}
		totals.overtime += overtimeMin
		totals.night += nightMin
		totals.unapproved += unapprovedMin

		result.Days = append(result.Days, attendance.DaySummary{
			Date:            date,
			DayType:         dayType,
			WorkedHours:     money.HoursFromMinutes(workedMin),
			RegularHours:    money.HoursFromMinutes(regularMin),
			OvertimeHours:   money.HoursFromMinutes(overtimeMin),
			NightDiffHours:  money.HoursFromMinutes(nightMin),
			UnapprovedHours: money.HoursFromMinutes(unapprovedMin),
			InProgress:      w.inProgress,
			Corrected:       w.corrected,
		})
	}

	result.Totals = attendance.HourBuckets{
		Regular:        money.HoursFromMinutes(totals.regular),
		RestDay:        money.HoursFromMinutes(totals.restDay),
		SpecialHoliday: money.HoursFromMinutes(totals.special),
		RegularHoliday: money.HoursFromMinutes(totals.regularHoliday),
		Overtime:       money.HoursFromMinutes(totals.overtime),
		NightDiff:      money.HoursFromMinutes(totals.night),
		Unapproved:     money.HoursFromMinutes(totals.unapproved),
	}
	return result
}

// mergeIntervals returns the union of ivs as sorted, non-overlapping intervals.
func mergeIntervals(ivs []interval) []interval {
	if len(ivs) == 0 {
		return nil
	}
	sorted := make([]interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start.Before(sorted[j].start) })

	merged := []interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.start.After(last.end) {
			if iv.end.After(last.end) {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// nightOverlapMinutes counts the minutes of iv inside 22:00-06:00 Manila time.
func nightOverlapMinutes(iv interval) int64 {
	start := iv.start.In(period.Manila)
	end := iv.end.In(period.Manila)

	var total int64
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, period.Manila).AddDate(0, 0, -1)
	for !day.After(end) {
		windowStart := day.Add(nightStartHour * time.Hour)
		windowEnd := day.AddDate(0, 0, 1).Add(nightEndHour * time.Hour)

		from := laterOf(start, windowStart)
		to := earlierOf(end, windowEnd)
		if to.After(from) {
			total += int64(to.Sub(from) / time.Minute)
		}
		day = day.AddDate(0, 0, 1)
	}
	return total
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
