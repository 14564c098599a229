package attendance

import "github.com/shopspring/decimal"

type DayType string

const (
	DayTypeOrdinary              DayType = "ordinary"
	DayTypeRestDay               DayType = "rest_day"
	DayTypeSpecialHoliday        DayType = "special_holiday"
	DayTypeSpecialHolidayRestDay DayType = "special_holiday_rest_day"
	DayTypeRegularHoliday        DayType = "regular_holiday"
	DayTypeRegularHolidayRestDay DayType = "regular_holiday_rest_day"
)

var (
	dayMultipliers = map[DayType]decimal.Decimal{
		DayTypeOrdinary:              decimal.RequireFromString("1.00"),
		DayTypeRestDay:               decimal.RequireFromString("1.30"),
		DayTypeSpecialHoliday:        decimal.RequireFromString("1.30"),
		DayTypeSpecialHolidayRestDay: decimal.RequireFromString("1.50"),
		DayTypeRegularHoliday:        decimal.RequireFromString("2.00"),
		DayTypeRegularHolidayRestDay: decimal.RequireFromString("2.60"),
	}

	ordinaryOvertimeFactor = decimal.RequireFromString("1.25")
	premiumOvertimeFactor  = decimal.RequireFromString("1.30")

	// NightDifferentialRate is paid on top of the day's hourly rate.
	NightDifferentialRate = decimal.RequireFromString("0.10")
)

// ResolveDayType combines rest day and holiday status.
func ResolveDayType(restDay bool, holiday *HolidayKind) DayType {
	switch {
	case holiday != nil && *holiday == HolidayKindRegular && restDay:
		return DayTypeRegularHolidayRestDay
	case holiday != nil && *holiday == HolidayKindRegular:
		return DayTypeRegularHoliday
	case holiday != nil && *holiday == HolidayKindSpecial && restDay:
		return DayTypeSpecialHolidayRestDay
	case holiday != nil && *holiday == HolidayKindSpecial:
		return DayTypeSpecialHoliday
	case restDay:
		return DayTypeRestDay
	}
	return DayTypeOrdinary
}

// Multiplier is the rate applied to regular hours worked on the day.
func (d DayType) Multiplier() decimal.Decimal {
	if m, ok := dayMultipliers[d]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// OvertimeFactor is applied on top of Multiplier for overtime hours.
func (d DayType) OvertimeFactor() decimal.Decimal {
	if d == DayTypeOrdinary {
		return ordinaryOvertimeFactor
	}
	return premiumOvertimeFactor
}

func (d DayType) IsRegularHoliday() bool {
	return d == DayTypeRegularHoliday || d == DayTypeRegularHolidayRestDay
}

func (d DayType) IsSpecialHoliday() bool {
	return d == DayTypeSpecialHoliday || d == DayTypeSpecialHolidayRestDay
}
