package dateformat

// Civil (tabular) Islamic calendar. Months alternate 30 and 29 days, with
// the 12th month taking a 30th day in leap years of the 30-year cycle.
// Epoch: 1 Muharram AH 1 = 19 July 622 CE (proleptic Gregorian), the
// Friday epoch used by the CLDR islamic-civil variant.

// islamicEpochDays is the epoch expressed as days since 1970-01-01.
const islamicEpochDays = 227015 - 719163

func isIslamicLeapYear(year int) bool {
	return floorMod(int64(year)*11+14, 30) < 11
}

// daysFromIslamic converts an Islamic year, 1-based month and day to an
// epoch day number.
func daysFromIslamic(year, month, day int) int64 {
	y := int64(year)
	m := int64(month)
	return islamicEpochDays - 1 +
		(y-1)*354 + floorDiv(3+11*y, 30) +
		29*(m-1) + m/2 +
		int64(day)
}

func islamicFromDays(days int64) (year, month, day int) {
	y := int(floorDiv(30*(days-islamicEpochDays)+10646, 10631))
	for daysFromIslamic(y, 1, 1) > days {
		y--
	}
	for daysFromIslamic(y+1, 1, 1) <= days {
		y++
	}

	m := 1
	for m < 12 && daysFromIslamic(y, m+1, 1) <= days {
		m++
	}
	d := int(days-daysFromIslamic(y, m, 1)) + 1
	return y, m, d
}

type islamicCalendar struct{}

func (islamicCalendar) Type() CalendarType { return CalendarIslamic }

func (islamicCalendar) DefaultEra() int { return 0 }

func (islamicCalendar) FromEpochMillis(ms int64) CalendarFields {
	days, hour, minute, second, millisecond := splitEpochMillis(ms)
	y, m, d := islamicFromDays(days)
	return CalendarFields{
		Era:         0,
		Year:        y,
		Month:       m - 1,
		Day:         d,
		Hour:        hour,
		Minute:      minute,
		Second:      second,
		Millisecond: millisecond,
	}
}

func (islamicCalendar) ToEpochMillis(f CalendarFields) int64 {
	year, month := normalizeYearMonth(f.Year, f.Month)
	days := daysFromIslamic(year, month+1, f.Day)
	return days*dayMillis + timeOfDayMillis(f)
}

func init() {
	defaultCalendarRegistry.Register(CalendarIslamic, islamicCalendar{})
}
