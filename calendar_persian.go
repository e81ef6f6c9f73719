package dateformat

// Arithmetic Persian (Solar Hijri) calendar using the 33-year leap cycle.
// The first six months have 31 days, the next five 30, and Esfand 29 (30
// in leap years). Epoch: 1 Farvardin AP 1 = 19 March 622 CE (proleptic
// Gregorian).

// persianEpochDays is the epoch expressed as days since 1970-01-01.
const persianEpochDays = 1948320 - 2440588

func isPersianLeapYear(year int) bool {
	return floorMod(25*int64(year)+11, 33) < 8
}

// daysFromPersian converts a Persian year, 1-based month and day to an
// epoch day number.
func daysFromPersian(year, month, day int) int64 {
	y := int64(year)
	var prior int64
	if month <= 7 {
		prior = 31 * int64(month-1)
	} else {
		prior = 30*int64(month-1) + 6
	}
	return persianEpochDays - 1 +
		365*(y-1) + floorDiv(8*y+21, 33) +
		prior + int64(day)
}

func persianFromDays(days int64) (year, month, day int) {
	since := days - daysFromPersian(1, 1, 1)
	y := 1 + int(floorDiv(33*since+3, 12053))
	for daysFromPersian(y, 1, 1) > days {
		y--
	}
	for daysFromPersian(y+1, 1, 1) <= days {
		y++
	}

	dayOfYear := int(days-daysFromPersian(y, 1, 1)) + 1
	var m int
	if dayOfYear <= 186 {
		m = (dayOfYear + 30) / 31
	} else {
		m = (dayOfYear + 29 - 6) / 30
	}
	d := int(days-daysFromPersian(y, m, 1)) + 1
	return y, m, d
}

type persianCalendar struct{}

func (persianCalendar) Type() CalendarType { return CalendarPersian }

func (persianCalendar) DefaultEra() int { return 0 }

func (persianCalendar) FromEpochMillis(ms int64) CalendarFields {
	days, hour, minute, second, millisecond := splitEpochMillis(ms)
	y, m, d := persianFromDays(days)
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

func (persianCalendar) ToEpochMillis(f CalendarFields) int64 {
	year, month := normalizeYearMonth(f.Year, f.Month)
	days := daysFromPersian(year, month+1, f.Day)
	return days*dayMillis + timeOfDayMillis(f)
}

func init() {
	defaultCalendarRegistry.Register(CalendarPersian, persianCalendar{})
}
