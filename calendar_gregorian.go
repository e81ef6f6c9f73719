package dateformat

// Civil calendar conversions between proleptic Gregorian dates and epoch
// day numbers (days since 1970-01-01). Integer-only, valid far beyond any
// instant the formatter will see.

// daysFromCivil converts a signed Gregorian year, 1-based month and day to
// an epoch day number. Day may be out of range; the offset simply shifts
// the result, which is how JS Date day overflow rolls into the adjacent
// month.
func daysFromCivil(year, month, day int) int64 {
	y := int64(year)
	m := int64(month)
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	var mp int64
	if m > 2 {
		mp = m - 3
	} else {
		mp = m + 9
	}
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(days int64) (year, month, day int) {
	z := days + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

func isGregorianLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Era indices follow the CLDR gregorian era table: 0 = BC, 1 = AD.
const (
	gregorianEraBC = 0
	gregorianEraAD = 1
)

type gregorianCalendar struct{}

func (gregorianCalendar) Type() CalendarType { return CalendarGregorian }

func (gregorianCalendar) DefaultEra() int { return gregorianEraAD }

func (gregorianCalendar) FromEpochMillis(ms int64) CalendarFields {
	days, hour, minute, second, millisecond := splitEpochMillis(ms)
	y, m, d := civilFromDays(days)

	era, year := gregorianEraAD, y
	if y <= 0 {
		era, year = gregorianEraBC, 1-y
	}

	return CalendarFields{
		Era:         era,
		Year:        year,
		Month:       m - 1,
		Day:         d,
		Hour:        hour,
		Minute:      minute,
		Second:      second,
		Millisecond: millisecond,
	}
}

func (gregorianCalendar) ToEpochMillis(f CalendarFields) int64 {
	signed := f.Year
	if f.Era == gregorianEraBC {
		signed = 1 - f.Year
	}
	year, month := normalizeYearMonth(signed, f.Month)
	days := daysFromCivil(year, month+1, f.Day)
	return days*dayMillis + timeOfDayMillis(f)
}

func init() {
	defaultCalendarRegistry.Register(CalendarGregorian, gregorianCalendar{})
}
