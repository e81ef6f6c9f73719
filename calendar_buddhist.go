package dateformat

// Thai Buddhist calendar: Gregorian structure with years counted from the
// Buddhist Era, 543 years ahead of the Gregorian count.

const buddhistYearOffset = 543

type buddhistCalendar struct{}

func (buddhistCalendar) Type() CalendarType { return CalendarBuddhist }

func (buddhistCalendar) DefaultEra() int { return 0 }

func (buddhistCalendar) FromEpochMillis(ms int64) CalendarFields {
	f := gregorianCalendar{}.FromEpochMillis(ms)
	signed := f.Year
	if f.Era == gregorianEraBC {
		signed = 1 - f.Year
	}
	f.Era = 0
	f.Year = signed + buddhistYearOffset
	return f
}

func (buddhistCalendar) ToEpochMillis(f CalendarFields) int64 {
	g := f
	g.Era = gregorianEraAD
	g.Year = f.Year - buddhistYearOffset
	return gregorianCalendar{}.ToEpochMillis(g)
}

func init() {
	defaultCalendarRegistry.Register(CalendarBuddhist, buddhistCalendar{})
}
