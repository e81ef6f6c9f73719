package dateformat

// Japanese Imperial calendar: Gregorian structure with era-relative years.
// The era table carries the modern eras, which is what the picker UIs and
// the CLDR abbreviated era names cover in practice. Dates before Meiji
// resolve to the Meiji era with a non-positive year rather than erroring.

type japaneseEra struct {
	name      string
	startDays int64 // epoch day of the first day of the era
	startYear int   // Gregorian year of that day
}

var japaneseEras = []japaneseEra{
	{name: "Meiji", startDays: daysFromCivil(1868, 9, 8), startYear: 1868},
	{name: "Taishō", startDays: daysFromCivil(1912, 7, 30), startYear: 1912},
	{name: "Shōwa", startDays: daysFromCivil(1926, 12, 25), startYear: 1926},
	{name: "Heisei", startDays: daysFromCivil(1989, 1, 8), startYear: 1989},
	{name: "Reiwa", startDays: daysFromCivil(2019, 5, 1), startYear: 2019},
}

func japaneseEraForDays(days int64) int {
	era := 0
	for i := 1; i < len(japaneseEras); i++ {
		if days >= japaneseEras[i].startDays {
			era = i
		}
	}
	return era
}

type japaneseCalendar struct{}

func (japaneseCalendar) Type() CalendarType { return CalendarJapanese }

func (japaneseCalendar) DefaultEra() int { return len(japaneseEras) - 1 }

func (japaneseCalendar) FromEpochMillis(ms int64) CalendarFields {
	days, hour, minute, second, millisecond := splitEpochMillis(ms)
	y, m, d := civilFromDays(days)
	era := japaneseEraForDays(days)

	return CalendarFields{
		Era:         era,
		Year:        y - japaneseEras[era].startYear + 1,
		Month:       m - 1,
		Day:         d,
		Hour:        hour,
		Minute:      minute,
		Second:      second,
		Millisecond: millisecond,
	}
}

func (japaneseCalendar) ToEpochMillis(f CalendarFields) int64 {
	era := f.Era
	if era < 0 {
		era = 0
	}
	if era >= len(japaneseEras) {
		era = len(japaneseEras) - 1
	}
	signed := japaneseEras[era].startYear + f.Year - 1
	year, month := normalizeYearMonth(signed, f.Month)
	days := daysFromCivil(year, month+1, f.Day)
	return days*dayMillis + timeOfDayMillis(f)
}

func init() {
	defaultCalendarRegistry.Register(CalendarJapanese, japaneseCalendar{})
}
