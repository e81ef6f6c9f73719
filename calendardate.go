package dateformat

import (
	"fmt"
	"time"
)

// CalendarDate is a calendar-abstracted date value (year, 0-based month,
// day) backed by a UTC-anchored instant. Two CalendarDates of different
// calendar types built from the same instant compare as equal.
type CalendarDate struct {
	impl   CalendarArithmetic
	fields CalendarFields
}

// NewDate builds a date from era-relative year, 0-based month and day in
// the given calendar. Month and day overflow roll into the adjacent
// year/month, matching JS Date semantics.
func (r *CalendarRegistry) NewDate(year, month, day int, calendarType CalendarType) (*CalendarDate, error) {
	impl, err := r.Get(calendarType)
	if err != nil {
		return nil, err
	}
	d := &CalendarDate{impl: impl}
	d.reset(impl.ToEpochMillis(CalendarFields{
		Era:   impl.DefaultEra(),
		Year:  year,
		Month: month,
		Day:   day,
	}))
	return d, nil
}

// DateFromMillis builds a date from an epoch millisecond timestamp,
// truncated to the start of its UTC day.
func (r *CalendarRegistry) DateFromMillis(ms int64, calendarType CalendarType) (*CalendarDate, error) {
	impl, err := r.Get(calendarType)
	if err != nil {
		return nil, err
	}
	d := &CalendarDate{impl: impl}
	d.reset(ms)
	return d, nil
}

// DateFromTime builds a date from the calendar day t falls on in its own
// location. The zero time is rejected.
func (r *CalendarRegistry) DateFromTime(t time.Time, calendarType CalendarType) (*CalendarDate, error) {
	if t.IsZero() {
		return nil, fmt.Errorf("dateformat: zero time: %w", ErrInvalidArgument)
	}
	year, month, day := t.Date()
	impl, err := r.Get(CalendarGregorian)
	if err != nil {
		return nil, err
	}
	ms := impl.ToEpochMillis(CalendarFields{
		Era:   gregorianEraAD,
		Year:  year,
		Month: int(month) - 1,
		Day:   day,
	})
	return r.DateFromMillis(ms, calendarType)
}

// ConvertDate reinterprets the same instant in another calendar type. It
// does not carry the year/month/day fields over.
func (r *CalendarRegistry) ConvertDate(other *CalendarDate, calendarType CalendarType) (*CalendarDate, error) {
	if other == nil {
		return nil, fmt.Errorf("dateformat: nil date: %w", ErrInvalidArgument)
	}
	return r.DateFromMillis(other.UnixMilli(), calendarType)
}

// NewCalendarDate builds a date in the process-wide calendar registry.
func NewCalendarDate(year, month, day int, calendarType CalendarType) (*CalendarDate, error) {
	return defaultCalendarRegistry.NewDate(year, month, day, calendarType)
}

// CalendarDateFromTime builds a date from a time.Time value.
func CalendarDateFromTime(t time.Time, calendarType CalendarType) (*CalendarDate, error) {
	return defaultCalendarRegistry.DateFromTime(t, calendarType)
}

// CalendarDateFromMillis builds a date from an epoch millisecond timestamp.
func CalendarDateFromMillis(ms int64, calendarType CalendarType) (*CalendarDate, error) {
	return defaultCalendarRegistry.DateFromMillis(ms, calendarType)
}

// ConvertCalendarDate reinterprets date's instant in another calendar type.
func ConvertCalendarDate(date *CalendarDate, calendarType CalendarType) (*CalendarDate, error) {
	return defaultCalendarRegistry.ConvertDate(date, calendarType)
}

// TodayCalendarDate returns the current day in the given calendar type.
func TodayCalendarDate(calendarType CalendarType) (*CalendarDate, error) {
	return defaultCalendarRegistry.DateFromTime(time.Now(), calendarType)
}

// reset re-derives the field decomposition from an instant, truncated to
// the start of its UTC day so that the value is date-only.
func (d *CalendarDate) reset(ms int64) {
	days := floorDiv(ms, dayMillis)
	d.fields = d.impl.FromEpochMillis(days * dayMillis)
}

func (d *CalendarDate) CalendarType() CalendarType { return d.impl.Type() }

func (d *CalendarDate) Era() int { return d.fields.Era }

func (d *CalendarDate) Year() int { return d.fields.Year }

// Month returns the 0-based month.
func (d *CalendarDate) Month() int { return d.fields.Month }

func (d *CalendarDate) Day() int { return d.fields.Day }

// Weekday returns the day of week, 0 = Sunday.
func (d *CalendarDate) Weekday() int {
	return epochDayWeekday(floorDiv(d.UnixMilli(), dayMillis))
}

// UnixMilli returns the UTC-midnight instant the date represents,
// independent of calendar type.
func (d *CalendarDate) UnixMilli() int64 {
	return d.impl.ToEpochMillis(d.fields)
}

func (d *CalendarDate) SetYear(year int) {
	d.fields.Year = year
	d.reset(d.impl.ToEpochMillis(d.fields))
}

// SetMonth sets the 0-based month; out-of-range values roll into adjacent
// years.
func (d *CalendarDate) SetMonth(month int) {
	d.fields.Month = month
	d.reset(d.impl.ToEpochMillis(d.fields))
}

// SetDay sets the day of month. Day 0 resolves to the last day of the
// previous month, day 32 rolls forward, matching JS Date semantics.
func (d *CalendarDate) SetDay(day int) {
	d.fields.Day = day
	d.reset(d.impl.ToEpochMillis(d.fields))
}

// Clone returns an independent copy.
func (d *CalendarDate) Clone() *CalendarDate {
	out := *d
	return &out
}

// compareMilli guards the comparison operand. A nil operand is a type
// mismatch on the caller's side, surfaced as a descriptive panic rather
// than a nil dereference.
func compareMilli(other *CalendarDate) int64 {
	if other == nil {
		panic("dateformat: nil CalendarDate comparison operand")
	}
	return other.UnixMilli()
}

func (d *CalendarDate) IsSame(other *CalendarDate) bool {
	return d.UnixMilli() == compareMilli(other)
}

func (d *CalendarDate) IsBefore(other *CalendarDate) bool {
	return d.UnixMilli() < compareMilli(other)
}

func (d *CalendarDate) IsAfter(other *CalendarDate) bool {
	return d.UnixMilli() > compareMilli(other)
}

func (d *CalendarDate) IsSameOrBefore(other *CalendarDate) bool {
	return d.UnixMilli() <= compareMilli(other)
}

func (d *CalendarDate) IsSameOrAfter(other *CalendarDate) bool {
	return d.UnixMilli() >= compareMilli(other)
}

// ToUTCTime returns the date anchored at UTC midnight.
func (d *CalendarDate) ToUTCTime() time.Time {
	return time.UnixMilli(d.UnixMilli()).UTC()
}

// ToLocalTime returns the date anchored at local midnight, for interop
// with code that consumes wall-clock time.Time values.
func (d *CalendarDate) ToLocalTime() time.Time {
	u := d.ToUTCTime()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.Local)
}

func (d *CalendarDate) String() string {
	return fmt.Sprintf("%s %d-%02d-%02d", d.impl.Type(), d.Year(), d.Month()+1, d.Day())
}

// TimeUnit names the step sizes ModifyDateBy understands.
type TimeUnit string

const (
	UnitDay   TimeUnit = "day"
	UnitMonth TimeUnit = "month"
	UnitYear  TimeUnit = "year"
)

// ModifyDateBy returns a new date moved by amount units, preserving the
// day of month where possible. When the day of month does not exist in the
// target month (Jan 31 plus one month, Feb 29 plus one year) the result
// snaps to the last valid day rather than rolling further. With
// preserveDate false, month steps land on the first (forward) or last
// (backward) day instead. The result is clamped to [minDate, maxDate]
// when boundaries are given.
func ModifyDateBy(date *CalendarDate, amount int, unit TimeUnit, preserveDate bool, minDate, maxDate *CalendarDate) *CalendarDate {
	out := date.Clone()

	switch unit {
	case UnitDay:
		out.SetDay(out.Day() + amount)
	case UnitMonth:
		if preserveDate {
			startMonth := out.Month()
			out.SetMonth(startMonth + amount)
			switch {
			case amount == -1 && out.Month() == startMonth:
				// day of month too large, rolled forward into the
				// month we started from
				out.SetDay(0)
			case amount == 1 && (out.Month()-startMonth+12)%12 > 1:
				out.SetDay(0)
			}
		} else {
			if amount > 0 {
				out.SetMonth(out.Month() + amount)
				out.SetDay(1)
			} else {
				out.SetMonth(out.Month() + amount + 1)
				out.SetDay(0)
			}
		}
	case UnitYear:
		startMonth := out.Month()
		out.SetYear(out.Year() + amount)
		if out.Month() != startMonth {
			out.SetDay(0)
		}
	}

	if minDate != nil && out.IsBefore(minDate) {
		return minDate.Clone()
	}
	if maxDate != nil && out.IsAfter(maxDate) {
		return maxDate.Clone()
	}
	return out
}

// DaysInMonth returns the number of days in the 0-based month of an
// era-relative year under a calendar system.
func DaysInMonth(year, month int, calendarType CalendarType) (int, error) {
	impl, err := Calendars().Get(calendarType)
	if err != nil {
		return 0, err
	}
	era := impl.DefaultEra()
	start := impl.ToEpochMillis(CalendarFields{Era: era, Year: year, Month: month, Day: 1})
	end := impl.ToEpochMillis(CalendarFields{Era: era, Year: year, Month: month + 1, Day: 1})
	return int((end - start) / dayMillis), nil
}

// MonthsInYear returns the number of months in an era-relative year under
// a calendar system. Computed from the calendar arithmetic so that
// registered calendars with varying month counts are handled.
func MonthsInYear(year int, calendarType CalendarType) (int, error) {
	impl, err := Calendars().Get(calendarType)
	if err != nil {
		return 0, err
	}
	era := impl.DefaultEra()
	next := impl.ToEpochMillis(CalendarFields{Era: era, Year: year + 1, Month: 0, Day: 1})
	for m := 1; m <= 24; m++ {
		if impl.ToEpochMillis(CalendarFields{Era: era, Year: year, Month: m, Day: 1}) >= next {
			return m, nil
		}
	}
	return 12, nil
}
