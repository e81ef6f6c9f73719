package dateformat

import (
	"fmt"
	"sort"
	"sync"
)

// CalendarType identifies one of the supported calendar systems.
type CalendarType string

const (
	CalendarGregorian CalendarType = "Gregorian"
	CalendarIslamic   CalendarType = "Islamic"
	CalendarJapanese  CalendarType = "Japanese"
	CalendarBuddhist  CalendarType = "Buddhist"
	CalendarPersian   CalendarType = "Persian"
)

// DefaultCalendarType is used whenever a caller does not name a calendar.
const DefaultCalendarType = CalendarGregorian

// CalendarFields is the calendar-specific decomposition of an instant.
// Month is 0-based. Year is era-relative for calendars with era tables
// (Japanese, and the BC era of Gregorian); Era indexes the calendar's era
// list and lines up with the CLDR era name tables.
type CalendarFields struct {
	Era         int
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

// CalendarArithmetic converts between epoch milliseconds and
// calendar-specific fields. Implementations must treat the instant as
// UTC-anchored and must normalize out-of-range Month and Day values in
// ToEpochMillis the way a JS Date would (month 12 rolls into the next year,
// day 0 is the last day of the previous month).
type CalendarArithmetic interface {
	Type() CalendarType
	FromEpochMillis(ms int64) CalendarFields
	ToEpochMillis(f CalendarFields) int64
	// DefaultEra is the era assumed when a date is built from bare
	// year/month/day values (AD for Gregorian, the current era for
	// Japanese).
	DefaultEra() int
}

// CalendarRegistry maps calendar type tags to their arithmetic
// implementations. It is populated at startup by the calendar modules
// self-registering and is read-only afterwards; tests construct their own
// instances to stay isolated from package state.
type CalendarRegistry struct {
	mu        sync.RWMutex
	calendars map[CalendarType]CalendarArithmetic
}

// NewCalendarRegistry builds an empty registry.
func NewCalendarRegistry() *CalendarRegistry {
	return &CalendarRegistry{calendars: make(map[CalendarType]CalendarArithmetic)}
}

// Register stores the implementation for tag. The last registration for a
// given tag wins; overwriting is allowed so that alternative
// implementations stay pluggable.
func (r *CalendarRegistry) Register(tag CalendarType, impl CalendarArithmetic) {
	if impl == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calendars[tag] = impl
}

// Get returns the implementation registered for tag.
func (r *CalendarRegistry) Get(tag CalendarType) (CalendarArithmetic, error) {
	r.mu.RLock()
	impl, ok := r.calendars[tag]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("dateformat: calendar %q: %w", tag, ErrUnregisteredCalendar)
	}
	return impl, nil
}

// Types returns the registered calendar tags in deterministic order.
func (r *CalendarRegistry) Types() []CalendarType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]CalendarType, 0, len(r.calendars))
	for tag := range r.calendars {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var defaultCalendarRegistry = NewCalendarRegistry()

// Calendars returns the process-wide registry seeded with the built-in
// calendar implementations.
func Calendars() *CalendarRegistry {
	return defaultCalendarRegistry
}

const dayMillis = 86400000

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// normalizeYearMonth rolls an out-of-range 0-based month into the year.
func normalizeYearMonth(year, month int) (int, int) {
	y := int64(year) + floorDiv(int64(month), 12)
	m := floorMod(int64(month), 12)
	return int(y), int(m)
}

// splitEpochMillis breaks an instant into epoch days and time-of-day parts.
func splitEpochMillis(ms int64) (days int64, hour, minute, second, millisecond int) {
	days = floorDiv(ms, dayMillis)
	rem := ms - days*dayMillis
	hour = int(rem / 3600000)
	rem %= 3600000
	minute = int(rem / 60000)
	rem %= 60000
	second = int(rem / 1000)
	millisecond = int(rem % 1000)
	return
}

func timeOfDayMillis(f CalendarFields) int64 {
	return int64(f.Hour)*3600000 + int64(f.Minute)*60000 + int64(f.Second)*1000 + int64(f.Millisecond)
}

// epochDayWeekday returns the day of week (0=Sunday) for an epoch day
// number. 1970-01-01 was a Thursday.
func epochDayWeekday(days int64) int {
	return int(floorMod(days+4, 7))
}
