package dateformat

import "fmt"

// WeekNumbering names a calendar week numbering rule.
type WeekNumbering string

const (
	// WeekDefault applies the locale's own first day and minimal days.
	WeekDefault WeekNumbering = "Default"
	// WeekISO8601 is Monday-first with at least four days in week one.
	WeekISO8601 WeekNumbering = "ISO_8601"
	// WeekMiddleEastern is Saturday-first, week one contains January 1.
	WeekMiddleEastern WeekNumbering = "MiddleEastern"
	// WeekWesternTraditional is Sunday-first, week one starts at
	// January 1 even mid-week (split weeks at the year boundary).
	WeekWesternTraditional WeekNumbering = "WesternTraditional"
)

// WeekNumber is a week within a week-based year. Year can differ from the
// civil year near the year boundary under whole-week rules.
type WeekNumber struct {
	Year int
	Week int
}

type weekConfig struct {
	firstDay int
	minDays  int
	split    bool
}

func weekConfigFor(numbering WeekNumbering, locale *LocaleData) (weekConfig, error) {
	switch numbering {
	case WeekISO8601:
		return weekConfig{firstDay: 1, minDays: 4}, nil
	case WeekMiddleEastern:
		return weekConfig{firstDay: 6, minDays: 1}, nil
	case WeekWesternTraditional:
		return weekConfig{firstDay: 0, minDays: 1, split: true}, nil
	case WeekDefault:
		if locale == nil {
			return weekConfig{}, fmt.Errorf("dateformat: default week numbering needs locale data: %w", ErrInvalidWeekConfig)
		}
		cfg := weekConfig{firstDay: locale.FirstDayOfWeek(), minDays: locale.MinDaysInFirstWeek()}
		if cfg.firstDay < 0 || cfg.firstDay > 6 || cfg.minDays < 1 || cfg.minDays > 7 {
			return weekConfig{}, fmt.Errorf("dateformat: locale %q week data firstDay=%d minDays=%d: %w",
				locale.Locale(), cfg.firstDay, cfg.minDays, ErrInvalidWeekConfig)
		}
		// US-style locales split the week containing January 1
		cfg.split = cfg.firstDay == 0 && cfg.minDays == 1
		return cfg, nil
	default:
		return weekConfig{}, fmt.Errorf("dateformat: week numbering %q: %w", numbering, ErrInvalidWeekConfig)
	}
}

// FirstDayOfWeek returns the first day of week (0 = Sunday) for a
// numbering rule, consulting locale data for WeekDefault.
func FirstDayOfWeek(numbering WeekNumbering, locale *LocaleData) (int, error) {
	cfg, err := weekConfigFor(numbering, locale)
	if err != nil {
		return 0, err
	}
	return cfg.firstDay, nil
}

// IsWeekend reports whether date falls on the locale's weekend. The
// weekend span may wrap across the week boundary (Friday to Saturday in
// much of the Middle East).
func IsWeekend(date *CalendarDate, locale *LocaleData) bool {
	start, end := locale.Weekend()
	day := date.Weekday()
	if start <= end {
		return day >= start && day <= end
	}
	return day >= start || day <= end
}

// weekStartOfYear returns the epoch day that starts week one of year.
func weekStartOfYear(year int, cfg weekConfig) int64 {
	jan1 := daysFromCivil(year, 1, 1)
	rel := int64((epochDayWeekday(jan1)-cfg.firstDay+7) % 7)
	start := jan1 - rel
	if 7-rel < int64(cfg.minDays) {
		start += 7
	}
	return start
}

// CalculateWeekNumber computes the week number of date under a numbering
// rule. Week arithmetic is civil (Gregorian) regardless of the date's
// calendar type, since week numbering is defined on the civil year.
func CalculateWeekNumber(date *CalendarDate, numbering WeekNumbering, locale *LocaleData) (WeekNumber, error) {
	cfg, err := weekConfigFor(numbering, locale)
	if err != nil {
		return WeekNumber{}, err
	}

	days := floorDiv(date.UnixMilli(), dayMillis)
	year, _, _ := civilFromDays(days)

	if cfg.split {
		// split rule: every date stays in its own civil year, week one
		// begins at January 1 whatever weekday that is
		jan1 := daysFromCivil(year, 1, 1)
		rel := (epochDayWeekday(jan1) - cfg.firstDay + 7) % 7
		week := (int(days-jan1)+rel)/7 + 1
		return WeekNumber{Year: year, Week: week}, nil
	}

	if start := weekStartOfYear(year+1, cfg); days >= start {
		return WeekNumber{Year: year + 1, Week: 1}, nil
	}
	start := weekStartOfYear(year, cfg)
	if days < start {
		year--
		start = weekStartOfYear(year, cfg)
	}
	return WeekNumber{Year: year, Week: int((days-start)/7) + 1}, nil
}
