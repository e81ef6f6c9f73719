package dateformat

import (
	"fmt"
	"strings"
	"sync"
)

// LocaleData is the merged, immutable payload for one locale plus lazily
// derived lookup structures (flattened timezone names, compiled plural
// rules).
type LocaleData struct {
	locale string
	data   *CLDRData

	tzOnce sync.Once
	tzFlat map[string]string

	pluralOnce  sync.Once
	pluralRules []compiledPluralRule
}

type compiledPluralRule struct {
	category string
	matches  func(pluralOperands) bool
}

func newLocaleData(locale string, data *CLDRData) *LocaleData {
	return &LocaleData{locale: locale, data: data}
}

// Locale returns the composite id the payload was cached under.
func (d *LocaleData) Locale() string { return d.locale }

func calendarDataKey(calendarType CalendarType) string {
	return strings.ToLower(string(calendarType))
}

// calendar returns the bucket for a calendar type, falling back to the
// gregorian bucket (with a one-time warning) when the type has no data.
func (d *LocaleData) calendar(calendarType CalendarType) *CalendarData {
	key := calendarDataKey(calendarType)
	if cal, ok := d.data.Calendars[key]; ok && cal != nil {
		return cal
	}
	if calendarType != CalendarGregorian {
		warnOnce("calendar-data:"+d.locale+":"+key,
			"no calendar data for type, using gregorian",
			map[string]string{"locale": d.locale, "calendar": key})
		if cal, ok := d.data.Calendars[calendarDataKey(CalendarGregorian)]; ok && cal != nil {
			return cal
		}
	}
	return &CalendarData{}
}

// assertVocabulary panics when value is not one of the allowed style or
// width names. Passing an unknown vocabulary value is a programming
// error, not a runtime condition to recover from.
func assertVocabulary(kind, value string, allowed ...string) {
	for _, candidate := range allowed {
		if value == candidate {
			return
		}
	}
	panic(fmt.Sprintf("dateformat: invalid %s %q, expected one of %v", kind, value, allowed))
}

// Months returns the month name table for a width, in format context.
func (d *LocaleData) Months(width string, calendarType CalendarType) []string {
	assertVocabulary("width", width, "narrow", "abbreviated", "wide")
	return d.calendar(calendarType).Months.Format.ByWidth(width)
}

// MonthsStandAlone returns the stand-alone month name table for a width.
func (d *LocaleData) MonthsStandAlone(width string, calendarType CalendarType) []string {
	assertVocabulary("width", width, "narrow", "abbreviated", "wide")
	return d.calendar(calendarType).Months.StandAlone.ByWidth(width)
}

// Days returns the weekday name table for a width (0 = Sunday).
func (d *LocaleData) Days(width string, calendarType CalendarType) []string {
	assertVocabulary("width", width, "narrow", "abbreviated", "wide", "short")
	return d.calendar(calendarType).Days.Format.ByWidth(width)
}

// DaysStandAlone returns the stand-alone weekday name table for a width.
func (d *LocaleData) DaysStandAlone(width string, calendarType CalendarType) []string {
	assertVocabulary("width", width, "narrow", "abbreviated", "wide", "short")
	return d.calendar(calendarType).Days.StandAlone.ByWidth(width)
}

// Quarters returns the quarter name table for a width.
func (d *LocaleData) Quarters(width string, calendarType CalendarType) []string {
	assertVocabulary("width", width, "narrow", "abbreviated", "wide")
	return d.calendar(calendarType).Quarters.Format.ByWidth(width)
}

// Eras returns the era name table for a width, index-aligned with the
// calendar's era numbering.
func (d *LocaleData) Eras(width string, calendarType CalendarType) []string {
	assertVocabulary("width", width, "narrow", "abbreviated", "wide")
	return d.calendar(calendarType).Eras.ByWidth(width)
}

// DayPeriods returns the [AM, PM] name pair for a width.
func (d *LocaleData) DayPeriods(width string, calendarType CalendarType) []string {
	assertVocabulary("width", width, "narrow", "abbreviated", "wide")
	return d.calendar(calendarType).DayPeriods.Format.ByWidth(width)
}

// FlexibleDayPeriods returns the flexible period names for a width, keyed
// by period id (morning1, afternoon1, ...).
func (d *LocaleData) FlexibleDayPeriods(width string, calendarType CalendarType) map[string]string {
	assertVocabulary("width", width, "narrow", "abbreviated", "wide")
	return d.calendar(calendarType).FlexibleDayPeriods[width]
}

// DayPeriodRules returns the locale's flexible period time rules.
func (d *LocaleData) DayPeriodRules() map[string]DayPeriodRule {
	return d.data.DayPeriodRules
}

// DatePattern returns the date pattern for a named style.
func (d *LocaleData) DatePattern(style string, calendarType CalendarType) string {
	assertVocabulary("style", style, "short", "medium", "long", "full")
	return d.calendar(calendarType).DateFormats[style]
}

// TimePattern returns the time pattern for a named style.
func (d *LocaleData) TimePattern(style string, calendarType CalendarType) string {
	assertVocabulary("style", style, "short", "medium", "long", "full")
	return d.calendar(calendarType).TimeFormats[style]
}

// CombinedPattern returns the date-time combining template ("{1}, {0}")
// for a named style.
func (d *LocaleData) CombinedPattern(style string, calendarType CalendarType) string {
	assertVocabulary("style", style, "short", "medium", "long", "full")
	return d.calendar(calendarType).DateTimeFormats.Styles[style]
}

// AvailableFormats returns the skeleton → pattern table.
func (d *LocaleData) AvailableFormats(calendarType CalendarType) map[string]string {
	return d.calendar(calendarType).DateTimeFormats.AvailableFormats
}

// AppendItems returns the CLDR appendItems templates used to synthesize
// missing fields onto a matched pattern.
func (d *LocaleData) AppendItems(calendarType CalendarType) map[string]string {
	return d.calendar(calendarType).DateTimeFormats.AppendItems
}

// IntervalFormats returns the interval pattern table.
func (d *LocaleData) IntervalFormats(calendarType CalendarType) IntervalFormats {
	return d.calendar(calendarType).DateTimeFormats.IntervalFormats
}

// FirstDayOfWeek returns the locale's first day of week, 0 = Sunday.
func (d *LocaleData) FirstDayOfWeek() int {
	return d.data.WeekFirstDay
}

// MinDaysInFirstWeek returns the minimal number of days a week needs in
// the new year to count as its week one.
func (d *LocaleData) MinDaysInFirstWeek() int {
	return d.data.WeekMinDays
}

// Weekend returns the locale's weekend boundaries as 0-based weekdays,
// inclusive on both ends. Locales without explicit weekend data get the
// Saturday/Sunday default.
func (d *LocaleData) Weekend() (start, end int) {
	start, end = 6, 0
	if d.data.WeekendStart != nil {
		start = *d.data.WeekendStart
	}
	if d.data.WeekendEnd != nil {
		end = *d.data.WeekendEnd
	}
	return start, end
}

// RelativePattern returns the relative pattern for a scale and offset.
// Enumerated offsets ("yesterday") win over the generic plural-categorized
// patterns; the returned pattern may contain a {0} placeholder.
func (d *LocaleData) RelativePattern(scale string, diff int, style string) string {
	assertVocabulary("style", style, "wide", "short", "narrow")

	key := scale
	if style != "wide" {
		key = scale + "-" + style
	}
	field, ok := d.data.DateFields[key]
	if !ok || field == nil {
		// style variants fall back to the wide table
		field, ok = d.data.DateFields[scale]
		if !ok || field == nil {
			return ""
		}
	}

	if pattern, ok := field.Relative[fmt.Sprintf("%d", diff)]; ok {
		return pattern
	}

	table := field.Future
	quantity := diff
	if diff < 0 {
		table = field.Past
		quantity = -diff
	}
	if len(table) == 0 {
		return ""
	}
	category := d.PluralCategoryInt(quantity)
	if pattern, ok := table[category]; ok {
		return pattern
	}
	return table["other"]
}

// TimezoneTranslations returns the flat IANA id → translated name table,
// derived once from the nested tree.
func (d *LocaleData) TimezoneTranslations() map[string]string {
	d.tzOnce.Do(func() {
		d.tzFlat = flattenTimezoneNames(d.data.TimezoneNames)
	})
	return d.tzFlat
}

// CurrencyDigits returns the fraction digits for a currency code, 2 when
// the code has no override.
func (d *LocaleData) CurrencyDigits(code string) int {
	if digits, ok := d.data.CurrencyDigits[code]; ok {
		return digits
	}
	return 2
}

// CurrencySymbol returns the locale's symbol for a currency code, the
// code itself when no symbol is defined.
func (d *LocaleData) CurrencySymbol(code string) string {
	if symbol, ok := d.data.CurrencySymbols[code]; ok {
		return symbol
	}
	return code
}

// CurrencyPattern returns the currency display pattern for a style. The
// sap-short style fails hard when its CLDR bucket is missing; the caller
// asked for a structurally unsupported configuration.
func (d *LocaleData) CurrencyPattern(style string) (string, error) {
	assertVocabulary("style", style, "standard", "sap-short")
	format := d.data.CurrencyFormat
	switch style {
	case "standard":
		if format == nil {
			return "", nil
		}
		return format.Standard, nil
	default:
		if format == nil || len(format.SapShort) == 0 {
			return "", fmt.Errorf("dateformat: locale %q style %q: %w", d.locale, style, ErrUnsupportedCurrencyStyle)
		}
		if pattern, ok := format.SapShort["standard"]; ok {
			return pattern, nil
		}
		for _, pattern := range format.SapShort {
			return pattern, nil
		}
		return "", nil
	}
}

func (d *LocaleData) compiledPluralRules() []compiledPluralRule {
	d.pluralOnce.Do(func() {
		order := []string{"zero", "one", "two", "few", "many"}
		for _, category := range order {
			rule, ok := d.data.Plurals[category]
			if !ok {
				continue
			}
			matcher, err := compilePluralRule(rule)
			if err != nil {
				warnOnce("plural-rule:"+d.locale+":"+category,
					"cannot compile plural rule, skipping category",
					map[string]string{"locale": d.locale, "category": category, "rule": rule})
				continue
			}
			d.pluralRules = append(d.pluralRules, compiledPluralRule{category: category, matches: matcher})
		}
	})
	return d.pluralRules
}

// PluralCategory evaluates the locale's plural rules against a decimal
// number rendered as a string (fraction digits are significant: "1.0" is
// not "1").
func (d *LocaleData) PluralCategory(number string) string {
	operands, err := parsePluralOperands(number)
	if err != nil {
		return "other"
	}
	for _, rule := range d.compiledPluralRules() {
		if rule.matches(operands) {
			return rule.category
		}
	}
	return "other"
}

// PluralCategoryInt evaluates the plural rules for an integer quantity.
func (d *LocaleData) PluralCategoryInt(quantity int) string {
	return d.PluralCategory(fmt.Sprintf("%d", quantity))
}
