package dateformat

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// formatKind classifies a formatter by the fields it covers, which drives
// the required parts when parsing.
type formatKind int

const (
	formatKindDate formatKind = iota
	formatKindTime
	formatKindDateTime
)

// Formatter renders and parses dates for one locale, calendar type and
// pattern. Formatters are immutable once built and safe for concurrent
// use.
type Formatter struct {
	locale       *LocaleData
	calendar     CalendarArithmetic
	calendarType CalendarType
	numbering    WeekNumbering
	kind         formatKind
	pattern      string
	tokens       []patternToken
	skeleton     string
	interval     bool
}

func validStyle(style string) bool {
	switch style {
	case "short", "medium", "long", "full":
		return true
	}
	return false
}

func newFormatter(cfg *formatterConfig, kind formatKind, pattern string) (*Formatter, error) {
	impl, err := cfg.registry.Get(cfg.calendarType)
	if err != nil {
		return nil, err
	}
	return &Formatter{
		locale:       cfg.localeData,
		calendar:     impl,
		calendarType: cfg.calendarType,
		numbering:    cfg.numbering,
		kind:         kind,
		pattern:      pattern,
		tokens:       parsePattern(pattern),
	}, nil
}

// NewDateFormatter builds a formatter for a locale's date pattern of the
// given style ("short", "medium", "long" or "full").
func NewDateFormatter(style string, opts ...Option) (*Formatter, error) {
	if !validStyle(style) {
		return nil, fmt.Errorf("dateformat: date style %q: %w", style, ErrInvalidArgument)
	}
	cfg, err := newFormatterConfig(opts...)
	if err != nil {
		return nil, err
	}
	return newFormatter(cfg, formatKindDate, cfg.localeData.DatePattern(style, cfg.calendarType))
}

// NewTimeFormatter builds a formatter for a locale's time pattern of the
// given style.
func NewTimeFormatter(style string, opts ...Option) (*Formatter, error) {
	if !validStyle(style) {
		return nil, fmt.Errorf("dateformat: time style %q: %w", style, ErrInvalidArgument)
	}
	cfg, err := newFormatterConfig(opts...)
	if err != nil {
		return nil, err
	}
	return newFormatter(cfg, formatKindTime, cfg.localeData.TimePattern(style, cfg.calendarType))
}

// NewDateTimeFormatter combines a date and a time style through the
// locale's combining template, which is selected by the date style.
func NewDateTimeFormatter(dateStyle, timeStyle string, opts ...Option) (*Formatter, error) {
	if !validStyle(dateStyle) || !validStyle(timeStyle) {
		return nil, fmt.Errorf("dateformat: datetime styles %q/%q: %w", dateStyle, timeStyle, ErrInvalidArgument)
	}
	cfg, err := newFormatterConfig(opts...)
	if err != nil {
		return nil, err
	}
	combined := cfg.localeData.CombinedPattern(dateStyle, cfg.calendarType)
	pattern := strings.ReplaceAll(combined, "{1}", cfg.localeData.DatePattern(dateStyle, cfg.calendarType))
	pattern = strings.ReplaceAll(pattern, "{0}", cfg.localeData.TimePattern(timeStyle, cfg.calendarType))
	return newFormatter(cfg, formatKindDateTime, pattern)
}

// NewPatternFormatter builds a formatter over a raw CLDR pattern string.
func NewPatternFormatter(pattern string, opts ...Option) (*Formatter, error) {
	if pattern == "" {
		return nil, fmt.Errorf("dateformat: empty pattern: %w", ErrInvalidArgument)
	}
	cfg, err := newFormatterConfig(opts...)
	if err != nil {
		return nil, err
	}
	return newFormatter(cfg, patternKind(parsePattern(pattern)), pattern)
}

// patternKind infers whether a pattern carries date fields, time fields
// or both, so strict parsing only demands the parts the pattern renders.
func patternKind(tokens []patternToken) formatKind {
	hasDate, hasTime := false, false
	for _, token := range tokens {
		switch token.kind {
		case fieldText,
			fieldTimezoneGeneral, fieldTimezoneRFC822, fieldTimezoneISO8601Z,
			fieldTimezoneISO8601, fieldTimezoneName:
		case fieldDayPeriod, fieldFlexibleDayPeriod,
			fieldHour0To23, fieldHour1To24, fieldHour0To11, fieldHour1To12,
			fieldMinute, fieldSecond, fieldFractionalSecond:
			hasTime = true
		default:
			hasDate = true
		}
	}
	switch {
	case hasDate && !hasTime:
		return formatKindDate
	case hasTime && !hasDate:
		return formatKindTime
	}
	return formatKindDateTime
}

// NewSkeletonFormatter resolves a skeleton against the locale's available
// formats and builds formatter over the winning pattern.
func NewSkeletonFormatter(skeleton string, opts ...Option) (*Formatter, error) {
	cfg, err := newFormatterConfig(opts...)
	if err != nil {
		return nil, err
	}
	pattern, err := BestDateTimePattern(skeleton, cfg.localeData, cfg.calendarType)
	if err != nil {
		return nil, err
	}
	f, err := newFormatter(cfg, skeletonKind(skeleton), pattern)
	if err != nil {
		return nil, err
	}
	f.skeleton = skeleton
	return f, nil
}

// NewIntervalFormatter builds a formatter whose FormatInterval renders a
// date range using the locale's interval table for the skeleton.
func NewIntervalFormatter(skeleton string, opts ...Option) (*Formatter, error) {
	f, err := NewSkeletonFormatter(skeleton, opts...)
	if err != nil {
		return nil, err
	}
	f.interval = true
	return f, nil
}

// skeletonKind infers whether a skeleton carries date fields, time
// fields or both.
func skeletonKind(skeleton string) formatKind {
	hasDate := strings.ContainsAny(skeleton, "GyYQqMLwWdDEec")
	hasTime := strings.ContainsAny(skeleton, "aBhHKkmsS")
	switch {
	case hasDate && !hasTime:
		return formatKindDate
	case hasTime && !hasDate:
		return formatKindTime
	}
	return formatKindDateTime
}

// Pattern returns the resolved CLDR pattern this formatter renders.
func (f *Formatter) Pattern() string { return f.pattern }

// formatContext carries the calendar fields of one instant in the wall
// clock of its zone.
type formatContext struct {
	t       time.Time
	fields  CalendarFields
	wall    int64
	weekday int
}

func (f *Formatter) contextFor(t time.Time) formatContext {
	_, offset := t.Zone()
	wall := t.UnixMilli() + int64(offset)*1000
	fields := f.calendar.FromEpochMillis(wall)
	return formatContext{
		t:       t,
		fields:  fields,
		wall:    wall,
		weekday: epochDayWeekday(floorDiv(wall, dayMillis)),
	}
}

// Format renders an instant using the wall clock of its location.
func (f *Formatter) Format(t time.Time) string {
	ctx := f.contextFor(t)
	var out strings.Builder
	for _, token := range f.tokens {
		out.WriteString(f.formatToken(token, ctx))
	}
	return out.String()
}

// FormatZoned renders a zoned date in its configured zone. Invalid dates
// render empty.
func (f *Formatter) FormatZoned(d ZonedDate) string {
	if !d.Valid() {
		return ""
	}
	return f.Format(d.wall())
}

func padInt(v, width int) string {
	s := strconv.Itoa(v)
	if v < 0 {
		s = strconv.Itoa(-v)
	}
	for len(s) < width {
		s = "0" + s
	}
	if v < 0 {
		s = "-" + s
	}
	return s
}

// widthName maps a field run length to a CLDR name width.
func widthName(length int) string {
	switch {
	case length >= 6:
		return "short"
	case length == 5:
		return "narrow"
	case length == 4:
		return "wide"
	}
	return "abbreviated"
}

func eraWidthName(length int) string {
	switch {
	case length >= 5:
		return "narrow"
	case length == 4:
		return "wide"
	}
	return "abbreviated"
}

func nameAt(names []string, index int) string {
	if index < 0 || index >= len(names) {
		return ""
	}
	return names[index]
}

func (f *Formatter) weekNumber(ctx formatContext) WeekNumber {
	date, err := CalendarDateFromMillis(ctx.wall, f.calendarType)
	if err != nil {
		return WeekNumber{Year: ctx.fields.Year, Week: 1}
	}
	week, err := CalculateWeekNumber(date, f.numbering, f.locale)
	if err != nil {
		return WeekNumber{Year: ctx.fields.Year, Week: 1}
	}
	return week
}

func (f *Formatter) dayOfYear(ctx formatContext) int {
	start := f.calendar.ToEpochMillis(CalendarFields{
		Era:  ctx.fields.Era,
		Year: ctx.fields.Year,
		Day:  1,
	})
	return int(floorDiv(ctx.wall, dayMillis)-floorDiv(start, dayMillis)) + 1
}

// formatYear renders the year field. In the Japanese calendar the ja
// locale writes era year one as 元 when the pattern spells the 年
// counter next to it.
func (f *Formatter) formatYear(year, length int) string {
	if f.calendarType == CalendarJapanese && year == 1 &&
		strings.HasPrefix(f.locale.Locale(), "ja") && strings.Contains(f.pattern, "年") {
		return "元"
	}
	if length == 2 {
		return padInt(((year % 100) + 100) % 100, 2)
	}
	// years under 100 widen to four digits so "50-03-15" cannot be read
	// as a two-digit year; era-relative Japanese years stay short
	if year < 100 && length < 4 && f.calendarType != CalendarJapanese {
		length = 4
	}
	return padInt(year, length)
}

func (f *Formatter) formatDayPeriod(ctx formatContext, length int) string {
	periods := f.locale.DayPeriods(widthName(length), f.calendarType)
	index := 0
	if ctx.fields.Hour >= 12 {
		index = 1
	}
	if name := nameAt(periods, index); name != "" {
		return name
	}
	if index == 1 {
		return "PM"
	}
	return "AM"
}

// formatFlexibleDayPeriod resolves the B field against the locale's day
// period rules, falling back to plain AM/PM when no rule matches.
func (f *Formatter) formatFlexibleDayPeriod(ctx formatContext, length int) string {
	minutes := ctx.fields.Hour*60 + ctx.fields.Minute
	rules := f.locale.DayPeriodRules()
	names := f.locale.FlexibleDayPeriods(widthName(length), f.calendarType)
	for period, rule := range rules {
		if rule.Matches(minutes) {
			if name, ok := names[period]; ok && name != "" {
				return name
			}
		}
	}
	return f.formatDayPeriod(ctx, length)
}

func (f *Formatter) formatToken(token patternToken, ctx formatContext) string {
	fields := ctx.fields
	switch token.kind {
	case fieldText:
		return token.text
	case fieldEra:
		eras := f.locale.Eras(eraWidthName(token.length), f.calendarType)
		return nameAt(eras, fields.Era)
	case fieldYear:
		return f.formatYear(fields.Year, token.length)
	case fieldWeekYear:
		return f.formatYear(f.weekNumber(ctx).Year, token.length)
	case fieldQuarter, fieldQuarterStandAlone:
		quarter := fields.Month / 3
		if token.length <= 2 {
			return padInt(quarter+1, token.length)
		}
		return nameAt(f.locale.Quarters(widthName(token.length), f.calendarType), quarter)
	case fieldMonth:
		if token.length <= 2 {
			return padInt(fields.Month+1, token.length)
		}
		return nameAt(f.locale.Months(widthName(token.length), f.calendarType), fields.Month)
	case fieldMonthStandAlone:
		if token.length <= 2 {
			return padInt(fields.Month+1, token.length)
		}
		return nameAt(f.locale.MonthsStandAlone(widthName(token.length), f.calendarType), fields.Month)
	case fieldWeek:
		return padInt(f.weekNumber(ctx).Week, token.length)
	case fieldDay:
		return padInt(fields.Day, token.length)
	case fieldDayOfYear:
		return padInt(f.dayOfYear(ctx), token.length)
	case fieldWeekday:
		return nameAt(f.locale.Days(widthName(token.length), f.calendarType), ctx.weekday)
	case fieldWeekdayLocal:
		if token.length <= 2 {
			first := f.locale.FirstDayOfWeek()
			return padInt((ctx.weekday-first+7)%7+1, token.length)
		}
		return nameAt(f.locale.Days(widthName(token.length), f.calendarType), ctx.weekday)
	case fieldWeekdayStandAlone:
		if token.length == 1 {
			first := f.locale.FirstDayOfWeek()
			return strconv.Itoa((ctx.weekday-first+7)%7 + 1)
		}
		return nameAt(f.locale.DaysStandAlone(widthName(token.length), f.calendarType), ctx.weekday)
	case fieldDayPeriod:
		return f.formatDayPeriod(ctx, token.length)
	case fieldFlexibleDayPeriod:
		return f.formatFlexibleDayPeriod(ctx, token.length)
	case fieldHour0To23:
		return padInt(fields.Hour, token.length)
	case fieldHour1To24:
		hour := fields.Hour
		if hour == 0 {
			hour = 24
		}
		return padInt(hour, token.length)
	case fieldHour0To11:
		return padInt(fields.Hour%12, token.length)
	case fieldHour1To12:
		hour := fields.Hour % 12
		if hour == 0 {
			hour = 12
		}
		return padInt(hour, token.length)
	case fieldMinute:
		return padInt(fields.Minute, token.length)
	case fieldSecond:
		return padInt(fields.Second, token.length)
	case fieldFractionalSecond:
		return fractionalSecond(fields.Millisecond, token.length)
	case fieldTimezoneGeneral:
		return f.formatZoneGeneral(ctx.t, token.length)
	case fieldTimezoneRFC822:
		return rfc822Offset(ctx.t)
	case fieldTimezoneISO8601Z:
		return iso8601Offset(ctx.t, token.length, true)
	case fieldTimezoneISO8601:
		return iso8601Offset(ctx.t, token.length, false)
	case fieldTimezoneName:
		return f.formatZoneName(ctx.t, token)
	}
	return ""
}

// fractionalSecond pads milliseconds to three digits, then truncates or
// zero-extends to the requested length.
func fractionalSecond(millis, length int) string {
	s := padInt(millis, 3)
	if length <= len(s) {
		return s[:length]
	}
	return s + strings.Repeat("0", length-len(s))
}

func offsetHM(t time.Time) (sign string, hours, minutes int) {
	_, offset := t.Zone()
	sign = "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return sign, offset / 3600, offset % 3600 / 60
}

func gmtOffset(t time.Time, long bool) string {
	sign, hours, minutes := offsetHM(t)
	if long {
		return fmt.Sprintf("GMT%s%02d:%02d", sign, hours, minutes)
	}
	if minutes != 0 {
		return fmt.Sprintf("GMT%s%d:%02d", sign, hours, minutes)
	}
	return fmt.Sprintf("GMT%s%d", sign, hours)
}

func rfc822Offset(t time.Time) string {
	sign, hours, minutes := offsetHM(t)
	return fmt.Sprintf("%s%02d%02d", sign, hours, minutes)
}

func iso8601Offset(t time.Time, length int, zForUTC bool) string {
	_, offset := t.Zone()
	if offset == 0 && zForUTC {
		return "Z"
	}
	sign, hours, minutes := offsetHM(t)
	switch length {
	case 1:
		if minutes == 0 {
			return fmt.Sprintf("%s%02d", sign, hours)
		}
		return fmt.Sprintf("%s%02d%02d", sign, hours, minutes)
	case 2, 4:
		return fmt.Sprintf("%s%02d%02d", sign, hours, minutes)
	}
	return fmt.Sprintf("%s%02d:%02d", sign, hours, minutes)
}

func (f *Formatter) formatZoneGeneral(t time.Time, length int) string {
	if length >= 4 {
		return gmtOffset(t, true)
	}
	if name, _ := t.Zone(); name != "" && name != "Local" {
		return name
	}
	return gmtOffset(t, false)
}

// formatZoneName renders the V, v and O fields. Zone IDs resolve through
// the locale's timezone translation tree when one exists.
func (f *Formatter) formatZoneName(t time.Time, token patternToken) string {
	switch token.symbol {
	case 'O':
		return gmtOffset(t, token.length >= 4)
	case 'V':
		zone := t.Location().String()
		if token.length >= 2 {
			return zone
		}
		if name, ok := f.locale.TimezoneTranslations()[zone]; ok {
			return name
		}
		return zone
	default: // v
		zone := t.Location().String()
		if name, ok := f.locale.TimezoneTranslations()[zone]; ok {
			return name
		}
		return gmtOffset(t, token.length >= 4)
	}
}

// intervalDiffSymbols orders the interval table keys from the largest
// field to the smallest; the first field the two endpoints disagree on,
// among the fields the skeleton renders, selects the interval pattern.
var intervalDiffSymbols = []struct {
	symbol byte
	group  int
	differ func(f *Formatter, a, b formatContext) bool
}{
	{'G', groupEra, func(_ *Formatter, a, b formatContext) bool { return a.fields.Era != b.fields.Era }},
	{'y', groupYear, func(_ *Formatter, a, b formatContext) bool { return a.fields.Year != b.fields.Year }},
	{'Q', groupQuarter, func(_ *Formatter, a, b formatContext) bool { return a.fields.Month/3 != b.fields.Month/3 }},
	{'M', groupMonth, func(_ *Formatter, a, b formatContext) bool { return a.fields.Month != b.fields.Month }},
	{'w', groupWeek, func(f *Formatter, a, b formatContext) bool { return f.weekNumber(a) != f.weekNumber(b) }},
	{'d', groupDay, func(_ *Formatter, a, b formatContext) bool { return a.fields.Day != b.fields.Day }},
	{'a', groupDayPeriod, func(_ *Formatter, a, b formatContext) bool { return (a.fields.Hour >= 12) != (b.fields.Hour >= 12) }},
	{'H', groupHour, func(_ *Formatter, a, b formatContext) bool { return a.fields.Hour != b.fields.Hour }},
	{'h', groupHour, func(_ *Formatter, a, b formatContext) bool { return a.fields.Hour != b.fields.Hour }},
	{'m', groupMinute, func(_ *Formatter, a, b formatContext) bool { return a.fields.Minute != b.fields.Minute }},
	{'s', groupSecond, func(_ *Formatter, a, b formatContext) bool { return a.fields.Second != b.fields.Second }},
}

// intervalDiffRelevant reports whether a diff symbol matters for this
// formatter's skeleton. The day period is implied by a 12-hour skeleton,
// and the two hour diff symbols are tied to the skeleton's hour cycle.
func (f *Formatter) intervalDiffRelevant(symbol byte, group int) bool {
	switch symbol {
	case 'a':
		return strings.ContainsAny(f.skeleton, "aBhK")
	case 'H':
		return strings.ContainsAny(f.skeleton, "Hk")
	case 'h':
		return strings.ContainsAny(f.skeleton, "hK")
	}
	for i := 0; i < len(f.skeleton); i++ {
		if spec, ok := skeletonSymbols[f.skeleton[i]]; ok && spec.group == group {
			return true
		}
	}
	return false
}

// FormatInterval renders a date range. When both endpoints agree on
// every field of the skeleton the range collapses to a single formatted
// date. A missing interval entry falls back to the locale's fallback
// template around two full renderings.
func (f *Formatter) FormatInterval(from, to time.Time) string {
	fromCtx := f.contextFor(from)
	toCtx := f.contextFor(to)

	intervals := f.locale.IntervalFormats(f.calendarType)
	entry := intervals.Formats[f.skeleton]

	var pattern string
	differs := false
	for _, candidate := range intervalDiffSymbols {
		if !f.intervalDiffRelevant(candidate.symbol, candidate.group) {
			continue
		}
		if !candidate.differ(f, fromCtx, toCtx) {
			continue
		}
		differs = true
		if p, ok := entry[string(candidate.symbol)]; ok {
			pattern = p
		}
		break
	}
	if !differs {
		return f.Format(from)
	}
	if pattern == "" {
		fallback := intervals.Fallback
		if fallback == "" {
			fallback = "{0} – {1}"
		}
		out := strings.ReplaceAll(fallback, "{0}", f.Format(from))
		return strings.ReplaceAll(out, "{1}", f.Format(to))
	}

	tokens := parsePattern(pattern)
	repeat := intervalRepeatIndex(tokens)
	var out strings.Builder
	for i, token := range tokens {
		if i < repeat {
			out.WriteString(f.formatToken(token, fromCtx))
		} else {
			out.WriteString(f.formatToken(token, toCtx))
		}
	}
	return out.String()
}

// intervalRepeatIndex finds where the second half of an interval pattern
// begins: the first field whose symbol already occurred earlier.
func intervalRepeatIndex(tokens []patternToken) int {
	seen := make(map[byte]bool)
	for i, token := range tokens {
		if token.kind == fieldText {
			continue
		}
		if seen[token.symbol] {
			return i
		}
		seen[token.symbol] = true
	}
	return len(tokens)
}
