package dateformat

import (
	"strings"
	"time"
)

// parsedFields accumulates field values while consuming input.
type parsedFields struct {
	era         int
	year        int
	weekYear    int
	month       int
	day         int
	hour        int
	minute      int
	second      int
	millisecond int
	pm          bool

	hasEra      bool
	hasYear     bool
	hasWeekYear bool
	hasMonth    bool
	hasDay      bool
	hasHour     bool
	hasHour12   bool
	hasMinute   bool
	hasSecond   bool
	hasPeriod   bool

	zoneOffset    int
	hasZoneOffset bool
}

func (p *parsedFields) merge(other parsedFields) {
	if !p.hasEra && other.hasEra {
		p.era, p.hasEra = other.era, true
	}
	if !p.hasYear && other.hasYear {
		p.year, p.hasYear = other.year, true
	}
	if !p.hasWeekYear && other.hasWeekYear {
		p.weekYear, p.hasWeekYear = other.weekYear, true
	}
	if !p.hasMonth && other.hasMonth {
		p.month, p.hasMonth = other.month, true
	}
	if !p.hasDay && other.hasDay {
		p.day, p.hasDay = other.day, true
	}
	if !p.hasHour && other.hasHour {
		p.hour, p.hasHour = other.hour, true
		p.hasHour12 = other.hasHour12
	}
	if !p.hasMinute && other.hasMinute {
		p.minute, p.hasMinute = other.minute, true
	}
	if !p.hasSecond && other.hasSecond {
		p.second, p.hasSecond = other.second, true
		p.millisecond = other.millisecond
	}
	if !p.hasPeriod && other.hasPeriod {
		p.pm, p.hasPeriod = other.pm, true
	}
	if !p.hasZoneOffset && other.hasZoneOffset {
		p.zoneOffset, p.hasZoneOffset = other.zoneOffset, true
	}
}

type parser struct {
	input string
	pos   int
}

func (p *parser) remaining() string { return p.input[p.pos:] }

func (p *parser) literal(text string) bool {
	if strings.HasPrefix(p.remaining(), text) {
		p.pos += len(text)
		return true
	}
	// a literal space tolerates any run of whitespace
	if text == " " {
		rest := strings.TrimLeft(p.remaining(), " \t  ")
		if len(rest) < len(p.remaining()) {
			p.pos = len(p.input) - len(rest)
			return true
		}
	}
	return false
}

// number consumes one to maxDigits ASCII digits.
func (p *parser) number(maxDigits int) (int, bool) {
	start := p.pos
	value := 0
	for p.pos < len(p.input) && p.pos-start < maxDigits {
		ch := p.input[p.pos]
		if ch < '0' || ch > '9' {
			break
		}
		value = value*10 + int(ch-'0')
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	return value, true
}

// nameCandidate is one parseable name with the field value it encodes.
type nameCandidate struct {
	text  string
	value int
}

// name matches the longest candidate at the current position.
func (p *parser) name(candidates []nameCandidate) (int, bool) {
	bestLen := 0
	bestValue := 0
	rest := p.remaining()
	for _, candidate := range candidates {
		if candidate.text == "" || len(candidate.text) <= bestLen {
			continue
		}
		if strings.HasPrefix(rest, candidate.text) {
			bestLen = len(candidate.text)
			bestValue = candidate.value
		}
	}
	if bestLen == 0 {
		return 0, false
	}
	p.pos += bestLen
	return bestValue, true
}

// normalizePeriod lowercases a day period name and strips spacing and
// periods, so "a. m." still matches "AM".
func normalizePeriod(s string) string {
	var out strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '.', ' ', ' ':
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// period matches a day period leniently: each candidate compares both
// exactly and under a normalization that ignores spacing and periods,
// and the longest consumption wins, so "p. m." beats the narrow "p".
func (p *parser) period(candidates []nameCandidate) (int, bool) {
	rest := p.remaining()
	bestConsumed := 0
	bestValue := 0
	for _, candidate := range candidates {
		if candidate.text != "" && len(candidate.text) > bestConsumed &&
			strings.HasPrefix(rest, candidate.text) {
			bestConsumed = len(candidate.text)
			bestValue = candidate.value
		}

		normalized := normalizePeriod(candidate.text)
		if normalized == "" {
			continue
		}
		consumed := 0
		matched := 0
		for _, r := range rest {
			size := len(string(r))
			if matched >= len(normalized) {
				// a trailing period belongs to the abbreviation
				if r == '.' {
					consumed += size
					continue
				}
				break
			}
			switch r {
			case ' ', '.', ' ', ' ':
				consumed += size
				continue
			}
			lower := strings.ToLower(string(r))
			if !strings.HasPrefix(normalized[matched:], lower) {
				break
			}
			matched += len(lower)
			consumed += size
		}
		if matched == len(normalized) && consumed > bestConsumed {
			bestConsumed = consumed
			bestValue = candidate.value
		}
	}
	if bestConsumed == 0 {
		return 0, false
	}
	p.pos += bestConsumed
	return bestValue, true
}

// zoneOffset reads "Z", ISO offsets and localized GMT forms, returning
// seconds east of UTC.
func (p *parser) zoneOffset() (int, bool) {
	rest := p.remaining()
	if strings.HasPrefix(rest, "Z") {
		p.pos++
		return 0, true
	}
	if strings.HasPrefix(rest, "GMT") || strings.HasPrefix(rest, "UTC") {
		p.pos += 3
		rest = p.remaining()
		if len(rest) == 0 || (rest[0] != '+' && rest[0] != '-') {
			return 0, true
		}
	}
	rest = p.remaining()
	if len(rest) == 0 || (rest[0] != '+' && rest[0] != '-') {
		return 0, false
	}
	sign := 1
	if rest[0] == '-' {
		sign = -1
	}
	p.pos++
	hours, ok := p.number(2)
	if !ok {
		p.pos--
		return 0, false
	}
	minutes := 0
	if strings.HasPrefix(p.remaining(), ":") {
		p.pos++
		minutes, ok = p.number(2)
		if !ok {
			return 0, false
		}
	} else if len(p.remaining()) >= 2 {
		if v, ok := p.number(2); ok {
			minutes = v
		}
	}
	return sign * (hours*3600 + minutes*60), true
}

func (f *Formatter) monthCandidates(standalone bool) []nameCandidate {
	var out []nameCandidate
	for _, width := range []string{"wide", "abbreviated", "narrow"} {
		names := f.locale.Months(width, f.calendarType)
		if standalone {
			names = f.locale.MonthsStandAlone(width, f.calendarType)
		}
		for i, name := range names {
			out = append(out, nameCandidate{text: name, value: i})
		}
	}
	return out
}

func (f *Formatter) dayCandidates(standalone bool) []nameCandidate {
	var out []nameCandidate
	for _, width := range []string{"wide", "abbreviated", "short", "narrow"} {
		names := f.locale.Days(width, f.calendarType)
		if standalone {
			names = f.locale.DaysStandAlone(width, f.calendarType)
		}
		for i, name := range names {
			out = append(out, nameCandidate{text: name, value: i})
		}
	}
	return out
}

func (f *Formatter) eraCandidates() []nameCandidate {
	var out []nameCandidate
	for _, width := range []string{"wide", "abbreviated", "narrow"} {
		for i, name := range f.locale.Eras(width, f.calendarType) {
			out = append(out, nameCandidate{text: name, value: i})
		}
	}
	return out
}

func (f *Formatter) periodCandidates() []nameCandidate {
	var out []nameCandidate
	for _, width := range []string{"wide", "abbreviated", "narrow"} {
		for i, name := range f.locale.DayPeriods(width, f.calendarType) {
			out = append(out, nameCandidate{text: name, value: i})
		}
	}
	out = append(out, nameCandidate{text: "AM", value: 0}, nameCandidate{text: "PM", value: 1})
	return out
}

// windowYear widens a two digit year into the century window ending
// twenty years past today.
func windowYear(value int) int {
	current := time.Now().Year()
	century := current - current%100
	year := century + value
	if year > current+20 {
		year -= 100
	}
	return year
}

// numericToken reports whether a token consumes digits, for the widths
// it would parse at.
func numericToken(token patternToken) bool {
	switch token.kind {
	case fieldYear, fieldWeekYear, fieldWeek, fieldDayOfYear, fieldDay,
		fieldHour0To23, fieldHour1To24, fieldHour0To11, fieldHour1To12,
		fieldMinute, fieldSecond, fieldFractionalSecond:
		return true
	case fieldQuarter, fieldQuarterStandAlone, fieldMonth, fieldMonthStandAlone:
		return token.length <= 2
	case fieldWeekday, fieldWeekdayStandAlone, fieldWeekdayLocal:
		return (token.kind == fieldWeekdayLocal && token.length <= 2) ||
			(token.kind == fieldWeekdayStandAlone && token.length == 1)
	}
	return false
}

// parseToken consumes one pattern token. Fields that cannot contribute
// to the result, like the day of year, are still consumed for position.
// next is the following token, nil at the end of the pattern.
func (f *Formatter) parseToken(p *parser, token patternToken, next *patternToken, out *parsedFields) bool {
	maxDigits := token.length
	if maxDigits < 2 {
		maxDigits = 2
	}
	switch token.kind {
	case fieldText:
		return p.literal(token.text)
	case fieldEra:
		value, ok := p.name(f.eraCandidates())
		if !ok {
			return false
		}
		out.era, out.hasEra = value, true
		return true
	case fieldYear, fieldWeekYear:
		limit := 4 + token.length
		if next != nil && numericToken(*next) {
			// separator-less patterns like yyyyMMdd need the year scan
			// capped so the digits that follow stay with their fields
			limit = token.length
		}
		value, ok := p.number(limit)
		if !ok {
			return false
		}
		if token.length == 2 && value < 100 {
			value = windowYear(value)
		}
		if token.kind == fieldYear {
			out.year, out.hasYear = value, true
		} else {
			out.weekYear, out.hasWeekYear = value, true
		}
		return true
	case fieldQuarter, fieldQuarterStandAlone:
		if token.length <= 2 {
			_, ok := p.number(maxDigits)
			return ok
		}
		_, ok := p.name(quarterCandidates(f))
		return ok
	case fieldMonth, fieldMonthStandAlone:
		if token.length <= 2 {
			value, ok := p.number(maxDigits)
			if !ok || value < 1 {
				return false
			}
			out.month, out.hasMonth = value-1, true
			return true
		}
		value, ok := p.name(f.monthCandidates(token.kind == fieldMonthStandAlone))
		if !ok {
			return false
		}
		out.month, out.hasMonth = value, true
		return true
	case fieldWeek, fieldDayOfYear:
		_, ok := p.number(3)
		return ok
	case fieldDay:
		value, ok := p.number(maxDigits)
		if !ok || value < 1 {
			return false
		}
		out.day, out.hasDay = value, true
		return true
	case fieldWeekday, fieldWeekdayStandAlone, fieldWeekdayLocal:
		if (token.kind == fieldWeekdayLocal && token.length <= 2) ||
			(token.kind == fieldWeekdayStandAlone && token.length == 1) {
			_, ok := p.number(1)
			return ok
		}
		_, ok := p.name(f.dayCandidates(token.kind == fieldWeekdayStandAlone))
		return ok
	case fieldDayPeriod, fieldFlexibleDayPeriod:
		value, ok := p.period(f.periodCandidates())
		if !ok {
			return false
		}
		out.pm, out.hasPeriod = value == 1, true
		return true
	case fieldHour0To23:
		value, ok := p.number(maxDigits)
		if !ok || value > 23 {
			return false
		}
		out.hour, out.hasHour = value, true
		return true
	case fieldHour1To24:
		value, ok := p.number(maxDigits)
		if !ok || value < 1 || value > 24 {
			return false
		}
		out.hour, out.hasHour = value%24, true
		return true
	case fieldHour0To11:
		value, ok := p.number(maxDigits)
		if !ok || value > 11 {
			return false
		}
		out.hour, out.hasHour, out.hasHour12 = value, true, true
		return true
	case fieldHour1To12:
		value, ok := p.number(maxDigits)
		if !ok || value < 1 || value > 12 {
			return false
		}
		out.hour, out.hasHour, out.hasHour12 = value%12, true, true
		return true
	case fieldMinute:
		value, ok := p.number(maxDigits)
		if !ok || value > 59 {
			return false
		}
		out.minute, out.hasMinute = value, true
		return true
	case fieldSecond:
		value, ok := p.number(maxDigits)
		if !ok || value > 59 {
			return false
		}
		out.second, out.hasSecond = value, true
		return true
	case fieldFractionalSecond:
		start := p.pos
		value, ok := p.number(token.length)
		if !ok {
			return false
		}
		out.millisecond = scaleFraction(value, p.pos-start)
		return true
	case fieldTimezoneGeneral, fieldTimezoneRFC822, fieldTimezoneISO8601Z,
		fieldTimezoneISO8601, fieldTimezoneName:
		value, ok := p.zoneOffset()
		if !ok {
			return false
		}
		out.zoneOffset, out.hasZoneOffset = value, true
		return true
	}
	return false
}

func quarterCandidates(f *Formatter) []nameCandidate {
	var out []nameCandidate
	for _, width := range []string{"wide", "abbreviated"} {
		for i, name := range f.locale.Quarters(width, f.calendarType) {
			out = append(out, nameCandidate{text: name, value: i})
		}
	}
	return out
}

// scaleFraction turns parsed fractional digits into milliseconds; three
// or more digits truncate, fewer scale up.
func scaleFraction(value, digits int) int {
	for digits > 3 {
		value /= 10
		digits--
	}
	for digits < 3 {
		value *= 10
		digits++
	}
	return value
}

// requiredPresent checks the minimum parts for this formatter kind: a
// date needs day, month and a year, or a week based year; a time needs
// an hour.
func (f *Formatter) requiredPresent(fields parsedFields) bool {
	dateOK := (fields.hasDay && fields.hasMonth && fields.hasYear) || fields.hasWeekYear
	timeOK := fields.hasHour
	switch f.kind {
	case formatKindDate:
		return dateOK
	case formatKindTime:
		return timeOK
	}
	return dateOK && timeOK
}

func (f *Formatter) parseTokens(p *parser, tokens []patternToken, out *parsedFields) bool {
	for i, token := range tokens {
		var next *patternToken
		if i+1 < len(tokens) {
			next = &tokens[i+1]
		}
		if !f.parseToken(p, token, next, out) {
			return false
		}
	}
	return true
}

func (f *Formatter) resolve(fields parsedFields, loc *time.Location) (time.Time, bool) {
	year := fields.year
	if !fields.hasYear {
		if !fields.hasWeekYear {
			year = 1970
		} else {
			year = fields.weekYear
		}
	}
	month, day := fields.month, fields.day
	if !fields.hasMonth {
		month = 0
	}
	if !fields.hasDay {
		day = 1
	}
	hour := fields.hour
	if fields.hasHour12 && fields.pm {
		hour += 12
	}
	era := fields.era
	if !fields.hasEra {
		era = f.calendar.DefaultEra()
	}

	wall := f.calendar.ToEpochMillis(CalendarFields{
		Era:         era,
		Year:        year,
		Month:       month,
		Day:         day,
		Hour:        hour,
		Minute:      fields.minute,
		Second:      fields.second,
		Millisecond: fields.millisecond,
	})

	if fields.hasZoneOffset {
		instant := wall - int64(fields.zoneOffset)*1000
		return time.UnixMilli(instant).In(loc), true
	}

	// anchor the wall clock in loc
	utc := time.UnixMilli(wall).UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), utc.Hour(), utc.Minute(),
		utc.Second(), utc.Nanosecond(), loc), true
}

// Parse reads a formatted date strictly: every pattern token must
// consume input, required parts must be present and nothing may trail.
// The wall clock anchors in UTC unless the input carried an offset.
func (f *Formatter) Parse(value string) (time.Time, bool) {
	return f.ParseIn(value, time.UTC)
}

// ParseIn parses like Parse, anchoring offset-less input in loc.
func (f *Formatter) ParseIn(value string, loc *time.Location) (time.Time, bool) {
	p := &parser{input: value}
	var fields parsedFields
	if !f.parseTokens(p, f.tokens, &fields) {
		return time.Time{}, false
	}
	if p.pos != len(value) {
		return time.Time{}, false
	}
	if !f.requiredPresent(fields) {
		return time.Time{}, false
	}
	return f.resolve(fields, loc)
}

// ParseInterval reads a formatted date range back into its endpoints.
// Fields one side omits inherit from the other, so "Aug 5 – 9, 2024"
// resolves both days into August 2024.
func (f *Formatter) ParseInterval(value string) (time.Time, time.Time, bool) {
	return f.ParseIntervalIn(value, time.UTC)
}

func (f *Formatter) ParseIntervalIn(value string, loc *time.Location) (time.Time, time.Time, bool) {
	intervals := f.locale.IntervalFormats(f.calendarType)
	entry := intervals.Formats[f.skeleton]

	for _, pattern := range entry {
		tokens := parsePattern(pattern)
		repeat := intervalRepeatIndex(tokens)
		if repeat == len(tokens) {
			continue
		}
		p := &parser{input: value}
		var first, second parsedFields
		if !f.parseTokens(p, tokens[:repeat], &first) {
			continue
		}
		if !f.parseTokens(p, tokens[repeat:], &second) {
			continue
		}
		if p.pos != len(value) {
			continue
		}
		first.merge(second)
		second.merge(first)
		if !f.requiredPresent(first) || !f.requiredPresent(second) {
			continue
		}
		from, okFrom := f.resolve(first, loc)
		to, okTo := f.resolve(second, loc)
		if okFrom && okTo {
			return from, to, true
		}
	}

	// fallback template: two full renderings around a separator
	fallback := intervals.Fallback
	if fallback == "" {
		fallback = "{0} – {1}"
	}
	separator := strings.ReplaceAll(strings.ReplaceAll(fallback, "{0}", ""), "{1}", "")
	if separator != "" {
		if left, right, found := strings.Cut(value, separator); found {
			from, okFrom := f.ParseIn(left, loc)
			to, okTo := f.ParseIn(right, loc)
			if okFrom && okTo {
				return from, to, true
			}
		}
	}
	return time.Time{}, time.Time{}, false
}
