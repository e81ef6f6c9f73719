package dateformat

import (
	"strings"
)

// ICU-style skeleton matching: a requested field skeleton resolves to the
// closest pattern in the locale's availableFormats table, whose field
// widths are then rewritten to the requested ones and whose missing
// fields are synthesized through the appendItems templates.

// skeleton symbols must appear in this canonical group order.
const (
	groupEra = iota
	groupYear
	groupQuarter
	groupMonth
	groupWeek
	groupDayOfWeek
	groupDay
	groupDayPeriod
	groupHour
	groupMinute
	groupSecond
	groupTimezone
	groupCount
)

var groupNames = [groupCount]string{
	"Era", "Year", "Quarter", "Month", "Week", "Day-Of-Week", "Day",
	"DayPeriod", "Hour", "Minute", "Second", "Timezone",
}

// skeletonSymbol describes a skeleton letter: its semantic group, its
// substitution match class (symbols sharing a class can stand in for each
// other at a penalty) and the numeric ceiling, the width at which the
// field switches from numeric to name rendering.
type skeletonSymbol struct {
	group          int
	match          string
	numericCeiling int
}

var skeletonSymbols = map[byte]skeletonSymbol{
	'G': {group: groupEra, match: "Era", numericCeiling: 1},
	'y': {group: groupYear, match: "Year", numericCeiling: 100},
	'Y': {group: groupYear, match: "Year", numericCeiling: 100},
	'Q': {group: groupQuarter, match: "Quarter", numericCeiling: 3},
	'q': {group: groupQuarter, match: "Quarter", numericCeiling: 3},
	'M': {group: groupMonth, match: "Month", numericCeiling: 3},
	'L': {group: groupMonth, match: "Month", numericCeiling: 3},
	'w': {group: groupWeek, match: "Week", numericCeiling: 100},
	'W': {group: groupWeek, match: "Week", numericCeiling: 100},
	'd': {group: groupDay, match: "Day", numericCeiling: 100},
	'D': {group: groupDay, match: "Day", numericCeiling: 100},
	'E': {group: groupDayOfWeek, match: "Day-Of-Week", numericCeiling: 1},
	'e': {group: groupDayOfWeek, match: "Day-Of-Week", numericCeiling: 3},
	'c': {group: groupDayOfWeek, match: "Day-Of-Week", numericCeiling: 2},
	'a': {group: groupDayPeriod, match: "DayPeriod", numericCeiling: 1},
	'B': {group: groupDayPeriod, match: "DayPeriod", numericCeiling: 1},
	'h': {group: groupHour, match: "Hour12", numericCeiling: 100},
	'K': {group: groupHour, match: "Hour12", numericCeiling: 100},
	'H': {group: groupHour, match: "Hour24", numericCeiling: 100},
	'k': {group: groupHour, match: "Hour24", numericCeiling: 100},
	'm': {group: groupMinute, match: "Minute", numericCeiling: 100},
	's': {group: groupSecond, match: "Second", numericCeiling: 100},
	'S': {group: groupSecond, match: "FractionalSecond", numericCeiling: 100},
	'z': {group: groupTimezone, match: "Timezone", numericCeiling: 1},
	'Z': {group: groupTimezone, match: "Timezone", numericCeiling: 1},
	'O': {group: groupTimezone, match: "Timezone", numericCeiling: 1},
	'V': {group: groupTimezone, match: "Timezone", numericCeiling: 1},
	'v': {group: groupTimezone, match: "Timezone", numericCeiling: 1},
	'X': {group: groupTimezone, match: "Timezone", numericCeiling: 1},
	'x': {group: groupTimezone, match: "Timezone", numericCeiling: 1},
}

type skeletonToken struct {
	symbol byte
	length int
	spec   skeletonSymbol
}

// parseSkeleton tokenizes a skeleton, enforcing the canonical group order
// and rejecting symbols repeated non-adjacently.
func parseSkeleton(skeleton string) ([]skeletonToken, error) {
	var tokens []skeletonToken
	lastGroup := -1
	seen := make(map[byte]bool)

	for i := 0; i < len(skeleton); i++ {
		symbol := skeleton[i]
		spec, ok := skeletonSymbols[symbol]
		if !ok {
			return nil, newParseError(skeleton, "unsupported skeleton symbol "+string(symbol))
		}
		if seen[symbol] {
			return nil, newParseError(skeleton, "symbol "+string(symbol)+" repeated non-adjacently")
		}
		seen[symbol] = true
		if spec.group < lastGroup {
			return nil, newParseError(skeleton, groupNames[spec.group]+" field out of order")
		}
		lastGroup = spec.group

		length := 1
		for i+1 < len(skeleton) && skeleton[i+1] == symbol {
			length++
			i++
		}
		tokens = append(tokens, skeletonToken{symbol: symbol, length: length, spec: spec})
	}
	return tokens, nil
}

// numericRendering reports whether a field of this width renders as a
// number (below the symbol's numeric ceiling) rather than a name.
func numericRendering(spec skeletonSymbol, length int) bool {
	return length < spec.numericCeiling
}

type skeletonMatch struct {
	skeleton string
	pattern  string
	tokens   []skeletonToken
	distance int
	// firstDiff is the requested-token index of the first divergence;
	// ties prefer the candidate diverging latest.
	firstDiff int
	missing   []skeletonToken
}

// findBestMatch scores every available skeleton against the requested
// tokens and returns the closest one. The weights reproduce the reference
// matcher exactly: width differences count as-is, scaled by five when the
// change crosses the numeric/name threshold; substituting a sibling
// symbol of the same match class adds ten; a field with no counterpart
// costs fifty minus its group index, so missing leading fields weigh
// heaviest. Entries containing the flexible day period symbol and the
// interval fallback key are skipped.
func findBestMatch(tokens []skeletonToken, available map[string]string) *skeletonMatch {
	var best *skeletonMatch

	for candidate, pattern := range available {
		if candidate == "intervalFormatFallback" || strings.ContainsRune(candidate, 'B') {
			continue
		}
		candidateTokens, err := parseSkeleton(candidate)
		if err != nil {
			continue
		}

		distance := 0
		firstDiff := len(tokens)
		var missing []skeletonToken

		for index, token := range tokens {
			contribution := -1

			// exact symbol, any width
			for _, other := range candidateTokens {
				if other.symbol == token.symbol {
					diff := other.length - token.length
					if diff < 0 {
						diff = -diff
					}
					if numericRendering(token.spec, token.length) != numericRendering(other.spec, other.length) {
						diff *= 5
					}
					contribution = diff
					break
				}
			}
			// sibling symbol from the same match class
			if contribution < 0 {
				for _, other := range candidateTokens {
					if other.spec.match == token.spec.match {
						diff := other.length - token.length
						if diff < 0 {
							diff = -diff
						}
						contribution = diff + 10
						break
					}
				}
			}
			if contribution < 0 {
				contribution = 50 - token.spec.group
				missing = append(missing, token)
			}

			distance += contribution
			if contribution > 0 && index < firstDiff {
				firstDiff = index
			}
		}

		match := &skeletonMatch{
			skeleton:  candidate,
			pattern:   pattern,
			tokens:    candidateTokens,
			distance:  distance,
			firstDiff: firstDiff,
			missing:   missing,
		}
		if best == nil ||
			match.distance < best.distance ||
			(match.distance == best.distance && match.firstDiff > best.firstDiff) {
			best = match
		}
	}
	return best
}

// expandFields rewrites field run lengths of pattern to the requested
// widths, walking the pattern for quote state and symbol runs. Only
// fields whose requested width differs from the matched skeleton's width
// are rewritten; where the two skeletons agree the pattern keeps the
// widths the locale chose.
func expandFields(pattern string, requestedTokens, matchedTokens []skeletonToken) string {
	matched := make(map[string]int, len(matchedTokens))
	for _, token := range matchedTokens {
		matched[token.spec.match] = token.length
	}
	requested := make(map[string]int, len(requestedTokens))
	for _, token := range requestedTokens {
		if have, ok := matched[token.spec.match]; ok && have != token.length {
			requested[token.spec.match] = token.length
		}
	}

	var out strings.Builder
	inQuote := false
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		if ch == '\'' {
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				out.WriteString("''")
				i++
				continue
			}
			inQuote = !inQuote
			out.WriteByte(ch)
			continue
		}
		if inQuote {
			out.WriteByte(ch)
			continue
		}

		spec, isSymbol := skeletonSymbols[ch]
		if !isSymbol {
			out.WriteByte(ch)
			continue
		}

		runLength := 1
		for i+1 < len(pattern) && pattern[i+1] == ch {
			runLength++
			i++
		}
		length := runLength
		if want, ok := requested[spec.match]; ok {
			length = want
		}
		out.WriteString(strings.Repeat(string(ch), length))
	}
	return out.String()
}

// appendMissingFields synthesizes fields the best match lacks by wrapping
// the pattern with the calendar's appendItems templates: {0} is the
// pattern so far, {1} the appended field, {2} its display name.
func appendMissingFields(pattern string, missing []skeletonToken, appendItems map[string]string, displayNames map[string]string) string {
	for _, token := range missing {
		groupName := groupNames[token.spec.group]
		template, ok := appendItems[groupName]
		if !ok || template == "" {
			template = "{0} {1}"
		}
		field := strings.Repeat(string(token.symbol), token.length)
		expanded := strings.ReplaceAll(template, "{0}", pattern)
		expanded = strings.ReplaceAll(expanded, "{1}", field)
		if name, ok := displayNames[groupName]; ok {
			expanded = strings.ReplaceAll(expanded, "{2}", "'"+name+"'")
		} else {
			expanded = strings.ReplaceAll(expanded, "{2}", "")
		}
		pattern = strings.TrimSpace(expanded)
	}
	return pattern
}

// BestDateTimePattern resolves a skeleton against a locale's available
// formats for a calendar type. When nothing matches at all the skeleton
// itself is returned verbatim as a degraded pattern; format will then
// render its letters literally rather than erroring.
func BestDateTimePattern(skeleton string, locale *LocaleData, calendarType CalendarType) (string, error) {
	tokens, err := parseSkeleton(skeleton)
	if err != nil {
		return "", err
	}

	available := locale.AvailableFormats(calendarType)
	if exact, ok := available[skeleton]; ok {
		return exact, nil
	}

	best := findBestMatch(tokens, available)
	if best == nil {
		warnOnce("skeleton:"+locale.Locale()+":"+skeleton,
			"no available format matches skeleton, using it verbatim",
			map[string]string{"locale": locale.Locale(), "skeleton": skeleton})
		return skeleton, nil
	}

	pattern := expandFields(best.pattern, tokens, best.tokens)
	if len(best.missing) > 0 {
		pattern = appendMissingFields(pattern, best.missing, locale.AppendItems(calendarType), localeDisplayNames(locale))
	}
	return pattern, nil
}

// localeDisplayNames maps skeleton group names to the locale's field
// display names where the relative-field table carries one.
func localeDisplayNames(locale *LocaleData) map[string]string {
	scaleByGroup := map[string]string{
		"Era":         "era",
		"Year":        "year",
		"Quarter":     "quarter",
		"Month":       "month",
		"Week":        "week",
		"Day-Of-Week": "weekday",
		"Day":         "day",
		"Hour":        "hour",
		"Minute":      "minute",
		"Second":      "second",
		"Timezone":    "zone",
	}
	out := make(map[string]string, len(scaleByGroup))
	for group, scale := range scaleByGroup {
		if field, ok := locale.data.DateFields[scale]; ok && field != nil && field.DisplayName != "" {
			out[group] = field.DisplayName
		}
	}
	return out
}
