package dateformat

import "sync"

// fieldKind is the closed set of pattern field kinds. The per-kind format
// and parse logic switches exhaustively over it, so a new kind surfaces as
// a compile-time gap rather than a silently ignored map key.
type fieldKind int

const (
	fieldText fieldKind = iota
	fieldEra
	fieldYear
	fieldWeekYear
	fieldQuarter
	fieldQuarterStandAlone
	fieldMonth
	fieldMonthStandAlone
	fieldWeek
	fieldDay
	fieldDayOfYear
	fieldWeekday
	fieldWeekdayLocal
	fieldWeekdayStandAlone
	fieldDayPeriod
	fieldFlexibleDayPeriod
	fieldHour0To23
	fieldHour1To24
	fieldHour0To11
	fieldHour1To12
	fieldMinute
	fieldSecond
	fieldFractionalSecond
	fieldTimezoneGeneral
	fieldTimezoneRFC822
	fieldTimezoneISO8601Z
	fieldTimezoneISO8601
	fieldTimezoneName
)

// patternToken is one element of a parsed pattern: either literal text or
// a field symbol with its repeat length.
type patternToken struct {
	kind   fieldKind
	symbol byte
	length int
	text   string
}

func symbolField(symbol byte) (fieldKind, bool) {
	switch symbol {
	case 'G':
		return fieldEra, true
	case 'y':
		return fieldYear, true
	case 'Y':
		return fieldWeekYear, true
	case 'Q':
		return fieldQuarter, true
	case 'q':
		return fieldQuarterStandAlone, true
	case 'M':
		return fieldMonth, true
	case 'L':
		return fieldMonthStandAlone, true
	case 'w':
		return fieldWeek, true
	case 'd':
		return fieldDay, true
	case 'D':
		return fieldDayOfYear, true
	case 'E':
		return fieldWeekday, true
	case 'e':
		return fieldWeekdayLocal, true
	case 'c':
		return fieldWeekdayStandAlone, true
	case 'a':
		return fieldDayPeriod, true
	case 'B':
		return fieldFlexibleDayPeriod, true
	case 'H':
		return fieldHour0To23, true
	case 'k':
		return fieldHour1To24, true
	case 'K':
		return fieldHour0To11, true
	case 'h':
		return fieldHour1To12, true
	case 'm':
		return fieldMinute, true
	case 's':
		return fieldSecond, true
	case 'S':
		return fieldFractionalSecond, true
	case 'z':
		return fieldTimezoneGeneral, true
	case 'Z':
		return fieldTimezoneRFC822, true
	case 'X':
		return fieldTimezoneISO8601Z, true
	case 'x':
		return fieldTimezoneISO8601, true
	case 'V', 'v', 'O':
		return fieldTimezoneName, true
	default:
		return fieldText, false
	}
}

var (
	patternCacheMu sync.RWMutex
	patternCache   = make(map[string][]patternToken)
)

// parsePattern tokenizes a CLDR date pattern. Token order follows the
// literal character order; quoted text is preserved verbatim with doubled
// quotes unescaped to a literal apostrophe. Letters outside the symbol
// alphabet degrade to literal text. Parses are cached per distinct pattern
// string, since the same locale/style combinations format repeatedly.
func parsePattern(pattern string) []patternToken {
	patternCacheMu.RLock()
	cached, ok := patternCache[pattern]
	patternCacheMu.RUnlock()
	if ok {
		return cached
	}

	var tokens []patternToken
	var text []byte
	flushText := func() {
		if len(text) > 0 {
			tokens = append(tokens, patternToken{kind: fieldText, text: string(text)})
			text = nil
		}
	}

	inQuote := false
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]

		if ch == '\'' {
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				text = append(text, '\'')
				i++
				continue
			}
			inQuote = !inQuote
			continue
		}
		if inQuote {
			text = append(text, ch)
			continue
		}

		kind, isSymbol := symbolField(ch)
		if !isSymbol {
			// unknown symbol letters render literally
			text = append(text, ch)
			continue
		}

		flushText()
		length := 1
		for i+1 < len(pattern) && pattern[i+1] == ch {
			length++
			i++
		}
		tokens = append(tokens, patternToken{kind: kind, symbol: ch, length: length})
	}
	flushText()

	patternCacheMu.Lock()
	patternCache[pattern] = tokens
	patternCacheMu.Unlock()
	return tokens
}
