package dateformat

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CLDR plural rules are written in a small condition grammar:
//
//	condition     = and_condition ("or" and_condition)*
//	and_condition = relation ("and" relation)*
//	relation      = expr ("=" | "!=") range_list
//	expr          = operand ("%" value)?
//	range_list    = (range | value) ("," (range | value))*
//
// evaluated against the decomposed operands of a number: n (absolute
// value), i (integer digits), v/w (visible fraction digit counts with and
// without trailing zeros), f/t (fraction digit values), e (exponent).
// Rules compile once into a closure per category and are memoized by the
// owning LocaleData.

type pluralOperands struct {
	n float64
	i int64
	v int
	w int
	f int64
	t int64
	e int
}

// parsePluralOperands decomposes a decimal number literal. The source is a
// string because visible fraction digits are significant ("1.0" and "1"
// plural differently in many locales).
func parsePluralOperands(number string) (pluralOperands, error) {
	s := strings.TrimSpace(number)
	s = strings.TrimPrefix(s, "-")

	mantissa := s
	exponent := 0
	if idx := strings.IndexAny(s, "eEc"); idx >= 0 {
		exp, err := strconv.Atoi(s[idx+1:])
		if err != nil {
			return pluralOperands{}, fmt.Errorf("dateformat: plural operand %q: %w", number, err)
		}
		exponent = exp
		mantissa = s[:idx]
	}

	intPart := mantissa
	fracPart := ""
	if idx := strings.IndexByte(mantissa, '.'); idx >= 0 {
		intPart = mantissa[:idx]
		fracPart = mantissa[idx+1:]
	}
	if intPart == "" {
		intPart = "0"
	}

	// an exponent shifts digits between the integer and fraction parts
	for ; exponent > 0 && fracPart != ""; exponent-- {
		intPart += fracPart[:1]
		fracPart = fracPart[1:]
	}
	intPart += strings.Repeat("0", exponent)

	i, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return pluralOperands{}, fmt.Errorf("dateformat: plural operand %q: %w", number, err)
	}

	var operands pluralOperands
	operands.i = i
	operands.v = len(fracPart)
	if fracPart != "" {
		operands.f, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return pluralOperands{}, fmt.Errorf("dateformat: plural operand %q: %w", number, err)
		}
	}
	trimmed := strings.TrimRight(fracPart, "0")
	operands.w = len(trimmed)
	if trimmed != "" {
		operands.t, err = strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return pluralOperands{}, fmt.Errorf("dateformat: plural operand %q: %w", number, err)
		}
	}

	operands.n = float64(i)
	if operands.v > 0 {
		operands.n += float64(operands.f) / math.Pow10(operands.v)
	}
	if idx := strings.IndexAny(number, "eEc"); idx >= 0 {
		operands.e = exponent
	}
	return operands, nil
}

func (o pluralOperands) value(operand string) float64 {
	switch operand {
	case "n":
		return o.n
	case "i":
		return float64(o.i)
	case "v":
		return float64(o.v)
	case "w":
		return float64(o.w)
	case "f":
		return float64(o.f)
	case "t":
		return float64(o.t)
	case "e", "c":
		return float64(o.e)
	default:
		return 0
	}
}

type pluralRange struct {
	start, end float64
	isRange    bool
}

type pluralRelation struct {
	operand string
	mod     float64
	negated bool
	ranges  []pluralRange
}

func (rel pluralRelation) matches(o pluralOperands) bool {
	value := o.value(rel.operand)
	if rel.mod > 0 {
		value = math.Mod(value, rel.mod)
	}

	matched := false
	for _, r := range rel.ranges {
		if r.isRange {
			// ranges only match integral values
			if value >= r.start && value <= r.end && value == math.Trunc(value) {
				matched = true
				break
			}
		} else if value == r.start {
			matched = true
			break
		}
	}
	if rel.negated {
		return !matched
	}
	return matched
}

// compilePluralRule parses a rule string into an evaluator closure. The
// "@integer"/"@decimal" sample suffix is ignored.
func compilePluralRule(rule string) (func(pluralOperands) bool, error) {
	if idx := strings.IndexByte(rule, '@'); idx >= 0 {
		rule = rule[:idx]
	}
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return func(pluralOperands) bool { return true }, nil
	}

	var orGroups [][]pluralRelation
	for _, orPart := range strings.Split(rule, " or ") {
		var andGroup []pluralRelation
		for _, andPart := range strings.Split(orPart, " and ") {
			relation, err := parsePluralRelation(andPart)
			if err != nil {
				return nil, err
			}
			andGroup = append(andGroup, relation)
		}
		orGroups = append(orGroups, andGroup)
	}

	return func(o pluralOperands) bool {
		for _, group := range orGroups {
			all := true
			for _, relation := range group {
				if !relation.matches(o) {
					all = false
					break
				}
			}
			if all {
				return true
			}
		}
		return false
	}, nil
}

func parsePluralRelation(src string) (pluralRelation, error) {
	var rel pluralRelation

	text := strings.TrimSpace(src)
	var rhs string
	switch {
	case strings.Contains(text, "!="):
		parts := strings.SplitN(text, "!=", 2)
		text, rhs = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		rel.negated = true
	case strings.Contains(text, "="):
		parts := strings.SplitN(text, "=", 2)
		text, rhs = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	default:
		return rel, newParseError(src, "plural relation without comparison")
	}

	if idx := strings.IndexAny(text, "%"); idx >= 0 {
		modText := strings.TrimSpace(text[idx+1:])
		mod, err := strconv.ParseFloat(modText, 64)
		if err != nil {
			return rel, newParseError(src, "invalid modulus "+modText)
		}
		rel.mod = mod
		text = strings.TrimSpace(text[:idx])
	}

	switch text {
	case "n", "i", "v", "w", "f", "t", "e", "c":
		rel.operand = text
	default:
		return rel, newParseError(src, "unknown plural operand "+text)
	}

	for _, item := range strings.Split(rhs, ",") {
		item = strings.TrimSpace(item)
		if bounds := strings.SplitN(item, "..", 2); len(bounds) == 2 {
			start, err := strconv.ParseFloat(strings.TrimSpace(bounds[0]), 64)
			if err != nil {
				return rel, newParseError(src, "invalid range start "+bounds[0])
			}
			end, err := strconv.ParseFloat(strings.TrimSpace(bounds[1]), 64)
			if err != nil {
				return rel, newParseError(src, "invalid range end "+bounds[1])
			}
			rel.ranges = append(rel.ranges, pluralRange{start: start, end: end, isRange: true})
			continue
		}
		value, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return rel, newParseError(src, "invalid range value "+item)
		}
		rel.ranges = append(rel.ranges, pluralRange{start: value})
	}

	return rel, nil
}
