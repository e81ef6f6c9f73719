package dateformat

import (
	"strconv"
	"strings"
	"time"
)

// relativeScale pairs a relative-field scale name with the number of
// seconds one unit spans, largest first for auto detection.
type relativeScale struct {
	name    string
	seconds int64
}

var relativeScales = []relativeScale{
	{"year", 365 * 24 * 3600},
	{"month", 30 * 24 * 3600},
	{"week", 7 * 24 * 3600},
	{"day", 24 * 3600},
	{"hour", 3600},
	{"minute", 60},
	{"second", 1},
}

// pickRelativeScale selects the largest scale not exceeding the elapsed
// time. A span just short of a month that still crosses a month boundary
// on the same day or later is promoted to the month scale, so a date
// 29 days out still reads "next month" when the month changed.
func pickRelativeScale(t, now time.Time) relativeScale {
	elapsed := t.Unix() - now.Unix()
	if elapsed < 0 {
		elapsed = -elapsed
	}
	for _, scale := range relativeScales {
		if elapsed >= scale.seconds {
			if scale.name == "week" || scale.name == "day" {
				if months := monthDelta(t, now); months != 0 && elapsed >= 27*24*3600 {
					return relativeScales[1]
				}
			}
			return scale
		}
	}
	return relativeScales[len(relativeScales)-1]
}

func monthDelta(t, now time.Time) int {
	return (t.Year()*12 + int(t.Month())) - (now.Year()*12 + int(now.Month()))
}

func relativeDiff(t, now time.Time, scale relativeScale) int {
	if scale.name == "month" {
		return monthDelta(t, now)
	}
	elapsed := t.Unix() - now.Unix()
	half := scale.seconds / 2
	if elapsed >= 0 {
		return int((elapsed + half) / scale.seconds)
	}
	return -int((-elapsed + half) / scale.seconds)
}

// FormatRelative renders the distance from now to t in locale terms,
// picking the scale from the elapsed time ("in 2 hours", "yesterday").
// Style is "wide", "short" or "narrow".
func (f *Formatter) FormatRelative(t, now time.Time, style string) string {
	if style == "" {
		style = "wide"
	}
	scale := pickRelativeScale(t, now)
	return f.FormatRelativeScale(t, now, scale.name, style)
}

// FormatRelativeScale renders the distance on a fixed scale.
func (f *Formatter) FormatRelativeScale(t, now time.Time, scaleName, style string) string {
	if style == "" {
		style = "wide"
	}
	scale := relativeScales[len(relativeScales)-1]
	for _, candidate := range relativeScales {
		if candidate.name == scaleName {
			scale = candidate
			break
		}
	}
	diff := relativeDiff(t, now, scale)
	pattern := f.locale.RelativePattern(scale.name, diff, style)
	if pattern == "" {
		return f.Format(t)
	}
	quantity := diff
	if quantity < 0 {
		quantity = -quantity
	}
	return strings.ReplaceAll(pattern, "{0}", strconv.Itoa(quantity))
}

// ParseRelative reads a relative expression back into an instant anchored
// at now. It tries the enumerated offsets of every scale first, then the
// plural-categorized patterns with the number extracted from the input.
// The second return is false when no scale matches.
func (f *Formatter) ParseRelative(value string, now time.Time) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, scale := range relativeScales {
		for _, style := range []string{"wide", "short", "narrow"} {
			if t, ok := f.parseRelativeScale(value, now, scale, style); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func (f *Formatter) parseRelativeScale(value string, now time.Time, scale relativeScale, style string) (time.Time, bool) {
	// enumerated offsets first
	for diff := -7; diff <= 7; diff++ {
		pattern := f.locale.RelativePattern(scale.name, diff, style)
		if pattern == "" || strings.Contains(pattern, "{0}") {
			continue
		}
		if pattern == value {
			return f.applyRelative(now, scale, diff), true
		}
	}
	// generic patterns with an embedded quantity
	for _, sign := range []int{1, -1} {
		for quantity := 1; quantity <= 2; quantity++ {
			pattern := f.locale.RelativePattern(scale.name, sign*quantity, style)
			if pattern == "" || !strings.Contains(pattern, "{0}") {
				continue
			}
			prefix, suffix, _ := strings.Cut(pattern, "{0}")
			if !strings.HasPrefix(value, prefix) || !strings.HasSuffix(value, suffix) {
				continue
			}
			digits := strings.TrimSuffix(strings.TrimPrefix(value, prefix), suffix)
			parsed, err := strconv.Atoi(digits)
			if err != nil || parsed < 0 {
				continue
			}
			return f.applyRelative(now, scale, sign*parsed), true
		}
	}
	return time.Time{}, false
}

func (f *Formatter) applyRelative(now time.Time, scale relativeScale, diff int) time.Time {
	if scale.name == "month" {
		return now.AddDate(0, diff, 0)
	}
	if scale.name == "year" {
		return now.AddDate(diff, 0, 0)
	}
	return now.Add(time.Duration(diff) * time.Duration(scale.seconds) * time.Second)
}
