package dateformat

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CLDRData is the parsed locale payload the formatter consumes. The wire
// shape follows the original bundle's per-locale JSON: calendar buckets
// keyed by calendar type ("ca-gregorian", ...), week data, plural rule
// strings, relative date fields, currency tables and the timezone name
// tree.
type CLDRData struct {
	FallbackLocale string `json:"__fallbackLocale,omitempty"`

	Calendars map[string]*CalendarData `json:"calendars"`

	WeekFirstDay int `json:"weekData-firstDay"`
	WeekMinDays  int `json:"weekData-minDays"`

	// Weekend boundaries as 0-based weekdays. Pointers distinguish an
	// absent field from an explicit Sunday (0).
	WeekendStart *int `json:"weekData-weekendStart,omitempty"`
	WeekendEnd   *int `json:"weekData-weekendEnd,omitempty"`

	Plurals map[string]string `json:"plurals"`

	DateFields map[string]*RelativeField `json:"dateFields"`

	CurrencyDigits  map[string]int    `json:"currencyDigits"`
	CurrencySymbols map[string]string `json:"currencySymbols"`
	CurrencyFormat  *CurrencyFormat   `json:"currencyFormat"`

	TimezoneNames map[string]any `json:"timezoneNames"`

	DayPeriodRules map[string]DayPeriodRule `json:"dayPeriodRules"`
}

// CalendarData holds one calendar type's name tables and patterns.
type CalendarData struct {
	Months     NameWidths `json:"months"`
	Days       NameWidths `json:"days"`
	Quarters   NameWidths `json:"quarters"`
	DayPeriods NameWidths `json:"dayPeriods"`

	// FlexibleDayPeriods names the locale's flexible periods (morning1,
	// afternoon1, ...) per width, matched against DayPeriodRules.
	FlexibleDayPeriods map[string]map[string]string `json:"flexibleDayPeriods"`

	Eras EraWidths `json:"eras"`

	DateFormats     map[string]string `json:"dateFormats"`
	TimeFormats     map[string]string `json:"timeFormats"`
	DateTimeFormats DateTimeFormats   `json:"dateTimeFormats"`
}

// NameWidths splits a name table into format and stand-alone contexts.
type NameWidths struct {
	Format     Widths `json:"format"`
	StandAlone Widths `json:"stand-alone"`
}

// Widths carries the per-width name arrays. Short exists for days only.
type Widths struct {
	Narrow      []string `json:"narrow,omitempty"`
	Abbreviated []string `json:"abbreviated,omitempty"`
	Wide        []string `json:"wide,omitempty"`
	Short       []string `json:"short,omitempty"`
}

// ByWidth returns the name array for a width name, nil when absent.
func (w Widths) ByWidth(width string) []string {
	switch width {
	case "narrow":
		return w.Narrow
	case "abbreviated":
		return w.Abbreviated
	case "wide":
		return w.Wide
	case "short":
		return w.Short
	default:
		return nil
	}
}

// EraWidths carries era names per width.
type EraWidths struct {
	Narrow      []string `json:"narrow,omitempty"`
	Abbreviated []string `json:"abbreviated,omitempty"`
	Wide        []string `json:"wide,omitempty"`
}

func (e EraWidths) ByWidth(width string) []string {
	switch width {
	case "narrow":
		return e.Narrow
	case "abbreviated":
		return e.Abbreviated
	case "wide":
		return e.Wide
	default:
		return nil
	}
}

// DateTimeFormats groups the combining styles, the skeleton table and the
// interval table of a calendar.
type DateTimeFormats struct {
	Styles           map[string]string `json:"styles"`
	AvailableFormats map[string]string `json:"availableFormats"`
	AppendItems      map[string]string `json:"appendItems"`
	IntervalFormats  IntervalFormats   `json:"intervalFormats"`
}

// IntervalFormats is the CLDR interval table: skeleton → greatest
// difference field → pattern, plus the fallback template.
type IntervalFormats struct {
	Fallback string
	Formats  map[string]map[string]string
}

func (f *IntervalFormats) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Formats = make(map[string]map[string]string, len(raw))
	for key, value := range raw {
		if key == "intervalFormatFallback" {
			if err := json.Unmarshal(value, &f.Fallback); err != nil {
				return err
			}
			continue
		}
		var entry map[string]string
		if err := json.Unmarshal(value, &entry); err != nil {
			return err
		}
		f.Formats[key] = entry
	}
	return nil
}

func (f IntervalFormats) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.Formats)+1)
	if f.Fallback != "" {
		out["intervalFormatFallback"] = f.Fallback
	}
	for key, value := range f.Formats {
		out[key] = value
	}
	return json.Marshal(out)
}

// RelativeField is one scale of the relative date table: enumerated
// specific offsets ("yesterday") plus plural-categorized generic patterns.
type RelativeField struct {
	DisplayName string            `json:"displayName,omitempty"`
	Relative    map[string]string `json:"relative,omitempty"`
	Future      map[string]string `json:"future,omitempty"`
	Past        map[string]string `json:"past,omitempty"`
}

// CurrencyFormat holds the currency display patterns. SapShort is the
// compact style; requesting it on a locale without data is a hard error.
type CurrencyFormat struct {
	Standard string            `json:"standard,omitempty"`
	SapShort map[string]string `json:"sap-short,omitempty"`
}

// DayPeriodRule describes one flexible day period as either a point in
// time or a half-open range, in "HH:mm" strings.
type DayPeriodRule struct {
	At     string `json:"_at,omitempty"`
	From   string `json:"_from,omitempty"`
	Before string `json:"_before,omitempty"`
}

// parseDayPeriodTime reads an "HH:mm" boundary as minutes since midnight.
// "24:00" is a valid end boundary.
func parseDayPeriodTime(s string) (int, bool) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, false
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// Matches reports whether a wall clock time, given as minutes since
// midnight, falls in this period. Ranges are half-open [from, before) and
// may wrap past midnight.
func (r DayPeriodRule) Matches(minutes int) bool {
	if r.At != "" {
		at, ok := parseDayPeriodTime(r.At)
		return ok && minutes == at%(24*60)
	}
	from, okFrom := parseDayPeriodTime(r.From)
	before, okBefore := parseDayPeriodTime(r.Before)
	if !okFrom || !okBefore {
		return false
	}
	from %= 24 * 60
	if before == 24*60 {
		return minutes >= from
	}
	if from <= before {
		return minutes >= from && minutes < before
	}
	return minutes >= from || minutes < before
}

// deepMerge merges fallback data underneath primary: primary values win,
// fallback fills gaps, and an explicit null in primary deletes the
// inherited key (the tombstone convention of the locale payloads).
func deepMerge(primary, fallback map[string]any) map[string]any {
	out := make(map[string]any, len(primary)+len(fallback))
	for key, value := range fallback {
		out[key] = value
	}
	for key, value := range primary {
		if value == nil {
			delete(out, key)
			continue
		}
		primaryMap, okPrimary := value.(map[string]any)
		fallbackMap, okFallback := out[key].(map[string]any)
		if okPrimary && okFallback {
			out[key] = deepMerge(primaryMap, fallbackMap)
			continue
		}
		out[key] = value
	}
	return out
}

// decodeCLDR converts a merged raw payload into the typed form.
func decodeCLDR(raw map[string]any) (*CLDRData, error) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("dateformat: encode merged locale payload: %w", err)
	}
	var data CLDRData
	if err := json.Unmarshal(encoded, &data); err != nil {
		return nil, fmt.Errorf("dateformat: decode locale payload: %w", err)
	}
	return &data, nil
}

// flattenTimezoneNames resolves the nested timezone name tree into flat
// "Region/City" → translated name entries. A _parent entry supplies the
// translated region that gets appended to every descendant's name.
func flattenTimezoneNames(tree map[string]any) map[string]string {
	out := make(map[string]string)
	flattenTimezoneLevel(tree, nil, "", out)
	return out
}

func flattenTimezoneLevel(node map[string]any, path []string, parentName string, out map[string]string) {
	inherited := parentName
	if raw, ok := node["_parent"].(string); ok && raw != "" {
		inherited = raw
	}

	keys := make([]string, 0, len(node))
	for key := range node {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == "_parent" {
			continue
		}
		id := strings.Join(append(append([]string{}, path...), key), "/")
		switch value := node[key].(type) {
		case string:
			if inherited != "" {
				out[id] = value + ", " + inherited
			} else {
				out[id] = value
			}
		case map[string]any:
			flattenTimezoneLevel(value, append(path, key), inherited, out)
		}
	}
}
