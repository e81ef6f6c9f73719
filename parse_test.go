package dateformat

import (
	"testing"
	"time"
)

func TestParseRoundTrip(t *testing.T) {
	instant := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	for _, pattern := range []string{"yyyy-MM-dd", "M/d/y", "G yyyy-MM-dd", "yyyyMMdd"} {
		f := mustFormatter(t)(NewPatternFormatter(pattern))
		formatted := f.Format(instant)
		parsed, ok := f.Parse(formatted)
		if !ok {
			t.Fatalf("Parse(%q) with %q failed", formatted, pattern)
		}
		if !parsed.Equal(instant) {
			t.Errorf("round trip via %q: got %v, want %v", pattern, parsed, instant)
		}
	}
}

func TestParseAdjacentNumericFields(t *testing.T) {
	f := mustFormatter(t)(NewPatternFormatter("yyyyMMdd"))
	parsed, ok := f.Parse("20240315")
	if !ok {
		t.Fatal("Parse failed")
	}
	want := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Errorf("got %v, want %v", parsed, want)
	}

	if _, ok := f.Parse("202403"); ok {
		t.Error("input missing the day field parsed")
	}
}

func TestParseStyle(t *testing.T) {
	f := mustFormatter(t)(NewDateFormatter("medium"))
	parsed, ok := f.Parse("Mar 15, 2024")
	if !ok {
		t.Fatal("Parse failed")
	}
	want := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Errorf("got %v, want %v", parsed, want)
	}
}

func TestParseTime(t *testing.T) {
	f := mustFormatter(t)(NewPatternFormatter("h:mm a"))

	tests := []struct {
		input        string
		hour, minute int
	}{
		{"3:05 PM", 15, 5},
		{"3:05 AM", 3, 5},
		{"12:00 AM", 0, 0},
		{"12:30 PM", 12, 30},
		// lenient day periods tolerate dots and spacing
		{"3:05 p. m.", 15, 5},
		{"3:05 a.m.", 3, 5},
	}
	for _, tt := range tests {
		parsed, ok := f.Parse(tt.input)
		if !ok {
			t.Errorf("Parse(%q) failed", tt.input)
			continue
		}
		if parsed.Hour() != tt.hour || parsed.Minute() != tt.minute {
			t.Errorf("Parse(%q) = %02d:%02d, want %02d:%02d",
				tt.input, parsed.Hour(), parsed.Minute(), tt.hour, tt.minute)
		}
	}
}

func TestParseHourConventions(t *testing.T) {
	f := mustFormatter(t)(NewPatternFormatter("kk:mm"))
	parsed, ok := f.Parse("24:00")
	if !ok {
		t.Fatal("Parse(24:00) failed")
	}
	if parsed.Hour() != 0 {
		t.Errorf("hour = %d, want 0", parsed.Hour())
	}

	if _, ok := f.Parse("00:00"); ok {
		t.Error("k cycle accepted hour 0")
	}

	f = mustFormatter(t)(NewPatternFormatter("HH:mm"))
	if _, ok := f.Parse("24:00"); ok {
		t.Error("H cycle accepted hour 24")
	}
}

func TestParseStrictness(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
	}{
		{"trailing garbage", "yyyy-MM-dd", "2024-03-15x"},
		{"truncated input", "yyyy-MM-dd", "2024-03"},
		{"wrong literal", "yyyy-MM-dd", "2024/03/15"},
		{"month overflow not a month name", "MMM d, y", "Mars 15, 2024"},
		{"minute overflow", "HH:mm", "10:61"},
		{"missing year", "MM-dd", "03-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustFormatter(t)(NewPatternFormatter(tt.pattern))
			if _, ok := f.Parse(tt.input); ok {
				t.Errorf("Parse(%q) with %q succeeded, want failure", tt.input, tt.pattern)
			}
		})
	}
}

func TestParseZoneOffset(t *testing.T) {
	f := mustFormatter(t)(NewPatternFormatter("yyyy-MM-dd'T'HH:mmXXX"))

	parsed, ok := f.Parse("2024-03-15T10:30+02:00")
	if !ok {
		t.Fatal("Parse failed")
	}
	want := time.Date(2024, time.March, 15, 8, 30, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Errorf("got %v, want %v", parsed, want)
	}

	parsed, ok = f.Parse("2024-03-15T10:30Z")
	if !ok {
		t.Fatal("Parse of Z suffix failed")
	}
	want = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Errorf("got %v, want %v", parsed, want)
	}
}

func TestParseInAnchorsWallClock(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	f := mustFormatter(t)(NewPatternFormatter("yyyy-MM-dd HH:mm"))
	parsed, ok := f.ParseIn("2024-03-15 12:00", loc)
	if !ok {
		t.Fatal("ParseIn failed")
	}
	want := time.Date(2024, time.March, 15, 12, 0, 0, 0, loc)
	if !parsed.Equal(want) {
		t.Errorf("got %v, want %v", parsed, want)
	}
}

func TestParseTwoDigitYearWindow(t *testing.T) {
	f := mustFormatter(t)(NewPatternFormatter("M/d/yy"))

	parsed, ok := f.Parse("3/15/24")
	if !ok {
		t.Fatal("Parse failed")
	}
	now := time.Now().Year()
	if year := parsed.Year(); year > now+20 || year <= now+20-100 {
		t.Errorf("year %d outside the window ending %d", year, now+20)
	}
	if parsed.Year()%100 != 24 {
		t.Errorf("year %d does not end in 24", parsed.Year())
	}

	// four digits opt out of windowing
	parsed, ok = f.Parse("3/15/2024")
	if !ok {
		t.Fatal("Parse of full year failed")
	}
	if parsed.Year() != 2024 {
		t.Errorf("year = %d, want 2024", parsed.Year())
	}
}

func TestParseInterval(t *testing.T) {
	f := mustFormatter(t)(NewIntervalFormatter("yMMMd"))

	from, to, ok := f.ParseInterval("Aug 5 – 9, 2024")
	if !ok {
		t.Fatal("ParseInterval failed")
	}
	wantFrom := time.Date(2024, time.August, 5, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2024, time.August, 9, 0, 0, 0, 0, time.UTC)
	if !from.Equal(wantFrom) || !to.Equal(wantTo) {
		t.Errorf("got %v – %v, want %v – %v", from, to, wantFrom, wantTo)
	}

	from, to, ok = f.ParseInterval("Aug 5, 2024 – Jan 15, 2025")
	if !ok {
		t.Fatal("ParseInterval across years failed")
	}
	if from.Year() != 2024 || to.Year() != 2025 {
		t.Errorf("years = %d/%d, want 2024/2025", from.Year(), to.Year())
	}

	if _, _, ok := f.ParseInterval("not a range"); ok {
		t.Error("ParseInterval accepted garbage")
	}
}

func TestParseIntervalRoundTrip(t *testing.T) {
	f := mustFormatter(t)(NewIntervalFormatter("yMMMd"))
	from := time.Date(2024, time.August, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC)

	formatted := f.FormatInterval(from, to)
	gotFrom, gotTo, ok := f.ParseInterval(formatted)
	if !ok {
		t.Fatalf("ParseInterval(%q) failed", formatted)
	}
	if !gotFrom.Equal(from) || !gotTo.Equal(to) {
		t.Errorf("round trip of %q: got %v – %v", formatted, gotFrom, gotTo)
	}
}
