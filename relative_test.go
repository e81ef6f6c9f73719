package dateformat

import (
	"testing"
	"time"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	f := mustFormatter(t)(NewDateFormatter("medium"))

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"now", now, "now"},
		{"yesterday", now.AddDate(0, 0, -1), "yesterday"},
		{"tomorrow", now.AddDate(0, 0, 1), "tomorrow"},
		{"in two hours", now.Add(2 * time.Hour), "in 2 hours"},
		{"seconds ago", now.Add(-30 * time.Second), "30 seconds ago"},
		{"in three weeks", now.AddDate(0, 0, 20), "in 3 weeks"},
		{"last year", now.AddDate(-1, 0, 0), "last year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatRelative(tt.t, now, "wide"); got != tt.want {
				t.Errorf("FormatRelative = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatRelativeMonthPromotion(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	f := mustFormatter(t)(NewDateFormatter("medium"))

	// 29 days out lands in April, close enough to a month to say so
	if got := f.FormatRelative(now.AddDate(0, 0, 29), now, "wide"); got != "next month" {
		t.Errorf("29 days out = %q, want %q", got, "next month")
	}

	// 29 days inside the same month window stays on the week scale
	if got := f.FormatRelative(now.AddDate(0, 0, -29), now, "wide"); got != "last month" {
		t.Errorf("29 days back = %q, want %q", got, "last month")
	}
}

func TestFormatRelativeScale(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	f := mustFormatter(t)(NewDateFormatter("medium"))

	if got := f.FormatRelativeScale(now.Add(48*time.Hour), now, "hour", "wide"); got != "in 48 hours" {
		t.Errorf("fixed hour scale = %q, want %q", got, "in 48 hours")
	}
	if got := f.FormatRelativeScale(now.AddDate(0, 0, -14), now, "week", "wide"); got != "2 weeks ago" {
		t.Errorf("fixed week scale = %q, want %q", got, "2 weeks ago")
	}

}

func TestParseRelative(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	f := mustFormatter(t)(NewDateFormatter("medium"))

	tests := []struct {
		input string
		want  time.Time
	}{
		{"now", now},
		{"tomorrow", now.AddDate(0, 0, 1)},
		{"yesterday", now.AddDate(0, 0, -1)},
		{"in 2 hours", now.Add(2 * time.Hour)},
		{"3 days ago", now.AddDate(0, 0, -3)},
		{"next month", now.AddDate(0, 1, 0)},
		{"in 5 years", now.AddDate(5, 0, 0)},
	}
	for _, tt := range tests {
		got, ok := f.ParseRelative(tt.input, now)
		if !ok {
			t.Errorf("ParseRelative(%q) failed", tt.input)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseRelative(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, ok := f.ParseRelative("sometime soon", now); ok {
		t.Error("ParseRelative accepted garbage")
	}
}

func TestParseRelativeRoundTrip(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	f := mustFormatter(t)(NewDateFormatter("medium"))

	for _, target := range []time.Time{
		now.AddDate(0, 0, 1),
		now.Add(-4 * time.Hour),
		now.AddDate(0, 2, 0),
	} {
		formatted := f.FormatRelative(target, now, "wide")
		parsed, ok := f.ParseRelative(formatted, now)
		if !ok {
			t.Errorf("ParseRelative(%q) failed", formatted)
			continue
		}
		if !parsed.Equal(target) {
			t.Errorf("round trip via %q: got %v, want %v", formatted, parsed, target)
		}
	}
}
