package dateformat

import (
	"errors"
	"testing"
)

func TestCalculateWeekNumberISO(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		want             WeekNumber
	}{
		{"first thursday", 2024, 0, 4, WeekNumber{Year: 2024, Week: 1}},
		{"year start belongs to previous year", 2021, 0, 1, WeekNumber{Year: 2020, Week: 53}},
		{"december start of next week year", 2024, 11, 30, WeekNumber{Year: 2025, Week: 1}},
		{"mid year", 2024, 6, 8, WeekNumber{Year: 2024, Week: 28}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := mustDate(t, tt.year, tt.month, tt.day, CalendarGregorian)
			got, err := CalculateWeekNumber(date, WeekISO8601, nil)
			if err != nil {
				t.Fatalf("CalculateWeekNumber: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateWeekNumberSplitRule(t *testing.T) {
	repo := testRepository(t)
	en := loadTestLocale(t, repo, "en")

	// en counts split weeks: January 1 always opens week 1 of its own year.
	date := mustDate(t, 2021, 0, 1, CalendarGregorian)
	got, err := CalculateWeekNumber(date, WeekDefault, en)
	if err != nil {
		t.Fatalf("CalculateWeekNumber: %v", err)
	}
	if got != (WeekNumber{Year: 2021, Week: 1}) {
		t.Errorf("Jan 1: got %+v, want {2021 1}", got)
	}

	date = mustDate(t, 2020, 11, 31, CalendarGregorian)
	got, err = CalculateWeekNumber(date, WeekDefault, en)
	if err != nil {
		t.Fatalf("CalculateWeekNumber: %v", err)
	}
	if got != (WeekNumber{Year: 2020, Week: 53}) {
		t.Errorf("Dec 31: got %+v, want {2020 53}", got)
	}
}

func TestCalculateWeekNumberLocaleDefault(t *testing.T) {
	repo := testRepository(t)
	de := loadTestLocale(t, repo, "de")

	// de carries ISO week data, so January 1 2021 falls in the old year.
	date := mustDate(t, 2021, 0, 1, CalendarGregorian)
	got, err := CalculateWeekNumber(date, WeekDefault, de)
	if err != nil {
		t.Fatalf("CalculateWeekNumber: %v", err)
	}
	if got != (WeekNumber{Year: 2020, Week: 53}) {
		t.Errorf("got %+v, want {2020 53}", got)
	}
}

func TestCalculateWeekNumberMiddleEastern(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		want             WeekNumber
	}{
		{"january 1", 2021, 0, 1, WeekNumber{Year: 2021, Week: 1}},
		{"late december pulled forward", 2020, 11, 26, WeekNumber{Year: 2021, Week: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date := mustDate(t, tt.year, tt.month, tt.day, CalendarGregorian)
			got, err := CalculateWeekNumber(date, WeekMiddleEastern, nil)
			if err != nil {
				t.Fatalf("CalculateWeekNumber: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateWeekNumberErrors(t *testing.T) {
	date := mustDate(t, 2024, 0, 1, CalendarGregorian)

	if _, err := CalculateWeekNumber(date, WeekDefault, nil); !errors.Is(err, ErrInvalidWeekConfig) {
		t.Errorf("default without locale: err = %v, want ErrInvalidWeekConfig", err)
	}
	if _, err := CalculateWeekNumber(date, WeekNumbering("Bogus"), nil); !errors.Is(err, ErrInvalidWeekConfig) {
		t.Errorf("unknown numbering: err = %v, want ErrInvalidWeekConfig", err)
	}
}

func TestFirstDayOfWeek(t *testing.T) {
	tests := []struct {
		numbering WeekNumbering
		want      int
	}{
		{WeekISO8601, 1},
		{WeekMiddleEastern, 6},
		{WeekWesternTraditional, 0},
	}
	for _, tt := range tests {
		got, err := FirstDayOfWeek(tt.numbering, nil)
		if err != nil {
			t.Fatalf("FirstDayOfWeek(%s): %v", tt.numbering, err)
		}
		if got != tt.want {
			t.Errorf("FirstDayOfWeek(%s) = %d, want %d", tt.numbering, got, tt.want)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	repo := testRepository(t)
	en := loadTestLocale(t, repo, "en")
	ar := loadTestLocale(t, repo, "ar")

	friday := mustDate(t, 2024, 2, 15, CalendarGregorian)
	saturday := mustDate(t, 2024, 2, 16, CalendarGregorian)
	sunday := mustDate(t, 2024, 2, 17, CalendarGregorian)
	monday := mustDate(t, 2024, 2, 18, CalendarGregorian)

	tests := []struct {
		name   string
		locale *LocaleData
		date   *CalendarDate
		want   bool
	}{
		{"en friday", en, friday, false},
		{"en saturday", en, saturday, true},
		{"en sunday", en, sunday, true},
		{"en monday", en, monday, false},
		{"ar friday", ar, friday, true},
		{"ar saturday", ar, saturday, true},
		{"ar sunday", ar, sunday, false},
	}
	for _, tt := range tests {
		if got := IsWeekend(tt.date, tt.locale); got != tt.want {
			t.Errorf("%s: IsWeekend = %v, want %v", tt.name, got, tt.want)
		}
	}
}
