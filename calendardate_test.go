package dateformat

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, year, month, day int, calendarType CalendarType) *CalendarDate {
	t.Helper()
	date, err := NewCalendarDate(year, month, day, calendarType)
	if err != nil {
		t.Fatalf("NewCalendarDate(%d, %d, %d, %s): %v", year, month, day, calendarType, err)
	}
	return date
}

func assertDate(t *testing.T, date *CalendarDate, year, month, day int) {
	t.Helper()
	if date.Year() != year || date.Month() != month || date.Day() != day {
		t.Fatalf("got %d-%02d-%02d, want %d-%02d-%02d",
			date.Year(), date.Month()+1, date.Day(), year, month+1, day)
	}
}

func TestCalendarDateRollover(t *testing.T) {
	date := mustDate(t, 2024, 0, 31, CalendarGregorian)

	date.SetMonth(1) // Feb 31 rolls into March
	assertDate(t, date, 2024, 2, 2)

	date = mustDate(t, 2024, 2, 1, CalendarGregorian)
	date.SetDay(0) // day zero is the last day of the previous month
	assertDate(t, date, 2024, 1, 29)
}

func TestCalendarDateUnixMilliInvariant(t *testing.T) {
	gregorian := mustDate(t, 2024, 6, 8, CalendarGregorian)
	islamic, err := ConvertCalendarDate(gregorian, CalendarIslamic)
	if err != nil {
		t.Fatal(err)
	}
	if gregorian.UnixMilli() != islamic.UnixMilli() {
		t.Fatalf("conversion changed the instant: %d != %d", gregorian.UnixMilli(), islamic.UnixMilli())
	}
	assertDate(t, islamic, 1446, 0, 1)
}

func TestCalendarDateComparisons(t *testing.T) {
	earlier := mustDate(t, 2024, 2, 14, CalendarGregorian)
	later := mustDate(t, 2024, 2, 15, CalendarGregorian)
	same := mustDate(t, 2024, 2, 14, CalendarGregorian)

	if !earlier.IsBefore(later) || later.IsBefore(earlier) {
		t.Error("IsBefore")
	}
	if !later.IsAfter(earlier) || earlier.IsAfter(later) {
		t.Error("IsAfter")
	}
	if !earlier.IsSame(same) || earlier.IsSame(later) {
		t.Error("IsSame")
	}
	if !earlier.IsSameOrBefore(same) || !earlier.IsSameOrBefore(later) {
		t.Error("IsSameOrBefore")
	}
	if !later.IsSameOrAfter(same) && later.IsSameOrAfter(earlier) {
		t.Error("IsSameOrAfter")
	}
}

func TestModifyDateByMonthEndSnap(t *testing.T) {
	// Jan 31 plus one month snaps to the last day of February
	date := mustDate(t, 2024, 0, 31, CalendarGregorian)
	moved := ModifyDateBy(date, 1, UnitMonth, true, nil, nil)
	assertDate(t, moved, 2024, 1, 29)

	// and the source date is untouched
	assertDate(t, date, 2024, 0, 31)

	// Mar 31 minus one month snaps to the last day of February
	date = mustDate(t, 2024, 2, 31, CalendarGregorian)
	moved = ModifyDateBy(date, -1, UnitMonth, true, nil, nil)
	assertDate(t, moved, 2024, 1, 29)
}

func TestModifyDateByYearLeapSnap(t *testing.T) {
	date := mustDate(t, 2024, 1, 29, CalendarGregorian)
	moved := ModifyDateBy(date, 1, UnitYear, true, nil, nil)
	assertDate(t, moved, 2025, 1, 28)
}

func TestModifyDateByWithoutPreserve(t *testing.T) {
	date := mustDate(t, 2024, 0, 15, CalendarGregorian)

	forward := ModifyDateBy(date, 1, UnitMonth, false, nil, nil)
	assertDate(t, forward, 2024, 1, 1)

	backward := ModifyDateBy(date, -1, UnitMonth, false, nil, nil)
	assertDate(t, backward, 2023, 11, 31)
}

func TestModifyDateByDays(t *testing.T) {
	date := mustDate(t, 2024, 1, 28, CalendarGregorian)
	moved := ModifyDateBy(date, 2, UnitDay, true, nil, nil)
	assertDate(t, moved, 2024, 2, 1)
}

func TestModifyDateByClamping(t *testing.T) {
	date := mustDate(t, 2024, 5, 15, CalendarGregorian)
	max := mustDate(t, 2024, 5, 20, CalendarGregorian)
	min := mustDate(t, 2024, 5, 10, CalendarGregorian)

	clamped := ModifyDateBy(date, 30, UnitDay, true, min, max)
	if !clamped.IsSame(max) {
		t.Fatalf("expected clamp to max, got %s", clamped)
	}
	clamped = ModifyDateBy(date, -30, UnitDay, true, min, max)
	if !clamped.IsSame(min) {
		t.Fatalf("expected clamp to min, got %s", clamped)
	}
}

func TestCalendarDateWeekday(t *testing.T) {
	date := mustDate(t, 2024, 2, 15, CalendarGregorian) // a Friday
	if got := date.Weekday(); got != 5 {
		t.Fatalf("Weekday() = %d, want 5", got)
	}
}

func TestCalendarDateFromTimeTruncates(t *testing.T) {
	instant := time.Date(2024, time.March, 15, 18, 45, 12, 0, time.UTC)
	date, err := CalendarDateFromTime(instant, CalendarGregorian)
	if err != nil {
		t.Fatal(err)
	}
	midnight := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if date.UnixMilli() != midnight.UnixMilli() {
		t.Fatalf("expected truncation to midnight, got %d", date.UnixMilli())
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name         string
		year, month  int
		calendarType CalendarType
		want         int
	}{
		{"gregorian january", 2024, 0, CalendarGregorian, 31},
		{"gregorian leap february", 2024, 1, CalendarGregorian, 29},
		{"gregorian february", 2023, 1, CalendarGregorian, 28},
		{"gregorian december", 2024, 11, CalendarGregorian, 31},
		{"buddhist leap february", 2567, 1, CalendarBuddhist, 29},
		{"islamic muharram", 1445, 0, CalendarIslamic, 30},
		{"islamic safar", 1445, 1, CalendarIslamic, 29},
		{"islamic leap dhu al-hijjah", 1445, 11, CalendarIslamic, 30},
	}
	for _, tt := range tests {
		got, err := DaysInMonth(tt.year, tt.month, tt.calendarType)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: DaysInMonth = %d, want %d", tt.name, got, tt.want)
		}
	}

	if _, err := DaysInMonth(2024, 0, CalendarType("Mayan")); err == nil {
		t.Error("expected an error for an unregistered calendar")
	}
}

func TestMonthsInYear(t *testing.T) {
	for _, calendarType := range []CalendarType{CalendarGregorian, CalendarIslamic, CalendarJapanese, CalendarBuddhist, CalendarPersian} {
		got, err := MonthsInYear(4, calendarType)
		if err != nil {
			t.Fatalf("%s: %v", calendarType, err)
		}
		if got != 12 {
			t.Errorf("%s: MonthsInYear = %d, want 12", calendarType, got)
		}
	}
}

func TestComparisonNilOperandPanics(t *testing.T) {
	d := mustDate(t, 2024, 2, 15, CalendarGregorian)
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a nil comparison operand")
		}
	}()
	d.IsSame(nil)
}
