package dateformat

import (
	"testing"
	"time"
)

func TestZonedDateWallClock(t *testing.T) {
	// 2024-03-10 06:30 UTC is 01:30 in New York, still on standard time
	instant := time.Date(2024, time.March, 10, 6, 30, 0, 0, time.UTC)
	date, err := NewZonedDate(instant, "America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	if date.Year() != 2024 || date.Month() != 2 || date.Day() != 10 {
		t.Fatalf("wall date = %d-%02d-%02d", date.Year(), date.Month()+1, date.Day())
	}
	if date.Hour() != 1 || date.Minute() != 30 {
		t.Fatalf("wall time = %02d:%02d, want 01:30", date.Hour(), date.Minute())
	}
	if date.TimezoneOffset() != 300 {
		t.Fatalf("TimezoneOffset = %d, want 300", date.TimezoneOffset())
	}
}

func TestZonedDateFromFields(t *testing.T) {
	date, err := ZonedDateFromFields(2024, 6, 4, 12, 0, 0, 0, "America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	// noon on July 4 in New York is 16:00 UTC
	want := time.Date(2024, time.July, 4, 16, 0, 0, 0, time.UTC)
	if !date.Time().Equal(want) {
		t.Fatalf("instant = %s, want %s", date.Time().UTC(), want)
	}
}

func TestZonedDateDSTGapRollsForward(t *testing.T) {
	// 02:30 on 2024-03-10 does not exist in New York
	date, err := ZonedDateFromFields(2024, 2, 10, 2, 30, 0, 0, "America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	if date.Hour() == 2 {
		t.Fatalf("expected the gap wall clock to shift, got hour %d", date.Hour())
	}
}

func TestZonedDateImmutableWith(t *testing.T) {
	date, err := ZonedDateFromFields(2024, 0, 15, 8, 0, 0, 0, "Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}

	moved := date.WithMonth(5).WithDay(1).WithTime(20, 15, 0, 0)
	if date.Month() != 0 || date.Day() != 15 || date.Hour() != 8 {
		t.Fatal("With* mutated the receiver")
	}
	if moved.Month() != 5 || moved.Day() != 1 || moved.Hour() != 20 || moved.Minute() != 15 {
		t.Fatalf("moved = %d-%02d %02d:%02d", moved.Month()+1, moved.Day(), moved.Hour(), moved.Minute())
	}
}

func TestZonedDateInvalid(t *testing.T) {
	var zero ZonedDate
	if zero.Valid() {
		t.Fatal("zero value must be invalid")
	}
	if zero.Year() != 0 || zero.Hour() != 0 || zero.UnixMilli() != 0 || zero.TimezoneOffset() != 0 {
		t.Fatal("invalid date accessors must return 0")
	}
}

func TestNewZonedDateUnknownZone(t *testing.T) {
	if _, err := NewZonedDate(time.Now(), "Pluto/Core"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}
