package dateformat

import (
	"time"
)

// ZonedDate is a date-time value whose field accessors reflect a
// configured IANA zone instead of the system zone. It is immutable: the
// With* methods return new values, so there is no derived-state cache to
// invalidate.
//
// The zero ZonedDate is invalid; Valid reports false and every numeric
// accessor returns 0, mirroring how an invalid JS Date reports NaN without
// throwing.
type ZonedDate struct {
	instant time.Time
	loc     *time.Location
	zoneID  string
	valid   bool
}

// NewZonedDate wraps an instant with a target zone.
func NewZonedDate(t time.Time, zoneID string) (ZonedDate, error) {
	loc, err := loadLocation(zoneID)
	if err != nil {
		return ZonedDate{}, err
	}
	return ZonedDate{instant: t, loc: loc, zoneID: zoneID, valid: !t.IsZero()}, nil
}

// ZonedDateFromFields interprets the given wall-clock components (month
// 0-based) as local time in the target zone and solves for the instant
// they denote. Out-of-range components roll over, and wall clocks that
// fall inside a DST gap resolve the way the zone database shifts them.
func ZonedDateFromFields(year, month, day, hour, minute, second, millisecond int, zoneID string) (ZonedDate, error) {
	loc, err := loadLocation(zoneID)
	if err != nil {
		return ZonedDate{}, err
	}
	instant := time.Date(year, time.Month(month+1), day, hour, minute, second, millisecond*int(time.Millisecond), loc)
	return ZonedDate{instant: instant, loc: loc, zoneID: zoneID, valid: true}, nil
}

// Valid reports whether the value carries a real instant.
func (z ZonedDate) Valid() bool { return z.valid }

// Zone returns the configured IANA zone id.
func (z ZonedDate) Zone() string { return z.zoneID }

// Time returns the wrapped instant.
func (z ZonedDate) Time() time.Time { return z.instant }

// UnixMilli returns the wrapped instant as epoch milliseconds.
func (z ZonedDate) UnixMilli() int64 {
	if !z.valid {
		return 0
	}
	return z.instant.UnixMilli()
}

func (z ZonedDate) wall() time.Time {
	return z.instant.In(z.loc)
}

// Year returns the signed wall-clock year in the target zone (year 0 is
// 1 BC, matching the era-flip rule for proleptic years).
func (z ZonedDate) Year() int {
	if !z.valid {
		return 0
	}
	return z.wall().Year()
}

// Month returns the 0-based wall-clock month in the target zone.
func (z ZonedDate) Month() int {
	if !z.valid {
		return 0
	}
	return int(z.wall().Month()) - 1
}

func (z ZonedDate) Day() int {
	if !z.valid {
		return 0
	}
	return z.wall().Day()
}

// Weekday returns the wall-clock day of week, 0 = Sunday.
func (z ZonedDate) Weekday() int {
	if !z.valid {
		return 0
	}
	return int(z.wall().Weekday())
}

func (z ZonedDate) Hour() int {
	if !z.valid {
		return 0
	}
	return z.wall().Hour()
}

func (z ZonedDate) Minute() int {
	if !z.valid {
		return 0
	}
	return z.wall().Minute()
}

func (z ZonedDate) Second() int {
	if !z.valid {
		return 0
	}
	return z.wall().Second()
}

func (z ZonedDate) Millisecond() int {
	if !z.valid {
		return 0
	}
	return z.wall().Nanosecond() / int(time.Millisecond)
}

// TimezoneOffset returns the offset in minutes between UTC and the target
// zone at the wrapped instant, positive west of Greenwich. This reflects
// the configured zone, not the system zone.
func (z ZonedDate) TimezoneOffset() int {
	if !z.valid {
		return 0
	}
	_, offset := z.wall().Zone()
	return -offset / 60
}

func (z ZonedDate) withWall(year, month, day, hour, minute, second, millisecond int) ZonedDate {
	if !z.valid {
		return z
	}
	instant := time.Date(year, time.Month(month+1), day, hour, minute, second, millisecond*int(time.Millisecond), z.loc)
	out := z
	out.instant = instant
	return out
}

// WithYear returns a copy with the wall-clock year replaced.
func (z ZonedDate) WithYear(year int) ZonedDate {
	w := z.wall()
	return z.withWall(year, int(w.Month())-1, w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond()/int(time.Millisecond))
}

// WithMonth returns a copy with the 0-based wall-clock month replaced.
func (z ZonedDate) WithMonth(month int) ZonedDate {
	w := z.wall()
	return z.withWall(w.Year(), month, w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond()/int(time.Millisecond))
}

// WithDay returns a copy with the wall-clock day of month replaced.
func (z ZonedDate) WithDay(day int) ZonedDate {
	w := z.wall()
	return z.withWall(w.Year(), int(w.Month())-1, day, w.Hour(), w.Minute(), w.Second(), w.Nanosecond()/int(time.Millisecond))
}

// WithTime returns a copy with the wall-clock time of day replaced.
func (z ZonedDate) WithTime(hour, minute, second, millisecond int) ZonedDate {
	w := z.wall()
	return z.withWall(w.Year(), int(w.Month())-1, w.Day(), hour, minute, second, millisecond)
}
