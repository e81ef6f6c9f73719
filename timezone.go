package dateformat

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// maxLocationCacheSize bounds the zone lookup cache. Exceeding it resets
// the cache to empty, which bounds memory while still avoiding repeated
// zone database lookups in the common few-zones case.
const maxLocationCacheSize = 10

var (
	locationMu    sync.Mutex
	locationCache = make(map[string]*time.Location)

	localZoneOnce sync.Once
	localZoneID   string
)

func loadLocation(zoneID string) (*time.Location, error) {
	locationMu.Lock()
	defer locationMu.Unlock()

	if loc, ok := locationCache[zoneID]; ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		return nil, fmt.Errorf("dateformat: load timezone %q: %w", zoneID, err)
	}

	if len(locationCache) >= maxLocationCacheSize {
		locationCache = make(map[string]*time.Location)
	}
	locationCache[zoneID] = loc
	return loc, nil
}

// IsValidTimezone reports whether zoneID names a zone the platform's zone
// database can resolve.
func IsValidTimezone(zoneID string) bool {
	if zoneID == "" || zoneID == "Local" {
		return false
	}
	_, err := loadLocation(zoneID)
	return err == nil
}

// ConvertToTimezone returns the wall clock that t shows in the target
// zone, re-anchored as a UTC instant. The UTC field values of the result
// equal the target zone's local field values for t, which is the form the
// zone-aware date value and the formatter work with.
func ConvertToTimezone(t time.Time, zoneID string) (time.Time, error) {
	loc, err := loadLocation(zoneID)
	if err != nil {
		return time.Time{}, err
	}
	wall := t.In(loc)
	year, month, day := wall.Date()
	hour, minute, second := wall.Clock()
	return time.Date(year, month, day, hour, minute, second, wall.Nanosecond(), time.UTC), nil
}

// CalculateOffset returns the offset in seconds that separates t's UTC
// field values, read as a wall clock in the target zone, from the instant
// that wall clock denotes. Positive for zones west of Greenwich, matching
// JS getTimezoneOffset orientation.
//
// The two-pass refinement handles wall clocks near a DST transition: the
// first conversion measures the offset in effect at t, the second
// remeasures at the shifted instant. Jurisdictions with two transitions in
// immediate succession would need a third pass; none exist in current zone
// data, so the known limitation is kept as-is.
func CalculateOffset(t time.Time, zoneID string) (int, error) {
	first, err := ConvertToTimezone(t, zoneID)
	if err != nil {
		return 0, err
	}
	initialOffset := t.Sub(first)

	shifted := t.Add(initialOffset)
	second, err := ConvertToTimezone(shifted, zoneID)
	if err != nil {
		return 0, err
	}
	return int(shifted.Sub(second) / time.Second), nil
}

// LocalTimezone resolves the system's IANA zone id once per process.
func LocalTimezone() string {
	localZoneOnce.Do(func() {
		if tz := os.Getenv("TZ"); tz != "" && tz != ":" {
			localZoneID = tz
			return
		}
		name := time.Local.String()
		if name == "" || name == "Local" {
			name = "UTC"
		}
		localZoneID = name
	})
	return localZoneID
}
