package dateformat

import (
	"errors"
	"fmt"
)

// ErrUnregisteredCalendar indicates a calendar type was requested before any
// implementation registered for it.
var ErrUnregisteredCalendar = errors.New("dateformat: unregistered calendar type")

// ErrInvalidArgument indicates a date-math primitive received a value it
// cannot interpret (nil time, NaN-like input, non-numeric field value).
var ErrInvalidArgument = errors.New("dateformat: invalid argument")

// ErrTypeMismatch indicates a comparison between incompatible date values.
var ErrTypeMismatch = errors.New("dateformat: type mismatch")

// ErrUnsupportedCurrencyStyle is returned when the sap-short currency style
// is requested for a locale whose CLDR payload carries no data for it. This
// is a hard configuration error, not a fallback situation.
var ErrUnsupportedCurrencyStyle = errors.New("dateformat: no CLDR data for currency style")

// ErrInvalidWeekConfig indicates a calendar-week-numbering configuration of
// an unsupported shape.
var ErrInvalidWeekConfig = errors.New("dateformat: invalid calendar week numbering configuration")

// ParseError reports input that does not match an expected grammar: a
// malformed BCP-47 tag, an out-of-sequence skeleton, a malformed pattern.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dateformat: cannot parse %q: %s", e.Input, e.Reason)
}

func newParseError(input, reason string) *ParseError {
	return &ParseError{Input: input, Reason: reason}
}
