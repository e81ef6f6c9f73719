package dateformat

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// formatterConfig captures formatter setup before construction.
type formatterConfig struct {
	ctx          context.Context
	locale       string
	localeData   *LocaleData
	calendarType CalendarType
	registry     *CalendarRegistry
	repository   *LocaleDataRepository
	numbering    WeekNumbering
}

// Option mutates formatterConfig during construction
type Option func(*formatterConfig) error

func newFormatterConfig(opts ...Option) (*formatterConfig, error) {
	cfg := &formatterConfig{
		ctx:          context.Background(),
		locale:       DefaultLocale,
		calendarType: DefaultCalendarType,
		registry:     Calendars(),
		repository:   LocaleDataLoaders(),
		numbering:    WeekDefault,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.localeData == nil {
		tag, err := ParseLocale(cfg.locale)
		if err != nil {
			return nil, err
		}
		data, err := cfg.repository.Load(cfg.ctx, tag)
		if err != nil {
			return nil, err
		}
		cfg.localeData = data
	}

	return cfg, nil
}

// WithLocale selects the locale whose data the formatter consumes.
func WithLocale(locale string) Option {
	return func(c *formatterConfig) error {
		if _, err := ParseLocale(locale); err != nil {
			return err
		}
		c.locale = locale
		return nil
	}
}

// WithLocaleData injects pre-loaded locale data, bypassing the repository.
func WithLocaleData(data *LocaleData) Option {
	return func(c *formatterConfig) error {
		if data == nil {
			return fmt.Errorf("dateformat: nil locale data: %w", ErrInvalidArgument)
		}
		c.localeData = data
		return nil
	}
}

// WithCalendarType selects the calendar system dates are rendered in.
func WithCalendarType(calendarType CalendarType) Option {
	return func(c *formatterConfig) error {
		c.calendarType = calendarType
		return nil
	}
}

// WithCalendarRegistry swaps the calendar registry, for callers that
// register their own calendar systems.
func WithCalendarRegistry(registry *CalendarRegistry) Option {
	return func(c *formatterConfig) error {
		if registry == nil {
			return fmt.Errorf("dateformat: nil calendar registry: %w", ErrInvalidArgument)
		}
		c.registry = registry
		return nil
	}
}

// WithLocaleRepository swaps the locale data repository.
func WithLocaleRepository(repository *LocaleDataRepository) Option {
	return func(c *formatterConfig) error {
		if repository == nil {
			return fmt.Errorf("dateformat: nil locale repository: %w", ErrInvalidArgument)
		}
		c.repository = repository
		return nil
	}
}

// WithWeekNumbering selects the week numbering rule for week fields.
func WithWeekNumbering(numbering WeekNumbering) Option {
	return func(c *formatterConfig) error {
		c.numbering = numbering
		return nil
	}
}

// WithContext sets the context used while loading locale data.
func WithContext(ctx context.Context) Option {
	return func(c *formatterConfig) error {
		if ctx == nil {
			return fmt.Errorf("dateformat: nil context: %w", ErrInvalidArgument)
		}
		c.ctx = ctx
		return nil
	}
}

// FormatOptions is the declarative formatter setup. Zero-value fields
// fall back to defaults; Build validates the struct tags first.
type FormatOptions struct {
	Locale        string        `validate:"omitempty,bcp47_language_tag"`
	CalendarType  CalendarType  `validate:"omitempty,oneof=Gregorian Islamic Japanese Buddhist Persian"`
	WeekNumbering WeekNumbering `validate:"omitempty,oneof=Default ISO_8601 MiddleEastern WesternTraditional"`
	DateStyle     string        `validate:"omitempty,oneof=short medium long full"`
	TimeStyle     string        `validate:"omitempty,oneof=short medium long full"`
	Pattern       string
	Skeleton      string
	Interval      bool
}

var optionsValidator = validator.New(validator.WithRequiredStructEnabled())

func (o FormatOptions) options() []Option {
	var opts []Option
	if o.Locale != "" {
		opts = append(opts, WithLocale(o.Locale))
	}
	if o.CalendarType != "" {
		opts = append(opts, WithCalendarType(o.CalendarType))
	}
	if o.WeekNumbering != "" {
		opts = append(opts, WithWeekNumbering(o.WeekNumbering))
	}
	return opts
}

// Build constructs the formatter FormatOptions describes. Skeleton wins
// over pattern, pattern over styles; with only styles set the matching
// style factory is used, and an empty struct yields a medium date
// formatter.
func (o FormatOptions) Build() (*Formatter, error) {
	if err := optionsValidator.Struct(o); err != nil {
		return nil, fmt.Errorf("dateformat: invalid format options: %w", err)
	}
	opts := o.options()
	switch {
	case o.Interval && o.Skeleton != "":
		return NewIntervalFormatter(o.Skeleton, opts...)
	case o.Skeleton != "":
		return NewSkeletonFormatter(o.Skeleton, opts...)
	case o.Pattern != "":
		return NewPatternFormatter(o.Pattern, opts...)
	case o.DateStyle != "" && o.TimeStyle != "":
		return NewDateTimeFormatter(o.DateStyle, o.TimeStyle, opts...)
	case o.TimeStyle != "":
		return NewTimeFormatter(o.TimeStyle, opts...)
	case o.DateStyle != "":
		return NewDateFormatter(o.DateStyle, opts...)
	}
	return NewDateFormatter("medium", opts...)
}
