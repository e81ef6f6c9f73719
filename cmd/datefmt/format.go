package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	dateformat "github.com/goliatone/go-dateformat"
)

type formatOptions struct {
	style     string
	timeStyle string
	pattern   string
	skeleton  string
	timezone  string
	relative  bool
}

func newFormatCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &formatOptions{}

	cmd := &cobra.Command{
		Use:   "format [instant]",
		Short: "Format an instant (RFC 3339 or \"now\") for a locale",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, rootFlags, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.style, "style", "medium", "Date style (short, medium, long, full)")
	cmd.Flags().StringVar(&opts.timeStyle, "time-style", "", "Time style; combines with --style when set")
	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "Raw CLDR pattern, overrides styles")
	cmd.Flags().StringVar(&opts.skeleton, "skeleton", "", "CLDR skeleton, overrides styles and pattern")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "", "IANA zone to render the instant in")
	cmd.Flags().BoolVar(&opts.relative, "relative", false, "Render relative to now (\"in 2 hours\")")

	return cmd
}

func resolveInstant(args []string) (time.Time, error) {
	if len(args) == 0 || args[0] == "now" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, args[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing instant %q: %w", args[0], err)
	}
	return t, nil
}

func runFormat(cmd *cobra.Command, rootFlags *rootFlags, opts *formatOptions, args []string) error {
	t, err := resolveInstant(args)
	if err != nil {
		return err
	}

	if opts.timezone != "" {
		if !dateformat.IsValidTimezone(opts.timezone) {
			return fmt.Errorf("unknown timezone %q", opts.timezone)
		}
		loc, err := time.LoadLocation(opts.timezone)
		if err != nil {
			return err
		}
		t = t.In(loc)
	}

	formatter, err := dateformat.FormatOptions{
		Locale:       rootFlags.locale,
		CalendarType: dateformat.CalendarType(rootFlags.calendar),
		DateStyle:    opts.style,
		TimeStyle:    opts.timeStyle,
		Pattern:      opts.pattern,
		Skeleton:     opts.skeleton,
	}.Build()
	if err != nil {
		return err
	}

	if opts.relative {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRelative(t, time.Now(), "wide"))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.Format(t))
	return nil
}
