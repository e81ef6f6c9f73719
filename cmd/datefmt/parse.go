package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	dateformat "github.com/goliatone/go-dateformat"
)

type parseOptions struct {
	style    string
	pattern  string
	timezone string
}

func newParseCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <value>",
		Short: "Parse a formatted date back into an RFC 3339 instant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, rootFlags, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.style, "style", "medium", "Date style the value was formatted with")
	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "Raw CLDR pattern, overrides --style")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "", "IANA zone to anchor offset-less input in")

	return cmd
}

func runParse(cmd *cobra.Command, rootFlags *rootFlags, opts *parseOptions, value string) error {
	formatter, err := dateformat.FormatOptions{
		Locale:       rootFlags.locale,
		CalendarType: dateformat.CalendarType(rootFlags.calendar),
		DateStyle:    opts.style,
		Pattern:      opts.pattern,
	}.Build()
	if err != nil {
		return err
	}

	loc := time.UTC
	if opts.timezone != "" {
		loc, err = time.LoadLocation(opts.timezone)
		if err != nil {
			return fmt.Errorf("unknown timezone %q: %w", opts.timezone, err)
		}
	}

	t, ok := formatter.ParseIn(value, loc)
	if !ok {
		return fmt.Errorf("cannot parse %q with pattern %q", value, formatter.Pattern())
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Format(time.RFC3339))
	return nil
}
