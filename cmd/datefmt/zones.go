package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	dateformat "github.com/goliatone/go-dateformat"
)

type zonesOptions struct {
	at string
}

func newZonesCmd() *cobra.Command {
	opts := &zonesOptions{}

	cmd := &cobra.Command{
		Use:   "zones <zone>...",
		Short: "Show the UTC offset of IANA zones at an instant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runZones(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.at, "at", "", "Instant to evaluate offsets at (RFC 3339, default now)")

	return cmd
}

func runZones(cmd *cobra.Command, opts *zonesOptions, zones []string) error {
	t := time.Now()
	if opts.at != "" {
		parsed, err := time.Parse(time.RFC3339, opts.at)
		if err != nil {
			return fmt.Errorf("parsing --at %q: %w", opts.at, err)
		}
		t = parsed
	}

	for _, zone := range zones {
		if !dateformat.IsValidTimezone(zone) {
			return fmt.Errorf("unknown timezone %q", zone)
		}
		offset, err := dateformat.CalculateOffset(t, zone)
		if err != nil {
			return err
		}
		sign := "-"
		if offset <= 0 {
			sign = "+"
		}
		abs := offset
		if abs < 0 {
			abs = -abs
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\tUTC%s%02d:%02d\n", zone, sign, abs/3600, abs%3600/60)
	}
	return nil
}
