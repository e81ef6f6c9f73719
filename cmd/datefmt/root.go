package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	dateformat "github.com/goliatone/go-dateformat"
)

type rootFlags struct {
	locale   string
	calendar string
	dataDir  string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "datefmt",
		Short:         "datefmt formats, parses and converts dates with CLDR locale data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.verbose {
				dateformat.SetLogger(dateformat.NewConsoleLogger(os.Stderr))
			}
			if flags.dataDir != "" {
				loader := dateformat.NewFileLoader(flags.dataDir)
				if err := loader.RegisterAll(dateformat.LocaleDataLoaders()); err != nil {
					return fmt.Errorf("registering locale data from %s: %w", flags.dataDir, err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.locale, "locale", "l", "en", "BCP 47 locale tag")
	cmd.PersistentFlags().StringVar(&flags.calendar, "calendar", "Gregorian", "Calendar type (Gregorian, Islamic, Japanese, Buddhist, Persian)")
	cmd.PersistentFlags().StringVar(&flags.dataDir, "data", "", "Directory of locale payload files (json, yaml, toml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newFormatCmd(flags))
	cmd.AddCommand(newParseCmd(flags))
	cmd.AddCommand(newPatternCmd(flags))
	cmd.AddCommand(newZonesCmd())

	return cmd
}

func (f *rootFlags) formatterOptions() []dateformat.Option {
	return []dateformat.Option{
		dateformat.WithLocale(f.locale),
		dateformat.WithCalendarType(dateformat.CalendarType(f.calendar)),
	}
}
