package main

import (
	"fmt"

	"github.com/spf13/cobra"

	dateformat "github.com/goliatone/go-dateformat"
)

func newPatternCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pattern <skeleton>",
		Short: "Resolve a CLDR skeleton to the locale's date pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := dateformat.NewSkeletonFormatter(args[0], rootFlags.formatterOptions()...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Pattern())
			return nil
		},
	}
	return cmd
}
