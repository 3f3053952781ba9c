package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newColorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List the color palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			colors, err := a.store.ListColors(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tHEX")
			for _, c := range colors {
				fmt.Fprintf(tw, "%d\t%s\t#%s\n", c.ID, c.Name, c.Hex)
			}

			return tw.Flush()
		},
	}
}
