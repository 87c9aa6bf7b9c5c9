package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"brubeckscan/internal/timefmt"
)

// brubeckscan zones
func zonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the selectable display timezones",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, zone := range timefmt.Zones() {
				if zone == cfg.DefaultTimezone {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (default)\n", zone)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), zone)
			}
		},
	}
}
