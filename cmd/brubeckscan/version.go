package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// brubeckscan version
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the brubeckscan version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "brubeckscan %s (%s)\n", version, runtime.Version())
		},
	}
}
