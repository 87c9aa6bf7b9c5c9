package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"brubeckscan/internal/brubeck"
	"brubeckscan/internal/dashboard"
	"brubeckscan/internal/fetch"
	"brubeckscan/internal/render"
	"brubeckscan/internal/timefmt"
)

// brubeckscan fetch <address>
func fetchCmd() *cobra.Command {
	var (
		timezone string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "fetch <address>",
		Short: "Run one load cycle for a node address and print the record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0], timezone, output)
		},
	}
	cmd.Flags().StringVar(&timezone, "tz", "", "display timezone (defaults to the configured zone)")
	cmd.Flags().StringVar(&output, "output", "markdown", "output format: markdown, payouts-csv, codes-csv")
	return cmd
}

func runFetch(cmd *cobra.Command, rawAddress, timezone, output string) error {
	client := brubeck.NewHTTPClient(cfg.APIBaseURL, brubeck.WithTimeout(cfg.HTTPTimeout))
	fetcher := fetch.New(fetch.Options{
		Client:  client,
		Workers: cfg.FetchWorkers,
		Logger:  logger,
	})
	service := dashboard.New(dashboard.Options{
		Fetcher: fetcher,
		Logger:  logger,
	})

	record, _, err := service.Load(cmd.Context(), rawAddress)
	if err != nil {
		return err
	}

	if timezone == "" {
		timezone = cfg.DefaultTimezone
	}
	loc := timefmt.ResolveOrUTC(timezone)

	switch output {
	case "markdown":
		fmt.Fprint(cmd.OutOrStdout(), render.RenderMarkdown(record, loc))
	case "payouts-csv":
		fmt.Fprint(cmd.OutOrStdout(), render.RenderPayoutsCSV(record))
	case "codes-csv":
		fmt.Fprint(cmd.OutOrStdout(), render.RenderClaimCodesCSV(record))
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
	return nil
}
