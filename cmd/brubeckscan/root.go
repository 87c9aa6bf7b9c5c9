package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"brubeckscan/internal/config"
	"brubeckscan/internal/logging"
)

var version = "0.1.0"

var (
	cfg    config.Config
	logger zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "brubeckscan",
	Short: "Dashboard over the Streamr Brubeck node reward API",
	Long: `brubeckscan aggregates the per-node endpoints of the Streamr Brubeck
reward API (status, rewards, payouts, claimed codes) into a single record
and serves it over HTTP and WebSocket, or renders it once to stdout.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger = logging.New(logging.Config{
			Level:         cfg.LogLevel,
			HumanFriendly: cfg.LogHumanFriendly,
		})
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(zonesCmd())
	rootCmd.AddCommand(versionCmd())
}
