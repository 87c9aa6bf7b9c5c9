package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"brubeckscan/internal/brubeck"
	"brubeckscan/internal/dashboard"
	"brubeckscan/internal/fetch"
	"brubeckscan/internal/server"
)

const shutdownGrace = 30 * time.Second

// brubeckscan serve
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP/WebSocket server",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runServe()
		},
	}
}

func runServe() error {
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
	srv := server.New(server.Options{
		Service:     service,
		DefaultZone: cfg.DefaultTimezone,
		Logger:      logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})

	// First signal starts graceful shutdown, a second one forces exit.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()

		select {
		case sig = <-sigCh:
			logger.Warn().Str("signal", sig.String()).Msg("second signal, forcing exit")
			os.Exit(1)
		case <-time.After(shutdownGrace):
			logger.Error().Msg("graceful shutdown timed out, forcing exit")
			os.Exit(1)
		case <-done:
		}
	}()

	err := srv.Start(ctx, cfg.ListenAddr)
	close(done)
	if err != nil {
		return err
	}

	logger.Info().Msg("shutdown complete")
	return nil
}
