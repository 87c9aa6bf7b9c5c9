// Package server exposes the dashboard over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/ziflex/lecho/v2"

	"brubeckscan/internal/dashboard"
	"brubeckscan/internal/observability"
	"brubeckscan/internal/timefmt"
)

const shutdownTimeout = 10 * time.Second

// Server wires the dashboard service into an echo application.
type Server struct {
	echo        *echo.Echo
	service     *dashboard.Service
	hub         *Hub
	defaultZone string
	logger      zerolog.Logger
	started     time.Time
}

// Options configures a Server.
type Options struct {
	Service     *dashboard.Service
	DefaultZone string // zone used when a request does not select one
	Logger      zerolog.Logger
}

// New creates a Server with all routes registered.
func New(opts Options) *Server {
	defaultZone := opts.DefaultZone
	if defaultZone == "" {
		defaultZone = timefmt.DefaultZone
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	logger := lecho.From(opts.Logger)
	e.Logger = logger
	e.Use(middleware.RequestID())
	e.Use(lecho.Middleware(lecho.Config{Logger: logger}))
	e.Use(middleware.Recover())
	e.Validator = &requestValidator{validate: validator.New()}

	s := &Server{
		echo:        e,
		service:     opts.Service,
		hub:         newHub(opts.Service, opts.Logger),
		defaultZone: defaultZone,
		logger:      opts.Logger,
		started:     time.Now(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api/v1")
	api.GET("/nodes/:address", s.handleNode)
	api.POST("/lookup", s.handleLookup)
	api.GET("/record", s.handleRecord)
	api.GET("/zones", s.handleZones)
	api.GET("/live", s.handleLive)

	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/status", s.handleStatus)
	s.echo.GET("/metrics", echo.WrapHandler(observability.Handler()))
}

// Start runs the hub and the HTTP listener until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	go s.hub.Run(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	s.logger.Info().Str("addr", addr).Msg("server listening")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

// Handler exposes the routed application, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// displayZone resolves the zone a request selected, falling back to the
// configured default and then to UTC.
func (s *Server) displayZone(requested string) *time.Location {
	if requested == "" {
		requested = s.defaultZone
	}
	return timefmt.ResolveOrUTC(requested)
}

// requestValidator adapts go-playground/validator to echo.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
