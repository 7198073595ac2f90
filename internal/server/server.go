// Package server serves the chart page, chart images and geometry over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/topbars/internal/chart"
	"github.com/verte-zerg/topbars/internal/dataset"
	"github.com/verte-zerg/topbars/internal/model"
)

// DefaultConfig returns the default server settings.
func DefaultConfig() model.ServeConfig {
	return model.ServeConfig{
		Host:            "localhost",
		Port:            8080,
		EnableMetrics:   true,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server renders a fresh chart for every request.
type Server struct {
	config   model.ServeConfig
	data     model.DataConfig
	options  chart.Options
	metrics  *renderMetrics
	gatherer prometheus.Gatherer
	open     func(model.DataConfig) (dataset.Source, error)
	server   *http.Server
	listener net.Listener
}

// Option customises a Server.
type Option func(*Server)

// WithRegistry registers metrics on registry and serves them from it.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		s.metrics = newRenderMetrics(registry)
		s.gatherer = registry
	}
}

// WithSourceOpener replaces dataset.Open.
func WithSourceOpener(open func(model.DataConfig) (dataset.Source, error)) Option {
	return func(s *Server) {
		s.open = open
	}
}

// New returns a server for the given dataset and chart settings. Metrics go
// to the default Prometheus registry unless WithRegistry is given.
func New(config model.ServeConfig, data model.DataConfig, options chart.Options, opts ...Option) *Server {
	s := &Server{
		config:  config,
		data:    data,
		options: options,
		open:    dataset.Open,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = newRenderMetrics(prometheus.DefaultRegisterer)
		s.gatherer = prometheus.DefaultGatherer
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.loggingMiddleware)

	router.HandleFunc("/", s.handlePage).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/chart.svg", s.handleSVG).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/chart.png", s.handlePNG).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/api/geometry", s.handleGeometry).Methods(http.MethodGet)
	router.HandleFunc("/data.csv", s.handleData).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/health", s.healthCheck)

	if s.config.EnableMetrics {
		router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return router
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Info().
		Str("addr", listener.Addr().String()).
		Str("data", s.data.Path).
		Bool("metrics", s.config.EnableMetrics).
		Msg("Starting topbars server")

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server stopped unexpectedly")
		}
	}()
	return nil
}

// Addr returns the listening address once started.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Info().Msg("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// Run starts the server and blocks until ctx is cancelled or SIGINT/SIGTERM
// arrives, then shuts down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info().Msg("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info().Msg("Server shutdown complete")
	return nil
}
