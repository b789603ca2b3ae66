package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/stemsolver/internal/metrics"
)

// DefaultShutdownTimeout bounds graceful shutdown when Config leaves it unset.
const DefaultShutdownTimeout = 10 * time.Second

// Config holds listener settings.
type Config struct {
	Listen          string // e.g. 0.0.0.0:8080
	MetricsListen   string // empty disables the metrics listener
	ShutdownTimeout time.Duration
}

// Server runs the solver handler and, optionally, a separate metrics listener.
type Server struct {
	cfg     Config
	log     logrus.FieldLogger
	main    *http.Server
	metrics *http.Server
}

// New wires h behind request logging. m may be nil.
func New(cfg Config, h http.Handler, m *metrics.Metrics, log logrus.FieldLogger) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	s := &Server{
		cfg: cfg,
		log: log,
		main: &http.Server{
			Addr:              cfg.Listen,
			Handler:           withRequestLog(log, h),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	if cfg.MetricsListen != "" && m != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		s.metrics = &http.Server{
			Addr:              cfg.MetricsListen,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}
	return s
}

// Run serves until ctx is cancelled or a listener fails, then shuts down
// both listeners gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	serve := func(name string, srv *http.Server) {
		s.log.Infof("Starting %s listener on %s", name, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%s listener: %w", name, err)
		}
	}

	go serve("solver", s.main)
	if s.metrics != nil {
		go serve("metrics", s.metrics)
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.log.Info("Shutting down")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.main.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("shutdown: %w", err)
	}
	if s.metrics != nil {
		if err := s.metrics.Shutdown(shutdownCtx); err != nil && runErr == nil {
			runErr = fmt.Errorf("shutdown metrics: %w", err)
		}
	}
	return runErr
}
