package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/unischedule/internal/bootstrap"
	"github.com/yigit/unischedule/internal/config"
)

// Server owns the HTTP listener of the timetable API and its database pool.
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	pool   *pgxpool.Pool
	logger zerolog.Logger
	http   *http.Server
}

// NewServer loads configuration, connects to the database, applies
// migrations and wires every service and controller.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	pool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, pool, lgr)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &Server{
		cfg:    cfg,
		router: bootstrap.SetupRouter(cfg, deps, lgr),
		pool:   pool,
		logger: lgr,
	}, nil
}

// Run serves until SIGINT or SIGTERM arrives or the listener fails, then
// shuts down.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.cfg.Server.Port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", s.http.Addr).
			Dur("write_timeout", s.cfg.Server.WriteTimeout).
			Msg("Timetable API listening")
		listenErr <- s.http.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			s.closePool()
			return fmt.Errorf("error starting server: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received")
	}

	return s.Shutdown(context.Background())
}

// Shutdown drains in-flight requests within the configured timeout and
// closes the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
	defer cancel()

	var err error
	if s.http != nil {
		if err = s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			err = fmt.Errorf("http shutdown: %w", err)
		}
	}
	s.closePool()

	s.logger.Info().Msg("Server stopped")
	return err
}

func (s *Server) closePool() {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}
