// Package server exposes the card pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/stakpak/paks-og/pkg/pipeline"
)

// Defaults for Config fields left zero.
const (
	DefaultAddr              = ":8080"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
)

// CacheControl is sent with every successful image response.
const CacheControl = "public, max-age=3600, s-maxage=86400, stale-while-revalidate=604800"

// Renderer produces cards. *pipeline.Runner implements it.
type Renderer interface {
	Execute(ctx context.Context, opts pipeline.Options) (*pipeline.Result, error)
}

// Config holds configuration for the HTTP server.
type Config struct {
	Renderer          Renderer
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	Logger            *log.Logger

	// Width is the PNG width served. Zero means 1200.
	Width int
}

// Server is the image HTTP server.
type Server struct {
	renderer          Renderer
	addr              string
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
	logger            *log.Logger
	width             int
	handler           http.Handler
}

// NewServer creates a server instance.
func NewServer(cfg Config) *Server {
	s := &Server{
		renderer:          cfg.Renderer,
		addr:              cfg.Addr,
		readHeaderTimeout: cfg.ReadHeaderTimeout,
		shutdownTimeout:   cfg.ShutdownTimeout,
		logger:            cfg.Logger,
		width:             cfg.Width,
	}
	if s.addr == "" {
		s.addr = DefaultAddr
	}
	if s.readHeaderTimeout <= 0 {
		s.readHeaderTimeout = DefaultReadHeaderTimeout
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = DefaultShutdownTimeout
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.handler = s.routes()
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

// Handler returns the server's router.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		escapedRoutePath,
		requestID,
		middleware.RealIP,
		requestLogger(s.logger),
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/og/{owner}/{name}/png", s.handleImage)
	return r
}

// Serve listens on the configured address and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down
// gracefully, letting in-flight requests finish within the shutdown timeout.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting server", "addr", ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.handler,
		// Requests outlive the shutdown signal; Shutdown bounds them instead.
		BaseContext: func(_ net.Listener) context.Context {
			return context.WithoutCancel(egctx)
		},
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
