// Package server exposes the calculators over an HTTP JSON API built on
// fiber. Every response is wrapped in {data, meta} or {error}.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"go.uber.org/zap"

	"github.com/smokyabdulrahman/salat/internal/cache"
	"github.com/smokyabdulrahman/salat/internal/geo"
)

// Server is the HTTP API.
type Server struct {
	app    *fiber.App
	config *Config
	logger *zap.Logger

	store  cache.Store
	geo    *cache.Cache
	now    func() time.Time
	detect func(ctx context.Context, ip string) (*geo.Location, error)
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces time.Now for every "today" the API computes.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithDetector replaces the IP geolocation lookup behind /locate.
func WithDetector(detect func(ctx context.Context, ip string) (*geo.Location, error)) Option {
	return func(s *Server) { s.detect = detect }
}

// New builds the fiber app with its middleware and routes. store backs the
// geolocation cache.
func New(cfg *Config, logger *zap.Logger, store cache.Store, opts ...Option) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
		store:  store,
		now:    time.Now,
		detect: geo.DetectLocation,
	}
	for _, o := range opts {
		o(s)
	}
	s.geo = cache.New(store,
		cache.WithTTL(cfg.GeoCacheTTL),
		cache.WithClock(s.now),
		cache.WithLogger(logger),
	)

	s.app = fiber.New(fiber.Config{
		AppName:               "salat",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(requestID())
	s.app.Use(recovery())
	s.app.Use(requestLogger(s.logger))
	s.app.Use(corsHandler())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)

	api.Get("/times", s.times)
	api.Get("/times/range", s.timesRange)
	api.Get("/next", s.next)

	api.Get("/calendar/hijri", s.toHijri)
	api.Get("/calendar/gregorian", s.toGregorian)
	api.Get("/events/upcoming", s.upcoming)

	api.Get("/methods", s.methods)
	api.Get("/places", s.places)
	api.Get("/places/:id", s.place)
	api.Get("/locate", s.locate)
}

// Start listens on the configured address and blocks.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("address", s.config.Addr))
	return s.app.Listen(s.config.Addr)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// Run serves until ctx is canceled, then shuts down gracefully with a five
// second deadline.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
