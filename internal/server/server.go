// Package server provides the HTTP server setup for the origin query
// service.
package server

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/edumatch/edumatch/internal/api"
	"github.com/edumatch/edumatch/internal/config"
	"github.com/edumatch/edumatch/internal/events"
	"github.com/edumatch/edumatch/internal/middleware"
	"github.com/edumatch/edumatch/internal/store"
)

// Server holds all dependencies for the origin HTTP server.
type Server struct {
	Router *chi.Mux
	Config *config.Origin
	DB     *store.DB
	Bus    *events.Client
	Logger *slog.Logger
}

// New creates a new Server with all routes configured.
func New(cfg *config.Origin, db *store.DB, bus *events.Client, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogging(logger))

	// Stores
	programStore := store.NewProgramStore(db)

	// Publisher (may be nil if NATS not available)
	var publisher *events.Publisher
	if bus != nil {
		publisher = events.NewPublisher(bus, logger)
	}

	// Handlers
	programHandler := api.NewProgramHandler(programStore, publisher)
	healthHandler := api.NewHealthHandler(db, programStore, bus)
	usageHandler := api.NewUsageHandler()
	streamHandler := api.NewStreamHandler()

	queryRL := middleware.NewRateLimiter(cfg.QueryRateLimit, cfg.RateWindow)

	// Query routes get a bounded timeout; the stream route must not,
	// it lives as long as the client holds the connection.
	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))
		r.Get("/health", healthHandler.Health)
		r.Get("/usage", usageHandler.Usage)
		r.Group(func(r chi.Router) {
			r.Use(queryRL.Middleware)
			r.Post("/programs", programHandler.List)
			r.Post("/rank", programHandler.Rank)
		})
	})

	r.Get("/sse", streamHandler.Stream)

	return &Server{
		Router: r,
		Config: cfg,
		DB:     db,
		Bus:    bus,
		Logger: logger,
	}
}
