// Package gateway implements the MCP edge gateway: JSON-RPC tool-call
// translation, event-stream relay with a synthesized fallback, and a
// generic reverse proxy to the origin query service.
//
// The gateway holds no cross-request state. Each request is handled
// independently; the only shared values are the immutable configuration
// and the outbound connection pool inside the origin client.
package gateway

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/edumatch/edumatch/internal/config"
	"github.com/edumatch/edumatch/internal/middleware"
	"github.com/edumatch/edumatch/internal/origin"
)

// Gateway routes inbound client requests to the origin query service.
type Gateway struct {
	Router *chi.Mux
	origin *origin.Client
	logger *slog.Logger
}

// New creates a Gateway with all routes configured.
func New(cfg *config.Gateway, originClient *origin.Client, logger *slog.Logger) *Gateway {
	g := &Gateway{
		origin: originClient,
		logger: logger,
	}

	r := chi.NewRouter()

	// Global middleware. No global timeout: stream connections live as
	// long as the client keeps them open.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.CORS)

	toolRL := middleware.NewRateLimiter(cfg.ToolRateLimit, cfg.RateWindow)

	// Dispatch table. Paths are exact and case-sensitive. Anything not
	// matched here is proxied verbatim to the origin, including wrong
	// verbs on the stream paths.
	r.Get("/sse", g.handleStreamRelay)
	r.Get("/stream", g.handleStreamRelay)
	r.Get("/sse-fallback", g.handleStreamFallback)
	// All verbs route to the translator so non-POST gets a JSON-RPC
	// error instead of a bare HTTP page.
	r.With(toolRL.Middleware).Handle("/tools/call", g.toolCallHandler())
	r.NotFound(g.handleProxy)
	r.MethodNotAllowed(g.handleProxy)

	g.Router = r
	return g
}
