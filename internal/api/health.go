package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/edumatch/edumatch/internal/events"
)

// DBChecker is the health surface the handler needs from the store.
type DBChecker interface {
	HealthCheck(ctx context.Context) error
}

// ProgramCounter reports the total number of program records.
type ProgramCounter interface {
	Count(ctx context.Context) (int, error)
}

// HealthHandler provides the health endpoint.
type HealthHandler struct {
	db        DBChecker
	programs  ProgramCounter
	bus       *events.Client
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db DBChecker, programs ProgramCounter, bus *events.Client) *HealthHandler {
	return &HealthHandler{
		db:        db,
		programs:  programs,
		bus:       bus,
		startTime: time.Now(),
	}
}

// Health returns the service health status.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbStatus := "connected"
	if err := h.db.HealthCheck(ctx); err != nil {
		dbStatus = "disconnected"
	}

	busStatus := "disconnected"
	if h.bus != nil && h.bus.IsConnected() {
		busStatus = "connected"
	}

	programCount, countErr := h.programs.Count(ctx)

	resp := map[string]any{
		"status":         "healthy",
		"database":       dbStatus,
		"analytics_bus":  busStatus,
		"program_count":  programCount,
		"uptime_seconds": int(time.Since(h.startTime).Seconds()),
	}

	// A failing count query degrades the status even when the ping
	// still succeeds; a silent zero count would look like an empty
	// catalog.
	if dbStatus == "disconnected" || countErr != nil {
		resp["status"] = "degraded"
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
		"meta": map[string]any{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}
