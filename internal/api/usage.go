package api

import (
	"net/http"

	"github.com/edumatch/edumatch/internal/mcp"
)

// UsageHandler serves the static usage guide.
type UsageHandler struct{}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler() *UsageHandler { return &UsageHandler{} }

// Usage handles GET /usage. The guide is the same document served as the
// guide://usage resource on the stdio server.
func (h *UsageHandler) Usage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mcp.UsageGuide())
}
