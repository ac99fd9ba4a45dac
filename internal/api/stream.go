package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/edumatch/edumatch/internal/jsonrpc"
	"github.com/edumatch/edumatch/internal/mcp"
)

// pingInterval is how often the origin stream emits keepalive records.
const pingInterval = 30 * time.Second

// StreamHandler serves the origin's own event-stream endpoint: the MCP
// handshake frames followed by keepalive pings until the client leaves.
type StreamHandler struct{}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler() *StreamHandler { return &StreamHandler{} }

// Stream handles GET /sse.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	writeEvent(w, flusher, map[string]any{
		"jsonrpc": jsonrpc.Version,
		"method":  "initialize",
		"params":  mcp.NewInitializeParams(),
	})
	writeEvent(w, flusher, map[string]any{
		"jsonrpc": jsonrpc.Version,
		"method":  "tools/list",
		"result":  mcp.ToolsListResult{Tools: mcp.Catalog},
	})

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			writeEvent(w, flusher, map[string]any{"type": "ping"})
		}
	}
}

// writeEvent emits one event-stream record: "data: <json>\n\n".
func writeEvent(w http.ResponseWriter, flusher http.Flusher, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}
