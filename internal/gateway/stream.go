package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/edumatch/edumatch/internal/jsonrpc"
	"github.com/edumatch/edumatch/internal/mcp"
)

// handleStreamRelay proxies the origin's event stream byte-for-byte.
// Framing headers are overridden regardless of what the origin sent so
// client-side stream parsers behave uniformly. The origin request is
// bound to the client request's context: when the client disconnects,
// the paired origin connection is torn down with it.
func (g *Gateway) handleStreamRelay(w http.ResponseWriter, r *http.Request) {
	resp, err := g.origin.OpenStream(r.Context(), r.URL.Path, r.URL.RawQuery)
	if err != nil {
		http.Error(w, "origin stream unavailable: "+err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	setStreamHeaders(w)
	w.WriteHeader(resp.StatusCode)
	flusher.Flush()

	// Relay without buffering past a read: each chunk is flushed as it
	// arrives so framing boundaries reach the client promptly.
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return
			}
			flusher.Flush()
		}
		if err != nil {
			if r.Context().Err() == nil {
				g.logger.Debug("origin stream ended", "path", r.URL.Path, "error", err)
			}
			return
		}
	}
}

// handleStreamFallback synthesizes a minimal MCP handshake for clients
// that cannot reach the origin stream: an initialize notification
// followed by a static tools/list enumeration. The stream is finite;
// live data requires the tool-call path.
func (g *Gateway) handleStreamFallback(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	setStreamHeaders(w)
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
}

func setStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
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
