package gateway

import (
	"io"
	"net/http"
)

// hopHeaders are stripped in both directions when forwarding, per
// RFC 7230 §6.1.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// handleProxy forwards any unclassified request to the same path on the
// origin and copies the status and body back. Credentials in headers
// pass through opaquely; the gateway applies no authorization policy of
// its own.
func (g *Gateway) handleProxy(w http.ResponseWriter, r *http.Request) {
	outReq, err := http.NewRequestWithContext(r.Context(), r.Method, g.origin.BaseURL()+r.URL.RequestURI(), r.Body)
	if err != nil {
		http.Error(w, "building origin request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	outReq.Header = r.Header.Clone()
	for _, h := range hopHeaders {
		outReq.Header.Del(h)
	}

	resp, err := g.origin.Do(outReq)
	if err != nil {
		http.Error(w, "origin unreachable: "+err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		ck := http.CanonicalHeaderKey(key)
		// Already set by the CORS middleware on every response.
		if ck == "Access-Control-Allow-Origin" || isHopHeader(ck) {
			continue
		}
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.logger.Debug("proxy copy interrupted", "path", r.URL.Path, "error", err)
	}
}

func isHopHeader(name string) bool {
	for _, h := range hopHeaders {
		if h == name {
			return true
		}
	}
	return false
}
