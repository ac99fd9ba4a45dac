package gateway

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/edumatch/edumatch/internal/jsonrpc"
	"github.com/edumatch/edumatch/internal/mcp"
	"github.com/edumatch/edumatch/internal/origin"
	"github.com/edumatch/edumatch/internal/program"
)

// toolKind enumerates the tools the gateway can translate. Each kind is
// bound to the origin endpoint that serves it, so adding a tool means
// extending this closed set rather than scattering string comparisons.
type toolKind int

const (
	toolUnknown toolKind = iota
	toolProgramsList
	toolRankPrograms
)

func kindOf(name string) toolKind {
	switch name {
	case "programs_list":
		return toolProgramsList
	case "rank_programs":
		return toolRankPrograms
	default:
		return toolUnknown
	}
}

func (k toolKind) originPath() string {
	switch k {
	case toolProgramsList:
		return origin.PathPrograms
	case toolRankPrograms:
		return origin.PathRank
	default:
		return ""
	}
}

func (k toolKind) defaultLimit() int {
	if k == toolRankPrograms {
		return program.DefaultRankLimit
	}
	return program.DefaultListLimit
}

// toolCallHandler translates JSON-RPC tools/call envelopes into origin
// REST calls and wraps the origin's reply back into a JSON-RPC response.
// Every failure on this path is a JSON-RPC error object, never a bare
// HTTP error page.
func (g *Gateway) toolCallHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeRPC(w, jsonrpc.NewError(nil, jsonrpc.CodeInvalidRequest, "tools/call requires POST"))
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeRPC(w, jsonrpc.NewError(nil, jsonrpc.CodeInternalError, "reading request body: "+err.Error()))
			return
		}

		var req jsonrpc.Request
		if err := json.Unmarshal(body, &req); err != nil {
			// No id is recoverable from an unparseable body.
			writeRPC(w, jsonrpc.NewError(nil, jsonrpc.CodeParseError, "Parse error"))
			return
		}

		var params mcp.CallParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				writeRPC(w, jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidRequest, "params must be an object"))
				return
			}
		}

		kind := kindOf(params.Name)
		if kind == toolUnknown {
			writeRPC(w, jsonrpc.NewError(req.ID, jsonrpc.CodeMethodNotFound, "Method not found"))
			return
		}

		// Validate arguments before spending a round trip on the origin.
		filter, err := program.ParseFilter(params.Arguments, kind.defaultLimit())
		if err != nil {
			writeRPC(w, jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams, err.Error()))
			return
		}

		raw, err := g.origin.CallTool(r.Context(), kind.originPath(), params.Arguments)
		if err != nil {
			writeRPC(w, jsonrpc.NewError(req.ID, jsonrpc.CodeInternalError, err.Error()))
			return
		}

		if kind == toolRankPrograms {
			raw = g.ensureRanked(raw, params.Arguments, filter)
		}

		writeRPC(w, jsonrpc.NewResponse(req.ID, mcp.TextResult(raw)))
	})
}

// ensureRanked keeps the ranking engine authoritative regardless of
// which side of the deployment split the origin implements: if the
// origin already returned scored results they pass through untouched;
// if it returned raw candidates, they are filtered and ranked here.
func (g *Gateway) ensureRanked(raw, args json.RawMessage, filter program.FilterSpec) json.RawMessage {
	var probe struct {
		RankedPrograms []program.Ranked  `json:"ranked_programs"`
		Programs       []program.Program `json:"programs"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.Programs == nil || probe.RankedPrograms != nil {
		return raw
	}

	var opts struct {
		RankingMethod string `json:"ranking_method"`
	}
	if len(args) > 0 {
		_ = json.Unmarshal(args, &opts)
	}
	method := program.ParseMethod(opts.RankingMethod)

	ranked := program.Rank(filter.Apply(probe.Programs), method, filter.Limit)
	out, err := json.Marshal(map[string]any{
		"ranked_programs": ranked,
		"ranking_method":  string(method),
		"count":           len(ranked),
	})
	if err != nil {
		return raw
	}
	return out
}

func writeRPC(w http.ResponseWriter, resp jsonrpc.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
