// Package api provides HTTP handlers for the origin query service.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/edumatch/edumatch/internal/events"
	"github.com/edumatch/edumatch/internal/program"
)

// ProgramSource is the query surface the handlers need from the store.
type ProgramSource interface {
	List(ctx context.Context, f program.FilterSpec) ([]program.Program, error)
	RankCandidates(ctx context.Context, f program.FilterSpec) ([]program.Program, error)
}

// ProgramHandler serves the program list and rank endpoints.
type ProgramHandler struct {
	programs  ProgramSource
	publisher *events.Publisher // may be nil when NATS is not configured
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programs ProgramSource, publisher *events.Publisher) *ProgramHandler {
	return &ProgramHandler{programs: programs, publisher: publisher}
}

// ListResult is the response body of POST /programs.
type ListResult struct {
	Programs       []program.Program `json:"programs"`
	Count          int               `json:"count"`
	FiltersApplied map[string]any    `json:"filters_applied"`
}

// RankResult is the response body of POST /rank.
type RankResult struct {
	RankedPrograms []program.Ranked `json:"ranked_programs"`
	RankingMethod  string           `json:"ranking_method"`
	Count          int              `json:"count"`
}

// List handles POST /programs.
func (h *ProgramHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseFilter(w, r, program.DefaultListLimit)
	if !ok {
		return
	}

	programs, err := h.programs.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}
	if programs == nil {
		programs = []program.Program{}
	}

	if h.publisher != nil {
		_ = h.publisher.ProgramsListed(filter.Fields(), len(programs))
	}

	writeJSON(w, http.StatusOK, ListResult{
		Programs:       programs,
		Count:          len(programs),
		FiltersApplied: filter.Fields(),
	})
}

// Rank handles POST /rank. Candidates are filtered first, then scored
// and truncated by the ranking engine.
func (h *ProgramHandler) Rank(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "reading request body: "+err.Error())
		return
	}

	filter, err := program.ParseFilter(body, program.DefaultRankLimit)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	var opts struct {
		RankingMethod string `json:"ranking_method"`
	}
	if len(body) > 0 {
		_ = json.Unmarshal(body, &opts)
	}
	method := program.ParseMethod(opts.RankingMethod)

	candidates, err := h.programs.RankCandidates(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}

	ranked := program.Rank(candidates, method, filter.Limit)
	if ranked == nil {
		ranked = []program.Ranked{}
	}

	if h.publisher != nil {
		_ = h.publisher.ProgramsRanked(string(method), filter.Fields(), len(ranked))
	}

	writeJSON(w, http.StatusOK, RankResult{
		RankedPrograms: ranked,
		RankingMethod:  string(method),
		Count:          len(ranked),
	})
}

func (h *ProgramHandler) parseFilter(w http.ResponseWriter, r *http.Request, defaultLimit int) (program.FilterSpec, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "reading request body: "+err.Error())
		return program.FilterSpec{}, false
	}

	filter, err := program.ParseFilter(body, defaultLimit)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return program.FilterSpec{}, false
	}
	return filter, true
}
