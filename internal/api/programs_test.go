package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edumatch/edumatch/internal/program"
)

// fakeSource is an in-memory ProgramSource applying filters the way the
// store's SQL does.
type fakeSource struct {
	programs   []program.Program
	lastFilter program.FilterSpec
}

func (f *fakeSource) List(_ context.Context, spec program.FilterSpec) ([]program.Program, error) {
	f.lastFilter = spec
	matched := spec.Apply(f.programs)
	if spec.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[spec.Offset:]
	if len(matched) > spec.Limit {
		matched = matched[:spec.Limit]
	}
	return matched, nil
}

func (f *fakeSource) RankCandidates(_ context.Context, spec program.FilterSpec) ([]program.Program, error) {
	f.lastFilter = spec
	var out []program.Program
	for _, p := range spec.Apply(f.programs) {
		if p.CTR > 0 && p.TotalViews > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func tuition(v float64) *float64 { return &v }

func testPrograms() []program.Program {
	return []program.Program{
		{Name: "Data Science", Country: "Germany", Institution: "TU Berlin", Tuition: tuition(12000), CTR: 0.5, TotalViews: 100, TotalImpressions: 1000},
		{Name: "Philosophy", Country: "Germany", Institution: "LMU", Tuition: tuition(15000), CTR: 0.9, TotalViews: 50, TotalImpressions: 200},
		{Name: "Economics", Country: "Canada", Institution: "UBC", Tuition: tuition(30000), CTR: 0.1, TotalViews: 500, TotalImpressions: 5000},
		{Name: "Quiet Program", Country: "Canada", Institution: "UBC", Tuition: tuition(8000), CTR: 0, TotalViews: 0, TotalImpressions: 0},
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestProgramList_MaxTuitionInclusive(t *testing.T) {
	src := &fakeSource{programs: testPrograms()}
	h := NewProgramHandler(src, nil)

	rec := postJSON(t, h.List, `{"max_tuition": 15000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ListResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 3 {
		t.Fatalf("expected 3 programs at or under 15000, got %d", resp.Count)
	}
	for _, p := range resp.Programs {
		if p.Tuition == nil || *p.Tuition > 15000 {
			t.Errorf("program %s exceeds the budget: %v", p.Name, p.Tuition)
		}
	}
}

func TestProgramList_ValidationError(t *testing.T) {
	src := &fakeSource{programs: testPrograms()}
	h := NewProgramHandler(src, nil)

	rec := postJSON(t, h.List, `{"limit": "lots"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestProgramList_Idempotent(t *testing.T) {
	src := &fakeSource{programs: testPrograms()}
	h := NewProgramHandler(src, nil)

	first := postJSON(t, h.List, `{"country_name": "germany"}`).Body.String()
	second := postJSON(t, h.List, `{"country_name": "germany"}`).Body.String()
	if first != second {
		t.Error("identical queries over unchanged data must return identical results")
	}
}

func TestProgramRank_Engagement(t *testing.T) {
	src := &fakeSource{programs: testPrograms()}
	h := NewProgramHandler(src, nil)

	rec := postJSON(t, h.Rank, `{"ranking_method": "engagement", "limit": 2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp RankResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.RankingMethod != "engagement" {
		t.Errorf("expected method engagement, got %s", resp.RankingMethod)
	}
	if len(resp.RankedPrograms) != 2 {
		t.Fatalf("expected top 2, got %d", len(resp.RankedPrograms))
	}
	if resp.RankedPrograms[0].Name != "Philosophy" || resp.RankedPrograms[0].Score != 90 {
		t.Errorf("expected Philosophy at 90, got %+v", resp.RankedPrograms[0])
	}
	if resp.RankedPrograms[1].Name != "Data Science" || resp.RankedPrograms[1].Score != 50 {
		t.Errorf("expected Data Science at 50, got %+v", resp.RankedPrograms[1])
	}
}

func TestProgramRank_UnknownMethodFallsBack(t *testing.T) {
	src := &fakeSource{programs: testPrograms()}
	h := NewProgramHandler(src, nil)

	rec := postJSON(t, h.Rank, `{"ranking_method": "best_vibes"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown method must not error, got %d", rec.Code)
	}

	var resp RankResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.RankingMethod != "popularity" {
		t.Errorf("expected fallback to popularity, got %s", resp.RankingMethod)
	}
}

func TestProgramRank_DefaultLimitIsTen(t *testing.T) {
	src := &fakeSource{programs: testPrograms()}
	h := NewProgramHandler(src, nil)

	rec := postJSON(t, h.Rank, `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if src.lastFilter.Limit != program.DefaultRankLimit {
		t.Errorf("expected default rank limit %d, got %d", program.DefaultRankLimit, src.lastFilter.Limit)
	}
}

func TestProgramRank_EmptyResultIsNotNull(t *testing.T) {
	src := &fakeSource{}
	h := NewProgramHandler(src, nil)

	rec := postJSON(t, h.Rank, `{}`)
	if !strings.Contains(rec.Body.String(), `"ranked_programs":[]`) {
		t.Errorf("empty result must serialize as [], got %s", rec.Body.String())
	}
}
