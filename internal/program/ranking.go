package program

import "sort"

// Method names a ranking formula. Method names are case-sensitive;
// anything unrecognized falls back to popularity so agents that guess a
// method name still get a ranked answer.
type Method string

const (
	MethodPopularity        Method = "popularity"
	MethodEngagement        Method = "engagement"
	MethodCostEffectiveness Method = "cost_effectiveness"
)

// ParseMethod maps a raw method string to a Method, defaulting to
// popularity for empty or unrecognized values.
func ParseMethod(s string) Method {
	switch Method(s) {
	case MethodEngagement:
		return MethodEngagement
	case MethodCostEffectiveness:
		return MethodCostEffectiveness
	default:
		return MethodPopularity
	}
}

// Ranked pairs a program with its computed score.
type Ranked struct {
	Program
	Score float64 `json:"ranking_score"`
}

// Rank scores each program under method, sorts by score descending, and
// truncates to limit. The sort is stable: ties keep input order, so
// repeated calls over the same data return identical results. Programs
// the method cannot score (null or zero tuition under
// cost_effectiveness) are excluded, not scored as infinite. A limit of
// zero or less means no truncation.
func Rank(programs []Program, method Method, limit int) []Ranked {
	ranked := make([]Ranked, 0, len(programs))
	for _, p := range programs {
		score, ok := Score(p, method)
		if !ok {
			continue
		}
		ranked = append(ranked, Ranked{Program: p, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Score computes the program's score under method. The second return is
// false when the method is undefined for this program. Zero scores are
// valid; they sort last.
func Score(p Program, method Method) (float64, bool) {
	switch method {
	case MethodEngagement:
		return p.CTR * 100, true
	case MethodCostEffectiveness:
		if p.Tuition == nil || *p.Tuition == 0 {
			return 0, false
		}
		return float64(p.TotalViews) / *p.Tuition * 1000, true
	default:
		return float64(p.TotalViews) + 0.1*float64(p.TotalImpressions), true
	}
}
