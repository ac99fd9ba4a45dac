package program

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Pagination defaults and bounds.
const (
	DefaultListLimit = 20
	DefaultRankLimit = 10
	MaxLimit         = 100
)

// FilterSpec is the normalized set of search predicates and pagination
// bounds derived from a tool invocation's arguments. String predicates
// match as case-insensitive substrings.
type FilterSpec struct {
	ProgramName     string
	CountryName     string
	InstitutionName string
	MaxTuition      *float64
	Limit           int
	Offset          int
}

// ValidationError reports an argument that failed type or range checks.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

// ParseFilter normalizes raw tool arguments into a FilterSpec. Unknown
// fields are ignored. Numeric fields must be JSON numbers: strings are
// rejected, never coerced. limit is clamped to MaxLimit rather than
// rejected; a non-positive limit and a negative offset are rejected.
// Defaults are applied exactly once, here.
func ParseFilter(args json.RawMessage, defaultLimit int) (FilterSpec, error) {
	f := FilterSpec{Limit: defaultLimit}

	if len(args) == 0 {
		return f, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(args, &raw); err != nil {
		return f, &ValidationError{Field: "arguments", Reason: "must be an object"}
	}

	var err error
	if f.ProgramName, err = stringField(raw, "program_name"); err != nil {
		return f, err
	}
	if f.CountryName, err = stringField(raw, "country_name"); err != nil {
		return f, err
	}
	if f.InstitutionName, err = stringField(raw, "institution_name"); err != nil {
		return f, err
	}

	if v, ok, err := numberField(raw, "max_tuition"); err != nil {
		return f, err
	} else if ok {
		f.MaxTuition = &v
	}

	if v, ok, err := intField(raw, "limit"); err != nil {
		return f, err
	} else if ok {
		if v <= 0 {
			return f, &ValidationError{Field: "limit", Reason: "must be positive"}
		}
		if v > MaxLimit {
			v = MaxLimit
		}
		f.Limit = v
	}

	if v, ok, err := intField(raw, "offset"); err != nil {
		return f, err
	} else if ok {
		if v < 0 {
			return f, &ValidationError{Field: "offset", Reason: "must not be negative"}
		}
		f.Offset = v
	}

	return f, nil
}

// Match reports whether p satisfies the filter's predicates. Pagination
// fields are not considered.
func (f FilterSpec) Match(p Program) bool {
	if f.ProgramName != "" && !containsFold(p.Name, f.ProgramName) {
		return false
	}
	if f.CountryName != "" && !containsFold(p.Country, f.CountryName) {
		return false
	}
	if f.InstitutionName != "" && !containsFold(p.Institution, f.InstitutionName) {
		return false
	}
	if f.MaxTuition != nil {
		if p.Tuition == nil || *p.Tuition > *f.MaxTuition {
			return false
		}
	}
	return true
}

// Apply returns the programs matching the filter's predicates, in input
// order.
func (f FilterSpec) Apply(programs []Program) []Program {
	out := make([]Program, 0, len(programs))
	for _, p := range programs {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Fields returns the non-empty predicates as a map, for echoing back to
// clients as "filters_applied".
func (f FilterSpec) Fields() map[string]any {
	m := map[string]any{
		"limit":  f.Limit,
		"offset": f.Offset,
	}
	if f.ProgramName != "" {
		m["program_name"] = f.ProgramName
	}
	if f.CountryName != "" {
		m["country_name"] = f.CountryName
	}
	if f.InstitutionName != "" {
		m["institution_name"] = f.InstitutionName
	}
	if f.MaxTuition != nil {
		m["max_tuition"] = *f.MaxTuition
	}
	return m
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func stringField(raw map[string]json.RawMessage, key string) (string, error) {
	v, ok := raw[key]
	if !ok || string(v) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", &ValidationError{Field: key, Reason: "must be a string"}
	}
	return s, nil
}

func numberField(raw map[string]json.RawMessage, key string) (float64, bool, error) {
	v, ok := raw[key]
	if !ok || string(v) == "null" {
		return 0, false, nil
	}
	var n float64
	if err := json.Unmarshal(v, &n); err != nil {
		return 0, false, &ValidationError{Field: key, Reason: "must be a number"}
	}
	return n, true, nil
}

func intField(raw map[string]json.RawMessage, key string) (int, bool, error) {
	n, ok, err := numberField(raw, key)
	if err != nil || !ok {
		return 0, ok, err
	}
	if n != math.Trunc(n) {
		return 0, false, &ValidationError{Field: key, Reason: "must be an integer"}
	}
	return int(n), true, nil
}
