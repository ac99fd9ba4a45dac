// Package program contains the EduMatch domain core: the program record
// type, filter normalization, and the ranking engine.
package program

// Program is one educational program record as served by the origin
// query service. The gateway treats it as read-only, received fresh per
// request.
type Program struct {
	ID               int64    `json:"program_id,omitempty"`
	Name             string   `json:"program_name"`
	Country          string   `json:"country"`
	Institution      string   `json:"institution"`
	InstitutionType  string   `json:"institution_type,omitempty"`
	DurationMonths   int      `json:"duration_months"`
	Tuition          *float64 `json:"tuition"`
	CTR              float64  `json:"ctr"`
	TotalViews       int64    `json:"total_views"`
	TotalImpressions int64    `json:"total_impressions"`
}
