package store

import (
	"context"
	"fmt"

	"github.com/edumatch/edumatch/internal/program"
)

// ProgramStore queries program records joined with their country and
// institution rows.
type ProgramStore struct {
	db *DB
}

// NewProgramStore creates a new ProgramStore.
func NewProgramStore(db *DB) *ProgramStore {
	return &ProgramStore{db: db}
}

const programColumns = `
	p.program_id,
	p.program_name,
	c.institute_country,
	i.institution_name,
	i.institution_type,
	p.duration_months,
	p.tuition,
	p.ctr,
	p.total_views,
	p.total_impressions
FROM programs p
JOIN countries c ON p.country_id = c.country_id
JOIN institutions i ON p.institution_id = i.institution_id`

// List returns programs matching the filter, ordered by program name,
// with the filter's pagination applied.
func (s *ProgramStore) List(ctx context.Context, f program.FilterSpec) ([]program.Program, error) {
	query := "SELECT" + programColumns + " WHERE 1=1"
	var args []any

	if f.ProgramName != "" {
		args = append(args, "%"+f.ProgramName+"%")
		query += fmt.Sprintf(" AND p.program_name ILIKE $%d", len(args))
	}
	query, args = appendSharedFilters(query, args, f)

	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY p.program_name LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	return s.query(ctx, query, args)
}

// RankCandidates returns programs eligible for ranking: records with
// observed engagement (ctr and views above zero) matching the filter.
// No limit is applied here; the ranking engine truncates after sorting
// so the limit never changes which programs are eligible.
func (s *ProgramStore) RankCandidates(ctx context.Context, f program.FilterSpec) ([]program.Program, error) {
	query := "SELECT" + programColumns + " WHERE p.ctr > 0 AND p.total_views > 0"
	var args []any
	query, args = appendSharedFilters(query, args, f)

	return s.query(ctx, query, args)
}

// Count returns the total number of program records.
func (s *ProgramStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM programs").Scan(&count)
	return count, err
}

func appendSharedFilters(query string, args []any, f program.FilterSpec) (string, []any) {
	if f.CountryName != "" {
		args = append(args, "%"+f.CountryName+"%")
		query += fmt.Sprintf(" AND c.institute_country ILIKE $%d", len(args))
	}
	if f.InstitutionName != "" {
		args = append(args, "%"+f.InstitutionName+"%")
		query += fmt.Sprintf(" AND i.institution_name ILIKE $%d", len(args))
	}
	if f.MaxTuition != nil {
		args = append(args, *f.MaxTuition)
		query += fmt.Sprintf(" AND p.tuition <= $%d", len(args))
	}
	return query, args
}

func (s *ProgramStore) query(ctx context.Context, query string, args []any) ([]program.Program, error) {
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close()

	var programs []program.Program
	for rows.Next() {
		var p program.Program
		var instType *string
		var ctr *float64
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Country,
			&p.Institution,
			&instType,
			&p.DurationMonths,
			&p.Tuition,
			&ctr,
			&p.TotalViews,
			&p.TotalImpressions,
		); err != nil {
			return nil, fmt.Errorf("scanning program row: %w", err)
		}
		if instType != nil {
			p.InstitutionType = *instType
		}
		if ctr != nil {
			p.CTR = *ctr
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading program rows: %w", err)
	}
	return programs, nil
}
