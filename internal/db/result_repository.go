package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/unklstewy/groundscope/pkg/ssd"
)

// ResultRepository handles database operations for conflict results.
type ResultRepository struct {
	db *DB
}

// NewResultRepository creates a new result repository.
func NewResultRepository(db *DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// UpsertResults stores one window's results, replacing any prior row for the
// same (window, callsign). An undefined FPF is stored as NULL so consumers
// can tell "not computable" apart from any numeric value.
func (r *ResultRepository) UpsertResults(ctx context.Context, windowTime time.Time, results []ssd.Result) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO conflict_results (window_time, callsign, fpf)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (window_time, callsign) DO UPDATE SET
			fpf = EXCLUDED.fpf,
			created_at = NOW()`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		var fpf sql.NullFloat64
		if res.Defined {
			fpf = sql.NullFloat64{Float64: res.FPF, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, windowTime.UTC(), res.Callsign, fpf); err != nil {
			return fmt.Errorf("failed to upsert result for %s: %w", res.Callsign, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}

	return nil
}

// WindowSummary aggregates one analysis window's results.
type WindowSummary struct {
	WindowTime time.Time
	Aircraft   int
	Undefined  int
	MinFPF     float64
	MeanFPF    float64
}

// ListWindows returns summaries of the most recent windows, newest first.
func (r *ResultRepository) ListWindows(ctx context.Context, limit int) ([]WindowSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT window_time,
		        COUNT(*),
		        COUNT(*) FILTER (WHERE fpf IS NULL),
		        COALESCE(MIN(fpf), 0),
		        COALESCE(AVG(fpf), 0)
		 FROM conflict_results
		 GROUP BY window_time
		 ORDER BY window_time DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []WindowSummary
	for rows.Next() {
		var s WindowSummary
		if err := rows.Scan(&s.WindowTime, &s.Aircraft, &s.Undefined, &s.MinFPF, &s.MeanFPF); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// GetResultsByWindow returns every result in one window, lowest FPF first so
// the most constrained aircraft lead.
func (r *ResultRepository) GetResultsByWindow(ctx context.Context, windowTime time.Time) ([]ssd.Result, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT window_time, callsign, fpf
		 FROM conflict_results
		 WHERE window_time = $1
		 ORDER BY fpf ASC NULLS FIRST, callsign ASC`,
		windowTime.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResults(rows)
}

// GetResultsByCallsign returns one aircraft's results over a time range, in
// time order.
func (r *ResultRepository) GetResultsByCallsign(ctx context.Context, callsign string, since time.Time) ([]ssd.Result, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT window_time, callsign, fpf
		 FROM conflict_results
		 WHERE callsign = $1 AND window_time >= $2
		 ORDER BY window_time ASC`,
		callsign, since.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]ssd.Result, error) {
	var results []ssd.Result
	for rows.Next() {
		var res ssd.Result
		var fpf sql.NullFloat64
		if err := rows.Scan(&res.Time, &res.Callsign, &fpf); err != nil {
			return nil, err
		}
		if fpf.Valid {
			res.FPF = fpf.Float64
			res.Defined = true
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
