package repositories

import (
	"context"
	"database/sql"
	"delivery-hub-service/internal/domain"
	"delivery-hub-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SQL-backed implementation of the RunStore port.
type SQLRunStore struct {
	DB     *sql.DB
	Driver string
}

func NewSQLRunStore(db *sql.DB, driver string) *SQLRunStore {
	return &SQLRunStore{DB: db, Driver: driver}
}

// Fixed-width UTC timestamps sort chronologically as text in both dialects.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type hubRecord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Persist completed scenarios. Saving a run id twice overwrites it.
func (s *SQLRunStore) SaveRuns(ctx context.Context, runs []domain.HubPlacement) (err error) {
	defer obs.Time(ctx, "runs.SaveRuns")(&err)

	if s.DB == nil {
		return errors.New("sql run store: DB is nil")
	}

	if len(runs) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save runs: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, rebind(s.Driver, `
	INSERT INTO optimization_runs (
		run_id,
		strategy,
		hubs,
		score,
		total_miles,
		evaluations,
		iterations,
		converged,
		duration_ns,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (run_id) DO UPDATE
	SET strategy = EXCLUDED.strategy,
		hubs = EXCLUDED.hubs,
		score = EXCLUDED.score,
		total_miles = EXCLUDED.total_miles,
		evaluations = EXCLUDED.evaluations,
		iterations = EXCLUDED.iterations,
		converged = EXCLUDED.converged,
		duration_ns = EXCLUDED.duration_ns,
		created_at = EXCLUDED.created_at;
	`))
	if err != nil {
		return fmt.Errorf("save runs: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range runs {
		if r.RunID == "" {
			return errors.New("save runs: run id must not be empty")
		}

		hubs := make([]hubRecord, len(r.Hubs))
		for i, h := range r.Hubs {
			hubs[i] = hubRecord{Lat: h.Lat, Lon: h.Lon}
		}
		hubsJSON, err := json.Marshal(hubs)
		if err != nil {
			return fmt.Errorf("save runs: encode hubs run_id=%s: %w", r.RunID, err)
		}

		if _, err := stmt.ExecContext(ctx,
			r.RunID,
			r.Strategy,
			string(hubsJSON),
			r.Score,
			r.TotalDistanceMiles,
			r.Evaluations,
			r.Iterations,
			r.Converged,
			int64(r.Duration),
			r.CreatedAt.UTC().Format(createdAtLayout),
		); err != nil {
			return fmt.Errorf("save runs: insert run_id=%s: %w", r.RunID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save runs: commit tx: %w", err)
	}

	return nil
}

// Return up to limit runs, newest first.
func (s *SQLRunStore) ListRuns(ctx context.Context, limit int) (_ []domain.HubPlacement, err error) {
	defer obs.Time(ctx, "runs.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("sql run store: DB is nil")
	}

	if limit <= 0 {
		return []domain.HubPlacement{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, rebind(s.Driver, `
	SELECT
		run_id,
		strategy,
		hubs,
		score,
		total_miles,
		evaluations,
		iterations,
		converged,
		duration_ns,
		created_at
	FROM optimization_runs
	ORDER BY created_at DESC, run_id
	LIMIT ?;
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query optimization_runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.HubPlacement, 0, limit)
	for rows.Next() {
		var (
			r         domain.HubPlacement
			hubsJSON  string
			durNanos  int64
			createdAt string
		)
		if err := rows.Scan(
			&r.RunID,
			&r.Strategy,
			&hubsJSON,
			&r.Score,
			&r.TotalDistanceMiles,
			&r.Evaluations,
			&r.Iterations,
			&r.Converged,
			&durNanos,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}

		var hubs []hubRecord
		if err := json.Unmarshal([]byte(hubsJSON), &hubs); err != nil {
			return nil, fmt.Errorf("list runs: decode hubs run_id=%s: %w", r.RunID, err)
		}
		r.Hubs = make([]domain.Coordinates, len(hubs))
		for i, h := range hubs {
			r.Hubs[i] = domain.Coordinates{Lat: h.Lat, Lon: h.Lon}
		}

		r.Duration = time.Duration(durNanos)
		if r.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
			return nil, fmt.Errorf("list runs: parse created_at run_id=%s: %w", r.RunID, err)
		}

		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}
