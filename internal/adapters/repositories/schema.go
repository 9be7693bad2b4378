package repositories

import (
	"context"
	"database/sql"
	"delivery-hub-service/internal/domain"
	"delivery-hub-service/internal/platform/db"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS places (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		place_type TEXT NOT NULL,
		population INTEGER NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS optimization_runs (
		run_id TEXT PRIMARY KEY,
		strategy TEXT NOT NULL,
		hubs TEXT NOT NULL,
		score REAL NOT NULL,
		total_miles REAL NOT NULL,
		evaluations INTEGER NOT NULL,
		iterations INTEGER NOT NULL,
		converged BOOLEAN NOT NULL,
		duration_ns INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_optimization_runs_created_at
	ON optimization_runs(created_at);
	`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS places (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		place_type TEXT NOT NULL,
		population BIGINT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS optimization_runs (
		run_id TEXT PRIMARY KEY,
		strategy TEXT NOT NULL,
		hubs TEXT NOT NULL,
		score DOUBLE PRECISION NOT NULL,
		total_miles DOUBLE PRECISION NOT NULL,
		evaluations BIGINT NOT NULL,
		iterations BIGINT NOT NULL,
		converged BOOLEAN NOT NULL,
		duration_ns BIGINT NOT NULL,
		created_at TEXT NOT NULL
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_optimization_runs_created_at
	ON optimization_runs(created_at);
	`,
}

// Initialize the schema for the given database/sql driver.
func InitSchema(ctx context.Context, conn *sql.DB, driver string) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	var statements []string
	switch driver {
	case db.DriverSQLite:
		statements = sqliteSchema
	case db.DriverPostgres:
		statements = postgresSchema
	default:
		return fmt.Errorf("init schema: unsupported driver %q", driver)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Replace the stored places with the given set, keeping dataset order.
func SeedPlaces(ctx context.Context, conn *sql.DB, driver string, places domain.PlaceSet) error {
	if conn == nil {
		return errors.New("seed places: DB is nil")
	}

	for i, p := range places {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("seed places: place at index %d: name cannot be empty", i)
		}
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM places;`); err != nil {
		return fmt.Errorf("seed places: clear table: %w", err)
	}

	query := rebind(driver, `
	INSERT INTO places (
		position,
		name,
		place_type,
		population,
		lat,
		lon
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed places: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range places {
		if _, err := stmt.ExecContext(ctx, i, p.Name, string(p.Type), p.Population, p.Lat, p.Lon); err != nil {
			return fmt.Errorf("seed places: insert position=%d name=%q: %w", i, p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed places: commit tx: %w", err)
	}

	return nil
}

// rebind rewrites "?" placeholders to "$n" for Postgres.
func rebind(driver, query string) string {
	if driver != db.DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
