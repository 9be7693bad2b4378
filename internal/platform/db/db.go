package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver names registered by the blank imports above.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// DriverFor picks the database/sql driver for a DSN: postgres:// and
// postgresql:// URLs use pgx, everything else is a SQLite path.
func DriverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open(DriverPostgres, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}

func OpenSQLite(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverSQLite, dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	// A single connection keeps ":memory:" databases coherent across queries.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

// OpenAny opens the database named by dsn with the matching driver.
func OpenAny(dsn string) (*sql.DB, string, error) {
	driver := DriverFor(dsn)
	if driver == DriverPostgres {
		db, err := Open(dsn)
		return db, driver, err
	}
	db, err := OpenSQLite(dsn)
	return db, driver, err
}
