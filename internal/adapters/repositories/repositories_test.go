package repositories

import (
	"context"
	"database/sql"
	"delivery-hub-service/internal/domain"
	"delivery-hub-service/internal/platform/db"
	"math"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := InitSchema(context.Background(), conn, db.DriverSQLite); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	return conn
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	if err := InitSchema(context.Background(), conn, db.DriverSQLite); err != nil {
		t.Fatalf("second InitSchema: %v", err)
	}
	if err := InitSchema(context.Background(), conn, "mysql"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestSeedAndListPlacesKeepsOrder(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	places := domain.PlaceSet{
		{Name: "York", Type: domain.PlaceCity, Population: 152841, Lat: 53.959, Lon: -1.0815},
		{Name: "Alnwick", Type: domain.PlaceTown, Population: 8116, Lat: 55.4134, Lon: -1.7064},
		{Name: "Durham", Type: domain.PlaceCity, Population: 48069, Lat: 54.7761, Lon: -1.5733},
	}
	if err := SeedPlaces(ctx, conn, db.DriverSQLite, places); err != nil {
		t.Fatalf("SeedPlaces: %v", err)
	}

	repo := NewSQLPlaceRepository(conn, db.DriverSQLite)
	got, err := repo.ListPlaces(ctx)
	if err != nil {
		t.Fatalf("ListPlaces: %v", err)
	}
	if len(got) != len(places) {
		t.Fatalf("got %d places, want %d", len(got), len(places))
	}
	for i := range places {
		if got[i] != places[i] {
			t.Fatalf("place %d = %+v, want %+v", i, got[i], places[i])
		}
	}

	// Reseeding replaces the previous contents.
	if err := SeedPlaces(ctx, conn, db.DriverSQLite, places[:1]); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	got, err = repo.ListPlaces(ctx)
	if err != nil {
		t.Fatalf("ListPlaces after reseed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "York" {
		t.Fatalf("after reseed = %+v", got)
	}
}

func TestSeedPlacesRejectsEmptyName(t *testing.T) {
	conn := openTestDB(t)
	err := SeedPlaces(context.Background(), conn, db.DriverSQLite, domain.PlaceSet{{Name: " ", Type: domain.PlaceTown}})
	if err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestRunStoreRoundTrip(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()
	store := NewSQLRunStore(conn, db.DriverSQLite)

	base := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	runs := []domain.HubPlacement{
		{
			RunID:              "run-a",
			Strategy:           "round_trip",
			Hubs:               []domain.Coordinates{{Lat: 52.1, Lon: -1.2}},
			Score:              1 / 1234.5,
			TotalDistanceMiles: 1234.5,
			Evaluations:        801,
			Iterations:         100,
			Converged:          true,
			Duration:           15 * time.Millisecond,
			CreatedAt:          base,
		},
		{
			RunID:              "run-b",
			Strategy:           "two_hub_nearest",
			Hubs:               []domain.Coordinates{{Lat: 51, Lon: 0}, {Lat: 55, Lon: -3}},
			Score:              1 / 800.0,
			TotalDistanceMiles: 800,
			Evaluations:        1601,
			Iterations:         200,
			Converged:          false,
			Duration:           30 * time.Millisecond,
			CreatedAt:          base.Add(100 * time.Millisecond),
		},
	}

	if err := store.SaveRuns(ctx, runs); err != nil {
		t.Fatalf("SaveRuns: %v", err)
	}

	got, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d runs, want 2", len(got))
	}

	// Newest first.
	if got[0].RunID != "run-b" || got[1].RunID != "run-a" {
		t.Fatalf("order = %s, %s", got[0].RunID, got[1].RunID)
	}

	b := got[0]
	if len(b.Hubs) != 2 || b.Hubs[1] != (domain.Coordinates{Lat: 55, Lon: -3}) {
		t.Fatalf("hubs = %v", b.Hubs)
	}
	if b.Converged || b.Iterations != 200 || b.Evaluations != 1601 || b.Duration != 30*time.Millisecond {
		t.Fatalf("run b = %+v", b)
	}
	if !b.CreatedAt.Equal(runs[1].CreatedAt) {
		t.Fatalf("created_at = %v, want %v", b.CreatedAt, runs[1].CreatedAt)
	}
	if math.Abs(b.Score-runs[1].Score) > 1e-15 {
		t.Fatalf("score = %v, want %v", b.Score, runs[1].Score)
	}

	limited, err := store.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("ListRuns limit: %v", err)
	}
	if len(limited) != 1 || limited[0].RunID != "run-b" {
		t.Fatalf("limited = %+v", limited)
	}
}

func TestRunStoreOverwritesSameID(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()
	store := NewSQLRunStore(conn, db.DriverSQLite)

	run := domain.HubPlacement{RunID: "same", Strategy: "chained", Hubs: []domain.Coordinates{{}}, CreatedAt: time.Now()}
	if err := store.SaveRuns(ctx, []domain.HubPlacement{run}); err != nil {
		t.Fatalf("SaveRuns: %v", err)
	}
	run.Iterations = 9
	if err := store.SaveRuns(ctx, []domain.HubPlacement{run}); err != nil {
		t.Fatalf("SaveRuns again: %v", err)
	}

	got, err := store.ListRuns(ctx, 5)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(got) != 1 || got[0].Iterations != 9 {
		t.Fatalf("runs = %+v", got)
	}

	if err := store.SaveRuns(ctx, []domain.HubPlacement{{}}); err == nil {
		t.Fatalf("expected error for empty run id")
	}
}

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE x = ? AND y = ?"
	if got := rebind(db.DriverSQLite, q); got != q {
		t.Fatalf("sqlite rebind changed query: %q", got)
	}
	if got, want := rebind(db.DriverPostgres, q), "SELECT a FROM t WHERE x = $1 AND y = $2"; got != want {
		t.Fatalf("postgres rebind = %q, want %q", got, want)
	}
}
