package repositories

import (
	"context"
	"database/sql"
	"delivery-hub-service/internal/domain"
	"delivery-hub-service/internal/platform/obs"
	"errors"
	"fmt"
)

// SQL-backed implementation of the PlaceRepository port.
type SQLPlaceRepository struct {
	DB     *sql.DB
	Driver string
}

func NewSQLPlaceRepository(db *sql.DB, driver string) *SQLPlaceRepository {
	return &SQLPlaceRepository{DB: db, Driver: driver}
}

// Return all places stored in the database, in dataset order.
func (s *SQLPlaceRepository) ListPlaces(ctx context.Context) (_ domain.PlaceSet, err error) {
	defer obs.Time(ctx, "places.ListPlaces")(&err)

	if s.DB == nil {
		return nil, errors.New("sql place repository: DB is nil")
	}

	query := `
	SELECT
		name,
		place_type,
		population,
		lat,
		lon
	FROM places
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list places: query places table: %w", err)
	}
	defer rows.Close()

	places := make(domain.PlaceSet, 0, 64)
	for rows.Next() {
		var p domain.Place
		var typ string
		if err := rows.Scan(&p.Name, &typ, &p.Population, &p.Lat, &p.Lon); err != nil {
			return nil, fmt.Errorf("list places: scan row: %w", err)
		}
		if p.Type, err = domain.ParsePlaceType(typ); err != nil {
			return nil, fmt.Errorf("list places: %q: %w", p.Name, err)
		}
		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list places: row iteration: %w", err)
	}

	return places, nil
}
