package locationrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skylens/photogenic-sky/internal/domain/sensor"
)

// PostgresRepository implements sensor.LocationRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the locations table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS photogenic_locations (
			id         UUID PRIMARY KEY,
			query      TEXT NOT NULL,
			name       TEXT NOT NULL,
			country    TEXT NOT NULL DEFAULT '',
			latitude   DOUBLE PRECISION NOT NULL,
			longitude  DOUBLE PRECISION NOT NULL,
			timezone   TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	return err
}

func (r *PostgresRepository) Save(ctx context.Context, loc sensor.Location) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO photogenic_locations (id, query, name, country, latitude, longitude, timezone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			query = EXCLUDED.query,
			name = EXCLUDED.name,
			country = EXCLUDED.country,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			timezone = EXCLUDED.timezone
	`, loc.ID, loc.Query, loc.Name, loc.Country, loc.Latitude, loc.Longitude, loc.Timezone, loc.CreatedAt)
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (sensor.Location, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, query, name, country, latitude, longitude, timezone, created_at
		FROM photogenic_locations
		WHERE id = $1
		LIMIT 1
	`, id)
	if err != nil {
		return sensor.Location{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return sensor.Location{}, false, rows.Err()
	}
	var loc sensor.Location
	if err := rows.Scan(&loc.ID, &loc.Query, &loc.Name, &loc.Country, &loc.Latitude, &loc.Longitude, &loc.Timezone, &loc.CreatedAt); err != nil {
		return sensor.Location{}, false, err
	}
	return loc, true, rows.Err()
}

func (r *PostgresRepository) List(ctx context.Context) ([]sensor.Location, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, query, name, country, latitude, longitude, timezone, created_at
		FROM photogenic_locations
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sensor.Location
	for rows.Next() {
		var loc sensor.Location
		if err := rows.Scan(&loc.ID, &loc.Query, &loc.Name, &loc.Country, &loc.Latitude, &loc.Longitude, &loc.Timezone, &loc.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM photogenic_locations WHERE id = $1`, id)
	return err
}

var _ sensor.LocationRepository = (*PostgresRepository)(nil)
