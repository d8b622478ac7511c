package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samurai-rail/ticketing/internal/domain"
)

// StationRepo defines the persistence operations for Stations.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type StationRepo interface {
	// Create inserts a new station and returns the persisted record.
	Create(ctx context.Context, station domain.Station) (domain.Station, error)

	// GetByID retrieves a single station by its network-wide integer ID.
	// Returns domain.ErrNotFound if no station with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Station, error)

	// List returns all stations ordered by ID ascending.
	List(ctx context.Context) ([]domain.Station, error)
}

// pgStationRepo is the Postgres implementation of StationRepo.
type pgStationRepo struct {
	db db
}

// NewStationRepo constructs a StationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStationRepo(db db) StationRepo {
	return &pgStationRepo{db: db}
}

func (r *pgStationRepo) Create(ctx context.Context, station domain.Station) (domain.Station, error) {
	const q = `
		INSERT INTO stations (id, name, latitude, longitude)
		VALUES (@id, @name, @latitude, @longitude)
		RETURNING id, name, latitude, longitude, created_at`

	args := pgx.NamedArgs{
		"id":        station.ID,
		"name":      station.Name,
		"latitude":  station.Latitude,
		"longitude": station.Longitude,
	}

	result, err := scanStation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Station{}, fmt.Errorf("repo.StationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgStationRepo) GetByID(ctx context.Context, id int64) (domain.Station, error) {
	const q = `
		SELECT id, name, latitude, longitude, created_at
		FROM stations
		WHERE id = @id`

	result, err := scanStation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Station{}, fmt.Errorf("repo.StationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgStationRepo) List(ctx context.Context) ([]domain.Station, error) {
	const q = `
		SELECT id, name, latitude, longitude, created_at
		FROM stations
		ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.StationRepo.List: %w", err)
	}
	defer rows.Close()

	var stations []domain.Station
	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StationRepo.List: scan: %w", err)
		}
		stations = append(stations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StationRepo.List: rows: %w", err)
	}

	return stations, nil
}

// scanStation maps a single database row into a domain.Station.
func scanStation(s scanner) (domain.Station, error) {
	var st domain.Station
	err := s.Scan(&st.ID, &st.Name, &st.Latitude, &st.Longitude, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Station{}, domain.ErrNotFound
		}
		return domain.Station{}, err
	}
	return st, nil
}
