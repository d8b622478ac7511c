// Package service contains the business logic for the ticketing API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/samurai-rail/ticketing/internal/domain"
	"github.com/samurai-rail/ticketing/internal/repo"
)

// StationService implements business logic for Station operations.
// It holds the train repo as well because the departure-board listing is
// scoped to a station that must exist.
type StationService struct {
	stations repo.StationRepo
	trains   repo.TrainRepo
}

// NewStationService constructs a StationService backed by the provided repos.
func NewStationService(stations repo.StationRepo, trains repo.TrainRepo) *StationService {
	return &StationService{stations: stations, trains: trains}
}

// Create validates and persists a new station.
// Returns domain.ErrValidation if input violates business rules.
func (s *StationService) Create(ctx context.Context, station domain.Station) (domain.Station, error) {
	if station.ID <= 0 {
		return domain.Station{}, fmt.Errorf("%w: station_id must be positive", domain.ErrValidation)
	}
	if strings.TrimSpace(station.Name) == "" {
		return domain.Station{}, fmt.Errorf("%w: station_name is required", domain.ErrValidation)
	}
	result, err := s.stations.Create(ctx, station)
	if err != nil {
		return domain.Station{}, fmt.Errorf("service.StationService.Create: %w", err)
	}
	return result, nil
}

// List returns all stations ordered by ID ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *StationService) List(ctx context.Context) ([]domain.Station, error) {
	stations, err := s.stations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StationService.List: %w", err)
	}
	if stations == nil {
		return []domain.Station{}, nil
	}
	return stations, nil
}

// TrainsAt returns every train calling at the station, with its arrival and
// departure there, ordered by departure time then train ID.
// Returns domain.ErrNotFound if the station does not exist; a station with
// no trains yields an empty, non-nil slice.
func (s *StationService) TrainsAt(ctx context.Context, stationID int64) ([]domain.TrainCall, error) {
	if _, err := s.stations.GetByID(ctx, stationID); err != nil {
		return nil, fmt.Errorf("service.StationService.TrainsAt: %w", err)
	}
	calls, err := s.trains.ListCallsAt(ctx, stationID)
	if err != nil {
		return nil, fmt.Errorf("service.StationService.TrainsAt: %w", err)
	}
	if calls == nil {
		return []domain.TrainCall{}, nil
	}
	return calls, nil
}
