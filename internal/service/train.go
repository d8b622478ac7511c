package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samurai-rail/ticketing/internal/domain"
	"github.com/samurai-rail/ticketing/internal/repo"
)

// TrainInvalidator drops any cached train listing after the network changes.
// Implemented by cache.TrainCache; nil disables invalidation.
type TrainInvalidator interface {
	Invalidate(ctx context.Context) error
}

// TrainService implements business logic for Train operations.
type TrainService struct {
	trains repo.TrainRepo
	cache  TrainInvalidator
}

// NewTrainService constructs a TrainService backed by the provided repo.
// cache may be nil when no train-list cache is configured.
func NewTrainService(trains repo.TrainRepo, cache TrainInvalidator) *TrainService {
	return &TrainService{trains: trains, cache: cache}
}

// Create validates and persists a new train with its ordered stop list.
// Returns domain.ErrValidation if input violates business rules.
func (s *TrainService) Create(ctx context.Context, train domain.Train) (domain.Train, error) {
	if err := validateTrain(train); err != nil {
		return domain.Train{}, err
	}
	result, err := s.trains.Create(ctx, train)
	if err != nil {
		return domain.Train{}, fmt.Errorf("service.TrainService.Create: %w", err)
	}
	// The cached network snapshot is now stale. Invalidation failure is not
	// fatal: the cache entry expires on its own TTL.
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			slog.WarnContext(ctx, "train cache invalidation failed", "error", err)
		}
	}
	return result, nil
}

// List returns all trains with their stops.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TrainService) List(ctx context.Context) ([]domain.Train, error) {
	trains, err := s.trains.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TrainService.List: %w", err)
	}
	if trains == nil {
		return []domain.Train{}, nil
	}
	return trains, nil
}

// validateTrain enforces the registration rules for a train:
//   - ID positive, name non-empty, capacity positive.
//   - At least one stop; a station appears at most once (stop order encodes
//     direction of travel, and duplicates would make it ambiguous).
//   - Only the first stop may omit an arrival time, only the last stop may
//     omit a departure time; all present times must be valid HH:MM.
//   - Fares are non-negative.
func validateTrain(train domain.Train) error {
	if train.ID <= 0 {
		return fmt.Errorf("%w: train_id must be positive", domain.ErrValidation)
	}
	if strings.TrimSpace(train.Name) == "" {
		return fmt.Errorf("%w: train_name is required", domain.ErrValidation)
	}
	if train.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", domain.ErrValidation)
	}
	if len(train.Stops) == 0 {
		return fmt.Errorf("%w: at least one stop is required", domain.ErrValidation)
	}

	seen := make(map[int64]bool, len(train.Stops))
	for i, stop := range train.Stops {
		if stop.StationID <= 0 {
			return fmt.Errorf("%w: stop %d: station_id must be positive", domain.ErrValidation, i)
		}
		if seen[stop.StationID] {
			return fmt.Errorf("%w: stop %d: station %d appears more than once", domain.ErrValidation, i, stop.StationID)
		}
		seen[stop.StationID] = true

		if stop.Arrival == nil && i != 0 {
			return fmt.Errorf("%w: stop %d: arrival_time is required", domain.ErrValidation, i)
		}
		if stop.Departure == nil && i != len(train.Stops)-1 {
			return fmt.Errorf("%w: stop %d: departure_time is required", domain.ErrValidation, i)
		}
		for _, tod := range []*domain.TimeOfDay{stop.Arrival, stop.Departure} {
			if tod == nil {
				continue
			}
			if _, err := domain.ParseTimeOfDay(string(*tod)); err != nil {
				return fmt.Errorf("%w: stop %d: %v", domain.ErrValidation, i, err)
			}
		}
		if stop.Fare < 0 {
			return fmt.Errorf("%w: stop %d: fare must not be negative", domain.ErrValidation, i)
		}
	}
	return nil
}
