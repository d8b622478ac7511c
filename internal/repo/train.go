package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/samurai-rail/ticketing/internal/domain"
)

// TrainRepo defines the persistence operations for Trains and their stops.
// Trains are written once at registration and read by the journey engine;
// there is no update or delete surface.
type TrainRepo interface {
	// Create inserts a train together with its ordered stop list in one
	// transaction and returns the persisted record.
	Create(ctx context.Context, train domain.Train) (domain.Train, error)

	// GetByID retrieves a single train, stops included, by its integer ID.
	// Returns domain.ErrNotFound if no train with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Train, error)

	// List returns all trains with their stops, ordered by train ID. This is
	// the network snapshot the journey engine searches on every purchase.
	List(ctx context.Context) ([]domain.Train, error)

	// ListCallsAt returns every train's visit at the given station, ordered
	// by departure time (terminating trains last) and then by train ID.
	ListCallsAt(ctx context.Context, stationID int64) ([]domain.TrainCall, error)
}

// pgTrainRepo is the Postgres implementation of TrainRepo.
type pgTrainRepo struct {
	db db
}

// NewTrainRepo constructs a TrainRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTrainRepo(db db) TrainRepo {
	return &pgTrainRepo{db: db}
}

func (r *pgTrainRepo) Create(ctx context.Context, train domain.Train) (domain.Train, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Train{}, fmt.Errorf("repo.TrainRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertTrain = `
		INSERT INTO trains (id, name, capacity)
		VALUES (@id, @name, @capacity)
		RETURNING created_at`

	args := pgx.NamedArgs{
		"id":       train.ID,
		"name":     train.Name,
		"capacity": train.Capacity,
	}
	if err := tx.QueryRow(ctx, insertTrain, args).Scan(&train.CreatedAt); err != nil {
		return domain.Train{}, fmt.Errorf("repo.TrainRepo.Create: %w", err)
	}

	const insertStop = `
		INSERT INTO train_stops (train_id, position, station_id, arrival_time, departure_time, fare)
		VALUES (@train_id, @position, @station_id, @arrival_time, @departure_time, @fare)`

	for i, stop := range train.Stops {
		args := pgx.NamedArgs{
			"train_id":       train.ID,
			"position":       i,
			"station_id":     stop.StationID,
			"arrival_time":   timeOfDayText(stop.Arrival), // nil becomes NULL
			"departure_time": timeOfDayText(stop.Departure),
			"fare":           stop.Fare,
		}
		if _, err := tx.Exec(ctx, insertStop, args); err != nil {
			return domain.Train{}, fmt.Errorf("repo.TrainRepo.Create: stop %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Train{}, fmt.Errorf("repo.TrainRepo.Create: commit: %w", err)
	}
	return train, nil
}

func (r *pgTrainRepo) GetByID(ctx context.Context, id int64) (domain.Train, error) {
	const q = `
		SELECT id, name, capacity, created_at
		FROM trains
		WHERE id = @id`

	var t domain.Train
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).
		Scan(&t.ID, &t.Name, &t.Capacity, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Train{}, fmt.Errorf("repo.TrainRepo.GetByID: %w", domain.ErrNotFound)
		}
		return domain.Train{}, fmt.Errorf("repo.TrainRepo.GetByID: %w", err)
	}

	t.Stops, err = r.stopsFor(ctx, id)
	if err != nil {
		return domain.Train{}, fmt.Errorf("repo.TrainRepo.GetByID: %w", err)
	}
	return t, nil
}

func (r *pgTrainRepo) List(ctx context.Context) ([]domain.Train, error) {
	const q = `
		SELECT id, name, capacity, created_at
		FROM trains
		ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TrainRepo.List: %w", err)
	}
	defer rows.Close()

	var trains []domain.Train
	index := map[int64]int{}
	for rows.Next() {
		var t domain.Train
		if err := rows.Scan(&t.ID, &t.Name, &t.Capacity, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("repo.TrainRepo.List: scan: %w", err)
		}
		index[t.ID] = len(trains)
		trains = append(trains, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TrainRepo.List: rows: %w", err)
	}

	const stopsQ = `
		SELECT train_id, station_id, arrival_time, departure_time, fare
		FROM train_stops
		ORDER BY train_id, position`

	stopRows, err := r.db.Query(ctx, stopsQ)
	if err != nil {
		return nil, fmt.Errorf("repo.TrainRepo.List: stops: %w", err)
	}
	defer stopRows.Close()

	for stopRows.Next() {
		var (
			trainID int64
			stop    domain.Stop
			arr     pgtype.Text
			dep     pgtype.Text
		)
		if err := stopRows.Scan(&trainID, &stop.StationID, &arr, &dep, &stop.Fare); err != nil {
			return nil, fmt.Errorf("repo.TrainRepo.List: scan stop: %w", err)
		}
		stop.Arrival = timeOfDayFromText(arr)
		stop.Departure = timeOfDayFromText(dep)
		if i, ok := index[trainID]; ok {
			trains[i].Stops = append(trains[i].Stops, stop)
		}
	}
	if err := stopRows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TrainRepo.List: stop rows: %w", err)
	}

	return trains, nil
}

func (r *pgTrainRepo) ListCallsAt(ctx context.Context, stationID int64) ([]domain.TrainCall, error) {
	const q = `
		SELECT train_id, arrival_time, departure_time
		FROM train_stops
		WHERE station_id = @station_id
		ORDER BY departure_time ASC NULLS LAST, train_id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"station_id": stationID})
	if err != nil {
		return nil, fmt.Errorf("repo.TrainRepo.ListCallsAt: %w", err)
	}
	defer rows.Close()

	var calls []domain.TrainCall
	for rows.Next() {
		var (
			call domain.TrainCall
			arr  pgtype.Text
			dep  pgtype.Text
		)
		if err := rows.Scan(&call.TrainID, &arr, &dep); err != nil {
			return nil, fmt.Errorf("repo.TrainRepo.ListCallsAt: scan: %w", err)
		}
		call.Arrival = timeOfDayFromText(arr)
		call.Departure = timeOfDayFromText(dep)
		calls = append(calls, call)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TrainRepo.ListCallsAt: rows: %w", err)
	}

	return calls, nil
}

// stopsFor loads the ordered stop list for one train.
func (r *pgTrainRepo) stopsFor(ctx context.Context, trainID int64) ([]domain.Stop, error) {
	const q = `
		SELECT station_id, arrival_time, departure_time, fare
		FROM train_stops
		WHERE train_id = @train_id
		ORDER BY position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"train_id": trainID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stops []domain.Stop
	for rows.Next() {
		var (
			stop domain.Stop
			arr  pgtype.Text
			dep  pgtype.Text
		)
		if err := rows.Scan(&stop.StationID, &arr, &dep, &stop.Fare); err != nil {
			return nil, err
		}
		stop.Arrival = timeOfDayFromText(arr)
		stop.Departure = timeOfDayFromText(dep)
		stops = append(stops, stop)
	}
	return stops, rows.Err()
}

// timeOfDayText converts an optional TimeOfDay into a value pgx can bind:
// a plain string, or nil for NULL.
func timeOfDayText(t *domain.TimeOfDay) any {
	if t == nil {
		return nil
	}
	return string(*t)
}

// timeOfDayFromText converts a nullable text column into an optional TimeOfDay.
func timeOfDayFromText(t pgtype.Text) *domain.TimeOfDay {
	if !t.Valid {
		return nil
	}
	tod := domain.TimeOfDay(t.String)
	return &tod
}
