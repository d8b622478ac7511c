package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samurai-rail/ticketing/internal/domain"
	"github.com/samurai-rail/ticketing/internal/handler"
)

// mockTrainServicer is a test double for handler.TrainServicer.
type mockTrainServicer struct {
	create func(ctx context.Context, train domain.Train) (domain.Train, error)
	list   func(ctx context.Context) ([]domain.Train, error)
}

func (m *mockTrainServicer) Create(ctx context.Context, train domain.Train) (domain.Train, error) {
	return m.create(ctx, train)
}
func (m *mockTrainServicer) List(ctx context.Context) ([]domain.Train, error) {
	return m.list(ctx)
}

var _ handler.TrainServicer = (*mockTrainServicer)(nil)

func trainFixture() domain.Train {
	return domain.Train{
		ID:       1,
		Name:     "Azuma Express",
		Capacity: 300,
		Stops: []domain.Stop{
			{StationID: 1, Departure: timePtr("11:00"), Fare: 0},
			{StationID: 3, Arrival: timePtr("11:55"), Departure: timePtr("12:00"), Fare: 10},
			{StationID: 5, Arrival: timePtr("12:25"), Fare: 15},
		},
	}
}

// ---- POST /api/trains ------------------------------------------------------

func TestCreateTrain_201(t *testing.T) {
	svc := &mockTrainServicer{
		create: func(_ context.Context, tr domain.Train) (domain.Train, error) {
			assert.Equal(t, int64(1), tr.ID)
			require.Len(t, tr.Stops, 3)
			assert.Nil(t, tr.Stops[0].Arrival)
			assert.Equal(t, timePtr("12:00"), tr.Stops[1].Departure)
			return tr, nil
		},
	}
	h := newRouter(nil, svc, nil, nil)

	rec := doRequest(t, h, http.MethodPost, "/api/trains", jsonBody(t, map[string]any{
		"train_id":   1,
		"train_name": "Azuma Express",
		"capacity":   300,
		"stops": []map[string]any{
			{"station_id": 1, "arrival_time": nil, "departure_time": "11:00", "fare": 0},
			{"station_id": 3, "arrival_time": "11:55", "departure_time": "12:00", "fare": 10},
			{"station_id": 5, "arrival_time": "12:25", "departure_time": nil, "fare": 15},
		},
	}))

	require.Equal(t, http.StatusCreated, rec.Code)

	// The acknowledgement summarizes the service window; stops are omitted.
	var got struct {
		TrainID      int64   `json:"train_id"`
		NumStations  int     `json:"num_stations"`
		ServiceStart *string `json:"service_start"`
		ServiceEnds  *string `json:"service_ends"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.TrainID)
	assert.Equal(t, 3, got.NumStations)
	require.NotNil(t, got.ServiceStart)
	assert.Equal(t, "11:00", *got.ServiceStart)
	require.NotNil(t, got.ServiceEnds)
	assert.Equal(t, "12:25", *got.ServiceEnds)
	assert.NotContains(t, rec.Body.String(), `"stops"`)
}

func TestCreateTrain_422_ValidationError(t *testing.T) {
	svc := &mockTrainServicer{
		create: func(context.Context, domain.Train) (domain.Train, error) {
			return domain.Train{}, domain.ErrValidation
		},
	}
	h := newRouter(nil, svc, nil, nil)

	rec := doRequest(t, h, http.MethodPost, "/api/trains", jsonBody(t, map[string]any{
		"train_id": 1,
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Error.Code)
}

// ---- GET /api/trains -------------------------------------------------------

func TestListTrains_200(t *testing.T) {
	svc := &mockTrainServicer{
		list: func(context.Context) ([]domain.Train, error) {
			return []domain.Train{trainFixture()}, nil
		},
	}
	h := newRouter(nil, svc, nil, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/trains", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Trains []domain.Train `json:"trains"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Trains, 1)
	require.Len(t, got.Trains[0].Stops, 3)
	assert.Equal(t, int64(15), got.Trains[0].Stops[2].Fare)
}
