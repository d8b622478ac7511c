package handler

import (
	"encoding/json"
	"net/http"

	"github.com/samurai-rail/ticketing/internal/domain"
)

// createTrainRequest is the body for POST /api/trains.
type createTrainRequest struct {
	TrainID  int64              `json:"train_id"`
	Name     string             `json:"train_name"`
	Capacity int                `json:"capacity"`
	Stops    []trainStopRequest `json:"stops"`
}

type trainStopRequest struct {
	StationID int64   `json:"station_id"`
	Arrival   *string `json:"arrival_time"`
	Departure *string `json:"departure_time"`
	Fare      int64   `json:"fare"`
}

// createTrainResponse is the registration acknowledgement: the train summary
// plus the derived service window, stops omitted.
type createTrainResponse struct {
	TrainID      int64             `json:"train_id"`
	Name         string            `json:"train_name"`
	Capacity     int               `json:"capacity"`
	NumStations  int               `json:"num_stations"`
	ServiceStart *domain.TimeOfDay `json:"service_start"`
	ServiceEnds  *domain.TimeOfDay `json:"service_ends"`
}

// CreateTrain handles POST /api/trains.
// The response summarizes the service: number of stations, first departure,
// and last arrival.
func (s *Server) CreateTrain(w http.ResponseWriter, r *http.Request) {
	var req createTrainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	created, err := s.trains.Create(r.Context(), requestToTrain(req))
	if err != nil {
		respondError(w, r, err, "train not found")
		return
	}

	resp := createTrainResponse{
		TrainID:     created.ID,
		Name:        created.Name,
		Capacity:    created.Capacity,
		NumStations: len(created.Stops),
	}
	if n := len(created.Stops); n > 0 {
		resp.ServiceStart = created.Stops[0].Departure
		resp.ServiceEnds = created.Stops[n-1].Arrival
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ListTrains handles GET /api/trains.
func (s *Server) ListTrains(w http.ResponseWriter, r *http.Request) {
	trains, err := s.trains.List(r.Context())
	if err != nil {
		respondError(w, r, err, "train not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"trains": trains})
}

// requestToTrain converts a createTrainRequest into a domain.Train.
// Time strings pass through as-is; the service layer validates them.
func requestToTrain(req createTrainRequest) domain.Train {
	t := domain.Train{
		ID:       req.TrainID,
		Name:     req.Name,
		Capacity: req.Capacity,
		Stops:    make([]domain.Stop, 0, len(req.Stops)),
	}
	for _, stop := range req.Stops {
		t.Stops = append(t.Stops, domain.Stop{
			StationID: stop.StationID,
			Arrival:   timeOfDayPtr(stop.Arrival),
			Departure: timeOfDayPtr(stop.Departure),
			Fare:      stop.Fare,
		})
	}
	return t
}

// timeOfDayPtr converts an optional JSON string into an optional TimeOfDay.
func timeOfDayPtr(s *string) *domain.TimeOfDay {
	if s == nil {
		return nil
	}
	tod := domain.TimeOfDay(*s)
	return &tod
}
