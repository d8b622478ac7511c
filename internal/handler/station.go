package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/samurai-rail/ticketing/internal/domain"
)

// createStationRequest is the body for POST /api/stations.
type createStationRequest struct {
	StationID int64   `json:"station_id"`
	Name      string  `json:"station_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// stationTrainsResponse is the departure board for one station.
type stationTrainsResponse struct {
	StationID int64              `json:"station_id"`
	Trains    []domain.TrainCall `json:"trains"`
}

// CreateStation handles POST /api/stations.
func (s *Server) CreateStation(w http.ResponseWriter, r *http.Request) {
	var req createStationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	created, err := s.stations.Create(r.Context(), domain.Station{
		ID:        req.StationID,
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		respondError(w, r, err, "station not found")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListStations handles GET /api/stations.
// Stations are returned in ascending station id order.
func (s *Server) ListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := s.stations.List(r.Context())
	if err != nil {
		respondError(w, r, err, "station not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"stations": stations})
}

// ListStationTrains handles GET /api/stations/{station_id}/trains.
// It returns every train calling at the station, ordered by departure time
// then train id; 404 when the station does not exist.
func (s *Server) ListStationTrains(w http.ResponseWriter, r *http.Request) {
	stationID, err := pathID(r, "station_id")
	if err != nil {
		requestError(w, "invalid station id")
		return
	}

	calls, err := s.stations.TrainsAt(r.Context(), stationID)
	if err != nil {
		respondError(w, r, err, "station not found")
		return
	}

	writeJSON(w, http.StatusOK, stationTrainsResponse{StationID: stationID, Trains: calls})
}

// pathID parses an integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
