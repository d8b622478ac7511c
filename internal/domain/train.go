package domain

import "time"

// Stop is one scheduled visit of a train at a station.
// Arrival is nil for the first stop of an itinerary and Departure is nil for
// the last. Fare is the amount attributed to this stop; a journey's total is
// the sum of the fares of every stop it traverses.
type Stop struct {
	StationID int64      `json:"station_id"`
	Arrival   *TimeOfDay `json:"arrival_time"`
	Departure *TimeOfDay `json:"departure_time"`
	Fare      int64      `json:"fare"`
}

// Train is a registered service visiting an ordered sequence of stops.
// The stop order is significant: it encodes the direction of travel.
// A station appears at most once per train (no loops), which makes
// origin/destination lookups by station ID unambiguous.
// Trains are immutable after registration.
type Train struct {
	ID        int64     `json:"train_id"`
	Name      string    `json:"train_name"`
	Capacity  int       `json:"capacity"`
	Stops     []Stop    `json:"stops"`
	CreatedAt time.Time `json:"created_at"`
}

// StopIndex returns the index of the stop at stationID within the train's
// ordered stop list, or -1 when the train does not call there.
func (t Train) StopIndex(stationID int64) int {
	for i, s := range t.Stops {
		if s.StationID == stationID {
			return i
		}
	}
	return -1
}

// TrainCall is one train's visit at a particular station, as returned by the
// station departure-board listing.
type TrainCall struct {
	TrainID   int64      `json:"train_id"`
	Arrival   *TimeOfDay `json:"arrival_time"`
	Departure *TimeOfDay `json:"departure_time"`
}
