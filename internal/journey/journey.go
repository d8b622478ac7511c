// Package journey implements the journey search and fare computation engine:
// candidate filtering, route extraction, and the selection policy that picks
// the single best train for a requested origin/destination/earliest-departure
// query. The package is pure — it performs no I/O and holds no state — so the
// whole engine is exercisable from plain unit tests.
package journey

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samurai-rail/ticketing/internal/domain"
)

// ErrNotTraversable marks a single train that cannot carry the rider from the
// origin to the destination in its direction of travel (either station is not
// on the itinerary, or the origin comes at or after the destination). It is
// internal to the engine: callers exclude the train and move on, and it never
// surfaces as a request-level failure on its own.
var ErrNotTraversable = errors.New("not traversable")

// Option is one costed candidate for a journey: a train, the fare for the
// traversed segment, the ordered segments themselves, and the departure time
// at the origin station, which drives the selection policy.
type Option struct {
	Train     domain.Train
	Departure domain.TimeOfDay
	TotalFare int64
	Segments  []domain.RouteSegment
}

// Eligible filters trains down to those that can serve a trip from originID to
// destID departing no earlier than after. A train qualifies when its stop list
// contains the destination station and its origin stop departs strictly later
// than after. Result order is whatever the input order was; ranking is the
// selection policy's job.
//
// An empty result is a normal outcome ("no eligible trains"), not an error.
func Eligible(trains []domain.Train, originID, destID int64, after domain.TimeOfDay) []domain.Train {
	var eligible []domain.Train
	for _, t := range trains {
		if t.StopIndex(destID) < 0 {
			continue
		}
		dep := departureAt(t, originID)
		if dep == nil || !dep.After(after) {
			continue
		}
		eligible = append(eligible, t)
	}
	return eligible
}

// Extract computes the fare and route segments for riding train t from
// originID to destID. The traversed route is the contiguous, inclusive slice
// of stops from the origin to the destination, and the total fare is the sum
// of every stop's fare in that slice — including the origin stop's own fare,
// which mirrors the established fare rule.
//
// Returns ErrNotTraversable when either station is absent from the itinerary
// or the origin does not precede the destination (trains run one way only).
func Extract(t domain.Train, originID, destID int64) (int64, []domain.RouteSegment, error) {
	from := t.StopIndex(originID)
	to := t.StopIndex(destID)
	if from < 0 || to < 0 || from >= to {
		return 0, nil, ErrNotTraversable
	}

	var fare int64
	segments := make([]domain.RouteSegment, 0, to-from+1)
	for _, stop := range t.Stops[from : to+1] {
		fare += stop.Fare
		segments = append(segments, domain.RouteSegment{
			StationID: stop.StationID,
			TrainID:   t.ID,
			Arrival:   stop.Arrival,
			Departure: stop.Departure,
		})
	}
	return fare, segments, nil
}

// Plan runs the full engine: filter the trains, cost each survivor, and pick
// the best candidate. Candidates are ordered ascending by departure time at
// the origin, then by total fare, then by train ID — the final key makes the
// policy a deterministic total order.
//
// Returns domain.ErrNoEligibleTrains (wrapped with the station pair) when no
// train qualifies, including when every filtered train turns out not to be
// traversable in the requested direction.
func Plan(trains []domain.Train, originID, destID int64, after domain.TimeOfDay) (Option, error) {
	var options []Option
	for _, t := range Eligible(trains, originID, destID, after) {
		fare, segments, err := Extract(t, originID, destID)
		if errors.Is(err, ErrNotTraversable) {
			continue
		}
		if err != nil {
			return Option{}, err
		}
		options = append(options, Option{
			Train:     t,
			Departure: *segments[0].Departure, // origin stop always departs; the filter guarantees it
			TotalFare: fare,
			Segments:  segments,
		})
	}

	if len(options) == 0 {
		return Option{}, fmt.Errorf("%w: from station %d to station %d", domain.ErrNoEligibleTrains, originID, destID)
	}

	sort.Slice(options, func(i, j int) bool {
		if options[i].Departure != options[j].Departure {
			return options[i].Departure.Before(options[j].Departure)
		}
		if options[i].TotalFare != options[j].TotalFare {
			return options[i].TotalFare < options[j].TotalFare
		}
		return options[i].Train.ID < options[j].Train.ID
	})
	return options[0], nil
}

// departureAt returns the departure time of the first stop at stationID in
// the train's stored order, or nil when the train does not call there or
// only terminates there.
func departureAt(t domain.Train, stationID int64) *domain.TimeOfDay {
	for _, s := range t.Stops {
		if s.StationID == stationID {
			return s.Departure
		}
	}
	return nil
}
