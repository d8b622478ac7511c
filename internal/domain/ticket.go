package domain

import (
	"time"

	"github.com/google/uuid"
)

// RouteSegment is one stop of the selected train as purchased on a ticket:
// the station, the train that carries the rider through it, and the scheduled
// arrival/departure there. Segments are stored in travel order.
type RouteSegment struct {
	StationID int64      `json:"station_id"`
	TrainID   int64      `json:"train_id"`
	Arrival   *TimeOfDay `json:"arrival_time"`
	Departure *TimeOfDay `json:"departure_time"`
}

// Ticket is an issued journey. IDs come from a database sequence and are
// unique and strictly increasing across the life of the service; Reference is
// the public-facing code printed on the ticket. Balance is the wallet balance
// immediately after the purchase debit. Tickets are immutable once created.
type Ticket struct {
	ID        int64          `json:"ticket_id"`
	Reference uuid.UUID      `json:"reference"`
	WalletID  int64          `json:"wallet_id"`
	Balance   int64          `json:"balance"`
	Segments  []RouteSegment `json:"stations"`
	CreatedAt time.Time      `json:"created_at"`
}
