// Package queue defines the message payloads and the AMQP publisher for
// events emitted by the ticketing service.
package queue

import "github.com/samurai-rail/ticketing/internal/domain"

// TicketIssuedQueue is the durable queue ticket events are published to.
const TicketIssuedQueue = "ticket.issued"

// TicketIssuedEvent is published after a purchase has committed. It carries
// enough information for downstream consumers (notifications, analytics) to
// act without querying the primary database. The event stream is advisory:
// the purchase is already durable when this is sent.
type TicketIssuedEvent struct {
	TicketID     int64             `json:"ticket_id"`
	Reference    string            `json:"reference"`
	WalletID     int64             `json:"wallet_id"`
	TotalFare    int64             `json:"total_fare"`
	BalanceAfter int64             `json:"balance_after"`
	OriginID     int64             `json:"origin_station_id"`
	DestID       int64             `json:"destination_station_id"`
	TrainID      int64             `json:"train_id"`
	Departure    domain.TimeOfDay  `json:"departure_time"`
	SegmentCount int               `json:"segment_count"`
	IssuedAt     string            `json:"issued_at"`
}
