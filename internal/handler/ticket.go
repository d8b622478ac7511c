package handler

import (
	"encoding/json"
	"net/http"

	"github.com/samurai-rail/ticketing/internal/domain"
)

// purchaseTicketRequest is the body for POST /api/tickets.
type purchaseTicketRequest struct {
	WalletID    int64  `json:"wallet_id"`
	StationFrom int64  `json:"station_from"`
	StationTo   int64  `json:"station_to"`
	TimeAfter   string `json:"time_after"`
}

// PurchaseTicket handles POST /api/tickets: the journey search, fare
// computation, and atomic debit-and-issue flow.
//
// Failure statuses: 404 unknown wallet or no eligible trains, 402 with the
// shortage amount when the balance cannot cover the fare, 409 when the
// purchase repeatedly lost the race against concurrent balance updates.
func (s *Server) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	var req purchaseTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	timeAfter, err := domain.ParseTimeOfDay(req.TimeAfter)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	ticket, err := s.tickets.Purchase(r.Context(), req.WalletID, req.StationFrom, req.StationTo, timeAfter)
	if err != nil {
		respondError(w, r, err, "wallet not found")
		return
	}

	writeJSON(w, http.StatusCreated, ticket)
}

// GetTicket handles GET /api/tickets/{ticket_id}.
func (s *Server) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := pathID(r, "ticket_id")
	if err != nil {
		requestError(w, "invalid ticket id")
		return
	}

	ticket, err := s.tickets.GetByID(r.Context(), ticketID)
	if err != nil {
		respondError(w, r, err, "ticket not found")
		return
	}

	writeJSON(w, http.StatusOK, ticket)
}
