// Package handler implements the HTTP handlers for the ticketing API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (station.go, train.go, wallet.go, ticket.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/samurai-rail/ticketing/internal/domain"
)

// StationServicer defines the business operations the station handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type StationServicer interface {
	Create(ctx context.Context, station domain.Station) (domain.Station, error)
	List(ctx context.Context) ([]domain.Station, error)
	TrainsAt(ctx context.Context, stationID int64) ([]domain.TrainCall, error)
}

// TrainServicer defines the business operations the train handlers depend on.
type TrainServicer interface {
	Create(ctx context.Context, train domain.Train) (domain.Train, error)
	List(ctx context.Context) ([]domain.Train, error)
}

// WalletServicer defines the business operations the wallet handlers depend on.
type WalletServicer interface {
	Create(ctx context.Context, wallet domain.Wallet) (domain.Wallet, error)
	GetByID(ctx context.Context, id int64) (domain.Wallet, error)
	TopUp(ctx context.Context, id int64, amount int64) (domain.Wallet, error)
}

// TicketServicer defines the business operations the ticket handlers depend on.
type TicketServicer interface {
	Purchase(ctx context.Context, walletID, originID, destID int64, timeAfter domain.TimeOfDay) (domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (domain.Ticket, error)
}

// Server holds the handlers for all API endpoints.
// openAPI, when non-nil, is served verbatim at /openapi.yaml.
type Server struct {
	stations StationServicer
	trains   TrainServicer
	wallets  WalletServicer
	tickets  TicketServicer
	openAPI  []byte
}

// NewServer constructs the Server with all its dependencies.
func NewServer(stations StationServicer, trains TrainServicer, wallets WalletServicer, tickets TicketServicer, openAPI []byte) *Server {
	return &Server{
		stations: stations,
		trains:   trains,
		wallets:  wallets,
		tickets:  tickets,
		openAPI:  openAPI,
	}
}

// Routes returns the full route table. Middleware is the caller's business;
// main.go wraps this with request ID, logging, CORS, and body limits.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	if s.openAPI != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", s.CreateUser)

		r.Post("/stations", s.CreateStation)
		r.Get("/stations", s.ListStations)
		r.Get("/stations/{station_id}/trains", s.ListStationTrains)

		r.Post("/trains", s.CreateTrain)
		r.Get("/trains", s.ListTrains)

		r.Get("/wallets/{wallet_id}", s.GetWallet)
		r.Put("/wallets/{wallet_id}", s.TopUpWallet)

		r.Post("/tickets", s.PurchaseTicket)
		r.Get("/tickets/{ticket_id}", s.GetTicket)
	})

	return r
}
