package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samurai-rail/ticketing/internal/domain"
	"github.com/samurai-rail/ticketing/internal/journey"
	"github.com/samurai-rail/ticketing/internal/queue"
	"github.com/samurai-rail/ticketing/internal/repo"
)

// maxPurchaseAttempts bounds the retry loop around conditional-debit
// conflicts. Each retry restarts the purchase from wallet resolution, so a
// conflicting concurrent purchase is re-evaluated against the fresh balance.
const maxPurchaseAttempts = 3

// TrainLister is the read-only network source the purchase path searches.
// Satisfied by repo.TrainRepo directly and by cache.TrainCache wrapping it.
type TrainLister interface {
	List(ctx context.Context) ([]domain.Train, error)
}

// EventPublisher emits post-purchase events. Implemented by queue.Publisher;
// nil disables publishing.
type EventPublisher interface {
	PublishTicketIssued(ctx context.Context, event queue.TicketIssuedEvent) error
}

// TicketService orchestrates the full purchase flow: resolve the wallet, run
// the journey engine over the train network, enforce balance sufficiency,
// and commit the atomic debit-and-issue transaction.
type TicketService struct {
	wallets repo.WalletRepo
	trains  TrainLister
	tickets repo.TicketRepo
	events  EventPublisher
}

// NewTicketService constructs a TicketService backed by the provided
// dependencies. events may be nil when no broker is configured.
func NewTicketService(wallets repo.WalletRepo, trains TrainLister, tickets repo.TicketRepo, events EventPublisher) *TicketService {
	return &TicketService{wallets: wallets, trains: trains, tickets: tickets, events: events}
}

// Purchase issues a ticket for the best train from originID to destID
// departing strictly after timeAfter, debiting the wallet by the computed
// fare. Either the ticket is committed together with the debit, or the call
// fails with zero side effects.
//
// Failure kinds, all recoverable and side-effect-free:
//   - domain.ErrNotFound — the wallet does not exist.
//   - domain.ErrNoEligibleTrains — no train serves the request.
//   - domain.ErrInsufficientFunds — fare exceeds balance; the error carries
//     the shortage.
//   - domain.ErrConflict — the balance kept changing underneath the
//     conditional debit for maxPurchaseAttempts attempts.
func (s *TicketService) Purchase(ctx context.Context, walletID, originID, destID int64, timeAfter domain.TimeOfDay) (domain.Ticket, error) {
	if originID == destID {
		return domain.Ticket{}, fmt.Errorf("%w: origin and destination must differ", domain.ErrValidation)
	}

	for attempt := 0; attempt < maxPurchaseAttempts; attempt++ {
		wallet, err := s.wallets.GetByID(ctx, walletID)
		if err != nil {
			return domain.Ticket{}, fmt.Errorf("service.TicketService.Purchase: %w", err)
		}

		trains, err := s.trains.List(ctx)
		if err != nil {
			return domain.Ticket{}, fmt.Errorf("service.TicketService.Purchase: %w", err)
		}

		option, err := journey.Plan(trains, originID, destID, timeAfter)
		if err != nil {
			return domain.Ticket{}, fmt.Errorf("service.TicketService.Purchase: %w", err)
		}

		if wallet.Balance < option.TotalFare {
			return domain.Ticket{}, &domain.InsufficientFundsError{Balance: wallet.Balance, Fare: option.TotalFare}
		}

		ticket, err := s.tickets.Purchase(ctx, wallet, option.TotalFare, option.Segments)
		if errors.Is(err, domain.ErrConflict) {
			// Another purchase or top-up moved the balance between our read
			// and the conditional write. Start over with a fresh read.
			continue
		}
		if err != nil {
			return domain.Ticket{}, fmt.Errorf("service.TicketService.Purchase: %w", err)
		}

		s.publishIssued(ctx, ticket, option, originID, destID)
		return ticket, nil
	}

	return domain.Ticket{}, fmt.Errorf("service.TicketService.Purchase: %w", domain.ErrConflict)
}

// GetByID returns an issued ticket with its route segments.
// Returns domain.ErrNotFound if no ticket with that ID exists.
func (s *TicketService) GetByID(ctx context.Context, id int64) (domain.Ticket, error) {
	result, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("service.TicketService.GetByID: %w", err)
	}
	return result, nil
}

// publishIssued emits the advisory ticket.issued event. The ticket is already
// committed, so a publish failure is logged and swallowed.
func (s *TicketService) publishIssued(ctx context.Context, ticket domain.Ticket, option journey.Option, originID, destID int64) {
	if s.events == nil {
		return
	}
	event := queue.TicketIssuedEvent{
		TicketID:     ticket.ID,
		Reference:    ticket.Reference.String(),
		WalletID:     ticket.WalletID,
		TotalFare:    option.TotalFare,
		BalanceAfter: ticket.Balance,
		OriginID:     originID,
		DestID:       destID,
		TrainID:      option.Train.ID,
		Departure:    option.Departure,
		SegmentCount: len(option.Segments),
		IssuedAt:     ticket.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := s.events.PublishTicketIssued(ctx, event); err != nil {
		slog.WarnContext(ctx, "ticket.issued publish failed", "ticket_id", ticket.ID, "error", err)
	}
}
