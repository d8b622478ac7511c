package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/samurai-rail/ticketing/internal/domain"
)

// TicketRepo defines the persistence operations for Tickets, including the
// purchase transaction that is the only wallet-debit path in the system.
type TicketRepo interface {
	// Purchase atomically debits the wallet and persists a new ticket for the
	// given fare and route segments, in a single transaction. The debit is a
	// compare-and-swap against wallet.Balance — the balance the caller
	// observed when it checked sufficiency.
	//
	// Returns domain.ErrNotFound if the wallet no longer exists,
	// domain.ErrConflict if the balance changed since it was observed
	// (callers retry the whole purchase), and leaves no side effects on any
	// failure. Ticket IDs come from a database sequence, so committed IDs are
	// unique and strictly increasing; failed attempts may leave gaps.
	Purchase(ctx context.Context, wallet domain.Wallet, fare int64, segments []domain.RouteSegment) (domain.Ticket, error)

	// GetByID retrieves an issued ticket with its route segments.
	// Returns domain.ErrNotFound if no ticket with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Ticket, error)
}

// pgTicketRepo is the Postgres implementation of TicketRepo.
type pgTicketRepo struct {
	db db
}

// NewTicketRepo constructs a TicketRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTicketRepo(db db) TicketRepo {
	return &pgTicketRepo{db: db}
}

func (r *pgTicketRepo) Purchase(ctx context.Context, wallet domain.Wallet, fare int64, segments []domain.RouteSegment) (domain.Ticket, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.Purchase: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// Conditional debit: the WHERE clause compares against the balance the
	// caller observed, so two concurrent purchases can never both apply.
	// RowsAffected == 0 means either the wallet vanished or the balance
	// moved underneath us — the probe below tells the two apart.
	const debit = `
		UPDATE wallets
		SET balance    = @new_balance,
		    updated_at = now()
		WHERE id = @id AND balance = @observed`

	newBalance := wallet.Balance - fare
	tag, err := tx.Exec(ctx, debit, pgx.NamedArgs{
		"id":          wallet.ID,
		"observed":    wallet.Balance,
		"new_balance": newBalance,
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.Purchase: debit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		probe := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wallets WHERE id = @id)`, pgx.NamedArgs{"id": wallet.ID})
		if err := probe.Scan(&exists); err != nil {
			return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.Purchase: probe: %w", err)
		}
		if !exists {
			return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.Purchase: %w", domain.ErrNotFound)
		}
		return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.Purchase: %w", domain.ErrConflict)
	}

	const insertTicket = `
		INSERT INTO tickets (reference, wallet_id, balance_after)
		VALUES (@reference, @wallet_id, @balance_after)
		RETURNING id, created_at`

	ticket := domain.Ticket{
		Reference: uuid.New(),
		WalletID:  wallet.ID,
		Balance:   newBalance,
		Segments:  segments,
	}
	err = tx.QueryRow(ctx, insertTicket, pgx.NamedArgs{
		"reference":     ticket.Reference,
		"wallet_id":     ticket.WalletID,
		"balance_after": ticket.Balance,
	}).Scan(&ticket.ID, &ticket.CreatedAt)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.Purchase: insert ticket: %w", err)
	}

	const insertSegment = `
		INSERT INTO ticket_segments (ticket_id, position, station_id, train_id, arrival_time, departure_time)
		VALUES (@ticket_id, @position, @station_id, @train_id, @arrival_time, @departure_time)`

	for i, seg := range segments {
		args := pgx.NamedArgs{
			"ticket_id":      ticket.ID,
			"position":       i,
			"station_id":     seg.StationID,
			"train_id":       seg.TrainID,
			"arrival_time":   timeOfDayText(seg.Arrival),
			"departure_time": timeOfDayText(seg.Departure),
		}
		if _, err := tx.Exec(ctx, insertSegment, args); err != nil {
			return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.Purchase: segment %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.Purchase: commit: %w", err)
	}
	return ticket, nil
}

func (r *pgTicketRepo) GetByID(ctx context.Context, id int64) (domain.Ticket, error) {
	const q = `
		SELECT id, reference, wallet_id, balance_after, created_at
		FROM tickets
		WHERE id = @id`

	var (
		t   domain.Ticket
		ref pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).
		Scan(&t.ID, &ref, &t.WalletID, &t.Balance, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.GetByID: %w", domain.ErrNotFound)
		}
		return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.GetByID: %w", err)
	}
	t.Reference = uuid.UUID(ref.Bytes)

	const segmentsQ = `
		SELECT station_id, train_id, arrival_time, departure_time
		FROM ticket_segments
		WHERE ticket_id = @ticket_id
		ORDER BY position`

	rows, err := r.db.Query(ctx, segmentsQ, pgx.NamedArgs{"ticket_id": id})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.GetByID: segments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			seg domain.RouteSegment
			arr pgtype.Text
			dep pgtype.Text
		)
		if err := rows.Scan(&seg.StationID, &seg.TrainID, &arr, &dep); err != nil {
			return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.GetByID: scan segment: %w", err)
		}
		seg.Arrival = timeOfDayFromText(arr)
		seg.Departure = timeOfDayFromText(dep)
		t.Segments = append(t.Segments, seg)
	}
	if err := rows.Err(); err != nil {
		return domain.Ticket{}, fmt.Errorf("repo.TicketRepo.GetByID: segment rows: %w", err)
	}

	return t, nil
}
