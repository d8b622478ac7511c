package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samurai-rail/ticketing/internal/domain"
)

// WalletRepo defines the persistence operations for Wallets.
// The debit path is not here: debiting happens only inside the ticket
// purchase transaction (see TicketRepo.Purchase), which keeps the
// balance-mutation discipline in one place.
type WalletRepo interface {
	// Create inserts a new wallet and returns the persisted record.
	Create(ctx context.Context, wallet domain.Wallet) (domain.Wallet, error)

	// GetByID retrieves a single wallet by its integer ID.
	// Returns domain.ErrNotFound if no wallet with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Wallet, error)

	// Credit atomically adds amount to the wallet balance and returns the
	// updated record. Returns domain.ErrNotFound if the wallet does not exist.
	Credit(ctx context.Context, id int64, amount int64) (domain.Wallet, error)
}

// pgWalletRepo is the Postgres implementation of WalletRepo.
type pgWalletRepo struct {
	db db
}

// NewWalletRepo constructs a WalletRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewWalletRepo(db db) WalletRepo {
	return &pgWalletRepo{db: db}
}

func (r *pgWalletRepo) Create(ctx context.Context, wallet domain.Wallet) (domain.Wallet, error) {
	const q = `
		INSERT INTO wallets (id, holder_name, balance)
		VALUES (@id, @holder_name, @balance)
		RETURNING id, holder_name, balance, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":          wallet.ID,
		"holder_name": wallet.HolderName,
		"balance":     wallet.Balance,
	}

	result, err := scanWallet(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("repo.WalletRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgWalletRepo) GetByID(ctx context.Context, id int64) (domain.Wallet, error) {
	const q = `
		SELECT id, holder_name, balance, created_at, updated_at
		FROM wallets
		WHERE id = @id`

	result, err := scanWallet(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("repo.WalletRepo.GetByID: %w", err)
	}
	return result, nil
}

// Credit applies the top-up as a single atomic increment, so concurrent
// top-ups and purchases can never lose an update.
func (r *pgWalletRepo) Credit(ctx context.Context, id int64, amount int64) (domain.Wallet, error) {
	const q = `
		UPDATE wallets
		SET balance    = balance + @amount,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, holder_name, balance, created_at, updated_at`

	result, err := scanWallet(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "amount": amount}))
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("repo.WalletRepo.Credit: %w", err)
	}
	return result, nil
}

// scanWallet maps a single database row into a domain.Wallet.
func scanWallet(s scanner) (domain.Wallet, error) {
	var w domain.Wallet
	err := s.Scan(&w.ID, &w.HolderName, &w.Balance, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Wallet{}, domain.ErrNotFound
		}
		return domain.Wallet{}, err
	}
	return w, nil
}
