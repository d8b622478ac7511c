package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/samurai-rail/ticketing/internal/domain"
	"github.com/samurai-rail/ticketing/internal/repo"
)

// WalletService implements business logic for Wallet operations.
// Ticket purchase debits are not here — see TicketService.
type WalletService struct {
	wallets repo.WalletRepo
}

// NewWalletService constructs a WalletService backed by the provided repo.
func NewWalletService(wallets repo.WalletRepo) *WalletService {
	return &WalletService{wallets: wallets}
}

// Create validates and persists a new wallet for a registered user.
// Returns domain.ErrValidation if input violates business rules.
func (s *WalletService) Create(ctx context.Context, wallet domain.Wallet) (domain.Wallet, error) {
	if wallet.ID <= 0 {
		return domain.Wallet{}, fmt.Errorf("%w: user_id must be positive", domain.ErrValidation)
	}
	if strings.TrimSpace(wallet.HolderName) == "" {
		return domain.Wallet{}, fmt.Errorf("%w: user_name is required", domain.ErrValidation)
	}
	if wallet.Balance < 0 {
		return domain.Wallet{}, fmt.Errorf("%w: balance must not be negative", domain.ErrValidation)
	}
	result, err := s.wallets.Create(ctx, wallet)
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("service.WalletService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single wallet by ID.
// Returns domain.ErrNotFound if no wallet with that ID exists.
func (s *WalletService) GetByID(ctx context.Context, id int64) (domain.Wallet, error) {
	result, err := s.wallets.GetByID(ctx, id)
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("service.WalletService.GetByID: %w", err)
	}
	return result, nil
}

// TopUp adds amount to the wallet balance as one atomic increment and returns
// the updated wallet. The amount must lie within [domain.TopUpMin,
// domain.TopUpMax]; anything outside is rejected with domain.ErrValidation.
func (s *WalletService) TopUp(ctx context.Context, id int64, amount int64) (domain.Wallet, error) {
	if amount < domain.TopUpMin || amount > domain.TopUpMax {
		return domain.Wallet{}, fmt.Errorf("%w: invalid amount: %d", domain.ErrValidation, amount)
	}
	result, err := s.wallets.Credit(ctx, id, amount)
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("service.WalletService.TopUp: %w", err)
	}
	return result, nil
}
