package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samurai-rail/ticketing/internal/domain"
	"github.com/samurai-rail/ticketing/internal/repo"
	"github.com/samurai-rail/ticketing/testutil"
)

// newTestTicketRepos opens a transaction against the test database and
// returns wallet and ticket repos sharing it. Tickets reference wallets, so
// every purchase test needs a wallet first.
func newTestTicketRepos(t *testing.T) (repo.WalletRepo, repo.TicketRepo) {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewWalletRepo(tx), repo.NewTicketRepo(tx)
}

func segmentsFixture() []domain.RouteSegment {
	return []domain.RouteSegment{
		{StationID: 1, TrainID: 1, Departure: timeText("11:00")},
		{StationID: 3, TrainID: 1, Arrival: timeText("11:55"), Departure: timeText("12:00")},
		{StationID: 5, TrainID: 1, Arrival: timeText("12:25")},
	}
}

func TestTicketRepo_Purchase(t *testing.T) {
	wallets, tickets := newTestTicketRepos(t)
	ctx := context.Background()

	wallet, err := wallets.Create(ctx, walletFixture())
	require.NoError(t, err)

	got, err := tickets.Purchase(ctx, wallet, 25, segmentsFixture())

	require.NoError(t, err)
	assert.Positive(t, got.ID, "ID comes from the database sequence")
	assert.NotEqual(t, uuid.Nil, got.Reference)
	assert.Equal(t, wallet.ID, got.WalletID)
	assert.Equal(t, int64(25), got.Balance, "50 minus the 25 fare")
	assert.False(t, got.CreatedAt.IsZero())

	// The debit is visible on the wallet.
	after, err := wallets.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), after.Balance)
}

func TestTicketRepo_Purchase_StaleBalanceConflicts(t *testing.T) {
	wallets, tickets := newTestTicketRepos(t)
	ctx := context.Background()

	wallet, err := wallets.Create(ctx, walletFixture())
	require.NoError(t, err)

	// The balance moves after the caller observed it: the conditional debit
	// must refuse to apply against the stale value.
	_, err = wallets.Credit(ctx, wallet.ID, 500)
	require.NoError(t, err)

	_, err = tickets.Purchase(ctx, wallet, 25, segmentsFixture())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// No side effects: the credited balance is untouched and no ticket rows
	// were left behind.
	after, err := wallets.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(550), after.Balance)
}

func TestTicketRepo_Purchase_SecondObserverLoses(t *testing.T) {
	wallets, tickets := newTestTicketRepos(t)
	ctx := context.Background()

	wallet, err := wallets.Create(ctx, walletFixture())
	require.NoError(t, err)

	// Two purchases race from the same observed balance. Exactly one wins.
	first, err := tickets.Purchase(ctx, wallet, 25, segmentsFixture())
	require.NoError(t, err)

	_, err = tickets.Purchase(ctx, wallet, 25, segmentsFixture())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	after, err := wallets.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), after.Balance, "only one debit applied")
	assert.Equal(t, first.Balance, after.Balance)
}

func TestTicketRepo_Purchase_UnknownWallet(t *testing.T) {
	_, tickets := newTestTicketRepos(t)

	ghost := domain.Wallet{ID: 424242, Balance: 100}
	_, err := tickets.Purchase(context.Background(), ghost, 25, segmentsFixture())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTicketRepo_Purchase_IDsStrictlyIncrease(t *testing.T) {
	wallets, tickets := newTestTicketRepos(t)
	ctx := context.Background()

	wallet, err := wallets.Create(ctx, walletFixture())
	require.NoError(t, err)

	first, err := tickets.Purchase(ctx, wallet, 10, segmentsFixture())
	require.NoError(t, err)

	// Re-read the wallet so the second purchase observes the real balance.
	wallet, err = wallets.GetByID(ctx, wallet.ID)
	require.NoError(t, err)

	second, err := tickets.Purchase(ctx, wallet, 10, segmentsFixture())
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
	assert.NotEqual(t, first.Reference, second.Reference)
}

func TestTicketRepo_GetByID(t *testing.T) {
	wallets, tickets := newTestTicketRepos(t)
	ctx := context.Background()

	wallet, err := wallets.Create(ctx, walletFixture())
	require.NoError(t, err)

	created, err := tickets.Purchase(ctx, wallet, 25, segmentsFixture())
	require.NoError(t, err)

	got, err := tickets.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Reference, got.Reference)
	assert.Equal(t, int64(25), got.Balance)
	require.Len(t, got.Segments, 3)
	assert.Equal(t, int64(1), got.Segments[0].StationID)
	assert.Nil(t, got.Segments[0].Arrival)
	assert.Equal(t, timeText("12:25"), got.Segments[2].Arrival)
	assert.Nil(t, got.Segments[2].Departure)
}

func TestTicketRepo_GetByID_NotFound(t *testing.T) {
	_, tickets := newTestTicketRepos(t)

	_, err := tickets.GetByID(context.Background(), 424242)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
