package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samurai-rail/ticketing/internal/domain"
	"github.com/samurai-rail/ticketing/internal/handler"
)

// mockWalletServicer is a test double for handler.WalletServicer.
type mockWalletServicer struct {
	create  func(ctx context.Context, wallet domain.Wallet) (domain.Wallet, error)
	getByID func(ctx context.Context, id int64) (domain.Wallet, error)
	topUp   func(ctx context.Context, id int64, amount int64) (domain.Wallet, error)
}

func (m *mockWalletServicer) Create(ctx context.Context, wallet domain.Wallet) (domain.Wallet, error) {
	return m.create(ctx, wallet)
}
func (m *mockWalletServicer) GetByID(ctx context.Context, id int64) (domain.Wallet, error) {
	return m.getByID(ctx, id)
}
func (m *mockWalletServicer) TopUp(ctx context.Context, id int64, amount int64) (domain.Wallet, error) {
	return m.topUp(ctx, id, amount)
}

var _ handler.WalletServicer = (*mockWalletServicer)(nil)

// walletEnvelope mirrors the wallet wire shape.
type walletEnvelope struct {
	WalletID int64 `json:"wallet_id"`
	Balance  int64 `json:"balance"`
	User     struct {
		UserID int64  `json:"user_id"`
		Name   string `json:"user_name"`
	} `json:"wallet_user"`
}

// ---- POST /api/users -------------------------------------------------------

func TestCreateUser_201(t *testing.T) {
	svc := &mockWalletServicer{
		create: func(_ context.Context, w domain.Wallet) (domain.Wallet, error) {
			assert.Equal(t, int64(7), w.ID)
			assert.Equal(t, "Kenshin", w.HolderName)
			return w, nil
		},
	}
	h := newRouter(nil, nil, svc, nil)

	rec := doRequest(t, h, http.MethodPost, "/api/users", jsonBody(t, map[string]any{
		"user_id":   7,
		"user_name": "Kenshin",
		"balance":   50,
	}))

	require.Equal(t, http.StatusCreated, rec.Code)

	var got walletEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(7), got.WalletID)
	assert.Equal(t, int64(50), got.Balance)
	assert.Equal(t, "Kenshin", got.User.Name)
}

// ---- GET /api/wallets/{wallet_id} ------------------------------------------

func TestGetWallet_200(t *testing.T) {
	svc := &mockWalletServicer{
		getByID: func(_ context.Context, id int64) (domain.Wallet, error) {
			return domain.Wallet{ID: id, HolderName: "Kenshin", Balance: 125}, nil
		},
	}
	h := newRouter(nil, nil, svc, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/wallets/7", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var got walletEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(125), got.Balance)
	assert.Equal(t, int64(7), got.User.UserID)
}

func TestGetWallet_404(t *testing.T) {
	svc := &mockWalletServicer{
		getByID: func(context.Context, int64) (domain.Wallet, error) {
			return domain.Wallet{}, domain.ErrNotFound
		},
	}
	h := newRouter(nil, nil, svc, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/wallets/99", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeError(t, rec)
	assert.Equal(t, "not_found", env.Error.Code)
	assert.Equal(t, "wallet not found", env.Error.Message)
}

// ---- PUT /api/wallets/{wallet_id} ------------------------------------------

func TestTopUpWallet_200(t *testing.T) {
	svc := &mockWalletServicer{
		topUp: func(_ context.Context, id int64, amount int64) (domain.Wallet, error) {
			assert.Equal(t, int64(500), amount)
			return domain.Wallet{ID: id, HolderName: "Kenshin", Balance: 550}, nil
		},
	}
	h := newRouter(nil, nil, svc, nil)

	rec := doRequest(t, h, http.MethodPut, "/api/wallets/7", jsonBody(t, map[string]any{
		"recharge": 500,
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var got walletEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(550), got.Balance)
}

func TestTopUpWallet_422_OutOfRange(t *testing.T) {
	svc := &mockWalletServicer{
		topUp: func(context.Context, int64, int64) (domain.Wallet, error) {
			return domain.Wallet{}, domain.ErrValidation
		},
	}
	h := newRouter(nil, nil, svc, nil)

	rec := doRequest(t, h, http.MethodPut, "/api/wallets/7", jsonBody(t, map[string]any{
		"recharge": 50,
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Error.Code)
}
