package handler

import (
	"encoding/json"
	"net/http"

	"github.com/samurai-rail/ticketing/internal/domain"
)

// createUserRequest is the body for POST /api/users. Registering a user
// creates their wallet; the initial balance defaults to zero.
type createUserRequest struct {
	UserID  int64  `json:"user_id"`
	Name    string `json:"user_name"`
	Balance int64  `json:"balance"`
}

// topUpRequest is the body for PUT /api/wallets/{wallet_id}.
type topUpRequest struct {
	Recharge int64 `json:"recharge"`
}

// walletResponse is the wire shape for wallet reads and mutations.
type walletResponse struct {
	WalletID int64      `json:"wallet_id"`
	Balance  int64      `json:"balance"`
	User     walletUser `json:"wallet_user"`
}

type walletUser struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"user_name"`
}

// CreateUser handles POST /api/users.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	created, err := s.wallets.Create(r.Context(), domain.Wallet{
		ID:         req.UserID,
		HolderName: req.Name,
		Balance:    req.Balance,
	})
	if err != nil {
		respondError(w, r, err, "wallet not found")
		return
	}

	writeJSON(w, http.StatusCreated, walletToResponse(created))
}

// GetWallet handles GET /api/wallets/{wallet_id}.
func (s *Server) GetWallet(w http.ResponseWriter, r *http.Request) {
	walletID, err := pathID(r, "wallet_id")
	if err != nil {
		requestError(w, "invalid wallet id")
		return
	}

	wallet, err := s.wallets.GetByID(r.Context(), walletID)
	if err != nil {
		respondError(w, r, err, "wallet not found")
		return
	}

	writeJSON(w, http.StatusOK, walletToResponse(wallet))
}

// TopUpWallet handles PUT /api/wallets/{wallet_id}.
// The recharge amount must be within the allowed top-up range.
func (s *Server) TopUpWallet(w http.ResponseWriter, r *http.Request) {
	walletID, err := pathID(r, "wallet_id")
	if err != nil {
		requestError(w, "invalid wallet id")
		return
	}

	var req topUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	wallet, err := s.wallets.TopUp(r.Context(), walletID, req.Recharge)
	if err != nil {
		respondError(w, r, err, "wallet not found")
		return
	}

	writeJSON(w, http.StatusOK, walletToResponse(wallet))
}

// walletToResponse converts a domain.Wallet into the wire shape.
func walletToResponse(wallet domain.Wallet) walletResponse {
	return walletResponse{
		WalletID: wallet.ID,
		Balance:  wallet.Balance,
		User: walletUser{
			UserID: wallet.ID,
			Name:   wallet.HolderName,
		},
	}
}
