package domain

import "time"

// Wallet is a user's prepaid balance, in whole monetary units.
// The balance is mutated only by top-up (atomic increment) and by ticket
// purchase (conditional debit); it never goes negative.
type Wallet struct {
	ID         int64     `json:"wallet_id"`
	HolderName string    `json:"holder_name"`
	Balance    int64     `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TopUpMin and TopUpMax bound a single wallet recharge amount.
const (
	TopUpMin int64 = 100
	TopUpMax int64 = 10000
)
