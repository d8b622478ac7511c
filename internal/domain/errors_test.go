package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samurai-rail/ticketing/internal/domain"
)

func TestInsufficientFundsError(t *testing.T) {
	err := &domain.InsufficientFundsError{Balance: 5, Fare: 25}

	assert.Equal(t, int64(20), err.Shortage())
	assert.Equal(t, "insufficient funds: recharge 20 to purchase", err.Error())
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Wrapping preserves both the sentinel match and the concrete type.
	wrapped := fmt.Errorf("service: %w", err)
	assert.ErrorIs(t, wrapped, domain.ErrInsufficientFunds)

	var ife *domain.InsufficientFundsError
	assert.True(t, errors.As(wrapped, &ife))
	assert.Equal(t, int64(20), ife.Shortage())
}
