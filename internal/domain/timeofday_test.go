package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samurai-rail/ticketing/internal/domain"
)

func TestParseTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:05", "12:30", "23:59"}
	for _, s := range valid {
		got, err := domain.ParseTimeOfDay(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, got.String())
	}

	invalid := []string{"", "9:05", "09:5", "24:00", "12:60", "ab:cd", "12-30", "12:300"}
	for _, s := range invalid {
		_, err := domain.ParseTimeOfDay(s)
		assert.Error(t, err, s)
	}
}

func TestTimeOfDay_ordering(t *testing.T) {
	a, b := domain.TimeOfDay("09:30"), domain.TimeOfDay("10:05")

	assert.True(t, b.After(a))
	assert.True(t, a.Before(b))
	assert.False(t, a.After(a), "After is strict")
	assert.False(t, a.Before(a), "Before is strict")
}
