package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentSource(t *testing.T) {
	s, err := NewPaymentSource(5, "CARD")
	require.NoError(t, err)
	assert.Equal(t, SourceCard, s.SourceType)
	assert.Equal(t, SourceActive, s.Status)

	_, err = NewPaymentSource(0, "card")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewPaymentSource(5, "crypto")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPaymentSourceSetCardDetails(t *testing.T) {
	t.Run("fills card fields", func(t *testing.T) {
		s, _ := NewPaymentSource(5, "card")
		require.NoError(t, s.SetCardDetails("src_abc", "VISA", "4242", 11, 2027))
		assert.Equal(t, "src_abc", s.ProviderSourceID)
		assert.Equal(t, "visa", s.Brand)
		assert.Equal(t, "4242", s.LastFour)
	})

	t.Run("only card sources accept card details", func(t *testing.T) {
		s, _ := NewPaymentSource(5, "wallet")
		require.ErrorIs(t, s.SetCardDetails("src_abc", "visa", "4242", 11, 2027), ErrInvalidArgument)
	})

	t.Run("last_four must be four characters", func(t *testing.T) {
		s, _ := NewPaymentSource(5, "card")
		require.ErrorIs(t, s.SetCardDetails("src_abc", "visa", "424", 11, 2027), ErrInvalidArgument)
	})

	t.Run("expiry bounds", func(t *testing.T) {
		s, _ := NewPaymentSource(5, "card")
		require.ErrorIs(t, s.SetCardDetails("src_abc", "visa", "4242", 13, 2027), ErrInvalidArgument)
		require.ErrorIs(t, s.SetCardDetails("src_abc", "visa", "4242", 11, 27), ErrInvalidArgument)
	})

	t.Run("provider token required", func(t *testing.T) {
		s, _ := NewPaymentSource(5, "card")
		require.ErrorIs(t, s.SetCardDetails("  ", "visa", "4242", 11, 2027), ErrInvalidArgument)
	})
}

func TestPaymentSourceDisable(t *testing.T) {
	s, _ := NewPaymentSource(5, "account_money")
	s.Disable()
	assert.Equal(t, SourceDisabled, s.Status)
}
