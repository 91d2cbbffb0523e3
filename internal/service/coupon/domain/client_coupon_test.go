package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientCoupon(t *testing.T) {
	t.Run("generates code when absent", func(t *testing.T) {
		c, err := NewClientCoupon(10, 20, "")
		require.NoError(t, err)
		assert.NotEmpty(t, c.Code)
		assert.Equal(t, ClientCouponActive, c.Status)
	})

	t.Run("keeps explicit code", func(t *testing.T) {
		c, err := NewClientCoupon(10, 20, " WELCOME10 ")
		require.NoError(t, err)
		assert.Equal(t, "WELCOME10", c.Code)
	})

	t.Run("rejects non-positive ids", func(t *testing.T) {
		_, err := NewClientCoupon(0, 20, "")
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestClientCouponIsActiveNow(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)
	later := now.Add(time.Hour)

	t.Run("unbounded window is active", func(t *testing.T) {
		c, _ := NewClientCoupon(10, 20, "")
		assert.True(t, c.IsActiveNow(now))
	})

	t.Run("before window start is inactive", func(t *testing.T) {
		c, _ := NewClientCoupon(10, 20, "")
		c.ValidFrom = &later
		assert.False(t, c.IsActiveNow(now))
	})

	t.Run("after window end is inactive", func(t *testing.T) {
		c, _ := NewClientCoupon(10, 20, "")
		c.ValidTo = &earlier
		assert.False(t, c.IsActiveNow(now))
	})

	t.Run("used coupon is inactive inside window", func(t *testing.T) {
		c, _ := NewClientCoupon(10, 20, "")
		require.NoError(t, c.MarkUsed(now))
		assert.False(t, c.IsActiveNow(now))
	})
}

func TestClientCouponMarkUsed(t *testing.T) {
	now := time.Now()
	c, _ := NewClientCoupon(10, 20, "")

	require.NoError(t, c.MarkUsed(now))
	assert.Equal(t, ClientCouponUsed, c.Status)
	require.NotNil(t, c.UsedAt)

	require.ErrorIs(t, c.MarkUsed(now), ErrForbidden)
}
