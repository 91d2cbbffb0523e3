package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(1, 2, decimal.RequireFromString("150.00"), "", "api", "MercadoPago", "prod")
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("defaults and normalization", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Equal(t, "PEN", o.Currency)
		assert.Equal(t, OrderPending, o.Status)
		assert.Equal(t, "mercadopago", o.Provider)
		assert.Equal(t, EnvProd, o.Env)
	})

	t.Run("currency must be three letters", func(t *testing.T) {
		_, err := NewOrder(1, 2, decimal.RequireFromString("10"), "SOLES", "api", "mp", "test")
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("amount must be positive", func(t *testing.T) {
		_, err := NewOrder(1, 2, decimal.Zero, "PEN", "api", "mp", "test")
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("unknown flow", func(t *testing.T) {
		_, err := NewOrder(1, 2, decimal.RequireFromString("10"), "PEN", "direct", "mp", "test")
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestOrderSetCheckoutContext(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.SetCheckoutContext(7, "pay_123", "idem-1"))
	assert.Equal(t, OrderProcessing, o.Status)
	require.NotNil(t, o.ProviderAccountID)
	assert.Equal(t, int64(7), *o.ProviderAccountID)
	assert.Equal(t, "pay_123", o.ProviderPaymentID)

	// 已离开 PENDING 后不再允许挂上下文
	require.ErrorIs(t, o.SetCheckoutContext(7, "pay_456", "idem-2"), ErrForbidden)
}

func TestOrderMarkPaid(t *testing.T) {
	o := newTestOrder(t)
	first := time.Now()
	o.MarkPaid("credit_card", "VISA", "4242", first)

	assert.Equal(t, OrderPaid, o.Status)
	assert.Equal(t, "visa", o.MethodBrand)
	assert.Equal(t, "4242", o.MethodLastFour)
	require.NotNil(t, o.PaidAt)
	assert.Equal(t, first, *o.PaidAt)

	// 重复标记不覆盖首个 paid_at
	o.MarkPaid("credit_card", "master", "1111", first.Add(time.Minute))
	assert.Equal(t, first, *o.PaidAt)
	assert.Equal(t, "visa", o.MethodBrand)
}

func TestOrderMarkFailed(t *testing.T) {
	o := newTestOrder(t)
	o.Metadata = map[string]any{"cart_id": "c-1"}
	o.MarkFailed("cc_rejected", "insufficient funds")

	assert.Equal(t, OrderFailed, o.Status)
	assert.Equal(t, "cc_rejected", o.Metadata["error_code"])
	assert.Equal(t, "insufficient funds", o.Metadata["error_message"])
	assert.Equal(t, "c-1", o.Metadata["cart_id"])
}

func TestOrderCancel(t *testing.T) {
	t.Run("pending order cancels", func(t *testing.T) {
		o := newTestOrder(t)
		o.Cancel()
		assert.Equal(t, OrderCanceled, o.Status)
	})

	t.Run("paid order is never canceled", func(t *testing.T) {
		o := newTestOrder(t)
		o.MarkPaid("wallet", "", "", time.Now())
		o.Cancel()
		assert.Equal(t, OrderPaid, o.Status)
	})
}
