package domain

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDeliveryKey(t *testing.T) {
	body := []byte(`{"id":1}`)

	t.Run("prefers request id header", func(t *testing.T) {
		key := DeriveDeliveryKey(map[string]string{
			"X-Request-Id":      "req-1",
			"X-Idempotency-Key": "idem-1",
		}, body)
		assert.Equal(t, "req-1", key)
	})

	t.Run("header lookup is case insensitive", func(t *testing.T) {
		key := DeriveDeliveryKey(map[string]string{"x-request-id": "req-2"}, body)
		assert.Equal(t, "req-2", key)
	})

	t.Run("falls back to body hash", func(t *testing.T) {
		sum := sha256.Sum256(body)
		key := DeriveDeliveryKey(nil, body)
		assert.Equal(t, hex.EncodeToString(sum[:]), key)
	})

	t.Run("identical bodies without headers collapse", func(t *testing.T) {
		assert.Equal(t, DeriveDeliveryKey(nil, body), DeriveDeliveryKey(map[string]string{}, body))
	})
}

func TestDeriveEnvironment(t *testing.T) {
	t.Run("live_mode true means prod", func(t *testing.T) {
		env, err := DeriveEnvironment(map[string]any{"live_mode": true}, "")
		require.NoError(t, err)
		assert.Equal(t, EnvProd, env)
	})

	t.Run("absent live_mode means test", func(t *testing.T) {
		env, err := DeriveEnvironment(map[string]any{}, "")
		require.NoError(t, err)
		assert.Equal(t, EnvTest, env)
	})

	t.Run("override wins", func(t *testing.T) {
		env, err := DeriveEnvironment(map[string]any{"live_mode": true}, "test")
		require.NoError(t, err)
		assert.Equal(t, EnvTest, env)
	})

	t.Run("bad override fails", func(t *testing.T) {
		_, err := DeriveEnvironment(map[string]any{}, "staging")
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestExtractEventFields(t *testing.T) {
	t.Run("mercadopago style payload", func(t *testing.T) {
		topic, action, resourceID := ExtractEventFields(map[string]any{
			"type":   "payment",
			"action": "payment.updated",
			"data":   map[string]any{"id": "12345"},
		})
		assert.Equal(t, "payment", topic)
		assert.Equal(t, "payment.updated", action)
		assert.Equal(t, "12345", resourceID)
	})

	t.Run("numeric id stringified", func(t *testing.T) {
		_, _, resourceID := ExtractEventFields(map[string]any{
			"data": map[string]any{"id": float64(987654321)},
		})
		assert.Equal(t, "987654321", resourceID)
	})

	t.Run("topic and resource fallbacks", func(t *testing.T) {
		topic, _, resourceID := ExtractEventFields(map[string]any{
			"topic":    "merchant_order",
			"resource": map[string]any{"id": "mo-1"},
		})
		assert.Equal(t, "merchant_order", topic)
		assert.Equal(t, "mo-1", resourceID)
	})

	t.Run("top level id as last resort", func(t *testing.T) {
		_, _, resourceID := ExtractEventFields(map[string]any{"id": "ev-9"})
		assert.Equal(t, "ev-9", resourceID)
	})
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"id":1}`)
	secret := "shh"
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	good := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	t.Run("no secret means unverified", func(t *testing.T) {
		assert.Nil(t, VerifySignature("", body, good))
	})

	t.Run("matching signature", func(t *testing.T) {
		valid := VerifySignature(secret, body, good)
		require.NotNil(t, valid)
		assert.True(t, *valid)
	})

	t.Run("wrong signature", func(t *testing.T) {
		valid := VerifySignature(secret, body, "sha256=deadbeef")
		require.NotNil(t, valid)
		assert.False(t, *valid)
	})

	t.Run("empty header", func(t *testing.T) {
		valid := VerifySignature(secret, body, "")
		require.NotNil(t, valid)
		assert.False(t, *valid)
	})
}

func TestWebhookEventMarkProcessed(t *testing.T) {
	ev, err := NewWebhookEvent("MercadoPago", EnvTest, "req-1")
	require.NoError(t, err)
	assert.Equal(t, "mercadopago", ev.Provider)

	first := time.Now()
	assert.True(t, ev.MarkProcessed(first))
	assert.False(t, ev.MarkProcessed(first.Add(time.Minute)))
	require.NotNil(t, ev.ProcessedAt)
	assert.Equal(t, first, *ev.ProcessedAt)
}

func TestNewWebhookEventValidation(t *testing.T) {
	_, err := NewWebhookEvent("", EnvTest, "k")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewWebhookEvent("mp", EnvTest, "  ")
	require.ErrorIs(t, err, ErrInvalidArgument)
}
