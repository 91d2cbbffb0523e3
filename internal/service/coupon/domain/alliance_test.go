package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlliance(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		a, err := NewAlliance(1, 2, "cross promo")
		require.NoError(t, err)
		assert.Equal(t, AlliancePending, a.Status)
		assert.Nil(t, a.RespondedAt)
	})

	t.Run("rejects self alliance", func(t *testing.T) {
		_, err := NewAlliance(1, 1, "")
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestAllianceAccept(t *testing.T) {
	now := time.Now()

	t.Run("receiver accepts from pending", func(t *testing.T) {
		a, _ := NewAlliance(1, 2, "")
		require.NoError(t, a.Accept(2, now))
		assert.Equal(t, AllianceAccepted, a.Status)
		require.NotNil(t, a.RespondedAt)
		assert.Equal(t, now, *a.RespondedAt)
	})

	t.Run("requester cannot accept", func(t *testing.T) {
		a, _ := NewAlliance(1, 2, "")
		require.ErrorIs(t, a.Accept(1, now), ErrForbidden)
		assert.Equal(t, AlliancePending, a.Status)
	})

	t.Run("accept twice fails", func(t *testing.T) {
		a, _ := NewAlliance(1, 2, "")
		require.NoError(t, a.Accept(2, now))
		require.ErrorIs(t, a.Accept(2, now), ErrForbidden)
	})
}

func TestAllianceCancel(t *testing.T) {
	now := time.Now()

	t.Run("requester cancels from pending", func(t *testing.T) {
		a, _ := NewAlliance(1, 2, "")
		require.NoError(t, a.Cancel(1, now))
		assert.Equal(t, AllianceCanceled, a.Status)
	})

	t.Run("receiver cannot cancel", func(t *testing.T) {
		a, _ := NewAlliance(1, 2, "")
		require.ErrorIs(t, a.Cancel(2, now), ErrForbidden)
	})

	t.Run("cannot cancel after accept", func(t *testing.T) {
		a, _ := NewAlliance(1, 2, "")
		require.NoError(t, a.Accept(2, now))
		require.ErrorIs(t, a.Cancel(1, now), ErrForbidden)
	})
}

func TestAllianceSuspendAndReactivate(t *testing.T) {
	now := time.Now()

	t.Run("either party suspends an accepted alliance", func(t *testing.T) {
		a, _ := NewAlliance(1, 2, "")
		require.NoError(t, a.Accept(2, now))
		require.NoError(t, a.Suspend(1, now))
		assert.Equal(t, AllianceSuspended, a.Status)

		require.NoError(t, a.Reactivate(2, now))
		assert.Equal(t, AllianceAccepted, a.Status)
	})

	t.Run("outsider cannot suspend", func(t *testing.T) {
		a, _ := NewAlliance(1, 2, "")
		require.NoError(t, a.Accept(2, now))
		require.ErrorIs(t, a.Suspend(99, now), ErrForbidden)
	})

	t.Run("pending alliance cannot be suspended", func(t *testing.T) {
		a, _ := NewAlliance(1, 2, "")
		require.ErrorIs(t, a.Suspend(1, now), ErrForbidden)
	})
}

func TestAllianceUpdateReason(t *testing.T) {
	a, _ := NewAlliance(1, 2, "old")
	require.NoError(t, a.UpdateReason(2, "  new reason  "))
	assert.Equal(t, "new reason", a.Reason)

	require.ErrorIs(t, a.UpdateReason(99, "x"), ErrForbidden)
}
