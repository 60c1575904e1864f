package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jeewifi-backend/models"
)

func newTestSessions(store *MemoryStore) *Sessions {
	return NewSessions(store, NopPublisher{}, testLogger())
}

func timedOpen(mac string, seconds int) OpenRequest {
	return OpenRequest{
		Identifier: Identifier{MacAddress: mac},
		AuthMethod: models.AuthMethodVoucher,
		Allowance:  &Allowance{TimeLimitSeconds: intPtr(seconds)},
	}
}

func TestOpenRequiresIdentifierAndAllowance(t *testing.T) {
	sessions := newTestSessions(NewMemoryStore())
	ctx := context.Background()

	_, err := sessions.Open(ctx, OpenRequest{Allowance: &Allowance{}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = sessions.Open(ctx, OpenRequest{Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:ff"}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOpenReturnsExistingLiveSession(t *testing.T) {
	store := NewMemoryStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	first, err := sessions.Open(ctx, timedOpen("AA:BB:CC:DD:EE:FF", 3600))
	require.NoError(t, err)

	// Page reload, duplicate tab, impatient double-click: same session back.
	second, err := sessions.Open(ctx, timedOpen("aa:bb:cc:dd:ee:ff", 3600))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	active, err := sessions.List(ctx, models.SessionStatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestOpenReplacesExhaustedSession(t *testing.T) {
	store := NewMemoryStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	first, err := sessions.Open(ctx, timedOpen("aa:bb:cc:dd:ee:ff", 60))
	require.NoError(t, err)
	require.NoError(t, sessions.Tick(ctx, first.ID, 60, 0))

	second, err := sessions.Open(ctx, timedOpen("aa:bb:cc:dd:ee:ff", 3600))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	old, err := sessions.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusExpired, old.Status)
	assert.Equal(t, models.SessionStatusActive, second.Status)
}

func TestTickExpiresAtTimeLimit(t *testing.T) {
	store := NewMemoryStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	sess, err := sessions.Open(ctx, timedOpen("aa:bb:cc:dd:ee:ff", 7200))
	require.NoError(t, err)

	require.NoError(t, sessions.Tick(ctx, sess.ID, 7199, 0))
	got, err := sessions.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusActive, got.Status)

	require.NoError(t, sessions.Tick(ctx, sess.ID, 1, 0))
	got, err = sessions.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusExpired, got.Status)
	assert.Equal(t, 7200, got.TimeUsedSeconds)
	require.NotNil(t, got.SessionEnd)
}

func TestTickExpiresAtDataCap(t *testing.T) {
	store := NewMemoryStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	sess, err := sessions.Open(ctx, OpenRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:ff"},
		AuthMethod: models.AuthMethodPassword,
		Allowance:  &Allowance{DataLimitMb: floatPtr(100)},
	})
	require.NoError(t, err)

	require.NoError(t, sessions.Tick(ctx, sess.ID, 30, 99.5))
	got, err := sessions.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusActive, got.Status)

	require.NoError(t, sessions.Tick(ctx, sess.ID, 30, 0.5))
	got, err = sessions.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusExpired, got.Status, "hitting either cap is fatal")
}

func TestTickDroppedWhilePaused(t *testing.T) {
	store := NewMemoryStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	sess, err := sessions.Open(ctx, timedOpen("aa:bb:cc:dd:ee:ff", 3600))
	require.NoError(t, err)
	require.NoError(t, sessions.Pause(ctx, sess.ID))

	require.NoError(t, sessions.Tick(ctx, sess.ID, 120, 10))

	got, err := sessions.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusPaused, got.Status)
	assert.Equal(t, 0, got.TimeUsedSeconds, "paused sessions accrue nothing")
	assert.Equal(t, float64(0), got.DataUsedMb)
}

func TestPauseResumeLifecycle(t *testing.T) {
	store := NewMemoryStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	sess, err := sessions.Open(ctx, timedOpen("aa:bb:cc:dd:ee:ff", 3600))
	require.NoError(t, err)

	require.NoError(t, sessions.Pause(ctx, sess.ID))
	require.NoError(t, sessions.Pause(ctx, sess.ID), "pause is idempotent")

	require.NoError(t, sessions.Resume(ctx, sess.ID))
	require.NoError(t, sessions.Resume(ctx, sess.ID), "resume is idempotent")

	require.NoError(t, sessions.Close(ctx, sess.ID))
	require.NoError(t, sessions.Close(ctx, sess.ID), "close is idempotent")

	assert.ErrorIs(t, sessions.Pause(ctx, sess.ID), ErrValidation, "terminal states reject pause")
	assert.ErrorIs(t, sessions.Resume(ctx, sess.ID), ErrValidation, "terminal states reject resume")

	got, err := sessions.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusDisconnected, got.Status)
}

func TestCloseWinsOverLateTick(t *testing.T) {
	store := NewMemoryStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	sess, err := sessions.Open(ctx, timedOpen("aa:bb:cc:dd:ee:ff", 3600))
	require.NoError(t, err)
	require.NoError(t, sessions.Close(ctx, sess.ID))

	// A tick that raced in after the close must not resurrect or mutate.
	require.NoError(t, sessions.Tick(ctx, sess.ID, 60, 5))

	got, err := sessions.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusDisconnected, got.Status)
	assert.Equal(t, 0, got.TimeUsedSeconds)
}

func TestRemainingBudgets(t *testing.T) {
	store := NewMemoryStore()
	sessions := newTestSessions(store)
	ctx := context.Background()

	metered, err := sessions.Open(ctx, OpenRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:01"},
		AuthMethod: models.AuthMethodVoucher,
		Allowance:  &Allowance{TimeLimitSeconds: intPtr(600), DataLimitMb: floatPtr(50)},
	})
	require.NoError(t, err)
	require.NoError(t, sessions.Tick(ctx, metered.ID, 100, 20))

	left, limited, err := sessions.RemainingTime(ctx, metered.ID)
	require.NoError(t, err)
	assert.True(t, limited)
	assert.Equal(t, 500*time.Second, left)

	mb, limited, err := sessions.RemainingData(ctx, metered.ID)
	require.NoError(t, err)
	assert.True(t, limited)
	assert.Equal(t, float64(30), mb)

	unmetered, err := sessions.Open(ctx, OpenRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:02"},
		AuthMethod: models.AuthMethodMAC,
		Allowance:  &Allowance{},
	})
	require.NoError(t, err)

	_, limited, err = sessions.RemainingTime(ctx, unmetered.ID)
	require.NoError(t, err)
	assert.False(t, limited)

	_, limited, err = sessions.RemainingData(ctx, unmetered.ID)
	require.NoError(t, err)
	assert.False(t, limited)
}
