package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jeewifi-backend/models"
)

func TestAdvanceExpiresOverBudgetSessions(t *testing.T) {
	store := NewMemoryStore()
	sessions := newTestSessions(store)
	ledger := newTestLedger(store)
	clock := NewQuotaClock(store, sessions, ledger, time.Second, time.Minute, testLogger())
	ctx := context.Background()

	short, err := sessions.Open(ctx, timedOpen("aa:bb:cc:dd:ee:01", 2))
	require.NoError(t, err)
	long, err := sessions.Open(ctx, OpenRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:02"},
		AuthMethod: models.AuthMethodMAC,
		Allowance:  &Allowance{},
	})
	require.NoError(t, err)

	clock.Advance(ctx, 1)
	got, err := sessions.Get(ctx, short.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusActive, got.Status)

	clock.Advance(ctx, 1)
	got, err = sessions.Get(ctx, short.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusExpired, got.Status)
	assert.Equal(t, 2, got.TimeUsedSeconds)

	got, err = sessions.Get(ctx, long.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusActive, got.Status, "unmetered sessions outlive any number of ticks")
}

func TestAdvanceSkipsPausedAndTerminal(t *testing.T) {
	store := NewMemoryStore()
	sessions := newTestSessions(store)
	ledger := newTestLedger(store)
	clock := NewQuotaClock(store, sessions, ledger, time.Second, time.Minute, testLogger())
	ctx := context.Background()

	paused, err := sessions.Open(ctx, timedOpen("aa:bb:cc:dd:ee:01", 3600))
	require.NoError(t, err)
	require.NoError(t, sessions.Pause(ctx, paused.ID))

	closed, err := sessions.Open(ctx, timedOpen("aa:bb:cc:dd:ee:02", 3600))
	require.NoError(t, err)
	require.NoError(t, sessions.Close(ctx, closed.ID))

	clock.Advance(ctx, 30)

	got, err := sessions.Get(ctx, paused.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TimeUsedSeconds)

	got, err = sessions.Get(ctx, closed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusDisconnected, got.Status)
	assert.Equal(t, 0, got.TimeUsedSeconds)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	store := NewMemoryStore()
	sessions := newTestSessions(store)
	ledger := newTestLedger(store)
	clock := NewQuotaClock(store, sessions, ledger, time.Second, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		clock.Run(ctx)
		close(done)
	}()

	sess, err := sessions.Open(ctx, timedOpen("aa:bb:cc:dd:ee:ff", 1))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		got, err := sessions.Get(context.Background(), sess.ID)
		return err == nil && got.Status == models.SessionStatusExpired
	}, 5*time.Second, 50*time.Millisecond, "the clock expires a 1-second budget on its own")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
