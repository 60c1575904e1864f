package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jeewifi-backend/models"
)

func TestIsBlockedPermanentEntry(t *testing.T) {
	store := NewMemoryStore()
	policy := NewPolicy(store)
	ctx := context.Background()

	err := policy.AddBlacklistEntry(ctx, &models.BlacklistEntry{
		MacAddress:  "AA:BB:CC:DD:EE:FF",
		Reason:      "abuse",
		IsPermanent: true,
	})
	require.NoError(t, err)

	blocked, err := policy.IsBlocked(ctx, Identifier{MacAddress: "aa:bb:cc:dd:ee:ff"})
	require.NoError(t, err)
	assert.True(t, blocked, "permanent entries match case-insensitively forever")

	blocked, err = policy.IsBlocked(ctx, Identifier{MacAddress: "11:22:33:44:55:66"})
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestIsBlockedTemporaryEntryLapses(t *testing.T) {
	store := NewMemoryStore()
	policy := NewPolicy(store)
	ctx := context.Background()

	expires := time.Now().Add(time.Hour)
	err := policy.AddBlacklistEntry(ctx, &models.BlacklistEntry{
		PhoneNumber: "+254700000001",
		Reason:      "unpaid bill",
		IsPermanent: false,
		ExpiresAt:   &expires,
	})
	require.NoError(t, err)

	ident := Identifier{PhoneNumber: "+254700000001"}

	blocked, err := policy.IsBlocked(ctx, ident)
	require.NoError(t, err)
	assert.True(t, blocked)

	policy.now = frozenClock(time.Now().Add(2 * time.Hour))
	blocked, err = policy.IsBlocked(ctx, ident)
	require.NoError(t, err)
	assert.False(t, blocked, "lapsed temporary block must stop matching without any sweep")

	// The row survives for audit even after it stops matching.
	entries, err := policy.ListBlacklist(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAddBlacklistEntryValidation(t *testing.T) {
	store := NewMemoryStore()
	policy := NewPolicy(store)
	ctx := context.Background()

	err := policy.AddBlacklistEntry(ctx, &models.BlacklistEntry{Reason: "no matcher"})
	assert.ErrorIs(t, err, ErrValidation)

	err = policy.AddBlacklistEntry(ctx, &models.BlacklistEntry{MacAddress: "aa:bb:cc:dd:ee:ff"})
	assert.ErrorIs(t, err, ErrValidation, "reason is required")

	err = policy.AddBlacklistEntry(ctx, &models.BlacklistEntry{
		MacAddress:  "aa:bb:cc:dd:ee:ff",
		Reason:      "spam",
		IsPermanent: false,
	})
	assert.ErrorIs(t, err, ErrValidation, "temporary block needs an expiry")
}

func TestAutoConnectIgnoresWalledGarden(t *testing.T) {
	store := NewMemoryStore()
	policy := NewPolicy(store)
	ctx := context.Background()

	require.NoError(t, policy.AddWhitelistEntry(ctx, &models.WhitelistEntry{
		MacAddress:     "aa:bb:cc:dd:ee:01",
		Description:    "office printer",
		IsWalledGarden: false,
	}))
	require.NoError(t, policy.AddWhitelistEntry(ctx, &models.WhitelistEntry{
		Domain:         "pay.example.com",
		IsWalledGarden: true,
	}))
	require.NoError(t, policy.AddWhitelistEntry(ctx, &models.WhitelistEntry{
		MacAddress:     "aa:bb:cc:dd:ee:02",
		IsWalledGarden: true,
	}))

	auto, err := policy.AutoConnect(ctx, Identifier{MacAddress: "AA:BB:CC:DD:EE:01"})
	require.NoError(t, err)
	assert.True(t, auto)

	auto, err = policy.AutoConnect(ctx, Identifier{MacAddress: "aa:bb:cc:dd:ee:02"})
	require.NoError(t, err)
	assert.False(t, auto, "walled-garden rows are destinations, not device grants")

	auto, err = policy.AutoConnect(ctx, Identifier{PhoneNumber: "+254700000002"})
	require.NoError(t, err)
	assert.False(t, auto, "phone-only identifiers never auto-connect")
}
