package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jeewifi-backend/models"
)

func newTestLedger(store *MemoryStore) *Ledger {
	return NewLedger(store, NopPublisher{}, testLogger())
}

func TestGenerateBatchQuantityBounds(t *testing.T) {
	store := NewMemoryStore()
	seedPackage(store)
	ledger := newTestLedger(store)
	ctx := context.Background()

	_, err := ledger.GenerateBatch(ctx, GenerateRequest{PackageID: "pkg-1hr", Quantity: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ledger.GenerateBatch(ctx, GenerateRequest{PackageID: "pkg-1hr", Quantity: 51})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGenerateBatchSnapshotsPackage(t *testing.T) {
	store := NewMemoryStore()
	pkg := models.Package{
		ID:                "pkg-day",
		Name:              "Day Pass",
		DurationMinutes:   1440,
		DurationDisplay:   "24 hours",
		Price:             100,
		DataLimitMb:       floatPtr(2048),
		BandwidthDownMbps: floatPtr(10),
		DeviceLimit:       2,
		IsActive:          true,
	}
	store.PutPackage(pkg)
	ledger := newTestLedger(store)

	vouchers, err := ledger.GenerateBatch(context.Background(), GenerateRequest{
		PackageID: "pkg-day",
		Quantity:  5,
	})
	require.NoError(t, err)
	require.Len(t, vouchers, 5)

	seen := map[string]bool{}
	for _, v := range vouchers {
		assert.True(t, strings.HasPrefix(v.Code, "JEE-"), "code %q missing prefix", v.Code)
		assert.Len(t, v.Code, len("JEE-")+8)
		assert.False(t, seen[v.Code], "duplicate code %q in batch", v.Code)
		seen[v.Code] = true

		assert.Equal(t, models.VoucherStatusAvailable, v.Status)
		assert.Equal(t, "Day Pass", v.PackageName)
		assert.Equal(t, 1440, v.DurationMinutes)
		assert.Equal(t, float64(100), v.Price)
		require.NotNil(t, v.DataLimitMb)
		assert.Equal(t, float64(2048), *v.DataLimitMb)
		assert.Equal(t, 2, v.DeviceLimit)
	}
}

func TestGenerateBatchRejectsInactivePackage(t *testing.T) {
	store := NewMemoryStore()
	store.PutPackage(models.Package{
		ID:              "pkg-old",
		Name:            "Retired",
		DurationMinutes: 30,
		DurationDisplay: "30 min",
		IsActive:        false,
	})
	ledger := newTestLedger(store)

	_, err := ledger.GenerateBatch(context.Background(), GenerateRequest{
		PackageID: "pkg-old",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRedeemUnknownCode(t *testing.T) {
	store := NewMemoryStore()
	ledger := newTestLedger(store)

	_, _, err := ledger.Redeem(context.Background(), RedeemRequest{
		Code:      "JEE-NOPENOPE",
		DeviceMac: "aa:bb:cc:dd:ee:ff",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedeemSingleUseVoucher(t *testing.T) {
	store := NewMemoryStore()
	seedPackage(store)
	ledger := newTestLedger(store)
	ctx := context.Background()

	vouchers, err := ledger.GenerateBatch(ctx, GenerateRequest{PackageID: "pkg-1hr", Quantity: 1})
	require.NoError(t, err)
	code := vouchers[0].Code

	allowance, v, err := ledger.Redeem(ctx, RedeemRequest{
		Code:      code,
		DeviceMac: "AA:BB:CC:DD:EE:FF",
		ClaimedBy: "+254700000001",
	})
	require.NoError(t, err)
	require.NotNil(t, allowance.TimeLimitSeconds)
	assert.Equal(t, 3600, *allowance.TimeLimitSeconds)
	assert.Equal(t, models.VoucherStatusClaimed, v.Status)
	assert.Equal(t, 1, v.UseCount)
	assert.Equal(t, "+254700000001", v.ClaimedBy)
	require.NotNil(t, v.ClaimedAt)
}

func TestRedeemSameDeviceIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	seedPackage(store)
	ledger := newTestLedger(store)
	ctx := context.Background()

	vouchers, err := ledger.GenerateBatch(ctx, GenerateRequest{PackageID: "pkg-1hr", Quantity: 1})
	require.NoError(t, err)
	code := vouchers[0].Code

	_, first, err := ledger.Redeem(ctx, RedeemRequest{Code: code, DeviceMac: "aa:bb:cc:dd:ee:ff"})
	require.NoError(t, err)

	// Same device comes back: no slot consumed, no counter moved.
	_, again, err := ledger.Redeem(ctx, RedeemRequest{Code: code, DeviceMac: "AA:BB:CC:DD:EE:FF"})
	require.NoError(t, err)
	assert.Equal(t, first.UseCount, again.UseCount)

	bindings, err := store.VoucherDevices(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, bindings, 1)
}

func TestRedeemEnforcesDeviceLimitUnderContention(t *testing.T) {
	store := NewMemoryStore()
	seedPackage(store)
	ledger := newTestLedger(store)
	ctx := context.Background()

	const deviceLimit = 2
	const attempts = 8

	vouchers, err := ledger.GenerateBatch(ctx, GenerateRequest{
		PackageID:   "pkg-1hr",
		Quantity:    1,
		DeviceLimit: deviceLimit,
	})
	require.NoError(t, err)
	code := vouchers[0].Code

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = ledger.Redeem(ctx, RedeemRequest{
				Code:      code,
				DeviceMac: fmt.Sprintf("aa:bb:cc:dd:ee:%02d", i),
			})
		}(i)
	}
	wg.Wait()

	succeeded, limited := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrDeviceLimitExceeded):
			limited++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, deviceLimit, succeeded, "exactly the device limit gets through")
	assert.Equal(t, attempts-deviceLimit, limited)

	bindings, err := store.VoucherDevices(ctx, vouchers[0].ID)
	require.NoError(t, err)
	assert.Len(t, bindings, deviceLimit)
}

func TestRedeemExpiredVoucher(t *testing.T) {
	store := NewMemoryStore()
	seedPackage(store)
	ledger := newTestLedger(store)
	ctx := context.Background()

	past := time.Now().Add(-time.Minute)
	vouchers, err := ledger.GenerateBatch(ctx, GenerateRequest{
		PackageID: "pkg-1hr",
		Quantity:  1,
		ExpiresAt: &past,
	})
	require.NoError(t, err)
	code := vouchers[0].Code

	_, _, err = ledger.Redeem(ctx, RedeemRequest{Code: code, DeviceMac: "aa:bb:cc:dd:ee:ff"})
	assert.ErrorIs(t, err, ErrExpired)

	// The lazy flip happened; from now on the code is indistinguishable from
	// one that never existed.
	_, _, err = ledger.Redeem(ctx, RedeemRequest{Code: code, DeviceMac: "aa:bb:cc:dd:ee:ff"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedeemReusableVoucherBurnsAfterMaxUses(t *testing.T) {
	store := NewMemoryStore()
	seedPackage(store)
	ledger := newTestLedger(store)
	ctx := context.Background()

	maxUses := 3
	vouchers, err := ledger.GenerateBatch(ctx, GenerateRequest{
		PackageID:   "pkg-1hr",
		Quantity:    1,
		DeviceLimit: 5,
		IsReusable:  true,
		MaxUses:     &maxUses,
	})
	require.NoError(t, err)
	code := vouchers[0].Code

	for i := 0; i < maxUses; i++ {
		_, v, err := ledger.Redeem(ctx, RedeemRequest{
			Code:      code,
			DeviceMac: fmt.Sprintf("aa:bb:cc:dd:ee:%02d", i),
		})
		require.NoError(t, err)
		assert.Equal(t, i+1, v.UseCount)
		if i < maxUses-1 {
			assert.Equal(t, models.VoucherStatusAvailable, v.Status)
		} else {
			assert.Equal(t, models.VoucherStatusExpired, v.Status)
		}
	}

	_, _, err = ledger.Redeem(ctx, RedeemRequest{Code: code, DeviceMac: "aa:bb:cc:dd:ee:99"})
	assert.ErrorIs(t, err, ErrNotFound, "a burned code reads as unknown")
}

func TestSweepFlipsLapsedVouchers(t *testing.T) {
	store := NewMemoryStore()
	seedPackage(store)
	ledger := newTestLedger(store)
	ctx := context.Background()

	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	fresh, err := ledger.GenerateBatch(ctx, GenerateRequest{PackageID: "pkg-1hr", Quantity: 1, ExpiresAt: &future})
	require.NoError(t, err)
	lapsed, err := ledger.GenerateBatch(ctx, GenerateRequest{PackageID: "pkg-1hr", Quantity: 2, ExpiresAt: &past})
	require.NoError(t, err)

	n, err := ledger.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	v, err := store.VoucherByID(ctx, fresh[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.VoucherStatusAvailable, v.Status)

	for _, lv := range lapsed {
		v, err := store.VoucherByID(ctx, lv.ID)
		require.NoError(t, err)
		assert.Equal(t, models.VoucherStatusExpired, v.Status)
	}
}
