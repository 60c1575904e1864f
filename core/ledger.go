package core

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"jeewifi-backend/models"
)

const (
	voucherCodePrefix   = "JEE-"
	voucherCodeLength   = 8
	voucherCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	maxBatchSize     = 50
	maxGenerateRetry = 5
)

// Ledger owns voucher records end to end: batch generation, redemption with
// per-device caps, reuse accounting and expiry. Redemption is a single-writer
// critical section per voucher code.
type Ledger struct {
	store  Store
	locks  *lockTable
	events Publisher
	log    *logrus.Logger
	now    func() time.Time
}

func NewLedger(store Store, events Publisher, log *logrus.Logger) *Ledger {
	return &Ledger{
		store:  store,
		locks:  newLockTable(),
		events: events,
		log:    log,
		now:    time.Now,
	}
}

type GenerateRequest struct {
	PackageID   string
	Quantity    int
	DeviceLimit int
	IsReusable  bool
	MaxUses     *int
	ExpiresAt   *time.Time
	LocationID  *string
}

// GenerateBatch creates Quantity fresh vouchers snapshotting the package's
// numeric fields. Code collisions are retried, never silently dropped.
func (l *Ledger) GenerateBatch(ctx context.Context, req GenerateRequest) ([]models.Voucher, error) {
	if req.Quantity < 1 || req.Quantity > maxBatchSize {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", ErrValidation, maxBatchSize)
	}
	pkg, err := l.store.PackageByID(ctx, req.PackageID)
	if err != nil {
		if err == ErrNotFound {
			return nil, fmt.Errorf("%w: package %s", ErrNotFound, req.PackageID)
		}
		return nil, err
	}
	if !pkg.IsActive {
		return nil, fmt.Errorf("%w: package %s is not active", ErrValidation, pkg.Name)
	}

	deviceLimit := req.DeviceLimit
	if deviceLimit < 1 {
		deviceLimit = pkg.DeviceLimit
	}
	if deviceLimit < 1 {
		deviceLimit = 1
	}

	out := make([]models.Voucher, 0, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		v := models.Voucher{
			PackageID:         pkg.ID,
			PackageName:       pkg.Name,
			DurationMinutes:   pkg.DurationMinutes,
			DurationDisplay:   pkg.DurationDisplay,
			Price:             pkg.Price,
			DataLimitMb:       pkg.DataLimitMb,
			BandwidthDownMbps: pkg.BandwidthDownMbps,
			BandwidthUpMbps:   pkg.BandwidthUpMbps,
			DeviceLimit:       deviceLimit,
			IsReusable:        req.IsReusable,
			MaxUses:           req.MaxUses,
			Status:            models.VoucherStatusAvailable,
			ExpiresAt:         req.ExpiresAt,
			LocationID:        req.LocationID,
		}

		created := false
		for attempt := 0; attempt < maxGenerateRetry; attempt++ {
			v.Code = newVoucherCode()
			err := l.store.CreateVoucher(ctx, &v)
			if err == nil {
				created = true
				break
			}
			if err != ErrConflict {
				return nil, err
			}
			l.log.Warnf("Voucher code collision on %s, retrying", v.Code)
		}
		if !created {
			return nil, fmt.Errorf("%w: could not allocate a unique voucher code", ErrUnavailable)
		}
		out = append(out, v)
	}

	l.events.Publish(EventVoucherGenerated, map[string]interface{}{
		"package_id": pkg.ID,
		"quantity":   len(out),
	})
	return out, nil
}

type RedeemRequest struct {
	Code      string
	DeviceMac string
	ClaimedBy string
}

// Redeem runs the whole redemption sequence atomically per voucher: lazy
// expiry, idempotent device re-connect, device-cap enforcement, reuse
// counting and the claimed/expired transition. Under concurrent attempts on
// a voucher with device limit N, exactly N distinct devices get through.
func (l *Ledger) Redeem(ctx context.Context, req RedeemRequest) (*Allowance, *models.Voucher, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" || req.DeviceMac == "" {
		return nil, nil, fmt.Errorf("%w: voucher code and device mac are required", ErrValidation)
	}

	unlock := l.locks.Lock("voucher:" + code)
	defer unlock()

	v, err := l.store.VoucherByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if v.Status == models.VoucherStatusExpired {
		// Do not distinguish burned codes from unknown ones.
		return nil, nil, ErrNotFound
	}
	now := l.now()
	if v.ExpiredAt(now) {
		v.Status = models.VoucherStatusExpired
		if err := l.store.SaveVoucher(ctx, v); err != nil {
			l.log.WithError(err).Error("Failed to flip voucher to expired")
		}
		return nil, nil, ErrExpired
	}

	bindings, err := l.store.VoucherDevices(ctx, v.ID)
	if err != nil {
		return nil, nil, err
	}
	for i := range bindings {
		if strings.EqualFold(bindings[i].MacAddress, req.DeviceMac) {
			// Idempotent re-connect: no slot consumed, no counters moved.
			if err := l.store.TouchVoucherDevice(ctx, v.ID, req.DeviceMac, now); err != nil {
				l.log.WithError(err).Warn("Failed to touch voucher device binding")
			}
			return voucherAllowance(v), v, nil
		}
	}
	if len(bindings) >= v.DeviceLimit {
		return nil, nil, fmt.Errorf("%w: voucher allows %d device(s)", ErrDeviceLimitExceeded, v.DeviceLimit)
	}

	binding := models.VoucherDevice{
		VoucherID:  v.ID,
		MacAddress: strings.ToLower(req.DeviceMac),
		IsActive:   true,
		FirstSeen:  now,
		LastSeen:   now,
	}
	if err := l.store.BindVoucherDevice(ctx, &binding); err != nil {
		if err == ErrConflict {
			// Lost a race outside our lock scope; treat as the idempotent case.
			return voucherAllowance(v), v, nil
		}
		return nil, nil, err
	}

	v.UseCount++
	if v.IsReusable {
		if v.MaxUses != nil && v.UseCount >= *v.MaxUses {
			v.Status = models.VoucherStatusExpired
		}
	} else {
		v.Status = models.VoucherStatusClaimed
		if v.ClaimedAt == nil {
			v.ClaimedAt = &now
			v.ClaimedBy = req.ClaimedBy
		}
	}
	if err := l.store.SaveVoucher(ctx, v); err != nil {
		return nil, nil, err
	}

	l.events.Publish(EventVoucherRedeemed, map[string]interface{}{
		"voucher_id": v.ID,
		"code":       v.Code,
		"mac":        binding.MacAddress,
		"use_count":  v.UseCount,
	})
	return voucherAllowance(v), v, nil
}

// Sweep flips lapsed available vouchers to expired and returns how many it
// changed. Safe to run concurrently with Redeem: both sides re-check status
// and the update is conditional on it.
func (l *Ledger) Sweep(ctx context.Context) (int, error) {
	n, err := l.store.ExpireVouchers(ctx, l.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		l.log.Infof("Expired %d voucher(s)", n)
		l.events.Publish(EventVoucherExpired, map[string]interface{}{"count": n})
	}
	return n, nil
}

// Delete is an administrative override; it removes the voucher and its
// device bindings regardless of status.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	return l.store.DeleteVoucher(ctx, id)
}

func (l *Ledger) List(ctx context.Context) ([]models.Voucher, error) {
	return l.store.ListVouchers(ctx)
}

func newVoucherCode() string {
	b := make([]byte, voucherCodeLength)
	max := big.NewInt(int64(len(voucherCodeAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = voucherCodeAlphabet[0]
			continue
		}
		b[i] = voucherCodeAlphabet[n.Int64()]
	}
	return voucherCodePrefix + string(b)
}
