package core

import (
	"context"
	"errors"
	"time"

	"jeewifi-backend/models"
)

// ErrConflict is returned by stores when an insert hits a uniqueness
// constraint (duplicate voucher code, second live session for a device).
var ErrConflict = errors.New("conflict")

// Store is the engine's persistence boundary. The production implementation
// sits on GORM; tests run against the in-memory one. Mutations on vouchers
// and sessions are serialized by the engine's lock tables, so a Store only
// has to be individually consistent per call.
type Store interface {
	// access policy
	BlacklistMatches(ctx context.Context, ident Identifier) ([]models.BlacklistEntry, error)
	CreateBlacklistEntry(ctx context.Context, entry *models.BlacklistEntry) error
	DeleteBlacklistEntry(ctx context.Context, id string) error
	ListBlacklist(ctx context.Context) ([]models.BlacklistEntry, error)
	AutoConnectMatch(ctx context.Context, mac, ip string) (*models.WhitelistEntry, error)
	CreateWhitelistEntry(ctx context.Context, entry *models.WhitelistEntry) error
	DeleteWhitelistEntry(ctx context.Context, id string) error
	ListWhitelist(ctx context.Context) ([]models.WhitelistEntry, error)

	// vouchers
	CreateVoucher(ctx context.Context, v *models.Voucher) error
	VoucherByCode(ctx context.Context, code string) (*models.Voucher, error)
	VoucherByID(ctx context.Context, id string) (*models.Voucher, error)
	SaveVoucher(ctx context.Context, v *models.Voucher) error
	DeleteVoucher(ctx context.Context, id string) error
	ListVouchers(ctx context.Context) ([]models.Voucher, error)
	VoucherDevices(ctx context.Context, voucherID string) ([]models.VoucherDevice, error)
	BindVoucherDevice(ctx context.Context, binding *models.VoucherDevice) error
	TouchVoucherDevice(ctx context.Context, voucherID, mac string, seen time.Time) error
	ExpireVouchers(ctx context.Context, now time.Time) (int, error)

	// sessions
	LiveSessionByKey(ctx context.Context, key string) (*models.Session, error)
	CreateSession(ctx context.Context, s *models.Session) error
	SessionByID(ctx context.Context, id string) (*models.Session, error)
	SaveSession(ctx context.Context, s *models.Session) error
	ActiveSessions(ctx context.Context) ([]models.Session, error)
	ListSessions(ctx context.Context, statuses ...string) ([]models.Session, error)

	// collaborators
	HotspotUserByUsername(ctx context.Context, username string) (*models.HotspotUser, error)
	ActivePackages(ctx context.Context) ([]models.Package, error)
	PackageByID(ctx context.Context, id string) (*models.Package, error)
	CreateOtp(ctx context.Context, otp *models.SmsOtp) error
	LatestOtp(ctx context.Context, phone string) (*models.SmsOtp, error)
	SaveOtp(ctx context.Context, otp *models.SmsOtp) error
}
