package core

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"jeewifi-backend/models"
)

// GormStore is the production Store. It expects a connection opened with
// TranslateError so duplicate-key violations surface as gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}

func (g *GormStore) BlacklistMatches(ctx context.Context, ident Identifier) ([]models.BlacklistEntry, error) {
	q := g.db.WithContext(ctx).Model(&models.BlacklistEntry{})
	cond := g.db.Where("1 = 0")
	if ident.MacAddress != "" {
		cond = cond.Or("LOWER(mac_address) = LOWER(?)", ident.MacAddress)
	}
	if ident.IPAddress != "" {
		cond = cond.Or("LOWER(ip_address) = LOWER(?)", ident.IPAddress)
	}
	if ident.PhoneNumber != "" {
		cond = cond.Or("LOWER(phone_number) = LOWER(?)", ident.PhoneNumber)
	}
	var out []models.BlacklistEntry
	if err := q.Where(cond).Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (g *GormStore) CreateBlacklistEntry(ctx context.Context, entry *models.BlacklistEntry) error {
	return translate(g.db.WithContext(ctx).Create(entry).Error)
}

func (g *GormStore) DeleteBlacklistEntry(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Delete(&models.BlacklistEntry{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) ListBlacklist(ctx context.Context) ([]models.BlacklistEntry, error) {
	var out []models.BlacklistEntry
	err := g.db.WithContext(ctx).Order("blocked_at desc").Find(&out).Error
	return out, translate(err)
}

func (g *GormStore) AutoConnectMatch(ctx context.Context, mac, ip string) (*models.WhitelistEntry, error) {
	cond := g.db.Where("1 = 0")
	if mac != "" {
		cond = cond.Or("LOWER(mac_address) = LOWER(?)", mac)
	}
	if ip != "" {
		cond = cond.Or("LOWER(ip_address) = LOWER(?)", ip)
	}
	var entry models.WhitelistEntry
	err := g.db.WithContext(ctx).
		Where("is_walled_garden = ?", false).
		Where(cond).
		First(&entry).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

func (g *GormStore) CreateWhitelistEntry(ctx context.Context, entry *models.WhitelistEntry) error {
	return translate(g.db.WithContext(ctx).Create(entry).Error)
}

func (g *GormStore) DeleteWhitelistEntry(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Delete(&models.WhitelistEntry{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) ListWhitelist(ctx context.Context) ([]models.WhitelistEntry, error) {
	var out []models.WhitelistEntry
	err := g.db.WithContext(ctx).Order("created_at desc").Find(&out).Error
	return out, translate(err)
}

func (g *GormStore) CreateVoucher(ctx context.Context, v *models.Voucher) error {
	return translate(g.db.WithContext(ctx).Create(v).Error)
}

func (g *GormStore) VoucherByCode(ctx context.Context, code string) (*models.Voucher, error) {
	var v models.Voucher
	if err := g.db.WithContext(ctx).Where("code = ?", code).First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (g *GormStore) VoucherByID(ctx context.Context, id string) (*models.Voucher, error) {
	var v models.Voucher
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (g *GormStore) SaveVoucher(ctx context.Context, v *models.Voucher) error {
	return translate(g.db.WithContext(ctx).Save(v).Error)
}

func (g *GormStore) DeleteVoucher(ctx context.Context, id string) error {
	return translate(g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.VoucherDevice{}, "voucher_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Voucher{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	}))
}

func (g *GormStore) ListVouchers(ctx context.Context) ([]models.Voucher, error) {
	var out []models.Voucher
	err := g.db.WithContext(ctx).Order("created_at desc").Find(&out).Error
	return out, translate(err)
}

func (g *GormStore) VoucherDevices(ctx context.Context, voucherID string) ([]models.VoucherDevice, error) {
	var out []models.VoucherDevice
	err := g.db.WithContext(ctx).Where("voucher_id = ?", voucherID).Find(&out).Error
	return out, translate(err)
}

func (g *GormStore) BindVoucherDevice(ctx context.Context, binding *models.VoucherDevice) error {
	return translate(g.db.WithContext(ctx).Create(binding).Error)
}

func (g *GormStore) TouchVoucherDevice(ctx context.Context, voucherID, mac string, seen time.Time) error {
	res := g.db.WithContext(ctx).Model(&models.VoucherDevice{}).
		Where("voucher_id = ? AND LOWER(mac_address) = LOWER(?)", voucherID, mac).
		Update("last_seen", seen)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) ExpireVouchers(ctx context.Context, now time.Time) (int, error) {
	res := g.db.WithContext(ctx).Model(&models.Voucher{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.VoucherStatusAvailable, now).
		Update("status", models.VoucherStatusExpired)
	return int(res.RowsAffected), translate(res.Error)
}

func (g *GormStore) LiveSessionByKey(ctx context.Context, key string) (*models.Session, error) {
	var s models.Session
	err := g.db.WithContext(ctx).
		Where("status IN ?", []string{models.SessionStatusActive, models.SessionStatusPaused}).
		Where("LOWER(mac_address) = ? OR LOWER(ip_address) = ? OR LOWER(phone_number) = ?", key, key, key).
		Order("session_start desc").
		First(&s).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (g *GormStore) CreateSession(ctx context.Context, s *models.Session) error {
	return translate(g.db.WithContext(ctx).Create(s).Error)
}

func (g *GormStore) SessionByID(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (g *GormStore) SaveSession(ctx context.Context, s *models.Session) error {
	return translate(g.db.WithContext(ctx).Save(s).Error)
}

func (g *GormStore) ActiveSessions(ctx context.Context) ([]models.Session, error) {
	return g.ListSessions(ctx, models.SessionStatusActive)
}

func (g *GormStore) ListSessions(ctx context.Context, statuses ...string) ([]models.Session, error) {
	q := g.db.WithContext(ctx).Order("session_start desc")
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var out []models.Session
	err := q.Find(&out).Error
	return out, translate(err)
}

func (g *GormStore) HotspotUserByUsername(ctx context.Context, username string) (*models.HotspotUser, error) {
	var u models.HotspotUser
	if err := g.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (g *GormStore) ActivePackages(ctx context.Context) ([]models.Package, error) {
	var out []models.Package
	err := g.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order asc").
		Find(&out).Error
	return out, translate(err)
}

func (g *GormStore) PackageByID(ctx context.Context, id string) (*models.Package, error) {
	var p models.Package
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (g *GormStore) CreateOtp(ctx context.Context, otp *models.SmsOtp) error {
	return translate(g.db.WithContext(ctx).Create(otp).Error)
}

func (g *GormStore) LatestOtp(ctx context.Context, phone string) (*models.SmsOtp, error) {
	var o models.SmsOtp
	err := g.db.WithContext(ctx).
		Where("phone_number = ? AND verified = ?", phone, false).
		Order("created_at desc").
		First(&o).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (g *GormStore) SaveOtp(ctx context.Context, otp *models.SmsOtp) error {
	return translate(g.db.WithContext(ctx).Save(otp).Error)
}
