package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	VoucherStatusAvailable = "available"
	VoucherStatusClaimed   = "claimed"
	VoucherStatusExpired   = "expired"
)

// Voucher carries a snapshot of the package it was issued against; the
// catalog row may change or disappear without touching sold codes.
type Voucher struct {
	ID                string     `gorm:"type:uuid;primaryKey" json:"id"`
	Code              string     `gorm:"uniqueIndex;not null" json:"code"`
	PackageID         string     `gorm:"index" json:"package_id"`
	PackageName       string     `json:"package_name"`
	DurationMinutes   int        `gorm:"not null" json:"duration_minutes"`
	DurationDisplay   string     `gorm:"not null" json:"duration_display"`
	Price             float64    `gorm:"not null" json:"price"`
	DataLimitMb       *float64   `json:"data_limit_mb,omitempty"`
	BandwidthDownMbps *float64   `json:"bandwidth_down_mbps,omitempty"`
	BandwidthUpMbps   *float64   `json:"bandwidth_up_mbps,omitempty"`
	DeviceLimit       int        `gorm:"default:1" json:"device_limit"`
	IsReusable        bool       `gorm:"default:false" json:"is_reusable"`
	MaxUses           *int       `json:"max_uses,omitempty"`
	UseCount          int        `gorm:"default:0" json:"use_count"`
	Status            string     `gorm:"default:available;index" json:"status"`
	LocationID        *string    `gorm:"type:uuid" json:"location_id,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	ClaimedAt         *time.Time `json:"claimed_at,omitempty"`
	ClaimedBy         string     `json:"claimed_by,omitempty"`
}

func (Voucher) TableName() string {
	return "vouchers"
}

func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	ensureID(&v.ID)
	return nil
}

// ExpiredAt reports lazy expiry: the row may still say available while the
// deadline has passed.
func (v *Voucher) ExpiredAt(now time.Time) bool {
	if v.Status == VoucherStatusExpired {
		return true
	}
	return v.ExpiresAt != nil && now.After(*v.ExpiresAt)
}

// VoucherDevice is one row per distinct device that has redeemed a voucher.
type VoucherDevice struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	VoucherID  string    `gorm:"type:uuid;uniqueIndex:idx_voucher_mac;not null" json:"voucher_id"`
	MacAddress string    `gorm:"uniqueIndex:idx_voucher_mac;not null" json:"mac_address"`
	DeviceName string    `json:"device_name,omitempty"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	FirstSeen  time.Time `gorm:"autoCreateTime" json:"first_seen"`
	LastSeen   time.Time `json:"last_seen"`
}

func (VoucherDevice) TableName() string {
	return "voucher_devices"
}

func (d *VoucherDevice) BeforeCreate(tx *gorm.DB) error {
	ensureID(&d.ID)
	return nil
}
