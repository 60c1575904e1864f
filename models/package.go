package models

import (
	"time"

	"gorm.io/gorm"
)

// Package is an allowance template. Vouchers and sessions snapshot its
// numeric fields at issuance, so later edits never reshape what was sold.
type Package struct {
	ID                string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	DurationMinutes   int       `gorm:"not null" json:"duration_minutes"`
	DurationDisplay   string    `gorm:"not null" json:"duration_display"`
	Price             float64   `gorm:"not null" json:"price"`
	Currency          string    `gorm:"default:KES" json:"currency"`
	DataLimitMb       *float64  `json:"data_limit_mb,omitempty"`
	BandwidthDownMbps *float64  `json:"bandwidth_down_mbps,omitempty"`
	BandwidthUpMbps   *float64  `json:"bandwidth_up_mbps,omitempty"`
	DeviceLimit       int       `gorm:"default:1" json:"device_limit"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	SortOrder         int       `gorm:"default:0" json:"sort_order"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Package) TableName() string {
	return "packages"
}

func (p *Package) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
