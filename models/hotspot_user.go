package models

import (
	"time"

	"gorm.io/gorm"
)

// HotspotUser is a subscriber with username/password access. Blacklisting
// here is per account and checked in addition to the identifier policy.
type HotspotUser struct {
	ID                 string    `gorm:"type:uuid;primaryKey" json:"id"`
	Username           string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	FullName           string    `json:"full_name,omitempty"`
	Email              string    `json:"email,omitempty"`
	PhoneNumber        string    `json:"phone_number,omitempty"`
	MacAddress         string    `json:"mac_address,omitempty"`
	DataLimitMb        *float64  `json:"data_limit_mb,omitempty"`
	BandwidthLimitMbps *float64  `json:"bandwidth_limit_mbps,omitempty"`
	IsActive           bool      `gorm:"default:true" json:"is_active"`
	IsBlacklisted      bool      `gorm:"default:false" json:"is_blacklisted"`
	BlacklistReason    string    `json:"blacklist_reason,omitempty"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HotspotUser) TableName() string {
	return "hotspot_users"
}

func (u *HotspotUser) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
