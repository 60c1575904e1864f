package models

import (
	"time"

	"gorm.io/gorm"
)

// BlacklistEntry blocks an identifier from every authentication path.
// Non-permanent entries go inert after ExpiresAt but are kept for audit.
type BlacklistEntry struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	MacAddress  string     `gorm:"index" json:"mac_address,omitempty"`
	IPAddress   string     `gorm:"index" json:"ip_address,omitempty"`
	PhoneNumber string     `gorm:"index" json:"phone_number,omitempty"`
	Reason      string     `gorm:"not null" json:"reason"`
	IsPermanent bool       `gorm:"default:true" json:"is_permanent"`
	BlockedBy   string     `json:"blocked_by,omitempty"`
	BlockedAt   time.Time  `gorm:"autoCreateTime" json:"blocked_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

func (BlacklistEntry) TableName() string {
	return "blacklist"
}

func (b *BlacklistEntry) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID)
	return nil
}

// ActiveAt reports whether the block still applies at the given instant.
// Both lazy per-query checks and the admin listing use this predicate so
// expiry semantics cannot diverge.
func (b *BlacklistEntry) ActiveAt(now time.Time) bool {
	if b.IsPermanent {
		return true
	}
	if b.ExpiresAt == nil {
		return true
	}
	return !now.After(*b.ExpiresAt)
}

// WhitelistEntry either auto-connects a device (MAC/IP match, walled garden
// off) or marks a destination reachable without authentication (walled
// garden on). Domain-only entries matter to the traffic layer, not to us.
type WhitelistEntry struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	MacAddress     string    `gorm:"index" json:"mac_address,omitempty"`
	IPAddress      string    `gorm:"index" json:"ip_address,omitempty"`
	Domain         string    `json:"domain,omitempty"`
	Description    string    `json:"description,omitempty"`
	IsWalledGarden bool      `gorm:"default:false" json:"is_walled_garden"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WhitelistEntry) TableName() string {
	return "whitelist"
}

func (w *WhitelistEntry) BeforeCreate(tx *gorm.DB) error {
	ensureID(&w.ID)
	return nil
}
