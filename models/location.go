package models

import (
	"time"

	"gorm.io/gorm"
)

// Location is a hotspot site and its router endpoint. The router API is the
// traffic layer's concern; we keep the coordinates for it.
type Location struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Address     string    `json:"address,omitempty"`
	SSID        string    `json:"ssid,omitempty"`
	RouterIP    string    `json:"router_ip,omitempty"`
	RouterType  string    `json:"router_type,omitempty"`
	APIPort     int       `json:"api_port,omitempty"`
	APIUsername string    `json:"api_username,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Location) TableName() string {
	return "locations"
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	ensureID(&l.ID)
	return nil
}
