package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SessionStatusActive       = "active"
	SessionStatusPaused       = "paused"
	SessionStatusExpired      = "expired"
	SessionStatusDisconnected = "disconnected"
)

const (
	AuthMethodVoucher  = "voucher"
	AuthMethodPassword = "password"
	AuthMethodSMS      = "sms"
	AuthMethodMAC      = "mac"
)

// Session is the authoritative record of one device's allowance. Usage
// counters only move while status is active; expired and disconnected are
// terminal.
type Session struct {
	ID                string     `gorm:"type:uuid;primaryKey" json:"id"`
	MacAddress        string     `gorm:"index;not null" json:"mac_address"`
	IPAddress         string     `json:"ip_address,omitempty"`
	PhoneNumber       string     `json:"phone_number,omitempty"`
	AuthMethod        string     `gorm:"not null" json:"auth_method"`
	VoucherID         *string    `gorm:"type:uuid;index" json:"voucher_id,omitempty"`
	UserID            *string    `gorm:"type:uuid" json:"user_id,omitempty"`
	LocationID        *string    `gorm:"type:uuid" json:"location_id,omitempty"`
	DeviceName        string     `json:"device_name,omitempty"`
	Status            string     `gorm:"default:active;index" json:"status"`
	SessionStart      time.Time  `gorm:"autoCreateTime" json:"session_start"`
	SessionEnd        *time.Time `json:"session_end,omitempty"`
	TimeLimitSeconds  *int       `json:"time_limit_seconds,omitempty"`
	TimeUsedSeconds   int        `gorm:"default:0" json:"time_used_seconds"`
	DataLimitMb       *float64   `json:"data_limit_mb,omitempty"`
	DataUsedMb        float64    `gorm:"default:0" json:"data_used_mb"`
	BandwidthUpMbps   *float64   `json:"bandwidth_up_mbps,omitempty"`
	BandwidthDownMbps *float64   `json:"bandwidth_down_mbps,omitempty"`
}

func (Session) TableName() string {
	return "user_sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (s *Session) Terminal() bool {
	return s.Status == SessionStatusExpired || s.Status == SessionStatusDisconnected
}

// RemainingSeconds returns the seconds left on the time budget. The second
// return is false when the session has no time limit.
func (s *Session) RemainingSeconds() (int, bool) {
	if s.TimeLimitSeconds == nil {
		return 0, false
	}
	left := *s.TimeLimitSeconds - s.TimeUsedSeconds
	if left < 0 {
		left = 0
	}
	return left, true
}

// RemainingDataMb returns the megabytes left on the data budget. The second
// return is false when the session has no data cap.
func (s *Session) RemainingDataMb() (float64, bool) {
	if s.DataLimitMb == nil {
		return 0, false
	}
	left := *s.DataLimitMb - s.DataUsedMb
	if left < 0 {
		left = 0
	}
	return left, true
}

// Exhausted reports whether either budget has run out. Exceeding one cap is
// fatal regardless of the other.
func (s *Session) Exhausted() bool {
	if left, limited := s.RemainingSeconds(); limited && left == 0 {
		return true
	}
	if left, limited := s.RemainingDataMb(); limited && left == 0 {
		return true
	}
	return false
}
