package models

import (
	"time"

	"gorm.io/gorm"
)

// SmsOtp is a one-time login challenge. Newer challenges for the same phone
// supersede older unconsumed ones; nothing is deleted.
type SmsOtp struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	PhoneNumber string    `gorm:"index;not null" json:"phone_number"`
	OtpCode     string    `gorm:"not null" json:"-"`
	ExpiresAt   time.Time `gorm:"not null" json:"expires_at"`
	Verified    bool      `gorm:"default:false" json:"verified"`
	Attempts    int       `gorm:"default:0" json:"attempts"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SmsOtp) TableName() string {
	return "sms_otp"
}

func (o *SmsOtp) BeforeCreate(tx *gorm.DB) error {
	ensureID(&o.ID)
	return nil
}
