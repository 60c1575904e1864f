package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment records an STK-push style mobile-money transaction. The gateway
// protocol itself lives outside this service; we only consume the completed
// event and keep the raw callback for reconciliation.
type Payment struct {
	ID                string         `gorm:"type:uuid;primaryKey" json:"id"`
	PhoneNumber       string         `gorm:"index;not null" json:"phone_number"`
	Amount            float64        `gorm:"not null" json:"amount"`
	Currency          string         `gorm:"default:KES" json:"currency"`
	PackageID         *string        `gorm:"type:uuid" json:"package_id,omitempty"`
	VoucherID         *string        `gorm:"type:uuid" json:"voucher_id,omitempty"`
	LocationID        *string        `gorm:"type:uuid" json:"location_id,omitempty"`
	PaymentMethod     string         `gorm:"default:mpesa" json:"payment_method"`
	CheckoutRequestID string         `gorm:"index" json:"checkout_request_id,omitempty"`
	MpesaReceipt      string         `json:"mpesa_receipt,omitempty"`
	Status            string         `gorm:"default:pending" json:"status"`
	RawCallback       datatypes.JSON `json:"raw_callback,omitempty"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
