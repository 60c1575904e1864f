package core

import "jeewifi-backend/models"

// Allowance is the budget attached to a session at open time: how long, how
// much data, how fast, on how many devices. Nil pointers mean unlimited.
type Allowance struct {
	DurationDisplay   string   `json:"duration_display,omitempty"`
	Price             float64  `json:"price,omitempty"`
	TimeLimitSeconds  *int     `json:"time_limit_seconds,omitempty"`
	DataLimitMb       *float64 `json:"data_limit_mb,omitempty"`
	BandwidthUpMbps   *float64 `json:"bandwidth_up_mbps,omitempty"`
	BandwidthDownMbps *float64 `json:"bandwidth_down_mbps,omitempty"`
	DeviceLimit       int      `json:"device_limit,omitempty"`
}

func intPtr(v int) *int { return &v }

// voucherAllowance derives the budget from the voucher's package snapshot,
// never from the live catalog row.
func voucherAllowance(v *models.Voucher) *Allowance {
	return &Allowance{
		DurationDisplay:   v.DurationDisplay,
		Price:             v.Price,
		TimeLimitSeconds:  intPtr(v.DurationMinutes * 60),
		DataLimitMb:       v.DataLimitMb,
		BandwidthUpMbps:   v.BandwidthUpMbps,
		BandwidthDownMbps: v.BandwidthDownMbps,
		DeviceLimit:       v.DeviceLimit,
	}
}
