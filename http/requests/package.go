package requests

import (
	"github.com/go-playground/validator/v10"
)

type CreateOrUpdatePackageRequest struct {
	Name              string   `json:"name" validate:"required"`
	DurationMinutes   int      `json:"duration_minutes" validate:"required,min=1"`
	DurationDisplay   string   `json:"duration_display" validate:"required"`
	Price             float64  `json:"price" validate:"min=0"`
	Currency          string   `json:"currency"`
	DataLimitMb       *float64 `json:"data_limit_mb,omitempty" validate:"omitempty,gt=0"`
	BandwidthDownMbps *float64 `json:"bandwidth_down_mbps,omitempty" validate:"omitempty,gt=0"`
	BandwidthUpMbps   *float64 `json:"bandwidth_up_mbps,omitempty" validate:"omitempty,gt=0"`
	DeviceLimit       int      `json:"device_limit" validate:"min=1"`
	IsActive          bool     `json:"is_active"`
	SortOrder         int      `json:"sort_order"`
}

func (r *CreateOrUpdatePackageRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
