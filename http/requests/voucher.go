package requests

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type GenerateVouchersRequest struct {
	PackageID   string     `json:"package_id" validate:"required,uuid"`
	Quantity    int        `json:"quantity" validate:"required,min=1,max=50"`
	DeviceLimit int        `json:"device_limit" validate:"min=0"`
	IsReusable  bool       `json:"is_reusable"`
	MaxUses     *int       `json:"max_uses,omitempty" validate:"omitempty,min=1"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	LocationID  *string    `json:"location_id,omitempty" validate:"omitempty,uuid"`
}

func (r *GenerateVouchersRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
