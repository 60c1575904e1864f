package requests

import (
	"github.com/go-playground/validator/v10"
)

type CreateHotspotUserRequest struct {
	Username           string   `json:"username" validate:"required,min=3"`
	Password           string   `json:"password" validate:"required,min=6"`
	FullName           string   `json:"full_name"`
	PhoneNumber        string   `json:"phone_number"`
	DataLimitMb        *float64 `json:"data_limit_mb,omitempty" validate:"omitempty,gt=0"`
	BandwidthLimitMbps *float64 `json:"bandwidth_limit_mbps,omitempty" validate:"omitempty,gt=0"`
	IsActive           bool     `json:"is_active"`
}

func (r *CreateHotspotUserRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

type UpdateHotspotUserRequest struct {
	Password           string   `json:"password" validate:"omitempty,min=6"`
	FullName           string   `json:"full_name"`
	PhoneNumber        string   `json:"phone_number"`
	DataLimitMb        *float64 `json:"data_limit_mb,omitempty" validate:"omitempty,gt=0"`
	BandwidthLimitMbps *float64 `json:"bandwidth_limit_mbps,omitempty" validate:"omitempty,gt=0"`
	IsActive           *bool    `json:"is_active,omitempty"`
	IsBlacklisted      *bool    `json:"is_blacklisted,omitempty"`
	BlacklistReason    string   `json:"blacklist_reason"`
}

func (r *UpdateHotspotUserRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
