package requests

import (
	"github.com/go-playground/validator/v10"
)

type BlacklistEntryRequest struct {
	MacAddress  string `json:"mac_address"`
	IPAddress   string `json:"ip_address"`
	PhoneNumber string `json:"phone_number"`
	Reason      string `json:"reason" validate:"required"`
	IsPermanent bool   `json:"is_permanent"`
	ExpiresDays int    `json:"expires_days" validate:"min=0"`
}

func (r *BlacklistEntryRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

type WhitelistEntryRequest struct {
	MacAddress     string `json:"mac_address"`
	IPAddress      string `json:"ip_address"`
	Domain         string `json:"domain"`
	Description    string `json:"description"`
	IsWalledGarden bool   `json:"is_walled_garden"`
}

func (r *WhitelistEntryRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
