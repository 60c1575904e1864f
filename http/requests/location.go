package requests

import (
	"github.com/go-playground/validator/v10"
)

type CreateLocationRequest struct {
	Name       string `json:"name" validate:"required"`
	RouterIP   string `json:"router_ip" validate:"required,ip"`
	RouterType string `json:"router_type" validate:"required,oneof=mikrotik openwrt other"`
	APIPort    int    `json:"api_port" validate:"min=0,max=65535"`
	SSID       string `json:"ssid"`
	IsActive   bool   `json:"is_active"`
}

func (r *CreateLocationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
