package requests

import (
	"github.com/go-playground/validator/v10"
)

type InitiatePaymentRequest struct {
	PackageID   string `json:"package_id" validate:"required,uuid"`
	PhoneNumber string `json:"phone_number" validate:"required,min=10"`
}

func (r *InitiatePaymentRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
