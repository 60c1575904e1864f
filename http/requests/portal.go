package requests

import (
	"github.com/go-playground/validator/v10"
)

type ConnectRequest struct {
	Method      string `json:"method" validate:"required,oneof=voucher password sms mac"`
	MacAddress  string `json:"mac_address"`
	IPAddress   string `json:"ip_address"`
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	OtpCode     string `json:"otp_code"`
	DeviceName  string `json:"device_name"`
	LocationID  string `json:"location_id"`
}

func (r *ConnectRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

type RequestOtpRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=10"`
}

func (r *RequestOtpRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

type VerifyOtpRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=10"`
	OtpCode     string `json:"otp_code" validate:"required,len=6"`
}

func (r *VerifyOtpRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

type AccountingRequest struct {
	SessionID      string  `json:"session_id" validate:"required,uuid"`
	ElapsedSeconds int     `json:"elapsed_seconds" validate:"min=0"`
	DataUsedMb     float64 `json:"data_used_mb" validate:"min=0"`
}

func (r *AccountingRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
