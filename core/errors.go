package core

import "errors"

// Business-rule outcomes. None of these are fatal; controllers map them to
// HTTP statuses and user-facing messages. ErrNotFound deliberately covers
// both unknown vouchers and unknown users so callers cannot enumerate codes.
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrExpired             = errors.New("expired")
	ErrDeviceLimitExceeded = errors.New("device limit exceeded")
	ErrBlocked             = errors.New("blocked")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidOtp          = errors.New("invalid otp")
	ErrAlreadyConnected    = errors.New("already connected")
	ErrUnavailable         = errors.New("temporarily unavailable")
)
