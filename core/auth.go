package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"jeewifi-backend/models"
	"jeewifi-backend/providers/otp"
	"jeewifi-backend/providers/sms"
)

// Auth dispatches a connect attempt to one of the login strategies and, on
// success, opens the session. Every path consults the blacklist first and
// touches nothing else while the identifier is blocked.
type Auth struct {
	store       Store
	policy      *Policy
	ledger      *Ledger
	sessions    *Sessions
	otp         otp.OTPProvider
	sms         sms.Sender
	log         *logrus.Logger
	maxAttempts int
	now         func() time.Time
}

func NewAuth(store Store, policy *Policy, ledger *Ledger, sessions *Sessions,
	otpProvider otp.OTPProvider, sender sms.Sender, maxAttempts int, log *logrus.Logger) *Auth {
	if maxAttempts < 1 {
		maxAttempts = 5
	}
	return &Auth{
		store:       store,
		policy:      policy,
		ledger:      ledger,
		sessions:    sessions,
		otp:         otpProvider,
		sms:         sender,
		log:         log,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

type ConnectRequest struct {
	Identifier Identifier
	Method     string
	Code       string // voucher
	Username   string // password
	Password   string
	OtpCode    string // sms
	ClaimedBy  string
	DeviceName string
	LocationID *string
}

// Connect authenticates and opens a session. Strategy failures never leave a
// session or voucher mutation behind.
func (a *Auth) Connect(ctx context.Context, req ConnectRequest) (*models.Session, error) {
	if req.Identifier.Empty() {
		return nil, fmt.Errorf("%w: identifier has no fields", ErrValidation)
	}

	blocked, err := a.policy.IsBlocked(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, fmt.Errorf("%w: device is blacklisted", ErrBlocked)
	}

	open := OpenRequest{
		Identifier: req.Identifier,
		AuthMethod: req.Method,
		DeviceName: req.DeviceName,
		LocationID: req.LocationID,
	}

	switch req.Method {
	case models.AuthMethodVoucher:
		claimedBy := req.ClaimedBy
		if claimedBy == "" {
			claimedBy = req.Identifier.PhoneNumber
		}
		if claimedBy == "" {
			claimedBy = req.Identifier.MacAddress
		}
		allowance, voucher, err := a.ledger.Redeem(ctx, RedeemRequest{
			Code:      req.Code,
			DeviceMac: req.Identifier.MacAddress,
			ClaimedBy: claimedBy,
		})
		if err != nil {
			return nil, err
		}
		open.Allowance = allowance
		open.VoucherID = &voucher.ID

	case models.AuthMethodPassword:
		allowance, user, err := a.checkCredentials(ctx, req.Username, req.Password)
		if err != nil {
			return nil, err
		}
		open.Allowance = allowance
		open.UserID = &user.ID

	case models.AuthMethodSMS:
		if err := a.VerifyOtp(ctx, req.Identifier.PhoneNumber, req.OtpCode); err != nil {
			return nil, err
		}
		open.Allowance = &Allowance{}

	case models.AuthMethodMAC:
		auto, err := a.policy.AutoConnect(ctx, req.Identifier)
		if err != nil {
			return nil, err
		}
		if !auto {
			return nil, fmt.Errorf("%w: device is not whitelisted", ErrInvalidCredentials)
		}
		open.Allowance = &Allowance{}

	default:
		return nil, fmt.Errorf("%w: unknown auth method %q", ErrValidation, req.Method)
	}

	return a.sessions.Open(ctx, open)
}

func (a *Auth) checkCredentials(ctx context.Context, username, password string) (*Allowance, *models.HotspotUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	user, err := a.store.HotspotUserByUsername(ctx, username)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, ErrInvalidCredentials
	}
	if user.IsBlacklisted {
		reason := user.BlacklistReason
		if reason == "" {
			reason = "account blocked"
		}
		return nil, nil, fmt.Errorf("%w: %s", ErrBlocked, reason)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	return &Allowance{
		DataLimitMb:       user.DataLimitMb,
		BandwidthUpMbps:   user.BandwidthLimitMbps,
		BandwidthDownMbps: user.BandwidthLimitMbps,
	}, user, nil
}

// RequestOtp issues a fresh 6-digit challenge and hands it to the SMS
// provider. A new challenge supersedes any unconsumed one for the phone;
// verification always checks the most recent.
func (a *Auth) RequestOtp(ctx context.Context, phone string) (*models.SmsOtp, error) {
	phone = strings.TrimSpace(phone)
	if len(phone) < 10 {
		return nil, fmt.Errorf("%w: phone number looks invalid", ErrValidation)
	}

	blocked, err := a.policy.IsBlocked(ctx, Identifier{PhoneNumber: phone})
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, fmt.Errorf("%w: phone is blacklisted", ErrBlocked)
	}

	challenge := &models.SmsOtp{
		PhoneNumber: phone,
		OtpCode:     a.otp.GenerateOTP(),
		ExpiresAt:   a.now().Add(a.otp.Validity()),
		CreatedAt:   a.now(),
	}
	if err := a.store.CreateOtp(ctx, challenge); err != nil {
		return nil, err
	}

	code := challenge.OtpCode
	go func() {
		if err := a.sms.Send(phone, "Your JEE WiFi login code is "+code); err != nil {
			a.log.WithError(err).Warnf("Failed to send OTP to %s", phone)
		}
	}()
	return challenge, nil
}

// VerifyOtp consumes the latest unconsumed challenge for the phone. A wrong
// code burns an attempt; too many wrong attempts burn the challenge.
// Verification is one-time: a second call with the same code fails.
func (a *Auth) VerifyOtp(ctx context.Context, phone, code string) error {
	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)
	if phone == "" || code == "" {
		return fmt.Errorf("%w: phone and code are required", ErrValidation)
	}

	challenge, err := a.store.LatestOtp(ctx, phone)
	if err != nil {
		if err == ErrNotFound {
			return ErrInvalidOtp
		}
		return err
	}
	if challenge.Attempts >= a.maxAttempts {
		return ErrInvalidOtp
	}
	if !a.otp.ValidateOTP(code, challenge.OtpCode, challenge.ExpiresAt) {
		challenge.Attempts++
		if err := a.store.SaveOtp(ctx, challenge); err != nil {
			a.log.WithError(err).Warn("Failed to record OTP attempt")
		}
		return ErrInvalidOtp
	}

	challenge.Verified = true
	return a.store.SaveOtp(ctx, challenge)
}
