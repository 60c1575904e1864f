package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"jeewifi-backend/models"
	"jeewifi-backend/providers/otp"
)

type silentSender struct{}

func (silentSender) Send(phone, message string) error { return nil }

type authHarness struct {
	store    *MemoryStore
	policy   *Policy
	ledger   *Ledger
	sessions *Sessions
	auth     *Auth
}

func newAuthHarness() *authHarness {
	store := NewMemoryStore()
	policy := NewPolicy(store)
	ledger := NewLedger(store, NopPublisher{}, testLogger())
	sessions := NewSessions(store, NopPublisher{}, testLogger())
	auth := NewAuth(store, policy, ledger, sessions,
		otp.NewSimpleOTPProvider(6, 5), silentSender{}, 5, testLogger())
	return &authHarness{store: store, policy: policy, ledger: ledger, sessions: sessions, auth: auth}
}

func TestConnectBlockedIdentifierShortCircuits(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()

	seedPackage(h.store)
	vouchers, err := h.ledger.GenerateBatch(ctx, GenerateRequest{PackageID: "pkg-1hr", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, h.policy.AddBlacklistEntry(ctx, &models.BlacklistEntry{
		MacAddress:  "aa:bb:cc:dd:ee:ff",
		Reason:      "abuse",
		IsPermanent: true,
	}))

	_, err = h.auth.Connect(ctx, ConnectRequest{
		Identifier: Identifier{MacAddress: "AA:BB:CC:DD:EE:FF"},
		Method:     models.AuthMethodVoucher,
		Code:       vouchers[0].Code,
	})
	assert.ErrorIs(t, err, ErrBlocked)

	// A valid code presented by a blocked device must not be consumed.
	v, err := h.store.VoucherByID(ctx, vouchers[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, v.UseCount)
	assert.Equal(t, models.VoucherStatusAvailable, v.Status)
}

func TestConnectVoucherOpensSession(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()

	seedPackage(h.store)
	vouchers, err := h.ledger.GenerateBatch(ctx, GenerateRequest{PackageID: "pkg-1hr", Quantity: 1})
	require.NoError(t, err)

	sess, err := h.auth.Connect(ctx, ConnectRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:ff", PhoneNumber: "+254700000001"},
		Method:     models.AuthMethodVoucher,
		Code:       vouchers[0].Code,
	})
	require.NoError(t, err)

	assert.Equal(t, models.SessionStatusActive, sess.Status)
	assert.Equal(t, models.AuthMethodVoucher, sess.AuthMethod)
	require.NotNil(t, sess.VoucherID)
	assert.Equal(t, vouchers[0].ID, *sess.VoucherID)
	require.NotNil(t, sess.TimeLimitSeconds)
	assert.Equal(t, 3600, *sess.TimeLimitSeconds)

	v, err := h.store.VoucherByID(ctx, vouchers[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "+254700000001", v.ClaimedBy)
}

func TestConnectPasswordStrategy(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	h.store.PutHotspotUser(models.HotspotUser{
		ID:           "user-1",
		Username:     "amina",
		PasswordHash: string(hash),
		DataLimitMb:  floatPtr(500),
		IsActive:     true,
	})

	_, err = h.auth.Connect(ctx, ConnectRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:ff"},
		Method:     models.AuthMethodPassword,
		Username:   "amina",
		Password:   "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = h.auth.Connect(ctx, ConnectRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:ff"},
		Method:     models.AuthMethodPassword,
		Username:   "nobody",
		Password:   "hunter22",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown user reads the same as a bad password")

	sess, err := h.auth.Connect(ctx, ConnectRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:ff"},
		Method:     models.AuthMethodPassword,
		Username:   "amina",
		Password:   "hunter22",
	})
	require.NoError(t, err)
	require.NotNil(t, sess.UserID)
	assert.Equal(t, "user-1", *sess.UserID)
	require.NotNil(t, sess.DataLimitMb)
	assert.Equal(t, float64(500), *sess.DataLimitMb)
	assert.Nil(t, sess.TimeLimitSeconds, "account logins are time-unlimited")
}

func TestConnectPasswordRejectsInactiveAndBlacklisted(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	h.store.PutHotspotUser(models.HotspotUser{
		ID:           "user-off",
		Username:     "dormant",
		PasswordHash: string(hash),
		IsActive:     false,
	})
	h.store.PutHotspotUser(models.HotspotUser{
		ID:              "user-bad",
		Username:        "troublemaker",
		PasswordHash:    string(hash),
		IsActive:        true,
		IsBlacklisted:   true,
		BlacklistReason: "chargeback",
	})

	_, err = h.auth.Connect(ctx, ConnectRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:01"},
		Method:     models.AuthMethodPassword,
		Username:   "dormant",
		Password:   "hunter22",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = h.auth.Connect(ctx, ConnectRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:02"},
		Method:     models.AuthMethodPassword,
		Username:   "troublemaker",
		Password:   "hunter22",
	})
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestOtpVerifyIsOneTime(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()
	phone := "+254700000001"

	_, err := h.auth.RequestOtp(ctx, phone)
	require.NoError(t, err)

	challenge, err := h.store.LatestOtp(ctx, phone)
	require.NoError(t, err)

	// Wrong code burns an attempt but not the challenge.
	assert.ErrorIs(t, h.auth.VerifyOtp(ctx, phone, "000000"), ErrInvalidOtp)
	after, err := h.store.LatestOtp(ctx, phone)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Attempts)

	// Correct code verifies exactly once.
	require.NoError(t, h.auth.VerifyOtp(ctx, phone, challenge.OtpCode))
	assert.ErrorIs(t, h.auth.VerifyOtp(ctx, phone, challenge.OtpCode), ErrInvalidOtp,
		"a consumed challenge cannot be replayed")
}

func TestOtpMaxAttemptsBurnsChallenge(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()
	phone := "+254700000002"

	_, err := h.auth.RequestOtp(ctx, phone)
	require.NoError(t, err)
	challenge, err := h.store.LatestOtp(ctx, phone)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, h.auth.VerifyOtp(ctx, phone, "999999"), ErrInvalidOtp)
	}

	// Even the right code is dead now.
	assert.ErrorIs(t, h.auth.VerifyOtp(ctx, phone, challenge.OtpCode), ErrInvalidOtp)
}

func TestOtpNewChallengeSupersedesOld(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()
	phone := "+254700000003"

	_, err := h.auth.RequestOtp(ctx, phone)
	require.NoError(t, err)
	first, err := h.store.LatestOtp(ctx, phone)
	require.NoError(t, err)

	// Force distinct CreatedAt ordering; map-backed stores have no sequence.
	time.Sleep(5 * time.Millisecond)

	_, err = h.auth.RequestOtp(ctx, phone)
	require.NoError(t, err)
	second, err := h.store.LatestOtp(ctx, phone)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	if first.OtpCode != second.OtpCode {
		assert.ErrorIs(t, h.auth.VerifyOtp(ctx, phone, first.OtpCode), ErrInvalidOtp,
			"only the newest challenge counts")
	}
	require.NoError(t, h.auth.VerifyOtp(ctx, phone, second.OtpCode))
}

func TestConnectSmsOpensUnmeteredSession(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()
	phone := "+254700000004"

	_, err := h.auth.RequestOtp(ctx, phone)
	require.NoError(t, err)
	challenge, err := h.store.LatestOtp(ctx, phone)
	require.NoError(t, err)

	sess, err := h.auth.Connect(ctx, ConnectRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:ff", PhoneNumber: phone},
		Method:     models.AuthMethodSMS,
		OtpCode:    challenge.OtpCode,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AuthMethodSMS, sess.AuthMethod)
	assert.Nil(t, sess.TimeLimitSeconds)
	assert.Nil(t, sess.DataLimitMb)
}

func TestConnectMacRequiresWhitelist(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()

	_, err := h.auth.Connect(ctx, ConnectRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:ff"},
		Method:     models.AuthMethodMAC,
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, h.policy.AddWhitelistEntry(ctx, &models.WhitelistEntry{
		MacAddress:  "aa:bb:cc:dd:ee:ff",
		Description: "office laptop",
	}))

	sess, err := h.auth.Connect(ctx, ConnectRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:ff"},
		Method:     models.AuthMethodMAC,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AuthMethodMAC, sess.AuthMethod)
}

func TestConnectUnknownMethod(t *testing.T) {
	h := newAuthHarness()

	_, err := h.auth.Connect(context.Background(), ConnectRequest{
		Identifier: Identifier{MacAddress: "aa:bb:cc:dd:ee:ff"},
		Method:     "telepathy",
	})
	assert.ErrorIs(t, err, ErrValidation)
}
