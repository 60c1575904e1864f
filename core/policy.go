package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jeewifi-backend/models"
)

// Policy is the gate every authorization path consults first: blacklist
// blocks, whitelist auto-connect grants. Expiry of temporary blocks is
// evaluated lazily on every lookup; expired rows stay put for audit.
type Policy struct {
	store Store
	now   func() time.Time
}

func NewPolicy(store Store) *Policy {
	return &Policy{store: store, now: time.Now}
}

// IsBlocked reports whether any blacklist entry matches the identifier on a
// populated field and is still in force.
func (p *Policy) IsBlocked(ctx context.Context, ident Identifier) (bool, error) {
	if ident.Empty() {
		return false, fmt.Errorf("%w: identifier has no fields", ErrValidation)
	}
	entries, err := p.store.BlacklistMatches(ctx, ident)
	if err != nil {
		return false, err
	}
	now := p.now()
	for i := range entries {
		if entries[i].ActiveAt(now) {
			return true, nil
		}
	}
	return false, nil
}

// AutoConnect reports whether the device is whitelisted for credential-free
// session creation. Walled-garden rows are destinations, not grants, and
// never match here.
func (p *Policy) AutoConnect(ctx context.Context, ident Identifier) (bool, error) {
	if ident.MacAddress == "" && ident.IPAddress == "" {
		return false, nil
	}
	_, err := p.store.AutoConnectMatch(ctx, ident.MacAddress, ident.IPAddress)
	if err != nil {
		if err == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p *Policy) AddBlacklistEntry(ctx context.Context, entry *models.BlacklistEntry) error {
	if entry.MacAddress == "" && entry.IPAddress == "" && entry.PhoneNumber == "" {
		return fmt.Errorf("%w: at least one of mac, ip or phone is required", ErrValidation)
	}
	if strings.TrimSpace(entry.Reason) == "" {
		return fmt.Errorf("%w: reason is required", ErrValidation)
	}
	if !entry.IsPermanent && entry.ExpiresAt == nil {
		return fmt.Errorf("%w: temporary block needs an expiry", ErrValidation)
	}
	return p.store.CreateBlacklistEntry(ctx, entry)
}

func (p *Policy) RemoveBlacklistEntry(ctx context.Context, id string) error {
	return p.store.DeleteBlacklistEntry(ctx, id)
}

func (p *Policy) ListBlacklist(ctx context.Context) ([]models.BlacklistEntry, error) {
	return p.store.ListBlacklist(ctx)
}

func (p *Policy) AddWhitelistEntry(ctx context.Context, entry *models.WhitelistEntry) error {
	if entry.MacAddress == "" && entry.IPAddress == "" && entry.Domain == "" {
		return fmt.Errorf("%w: at least one of mac, ip or domain is required", ErrValidation)
	}
	return p.store.CreateWhitelistEntry(ctx, entry)
}

func (p *Policy) RemoveWhitelistEntry(ctx context.Context, id string) error {
	return p.store.DeleteWhitelistEntry(ctx, id)
}

func (p *Policy) ListWhitelist(ctx context.Context) ([]models.WhitelistEntry, error) {
	return p.store.ListWhitelist(ctx)
}
