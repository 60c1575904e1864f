package core

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"jeewifi-backend/models"
)

// MemoryStore keeps everything in mutex-guarded maps. It backs the engine
// tests and lets the service boot without a database in development.
type MemoryStore struct {
	mu        sync.RWMutex
	blacklist map[string]models.BlacklistEntry
	whitelist map[string]models.WhitelistEntry
	vouchers  map[string]models.Voucher
	bindings  map[string]models.VoucherDevice
	sessions  map[string]models.Session
	users     map[string]models.HotspotUser
	packages  map[string]models.Package
	otps      map[string]models.SmsOtp
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blacklist: make(map[string]models.BlacklistEntry),
		whitelist: make(map[string]models.WhitelistEntry),
		vouchers:  make(map[string]models.Voucher),
		bindings:  make(map[string]models.VoucherDevice),
		sessions:  make(map[string]models.Session),
		users:     make(map[string]models.HotspotUser),
		packages:  make(map[string]models.Package),
		otps:      make(map[string]models.SmsOtp),
	}
}

func fillID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func matchField(entry, probe string) bool {
	return entry != "" && probe != "" && strings.EqualFold(entry, probe)
}

func (m *MemoryStore) BlacklistMatches(ctx context.Context, ident Identifier) ([]models.BlacklistEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.BlacklistEntry
	for _, e := range m.blacklist {
		if matchField(e.MacAddress, ident.MacAddress) ||
			matchField(e.IPAddress, ident.IPAddress) ||
			matchField(e.PhoneNumber, ident.PhoneNumber) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MemoryStore) CreateBlacklistEntry(ctx context.Context, entry *models.BlacklistEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fillID(&entry.ID)
	if entry.BlockedAt.IsZero() {
		entry.BlockedAt = time.Now()
	}
	m.blacklist[entry.ID] = *entry
	return nil
}

func (m *MemoryStore) DeleteBlacklistEntry(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blacklist[id]; !ok {
		return ErrNotFound
	}
	delete(m.blacklist, id)
	return nil
}

func (m *MemoryStore) ListBlacklist(ctx context.Context) ([]models.BlacklistEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.BlacklistEntry, 0, len(m.blacklist))
	for _, e := range m.blacklist {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BlockedAt.After(out[j].BlockedAt) })
	return out, nil
}

func (m *MemoryStore) AutoConnectMatch(ctx context.Context, mac, ip string) (*models.WhitelistEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.whitelist {
		if e.IsWalledGarden {
			continue
		}
		if matchField(e.MacAddress, mac) || matchField(e.IPAddress, ip) {
			copied := e
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateWhitelistEntry(ctx context.Context, entry *models.WhitelistEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fillID(&entry.ID)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.whitelist[entry.ID] = *entry
	return nil
}

func (m *MemoryStore) DeleteWhitelistEntry(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.whitelist[id]; !ok {
		return ErrNotFound
	}
	delete(m.whitelist, id)
	return nil
}

func (m *MemoryStore) ListWhitelist(ctx context.Context) ([]models.WhitelistEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.WhitelistEntry, 0, len(m.whitelist))
	for _, e := range m.whitelist {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) CreateVoucher(ctx context.Context, v *models.Voucher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.vouchers {
		if existing.Code == v.Code {
			return ErrConflict
		}
	}
	fillID(&v.ID)
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	m.vouchers[v.ID] = *v
	return nil
}

func (m *MemoryStore) VoucherByCode(ctx context.Context, code string) (*models.Voucher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.vouchers {
		if v.Code == code {
			copied := v
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) VoucherByID(ctx context.Context, id string) (*models.Voucher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vouchers[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := v
	return &copied, nil
}

func (m *MemoryStore) SaveVoucher(ctx context.Context, v *models.Voucher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vouchers[v.ID]; !ok {
		return ErrNotFound
	}
	m.vouchers[v.ID] = *v
	return nil
}

func (m *MemoryStore) DeleteVoucher(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vouchers[id]; !ok {
		return ErrNotFound
	}
	delete(m.vouchers, id)
	for bid, b := range m.bindings {
		if b.VoucherID == id {
			delete(m.bindings, bid)
		}
	}
	return nil
}

func (m *MemoryStore) ListVouchers(ctx context.Context) ([]models.Voucher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Voucher, 0, len(m.vouchers))
	for _, v := range m.vouchers {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) VoucherDevices(ctx context.Context, voucherID string) ([]models.VoucherDevice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.VoucherDevice
	for _, b := range m.bindings {
		if b.VoucherID == voucherID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MemoryStore) BindVoucherDevice(ctx context.Context, binding *models.VoucherDevice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bindings {
		if b.VoucherID == binding.VoucherID && strings.EqualFold(b.MacAddress, binding.MacAddress) {
			return ErrConflict
		}
	}
	fillID(&binding.ID)
	if binding.FirstSeen.IsZero() {
		binding.FirstSeen = time.Now()
	}
	if binding.LastSeen.IsZero() {
		binding.LastSeen = binding.FirstSeen
	}
	m.bindings[binding.ID] = *binding
	return nil
}

func (m *MemoryStore) TouchVoucherDevice(ctx context.Context, voucherID, mac string, seen time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, b := range m.bindings {
		if b.VoucherID == voucherID && strings.EqualFold(b.MacAddress, mac) {
			b.LastSeen = seen
			m.bindings[id] = b
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) ExpireVouchers(ctx context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for id, v := range m.vouchers {
		if v.Status == models.VoucherStatusAvailable && v.ExpiresAt != nil && now.After(*v.ExpiresAt) {
			v.Status = models.VoucherStatusExpired
			m.vouchers[id] = v
			count++
		}
	}
	return count, nil
}

func sessionKey(s *models.Session) string {
	ident := Identifier{MacAddress: s.MacAddress, IPAddress: s.IPAddress, PhoneNumber: s.PhoneNumber}
	return ident.Key()
}

func (m *MemoryStore) LiveSessionByKey(ctx context.Context, key string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		if s.Terminal() {
			continue
		}
		if sessionKey(&s) == key {
			copied := s
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateSession(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := sessionKey(s)
	for _, existing := range m.sessions {
		if !existing.Terminal() && sessionKey(&existing) == key {
			return ErrConflict
		}
	}
	fillID(&s.ID)
	if s.SessionStart.IsZero() {
		s.SessionStart = time.Now()
	}
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemoryStore) SessionByID(ctx context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := s
	return &copied, nil
}

func (m *MemoryStore) SaveSession(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return ErrNotFound
	}
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemoryStore) ActiveSessions(ctx context.Context) ([]models.Session, error) {
	return m.ListSessions(ctx, models.SessionStatusActive)
}

func (m *MemoryStore) ListSessions(ctx context.Context, statuses ...string) ([]models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Session
	for _, s := range m.sessions {
		if len(statuses) == 0 {
			out = append(out, s)
			continue
		}
		for _, st := range statuses {
			if s.Status == st {
				out = append(out, s)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionStart.After(out[j].SessionStart) })
	return out, nil
}

func (m *MemoryStore) HotspotUserByUsername(ctx context.Context, username string) (*models.HotspotUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// PutHotspotUser seeds a credential row; tests and the dev bootstrap use it.
func (m *MemoryStore) PutHotspotUser(u models.HotspotUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fillID(&u.ID)
	m.users[u.ID] = u
}

func (m *MemoryStore) ActivePackages(ctx context.Context) ([]models.Package, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Package
	for _, p := range m.packages {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *MemoryStore) PackageByID(ctx context.Context, id string) (*models.Package, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.packages[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := p
	return &copied, nil
}

// PutPackage seeds a catalog row; tests and the dev bootstrap use it.
func (m *MemoryStore) PutPackage(p models.Package) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fillID(&p.ID)
	m.packages[p.ID] = p
}

func (m *MemoryStore) CreateOtp(ctx context.Context, otp *models.SmsOtp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fillID(&otp.ID)
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now()
	}
	m.otps[otp.ID] = *otp
	return nil
}

func (m *MemoryStore) LatestOtp(ctx context.Context, phone string) (*models.SmsOtp, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *models.SmsOtp
	for _, o := range m.otps {
		if o.PhoneNumber != phone || o.Verified {
			continue
		}
		copied := o
		if latest == nil || copied.CreatedAt.After(latest.CreatedAt) {
			latest = &copied
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (m *MemoryStore) SaveOtp(ctx context.Context, otp *models.SmsOtp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.otps[otp.ID]; !ok {
		return ErrNotFound
	}
	m.otps[otp.ID] = *otp
	return nil
}
