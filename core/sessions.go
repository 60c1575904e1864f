package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"jeewifi-backend/models"
)

// Sessions owns the session state machine: active ⇄ paused, with expired
// (system-driven) and disconnected (caller-driven) as terminal states. Open
// is single-writer per identifier; all other mutations serialize per
// session id, so a caller's Close and a quota tick can never interleave.
type Sessions struct {
	store  Store
	idents *lockTable
	locks  *lockTable
	events Publisher
	log    *logrus.Logger
	now    func() time.Time
}

func NewSessions(store Store, events Publisher, log *logrus.Logger) *Sessions {
	return &Sessions{
		store:  store,
		idents: newLockTable(),
		locks:  newLockTable(),
		events: events,
		log:    log,
		now:    time.Now,
	}
}

type OpenRequest struct {
	Identifier Identifier
	AuthMethod string
	Allowance  *Allowance
	VoucherID  *string
	UserID     *string
	LocationID *string
	DeviceName string
}

// Open creates a session with a fresh budget, or returns the existing live
// session for the identifier when it still has allowance left — reconnects
// from page reloads and duplicate tabs land there. A live session with
// nothing left is expired on the spot and replaced.
func (s *Sessions) Open(ctx context.Context, req OpenRequest) (*models.Session, error) {
	if req.Identifier.Empty() {
		return nil, fmt.Errorf("%w: identifier has no fields", ErrValidation)
	}
	if req.Allowance == nil {
		return nil, fmt.Errorf("%w: allowance is required", ErrValidation)
	}

	key := req.Identifier.Key()
	unlock := s.idents.Lock("ident:" + key)
	defer unlock()

	existing, err := s.store.LiveSessionByKey(ctx, key)
	if err != nil && err != ErrNotFound {
		return nil, err
	}
	if existing != nil {
		if !existing.Exhausted() {
			return existing, nil
		}
		s.expireLocked(ctx, existing)
	}

	sess := &models.Session{
		MacAddress:        strings.ToLower(req.Identifier.MacAddress),
		IPAddress:         req.Identifier.IPAddress,
		PhoneNumber:       req.Identifier.PhoneNumber,
		AuthMethod:        req.AuthMethod,
		VoucherID:         req.VoucherID,
		UserID:            req.UserID,
		LocationID:        req.LocationID,
		DeviceName:        req.DeviceName,
		Status:            models.SessionStatusActive,
		SessionStart:      s.now(),
		TimeLimitSeconds:  req.Allowance.TimeLimitSeconds,
		DataLimitMb:       req.Allowance.DataLimitMb,
		BandwidthUpMbps:   req.Allowance.BandwidthUpMbps,
		BandwidthDownMbps: req.Allowance.BandwidthDownMbps,
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		if err == ErrConflict {
			// Raced with another writer past our lock (e.g. a second node).
			if again, ferr := s.store.LiveSessionByKey(ctx, key); ferr == nil {
				return again, nil
			}
			return nil, fmt.Errorf("%w: %s", ErrAlreadyConnected, key)
		}
		return nil, err
	}

	s.events.Publish(EventSessionOpened, sessionEvent(sess))
	return sess, nil
}

// Tick adds elapsed time and data to an active session and expires it once
// either budget runs out. Ticks against paused or terminal sessions are
// dropped, not applied — a Close that won the lock stays won.
func (s *Sessions) Tick(ctx context.Context, sessionID string, elapsedSeconds int, elapsedDataMb float64) error {
	unlock := s.locks.Lock("sess:" + sessionID)
	defer unlock()

	sess, err := s.store.SessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.Status != models.SessionStatusActive {
		return nil
	}

	if elapsedSeconds > 0 {
		sess.TimeUsedSeconds += elapsedSeconds
	}
	if elapsedDataMb > 0 {
		sess.DataUsedMb += elapsedDataMb
	}
	if sess.Exhausted() {
		s.expireLocked(ctx, sess)
		return nil
	}
	return s.store.SaveSession(ctx, sess)
}

// Pause freezes usage accrual. Pausing an already-paused session is a no-op.
func (s *Sessions) Pause(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock("sess:" + sessionID)
	defer unlock()

	sess, err := s.store.SessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	switch sess.Status {
	case models.SessionStatusPaused:
		return nil
	case models.SessionStatusActive:
		sess.Status = models.SessionStatusPaused
		if err := s.store.SaveSession(ctx, sess); err != nil {
			return err
		}
		s.events.Publish(EventSessionPaused, sessionEvent(sess))
		return nil
	default:
		return fmt.Errorf("%w: session is %s", ErrValidation, sess.Status)
	}
}

// Resume unfreezes a paused session. Resuming an active session is a no-op.
func (s *Sessions) Resume(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock("sess:" + sessionID)
	defer unlock()

	sess, err := s.store.SessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	switch sess.Status {
	case models.SessionStatusActive:
		return nil
	case models.SessionStatusPaused:
		sess.Status = models.SessionStatusActive
		if err := s.store.SaveSession(ctx, sess); err != nil {
			return err
		}
		s.events.Publish(EventSessionResumed, sessionEvent(sess))
		return nil
	default:
		return fmt.Errorf("%w: session is %s", ErrValidation, sess.Status)
	}
}

// Close disconnects from any non-terminal state. Closing a terminal session
// is a no-op, not an error.
func (s *Sessions) Close(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock("sess:" + sessionID)
	defer unlock()

	sess, err := s.store.SessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.Terminal() {
		return nil
	}
	now := s.now()
	sess.Status = models.SessionStatusDisconnected
	sess.SessionEnd = &now
	if err := s.store.SaveSession(ctx, sess); err != nil {
		return err
	}
	s.events.Publish(EventSessionClosed, sessionEvent(sess))
	return nil
}

func (s *Sessions) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.store.SessionByID(ctx, sessionID)
}

func (s *Sessions) List(ctx context.Context, statuses ...string) ([]models.Session, error) {
	return s.store.ListSessions(ctx, statuses...)
}

// RemainingTime returns the time budget left; limited is false for
// unmetered sessions.
func (s *Sessions) RemainingTime(ctx context.Context, sessionID string) (remaining time.Duration, limited bool, err error) {
	sess, err := s.store.SessionByID(ctx, sessionID)
	if err != nil {
		return 0, false, err
	}
	secs, limited := sess.RemainingSeconds()
	return time.Duration(secs) * time.Second, limited, nil
}

// RemainingData returns the data budget left in MB; limited is false for
// uncapped sessions.
func (s *Sessions) RemainingData(ctx context.Context, sessionID string) (remaining float64, limited bool, err error) {
	sess, err := s.store.SessionByID(ctx, sessionID)
	if err != nil {
		return 0, false, err
	}
	mb, limited := sess.RemainingDataMb()
	return mb, limited, nil
}

// expireLocked stamps the terminal expired state. Callers hold the relevant
// lock.
func (s *Sessions) expireLocked(ctx context.Context, sess *models.Session) {
	now := s.now()
	sess.Status = models.SessionStatusExpired
	sess.SessionEnd = &now
	if err := s.store.SaveSession(ctx, sess); err != nil {
		s.log.WithError(err).Errorf("Failed to expire session %s", sess.ID)
		return
	}
	s.events.Publish(EventSessionExpired, sessionEvent(sess))
}

func sessionEvent(sess *models.Session) map[string]interface{} {
	return map[string]interface{}{
		"session_id":  sess.ID,
		"mac_address": sess.MacAddress,
		"auth_method": sess.AuthMethod,
		"status":      sess.Status,
	}
}
