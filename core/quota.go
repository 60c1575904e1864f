package core

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// QuotaClock is the background accountant: at a fixed tick it advances
// elapsed time for every active session and expires the ones that ran out,
// and on a slower cadence sweeps lapsed vouchers. It is the only writer of
// wall-clock time progression; data usage arrives from NAS accounting
// reports through Sessions.Tick.
type QuotaClock struct {
	store      Store
	sessions   *Sessions
	ledger     *Ledger
	interval   time.Duration
	sweepEvery time.Duration
	log        *logrus.Logger
}

func NewQuotaClock(store Store, sessions *Sessions, ledger *Ledger,
	interval, sweepEvery time.Duration, log *logrus.Logger) *QuotaClock {
	if interval <= 0 {
		interval = time.Second
	}
	if sweepEvery <= 0 {
		sweepEvery = time.Minute
	}
	return &QuotaClock{
		store:      store,
		sessions:   sessions,
		ledger:     ledger,
		interval:   interval,
		sweepEvery: sweepEvery,
		log:        log,
	}
}

// Run blocks until the context is cancelled.
func (q *QuotaClock) Run(ctx context.Context) {
	tick := time.NewTicker(q.interval)
	sweep := time.NewTicker(q.sweepEvery)
	defer tick.Stop()
	defer sweep.Stop()

	q.log.Infof("Quota clock running, tick=%s sweep=%s", q.interval, q.sweepEvery)
	for {
		select {
		case <-ctx.Done():
			q.log.Info("Quota clock stopped")
			return
		case <-tick.C:
			q.Advance(ctx, int(q.interval/time.Second))
		case <-sweep.C:
			if _, err := q.ledger.Sweep(ctx); err != nil {
				q.log.WithError(err).Error("Voucher sweep failed")
			}
		}
	}
}

// Advance moves every active session forward by elapsedSeconds. Sessions
// that went terminal between the listing and the tick drop the update under
// their own lock.
func (q *QuotaClock) Advance(ctx context.Context, elapsedSeconds int) {
	active, err := q.store.ActiveSessions(ctx)
	if err != nil {
		q.log.WithError(err).Error("Failed to list active sessions")
		return
	}
	for i := range active {
		if err := q.sessions.Tick(ctx, active[i].ID, elapsedSeconds, 0); err != nil {
			if err == ErrNotFound {
				continue
			}
			q.log.WithError(err).Errorf("Tick failed for session %s", active[i].ID)
		}
	}
}
