package core

import "sync"

// lockTable hands out one mutex per key so read-check-write sequences over a
// voucher or an identifier run single-writer. Entries are never evicted; the
// table is bounded by the set of codes and devices seen by this process.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

func (t *lockTable) Lock(key string) func() {
	t.mu.Lock()
	l, ok := t.locks[key]
	if !ok {
		l = &sync.Mutex{}
		t.locks[key] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}
