package services

import "sync"

// scheduleLocks serializes lecture bookings per schedule id so two
// concurrent requests can't both pass the conflict check for one slot.
// An entry lives while someone holds or waits for it.
type scheduleLocks struct {
	mu    sync.Mutex
	locks map[int64]*scheduleLock
}

type scheduleLock struct {
	sync.Mutex
	refs int
}

func newScheduleLocks() *scheduleLocks {
	return &scheduleLocks{locks: make(map[int64]*scheduleLock)}
}

// lock acquires the schedule's mutex and returns its release func
func (l *scheduleLocks) lock(scheduleID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[scheduleID]
	if !ok {
		m = &scheduleLock{}
		l.locks[scheduleID] = m
	}
	m.refs++
	l.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.locks, scheduleID)
		}
		l.mu.Unlock()
	}
}
