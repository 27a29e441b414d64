package services

import (
	"runtime"
	"sync"
	"testing"
)

func (l *scheduleLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *scheduleLocks) refs(id int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.locks[id]; ok {
		return m.refs
	}
	return 0
}

func waitForRefs(l *scheduleLocks, id int64, want int) {
	for l.refs(id) != want {
		runtime.Gosched()
	}
}

func TestScheduleLocks_MutualExclusion(t *testing.T) {
	locks := newScheduleLocks()
	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		counter sync.Mutex
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(7)
			counter.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			counter.Unlock()

			counter.Lock()
			inside--
			counter.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("expected one holder at a time, saw %d", maxSeen)
	}
	if n := locks.size(); n != 0 {
		t.Errorf("expected released entries to be dropped, %d left", n)
	}
}

func TestScheduleLocks_WaiterKeepsEntry(t *testing.T) {
	locks := newScheduleLocks()
	unlock := locks.lock(3)

	acquired := make(chan func())
	go func() { acquired <- locks.lock(3) }()

	// the first holder releases while the second waits on the same mutex
	waitForRefs(locks, 3, 2)
	unlock()
	second := <-acquired

	// a third caller must queue behind the second, not get a fresh mutex
	third := make(chan func())
	go func() { third <- locks.lock(3) }()
	waitForRefs(locks, 3, 2)
	select {
	case <-third:
		t.Fatal("third caller got the lock while the second still holds it")
	default:
	}
	second()
	(<-third)()

	if n := locks.size(); n != 0 {
		t.Errorf("expected no entries left, got %d", n)
	}
}
