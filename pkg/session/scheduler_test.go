package session_test

import (
	"sync"
	"time"

	"github.com/aretw0/abenteuer/pkg/session"
)

// manualScheduler records callbacks and fires them on demand.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) session.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{delay: d, fn: f}
	m.timers = append(m.timers, t)
	return t
}

// FireAll runs every scheduled callback, including stopped ones, to mimic a
// timer that raced with Stop.
func (m *manualScheduler) FireAll() {
	m.mu.Lock()
	timers := append([]*manualTimer(nil), m.timers...)
	m.mu.Unlock()

	for _, t := range timers {
		if t.fired {
			continue
		}
		t.fired = true
		t.fn()
	}
}

func (m *manualScheduler) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}
