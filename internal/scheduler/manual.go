package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Manual is a scheduler driven by Advance. Callbacks run synchronously on the goroutine
// calling Advance, in due time order. It backs the tests and the offline simulator.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	m    *Manual
	at   time.Time
	seq  uint64
	f    func()
	done bool
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, at: m.now.Add(d), seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.m.prune()
	return true
}

// Advance moves the clock forward, firing every timer that falls due, including timers
// armed by callbacks during the advance.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		next.done = true
		if next.at.After(m.now) {
			m.now = next.at
		}
		m.prune()
		m.mu.Unlock()

		next.f()
	}
}

// Pending returns how many timers are still armed
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Manual) nextDue(target time.Time) *manualTimer {
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at.Equal(m.timers[j].at) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].at.Before(m.timers[j].at)
	})
	for _, t := range m.timers {
		if !t.done && !t.at.After(target) {
			return t
		}
	}
	return nil
}

func (m *Manual) prune() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.timers); i++ {
		m.timers[i] = nil
	}
	m.timers = live
}
