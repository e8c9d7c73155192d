// Package scheduler provides cancellable deferred callbacks. Every timer a game session
// arms goes through a Group so tearing the session down cancels all of them at once.
package scheduler

import (
	"sync"
	"time"
)

// Timer is a pending callback
type Timer interface {
	// Stop prevents the callback from running, false if it already ran or was stopped
	Stop() bool
}

// Scheduler runs callbacks after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

type wallClock struct{}

// New returns a scheduler backed by time.AfterFunc
func New() Scheduler {
	return wallClock{}
}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (wallClock) Now() time.Time {
	return time.Now()
}

// Group owns a set of timers. A timer leaves the group when it fires or is cancelled,
// StopAll cancels whatever is left and makes the group refuse new timers.
type Group struct {
	sched Scheduler

	mu      sync.Mutex
	timers  map[uint64]Timer
	nextID  uint64
	stopped bool
}

// Handle addresses one timer of a group
type Handle struct {
	group *Group
	id    uint64
}

func NewGroup(sched Scheduler) *Group {
	return &Group{
		sched:  sched,
		timers: make(map[uint64]Timer),
	}
}

// Now is the group's clock
func (g *Group) Now() time.Time {
	return g.sched.Now()
}

// AfterFunc arms f. The returned handle is nil if the group has been stopped.
func (g *Group) AfterFunc(d time.Duration, f func()) *Handle {
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return nil
	}
	g.nextID++
	id := g.nextID
	// placeholder so a timer firing before registration still finds itself
	g.timers[id] = nil
	g.mu.Unlock()

	t := g.sched.AfterFunc(d, func() {
		if g.release(id) {
			f()
		}
	})

	g.mu.Lock()
	_, alive := g.timers[id]
	if alive && !g.stopped {
		g.timers[id] = t
	}
	g.mu.Unlock()

	if !alive {
		// cancelled while being armed; harmless if it already fired
		t.Stop()
	}

	return &Handle{group: g, id: id}
}

// release removes the timer and reports whether its callback may still run
func (g *Group) release(id uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return false
	}
	if _, ok := g.timers[id]; !ok {
		return false
	}
	delete(g.timers, id)
	return true
}

// Cancel stops the timer. Safe on a nil handle.
func (h *Handle) Cancel() bool {
	if h == nil {
		return false
	}

	g := h.group
	g.mu.Lock()
	t, ok := g.timers[h.id]
	delete(g.timers, h.id)
	g.mu.Unlock()

	if !ok {
		return false
	}
	if t != nil {
		t.Stop()
	}
	return true
}

// Active returns the number of armed timers
func (g *Group) Active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.timers)
}

// StopAll cancels every pending timer and returns how many were cancelled
func (g *Group) StopAll() int {
	g.mu.Lock()
	g.stopped = true
	timers := g.timers
	g.timers = make(map[uint64]Timer)
	g.mu.Unlock()

	for _, t := range timers {
		if t != nil {
			t.Stop()
		}
	}
	return len(timers)
}
