package engine

import (
	"sort"
	"sync"
	"time"
)

// Timer is a cancellable handle for a scheduled callback. *time.Timer
// satisfies it.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Timer
}

// SchedulerFunc adapts a function to the Scheduler interface
type SchedulerFunc func(d time.Duration, fn func()) Timer

func (f SchedulerFunc) Schedule(d time.Duration, fn func()) Timer {
	return f(d, fn)
}

// RealScheduler schedules callbacks on the wall clock
type RealScheduler struct{}

func (RealScheduler) Schedule(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// ManualClock is a virtual clock. Scheduled callbacks only run from Advance
// or RunUntilIdle, on the caller's goroutine.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	at    time.Duration
	seq   int
	fn    func()
	done  bool
}

// NewManualClock creates a virtual clock at time zero
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Schedule(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}
	c.seq++
	t := &manualTimer{clock: c, at: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.clock.remove(t)
	return true
}

func (c *ManualClock) remove(t *manualTimer) {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// Now returns the elapsed virtual time
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of scheduled callbacks that have not fired
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Advance moves the clock forward by d, firing every callback that falls
// due, including callbacks scheduled by earlier callbacks in the window.
func (c *ManualClock) Advance(d time.Duration) int {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	fired := 0
	for c.fireNext(target) {
		fired++
	}

	c.mu.Lock()
	if c.now < target {
		c.now = target
	}
	c.mu.Unlock()
	return fired
}

// RunUntilIdle fires callbacks in order until none are pending or limit
// callbacks have run.
func (c *ManualClock) RunUntilIdle(limit int) int {
	fired := 0
	for fired < limit {
		c.mu.Lock()
		if len(c.timers) == 0 {
			c.mu.Unlock()
			break
		}
		next := c.earliest()
		c.mu.Unlock()

		if !c.fireNext(next.at) {
			break
		}
		fired++
	}
	return fired
}

func (c *ManualClock) earliest() *manualTimer {
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at == c.timers[j].at {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].at < c.timers[j].at
	})
	return c.timers[0]
}

func (c *ManualClock) fireNext(limit time.Duration) bool {
	c.mu.Lock()
	if len(c.timers) == 0 {
		c.mu.Unlock()
		return false
	}
	next := c.earliest()
	if next.at > limit {
		c.mu.Unlock()
		return false
	}
	next.done = true
	c.remove(next)
	if next.at > c.now {
		c.now = next.at
	}
	c.mu.Unlock()

	next.fn()
	return true
}
