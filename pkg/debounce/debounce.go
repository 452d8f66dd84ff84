// Package debounce provides a single-shot timer that restarts on every call.
//
// Two modes are supported. Restart schedules a callback on a background
// timer, which suits hosts that are safe to call from another goroutine.
// Arm and Fired suit event loops that deliver their own delayed message
// (such as a bubbletea tick): Arm hands out a token, and Fired reports
// whether that token is still the latest one when the message arrives.
package debounce

import (
	"sync"
	"time"
)

// Timer is a cancel-and-restart timer. The zero value is not usable; create
// one with New.
type Timer struct {
	delay     time.Duration
	afterFunc func(time.Duration, func()) stopper

	mu      sync.Mutex
	timer   stopper
	token   uint64
	pending bool
}

type stopper interface {
	Stop() bool
}

// Option configures a Timer.
type Option func(*Timer)

// WithAfterFunc replaces time.AfterFunc. Tests use it to fire callbacks
// synchronously.
func WithAfterFunc(fn func(d time.Duration, f func()) interface{ Stop() bool }) Option {
	return func(t *Timer) {
		t.afterFunc = func(d time.Duration, f func()) stopper { return fn(d, f) }
	}
}

// New creates a Timer with the given delay.
func New(delay time.Duration, opts ...Option) *Timer {
	t := &Timer{
		delay: delay,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Delay returns the configured delay.
func (t *Timer) Delay() time.Duration { return t.delay }

// Restart cancels any pending callback and schedules fn to run after the
// delay. Only the callback of the most recent Restart runs.
func (t *Timer) Restart(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.token++
	token := t.token
	t.pending = true

	t.timer = t.afterFunc(t.delay, func() {
		t.mu.Lock()
		current := t.token == token && t.pending
		if current {
			t.pending = false
			t.timer = nil
		}
		t.mu.Unlock()

		if current {
			fn()
		}
	})
}

// Arm cancels any pending callback and returns a token for a delayed
// message delivered by the caller.
func (t *Timer) Arm() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.token++
	t.pending = true
	return t.token
}

// Fired reports whether token is the latest armed token and consumes it.
// Stale tokens return false.
func (t *Timer) Fired(token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.pending || token != t.token {
		return false
	}
	t.pending = false
	return true
}

// Stop cancels the pending callback or token.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.token++
	t.pending = false
}

// Pending reports whether a callback or token is outstanding.
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}
