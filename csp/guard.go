package csp

import (
	"sync"
	"time"
)

// Guard is a waitable condition usable inside an Alternative. Channel
// input ends, timers, booleans, and skips are the built-in guards; custom
// conditions may implement Guard themselves.
//
// Enable registers interest on behalf of the given Alternative and
// reports whether the guard is ready right now; a guard that becomes
// ready later must call the Alternative's Schedule exactly once. Disable
// withdraws the registration and reports whether the guard became ready
// in the meantime. Both are called only by Alternative, with no
// Alternative lock held, so implementations may take their own locks and
// call Schedule while holding them.
type Guard interface {
	Enable(a *Alternative) bool
	Disable() bool
}

// inputCommitter is implemented by channel input ends. Committing
// consumes the pending value at selection time so the writer is released
// even if the selecting process delays its Read.
type inputCommitter interface {
	commitInput()
}

// skipGuard is always ready and never blocks the selection.
type skipGuard struct{}

func (skipGuard) Enable(*Alternative) bool { return true }
func (skipGuard) Disable() bool            { return true }

// Skip returns a guard that is always ready. Putting a Skip last in an
// Alternative turns a blocking Select into a polling one with a default
// branch.
func Skip() Guard {
	return skipGuard{}
}

// Timer is a guard that becomes ready when its alarm time is reached.
// Set the alarm before every selection; an unset alarm is treated as
// already expired. A Timer belongs to one process and one Alternative.
type Timer struct {
	mu    sync.Mutex
	alarm time.Time
	timer *time.Timer // armed while an Alternative is waiting
}

// NewTimer creates a timer guard with an expired alarm.
func NewTimer() *Timer {
	return &Timer{}
}

// SetAlarm arms the guard to become ready at the given time.
func (t *Timer) SetAlarm(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.alarm = at
}

// SetAlarmAfter arms the guard to become ready after duration d.
func (t *Timer) SetAlarmAfter(d time.Duration) {
	t.SetAlarm(time.Now().Add(d))
}

// Alarm returns the currently configured alarm time.
func (t *Timer) Alarm() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alarm
}

// Enable implements Guard. A future alarm schedules a one-shot wakeup of
// the selecting Alternative.
func (t *Timer) Enable(a *Alternative) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	remaining := time.Until(t.alarm)
	if remaining <= 0 {
		return true
	}
	t.timer = time.AfterFunc(remaining, a.Schedule)

	return false
}

// Disable implements Guard.
func (t *Timer) Disable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}

	return time.Until(t.alarm) <= 0
}

// Flag is a boolean guard: it is ready while its value is true. Setting
// the flag from any goroutine wakes an Alternative waiting on it.
type Flag struct {
	mu  sync.Mutex
	set bool
	alt *Alternative
}

// NewFlag creates a boolean guard with the given initial value.
func NewFlag(initial bool) *Flag {
	return &Flag{set: initial}
}

// Set updates the flag. Setting it true readies the guard and wakes a
// waiting Alternative.
func (f *Flag) Set(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.set = v
	if v && f.alt != nil {
		f.alt.Schedule()
	}
}

// Get returns the current flag value.
func (f *Flag) Get() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set
}

// Enable implements Guard.
func (f *Flag) Enable(a *Alternative) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.set {
		return true
	}
	f.alt = a

	return false
}

// Disable implements Guard.
func (f *Flag) Disable() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.alt = nil

	return f.set
}
