package csp

import (
	"sync"
	"time"

	"github.com/arloliu/go-csp/internal/pool"
)

// NoneSelected is returned by TrySelect and SelectTimeout when no guard
// was ready.
const NoneSelected = -1

type altState int

const (
	altInactive altState = iota
	altEnabling
	altWaiting
	altReady
)

// Alternative selects between a fixed, ordered set of guards, committing
// to exactly one ready guard per selection. It is constructed once per
// process for a guard set and invoked repeatedly; the guards are
// referenced, not owned, and their channel ends stay usable between
// selections.
//
// An Alternative belongs to one process. Calling any select method from
// two goroutines at once panics. Shared channel ends cannot appear in the
// guard list: they do not implement Guard, because a shared contender may
// not back off once committed.
//
// When the selected guard is a channel input, the pending value has been
// consumed by the time the select method returns (the writer is released)
// and the following Read on that end returns it without blocking. When
// the selected guard is ready because its channel is poisoned, the
// following Read surfaces the *PoisonError.
type Alternative struct {
	mu   sync.Mutex
	cond *sync.Cond

	guards    []Guard
	favourite int // next Select scans from here; advanced after each commit
	state     altState
}

// NewAlternative creates an Alternative over the given guards. The guard
// order is the priority order for PriSelect and the rotation order for
// Select.
func NewAlternative(guards ...Guard) *Alternative {
	a := &Alternative{guards: guards}
	a.cond = sync.NewCond(&a.mu)
	return a
}

// Len returns the number of guards.
func (a *Alternative) Len() int {
	return len(a.guards)
}

// Select blocks until at least one guard is ready and returns the index
// of the committed guard. Selection is eventually fair: scanning starts
// at a rotating favourite index, which is advanced past the committed
// guard, so no continuously-ready guard starves.
//
// An empty guard list blocks forever.
func (a *Alternative) Select() int {
	return a.doSelect(nil, true)
}

// SelectPre is Select with preconditions: guards with pre[i] == false do
// not take part in the selection. The slice length must match the guard
// count.
func (a *Alternative) SelectPre(pre []bool) int {
	return a.doSelect(pre, true)
}

// PriSelect blocks until at least one guard is ready and commits to the
// ready guard with the lowest index. Unlike Select it never rotates, so
// a continuously-ready low-index guard starves the rest.
func (a *Alternative) PriSelect() int {
	return a.doSelect(nil, false)
}

// PriSelectPre is PriSelect with preconditions, as in SelectPre.
func (a *Alternative) PriSelectPre(pre []bool) int {
	return a.doSelect(pre, false)
}

// TrySelect polls the guards once: it returns the index of a committed
// ready guard, or NoneSelected immediately when none is ready.
func (a *Alternative) TrySelect() int {
	selected := a.selectOnce(a.favourite, nil, false)
	if selected != NoneSelected {
		a.commit(selected, true)
	}
	return selected
}

// SelectTimeout is Select with a bounded wait: it returns NoneSelected
// if no guard became ready within d.
func (a *Alternative) SelectTimeout(d time.Duration) int {
	deadline := time.Now().Add(d)

	timer := pool.GetTimer(d)
	defer pool.PutTimer(timer)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-timer.C:
			a.Schedule()
		case <-stop:
		}
	}()

	for {
		selected := a.selectOnce(a.favourite, nil, true)
		if selected != NoneSelected {
			a.commit(selected, true)
			return selected
		}
		if !time.Now().Before(deadline) {
			return NoneSelected
		}
		// woken before the deadline with nothing ready; wait again
	}
}

// Schedule wakes a selection in progress. It is called by a guard that
// becomes ready after being enabled, from any goroutine, possibly while
// the guard holds its own lock. Scheduling an idle Alternative is a
// no-op.
func (a *Alternative) Schedule() {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.state {
	case altEnabling:
		a.state = altReady
	case altWaiting:
		a.state = altReady
		a.cond.Broadcast()
	case altInactive, altReady:
		// nothing to wake
	}
}

func (a *Alternative) doSelect(pre []bool, fair bool) int {
	if pre != nil && len(pre) != len(a.guards) {
		panic("csp: precondition length does not match guard count")
	}

	for {
		start := 0
		if fair {
			start = a.favourite
		}
		selected := a.selectOnce(start, pre, true)
		if selected != NoneSelected {
			a.commit(selected, fair)
			return selected
		}
		// stale wakeup, e.g. a timer armed by an abandoned timed
		// selection; nothing is ready, so enable and wait again
	}
}

// selectOnce runs a single enable/wait/disable cycle starting the guard
// scan at start. It returns the selected index, or NoneSelected when
// nothing was ready (only possible when block is false or the wakeup was
// stale).
func (a *Alternative) selectOnce(start int, pre []bool, block bool) int {
	n := len(a.guards)

	a.mu.Lock()
	if a.state != altInactive {
		a.mu.Unlock()
		panic("csp: Alternative used concurrently")
	}
	a.state = altEnabling
	a.mu.Unlock()

	// enable phase: stop at the first guard that is ready right now
	ready := -1
	enabled := 0
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		if pre != nil && !pre[idx] {
			continue
		}
		enabled = i + 1
		if a.guards[idx].Enable(a) {
			ready = idx
			break
		}
	}

	if ready < 0 && block {
		a.mu.Lock()
		if a.state == altEnabling {
			a.state = altWaiting
			for a.state == altWaiting {
				a.cond.Wait()
			}
		}
		a.mu.Unlock()
	}

	// disable phase: unwind exactly the enabled guards in reverse so no
	// channel is left believing a selection is pending. The earliest
	// scan position that reports ready wins.
	selected := ready
	for i := enabled - 1; i >= 0; i-- {
		idx := (start + i) % n
		if pre != nil && !pre[idx] {
			continue
		}
		if a.guards[idx].Disable() {
			selected = idx
		}
	}

	a.mu.Lock()
	a.state = altInactive
	a.mu.Unlock()

	return selected
}

// commit finalizes the selection: a channel input guard consumes its
// pending value, and fair selection rotates the favourite past the
// committed guard.
func (a *Alternative) commit(selected int, fair bool) {
	if c, ok := a.guards[selected].(inputCommitter); ok {
		c.commitInput()
	}
	if fair {
		a.favourite = (selected + 1) % len(a.guards)
	}
}
