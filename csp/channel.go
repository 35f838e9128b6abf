package csp

import (
	"sync"

	"github.com/arloliu/go-csp/buffer"
)

// core is the per-channel monitor: one mutex plus one condition variable
// guarding the rendezvous slot (or the buffer policy) and the poison state.
// Every channel kind shares this core; shared endpoints add a claim mutex
// in front of it, they never touch the monitor state directly.
type core[T any] struct {
	mu   sync.Mutex
	cond *sync.Cond

	// rendezvous slot, used only when buf is nil
	hold     T
	holdFull bool
	consumed bool

	// buffering policy; mutated only while mu is held
	buf buffer.Policy[T]

	// alt is the Alternative that registered passive reader interest,
	// nil when no selection is pending on the input end
	alt *Alternative

	// poison state: terminal once poisoned is set; strength records the
	// first effective poison and never changes afterwards
	poisoned bool
	strength int
	immunity int
}

func newCore[T any](cfg *config[T]) *core[T] {
	c := &core[T]{buf: cfg.buf, immunity: cfg.immunity}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// write blocks the caller until the value is transferred (zero-buffered)
// or accepted by the buffer policy.
func (c *core[T]) write(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buf != nil {
		return c.bufferedWrite(v)
	}
	if c.poisoned {
		return &PoisonError{Strength: c.strength}
	}

	c.hold = v
	c.holdFull = true
	if c.alt != nil {
		c.alt.Schedule()
	} else {
		c.cond.Broadcast()
	}

	for !c.consumed && !c.poisoned {
		c.cond.Wait()
	}
	if !c.consumed {
		// poisoned mid-rendezvous; withdraw the undelivered value
		var zero T
		c.hold = zero
		c.holdFull = false
		return &PoisonError{Strength: c.strength}
	}
	c.consumed = false

	return nil
}

// read blocks the caller until a writer has deposited a value (or the
// buffer policy holds one), then completes the transfer.
func (c *core[T]) read() (T, error) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buf != nil {
		return c.bufferedRead()
	}
	if c.poisoned {
		return zero, &PoisonError{Strength: c.strength}
	}

	for !c.holdFull && !c.poisoned {
		c.cond.Wait()
	}
	if !c.holdFull {
		return zero, &PoisonError{Strength: c.strength}
	}

	v := c.hold
	c.hold = zero
	c.holdFull = false
	c.consumed = true
	c.cond.Broadcast()

	return v, nil
}

func (c *core[T]) bufferedWrite(v T) error {
	for {
		if c.poisoned {
			return &PoisonError{Strength: c.strength}
		}
		if c.buf.State() != buffer.Full {
			break
		}
		c.cond.Wait()
	}

	if err := c.buf.Put(v); err != nil {
		return err
	}
	if c.alt != nil {
		c.alt.Schedule()
	} else {
		c.cond.Broadcast()
	}

	return nil
}

func (c *core[T]) bufferedRead() (T, error) {
	var zero T
	for {
		if c.poisoned {
			return zero, &PoisonError{Strength: c.strength}
		}
		if c.buf.State() != buffer.Empty {
			break
		}
		c.cond.Wait()
	}

	v, _ := c.buf.Get()
	c.cond.Broadcast()

	return v, nil
}

// poison marks the whole channel poisoned. First effective poison wins;
// later calls are no-ops regardless of strength. Strength at or below the
// channel's immunity is inert.
func (c *core[T]) poison(strength int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strength < 0 {
		strength = 0
	}
	if c.poisoned || strength <= c.immunity {
		return
	}
	c.poisoned = true
	c.strength = strength
	c.cond.Broadcast()
	if c.alt != nil {
		c.alt.Schedule()
	}
}

// altEnable registers passive reader interest on behalf of a. It reports
// true when the channel is already ready (value pending or poisoned), in
// which case no registration happens.
func (c *core[T]) altEnable(a *Alternative) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.readyLocked() {
		return true
	}
	c.alt = a

	return false
}

// altDisable withdraws the registration and reports whether the channel
// became ready in the meantime.
func (c *core[T]) altDisable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.alt = nil

	return c.readyLocked()
}

func (c *core[T]) readyLocked() bool {
	if c.poisoned {
		return true
	}
	if c.buf != nil {
		return c.buf.State() != buffer.Empty
	}
	return c.holdFull
}

// tryConsume takes the pending value without blocking, releasing the
// writer. It reports false when nothing is pending, including on a
// poisoned channel, where the following read surfaces the condition.
func (c *core[T]) tryConsume() (T, bool) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.poisoned {
		return zero, false
	}
	if c.buf != nil {
		if c.buf.State() == buffer.Empty {
			return zero, false
		}
		v, _ := c.buf.Get()
		c.cond.Broadcast()
		return v, true
	}
	if !c.holdFull {
		return zero, false
	}

	v := c.hold
	c.hold = zero
	c.holdFull = false
	c.consumed = true
	c.cond.Broadcast()

	return v, true
}

// In is the reading end of a channel with an exclusive reader. It is
// usable by one process at a time; concurrent readers must use a shared
// channel kind instead. In implements Guard, so it may be selected on by
// an Alternative owned by the same process.
type In[T any] struct {
	c *core[T]

	// reservation filled by Alternative at commit time; owned by the
	// reading process, no locking needed
	pending    T
	hasPending bool
}

// Read blocks until a value is available on the channel and returns it.
// It fails with *PoisonError once the channel is poisoned.
//
// After an Alternative has selected this end, Read returns the value the
// selection committed to without blocking.
func (in *In[T]) Read() (T, error) {
	if in.hasPending {
		v := in.pending
		var zero T
		in.pending = zero
		in.hasPending = false
		return v, nil
	}
	return in.c.read()
}

// Poison marks the whole channel poisoned with the given strength.
// See Alternative and PoisonError for the propagation convention.
func (in *In[T]) Poison(strength int) {
	in.c.poison(strength)
}

// Enable implements Guard. It is called by Alternative during selection
// and is not meant for application code.
func (in *In[T]) Enable(a *Alternative) bool {
	return in.c.altEnable(a)
}

// Disable implements Guard. It is called by Alternative during selection
// and is not meant for application code.
func (in *In[T]) Disable() bool {
	return in.c.altDisable()
}

// commitInput consumes the pending value when this end wins a selection,
// releasing the writer immediately. The value is held for the next Read.
func (in *In[T]) commitInput() {
	if v, ok := in.c.tryConsume(); ok {
		in.pending = v
		in.hasPending = true
	}
}

// Out is the writing end of a channel with an exclusive writer.
type Out[T any] struct {
	c *core[T]
}

// Write transfers v to the channel. On a zero-buffered channel it blocks
// until the paired Read has taken the value; on a buffered channel it
// returns as soon as the policy accepts the value. The caller must not
// retain or mutate a transferred value afterwards: the transfer is a move.
//
// Write fails with *PoisonError once the channel is poisoned, and with
// buffer.ErrOverflow when a rejecting policy refuses the value.
func (out *Out[T]) Write(v T) error {
	return out.c.write(v)
}

// Poison marks the whole channel poisoned with the given strength.
func (out *Out[T]) Poison(strength int) {
	out.c.poison(strength)
}

// One2OneChannel connects exactly one writer to exactly one reader.
// Only the ends should be handed to processes, never the channel itself.
type One2OneChannel[T any] struct {
	in  In[T]
	out Out[T]
}

// One2One creates a channel for one writer and one reader. Without
// options it is zero-buffered and poisonable by any strength.
func One2One[T any](opts ...Option[T]) *One2OneChannel[T] {
	cfg := newConfig(opts...)
	ch := &One2OneChannel[T]{}
	c := newCore(cfg)
	ch.in.c = c
	ch.out.c = c

	return ch
}

// In returns the reading end of the channel.
func (ch *One2OneChannel[T]) In() *In[T] { return &ch.in }

// Out returns the writing end of the channel.
func (ch *One2OneChannel[T]) Out() *Out[T] { return &ch.out }
