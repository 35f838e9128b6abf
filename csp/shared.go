package csp

import "sync"

// SharedIn is the reading end of a channel shared by many competing
// readers. Each Read claims the end, completes the transfer against the
// underlying channel, and releases the claim, so exactly one contender
// is live at a time. A claimed contender is committed and cannot back
// off, which is why SharedIn does not implement Guard and cannot take
// part in an Alternative.
//
// Claim order under contention follows the Go runtime's mutex wake-up
// order. The runtime hands blocked-over-1ms waiters the lock FIFO, which
// bounds short-term unfairness, but no stronger fairness is guaranteed.
type SharedIn[T any] struct {
	claim sync.Mutex
	c     *core[T]
}

// Read claims the shared end, blocks until a value is available, and
// returns it. It fails with *PoisonError once the channel is poisoned.
func (in *SharedIn[T]) Read() (T, error) {
	in.claim.Lock()
	defer in.claim.Unlock()
	return in.c.read()
}

// Poison marks the whole channel poisoned with the given strength. It
// does not wait for a claim, so contenders blocked mid-transfer are
// released promptly.
func (in *SharedIn[T]) Poison(strength int) {
	in.c.poison(strength)
}

// SharedOut is the writing end of a channel shared by many competing
// writers. See SharedIn for the claim discipline and its fairness.
type SharedOut[T any] struct {
	claim sync.Mutex
	c     *core[T]
}

// Write claims the shared end and transfers v as Out.Write does.
func (out *SharedOut[T]) Write(v T) error {
	out.claim.Lock()
	defer out.claim.Unlock()
	return out.c.write(v)
}

// Poison marks the whole channel poisoned with the given strength,
// without waiting for a claim.
func (out *SharedOut[T]) Poison(strength int) {
	out.c.poison(strength)
}

// One2AnyChannel connects one writer to many competing readers. It is a
// safely shared channel, not a broadcaster: each value goes to exactly
// one reader.
type One2AnyChannel[T any] struct {
	in  SharedIn[T]
	out Out[T]
}

// One2Any creates a channel for one writer and many competing readers.
func One2Any[T any](opts ...Option[T]) *One2AnyChannel[T] {
	cfg := newConfig(opts...)
	ch := &One2AnyChannel[T]{}
	c := newCore(cfg)
	ch.in.c = c
	ch.out.c = c

	return ch
}

// In returns the shared reading end of the channel.
func (ch *One2AnyChannel[T]) In() *SharedIn[T] { return &ch.in }

// Out returns the writing end of the channel.
func (ch *One2AnyChannel[T]) Out() *Out[T] { return &ch.out }

// Any2OneChannel connects many competing writers to one reader. The
// reading end is exclusive and may be selected on by an Alternative.
type Any2OneChannel[T any] struct {
	in  In[T]
	out SharedOut[T]
}

// Any2One creates a channel for many competing writers and one reader.
func Any2One[T any](opts ...Option[T]) *Any2OneChannel[T] {
	cfg := newConfig(opts...)
	ch := &Any2OneChannel[T]{}
	c := newCore(cfg)
	ch.in.c = c
	ch.out.c = c

	return ch
}

// In returns the reading end of the channel.
func (ch *Any2OneChannel[T]) In() *In[T] { return &ch.in }

// Out returns the shared writing end of the channel.
func (ch *Any2OneChannel[T]) Out() *SharedOut[T] { return &ch.out }

// Any2AnyChannel connects many competing writers to many competing
// readers.
type Any2AnyChannel[T any] struct {
	in  SharedIn[T]
	out SharedOut[T]
}

// Any2Any creates a channel for many competing writers and many
// competing readers.
func Any2Any[T any](opts ...Option[T]) *Any2AnyChannel[T] {
	cfg := newConfig(opts...)
	ch := &Any2AnyChannel[T]{}
	ch.in.c = newCore(cfg)
	ch.out.c = ch.in.c

	return ch
}

// In returns the shared reading end of the channel.
func (ch *Any2AnyChannel[T]) In() *SharedIn[T] { return &ch.in }

// Out returns the shared writing end of the channel.
func (ch *Any2AnyChannel[T]) Out() *SharedOut[T] { return &ch.out }
