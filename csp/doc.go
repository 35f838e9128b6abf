// Package csp provides Communicating Sequential Processes primitives for Go:
// synchronizing channels with exclusive or shared endpoints, guarded
// selection over multiple events (Alternative), and cooperative network
// shutdown via poison.
//
// Processes hold channel ends, never whole channels. A channel is created
// by one of four constructors matching its endpoint sharing:
//
//   - [One2One]: one writer, one reader. The reading end can be selected on.
//   - [One2Any]: one writer, many competing readers.
//   - [Any2One]: many competing writers, one reader. The reading end can be selected on.
//   - [Any2Any]: many writers, many readers.
//
// The default channel is zero-buffered: Write blocks until the matching
// Read has taken the value, and vice versa. [WithBuffer] inserts a
// [buffer.Policy] between writer and reader, making the channel
// asynchronous up to the policy's discipline.
//
// Shared ends serialize their contenders: every Read or Write claims the
// end, completes the transfer, and releases it. A contender that has
// claimed a shared end is committed and may not back off, which is why
// shared ends cannot be used as guards in an [Alternative]. Claim order
// under contention is whatever the Go runtime's mutex wake-up order
// provides; Go mutexes hand the lock off FIFO once a waiter has been
// blocked for over a millisecond, which bounds (but does not eliminate)
// short-term unfairness.
//
// # Selection
//
// An [Alternative] waits on a fixed, ordered set of [Guard] values (the
// exclusive reading ends of channels, timers, booleans, and skips) and
// commits to exactly one that is ready. Select is eventually fair: a
// rotating favourite index ensures no continuously-ready guard starves.
// After Select returns the index of a channel guard, the pending value is
// reserved for the selecting process and the following Read on that end
// returns it without blocking.
//
// # Poison
//
// Poison(strength) marks the whole channel terminally poisoned. Every
// blocked and future Read, Write, or selection on any of its ends fails
// with [*PoisonError] carrying the strength of the first effective poison.
// The convention for network shutdown is that a process catching strength
// s re-poisons its other channels with strength s-1, and a process
// catching strength 0 terminates without propagating at all, which bounds
// the propagation depth. [WithImmunity] makes a channel ignore poison up
// to a chosen strength, fencing off part of a network from shutdown.
//
// Misusing an exclusive end from multiple goroutines concurrently is a
// programming error that the channel does not detect; use the shared
// channel variants instead. Concurrent use of a single Alternative panics.
package csp
