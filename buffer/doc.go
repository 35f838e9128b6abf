// Package buffer provides pluggable buffering policies for go-csp channels.
//
// A Policy decides what happens to values written into a buffered channel
// before a reader retrieves them. The channel owns all blocking; a policy
// only stores values and reports its state, and must never block internally.
//
// Provided policies:
//
//   - Fifo:  bounded FIFO, the channel blocks the writer while Full.
//   - OverwriteOldest:  bounded FIFO, a write to a full buffer discards the oldest value.
//   - OverwriteNewest:  bounded FIFO, a write to a full buffer replaces the newest value.
//   - Infinite:  unbounded FIFO, writers never wait.
//   - Rejecting:  bounded FIFO, a write to a full buffer fails with ErrOverflow.
//
// The liveness contract between a channel and its policy is driven by State:
// a policy that reports Full makes the channel block the writer until a read
// frees space, while a policy that never reports Full resolves a write at
// capacity itself, either by overwriting or by failing Put.
//
// Custom policies may be supplied to the channel constructors; they must be
// deterministic and non-blocking.
package buffer
