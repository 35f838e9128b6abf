package buffer

import "errors"

// State describes the occupancy of a buffer policy.
type State int

const (
	// Empty means a read would find no value; the channel blocks the reader.
	Empty State = iota
	// NonEmpty means values are available and space remains (or overflow is
	// resolved by the policy itself).
	NonEmpty
	// Full means a write must wait; the channel blocks the writer until a
	// read frees space. Only blocking policies ever report Full.
	Full
)

// Unbounded is returned by Capacity for policies without a capacity limit.
const Unbounded = -1

// ErrOverflow indicates that a rejecting policy refused a value because the
// buffer is at capacity. The write fails; the caller decides whether to
// retry or drop.
var ErrOverflow = errors.New("buffer capacity exceeded")

// Policy is the buffering discipline plugged into a buffered channel.
//
// Put and Get are called only while the owning channel holds its monitor,
// so implementations need no locking of their own. Put must never be called
// while State reports Full; the channel guarantees this by blocking first.
type Policy[T any] interface {
	// Put stores a value. It returns ErrOverflow when the policy rejects
	// the value instead of storing it; every other outcome is acceptance
	// (possibly discarding a previously stored value).
	Put(v T) error
	// Get removes and returns the oldest stored value. The second return
	// value is false if the buffer is empty.
	Get() (T, bool)
	// State reports the current occupancy.
	State() State
	// Capacity returns the maximum number of stored values, or Unbounded.
	Capacity() int
}
