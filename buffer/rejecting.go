package buffer

import "github.com/arloliu/go-csp/internal/queue"

// rejecting fails Put when full instead of blocking or discarding.
type rejecting[T any] struct {
	ring *queue.Ring[T]
}

var _ Policy[int] = (*rejecting[int])(nil)

// NewRejecting creates a bounded policy where a write to a full buffer
// fails with ErrOverflow instead of waiting. Capacity must be positive.
func NewRejecting[T any](capacity int) Policy[T] {
	return &rejecting[T]{ring: queue.NewRing[T](capacity)}
}

func (p *rejecting[T]) Put(v T) error {
	if p.ring.IsFull() {
		return ErrOverflow
	}
	p.ring.Enqueue(v)
	return nil
}

func (p *rejecting[T]) Get() (T, bool) {
	return p.ring.Dequeue()
}

func (p *rejecting[T]) State() State {
	if p.ring.IsEmpty() {
		return Empty
	}
	return NonEmpty // never Full; overflow is surfaced through Put
}

func (p *rejecting[T]) Capacity() int {
	return p.ring.Capacity()
}
