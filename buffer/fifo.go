package buffer

import "github.com/arloliu/go-csp/internal/queue"

// fifo is a bounded FIFO policy; the channel blocks writers while Full.
type fifo[T any] struct {
	ring *queue.Ring[T]
}

var _ Policy[int] = (*fifo[int])(nil)

// NewFifo creates a bounded FIFO policy with the given capacity.
// A write to a full buffer blocks until a reader frees space.
// Capacity must be positive.
func NewFifo[T any](capacity int) Policy[T] {
	return &fifo[T]{ring: queue.NewRing[T](capacity)}
}

func (p *fifo[T]) Put(v T) error {
	p.ring.Enqueue(v)
	return nil
}

func (p *fifo[T]) Get() (T, bool) {
	return p.ring.Dequeue()
}

func (p *fifo[T]) State() State {
	switch {
	case p.ring.IsEmpty():
		return Empty
	case p.ring.IsFull():
		return Full
	default:
		return NonEmpty
	}
}

func (p *fifo[T]) Capacity() int {
	return p.ring.Capacity()
}
