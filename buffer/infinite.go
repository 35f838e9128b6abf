package buffer

import "github.com/arloliu/go-csp/internal/queue"

// infinite grows without bound; writers never wait.
type infinite[T any] struct {
	q queue.Queue[T]
}

var _ Policy[int] = (*infinite[int])(nil)

// NewInfinite creates an unbounded FIFO policy. Writers never wait; memory
// use grows with the number of unread values.
func NewInfinite[T any]() Policy[T] {
	return &infinite[T]{q: queue.NewSliceQueue[T](8)}
}

func (p *infinite[T]) Put(v T) error {
	p.q.Enqueue(v)
	return nil
}

func (p *infinite[T]) Get() (T, bool) {
	return p.q.Dequeue()
}

func (p *infinite[T]) State() State {
	if p.q.IsEmpty() {
		return Empty
	}
	return NonEmpty
}

func (p *infinite[T]) Capacity() int {
	return Unbounded
}
