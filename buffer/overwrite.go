package buffer

import "github.com/arloliu/go-csp/internal/queue"

// overwriteOldest discards the oldest stored value when full.
type overwriteOldest[T any] struct {
	ring *queue.Ring[T]
}

var _ Policy[int] = (*overwriteOldest[int])(nil)

// NewOverwriteOldest creates a bounded policy where a write to a full
// buffer discards the oldest stored value. Writers never wait.
// Capacity must be positive.
func NewOverwriteOldest[T any](capacity int) Policy[T] {
	return &overwriteOldest[T]{ring: queue.NewRing[T](capacity)}
}

func (p *overwriteOldest[T]) Put(v T) error {
	p.ring.EnqueueOverwrite(v)
	return nil
}

func (p *overwriteOldest[T]) Get() (T, bool) {
	return p.ring.Dequeue()
}

func (p *overwriteOldest[T]) State() State {
	if p.ring.IsEmpty() {
		return Empty
	}
	return NonEmpty // never Full, overflow is resolved by discarding
}

func (p *overwriteOldest[T]) Capacity() int {
	return p.ring.Capacity()
}

// overwriteNewest replaces the most recently stored value when full.
type overwriteNewest[T any] struct {
	ring *queue.Ring[T]
}

var _ Policy[int] = (*overwriteNewest[int])(nil)

// NewOverwriteNewest creates a bounded policy where a write to a full
// buffer replaces the most recently stored value. Writers never wait.
// Capacity must be positive.
func NewOverwriteNewest[T any](capacity int) Policy[T] {
	return &overwriteNewest[T]{ring: queue.NewRing[T](capacity)}
}

func (p *overwriteNewest[T]) Put(v T) error {
	if p.ring.IsFull() {
		p.ring.ReplaceTail(v)
		return nil
	}
	p.ring.Enqueue(v)
	return nil
}

func (p *overwriteNewest[T]) Get() (T, bool) {
	return p.ring.Dequeue()
}

func (p *overwriteNewest[T]) State() State {
	if p.ring.IsEmpty() {
		return Empty
	}
	return NonEmpty
}

func (p *overwriteNewest[T]) Capacity() int {
	return p.ring.Capacity()
}
