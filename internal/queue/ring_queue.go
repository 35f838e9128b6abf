package queue

// Ring is a fixed-capacity circular FIFO. It never reallocates;
// Enqueue on a full ring silently drops the item, so callers must
// check IsFull first. Bounded buffers own that check.
//
// It implements the Queue interface and adds overwrite operations
// used by the overwriting buffer policies.
type Ring[T any] struct {
	items []T
	head  int
	count int
}

var _ Queue[int] = (*Ring[int])(nil)

// NewRing creates a new Ring with the given capacity.
// Capacity must be positive.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic("queue: ring capacity must be positive")
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Enqueue adds an item to the tail of the queue.
// The item is dropped when the ring is full.
func (q *Ring[T]) Enqueue(item T) {
	if q.count == len(q.items) {
		return
	}
	q.items[(q.head+q.count)%len(q.items)] = item
	q.count++
}

// EnqueueOverwrite adds an item to the tail of the queue, discarding
// the oldest item when the ring is full. It returns the discarded item
// and true when an overwrite happened.
func (q *Ring[T]) EnqueueOverwrite(item T) (T, bool) {
	var discarded T
	if q.count == len(q.items) {
		discarded = q.items[q.head]
		q.items[q.head] = item
		q.head = (q.head + 1) % len(q.items)
		return discarded, true
	}
	q.Enqueue(item)
	return discarded, false
}

// ReplaceTail overwrites the most recently enqueued item, returning
// the replaced item. It reports false when the queue is empty.
func (q *Ring[T]) ReplaceTail(item T) (T, bool) {
	var replaced T
	if q.count == 0 {
		return replaced, false
	}
	idx := (q.head + q.count - 1) % len(q.items)
	replaced = q.items[idx]
	q.items[idx] = item
	return replaced, true
}

// Dequeue removes and returns the item at the head of the queue.
func (q *Ring[T]) Dequeue() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	item := q.items[q.head]
	q.items[q.head] = zero // release the reference for GC
	q.head = (q.head + 1) % len(q.items)
	q.count--
	return item, true
}

// Peek returns the item at the head of the queue without removing it.
func (q *Ring[T]) Peek() (T, bool) {
	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

// Reset resets the queue to an empty state.
func (q *Ring[T]) Reset() {
	var zero T
	for i := range q.items {
		q.items[i] = zero
	}
	q.head = 0
	q.count = 0
}

// IsEmpty returns true if the queue is empty, false otherwise.
func (q *Ring[T]) IsEmpty() bool {
	return q.count == 0
}

// IsFull returns true if the queue holds capacity items.
func (q *Ring[T]) IsFull() bool {
	return q.count == len(q.items)
}

// Length returns the number of items in the queue.
func (q *Ring[T]) Length() int {
	return q.count
}

// Capacity returns the fixed capacity of the ring.
func (q *Ring[T]) Capacity() int {
	return len(q.items)
}
