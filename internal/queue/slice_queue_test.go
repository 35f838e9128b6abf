package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceQueue(t *testing.T) {
	assert := assert.New(t)
	t.Run("Empty Queue", func(t *testing.T) {
		q := NewSliceQueue[string](1)

		assert.True(q.IsEmpty())
		assert.Equal(0, q.Length())

		_, ok := q.Dequeue()
		assert.False(ok)
		_, ok = q.Peek()
		assert.False(ok)
	})

	t.Run("Enqueue and Dequeue", func(t *testing.T) {
		q := NewSliceQueue[string](1)

		q.Enqueue("data1")
		assert.False(q.IsEmpty())
		assert.Equal(1, q.Length())

		q.Enqueue("data2")
		assert.Equal(2, q.Length())

		item, ok := q.Dequeue()
		assert.True(ok)
		assert.Equal("data1", item)
		assert.Equal(1, q.Length())

		item, ok = q.Dequeue()
		assert.True(ok)
		assert.Equal("data2", item)
		assert.True(q.IsEmpty())

		_, ok = q.Dequeue()
		assert.False(ok)
		assert.True(q.IsEmpty())
	})

	t.Run("Peek", func(t *testing.T) {
		q := NewSliceQueue[string](1)

		q.Enqueue("data1")

		item, ok := q.Peek()
		assert.True(ok)
		assert.Equal("data1", item)
		assert.Equal(1, q.Length()) // Length should not change after peek

		q.Enqueue("data2")

		item, _ = q.Peek()
		assert.Equal("data1", item)
		assert.Equal(2, q.Length())

		q.Dequeue()
		item, _ = q.Peek()
		assert.Equal("data2", item)
		assert.Equal(1, q.Length())

		q.Dequeue()
		_, ok = q.Peek()
		assert.False(ok)
		assert.Equal(0, q.Length())
	})

	t.Run("Reset", func(t *testing.T) {
		q := NewSliceQueue[int](4)
		for i := 0; i < 4; i++ {
			q.Enqueue(i)
		}
		q.Reset()
		assert.True(q.IsEmpty())
		_, ok := q.Dequeue()
		assert.False(ok)
	})

	t.Run("FIFO Order", func(t *testing.T) {
		q := NewSliceQueue[int](8)
		for i := 0; i < 100; i++ {
			q.Enqueue(i)
		}
		for i := 0; i < 100; i++ {
			item, ok := q.Dequeue()
			assert.True(ok)
			assert.Equal(i, item)
		}
	})
}

func BenchmarkSliceQueue_100(b *testing.B) {
	benchSliceQueue(b, 100)
}

func BenchmarkSliceQueue_1000(b *testing.B) {
	benchSliceQueue(b, 1000)
}

func benchSliceQueue(b *testing.B, iterCount int) {
	q := NewSliceQueue[int](iterCount)

	// warm up queue
	for i := 0; i < iterCount; i++ {
		q.Enqueue(i)
	}
	for i := 0; i < iterCount; i++ {
		_, _ = q.Dequeue()
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := 0; i < iterCount; i++ {
			q.Enqueue(i)
		}
		for i := 0; i < iterCount; i++ {
			_, _ = q.Dequeue()
		}
	}
}
