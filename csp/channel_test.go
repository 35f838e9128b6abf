package csp

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 5 * time.Second

// recvResult waits for a value on done or fails the test.
func recvResult[T any](t *testing.T, done <-chan T) T {
	t.Helper()
	select {
	case v := <-done:
		return v
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for channel operation")
		panic("unreachable")
	}
}

// assertBlocked asserts that nothing arrives on done for a short while.
func assertBlocked[T any](t *testing.T, done <-chan T) {
	t.Helper()
	select {
	case <-done:
		t.Fatal("operation completed but should have blocked")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestOne2One(t *testing.T) {
	t.Run("Reader First", func(t *testing.T) {
		ch := One2One[int]()

		got := make(chan int, 1)
		go func() {
			v, err := ch.In().Read()
			if err == nil {
				got <- v
			}
		}()

		require.NoError(t, ch.Out().Write(42))
		assert.Equal(t, 42, recvResult(t, got))
	})

	t.Run("Writer First", func(t *testing.T) {
		ch := One2One[string]()

		wrote := make(chan error, 1)
		go func() {
			wrote <- ch.Out().Write("hello")
		}()

		// writer must stay blocked until the read happens
		assertBlocked(t, wrote)

		v, err := ch.In().Read()
		require.NoError(t, err)
		assert.Equal(t, "hello", v)
		require.NoError(t, recvResult(t, wrote))
	})

	t.Run("Ordering", func(t *testing.T) {
		ch := One2One[int]()
		const count = 1000

		go func() {
			for i := 0; i < count; i++ {
				if err := ch.Out().Write(i); err != nil {
					return
				}
			}
		}()

		for i := 0; i < count; i++ {
			v, err := ch.In().Read()
			require.NoError(t, err)
			require.Equal(t, i, v)
		}
	})

	t.Run("Struct Payload", func(t *testing.T) {
		type frame struct {
			seq  int
			data []byte
		}
		ch := One2One[frame]()

		go func() {
			_ = ch.Out().Write(frame{seq: 7, data: []byte{1, 2, 3}})
		}()

		v, err := ch.In().Read()
		require.NoError(t, err)
		assert.Equal(t, 7, v.seq)
		assert.Equal(t, []byte{1, 2, 3}, v.data)
	})

	t.Run("Write Blocks Until Consumed", func(t *testing.T) {
		ch := One2One[int]()

		order := make(chan string, 4)
		go func() {
			_ = ch.Out().Write(1)
			order <- "write returned"
		}()

		assertBlocked(t, order)

		_, err := ch.In().Read()
		require.NoError(t, err)
		assert.Equal(t, "write returned", recvResult(t, order))
	})
}

func TestRendezvousStress(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	const (
		pairs  = 8
		rounds = 2000
	)

	var wg sync.WaitGroup
	sums := make([]int, pairs)

	for p := 0; p < pairs; p++ {
		ch := One2One[int]()
		wg.Add(2)

		go func(out *Out[int]) {
			defer wg.Done()
			for i := 1; i <= rounds; i++ {
				if err := out.Write(i); err != nil {
					return
				}
			}
		}(ch.Out())

		go func(p int, in *In[int]) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				v, err := in.Read()
				if err != nil {
					return
				}
				sums[p] += v
			}
		}(p, ch.In())
	}
	wg.Wait()

	want := rounds * (rounds + 1) / 2
	for p := 0; p < pairs; p++ {
		assert.Equal(t, want, sums[p], "pair %d lost or duplicated values", p)
	}
}

func BenchmarkOne2One(b *testing.B) {
	ch := One2One[int]()

	go func() {
		for {
			if _, err := ch.In().Read(); err != nil {
				return
			}
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ch.Out().Write(i)
	}
	b.StopTimer()
	ch.Out().Poison(1)
}
