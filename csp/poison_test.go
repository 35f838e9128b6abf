package csp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-csp/buffer"
)

func TestPoisonBasics(t *testing.T) {
	t.Run("Both Ends Fail", func(t *testing.T) {
		ch := One2One[int]()
		ch.Out().Poison(3)

		_, err := ch.In().Read()
		require.Error(t, err)
		assert.True(t, IsPoison(err))
		assert.Equal(t, 3, PoisonStrength(err))

		err = ch.Out().Write(1)
		require.Error(t, err)
		assert.Equal(t, 3, PoisonStrength(err))
	})

	t.Run("First Poison Wins", func(t *testing.T) {
		ch := One2One[int]()
		ch.In().Poison(2)
		ch.Out().Poison(5)

		_, err := ch.In().Read()
		assert.Equal(t, 2, PoisonStrength(err))

		err = ch.Out().Write(1)
		assert.Equal(t, 2, PoisonStrength(err))
	})

	t.Run("Strength Zero Is Observable", func(t *testing.T) {
		ch := One2One[int]()
		ch.In().Poison(0)

		_, err := ch.In().Read()
		require.True(t, IsPoison(err))
		assert.Equal(t, 0, PoisonStrength(err))
	})

	t.Run("Negative Strength Clamps To Zero", func(t *testing.T) {
		ch := One2One[int]()
		ch.In().Poison(-7)

		_, err := ch.In().Read()
		assert.Equal(t, 0, PoisonStrength(err))
	})

	t.Run("Not Poison", func(t *testing.T) {
		assert.False(t, IsPoison(nil))
		assert.Equal(t, -1, PoisonStrength(nil))
		assert.False(t, IsPoison(buffer.ErrOverflow))
	})
}

func TestPoisonImmunity(t *testing.T) {
	ch := One2One(WithImmunity[int](2))

	// strengths up to the immunity level are inert
	ch.In().Poison(1)
	ch.Out().Poison(2)

	done := make(chan int, 1)
	go func() {
		v, err := ch.In().Read()
		if err == nil {
			done <- v
		}
	}()
	require.NoError(t, ch.Out().Write(42))
	assert.Equal(t, 42, recvResult(t, done))

	// above the level, poison takes effect
	ch.Out().Poison(3)
	_, err := ch.In().Read()
	assert.Equal(t, 3, PoisonStrength(err))
}

func TestPoisonWakesBlocked(t *testing.T) {
	t.Run("Blocked Reader", func(t *testing.T) {
		ch := One2One[int]()

		got := make(chan error, 1)
		go func() {
			_, err := ch.In().Read()
			got <- err
		}()

		assertBlocked(t, got)
		ch.Out().Poison(1)

		err := recvResult(t, got)
		assert.Equal(t, 1, PoisonStrength(err))
	})

	t.Run("Blocked Writer", func(t *testing.T) {
		ch := One2One[int]()

		got := make(chan error, 1)
		go func() {
			got <- ch.Out().Write(7)
		}()

		assertBlocked(t, got)
		ch.In().Poison(2)

		err := recvResult(t, got)
		assert.Equal(t, 2, PoisonStrength(err))
	})

	t.Run("Writer Blocked On Full Buffer", func(t *testing.T) {
		ch := One2One(WithBuffer(buffer.NewFifo[int](1)))
		require.NoError(t, ch.Out().Write(1))

		got := make(chan error, 1)
		go func() {
			got <- ch.Out().Write(2)
		}()

		assertBlocked(t, got)
		ch.In().Poison(1)

		err := recvResult(t, got)
		assert.True(t, IsPoison(err))
	})

	t.Run("Waiting Alternative", func(t *testing.T) {
		ch := One2One[int]()
		alt := NewAlternative(ch.In())

		selected := make(chan error, 1)
		go func() {
			idx := alt.Select()
			_, err := ch.In().Read()
			if idx != 0 {
				err = nil
			}
			selected <- err
		}()

		assertBlocked(t, selected)
		ch.Out().Poison(4)

		// the guard reports ready and the committed Read surfaces poison
		err := recvResult(t, selected)
		assert.Equal(t, 4, PoisonStrength(err))
	})

	t.Run("Shared Contenders Released", func(t *testing.T) {
		ch := Any2Any[int]()

		errs := make(chan error, 4)
		for i := 0; i < 3; i++ {
			go func() {
				_, err := ch.In().Read()
				errs <- err
			}()
		}
		go func() {
			errs <- ch.Out().Write(1)
		}()

		// at most one reader can pair with the single write; after
		// poison, every remaining contender must be released with the
		// condition
		ch.In().Poison(1)

		poisonedOps := 0
		for i := 0; i < 4; i++ {
			if IsPoison(recvResult(t, errs)) {
				poisonedOps++
			}
		}
		assert.GreaterOrEqual(t, poisonedOps, 2)
	})
}

// TestPoisonPropagationDepth verifies staged shutdown over the chain
// A -> B -> C -> D: D poisons with 2, each stage re-poisons upstream
// with one less, and the stage that catches 0 stops propagating.
func TestPoisonPropagationDepth(t *testing.T) {
	ab := One2One[int]()
	bc := One2One[int]()
	cd := One2One[int]()

	// caughtX records the strength each relay stage observed
	caughtB := make(chan int, 1)
	caughtC := make(chan int, 1)
	caughtA := make(chan int, 1)

	relay := func(in *In[int], out *Out[int], caught chan<- int) func() {
		return func() {
			for {
				v, err := in.Read()
				if err != nil {
					s := PoisonStrength(err)
					caught <- s
					if s > 0 {
						out.Poison(s - 1)
					}
					return
				}
				if err := out.Write(v); err != nil {
					s := PoisonStrength(err)
					caught <- s
					if s > 0 {
						in.Poison(s - 1)
					}
					return
				}
			}
		}
	}

	// A feeds the chain until its channel is poisoned
	go func() {
		i := 0
		for {
			if err := ab.Out().Write(i); err != nil {
				caughtA <- PoisonStrength(err)
				return
			}
			i++
		}
	}()
	go relay(ab.In(), bc.Out(), caughtB)()
	go relay(bc.In(), cd.Out(), caughtC)()

	// D consumes a few values, then poisons with strength 2
	for i := 0; i < 3; i++ {
		_, err := cd.In().Read()
		require.NoError(t, err)
	}
	cd.In().Poison(2)

	// C catches 2 on the poisoned channel and re-poisons upstream with 1
	assert.Equal(t, 2, recvResult(t, caughtC))
	// B catches 1 and re-poisons upstream with 0
	assert.Equal(t, 1, recvResult(t, caughtB))
	// A catches 0: end of the chain, no further propagation
	assert.Equal(t, 0, recvResult(t, caughtA))
}
