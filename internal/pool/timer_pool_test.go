package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerPool(t *testing.T) {
	assert := assert.New(t)

	t.Run("Fires", func(t *testing.T) {
		timer := GetTimer(time.Millisecond)
		select {
		case <-timer.C:
		case <-time.After(time.Second):
			require.Fail(t, "timer did not fire")
		}
		PutTimer(timer)
	})

	t.Run("Reuse", func(t *testing.T) {
		timer := GetTimer(time.Hour)
		PutTimer(timer)

		reused := GetTimer(time.Millisecond)
		select {
		case <-reused.C:
		case <-time.After(time.Second):
			require.Fail(t, "reused timer did not fire")
		}
		PutTimer(reused)
	})

	t.Run("PutFired", func(t *testing.T) {
		timer := GetTimer(time.Millisecond)
		time.Sleep(10 * time.Millisecond)
		// fired but never drained by the caller
		PutTimer(timer)

		reused := GetTimer(time.Hour)
		select {
		case <-reused.C:
			assert.Fail("stale expiry leaked into reused timer")
		default:
		}
		PutTimer(reused)
	})
}
