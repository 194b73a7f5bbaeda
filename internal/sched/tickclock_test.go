package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickClock_EmitsAndStops(t *testing.T) {
	c := NewTickClock(1)
	c.Start(time.Millisecond)

	for i := 0; i < 3; i++ {
		select {
		case <-c.Ch:
		case <-time.After(time.Second):
			t.Fatal("no tick within a second")
		}
	}
	assert.GreaterOrEqual(t, c.Count(), int64(3))

	c.Stop()
	c.Stop()

	// the channel is closed once the goroutine exits
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-c.Ch:
			if !ok {
				return
			}
		case <-deadline:
			require.Fail(t, "tick channel not closed after Stop")
		}
	}
}
