package sched

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator(t *testing.T, cfg Config, specs ...Spec) *Simulator {
	t.Helper()
	s := New(cfg, testLogger())
	for _, sp := range specs {
		require.NoError(t, s.Add(sp))
	}
	return NewSimulator(s, testLogger())
}

func TestSimulator_RunSingleTask(t *testing.T) {
	sim := newTestSimulator(t, DefaultConfig(), Spec{ID: 1, Arrival: 0, Demand: 10, Tickets: 1})

	var kinds []EventKind
	sim.Observe(ObserverFunc(func(ev Event) { kinds = append(kinds, ev.Kind) }))

	sum, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []EventKind{EventAdmit, EventDispatch, EventFinish}, kinds)
	assert.Equal(t, int64(10), sum.Ticks)
	assert.Equal(t, int64(10), sum.End)
	assert.Equal(t, 1, sum.Dispatches)
	assert.Zero(t, sum.Preemptions)
	require.Len(t, sum.Results, 1)
	assert.Equal(t, int64(10), sum.Results[0].Completion)

	_, err = uuid.Parse(sum.RunID)
	require.NoError(t, err)
	assert.Equal(t, sim.RunID(), sum.RunID)
}

func TestSimulator_CountsIdleAndPreemptions(t *testing.T) {
	sim := newTestSimulator(t, DefaultConfig(),
		Spec{ID: 1, Arrival: 2, Demand: 3, Tickets: 1},
		Spec{ID: 2, Arrival: 2, Demand: 3, Tickets: 1},
	)

	sum, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.IdleTicks)
	assert.Equal(t, int64(8), sum.End)
	// two preemptions, plus the first dispatch and the hand-over after task 1 finished
	assert.Equal(t, 2, sum.Preemptions)
	assert.Equal(t, 4, sum.Dispatches)
}

func TestSimulator_LargerTick(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tick = 4
	sim := newTestSimulator(t, cfg, Spec{ID: 1, Arrival: 0, Demand: 10, Tickets: 1})

	sum, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), sum.Ticks)
	assert.Equal(t, int64(12), sum.Results[0].Completion)
	assert.Equal(t, int64(10), sum.Results[0].Ran)
}

func TestSimulator_TickLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTicks = 10
	sim := newTestSimulator(t, cfg, Spec{ID: 1, Demand: 100, Tickets: 1})

	sum, err := sim.Run(context.Background())
	require.ErrorIs(t, err, ErrTickLimit)
	assert.Equal(t, int64(10), sum.Ticks)
	assert.Equal(t, StateRunning, sum.Results[0].State)
	assert.Equal(t, int64(10), sum.Results[0].Ran)
}

func TestSimulator_Cancelled(t *testing.T) {
	sim := newTestSimulator(t, DefaultConfig(), Spec{ID: 1, Demand: 100, Tickets: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum, err := sim.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sum.Ticks)
}

func TestSimulator_CancelFromObserver(t *testing.T) {
	sim := newTestSimulator(t, DefaultConfig(), Spec{ID: 1, Demand: 100, Tickets: 1})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sim.Trace(func(snap Snapshot) {
		if snap.Now == 4 {
			cancel()
		}
	})

	sum, err := sim.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(5), sum.Ticks)
}

func TestSimulator_Paced(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PaceMS = 1
	sim := newTestSimulator(t, cfg, Spec{ID: 1, Demand: 3, Tickets: 1})

	sum, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), sum.Ticks)
}

func TestSimulator_EmptyWorkload(t *testing.T) {
	sim := newTestSimulator(t, DefaultConfig())

	sum, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sum.Ticks)
	assert.Empty(t, sum.Results)
}

func TestSimulator_ParallelRunsAreIndependent(t *testing.T) {
	specs := []Spec{
		{ID: 1, Arrival: 0, Demand: 6, Tickets: 3},
		{ID: 2, Arrival: 1, Demand: 4, Tickets: 1},
		{ID: 3, Arrival: 3, Demand: 5, Tickets: 2},
	}
	want, err := newTestSimulator(t, DefaultConfig(), specs...).Run(context.Background())
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		t.Run("run", func(t *testing.T) {
			t.Parallel()
			got, err := newTestSimulator(t, DefaultConfig(), specs...).Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, want.Results, got.Results)
			assert.NotEqual(t, want.RunID, got.RunID)
		})
	}
}
