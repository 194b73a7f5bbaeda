package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	task := NewTask(4, 2, 10, 3)

	assert.Equal(t, TaskID(4), task.ID)
	assert.Equal(t, int64(10), task.Remaining)
	assert.Equal(t, int64(3), task.Weight)
	assert.Equal(t, StateReady, task.State)
	assert.Equal(t, 0.0, task.Vruntime)
	assert.Equal(t, int64(-1), task.FirstDispatch)
	assert.Equal(t, int64(-1), task.Completion)
}

func TestNewTask_ClampsWeight(t *testing.T) {
	assert.Equal(t, int64(1), NewTask(1, 0, 1, 0).Weight)
	assert.Equal(t, int64(1), NewTask(1, 0, 1, -5).Weight)
	assert.Equal(t, int64(1), NewTask(1, 0, 1, 1).Weight)
}

func TestTask_Accrue(t *testing.T) {
	light := NewTask(1, 0, 5, 1)
	heavy := NewTask(2, 0, 5, 4)

	assert.Equal(t, int64(2), light.accrue(2, 1024))
	assert.Equal(t, int64(2), heavy.accrue(2, 1024))

	assert.Equal(t, 2048.0, light.Vruntime)
	assert.Equal(t, 512.0, heavy.Vruntime)
	assert.Equal(t, int64(3), light.Remaining)
	assert.Equal(t, int64(2), light.Ran)
}

func TestTask_AccrueStopsAtZero(t *testing.T) {
	task := NewTask(1, 0, 3, 1)

	used := task.accrue(5, 1)
	assert.Equal(t, int64(3), used)
	assert.Equal(t, int64(0), task.Remaining)
	assert.Equal(t, int64(3), task.Ran)
}

func TestSpec_Validate(t *testing.T) {
	require.NoError(t, Spec{ID: 1, Arrival: 0, Demand: 0, Tickets: 0}.Validate())

	for _, sp := range []Spec{
		{ID: 1, Arrival: -1, Demand: 1},
		{ID: 1, Demand: -1},
		{ID: 1, Demand: 1, Tickets: -1},
	} {
		assert.ErrorIs(t, sp.Validate(), ErrInvalidSpec, "%+v", sp)
	}
}

func TestStateAndKindStrings(t *testing.T) {
	assert.Equal(t, "READY", StateReady.String())
	assert.Equal(t, "RUNNING", StateRunning.String())
	assert.Equal(t, "TERMINATED", StateTerminated.String())
	assert.Equal(t, "UNKNOWN", State(42).String())

	assert.Equal(t, "Dispatch", EventDispatch.String())
	assert.Equal(t, "Preempt", EventPreempt.String())
	assert.Equal(t, "Unknown", EventKind(42).String())
}
