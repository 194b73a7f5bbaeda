package sched

import "fmt"

// TaskID uniquely identifies a task in the scheduler.
type TaskID uint64

// MinWeight is the smallest weight a task can carry. A ticket value of 0
// (or anything below) is clamped up to it.
const MinWeight = 1

// State is the lifecycle state of a task.
type State int

const (
	StateReady State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// Spec describes a task as handed over by a workload loader.
type Spec struct {
	ID      TaskID
	Arrival int64 // tick at which the task becomes eligible
	Demand  int64 // total execution units
	Tickets int64 // share value, weight = max(Tickets, MinWeight)
}

// Validate rejects specs the engine must never see.
func (sp Spec) Validate() error {
	switch {
	case sp.Arrival < 0:
		return fmt.Errorf("task %d: negative arrival %d: %w", sp.ID, sp.Arrival, ErrInvalidSpec)
	case sp.Demand < 0:
		return fmt.Errorf("task %d: negative demand %d: %w", sp.ID, sp.Demand, ErrInvalidSpec)
	case sp.Tickets < 0:
		return fmt.Errorf("task %d: negative tickets %d: %w", sp.ID, sp.Tickets, ErrInvalidSpec)
	}
	return nil
}

// Task represents one schedulable task unit.
type Task struct {
	ID      TaskID
	Arrival int64
	Demand  int64
	Tickets int64
	Weight  int64 // max(Tickets, MinWeight)

	Remaining     int64
	Vruntime      float64 // only moves while RUNNING, or when seeded at admission
	State         State
	FirstDispatch int64 // -1 until the first dispatch
	Completion    int64 // -1 until TERMINATED
	Ran           int64 // execution units actually consumed
	Dispatches    int
}

// NewTask creates a READY task with a clamped weight and zeroed vruntime.
// NOTE: Vruntime is seeded later, when the task is admitted.
func NewTask(id TaskID, arrival, demand, tickets int64) *Task {
	return &Task{
		ID:            id,
		Arrival:       arrival,
		Demand:        demand,
		Tickets:       tickets,
		Weight:        weightOf(tickets),
		Remaining:     demand,
		State:         StateReady,
		FirstDispatch: -1,
		Completion:    -1,
	}
}

func weightOf(tickets int64) int64 {
	if tickets < MinWeight {
		return MinWeight
	}
	return tickets
}

// accrue charges delta units of CPU time to the task. The vruntime grows by
// delta*refWeight/weight, so heavier tasks age slower. It returns the units
// actually consumed, which is less than delta only on the final tick.
func (t *Task) accrue(delta int64, refWeight float64) int64 {
	used := min(delta, t.Remaining)
	t.Vruntime += float64(delta) * refWeight / float64(t.Weight)
	t.Remaining -= used
	t.Ran += used
	return used
}

// key is the task's position in the ready index.
func (t *Task) key() nodeKey {
	return nodeKey{vruntime: t.Vruntime, id: t.ID}
}

// Result is the per-task record exposed for reporting.
type Result struct {
	ID            TaskID
	Arrival       int64
	Demand        int64
	Tickets       int64
	Weight        int64
	FirstDispatch int64
	Completion    int64
	Ran           int64
	Dispatches    int
	Vruntime      float64
	State         State
}

func (t *Task) result() Result {
	return Result{
		ID:            t.ID,
		Arrival:       t.Arrival,
		Demand:        t.Demand,
		Tickets:       t.Tickets,
		Weight:        t.Weight,
		FirstDispatch: t.FirstDispatch,
		Completion:    t.Completion,
		Ran:           t.Ran,
		Dispatches:    t.Dispatches,
		Vruntime:      t.Vruntime,
		State:         t.State,
	}
}
