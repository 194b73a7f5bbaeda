// internal/sched/scheduler.go

package sched

import (
	"fmt"
	"log/slog"
	"sync"
)

// Scheduler implements a single-core, CFS-like fair-share scheduler driven
// by explicit simulated time.
type Scheduler struct {
	mu          sync.Mutex       // protects the scheduler state
	cfg         Config           // reference weight, granularity, slice parameters
	logger      *slog.Logger     // debug trail of transitions
	rq          *RunQueue        // READY tasks ordered by vruntime and task ID
	pending     *arrivalQueue    // added but not yet admitted, by arrival
	tasks       map[TaskID]*Task // every task ever added, kept for reporting
	order       []TaskID         // add order, used for Results
	running     *Task            // task on the CPU, nil when idle
	minVruntime float64          // system-wide fairness reference
	totalWeight int64            // sum of weights of admitted, unfinished tasks
	now         int64            // start time of the last tick
	finished    int
}

// New creates a scheduler with the given configuration.
func New(cfg Config, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cfg:     cfg.Sanitize(),
		logger:  logger,
		rq:      NewRunQueue(),
		pending: newArrivalQueue(),
		tasks:   make(map[TaskID]*Task),
	}
}

// Config returns the sanitized configuration in use.
func (s *Scheduler) Config() Config { return s.cfg }

// Add registers a task. It is admitted into the run queue by the first
// Admit call whose time reaches its arrival.
func (s *Scheduler) Add(sp Spec) error {
	if err := sp.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.tasks[sp.ID]; dup {
		return fmt.Errorf("task %d already exists: %w", sp.ID, ErrDuplicateTask)
	}

	t := NewTask(sp.ID, sp.Arrival, sp.Demand, sp.Tickets)
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	s.pending.push(t)
	return nil
}

// Admit moves every pending task whose arrival is <= now into the run queue.
// A new task starts at the smallest vruntime currently queued, or at the
// system minimum when the queue is empty, so it can neither starve the
// others nor monopolize the CPU.
func (s *Scheduler) Admit(now int64) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evs []Event
	for t := s.pending.popDue(now); t != nil; t = s.pending.popDue(now) {
		if head := s.rq.PeekMin(); head != nil {
			t.Vruntime = head.Vruntime
		} else {
			t.Vruntime = s.minVruntime
		}
		if err := s.rq.Insert(t); err != nil {
			return evs, fmt.Errorf("admit: %w: %w", ErrInvariant, err)
		}
		s.totalWeight += t.Weight

		s.logger.Debug("task admitted",
			"task", t.ID, "now", now, "weight", t.Weight, "vruntime", t.Vruntime)
		evs = append(evs, eventFor(now, EventAdmit, t))
	}
	return evs, nil
}

// Tick advances the simulation by one tick of delta units starting at now,
// and returns the transitions that happened during it.
func (s *Scheduler) Tick(now, delta int64) ([]Event, error) {
	if delta <= 0 {
		return nil, fmt.Errorf("tick delta must be positive, got %d", delta)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now

	var evs []Event

	// 1) pick a task if the CPU is free; with nothing ready the tick is idle
	if s.running == nil {
		if s.rq.IsEmpty() {
			s.minVruntime += float64(delta)
			evs = append(evs, Event{Now: now, Kind: EventIdle, Vruntime: s.minVruntime})
			return evs, nil
		}
		if err := s.dispatch(now, &evs); err != nil {
			return evs, err
		}
	}
	t := s.running

	// 2) charge the tick to the running task
	t.accrue(delta, s.cfg.ReferenceWeight)

	// 3) refresh the system minimum
	s.minVruntime = t.Vruntime
	if head := s.rq.PeekMin(); head != nil && head.Vruntime < s.minVruntime {
		s.minVruntime = head.Vruntime
	}

	// 4) retire a finished task and hand the CPU over right away
	if t.Remaining <= 0 {
		t.State = StateTerminated
		t.Completion = now + delta
		s.totalWeight -= t.Weight
		s.running = nil
		s.finished++

		s.logger.Debug("task finished", "task", t.ID, "completion", t.Completion, "vruntime", t.Vruntime)
		evs = append(evs, eventFor(now+delta, EventFinish, t))

		if !s.rq.IsEmpty() {
			if err := s.dispatch(now+delta, &evs); err != nil {
				return evs, err
			}
		}
		return evs, nil
	}

	// 5) preempt once the queue head is ahead by more than the granularity
	if head := s.rq.PeekMin(); head != nil && t.Vruntime > head.Vruntime+s.cfg.Granularity {
		t.State = StateReady
		s.running = nil
		if err := s.rq.Insert(t); err != nil {
			return evs, fmt.Errorf("preempt: %w: %w", ErrInvariant, err)
		}

		s.logger.Debug("task preempted",
			"task", t.ID, "vruntime", t.Vruntime, "by", head.ID, "head_vruntime", head.Vruntime)
		evs = append(evs, eventFor(now+delta, EventPreempt, t))

		if err := s.dispatch(now+delta, &evs); err != nil {
			return evs, err
		}
	}
	return evs, nil
}

// dispatch takes the queue head onto the CPU. Callers hold s.mu.
func (s *Scheduler) dispatch(at int64, evs *[]Event) error {
	t := s.rq.PeekMin()
	if t == nil {
		return nil
	}
	if err := s.rq.Remove(t.ID); err != nil {
		return fmt.Errorf("dispatch: %w: %w", ErrInvariant, err)
	}
	if t.State != StateReady {
		return fmt.Errorf("dispatch task %d in state %s: %w", t.ID, t.State, ErrInvariant)
	}

	t.State = StateRunning
	t.Dispatches++
	if t.FirstDispatch < 0 {
		t.FirstDispatch = at
	}
	s.running = t

	s.logger.Debug("task dispatched", "task", t.ID, "at", at, "vruntime", t.Vruntime)
	*evs = append(*evs, eventFor(at, EventDispatch, t))
	return nil
}

// Reweight changes a live task's ticket value on the fly. A READY task is
// requeued under the same vruntime so later picks see the new weight.
func (s *Scheduler) Reweight(id TaskID, tickets int64) (Event, error) {
	if tickets < 0 {
		return Event{}, fmt.Errorf("task %d: negative tickets %d: %w", id, tickets, ErrInvalidSpec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.State == StateTerminated {
		return Event{}, fmt.Errorf("no live task %d: %w", id, ErrTaskNotFound)
	}

	w := weightOf(tickets)
	if s.admitted(t) {
		s.totalWeight += w - t.Weight
	}

	// requeue under the same vruntime
	if s.rq.Contains(id) {
		if err := s.rq.Remove(id); err != nil {
			return Event{}, fmt.Errorf("reweight: %w: %w", ErrInvariant, err)
		}
		t.Tickets, t.Weight = tickets, w
		if err := s.rq.Insert(t); err != nil {
			return Event{}, fmt.Errorf("reweight: %w: %w", ErrInvariant, err)
		}
	} else {
		t.Tickets, t.Weight = tickets, w
	}

	return eventFor(s.now, EventReweight, t), nil
}

// admitted reports whether t is in the queue or on the CPU. Callers hold s.mu.
func (s *Scheduler) admitted(t *Task) bool {
	return s.running == t || s.rq.Contains(t.ID)
}

// IdealSlice returns the informational time slice of a live task:
// TargetLatency scaled by its share of the active weight, floored at
// MinGranularity. Preemption never consults it.
func (s *Scheduler) IdealSlice(id TaskID) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.State == StateTerminated {
		return 0, fmt.Errorf("no live task %d: %w", id, ErrTaskNotFound)
	}
	return s.idealSlice(t.Weight), nil
}

func (s *Scheduler) idealSlice(weight int64) float64 {
	if s.totalWeight <= 0 {
		return s.cfg.MinGranularity
	}
	slice := float64(weight) / float64(s.totalWeight) * s.cfg.TargetLatency
	return max(slice, s.cfg.MinGranularity)
}

// Done reports whether every added task has terminated.
func (s *Scheduler) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.len() == 0 && s.rq.IsEmpty() && s.running == nil
}

// NextArrival returns the earliest arrival still waiting for admission.
func (s *Scheduler) NextArrival() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.pending.next()
	if !ok {
		return 0, false
	}
	return t.Arrival, true
}

// Results returns one record per added task, in add order.
func (s *Scheduler) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Result, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id].result())
	}
	return out
}

// Task returns the current record of a single task.
func (s *Scheduler) Task(id TaskID) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return Result{}, false
	}
	return t.result(), true
}

// Reset drops every task and returns the scheduler to its initial state,
// keeping the configuration.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rq.Reset()
	s.pending.reset()
	clear(s.tasks)
	s.order = s.order[:0]
	s.running = nil
	s.minVruntime = 0
	s.totalWeight = 0
	s.now = 0
	s.finished = 0
}
