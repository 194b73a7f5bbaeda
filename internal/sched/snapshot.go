package sched

// TaskView is a read-only copy of a task's scheduling state.
type TaskView struct {
	ID         TaskID
	Vruntime   float64
	Remaining  int64
	Weight     int64
	State      State
	IdealSlice float64
}

// Snapshot is a read-only view of the scheduler between ticks.
type Snapshot struct {
	Now         int64
	Running     *TaskView  // nil when the CPU is idle
	Ready       []TaskView // ascending (vruntime, id)
	MinVruntime float64
	TotalWeight int64
	Pending     int // added, not yet admitted
	Finished    int
}

// Snapshot captures the current state.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Now:         s.now,
		MinVruntime: s.minVruntime,
		TotalWeight: s.totalWeight,
		Pending:     s.pending.len(),
		Finished:    s.finished,
	}
	if s.running != nil {
		v := s.view(s.running)
		snap.Running = &v
	}
	for _, t := range s.rq.Tasks() {
		snap.Ready = append(snap.Ready, s.view(t))
	}
	return snap
}

func (s *Scheduler) view(t *Task) TaskView {
	return TaskView{
		ID:         t.ID,
		Vruntime:   t.Vruntime,
		Remaining:  t.Remaining,
		Weight:     t.Weight,
		State:      t.State,
		IdealSlice: s.idealSlice(t.Weight),
	}
}
