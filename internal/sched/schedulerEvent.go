// internal/sched/schedulerEvent.go

package sched

// EventKind represents the type of scheduler event
type EventKind int

const (
	EventIdle EventKind = iota
	EventAdmit
	EventDispatch
	EventPreempt
	EventFinish
	EventReweight
)

// Event is emitted on every state transition, and once per idle tick.
type Event struct {
	Now       int64 // simulated time the transition is stamped with
	Kind      EventKind
	TaskID    TaskID
	Vruntime  float64
	Remaining int64
}

func (k EventKind) String() string {
	switch k {
	case EventIdle:
		return "Idle"
	case EventAdmit:
		return "Admit"
	case EventDispatch:
		return "Dispatch"
	case EventPreempt:
		return "Preempt"
	case EventFinish:
		return "Finish"
	case EventReweight:
		return "Reweight"
	default:
		return "Unknown"
	}
}

func eventFor(now int64, kind EventKind, t *Task) Event {
	return Event{
		Now:       now,
		Kind:      kind,
		TaskID:    t.ID,
		Vruntime:  t.Vruntime,
		Remaining: t.Remaining,
	}
}
