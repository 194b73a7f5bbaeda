package sched

import "errors"

var (
	// ErrDuplicateTask is returned when a task id is added or inserted twice.
	ErrDuplicateTask = errors.New("duplicate task")
	// ErrTaskNotFound is returned when an operation targets an unknown task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidSpec marks a task specification that never enters the engine.
	ErrInvalidSpec = errors.New("invalid task spec")
	// ErrInvariant signals internal corruption of the scheduler state. A run
	// that hits it must stop.
	ErrInvariant = errors.New("scheduler invariant violated")
	// ErrTickLimit is returned when a simulation exceeds its tick budget.
	ErrTickLimit = errors.New("tick limit reached")
)
