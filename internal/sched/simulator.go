package sched

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Observer receives every event a simulation produces, in order.
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a plain function to an Observer.
type ObserverFunc func(ev Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }

// Summary describes a finished (or aborted) run.
type Summary struct {
	RunID       string
	Ticks       int64 // ticks executed
	End         int64 // simulated time after the last tick
	IdleTicks   int64
	Dispatches  int
	Preemptions int
	Results     []Result
}

// Simulator drives a Scheduler tick by tick: admit, tick, advance time.
type Simulator struct {
	sched     *Scheduler
	logger    *slog.Logger
	runID     string
	observers []Observer
	trace     func(Snapshot)
}

// NewSimulator wraps s. Each simulator gets its own run id.
func NewSimulator(s *Scheduler, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New().String()
	return &Simulator{
		sched:  s,
		logger: logger.With("run", id),
		runID:  id,
	}
}

// RunID returns the identifier attached to this run's logs and events.
func (sim *Simulator) RunID() string { return sim.runID }

// Scheduler returns the wrapped scheduler.
func (sim *Simulator) Scheduler() *Scheduler { return sim.sched }

// Observe registers observers. Must be called before Run().
func (sim *Simulator) Observe(obs ...Observer) {
	sim.observers = append(sim.observers, obs...)
}

// Trace registers a callback that sees a snapshot after every tick.
func (sim *Simulator) Trace(fn func(Snapshot)) { sim.trace = fn }

// Run loops until every task has terminated, the tick budget is spent
// (ErrTickLimit), the context is cancelled, or the scheduler reports an
// invariant violation.
func (sim *Simulator) Run(ctx context.Context) (Summary, error) {
	cfg := sim.sched.Config()
	sum := Summary{RunID: sim.runID}

	var clock *TickClock
	if cfg.PaceMS > 0 {
		clock = NewTickClock(1)
		clock.Start(time.Duration(cfg.PaceMS) * time.Millisecond)
		// stop the underlying clock to release its goroutine
		defer clock.Stop()
	}

	sim.logger.Info("simulation started",
		"reference_weight", cfg.ReferenceWeight, "granularity", cfg.Granularity, "tick", cfg.Tick)

	var now int64
	for !sim.sched.Done() {
		// 1) check shutdown and the safety bound
		if err := ctx.Err(); err != nil {
			return sim.finish(sum, now), err
		}
		if sum.Ticks >= cfg.MaxTicks {
			return sim.finish(sum, now), fmt.Errorf("after %d ticks: %w", sum.Ticks, ErrTickLimit)
		}

		// 2) wait for the wall clock when pacing
		if clock != nil {
			select {
			case <-clock.Ch:
			case <-ctx.Done():
				return sim.finish(sum, now), ctx.Err()
			}
		}

		// 3) admit arrivals, then run the tick
		evs, err := sim.sched.Admit(now)
		sim.emit(&sum, evs)
		if err != nil {
			return sim.finish(sum, now), err
		}
		evs, err = sim.sched.Tick(now, cfg.Tick)
		sim.emit(&sum, evs)
		if err != nil {
			sim.logger.Error("scheduler state corrupted", "now", now, "err", err)
			return sim.finish(sum, now), err
		}

		if sim.trace != nil {
			sim.trace(sim.sched.Snapshot())
		}
		now += cfg.Tick
		sum.Ticks++
	}

	sum = sim.finish(sum, now)
	sim.logger.Info("simulation finished",
		"ticks", sum.Ticks, "end", sum.End, "dispatches", sum.Dispatches, "preemptions", sum.Preemptions)
	return sum, nil
}

func (sim *Simulator) emit(sum *Summary, evs []Event) {
	for _, ev := range evs {
		switch ev.Kind {
		case EventIdle:
			sum.IdleTicks++
		case EventDispatch:
			sum.Dispatches++
		case EventPreempt:
			sum.Preemptions++
		}
		for _, o := range sim.observers {
			o.Observe(ev)
		}
	}
}

func (sim *Simulator) finish(sum Summary, now int64) Summary {
	sum.End = now
	sum.Results = sim.sched.Results()
	return sum
}
