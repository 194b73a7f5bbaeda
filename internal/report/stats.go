// Package report turns simulation results and events into human and
// machine readable output.
package report

import "fairsim/internal/sched"

// Row holds the per-task statistics of a run.
type Row struct {
	ID            sched.TaskID
	Arrival       int64
	Demand        int64
	Tickets       int64
	FirstDispatch int64
	Completion    int64
	Turnaround    int64 // completion - arrival
	Waiting       int64 // turnaround - demand
	Response      int64 // first dispatch - arrival
	Dispatches    int
	Finished      bool
}

// Stats aggregates the rows of a run. Averages cover finished tasks only.
type Stats struct {
	Rows          []Row
	Finished      int
	AvgTurnaround float64
	AvgWaiting    float64
	AvgResponse   float64
}

// Compute derives turnaround, waiting and response times from results.
func Compute(results []sched.Result) Stats {
	var st Stats
	var turn, wait, resp int64
	for _, r := range results {
		row := Row{
			ID:            r.ID,
			Arrival:       r.Arrival,
			Demand:        r.Demand,
			Tickets:       r.Tickets,
			FirstDispatch: r.FirstDispatch,
			Completion:    r.Completion,
			Dispatches:    r.Dispatches,
			Finished:      r.State == sched.StateTerminated,
		}
		if r.FirstDispatch >= 0 {
			row.Response = r.FirstDispatch - r.Arrival
		}
		if row.Finished {
			row.Turnaround = r.Completion - r.Arrival
			row.Waiting = row.Turnaround - r.Demand
			st.Finished++
			turn += row.Turnaround
			wait += row.Waiting
			resp += row.Response
		}
		st.Rows = append(st.Rows, row)
	}
	if st.Finished > 0 {
		n := float64(st.Finished)
		st.AvgTurnaround = float64(turn) / n
		st.AvgWaiting = float64(wait) / n
		st.AvgResponse = float64(resp) / n
	}
	return st
}
