package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fairsim/internal/sched"
)

// WriteTable prints the final per-task statistics.
func WriteTable(w io.Writer, st Stats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tARRIVAL\tBURST\tTICKETS\tSTART\tEND\tTURNAROUND\tWAITING\tRESPONSE")
	for _, r := range st.Rows {
		if !r.Finished {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\t-\t-\t-\t-\n",
				r.ID, r.Arrival, r.Demand, r.Tickets, optional(r.FirstDispatch))
			continue
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			r.ID, r.Arrival, r.Demand, r.Tickets, r.FirstDispatch, r.Completion,
			r.Turnaround, r.Waiting, r.Response)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nfinished %d/%d  avg turnaround %.2f  avg waiting %.2f  avg response %.2f\n",
		st.Finished, len(st.Rows), st.AvgTurnaround, st.AvgWaiting, st.AvgResponse)
	return err
}

// WriteSnapshot prints the scheduler state after a tick.
func WriteSnapshot(w io.Writer, snap sched.Snapshot) error {
	fmt.Fprintf(w, "t=%-5d min_vruntime=%.3f total_weight=%d pending=%d finished=%d\n",
		snap.Now, snap.MinVruntime, snap.TotalWeight, snap.Pending, snap.Finished)
	if snap.Running != nil {
		fmt.Fprintf(w, "  cpu   %s\n", viewLine(*snap.Running))
	} else {
		fmt.Fprintln(w, "  cpu   idle")
	}
	if len(snap.Ready) == 0 {
		_, err := fmt.Fprintln(w, "  ready (empty)")
		return err
	}
	for i, v := range snap.Ready {
		label := "      "
		if i == 0 {
			label = "ready "
		}
		if _, err := fmt.Fprintf(w, "  %s%s\n", label, viewLine(v)); err != nil {
			return err
		}
	}
	return nil
}

func viewLine(v sched.TaskView) string {
	return fmt.Sprintf("pid=%d vr=%.3f rem=%d w=%d slice=%.2f", v.ID, v.Vruntime, v.Remaining, v.Weight, v.IdealSlice)
}

func optional(v int64) string {
	if v < 0 {
		return "-"
	}
	return fmt.Sprint(v)
}
