package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"fairsim/internal/sched"
)

// CSVSink writes scheduler events as CSV rows. It implements sched.Observer.
type CSVSink struct {
	runID string
	w     *csv.Writer
	err   error
}

// NewCSVSink writes the header immediately.
func NewCSVSink(out io.Writer, runID string) (*CSVSink, error) {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"run_id", "tick", "event", "task_id", "remaining", "vruntime"}); err != nil {
		return nil, err
	}
	return &CSVSink{runID: runID, w: w}, nil
}

// Observe records one event. The first write error sticks and is returned by Flush.
func (c *CSVSink) Observe(ev sched.Event) {
	if c.err != nil {
		return
	}
	rec := []string{
		c.runID,
		strconv.FormatInt(ev.Now, 10),
		ev.Kind.String(),
		strconv.FormatUint(uint64(ev.TaskID), 10),
		strconv.FormatInt(ev.Remaining, 10),
		fmt.Sprintf("%.4f", ev.Vruntime),
	}
	if ev.Kind == sched.EventIdle {
		rec[3], rec[4] = "", ""
	}
	c.err = c.w.Write(rec)
}

// Flush pushes buffered rows to the underlying writer.
func (c *CSVSink) Flush() error {
	c.w.Flush()
	if c.err != nil {
		return c.err
	}
	return c.w.Error()
}
