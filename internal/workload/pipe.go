package workload

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fairsim/internal/sched"
)

// ParsePipe reads the pipe-delimited format:
//
//	cfs|1            optional header: algorithm|quantum
//	0|1|10|1         arrival|id|demand|tickets
//
// Blank lines and lines starting with '#' are skipped.
func ParsePipe(r io.Reader) (*Workload, error) {
	w := &Workload{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	first := true

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "|")

		if first && len(fields) == 2 {
			first = false
			w.Algorithm = strings.ToLower(strings.TrimSpace(fields[0]))
			q, err := parseField(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: quantum: %w", lineNo, err)
			}
			w.Quantum = q
			continue
		}
		first = false

		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: want 4 fields arrival|id|demand|tickets, got %d", lineNo, len(fields))
		}
		var vals [4]int64
		for i, f := range fields {
			v, err := parseField(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: field %d: %w", lineNo, i+1, err)
			}
			vals[i] = v
		}
		if vals[1] < 0 {
			return nil, fmt.Errorf("line %d: negative id %d: %w", lineNo, vals[1], sched.ErrInvalidSpec)
		}
		w.Tasks = append(w.Tasks, sched.Spec{
			Arrival: vals[0],
			ID:      sched.TaskID(vals[1]),
			Demand:  vals[2],
			Tickets: vals[3],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return w, nil
}

func parseField(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// WritePipe writes w in the format ParsePipe reads.
func WritePipe(out io.Writer, w *Workload) error {
	lines := make([]string, 0, len(w.Tasks)+1)
	if w.Algorithm != "" {
		lines = append(lines, fmt.Sprintf("%s|%d", w.Algorithm, w.Quantum))
	}
	for _, sp := range w.Tasks {
		lines = append(lines, fmt.Sprintf("%d|%d|%d|%d", sp.Arrival, sp.ID, sp.Demand, sp.Tickets))
	}
	return writeAll(out, lines)
}
