// Package workload loads and generates task lists for the simulator.
package workload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fairsim/internal/sched"
)

// AlgorithmCFS is the only policy this simulator runs.
const AlgorithmCFS = "cfs"

// ErrUnsupportedAlgorithm is returned when a workload header names another policy.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

// Workload is a parsed workload file.
type Workload struct {
	Algorithm string       // "cfs" when given, empty otherwise
	Quantum   int64        // tick size from the header, 0 if absent
	Tasks     []sched.Spec // in file order
}

// Load reads a workload from path. Files ending in .yml or .yaml are parsed
// as YAML, anything else as pipe-delimited text.
func Load(path string) (*Workload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workload: %w", err)
	}
	defer f.Close()

	var w *Workload
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		w, err = ParseYAML(f)
	default:
		w, err = ParsePipe(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// Validate rejects negative fields, duplicate ids, and foreign algorithms.
func (w *Workload) Validate() error {
	if w.Algorithm != "" && !strings.EqualFold(w.Algorithm, AlgorithmCFS) {
		return fmt.Errorf("%q: %w", w.Algorithm, ErrUnsupportedAlgorithm)
	}
	if w.Quantum < 0 {
		return fmt.Errorf("negative quantum %d: %w", w.Quantum, sched.ErrInvalidSpec)
	}

	seen := make(map[sched.TaskID]struct{}, len(w.Tasks))
	for _, sp := range w.Tasks {
		if err := sp.Validate(); err != nil {
			return err
		}
		if _, dup := seen[sp.ID]; dup {
			return fmt.Errorf("task %d listed twice: %w", sp.ID, sched.ErrDuplicateTask)
		}
		seen[sp.ID] = struct{}{}
	}
	return nil
}

// AddTo hands every task to the scheduler.
func (w *Workload) AddTo(s *sched.Scheduler) error {
	for _, sp := range w.Tasks {
		if err := s.Add(sp); err != nil {
			return err
		}
	}
	return nil
}

func writeAll(out io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := io.WriteString(out, l+"\n"); err != nil {
			return err
		}
	}
	return nil
}
