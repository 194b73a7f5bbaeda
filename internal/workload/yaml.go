package workload

import (
	"fmt"
	"io"

	yaml "github.com/goccy/go-yaml"

	"fairsim/internal/sched"
)

// yamlWorkload mirrors the YAML workload layout.
type yamlWorkload struct {
	Algorithm string     `yaml:"algorithm"`
	Quantum   int64      `yaml:"quantum"`
	Tasks     []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	ID      uint64 `yaml:"id"`
	Arrival int64  `yaml:"arrival"`
	Demand  int64  `yaml:"demand"`
	Tickets int64  `yaml:"tickets"`
}

// ParseYAML reads a workload such as
//
//	algorithm: cfs
//	quantum: 1
//	tasks:
//	  - {id: 1, arrival: 0, demand: 10, tickets: 1}
func ParseYAML(r io.Reader) (*Workload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc yamlWorkload
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml workload: %w", err)
	}

	w := &Workload{Algorithm: doc.Algorithm, Quantum: doc.Quantum}
	for _, t := range doc.Tasks {
		w.Tasks = append(w.Tasks, sched.Spec{
			ID:      sched.TaskID(t.ID),
			Arrival: t.Arrival,
			Demand:  t.Demand,
			Tickets: t.Tickets,
		})
	}
	return w, nil
}
