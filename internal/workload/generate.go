package workload

import (
	"math/rand/v2"

	"fairsim/internal/sched"
)

// GenOptions bounds a synthetic workload. Zero maxima fall back to defaults.
type GenOptions struct {
	Count      int
	Seed       uint64
	MaxArrival int64 // arrivals drawn from [0, MaxArrival]
	MaxDemand  int64 // demands drawn from [1, MaxDemand]
	MaxTickets int64 // tickets drawn from [0, MaxTickets]
}

// Generate builds a reproducible random workload; the same options always
// give the same tasks. IDs run from 1 to Count.
func Generate(opts GenOptions) *Workload {
	if opts.MaxArrival < 0 {
		opts.MaxArrival = 0
	}
	if opts.MaxDemand <= 0 {
		opts.MaxDemand = 10
	}
	if opts.MaxTickets < 0 {
		opts.MaxTickets = 0
	}

	r := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	w := &Workload{Algorithm: AlgorithmCFS, Quantum: 1}
	for i := 1; i <= opts.Count; i++ {
		w.Tasks = append(w.Tasks, sched.Spec{
			ID:      sched.TaskID(i),
			Arrival: r.Int64N(opts.MaxArrival + 1),
			Demand:  1 + r.Int64N(opts.MaxDemand),
			Tickets: r.Int64N(opts.MaxTickets + 1),
		})
	}
	return w
}
