package status

import "sync/atomic"

// Registry is the central metrics facade
// Subsystems cache pointers during init; hot paths write directly to atomics
type Registry struct {
	Bools *MetricMap[atomic.Bool]
	Ints  *MetricMap[atomic.Int64]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools: NewMetricMap[atomic.Bool](),
		Ints:  NewMetricMap[atomic.Int64](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count()
}
