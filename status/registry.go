package status

import "sync/atomic"

// Registry holds observable session values
// Writers cache metric pointers once; readers on other goroutines load atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Export copies every metric into a flat map keyed by metric name
func (r *Registry) Export() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(key string, v *atomic.Bool) { out[key] = v.Load() })
	r.Ints.Range(func(key string, v *atomic.Int64) { out[key] = v.Load() })
	r.Floats.Range(func(key string, v *AtomicFloat) { out[key] = v.Get() })
	r.Strings.Range(func(key string, v *AtomicString) { out[key] = v.Load() })
	return out
}
