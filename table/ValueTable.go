// Package table implements sparse lookup tables used by tabular
// learners: a ValueTable of action values and a Counter of visits.
//
// Both tables grow monotonically. Keys are only ever added, never
// removed, and there is no capacity bound since the key space of a
// tabular task is finite.
package table

// StateAction keys a single-agent action-value table
type StateAction struct {
	State  int
	Action int
}

// JointAction keys a two-agent joint action-value table. Index i holds
// the action of agent i.
type JointAction [2]int

// ValueTable is a sparse mapping from keys to values where missing keys
// have the default value 0.0
type ValueTable[K comparable] struct {
	values map[K]float64
}

// NewValueTable returns a new, empty ValueTable
func NewValueTable[K comparable]() *ValueTable[K] {
	return &ValueTable[K]{values: make(map[K]float64)}
}

// Get returns the value stored at key k, or 0.0 if no value has been
// stored. Get never inserts into the table.
func (v *ValueTable[K]) Get(k K) float64 {
	return v.values[k]
}

// Set overwrites the value stored at key k
func (v *ValueTable[K]) Set(k K, value float64) {
	v.values[k] = value
}

// Has returns whether a value has been explicitly stored at key k
func (v *ValueTable[K]) Has(k K) bool {
	_, ok := v.values[k]
	return ok
}

// Len returns the number of explicitly stored entries
func (v *ValueTable[K]) Len() int {
	return len(v.values)
}

// Range calls fn on each stored entry in unspecified order until fn
// returns false
func (v *ValueTable[K]) Range(fn func(k K, value float64) bool) {
	for k, value := range v.values {
		if !fn(k, value) {
			return
		}
	}
}
