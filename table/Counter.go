package table

// Counter counts occurrences of keys. A key's count is at least 1 once
// the key exists and never decreases.
type Counter[K comparable] struct {
	counts map[K]int
	total  int
}

// NewCounter returns a new, empty Counter
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Inc increments the count of k and returns the new count
func (c *Counter[K]) Inc(k K) int {
	c.counts[k]++
	c.total++
	return c.counts[k]
}

// Count returns the number of times k has been counted
func (c *Counter[K]) Count(k K) int {
	return c.counts[k]
}

// Total returns the sum of all counts
func (c *Counter[K]) Total() int {
	return c.total
}

// Len returns the number of distinct keys counted
func (c *Counter[K]) Len() int {
	return len(c.counts)
}
