package ngram

// Counter holds occurrence counts for distinct items. Keys enumerate in the
// order they were first added.
type Counter[K comparable] struct {
	order  []K
	counts map[K]int
	total  int
}

// NewCounter returns an empty Counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Count tallies every item in items. An empty slice gives an empty Counter.
func Count[K comparable](items []K) *Counter[K] {
	c := NewCounter[K]()
	for _, item := range items {
		c.Add(item)
	}
	return c
}

// Add records one occurrence of item.
func (c *Counter[K]) Add(item K) {
	if _, ok := c.counts[item]; !ok {
		c.order = append(c.order, item)
	}
	c.counts[item]++
	c.total++
}

// Get returns the number of times item was added.
func (c *Counter[K]) Get(item K) int {
	return c.counts[item]
}

// Len returns the number of distinct items.
func (c *Counter[K]) Len() int {
	return len(c.order)
}

// Total returns the sum of all counts.
func (c *Counter[K]) Total() int {
	return c.total
}

// Keys returns the distinct items in first-seen order.
func (c *Counter[K]) Keys() []K {
	keys := make([]K, len(c.order))
	copy(keys, c.order)
	return keys
}
