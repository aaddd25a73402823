package ngram

import (
	"fmt"
	"math"
)

// Tolerance is how far the sum of a distribution may drift from 1.
const Tolerance = 1e-6

// Distribution is an immutable probability distribution over words. Entries
// enumerate in a fixed order (the order given at construction), which the
// Sampler relies on for reproducible draws.
type Distribution struct {
	words []string
	probs []float64
	index map[string]int
	sum   float64
}

// NewDistribution builds a Distribution from parallel slices of words and
// probabilities. It returns ErrMalformedDistribution if the slices differ in
// length, a word repeats, a probability is negative or not finite, or the
// probabilities do not sum to 1 within Tolerance.
func NewDistribution(words []string, probs []float64) (*Distribution, error) {
	if len(words) != len(probs) {
		return nil, fmt.Errorf("%w: %d words but %d probabilities", ErrMalformedDistribution, len(words), len(probs))
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrMalformedDistribution)
	}

	d := &Distribution{
		words: make([]string, len(words)),
		probs: make([]float64, len(probs)),
		index: make(map[string]int, len(words)),
	}
	copy(d.words, words)
	copy(d.probs, probs)

	for i, w := range d.words {
		p := d.probs[i]
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: probability %v for %q", ErrMalformedDistribution, p, w)
		}
		if _, dup := d.index[w]; dup {
			return nil, fmt.Errorf("%w: duplicate word %q", ErrMalformedDistribution, w)
		}
		d.index[w] = i
		d.sum += p
	}

	if math.Abs(d.sum-1.0) >= Tolerance {
		return nil, fmt.Errorf("%w: probabilities sum to %v", ErrMalformedDistribution, d.sum)
	}
	return d, nil
}

// Normalize converts counts into a Distribution where each word's probability is
// its count divided by the total. Words keep the counter's first-seen order.
// It returns ErrEmptyCounts when c has no entries.
func Normalize(c *Counter[string]) (*Distribution, error) {
	if c == nil || c.Len() == 0 {
		return nil, ErrEmptyCounts
	}
	total := float64(c.Total())
	words := c.Keys()
	probs := make([]float64, len(words))
	for i, w := range words {
		probs[i] = float64(c.Get(w)) / total
	}
	return NewDistribution(words, probs)
}

// Len returns the number of words with an entry.
func (d *Distribution) Len() int {
	return len(d.words)
}

// Prob returns the probability assigned to word and whether it has an entry.
func (d *Distribution) Prob(word string) (float64, bool) {
	i, ok := d.index[word]
	if !ok {
		return 0, false
	}
	return d.probs[i], true
}

// Contains reports whether word has an entry.
func (d *Distribution) Contains(word string) bool {
	_, ok := d.index[word]
	return ok
}

// Words returns the words in enumeration order.
func (d *Distribution) Words() []string {
	words := make([]string, len(d.words))
	copy(words, d.words)
	return words
}

// Sum returns the sum of all probabilities as computed at construction.
func (d *Distribution) Sum() float64 {
	return d.sum
}

// Each calls fn for every entry in enumeration order.
func (d *Distribution) Each(fn func(word string, prob float64)) {
	for i, w := range d.words {
		fn(w, d.probs[i])
	}
}

// Map returns a copy of the distribution as a plain map.
func (d *Distribution) Map() map[string]float64 {
	m := make(map[string]float64, len(d.words))
	for i, w := range d.words {
		m[w] = d.probs[i]
	}
	return m
}
