package ngram

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Sampler draws words from distributions using an injected random source.
// It is not safe for concurrent use.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a Sampler reading from src. A nil src uses a source seeded
// from the runtime's random state.
func NewSampler(src rand.Source) *Sampler {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Sampler{rng: rand.New(src)}
}

// Sample draws one word from d with probability equal to its weight.
//
// A uniform value r in [0,1) is drawn and the entries are accumulated in
// enumeration order; the first word whose running total exceeds r wins.
func (s *Sampler) Sample(d *Distribution) (string, error) {
	if d == nil || d.Len() == 0 {
		return "", fmt.Errorf("%w: no entries to sample", ErrMalformedDistribution)
	}
	if math.Abs(d.sum-1.0) >= Tolerance {
		return "", fmt.Errorf("%w: probabilities sum to %v", ErrMalformedDistribution, d.sum)
	}

	r := s.rng.Float64()
	var total float64
	for i, w := range d.words {
		total += d.probs[i]
		if r < total {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: r=%v total=%v", ErrSampleOverrun, r, total)
}
