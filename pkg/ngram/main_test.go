package ngram

import (
	"math"
	"math/rand/v2"
	"testing"
)

// descartes is the small corpus used throughout the package tests.
var descartes = []string{"i", "think", "therefore", "i", "am", "i", "think", "i", "think"}

// assertDist fails the test unless d holds exactly the entries in want.
func assertDist(t *testing.T, name string, d *Distribution, want map[string]float64) {
	t.Helper()
	if d == nil {
		t.Fatalf("%s: distribution is nil, want %v", name, want)
	}
	if d.Len() != len(want) {
		t.Errorf("%s: got %d entries %v, want %d entries %v", name, d.Len(), d.Map(), len(want), want)
	}
	for w, p := range want {
		got, ok := d.Prob(w)
		if !ok {
			t.Errorf("%s: missing entry %q", name, w)
			continue
		}
		if math.Abs(got-p) > 1e-9 {
			t.Errorf("%s: P(%q) = %v, want %v", name, w, got, p)
		}
	}
}

// countingSource wraps a PCG source and counts how many values were drawn.
type countingSource struct {
	src   rand.Source
	draws int
}

func newCountingSource(seed uint64) *countingSource {
	return &countingSource{src: rand.NewPCG(seed, seed)}
}

func (s *countingSource) Uint64() uint64 {
	s.draws++
	return s.src.Uint64()
}

// constSource always returns the same value.
type constSource uint64

func (s constSource) Uint64() uint64 {
	return uint64(s)
}
