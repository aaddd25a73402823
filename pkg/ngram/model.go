package ngram

import "fmt"

// Unigrams is the global word distribution of a corpus. An empty corpus gives
// Unigrams with no distribution.
type Unigrams struct {
	dist *Distribution
}

// Distribution returns the global distribution, or nil for an empty corpus.
func (u *Unigrams) Distribution() *Distribution {
	if u == nil {
		return nil
	}
	return u.dist
}

// Empty reports whether the model was built from an empty corpus.
func (u *Unigrams) Empty() bool {
	return u == nil || u.dist == nil
}

// Model maps contexts to the distribution of the word that follows them.
// Contexts enumerate in the order they were first observed.
type Model[C comparable] struct {
	order []C
	dists map[C]*Distribution
}

// Bigrams is keyed by the preceding word (or Start).
type Bigrams = Model[Token]

// Trigrams is keyed by the two preceding words (either may be Start).
type Trigrams = Model[Pair]

func newModel[C comparable]() *Model[C] {
	return &Model[C]{dists: make(map[C]*Distribution)}
}

func (m *Model[C]) set(ctx C, d *Distribution) {
	if _, ok := m.dists[ctx]; !ok {
		m.order = append(m.order, ctx)
	}
	m.dists[ctx] = d
}

// Get returns the distribution for ctx and whether the context was observed.
func (m *Model[C]) Get(ctx C) (*Distribution, bool) {
	if m == nil {
		return nil, false
	}
	d, ok := m.dists[ctx]
	return d, ok
}

// Lookup is like Get but returns ErrUnknownContext for an unseen context.
func (m *Model[C]) Lookup(ctx C) (*Distribution, error) {
	d, ok := m.Get(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownContext, ctx)
	}
	return d, nil
}

// Has reports whether ctx was observed.
func (m *Model[C]) Has(ctx C) bool {
	_, ok := m.Get(ctx)
	return ok
}

// Len returns the number of observed contexts.
func (m *Model[C]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Contexts returns the observed contexts in first-seen order.
func (m *Model[C]) Contexts() []C {
	if m == nil {
		return nil
	}
	out := make([]C, len(m.order))
	copy(out, m.order)
	return out
}

// Models bundles the three models built from one corpus.
type Models struct {
	Unigrams *Unigrams
	Bigrams  *Bigrams
	Trigrams *Trigrams
	// Tokens is the length of the corpus the models were built from.
	Tokens int
}
