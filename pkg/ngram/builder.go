package ngram

import "fmt"

// contextCounts groups following words by context, remembering the order in
// which contexts were first seen.
type contextCounts[C comparable] struct {
	order  []C
	counts map[C]*Counter[string]
}

func newContextCounts[C comparable]() *contextCounts[C] {
	return &contextCounts[C]{counts: make(map[C]*Counter[string])}
}

func (cc *contextCounts[C]) add(ctx C, word string) {
	c, ok := cc.counts[ctx]
	if !ok {
		c = NewCounter[string]()
		cc.counts[ctx] = c
		cc.order = append(cc.order, ctx)
	}
	c.Add(word)
}

func (cc *contextCounts[C]) model() (*Model[C], error) {
	m := newModel[C]()
	for _, ctx := range cc.order {
		d, err := Normalize(cc.counts[ctx])
		if err != nil {
			return nil, fmt.Errorf("could not normalize context %v: %w", ctx, err)
		}
		m.set(ctx, d)
	}
	return m, nil
}

// BuildUnigrams returns the global word distribution of words.
func BuildUnigrams(words []string) (*Unigrams, error) {
	if len(words) == 0 {
		return &Unigrams{}, nil
	}
	d, err := Normalize(Count(words))
	if err != nil {
		return nil, fmt.Errorf("could not build unigrams: %w", err)
	}
	return &Unigrams{dist: d}, nil
}

// BuildBigrams returns, for every word in words (and Start), the distribution of
// the word that follows it.
func BuildBigrams(words []string) (*Bigrams, error) {
	cc := newContextCounts[Token]()
	prev := Start
	for _, w := range words {
		cc.add(prev, w)
		prev = Word(w)
	}
	m, err := cc.model()
	if err != nil {
		return nil, fmt.Errorf("could not build bigrams: %w", err)
	}
	return m, nil
}

// BuildTrigrams returns, for every adjacent pair of words (padded with Start at
// the beginning), the distribution of the word that follows the pair.
func BuildTrigrams(words []string) (*Trigrams, error) {
	cc := newContextCounts[Pair]()
	ctx := Pair{Older: Start, Newer: Start}
	for _, w := range words {
		cc.add(ctx, w)
		ctx = ctx.Shift(Word(w))
	}
	m, err := cc.model()
	if err != nil {
		return nil, fmt.Errorf("could not build trigrams: %w", err)
	}
	return m, nil
}

// Build counts unigrams, bigrams and trigrams in a single pass over words.
func Build(words []string) (*Models, error) {
	uni := NewCounter[string]()
	bi := newContextCounts[Token]()
	tri := newContextCounts[Pair]()

	prev := Start
	pair := Pair{Older: Start, Newer: Start}
	for _, w := range words {
		uni.Add(w)
		bi.add(prev, w)
		tri.add(pair, w)

		next := Word(w)
		prev = next
		pair = pair.Shift(next)
	}

	models := &Models{Unigrams: &Unigrams{}, Tokens: len(words)}
	if uni.Len() > 0 {
		d, err := Normalize(uni)
		if err != nil {
			return nil, fmt.Errorf("could not build unigrams: %w", err)
		}
		models.Unigrams.dist = d
	}

	var err error
	if models.Bigrams, err = bi.model(); err != nil {
		return nil, fmt.Errorf("could not build bigrams: %w", err)
	}
	if models.Trigrams, err = tri.model(); err != nil {
		return nil, fmt.Errorf("could not build trigrams: %w", err)
	}
	return models, nil
}
