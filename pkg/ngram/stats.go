package ngram

// ModelStats holds aggregated counts for a set of Models.
type ModelStats struct {
	Tokens          int // The length of the corpus.
	Vocabulary      int // The number of distinct words.
	BigramContexts  int // The number of distinct one-word contexts, including Start.
	TrigramContexts int // The number of distinct two-word contexts, including padded ones.
	Openers         int // The number of distinct words that follow Start.
}

// Stats returns a snapshot of counts for m.
func (m *Models) Stats() ModelStats {
	if m == nil {
		return ModelStats{}
	}
	stats := ModelStats{
		Tokens:          m.Tokens,
		BigramContexts:  m.Bigrams.Len(),
		TrigramContexts: m.Trigrams.Len(),
	}
	if d := m.Unigrams.Distribution(); d != nil {
		stats.Vocabulary = d.Len()
	}
	if d, ok := m.Bigrams.Get(Start); ok {
		stats.Openers = d.Len()
	}
	return stats
}
