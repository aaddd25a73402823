/*
Package ngram builds unigram, bigram and trigram models from a sequence of
normalized words and samples pseudo-random text from them.

Models are built once with Build (or the per-order Build functions) and are
read-only afterwards. A Generator walks a model word by word, drawing from the
distribution of the current context. Trigram generation falls back to the bigram
distribution of the most recent word whenever the two-word context was never seen
in the corpus.

Randomness is injected through WithSource or WithSeed so runs can be reproduced.
*/
package ngram
