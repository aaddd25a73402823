package ngram

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
)

// Step describes one sampling step of a generation run.
type Step struct {
	// Index is the position in the output of the word being drawn.
	Index int
	// Order is 1, 2 or 3 for the model the word was drawn from.
	Order int
	// Context renders the context that was looked up.
	Context string
	// Fallback is set when a trigram context was unseen and the bigram
	// distribution of the most recent word was used instead.
	Fallback bool
	// Word is the word that was drawn.
	Word string
}

// generatorOptions holds the settings collected from Option values.
type generatorOptions struct {
	source   rand.Source
	observer func(Step)
	logger   *slog.Logger
}

// Option configures a Generator.
type Option func(*generatorOptions)

// WithSource sets the random source used for sampling.
func WithSource(src rand.Source) Option {
	return func(o *generatorOptions) { o.source = src }
}

// WithSeed makes sampling reproducible by seeding a PCG source with seed.
func WithSeed(seed uint64) Option {
	return func(o *generatorOptions) { o.source = rand.NewPCG(seed, seed) }
}

// WithObserver registers fn to be called after every sampling step.
func WithObserver(fn func(Step)) Option {
	return func(o *generatorOptions) { o.observer = fn }
}

// WithLogger enables debug logging of generation runs. By default logs are
// discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *generatorOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Generator produces text by walking a set of Models. The Models are only read,
// so several Generators may share them, but a single Generator is not safe for
// concurrent use.
type Generator struct {
	models   *Models
	sampler  *Sampler
	observer func(Step)
	logger   *slog.Logger
}

// NewGenerator returns a Generator over models. A nil models behaves like a
// model built from an empty corpus.
func NewGenerator(models *Models, opts ...Option) *Generator {
	options := &generatorOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(options)
	}
	if models == nil {
		models = &Models{}
	}
	return &Generator{
		models:   models,
		sampler:  NewSampler(options.source),
		observer: options.observer,
		logger:   options.logger,
	}
}

// Models returns the models the Generator reads from.
func (g *Generator) Models() *Models {
	return g.models
}

// Unigram draws n independent words from the global distribution. It returns
// ErrUnknownContext if n > 0 and the corpus was empty.
func (g *Generator) Unigram(n int) ([]string, error) {
	out := make([]string, 0, max(n, 0))
	if n <= 0 {
		return out, nil
	}
	d := g.models.Unigrams.Distribution()
	if d == nil {
		return nil, fmt.Errorf("%w: unigram model is empty", ErrUnknownContext)
	}
	for len(out) < n {
		w, err := g.sampler.Sample(d)
		if err != nil {
			return nil, fmt.Errorf("failed to sample word %d: %w", len(out), err)
		}
		g.observe(Step{Index: len(out), Order: 1, Word: w})
		out = append(out, w)
	}
	g.logger.Debug("Generation completed",
		slog.String("mode", "unigram"),
		slog.Int("generated_length", len(out)),
	)
	return out, nil
}

// Bigram returns n words starting with first, each following word drawn from
// the bigram distribution of the word before it. For n <= 1 it returns just
// first without sampling. first is not checked against the model up front;
// an unseen context surfaces as ErrUnknownContext when it is looked up.
func (g *Generator) Bigram(first string, n int) ([]string, error) {
	return g.bigramWalk([]string{first}, Word(first), n)
}

// BigramFromStart returns n words starting from the Start context, so the first
// word is drawn from the words that opened the corpus.
func (g *Generator) BigramFromStart(n int) ([]string, error) {
	return g.bigramWalk(make([]string, 0, max(n, 0)), Start, n)
}

func (g *Generator) bigramWalk(out []string, prev Token, n int) ([]string, error) {
	for len(out) < n {
		d, err := g.models.Bigrams.Lookup(prev)
		if err != nil {
			return nil, fmt.Errorf("failed to generate word %d: %w", len(out), err)
		}
		w, err := g.sampler.Sample(d)
		if err != nil {
			return nil, fmt.Errorf("failed to sample word %d after %v: %w", len(out), prev, err)
		}
		g.observe(Step{Index: len(out), Order: 2, Context: prev.String(), Word: w})
		out = append(out, w)
		prev = Word(w)
	}
	g.logger.Debug("Generation completed",
		slog.String("mode", "bigram"),
		slog.Int("generated_length", len(out)),
	)
	return out, nil
}

// Trigram returns n words starting with first and second. Each following word is
// drawn from the trigram distribution of the two words before it, or, when that
// pair never occurred in the corpus, from the bigram distribution of the more
// recent word. For n <= 2 it returns the two seed words without sampling.
func (g *Generator) Trigram(first, second string, n int) ([]string, error) {
	return g.trigramWalk([]string{first, second}, PairOf(first, second), n)
}

// TrigramFromStart returns n words starting from the (Start, Start) context.
func (g *Generator) TrigramFromStart(n int) ([]string, error) {
	return g.trigramWalk(make([]string, 0, max(n, 0)), Pair{Older: Start, Newer: Start}, n)
}

func (g *Generator) trigramWalk(out []string, ctx Pair, n int) ([]string, error) {
	var fallbacks int
	for len(out) < n {
		step := Step{Index: len(out), Order: 3, Context: ctx.String()}
		d, ok := g.models.Trigrams.Get(ctx)
		if !ok {
			var err error
			d, err = g.models.Bigrams.Lookup(ctx.Newer)
			if err != nil {
				return nil, fmt.Errorf("failed to generate word %d: no trigram context %v: %w", len(out), ctx, err)
			}
			step.Order = 2
			step.Context = ctx.Newer.String()
			step.Fallback = true
			fallbacks++
			g.logger.Debug("Trigram context unseen, falling back to bigram",
				slog.String("context", ctx.String()),
				slog.Int("index", len(out)),
			)
		}
		w, err := g.sampler.Sample(d)
		if err != nil {
			return nil, fmt.Errorf("failed to sample word %d after %v: %w", len(out), ctx, err)
		}
		step.Word = w
		g.observe(step)
		out = append(out, w)
		ctx = ctx.Shift(Word(w))
	}
	g.logger.Debug("Generation completed",
		slog.String("mode", "trigram"),
		slog.Int("generated_length", len(out)),
		slog.Int("fallbacks", fallbacks),
	)
	return out, nil
}

func (g *Generator) observe(s Step) {
	if g.observer != nil {
		g.observer(s)
	}
}

// Join renders generated words as text separated by single spaces.
func Join(words []string) string {
	return strings.Join(words, " ")
}
