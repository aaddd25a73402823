package ngram

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func newTestGenerator(t *testing.T, words []string, opts ...Option) *Generator {
	t.Helper()
	m, err := Build(words)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return NewGenerator(m, opts...)
}

func TestUnigramGeneration(t *testing.T) {
	g := newTestGenerator(t, descartes, WithSeed(1))
	words, err := g.Unigram(50)
	if err != nil {
		t.Fatalf("Unigram() error = %v", err)
	}
	if len(words) != 50 {
		t.Fatalf("got %d words, want 50", len(words))
	}
	vocab := g.Models().Unigrams.Distribution()
	for _, w := range words {
		if !vocab.Contains(w) {
			t.Errorf("generated %q which is not in the corpus", w)
		}
	}
}

func TestBigramGenerationFollowsModel(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		g := newTestGenerator(t, descartes, WithSeed(seed))
		words, err := g.Bigram("i", 30)
		if err != nil {
			t.Fatalf("seed %d: Bigram() error = %v", seed, err)
		}
		if len(words) != 30 || words[0] != "i" {
			t.Fatalf("seed %d: got %v, want 30 words starting with \"i\"", seed, words)
		}
		for k := 0; k+1 < len(words); k++ {
			d, ok := g.Models().Bigrams.Get(Word(words[k]))
			if !ok || !d.Contains(words[k+1]) {
				t.Fatalf("seed %d: %q never follows %q in the corpus (%v)", seed, words[k+1], words[k], words)
			}
		}
	}
}

func TestTrigramFallbackOnContextMiss(t *testing.T) {
	// The pair (x, a) only occurs at the very end, so it is never a trigram
	// context. Every other context has exactly one follower.
	corpus := []string{"a", "b", "c", "x", "a"}

	var steps []Step
	g := newTestGenerator(t, corpus, WithSeed(3), WithObserver(func(s Step) {
		steps = append(steps, s)
	}))

	words, err := g.Trigram("a", "b", 8)
	if err != nil {
		t.Fatalf("Trigram() error = %v", err)
	}
	want := []string{"a", "b", "c", "x", "a", "b", "c", "x"}
	if !reflect.DeepEqual(words, want) {
		t.Fatalf("Trigram() = %v, want %v", words, want)
	}

	if len(steps) != 6 {
		t.Fatalf("observed %d steps, want 6", len(steps))
	}
	for _, s := range steps {
		wantFallback := s.Index == 5
		if s.Fallback != wantFallback {
			t.Errorf("step %d (context %s): Fallback = %v, want %v", s.Index, s.Context, s.Fallback, wantFallback)
		}
		if s.Fallback && (s.Order != 2 || s.Context != Word("a").String()) {
			t.Errorf("fallback step used order %d context %s, want bigram context \"a\"", s.Order, s.Context)
		}
	}
}

func TestTrigramFallbackOnlyWhenUnseen(t *testing.T) {
	// (cat, sang) only closes the corpus, so it is the one unseen trigram context.
	corpus := strings.Fields("the cat sat on the mat and the dog sat on the cat " +
		"while a bird sang on the roof and the cat sang")
	for seed := uint64(0); seed < 25; seed++ {
		var out []string
		var mismatch []Step
		var g *Generator
		g = newTestGenerator(t, corpus, WithSeed(seed), WithObserver(func(s Step) {
			ctx := PairOf(out[s.Index-2], out[s.Index-1])
			if s.Fallback == g.Models().Trigrams.Has(ctx) {
				mismatch = append(mismatch, s)
			}
			out = append(out, s.Word)
		}))
		out = []string{"on", "the"}

		if _, err := g.Trigram("on", "the", 40); err != nil {
			t.Fatalf("seed %d: Trigram() error = %v", seed, err)
		}
		if len(mismatch) > 0 {
			t.Fatalf("seed %d: fallback flag disagrees with trigram contexts at %+v", seed, mismatch)
		}
	}
}

func TestGenerationReturnsSeedsWithoutSampling(t *testing.T) {
	testCases := []struct {
		name string
		run  func(g *Generator) ([]string, error)
		want []string
	}{
		{"Bigram zero words", func(g *Generator) ([]string, error) { return g.Bigram("i", 0) }, []string{"i"}},
		{"Bigram one word", func(g *Generator) ([]string, error) { return g.Bigram("i", 1) }, []string{"i"}},
		{"Bigram unseen seed", func(g *Generator) ([]string, error) { return g.Bigram("zebra", 1) }, []string{"zebra"}},
		{"Trigram zero words", func(g *Generator) ([]string, error) { return g.Trigram("i", "think", 0) }, []string{"i", "think"}},
		{"Trigram two words", func(g *Generator) ([]string, error) { return g.Trigram("i", "think", 2) }, []string{"i", "think"}},
		{"Unigram zero words", func(g *Generator) ([]string, error) { return g.Unigram(0) }, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := newCountingSource(5)
			g := newTestGenerator(t, descartes, WithSource(src))
			got, err := tc.run(g)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
			if src.draws != 0 {
				t.Errorf("expected no random draws, got %d", src.draws)
			}
		})
	}
}

func TestUnknownContext(t *testing.T) {
	testCases := []struct {
		name  string
		words []string
		run   func(g *Generator) ([]string, error)
	}{
		{"Bigram unseen seed", descartes, func(g *Generator) ([]string, error) { return g.Bigram("zebra", 3) }},
		{"Trigram unseen seeds", descartes, func(g *Generator) ([]string, error) { return g.Trigram("zebra", "zebra", 3) }},
		{"Trigram unseen newer seed", descartes, func(g *Generator) ([]string, error) { return g.Trigram("i", "zebra", 3) }},
		{"Unigram empty corpus", nil, func(g *Generator) ([]string, error) { return g.Unigram(5) }},
		{"Bigram empty corpus", nil, func(g *Generator) ([]string, error) { return g.BigramFromStart(1) }},
		{"Trigram empty corpus", nil, func(g *Generator) ([]string, error) { return g.TrigramFromStart(1) }},
		{"Dead end after last word", []string{"a", "b"}, func(g *Generator) ([]string, error) { return g.Bigram("a", 3) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGenerator(t, tc.words, WithSeed(1))
			if _, err := tc.run(g); !errors.Is(err, ErrUnknownContext) {
				t.Errorf("expected ErrUnknownContext, got %v", err)
			}
		})
	}

	if _, err := NewGenerator(nil).Unigram(1); !errors.Is(err, ErrUnknownContext) {
		t.Errorf("nil models: expected ErrUnknownContext, got %v", err)
	}
}

func TestGenerateFromStart(t *testing.T) {
	g := newTestGenerator(t, descartes, WithSeed(11))

	bi, err := g.BigramFromStart(6)
	if err != nil {
		t.Fatalf("BigramFromStart() error = %v", err)
	}
	if len(bi) != 6 || bi[0] != "i" {
		t.Errorf("BigramFromStart() = %v, want 6 words opening with \"i\"", bi)
	}

	tri, err := g.TrigramFromStart(6)
	if err != nil {
		t.Fatalf("TrigramFromStart() error = %v", err)
	}
	if len(tri) != 6 || tri[0] != "i" || tri[1] != "think" {
		t.Errorf("TrigramFromStart() = %v, want 6 words opening with \"i think\"", tri)
	}
}

func TestGenerationReproducible(t *testing.T) {
	a := newTestGenerator(t, descartes, WithSeed(42))
	b := newTestGenerator(t, descartes, WithSeed(42))

	wa, err := a.Trigram("i", "think", 25)
	if err != nil {
		t.Fatal(err)
	}
	wb, err := b.Trigram("i", "think", 25)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(wa, wb) {
		t.Errorf("same seed produced different text:\n%v\n%v", wa, wb)
	}
}

func TestGeneratorLogsFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	g := newTestGenerator(t, []string{"a", "b", "c", "x", "a"}, WithSeed(1), WithLogger(logger))

	if _, err := g.Trigram("a", "b", 6); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "falling back to bigram") {
		t.Errorf("expected fallback to be logged, got:\n%s", buf.String())
	}
}

func TestJoin(t *testing.T) {
	if got := Join([]string{"i", "think", "therefore"}); got != "i think therefore" {
		t.Errorf("Join() = %q", got)
	}
	if got := Join(nil); got != "" {
		t.Errorf("Join(nil) = %q, want empty", got)
	}
}

func BenchmarkTrigram(b *testing.B) {
	m, err := Build(strings.Fields(strings.Repeat("the quick brown fox jumps over the lazy dog and the cat ", 200)))
	if err != nil {
		b.Fatal(err)
	}
	g := NewGenerator(m, WithSeed(1))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Trigram("the", "quick", 100); err != nil {
			b.Fatalf("Trigram() failed: %v", err)
		}
	}
}
