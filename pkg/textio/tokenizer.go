package textio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer splits text into lower-case words with punctuation removed. Its
// behavior can be customized with functional options.
type Tokenizer struct {
	keepCase bool
	strip    func(rune) bool
	maxWord  int
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithKeepCase disables lower-casing.
func WithKeepCase() Option {
	return func(t *Tokenizer) { t.keepCase = true }
}

// WithStrip sets the predicate for runes that are replaced by a space before
// splitting. Default: unicode.IsPunct or unicode.IsSymbol.
func WithStrip(strip func(rune) bool) Option {
	return func(t *Tokenizer) {
		if strip != nil {
			t.strip = strip
		}
	}
}

// WithMaxWordSize sets the longest word, in bytes, the stream will accept.
// Default: bufio.MaxScanTokenSize
func WithMaxWordSize(n int) Option {
	return func(t *Tokenizer) { t.maxWord = n }
}

// NewTokenizer creates a tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{
		strip: func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		},
		maxWord: bufio.MaxScanTokenSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tokenizer) transformer() transform.Transformer {
	chain := []transform.Transformer{
		norm.NFC,
		runes.Map(func(r rune) rune {
			if t.strip(r) {
				return ' '
			}
			return r
		}),
	}
	if !t.keepCase {
		chain = append(chain, cases.Lower(language.Und))
	}
	return transform.Chain(chain...)
}

// NewStream returns a Stream reading words from r.
func (t *Tokenizer) NewStream(r io.Reader) *Stream {
	scanner := bufio.NewScanner(transform.NewReader(r, t.transformer()))
	scanner.Buffer(make([]byte, 0, min(4096, t.maxWord)), t.maxWord)
	scanner.Split(bufio.ScanWords)
	return &Stream{scanner: scanner}
}

// Words reads r to the end and returns every word in order.
func (t *Tokenizer) Words(r io.Reader) ([]string, error) {
	stream := t.NewStream(r)
	var words []string
	for {
		w, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return words, nil
		}
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
}

// ReadFile returns the words of the file at path.
func (t *Tokenizer) ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	words, err := t.Words(f)
	if err != nil {
		return nil, fmt.Errorf("could not tokenize %s: %w", path, err)
	}
	return words, nil
}

// Stream is a stateful tokenizer over one io.Reader.
type Stream struct {
	scanner *bufio.Scanner
}

// Next returns the next word. It returns io.EOF when the stream is fully
// consumed; any other error comes from the underlying reader.
func (s *Stream) Next() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}
