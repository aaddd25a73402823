package ngram

import "strconv"

// StartText is how the start sentinel renders in logs and error messages. It is
// never compared against corpus words.
const StartText = "<start>"

// Token is either a corpus word or the start sentinel that stands for "no
// preceding word". The zero value is not valid; use Start or Word.
type Token struct {
	text  string
	start bool
}

// Start is the sentinel context used before the first word of a corpus.
var Start = Token{start: true}

// Word wraps a corpus word as a Token.
func Word(text string) Token {
	return Token{text: text}
}

// IsStart reports whether t is the start sentinel.
func (t Token) IsStart() bool {
	return t.start
}

// Text returns the word. It is empty for the start sentinel.
func (t Token) Text() string {
	return t.text
}

func (t Token) String() string {
	if t.start {
		return StartText
	}
	return strconv.Quote(t.text)
}

// Pair is a two-word trigram context. Older precedes Newer in the text.
type Pair struct {
	Older Token
	Newer Token
}

// PairOf is shorthand for a Pair of two corpus words.
func PairOf(older, newer string) Pair {
	return Pair{Older: Word(older), Newer: Word(newer)}
}

// Shift drops Older and appends next as the new Newer.
func (p Pair) Shift(next Token) Pair {
	return Pair{Older: p.Newer, Newer: next}
}

func (p Pair) String() string {
	return "(" + p.Older.String() + ", " + p.Newer.String() + ")"
}
