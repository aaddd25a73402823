package ngram

import "errors"

var (
	// ErrMalformedDistribution is returned when a distribution's probabilities
	// are negative or do not sum to 1 within Tolerance.
	ErrMalformedDistribution = errors.New("malformed distribution")
	// ErrUnknownContext is returned when generation needs a context that the
	// model never observed.
	ErrUnknownContext = errors.New("unknown context")
	// ErrEmptyCounts is returned by Normalize for a counter with no entries.
	ErrEmptyCounts = errors.New("empty counts")
	// ErrSampleOverrun is returned when the sampler walks past the last entry of
	// a distribution without selecting one.
	ErrSampleOverrun = errors.New("sampler ran past end of distribution")
)
