// Package textio turns raw text into the normalized word sequences consumed by
// package ngram, and lays generated text out for display.
package textio
