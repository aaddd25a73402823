package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/CTAG07/ngramtext/pkg/ngram"
	"github.com/CTAG07/ngramtext/pkg/textio"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

var divider = strings.Repeat("-", 40) + "\n"

// generate dispatches to the Generator method for mode. Empty seed words start
// generation from the opening of the corpus.
func generate(gen *ngram.Generator, mode, first, second string, n int) ([]string, error) {
	switch mode {
	case "unigram":
		return gen.Unigram(n)
	case "bigram":
		if first == "" {
			return gen.BigramFromStart(n)
		}
		return gen.Bigram(first, n)
	case "trigram":
		switch {
		case first == "" && second == "":
			return gen.TrigramFromStart(n)
		case first == "" || second == "":
			return nil, errors.New("trigram generation needs both seed words or neither")
		}
		return gen.Trigram(first, second, n)
	default:
		return nil, fmt.Errorf("unknown mode %q (want unigram, bigram or trigram)", mode)
	}
}

// writeSection appends a title line followed by words wrapped to width.
func writeSection(sb *strings.Builder, title string, words []string, width int) {
	sb.WriteString(title)
	sb.WriteString("\n")
	for _, line := range textio.Wrap(ngram.Join(words), width) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

// writeOutput replaces the file at path with content in one atomic step.
func (a *app) writeOutput(path, content string) error {
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.logger.Info("Output written", slog.String("path", path), slog.Int("bytes", len(content)))
	return nil
}

// loadWords returns the words of file, or of the stored document corpusName
// when it is set.
func (a *app) loadWords(ctx context.Context, file, corpusName string) ([]string, error) {
	switch {
	case corpusName != "" && file != "":
		return nil, errors.New("give either a file or --corpus, not both")
	case corpusName != "":
		store, closeStore, err := a.openStore()
		if err != nil {
			return nil, err
		}
		defer closeStore()
		return store.Words(ctx, corpusName)
	case file != "":
		return textio.NewTokenizer().ReadFile(file)
	default:
		return nil, errors.New("no input: give a file or --corpus")
	}
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		mode       string
		wordCount  int
		first      string
		second     string
		corpusName string
		out        string
		width      int
	)

	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Generate text with a single n-gram model",
		Long: `
Generate text from a file or a stored corpus using one model. Bigram and
trigram text starts with the given seed words; without seeds it starts the way
the corpus does. A trigram context that never occurred in the corpus falls back
to the bigram model of the most recent word.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config.Generation
			if !cmd.Flags().Changed("words") {
				wordCount = cfg.WordCount
			}
			if !cmd.Flags().Changed("width") {
				width = cfg.WrapWidth
			}
			if wordCount < 1 {
				return fmt.Errorf("word count must be positive, got %d", wordCount)
			}
			if !cmd.Flags().Changed("first") && !cmd.Flags().Changed("second") {
				switch mode {
				case "bigram":
					first = cfg.BigramFirst
				case "trigram":
					first, second = cfg.TrigramFirst, cfg.TrigramSecond
				}
			}

			var file string
			if len(args) > 0 {
				file = args[0]
			}
			words, err := a.loadWords(cmd.Context(), file, corpusName)
			if err != nil {
				return err
			}
			models, err := ngram.Build(words)
			if err != nil {
				return err
			}

			generated, err := generate(a.newGenerator(models), mode, first, second, wordCount)
			if err != nil {
				return fmt.Errorf("%s generation failed: %w", mode, err)
			}
			a.logger.Info("Text generated",
				slog.String("mode", mode),
				slog.Int("corpus_tokens", models.Tokens),
				slog.Int("generated_length", len(generated)),
			)

			var sb strings.Builder
			for _, line := range textio.Wrap(ngram.Join(generated), width) {
				sb.WriteString(line)
				sb.WriteString("\n")
			}
			if out != "" {
				return a.writeOutput(out, sb.String())
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return err
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "trigram", "model to generate with: unigram, bigram or trigram")
	cmd.Flags().IntVarP(&wordCount, "words", "n", 100, "number of words to generate, seed words included")
	cmd.Flags().StringVar(&first, "first", "", "first seed word (bigram and trigram)")
	cmd.Flags().StringVar(&second, "second", "", "second seed word (trigram)")
	cmd.Flags().StringVarP(&corpusName, "corpus", "c", "", "use a stored corpus instead of a file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the text to this file instead of stdout")
	cmd.Flags().IntVar(&width, "width", textio.DefaultWidth, "wrap lines to this width")
	return cmd
}
