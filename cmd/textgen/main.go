package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/CTAG07/ngramtext/pkg/ngram"
	"github.com/CTAG07/ngramtext/pkg/textio"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	seed       uint64
	config     *Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		bigramFirst   string
		trigramFirst  string
		trigramSecond string
		out           string
	)

	root := &cobra.Command{
		Use:   "textgen <file> <word_count>",
		Short: "Generate random text from n-gram statistics",
		Long: `
Generate random text whose local structure mimics a sample text. Given a file
and a word count, textgen prints unigram, bigram and trigram text in turn.
Use the subcommands for finer control and for a stored corpus library.`,
		Version:           fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		Args:              cobra.ExactArgs(2),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := a.config.Generation
			if cmd.Flags().Changed("bigram-first") {
				gen.BigramFirst = bigramFirst
			}
			if cmd.Flags().Changed("trigram-first") {
				gen.TrigramFirst = trigramFirst
			}
			if cmd.Flags().Changed("trigram-second") {
				gen.TrigramSecond = trigramSecond
			}
			return a.runAll(cmd, args[0], args[1], out)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "./textgen.json", "config file (.json, .yaml or .yml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	root.PersistentFlags().Uint64Var(&a.seed, "seed", 0, "random seed for reproducible output")

	root.Flags().StringVar(&bigramFirst, "bigram-first", "", "first word of the bigram text (default: sampled from the corpus opening)")
	root.Flags().StringVar(&trigramFirst, "trigram-first", "", "first word of the trigram text")
	root.Flags().StringVar(&trigramSecond, "trigram-second", "", "second word of the trigram text")
	root.Flags().StringVarP(&out, "out", "o", "", "write the trigram text to this file instead of stdout")

	root.AddCommand(newGenerateCmd(a), newCorpusCmd(a), newStatsCmd(a))
	return root
}

// load reads the config file and builds the logger before any command runs.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	config, err := LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.logLevel != "" {
		config.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("seed") {
		seed := a.seed
		config.Generation.RandomSeed = &seed
	}
	a.config = config
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))
	return nil
}

func (a *app) newGenerator(models *ngram.Models) *ngram.Generator {
	opts := []ngram.Option{ngram.WithLogger(a.logger)}
	if seed := a.config.Generation.RandomSeed; seed != nil {
		opts = append(opts, ngram.WithSeed(*seed))
	}
	return ngram.NewGenerator(models, opts...)
}

// runAll builds all three models from file and prints a sample of each.
func (a *app) runAll(cmd *cobra.Command, file, count, out string) error {
	wordCount, err := strconv.Atoi(count)
	if err != nil || wordCount < 1 {
		return fmt.Errorf("word count must be a positive integer, got %q", count)
	}

	words, err := textio.NewTokenizer().ReadFile(file)
	if err != nil {
		return err
	}
	models, err := ngram.Build(words)
	if err != nil {
		return err
	}
	a.logger.Info("Models built",
		slog.String("file", file),
		slog.Int("tokens", models.Tokens),
		slog.Int("bigram_contexts", models.Bigrams.Len()),
		slog.Int("trigram_contexts", models.Trigrams.Len()),
	)

	gen := a.newGenerator(models)
	cfg := a.config.Generation

	uni, err := gen.Unigram(wordCount)
	if err != nil {
		return fmt.Errorf("unigram generation failed: %w", err)
	}
	bi, err := generate(gen, "bigram", cfg.BigramFirst, "", wordCount)
	if err != nil {
		return fmt.Errorf("bigram generation failed: %w", err)
	}
	tri, err := generate(gen, "trigram", cfg.TrigramFirst, cfg.TrigramSecond, wordCount)
	if err != nil {
		return fmt.Errorf("trigram generation failed: %w", err)
	}

	var sb strings.Builder
	writeSection(&sb, "Unigrams:", uni, cfg.WrapWidth)
	sb.WriteString(divider)
	writeSection(&sb, "Bigrams:", bi, cfg.WrapWidth)
	sb.WriteString(divider)

	var trigrams strings.Builder
	writeSection(&trigrams, "Trigrams:", tri, cfg.WrapWidth)
	if out == "" {
		sb.WriteString(trigrams.String())
	}
	if _, err = fmt.Fprint(cmd.OutOrStdout(), sb.String()); err != nil {
		return err
	}
	if out != "" {
		return a.writeOutput(out, trigrams.String())
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
