package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/CTAG07/ngramtext/pkg/ngram"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var corpusName string

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Show model statistics for a file or stored corpus",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			stats := models.Stats()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			rows := []struct {
				label string
				value int
			}{
				{"tokens", stats.Tokens},
				{"vocabulary", stats.Vocabulary},
				{"bigram contexts", stats.BigramContexts},
				{"trigram contexts", stats.TrigramContexts},
				{"opening words", stats.Openers},
			}
			for _, row := range rows {
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", row.label, humanize.Comma(int64(row.value)))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&corpusName, "corpus", "c", "", "use a stored corpus instead of a file")
	return cmd
}
