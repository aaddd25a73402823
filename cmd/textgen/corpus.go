package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/CTAG07/ngramtext/pkg/corpus"
	"github.com/CTAG07/ngramtext/pkg/textio"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// openStore opens the configured database and returns a ready Store together
// with a function that releases both.
func (a *app) openStore() (*corpus.Store, func(), error) {
	db, err := initDB(a.config.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to set up corpus schema: %w", err)
	}
	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("error creating corpus store: %w", err)
	}
	store.SetLogger(a.logger)

	return store, func() {
		store.Close()
		if err := db.Close(); err != nil {
			a.logger.Error("Failed to close database", "error", err)
		}
	}, nil
}

func newCorpusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the stored corpus library",
	}

	add := &cobra.Command{
		Use:   "add <name> <file>",
		Short: "Tokenize a file and store it under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := textio.NewTokenizer().ReadFile(args[1])
			if err != nil {
				return err
			}
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			doc, err := store.Add(cmd.Context(), args[0], words)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %q (%s words)\n", doc.Name, humanize.Comma(int64(doc.Words)))
			return err
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			docs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tWORDS\tADDED")
			for _, doc := range docs {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", doc.Name, humanize.Comma(int64(doc.Words)), humanize.Time(doc.Created))
			}
			if err = tw.Flush(); err != nil {
				return err
			}

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s documents, %s words, %s distinct\n",
				humanize.Comma(int64(stats.Documents)), humanize.Comma(int64(stats.Tokens)), humanize.Comma(int64(stats.Vocabulary)))
			return err
		},
	}

	remove := &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a stored document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()
			return store.Remove(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}
