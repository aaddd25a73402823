package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Document describes one stored word sequence.
type Document struct {
	ID      int
	Name    string
	Words   int
	Created time.Time
}

// StoreStats holds aggregated counts for the whole store.
type StoreStats struct {
	Documents  int // The number of stored documents.
	Tokens     int // The total number of words across all documents.
	Vocabulary int // The number of distinct words across all documents.
}

// Add stores words under name, replacing any document already stored with that
// name. The whole operation runs in one transaction.
func (s *Store) Add(ctx context.Context, name string, words []string) (Document, error) {
	if name == "" {
		return Document{}, errors.New("document name must not be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Document{}, err
	}
	// All transaction-specific statements will also be closed with this or the .Commit()
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	replaced, err := s.removeTx(ctx, tx, name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Document{}, err
	}

	doc := Document{Name: name, Words: len(words), Created: time.Now().UTC().Truncate(time.Second)}
	if err = tx.StmtContext(ctx, s.stmtInsertDoc).QueryRowContext(ctx, name, len(words), doc.Created.Unix()).Scan(&doc.ID); err != nil {
		return Document{}, fmt.Errorf("could not insert document '%s': %w", name, err)
	}

	stmtInsertVocab := tx.StmtContext(ctx, s.stmtInsertVocab)
	stmtInsertToken := tx.StmtContext(ctx, s.stmtInsertToken)
	vocabCache := make(map[string]int)

	for pos, word := range words {
		tokenID, ok := vocabCache[word]
		if !ok {
			if err = stmtInsertVocab.QueryRowContext(ctx, word).Scan(&tokenID); err != nil {
				return Document{}, fmt.Errorf("sql insert vocabulary error for token '%s': %w", word, err)
			}
			vocabCache[word] = tokenID
		}
		if _, err = stmtInsertToken.ExecContext(ctx, doc.ID, pos, tokenID); err != nil {
			return Document{}, fmt.Errorf("failed to insert token %d of '%s': %w", pos, name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return Document{}, fmt.Errorf("could not commit document '%s': %w", name, err)
	}

	s.logger.InfoContext(ctx, "Document stored",
		slog.String("doc_name", name),
		slog.Int("doc_id", doc.ID),
		slog.Int("words", len(words)),
		slog.Int("distinct_words", len(vocabCache)),
		slog.Bool("replaced", replaced),
	)
	return doc, nil
}

// Words returns the words of the named document in their original order. It
// returns ErrNotFound if no such document exists.
func (s *Store) Words(ctx context.Context, name string) ([]string, error) {
	docID, err := s.docID(ctx, s.stmtGetDocID, name)
	if err != nil {
		return nil, err
	}

	rows, err := s.stmtGetTokens.QueryContext(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("could not query tokens for '%s': %w", name, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	words := make([]string, 0)
	for rows.Next() {
		var w string
		if err = rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// List returns all stored documents ordered by name.
func (s *Store) List(ctx context.Context) ([]Document, error) {
	rows, err := s.stmtListDocs.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var docs []Document
	for rows.Next() {
		var doc Document
		var created int64
		if err = rows.Scan(&doc.ID, &doc.Name, &doc.Words, &created); err != nil {
			return nil, err
		}
		doc.Created = time.Unix(created, 0).UTC()
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Remove deletes the named document and its tokens. Vocabulary entries are
// kept. It returns ErrNotFound if no such document exists.
func (s *Store) Remove(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = s.removeTx(ctx, tx, name); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Document removed", slog.String("doc_name", name))
	return tx.Commit()
}

// Stats returns a snapshot of counts for the whole store.
func (s *Store) Stats(ctx context.Context) (StoreStats, error) {
	var stats StoreStats
	if err := s.stmtCountDocs.QueryRowContext(ctx).Scan(&stats.Documents); err != nil {
		return StoreStats{}, err
	}
	if err := s.stmtCountTokens.QueryRowContext(ctx).Scan(&stats.Tokens); err != nil {
		return StoreStats{}, err
	}
	if err := s.stmtCountVocab.QueryRowContext(ctx).Scan(&stats.Vocabulary); err != nil {
		return StoreStats{}, err
	}
	return stats, nil
}

// removeTx deletes the named document inside tx and reports whether it existed.
func (s *Store) removeTx(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	docID, err := s.docID(ctx, tx.StmtContext(ctx, s.stmtGetDocID), name)
	if err != nil {
		return false, err
	}
	if _, err = tx.StmtContext(ctx, s.stmtDeleteTokens).ExecContext(ctx, docID); err != nil {
		return false, fmt.Errorf("failed to remove tokens for document %d: %w", docID, err)
	}
	if _, err = tx.StmtContext(ctx, s.stmtDeleteDoc).ExecContext(ctx, docID); err != nil {
		return false, fmt.Errorf("failed to remove document %d: %w", docID, err)
	}
	return true, nil
}

func (s *Store) docID(ctx context.Context, stmt *sql.Stmt, name string) (int, error) {
	var docID int
	err := stmt.QueryRowContext(ctx, name).Scan(&docID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("could not look up document '%s': %w", name, err)
	}
	return docID, nil
}
