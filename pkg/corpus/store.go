package corpus

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrNotFound is returned when a named document does not exist.
var ErrNotFound = errors.New("document not found")

// SetupSchema initializes the tables used by Store in the provided database.
// It is idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaVocab = `
CREATE TABLE IF NOT EXISTS corpus_vocabulary (
    token_id INTEGER PRIMARY KEY,
    token_text TEXT NOT NULL UNIQUE
);
`
		schemaDocuments = `
CREATE TABLE IF NOT EXISTS corpus_documents (
    doc_id INTEGER PRIMARY KEY,
    doc_name TEXT NOT NULL UNIQUE,
    word_count INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);
`
		schemaTokens = `
CREATE TABLE IF NOT EXISTS corpus_tokens (
    doc_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    token_id INTEGER NOT NULL,
    PRIMARY KEY (doc_id, position)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaVocab); err != nil {
		return fmt.Errorf("could not create vocabulary schema: %w", err)
	}
	if _, err = tx.Exec(schemaDocuments); err != nil {
		return fmt.Errorf("could not create documents schema: %w", err)
	}
	if _, err = tx.Exec(schemaTokens); err != nil {
		return fmt.Errorf("could not create tokens schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Store reads and writes corpus documents. It holds the database connection and
// prepared SQL statements.
type Store struct {
	db               *sql.DB
	stmtGetDocID     *sql.Stmt
	stmtListDocs     *sql.Stmt
	stmtGetTokens    *sql.Stmt
	stmtCountDocs    *sql.Stmt
	stmtCountTokens  *sql.Stmt
	stmtCountVocab   *sql.Stmt
	stmtInsertVocab  *sql.Stmt
	stmtInsertDoc    *sql.Stmt
	stmtInsertToken  *sql.Stmt
	stmtDeleteDoc    *sql.Stmt
	stmtDeleteTokens *sql.Stmt
	logger           *slog.Logger
}

// NewStore pre-compiles all SQL statements used by the Store, returning an
// error if any preparation fails. SetupSchema must have been called first.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{
		db:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	statements := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&s.stmtGetDocID, `SELECT doc_id FROM corpus_documents WHERE doc_name = ?;`},
		{&s.stmtListDocs, `SELECT doc_id, doc_name, word_count, created_at FROM corpus_documents ORDER BY doc_name;`},
		{&s.stmtGetTokens, `SELECT v.token_text FROM corpus_tokens t JOIN corpus_vocabulary v ON v.token_id = t.token_id WHERE t.doc_id = ? ORDER BY t.position;`},
		{&s.stmtCountDocs, `SELECT COUNT(*) FROM corpus_documents;`},
		{&s.stmtCountTokens, `SELECT COUNT(*) FROM corpus_tokens;`},
		{&s.stmtCountVocab, `SELECT COUNT(*) FROM corpus_vocabulary;`},
		{&s.stmtInsertVocab, `INSERT INTO corpus_vocabulary (token_text) VALUES (?) ON CONFLICT(token_text) DO UPDATE SET token_text=excluded.token_text RETURNING token_id;`},
		{&s.stmtInsertDoc, `INSERT INTO corpus_documents (doc_name, word_count, created_at) VALUES (?, ?, ?) RETURNING doc_id;`},
		{&s.stmtInsertToken, `INSERT INTO corpus_tokens (doc_id, position, token_id) VALUES (?, ?, ?);`},
		{&s.stmtDeleteDoc, `DELETE FROM corpus_documents WHERE doc_id = ?;`},
		{&s.stmtDeleteTokens, `DELETE FROM corpus_tokens WHERE doc_id = ?;`},
	}

	for _, st := range statements {
		stmt, err := db.Prepare(st.query)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("could not prepare statement %q: %w", st.query, err)
		}
		*st.dst = stmt
	}
	return s, nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	for _, stmt := range []*sql.Stmt{
		s.stmtGetDocID, s.stmtListDocs, s.stmtGetTokens, s.stmtCountDocs,
		s.stmtCountTokens, s.stmtCountVocab, s.stmtInsertVocab, s.stmtInsertDoc,
		s.stmtInsertToken, s.stmtDeleteDoc, s.stmtDeleteTokens,
	} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}
