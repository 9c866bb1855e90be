package store

import (
	"database/sql"
	"fmt"

	"github.com/praetorian-inc/macrolex/pkg/types"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store.
// Use ":memory:" for in-memory database (useful for testing).
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddSource records a source.
func (s *SQLiteStore) AddSource(id types.SourceID, prov types.Provenance, size int64) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO sources (id, kind, path, size) VALUES (?, ?, ?, ?)",
		id.Hex(), prov.Kind(), prov.Path(), size,
	)
	if err != nil {
		return fmt.Errorf("inserting source: %w", err)
	}
	return nil
}

// SourceExists checks if a source has already been scanned.
func (s *SQLiteStore) SourceExists(id types.SourceID) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM sources WHERE id = ?", id.Hex()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking source existence: %w", err)
	}
	return count > 0, nil
}

// AddTokens stores the token stream of a source.
func (s *SQLiteStore) AddTokens(id types.SourceID, tokens []types.Token) error {
	return s.replaceRows(id, "tokens", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO tokens (source_id, seq, kind, text, line, col, byte)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, tok := range tokens {
			loc := tok.Location
			if _, err := stmt.Exec(id.Hex(), i, tok.Kind.String(), tok.Text.Text, int64(loc.Line), int64(loc.Column), int64(loc.Byte)); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddComments stores the comment bodies of a source.
func (s *SQLiteStore) AddComments(id types.SourceID, comments []types.LocatedStr) error {
	return s.replaceRows(id, "comments", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO comments (source_id, seq, text, line, col, byte)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, c := range comments {
			if _, err := stmt.Exec(id.Hex(), i, c.Text, int64(c.Start.Line), int64(c.Start.Column), int64(c.Start.Byte)); err != nil {
				return err
			}
		}
		return nil
	})
}

// replaceRows deletes the source's rows from table and runs insert, in one transaction.
// table is always one of the package's own table names.
func (s *SQLiteStore) replaceRows(id types.SourceID, table string, insert func(tx *sql.Tx) error) error {
	exists, err := s.SourceExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("unknown source: %s", id)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM "+table+" WHERE source_id = ?", id.Hex()); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return fmt.Errorf("inserting %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}
	return nil
}

// GetSources lists every source ordered by path.
func (s *SQLiteStore) GetSources() ([]*Source, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.kind, s.path, s.size,
			(SELECT COUNT(*) FROM tokens t WHERE t.source_id = s.id),
			(SELECT COUNT(*) FROM comments c WHERE c.source_id = s.id)
		FROM sources s
		ORDER BY s.path, s.id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []*Source
	for rows.Next() {
		var (
			src   Source
			idHex string
		)
		if err := rows.Scan(&idHex, &src.Kind, &src.Path, &src.Size, &src.TokenCount, &src.CommentCount); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		src.ID, err = types.ParseSourceID(idHex)
		if err != nil {
			return nil, fmt.Errorf("parsing source id: %w", err)
		}
		sources = append(sources, &src)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return sources, nil
}

// GetTokens retrieves the tokens of a source.
func (s *SQLiteStore) GetTokens(id types.SourceID) ([]types.Token, error) {
	rows, err := s.db.Query(`
		SELECT kind, text, line, col, byte
		FROM tokens
		WHERE source_id = ?
		ORDER BY seq
	`, id.Hex())
	if err != nil {
		return nil, fmt.Errorf("querying tokens: %w", err)
	}
	defer rows.Close()

	var tokens []types.Token
	for rows.Next() {
		var (
			kindName string
			text     string
			loc      types.TextLocation
		)
		if err := rows.Scan(&kindName, &text, &loc.Line, &loc.Column, &loc.Byte); err != nil {
			return nil, fmt.Errorf("scanning token: %w", err)
		}

		kind, err := types.ParseTokenKind(kindName)
		if err != nil {
			return nil, err
		}

		switch kind {
		case types.Terminator:
			tokens = append(tokens, types.NewTerminator(loc))
		case types.Symbol:
			tokens = append(tokens, types.NewSymbol(types.NewLocatedStrAt(text, loc)))
		default:
			tokens = append(tokens, types.NewAlphanumericRun(types.NewLocatedStrAt(text, loc)))
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tokens: %w", err)
	}

	return tokens, nil
}

// GetComments retrieves the comment bodies of a source.
func (s *SQLiteStore) GetComments(id types.SourceID) ([]types.LocatedStr, error) {
	rows, err := s.db.Query(`
		SELECT text, line, col, byte
		FROM comments
		WHERE source_id = ?
		ORDER BY seq
	`, id.Hex())
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	var comments []types.LocatedStr
	for rows.Next() {
		var c types.LocatedStr
		if err := rows.Scan(&c.Text, &c.Start.Line, &c.Start.Column, &c.Start.Byte); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
