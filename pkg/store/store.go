package store

import (
	"fmt"

	"github.com/praetorian-inc/macrolex/pkg/types"
)

// Source summarizes one scanned source.
type Source struct {
	ID           types.SourceID `json:"id"`
	Kind         string         `json:"kind"`
	Path         string         `json:"path"`
	Size         int64          `json:"size"`
	TokenCount   int            `json:"token_count"`
	CommentCount int            `json:"comment_count"`
}

// Store provides persistence for scan results.
// Tokens and comments come back in the order they were added, with their
// locations intact; the original source buffer is not retained.
type Store interface {
	// AddSource records a source. Adding the same ID twice is a no-op.
	AddSource(id types.SourceID, prov types.Provenance, size int64) error

	// SourceExists checks if a source has already been scanned.
	SourceExists(id types.SourceID) (bool, error)

	// AddTokens stores the token stream of a source, replacing any previous one.
	AddTokens(id types.SourceID, tokens []types.Token) error

	// AddComments stores the comment bodies of a source, replacing any previous ones.
	AddComments(id types.SourceID, comments []types.LocatedStr) error

	// GetSources lists every source with its counts, ordered by path.
	GetSources() ([]*Source, error)

	// GetTokens retrieves the tokens of a source.
	GetTokens(id types.SourceID) ([]types.Token, error)

	// GetComments retrieves the comment bodies of a source.
	GetComments(id types.SourceID) ([]types.LocatedStr, error)

	// Close releases the store.
	Close() error
}

// MemoryPath selects the in-memory store.
const MemoryPath = ":memory:"

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory store (useful for testing).
	Path string
}

// New creates a Store: MemoryStore for ":memory:", SQLite otherwise.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == MemoryPath {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}
