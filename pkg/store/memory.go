package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/praetorian-inc/macrolex/pkg/types"
)

// sourceRecord stores source metadata and scan output.
type sourceRecord struct {
	id       types.SourceID
	kind     string
	path     string
	size     int64
	tokens   []types.Token
	comments []types.LocatedStr
}

// MemoryStore implements Store using in-memory data structures.
type MemoryStore struct {
	mu      sync.RWMutex
	sources map[types.SourceID]*sourceRecord
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		sources: make(map[types.SourceID]*sourceRecord),
	}
}

// AddSource records a source.
func (m *MemoryStore) AddSource(id types.SourceID, prov types.Provenance, size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sources[id]; exists {
		// Idempotent - already exists
		return nil
	}

	m.sources[id] = &sourceRecord{
		id:   id,
		kind: prov.Kind(),
		path: prov.Path(),
		size: size,
	}
	return nil
}

// SourceExists checks if a source has already been scanned.
func (m *MemoryStore) SourceExists(id types.SourceID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.sources[id]
	return exists, nil
}

// AddTokens stores the token stream of a source.
func (m *MemoryStore) AddTokens(id types.SourceID, tokens []types.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.sources[id]
	if !ok {
		return fmt.Errorf("unknown source: %s", id)
	}
	rec.tokens = append([]types.Token(nil), tokens...)
	return nil
}

// AddComments stores the comment bodies of a source.
func (m *MemoryStore) AddComments(id types.SourceID, comments []types.LocatedStr) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.sources[id]
	if !ok {
		return fmt.Errorf("unknown source: %s", id)
	}
	rec.comments = append([]types.LocatedStr(nil), comments...)
	return nil
}

// GetSources lists every source ordered by path.
func (m *MemoryStore) GetSources() ([]*Source, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sources := make([]*Source, 0, len(m.sources))
	for _, rec := range m.sources {
		sources = append(sources, &Source{
			ID:           rec.id,
			Kind:         rec.kind,
			Path:         rec.path,
			Size:         rec.size,
			TokenCount:   len(rec.tokens),
			CommentCount: len(rec.comments),
		})
	}
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].Path != sources[j].Path {
			return sources[i].Path < sources[j].Path
		}
		return sources[i].ID.Hex() < sources[j].ID.Hex()
	})
	return sources, nil
}

// GetTokens retrieves the tokens of a source.
func (m *MemoryStore) GetTokens(id types.SourceID) ([]types.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.sources[id]
	if !ok {
		return nil, nil
	}
	return append([]types.Token(nil), rec.tokens...), nil
}

// GetComments retrieves the comment bodies of a source.
func (m *MemoryStore) GetComments(id types.SourceID) ([]types.LocatedStr, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.sources[id]
	if !ok {
		return nil, nil
	}
	return append([]types.LocatedStr(nil), rec.comments...), nil
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}
