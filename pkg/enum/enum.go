package enum

import (
	"context"

	"github.com/praetorian-inc/macrolex/pkg/types"
)

// Callback receives the content of one source, its ID and where it came from.
// Enumerators may invoke it from several goroutines at once.
type Callback func(content []byte, id types.SourceID, prov types.Provenance) error

// Enumerator discovers sources to scan.
type Enumerator interface {
	// Enumerate yields every eligible source.
	Enumerate(ctx context.Context, callback Callback) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path: a directory to walk or a single file.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool

	// Extensions restricts the walk to files with one of these extensions
	// (".mac" or "mac"). Empty means every file.
	Extensions []string

	// Logger receives debug output. Nil disables it.
	Logger DebugLogger
}

// DebugLogger receives progress messages from enumeration.
type DebugLogger interface {
	Log(format string, args ...interface{})
}

// NoopLogger is a no-op logger
type NoopLogger struct{}

func (NoopLogger) Log(format string, args ...interface{}) {}
