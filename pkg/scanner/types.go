package scanner

import "github.com/praetorian-inc/macrolex/pkg/types"

// ContentItem is one named buffer submitted to ScanBatch.
// Source is free-form, e.g. "editor:buffer:1".
type ContentItem struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// ScanResult holds the comment bodies and macro tokens of one buffer, both
// located from the start of that buffer.
type ScanResult struct {
	Source   string             `json:"source"`
	Comments []types.LocatedStr `json:"comments"`
	Tokens   []types.Token      `json:"tokens"`
}

// BatchScanResult holds one ScanResult per item, in item order.
type BatchScanResult struct {
	Results []ScanResult `json:"results"`
	// Total counts tokens across all results.
	Total int `json:"total"`
}

// DebugLogger receives printf-style progress messages from a Core.
type DebugLogger interface {
	Log(format string, args ...interface{})
}

// NoopLogger discards everything.
type NoopLogger struct{}

func (NoopLogger) Log(format string, args ...interface{}) {}
