package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/macrolex/pkg/scanner"
)

// Request is one NDJSON input line. Type is "scan", "scan_batch", "locate"
// or "close"; Payload is decoded according to Type.
type Request struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ScanPayload asks for the comments and tokens of Content.
// A non-empty EndIdent replaces the server's macro terminator for this request only.
type ScanPayload struct {
	Content  string `json:"content"`
	Source   string `json:"source"`
	EndIdent string `json:"end_ident,omitempty"`
}

// ScanBatchPayload scans every item with the same settings.
type ScanBatchPayload struct {
	Items    []scanner.ContentItem `json:"items"`
	EndIdent string                `json:"end_ident,omitempty"`
}

// LocatePayload resolves a byte offset within Content.
type LocatePayload struct {
	Content string `json:"content"`
	Offset  int    `json:"offset"`
}

// Response is one NDJSON output line. Data is set on success, Error otherwise.
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is sent once, before any request is read.
type ReadyData struct {
	Version          string `json:"version"`
	MacroEndIdent    string `json:"macro_end_ident"`
	MacroStartMarker string `json:"macro_start_marker"`
}
