package scanner

import (
	"github.com/praetorian-inc/macrolex/pkg/syntax"
)

// Core binds a validated syntax to the scanners, for hosts that scan many
// unrelated buffers (the streaming server and the wasm bindings).
type Core struct {
	settings syntax.Settings
	logger   DebugLogger
}

// NewCore creates a new Core.
// syntaxYAML can be:
// - "" or "default" for the default syntax
// - a YAML document with macro_start_marker / macro_end_ident keys
func NewCore(syntaxYAML string, logger DebugLogger) (*Core, error) {
	if logger == nil {
		logger = NoopLogger{}
	}

	settings := syntax.Default()
	if syntaxYAML != "" && syntaxYAML != "default" {
		var err error
		settings, err = syntax.Parse([]byte(syntaxYAML))
		if err != nil {
			logger.Log("syntax.Parse failed: %v", err)
			return nil, err
		}
	}
	logger.Log("NewCore ready (end ident %q)", settings.MacroEndIdent)

	return NewCoreWithSettings(settings, logger)
}

// NewCoreWithSettings creates a Core from already-built settings.
func NewCoreWithSettings(settings syntax.Settings, logger DebugLogger) (*Core, error) {
	if logger == nil {
		logger = NoopLogger{}
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Core{settings: settings, logger: logger}, nil
}

// Settings returns the syntax the core scans with.
func (c *Core) Settings() syntax.Settings {
	return c.settings
}

// Scan scans a single content string. Invalid UTF-8 is repaired as in Scan.
func (c *Core) Scan(content, source string) *ScanResult {
	result := Scan(content, c.settings)
	c.logger.Log("scanned %s: %d tokens, %d comments", source, len(result.Tokens), len(result.Comments))

	return &ScanResult{
		Source:   source,
		Comments: result.Comments,
		Tokens:   result.Tokens,
	}
}

// ScanBatch scans multiple content items
func (c *Core) ScanBatch(items []ContentItem) *BatchScanResult {
	results := make([]ScanResult, 0, len(items))
	total := 0

	for _, item := range items {
		r := c.Scan(item.Content, item.Source)
		results = append(results, *r)
		total += len(r.Tokens)
	}

	return &BatchScanResult{
		Results: results,
		Total:   total,
	}
}
