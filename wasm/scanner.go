//go:build wasm

package main

import (
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/praetorian-inc/macrolex/pkg/scanner"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

// Aliases let tests decode results without importing scanner.
type (
	ScanResult      = scanner.ScanResult
	BatchScanResult = scanner.BatchScanResult
	ContentItem     = scanner.ContentItem
)

var (
	scanners   = make(map[int]*scanner.Core)
	scannersMu sync.RWMutex
	nextID     int
)

func errorResult(msg string) map[string]interface{} {
	return map[string]interface{}{"error": msg}
}

func lookup(handle int) (*scanner.Core, bool) {
	scannersMu.RLock()
	defer scannersMu.RUnlock()
	core, ok := scanners[handle]
	return core, ok
}

// newScanner creates a scanner for the given syntax YAML ("" or "default" for defaults).
// JS: MacrolexNewScanner(syntaxYAML) -> {handle} or {error}
func newScanner(this js.Value, args []js.Value) interface{} {
	syntaxYAML := ""
	if len(args) > 0 {
		syntaxYAML = args[0].String()
	}

	core, err := scanner.NewCore(syntaxYAML, scanner.NoopLogger{})
	if err != nil {
		return errorResult("failed to create scanner: " + err.Error())
	}

	scannersMu.Lock()
	id := nextID
	nextID++
	scanners[id] = core
	scannersMu.Unlock()

	return map[string]interface{}{"handle": id}
}

// scan lexes a single content string.
// JS: MacrolexScan(handle, content, source) -> JSON result or {error}
func scan(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("handle and content arguments required")
	}

	core, ok := lookup(args[0].Int())
	if !ok {
		return errorResult("invalid scanner handle")
	}

	source := ""
	if len(args) > 2 {
		source = args[2].String()
	}

	jsonBytes, err := json.Marshal(core.Scan(args[1].String(), source))
	if err != nil {
		return errorResult("failed to marshal results: " + err.Error())
	}
	return string(jsonBytes)
}

// scanBatch lexes multiple content items.
// JS: MacrolexScanBatch(handle, itemsJSON) -> JSON results or {error}
func scanBatch(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("handle and itemsJSON arguments required")
	}

	core, ok := lookup(args[0].Int())
	if !ok {
		return errorResult("invalid scanner handle")
	}

	var items []scanner.ContentItem
	if err := json.Unmarshal([]byte(args[1].String()), &items); err != nil {
		return errorResult("failed to parse items JSON: " + err.Error())
	}

	jsonBytes, err := json.Marshal(core.ScanBatch(items))
	if err != nil {
		return errorResult("failed to marshal results: " + err.Error())
	}
	return string(jsonBytes)
}

// locate resolves a byte offset in content to a text location.
// JS: MacrolexLocate(content, byteOffset) -> JSON location or {error}
func locate(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("content and byteOffset arguments required")
	}

	content := args[0].String()
	offset := args[1].Int()
	if offset < 0 || offset > len(content) {
		return errorResult("byte offset out of range")
	}

	jsonBytes, err := json.Marshal(types.ComputeLocation(types.TextLocation{}, content, offset))
	if err != nil {
		return errorResult("failed to marshal location: " + err.Error())
	}
	return string(jsonBytes)
}

// closeScanner releases a scanner handle.
// JS: MacrolexCloseScanner(handle)
func closeScanner(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("handle argument required")
	}

	handle := args[0].Int()

	scannersMu.Lock()
	_, ok := scanners[handle]
	delete(scanners, handle)
	scannersMu.Unlock()

	if !ok {
		return errorResult("invalid scanner handle")
	}
	return nil
}
