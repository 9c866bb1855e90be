//go:build wasm

package main

import (
	"encoding/json"
	"syscall/js"
	"testing"

	"github.com/praetorian-inc/macrolex/pkg/types"
)

func mustHandle(t *testing.T, syntaxYAML string) int {
	t.Helper()
	result := newScanner(js.Value{}, []js.Value{js.ValueOf(syntaxYAML)})

	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}
	if errMsg, hasError := resultMap["error"]; hasError {
		t.Fatalf("Failed to create scanner: %v", errMsg)
	}
	return resultMap["handle"].(int)
}

// TestScannerCreation tests creating a scanner with the default syntax
func TestScannerCreation(t *testing.T) {
	handle := mustHandle(t, "default")
	if res := closeScanner(js.Value{}, []js.Value{js.ValueOf(handle)}); res != nil {
		t.Fatalf("Expected nil from close, got %v", res)
	}
}

// TestScannerInvalidSyntax tests that an empty terminator is rejected
func TestScannerInvalidSyntax(t *testing.T) {
	result := newScanner(js.Value{}, []js.Value{js.ValueOf(`macro_end_ident: ""`)})

	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}
	if _, hasError := resultMap["error"]; !hasError {
		t.Fatal("Expected error for empty terminator")
	}
}

// TestScanContent tests lexing one buffer
func TestScanContent(t *testing.T) {
	handle := mustHandle(t, "")
	defer closeScanner(js.Value{}, []js.Value{js.ValueOf(handle)})

	resultStr := scan(js.Value{}, []js.Value{
		js.ValueOf(handle),
		js.ValueOf("// doc\nfoo;"),
		js.ValueOf("test-source"),
	})

	jsonStr, ok := resultStr.(string)
	if !ok {
		t.Fatalf("Expected string result, got %T: %v", resultStr, resultStr)
	}

	var result ScanResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}

	if result.Source != "test-source" {
		t.Errorf("Expected source 'test-source', got %q", result.Source)
	}
	if len(result.Comments) != 1 || result.Comments[0].Text != " doc" {
		t.Errorf("Unexpected comments: %v", result.Comments)
	}
	if n := len(result.Tokens); n != 5 {
		t.Fatalf("Expected 5 tokens, got %d", n)
	}
	if last := result.Tokens[4]; last.Kind != types.Terminator {
		t.Errorf("Expected terminator, got %v", last)
	}
}

// TestScanBatch tests lexing several buffers at once
func TestScanBatch(t *testing.T) {
	handle := mustHandle(t, "")
	defer closeScanner(js.Value{}, []js.Value{js.ValueOf(handle)})

	items := []ContentItem{
		{Source: "script:inline:1", Content: "a;"},
		{Source: "script:inline:2", Content: ""},
		{Source: "storage:local:config", Content: "x + y;"},
	}

	itemsJSON, _ := json.Marshal(items)
	resultStr := scanBatch(js.Value{}, []js.Value{
		js.ValueOf(handle),
		js.ValueOf(string(itemsJSON)),
	})

	jsonStr, ok := resultStr.(string)
	if !ok {
		t.Fatalf("Expected string result, got %T: %v", resultStr, resultStr)
	}

	var result BatchScanResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}

	if len(result.Results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(result.Results))
	}
	if result.Total != 6 {
		t.Errorf("Expected 6 total tokens, got %d", result.Total)
	}
}

// TestLocate tests resolving byte offsets
func TestLocate(t *testing.T) {
	resultStr := locate(js.Value{}, []js.Value{js.ValueOf("ab\ncd"), js.ValueOf(4)})

	jsonStr, ok := resultStr.(string)
	if !ok {
		t.Fatalf("Expected string result, got %T: %v", resultStr, resultStr)
	}

	var loc types.TextLocation
	if err := json.Unmarshal([]byte(jsonStr), &loc); err != nil {
		t.Fatalf("Failed to parse location: %v", err)
	}
	if want := types.NewTextLocation(1, 1, 4); loc != want {
		t.Errorf("Expected %v, got %v", want, loc)
	}
}

// TestInvalidHandle tests error handling for invalid handles
func TestInvalidHandle(t *testing.T) {
	result := scan(js.Value{}, []js.Value{js.ValueOf(9999), js.ValueOf("content")})

	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}
	if _, hasError := resultMap["error"]; !hasError {
		t.Error("Expected error for invalid handle")
	}
}
