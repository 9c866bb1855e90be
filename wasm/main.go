//go:build wasm

// Command wasm exposes the macrolex scanner to JavaScript.
package main

import "syscall/js"

var exports = map[string]func(js.Value, []js.Value) interface{}{
	"MacrolexNewScanner":   newScanner,
	"MacrolexScan":         scan,
	"MacrolexScanBatch":    scanBatch,
	"MacrolexLocate":       locate,
	"MacrolexCloseScanner": closeScanner,
}

func main() {
	global := js.Global()
	for name, fn := range exports {
		global.Set(name, js.FuncOf(fn))
	}

	// Block forever; returning would tear down the exported callbacks.
	select {}
}
