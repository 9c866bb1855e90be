package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every package-level flag to its default.
func resetFlags() {
	verbose = false
	quiet = false

	syntaxPath = ""
	endIdent = ""
	outputFormat = "human"
	colorMode = "never"

	findNeedles = nil
	locateAt = -1

	scanOutputPath = "macrolex.db"
	scanOutputFormat = "human"
	scanMaxFileSize = 10 * 1024 * 1024
	scanIncludeHidden = false
	scanIncremental = false
	scanExtensions = nil

	serveMetricsAddr = ""

	reportDatastore = "macrolex.db"
	reportFormat = "human"
	reportColor = "never"
	reportContents = false
}

// newTestCmd returns a bare command with captured stdout and stderr.
func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
