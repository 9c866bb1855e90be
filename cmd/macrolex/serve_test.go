package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/macrolex/pkg/serve"
)

func TestServeCommand_Integration(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	pr, pw := io.Pipe()
	out := &bytes.Buffer{}

	testCmd := &cobra.Command{
		Use:  "serve",
		RunE: runServe,
	}
	testCmd.SetIn(pr)
	testCmd.SetOut(out)
	testCmd.SetErr(io.Discard)
	testCmd.SetArgs([]string{})

	done := make(chan error, 1)
	go func() {
		done <- testCmd.Execute()
	}()

	_, err := pw.Write([]byte(`{"type":"scan","payload":{"content":"a;","source":"s"}}` + "\n"))
	require.NoError(t, err)
	_, err = pw.Write([]byte(`{"type":"close","payload":{}}` + "\n"))
	require.NoError(t, err)
	pw.Close()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after close request")
	}

	assert.Contains(t, out.String(), `"type":"ready"`)
	assert.Contains(t, out.String(), `"type":"scan"`)
}

func TestServeCommand_EndIdentFlag(t *testing.T) {
	cmd, out, _ := newTestCmd(t)
	endIdent = "end"
	cmd.SetIn(strings.NewReader(`{"type":"scan","payload":{"content":"a end","source":"s"}}` + "\n"))

	require.NoError(t, runServe(cmd, nil))

	assert.Contains(t, out.String(), `"macro_end_ident":"end"`)
	assert.Contains(t, out.String(), `"kind":"terminator"`)
}

func TestServeCommand_InvalidSyntax(t *testing.T) {
	cmd, _, _ := newTestCmd(t)
	syntaxPath = filepath.Join(t.TempDir(), "missing.yaml")

	err := runServe(cmd, nil)
	assert.ErrorContains(t, err, "loading syntax")
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"tokens", "comments", "find", "locate", "scan", "report", "serve", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestStartMetricsServer(t *testing.T) {
	cmd, _, _ := newTestCmd(t)
	reg := prometheus.NewRegistry()
	serve.NewMetrics(reg)

	stop, err := startMetricsServer(cmd, "127.0.0.1:0", reg)
	require.NoError(t, err)
	stop()
}

func TestStartMetricsServer_BadAddress(t *testing.T) {
	cmd, _, _ := newTestCmd(t)

	_, err := startMetricsServer(cmd, "not-an-address", prometheus.NewRegistry())
	assert.ErrorContains(t, err, "listening on not-an-address")
}
