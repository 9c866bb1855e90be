package scanner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/macrolex/pkg/syntax"
	"github.com/praetorian-inc/macrolex/pkg/types"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Log(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestNewCore_Default(t *testing.T) {
	for _, in := range []string{"", "default"} {
		core, err := NewCore(in, nil)
		require.NoError(t, err)
		assert.Equal(t, syntax.Default(), core.Settings())
	}
}

func TestNewCore_YAML(t *testing.T) {
	core, err := NewCore("macro_end_ident: \"=>\"\n", nil)

	require.NoError(t, err)
	assert.Equal(t, "=>", core.Settings().MacroEndIdent)
	assert.Equal(t, syntax.DefaultMacroStartMarker, core.Settings().MacroStartMarker)
}

func TestNewCore_InvalidYAML(t *testing.T) {
	_, err := NewCore("macro_end_ident: [", nil)
	assert.Error(t, err)
}

func TestNewCoreWithSettings_EmptyEndIdent(t *testing.T) {
	_, err := NewCoreWithSettings(syntax.Settings{MacroStartMarker: "#"}, nil)
	assert.True(t, errors.Is(err, syntax.ErrEmptyEndIdent))
}

func TestCore_Scan(t *testing.T) {
	logger := &recordingLogger{}
	core, err := NewCore("", logger)
	require.NoError(t, err)

	result := core.Scan("// note\nx;", "buf")

	assert.Equal(t, "buf", result.Source)
	assert.Equal(t, []types.LocatedStr{located(" note", 0, 2, 2)}, result.Comments)
	assert.Equal(t, []types.Token{
		sym("/", 0, 0, 0),
		sym("/", 0, 1, 1),
		run("note", 0, 3, 3),
		run("x", 1, 0, 8),
		term(1, 1, 9),
	}, result.Tokens)
	assert.Contains(t, logger.lines, "scanned buf: 5 tokens, 1 comments")
}

func TestCore_ScanInvalidUTF8(t *testing.T) {
	core, err := NewCore("", nil)
	require.NoError(t, err)

	result := core.Scan("x\xe2\x82;", "bad")

	assert.Equal(t, []types.Token{
		run("x", 0, 0, 0),
		sym("\uFFFD", 0, 1, 1),
		term(0, 2, 4),
	}, result.Tokens)
}

func TestCore_ScanBatch(t *testing.T) {
	core, err := NewCore("", nil)
	require.NoError(t, err)

	batch := core.ScanBatch([]ContentItem{
		{Source: "a", Content: "a;"},
		{Source: "b", Content: ""},
		{Source: "c", Content: "x + y;"},
	})

	require.Len(t, batch.Results, 3)
	assert.Equal(t, "a", batch.Results[0].Source)
	assert.Empty(t, batch.Results[1].Tokens)
	assert.Equal(t, 2+0+4, batch.Total)
}
