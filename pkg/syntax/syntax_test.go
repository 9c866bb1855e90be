package syntax

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, "#", s.MacroStartMarker)
	assert.Equal(t, ";", s.MacroEndIdent)
	assert.NoError(t, s.Validate())
}

func TestValidate_EmptyEndIdent(t *testing.T) {
	s := Settings{MacroStartMarker: "#"}
	assert.ErrorIs(t, s.Validate(), ErrEmptyEndIdent)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Settings
		wantErr bool
	}{
		{
			name: "both markers",
			yaml: "macro_start_marker: \"@\"\nmacro_end_ident: END\n",
			want: Settings{MacroStartMarker: "@", MacroEndIdent: "END"},
		},
		{
			name: "missing keys keep defaults",
			yaml: "macro_end_ident: \"$$\"\n",
			want: Settings{MacroStartMarker: "#", MacroEndIdent: "$$"},
		},
		{
			name: "empty document",
			yaml: "",
			want: Default(),
		},
		{
			name:    "explicit empty terminator",
			yaml:    "macro_end_ident: \"\"\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "macro_end_ident: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "syntax.yaml")
	require.NoError(t, os.WriteFile(path, []byte("macro_end_ident: \"!!\"\n"), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "!!", got.MacroEndIdent)
	assert.Equal(t, "#", got.MacroStartMarker)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading syntax file")
}
