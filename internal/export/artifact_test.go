package export

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArtifact_FlattensNewlines(t *testing.T) {
	a := NewArtifact("\n• First.\n\n• Second.")

	assert.Equal(t, "summary.txt", a.Filename)
	decoded, err := base64.StdEncoding.DecodeString(a.Base64)
	require.NoError(t, err)
	assert.Equal(t, " • First.  • Second.", string(decoded))
	assert.Equal(t, decoded, a.Bytes())
}

func TestArtifact_DataURIAndLink(t *testing.T) {
	a := NewArtifact("a\nb")

	assert.Equal(t, "data:file/txt;base64,YSBi", a.DataURI())
	assert.Equal(t, `<a href="data:file/txt;base64,YSBi" download="summary.txt">Download Summary</a>`, a.Link())
}

func TestArtifact_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	a := NewNamedArtifact("one\ntwo", "notes.txt")

	path, err := a.Save(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one two", string(data))
}

func TestArtifact_EmptySummary(t *testing.T) {
	a := NewArtifact("")
	assert.Empty(t, a.Base64)
	assert.Empty(t, a.Bytes())
}
