// Package export turns a summary into a downloadable summary.txt artifact.
package export

import (
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFilename is the name offered for downloads.
const DefaultFilename = "summary.txt"

// Artifact is a summary flattened to one line and base64 encoded.
type Artifact struct {
	Filename string `json:"filename"`
	Base64   string `json:"-"`
}

// NewArtifact replaces newlines with spaces and encodes the result.
func NewArtifact(summary string) Artifact {
	return NewNamedArtifact(summary, DefaultFilename)
}

// NewNamedArtifact is NewArtifact with a custom filename.
func NewNamedArtifact(summary, filename string) Artifact {
	flat := strings.ReplaceAll(summary, "\n", " ")
	return Artifact{
		Filename: filename,
		Base64:   base64.StdEncoding.EncodeToString([]byte(flat)),
	}
}

// Bytes returns the flattened summary text.
func (a Artifact) Bytes() []byte {
	b, err := base64.StdEncoding.DecodeString(a.Base64)
	if err != nil {
		return nil
	}
	return b
}

// DataURI returns the artifact as a data: URI.
func (a Artifact) DataURI() string {
	return "data:file/txt;base64," + a.Base64
}

// Link renders an HTML anchor that downloads the artifact.
func (a Artifact) Link() string {
	return fmt.Sprintf(`<a href="%s" download="%s">Download Summary</a>`, a.DataURI(), html.EscapeString(a.Filename))
}

// Save writes the flattened text into dir and returns the file path.
func (a Artifact) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(a.Filename))
	if err := os.WriteFile(path, a.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
