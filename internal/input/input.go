// Package input validates and normalizes what callers hand to the summarizer:
// uploaded or on-disk documents and the requested sentence count.
package input

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"textsum/internal/domain"
)

// DefaultSentenceCount is used when the requested count is not a number.
const DefaultSentenceCount = 5

var (
	// ErrUnsupportedFormat is returned for file types that cannot be read.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrInvalidEncoding is returned for text that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("file is not valid UTF-8 text")
	// ErrTooLarge is returned when a document, or the text extracted from
	// a compressed one, exceeds MaxDocumentBytes.
	ErrTooLarge = errors.New("document too large")
)

// MaxDocumentBytes caps both raw input and text decompressed from .docx.
const MaxDocumentBytes = 16 << 20

// SupportedExtensions lists the readable file extensions.
var SupportedExtensions = []string{".txt", ".md", ".html", ".htm", ".docx"}

// ParseSentenceCount parses a user supplied count. Non-numeric input falls
// back to DefaultSentenceCount and values below 1 are clamped to 1.
func ParseSentenceCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultSentenceCount
	}
	if n < 1 {
		return 1
	}
	return n
}

// Normalize strips a byte order mark, unifies line endings and applies NFC.
func Normalize(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text)
}

// Supported reports whether a file name has a readable extension.
// Names without an extension are treated as plain text.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return true
	}
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Read decodes a document from r, picking the format from name's extension.
func Read(name string, r io.Reader) (domain.Document, error) {
	data, err := readLimited(r, MaxDocumentBytes)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read %s: %w", name, err)
	}
	var text string
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".txt", ".md", "":
		if !utf8.Valid(data) {
			return domain.Document{}, fmt.Errorf("%s: %w", name, ErrInvalidEncoding)
		}
		text = string(data)
	case ".html", ".htm":
		text, err = htmlText(data)
	case ".docx":
		text, err = docxText(data)
	default:
		return domain.Document{}, fmt.Errorf("%s: %w: %s", name, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("%s: %w", name, err)
	}
	return domain.Document{ID: hashString(name), Path: name, Content: Normalize(text)}, nil
}

// LoadFile reads a document from disk.
func LoadFile(path string) (domain.Document, error) {
	if !Supported(path) {
		return domain.Document{}, fmt.Errorf("%s: %w: %s", path, ErrUnsupportedFormat, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.Document{}, err
	}
	defer f.Close()
	return Read(path, f)
}

// Expand resolves glob patterns. Glob matches with unsupported extensions are
// skipped; a pattern matching nothing is kept as a literal path.
func Expand(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			out = append(out, p)
			continue
		}
		for _, m := range matches {
			if Supported(m) {
				out = append(out, m)
			}
		}
	}
	return out
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
