package tokenizer

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

//go:embed stopwords_english.txt
var englishRaw []byte

// englishStopwords is parsed once at init and never mutated afterwards.
var englishStopwords Stopwords

func init() {
	sw, err := ReadStopwords(bytes.NewReader(englishRaw))
	if err != nil {
		panic(fmt.Sprintf("embedded stopwords: %v", err))
	}
	englishStopwords = sw
}

// Stopwords is a read-only set of lower-cased function words.
type Stopwords map[string]struct{}

// DefaultStopwords returns the built-in English list.
func DefaultStopwords() Stopwords { return englishStopwords }

// NewStopwords builds a set from the given words, lower-casing each.
func NewStopwords(words ...string) Stopwords {
	sw := make(Stopwords, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			sw[w] = struct{}{}
		}
	}
	return sw
}

// ReadStopwords parses one word per line. Blank lines and lines starting
// with '#' are skipped.
func ReadStopwords(r io.Reader) (Stopwords, error) {
	sw := make(Stopwords)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sw[strings.ToLower(line)] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return sw, nil
}

// LoadStopwords reads a stopword file from disk.
func LoadStopwords(path string) (Stopwords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sw, err := ReadStopwords(f)
	if err != nil {
		return nil, fmt.Errorf("read stopwords %s: %w", path, err)
	}
	return sw, nil
}

// With returns a copy of the set extended by extra words.
func (s Stopwords) With(extra ...string) Stopwords {
	out := make(Stopwords, len(s)+len(extra))
	for w := range s {
		out[w] = struct{}{}
	}
	for w := range NewStopwords(extra...) {
		out[w] = struct{}{}
	}
	return out
}

// Contains reports whether the lower-cased word is a stopword.
func (s Stopwords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// All returns the words in sorted order.
func (s Stopwords) All() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
