package tokenizer

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// Splitter names accepted by NewSplitter.
const (
	SplitterPunkt = "punkt"
	SplitterRegex = "regex"
)

// SentenceSplitter breaks text into raw sentence strings.
// Implementations must be deterministic and safe for concurrent use.
type SentenceSplitter interface {
	Split(text string) []string
}

// NewSplitter builds the splitter registered under name. Empty means punkt.
func NewSplitter(name string) (SentenceSplitter, error) {
	switch name {
	case SplitterPunkt, "":
		return NewPunktSplitter()
	case SplitterRegex:
		return NewRegexSplitter(), nil
	default:
		return nil, fmt.Errorf("unknown sentence splitter: %s", name)
	}
}

// PunktSplitter segments sentences with the pre-trained English Punkt model,
// which knows common abbreviations and initials.
type PunktSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSplitter loads the embedded English training data.
func NewPunktSplitter() (*PunktSplitter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load punkt model: %w", err)
	}
	return &PunktSplitter{tokenizer: tok}, nil
}

// Split returns the trimmed, non-empty sentences of text.
func (p *PunktSplitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, s := range p.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// RegexSplitter cuts after runs of '.', '!' or '?'. Text after the last
// terminator is kept as a final sentence.
type RegexSplitter struct {
	pattern *regexp.Regexp
}

func NewRegexSplitter() *RegexSplitter {
	return &RegexSplitter{pattern: regexp.MustCompile(`[^.!?]+(?:[.!?]+|$)`)}
}

func (r *RegexSplitter) Split(text string) []string {
	raw := r.pattern.FindAllString(text, -1)
	out := raw[:0]
	for _, s := range raw {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
