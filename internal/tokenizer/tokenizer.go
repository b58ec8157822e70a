// Package tokenizer splits documents into sentences and words and normalizes
// words for frequency counting.
package tokenizer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"

	"textsum/internal/domain"
)

// Tokenizer segments text and filters tokens against a stopword set.
// It holds no mutable state after New returns and is safe for concurrent use.
type Tokenizer struct {
	splitter    SentenceSplitter
	wordPattern *regexp.Regexp
	stopwords   Stopwords
	stem        bool
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithStopwords replaces the default English stopword set.
func WithStopwords(sw Stopwords) Option {
	return func(t *Tokenizer) { t.stopwords = sw }
}

// WithStemming enables Snowball English stemming in Normalize.
func WithStemming(on bool) Option {
	return func(t *Tokenizer) { t.stem = on }
}

// New creates a tokenizer over the given sentence splitter.
func New(splitter SentenceSplitter, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		splitter: splitter,
		// Words keep inner hyphens, apostrophes and dots ("state-of-the-art",
		// "don't", "3.14"); every other non-space symbol is its own token.
		wordPattern: regexp.MustCompile(`[\p{L}\p{N}]+(?:[-'’.][\p{L}\p{N}]+)*|\.{3}|-{2}|[^\s\p{L}\p{N}]`),
		stopwords:   DefaultStopwords(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.stopwords == nil {
		t.stopwords = Stopwords{}
	}
	return t
}

var _ domain.Segmenter = (*Tokenizer)(nil)

// Sentences segments text into ordered sentences. Empty or blank text yields nil.
func (t *Tokenizer) Sentences(text string) []domain.Sentence {
	raw := t.splitter.Split(text)
	if len(raw) == 0 {
		return nil
	}
	out := make([]domain.Sentence, len(raw))
	for i, s := range raw {
		out[i] = domain.Sentence{Text: s, Index: i}
	}
	return out
}

// Words splits text into raw word and punctuation tokens, case preserved.
func (t *Tokenizer) Words(text string) []string {
	return t.wordPattern.FindAllString(text, -1)
}

// Lower lower-cases tokens without filtering them.
func (t *Tokenizer) Lower(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = strings.ToLower(tok)
	}
	return out
}

// Normalize lower-cases tokens, drops every token holding a non-alphanumeric
// rune, then drops stopwords. With stemming on, survivors are stemmed.
func (t *Tokenizer) Normalize(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		if !isAlnum(tok) || t.stopwords.Contains(tok) {
			continue
		}
		if t.stem {
			if stemmed, err := snowball.Stem(tok, "english", true); err == nil && stemmed != "" {
				tok = stemmed
			}
		}
		out = append(out, tok)
	}
	return out
}

// Stopwords exposes the configured stopword set.
func (t *Tokenizer) Stopwords() Stopwords { return t.stopwords }

// Stemming reports whether Normalize stems tokens.
func (t *Tokenizer) Stemming() bool { return t.stem }

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
