// Package summarizer implements extractive summarization by word frequency:
// sentence scoring, top-N selection, output formatting and text statistics.
package summarizer

import (
	"fmt"
	"sort"
	"strings"

	"textsum/internal/domain"
	"textsum/internal/tokenizer"
)

// Scoring selects which words of a sentence count towards its score.
type Scoring string

const (
	// ScoringReference looks up every lower-cased word of a sentence,
	// punctuation and stopwords included, in the filtered frequency table.
	ScoringReference Scoring = "reference"
	// ScoringSymmetric normalizes sentence words exactly like the table.
	ScoringSymmetric Scoring = "symmetric"
)

// ParseScoring validates a scoring mode name. Empty means reference.
func ParseScoring(s string) (Scoring, error) {
	switch Scoring(s) {
	case ScoringReference, "":
		return ScoringReference, nil
	case ScoringSymmetric:
		return ScoringSymmetric, nil
	default:
		return "", fmt.Errorf("unknown scoring mode: %s", s)
	}
}

// FrequencyTable maps a normalized token to its raw occurrence count.
type FrequencyTable map[string]int

// Lookup returns the count for word, 0 when absent.
func (f FrequencyTable) Lookup(word string) int { return f[word] }

// BuildFrequencyTable counts normalized tokens.
func BuildFrequencyTable(tokens []string) FrequencyTable {
	table := make(FrequencyTable, len(tokens))
	for _, tok := range tokens {
		table[tok]++
	}
	return table
}

// SelectTop keeps the n best scored sentences and returns them in document
// order. Ties keep their original order. n <= 0 selects nothing.
func SelectTop(scored []domain.ScoredSentence, n int) []domain.Sentence {
	if n <= 0 || len(scored) == 0 {
		return nil
	}
	ranked := make([]domain.ScoredSentence, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if n > len(ranked) {
		n = len(ranked)
	}
	selected := make([]domain.Sentence, n)
	for i := 0; i < n; i++ {
		selected[i] = ranked[i].Sentence
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Index < selected[j].Index })
	return selected
}

// FrequencySummarizer ranks sentences by the summed document frequency of
// their words.
type FrequencySummarizer struct {
	tok     *tokenizer.Tokenizer
	scoring Scoring
}

var _ domain.Selector = (*FrequencySummarizer)(nil)

// Option configures a FrequencySummarizer.
type Option func(*FrequencySummarizer)

// WithScoring picks the sentence scoring mode.
func WithScoring(s Scoring) Option {
	return func(f *FrequencySummarizer) { f.scoring = s }
}

// NewFrequencySummarizer creates a frequency-based sentence ranker.
func NewFrequencySummarizer(tok *tokenizer.Tokenizer, opts ...Option) *FrequencySummarizer {
	s := &FrequencySummarizer{tok: tok, scoring: ScoringReference}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tokenizer returns the tokenizer the summarizer was built with.
func (s *FrequencySummarizer) Tokenizer() *tokenizer.Tokenizer { return s.tok }

// Scoring returns the configured scoring mode.
func (s *FrequencySummarizer) Scoring() Scoring { return s.scoring }

// FrequencyTable builds the table for a whole document.
func (s *FrequencySummarizer) FrequencyTable(text string) FrequencyTable {
	return BuildFrequencyTable(s.tok.Normalize(s.tok.Words(text)))
}

// ScoreSentences scores every sentence against table, preserving order.
func (s *FrequencySummarizer) ScoreSentences(sentences []domain.Sentence, table FrequencyTable) []domain.ScoredSentence {
	out := make([]domain.ScoredSentence, len(sentences))
	for i, sent := range sentences {
		score := 0
		for _, w := range s.scoringTokens(sent.Text) {
			score += table.Lookup(w)
		}
		out[i] = domain.ScoredSentence{Sentence: sent, Score: score}
	}
	return out
}

func (s *FrequencySummarizer) scoringTokens(text string) []string {
	words := s.tok.Words(text)
	if s.scoring == ScoringSymmetric {
		return s.tok.Normalize(words)
	}
	return s.tok.Lower(words)
}

// Select returns at most n of the highest scoring sentences of text in
// reading order. Blank text selects nothing.
func (s *FrequencySummarizer) Select(text string, n int) []domain.Sentence {
	if n <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}
	sentences := s.tok.Sentences(text)
	if len(sentences) == 0 {
		return nil
	}
	scored := s.ScoreSentences(sentences, s.FrequencyTable(text))
	return SelectTop(scored, n)
}

// Summarize selects up to maxSentences sentences and renders them in style.
func (s *FrequencySummarizer) Summarize(text string, maxSentences int, style domain.Style) (string, error) {
	st, err := ParseStyle(string(style))
	if err != nil {
		return "", err
	}
	return Format(s.Select(text, maxSentences), st)
}
