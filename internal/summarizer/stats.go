package summarizer

import (
	"math"

	"textsum/internal/domain"
)

// StatsReporter counts sentences and words of the unfiltered text.
type StatsReporter struct {
	tok domain.Segmenter
}

func NewStatsReporter(tok domain.Segmenter) *StatsReporter {
	return &StatsReporter{tok: tok}
}

// ComputeStats returns nil when text has no sentences.
func (r *StatsReporter) ComputeStats(text string) *domain.Stats {
	sentences := r.tok.Sentences(text)
	if len(sentences) == 0 {
		return nil
	}
	words := len(r.tok.Words(text))
	return &domain.Stats{
		SentenceCount:       len(sentences),
		WordCount:           words,
		AvgWordsPerSentence: round2(float64(words) / float64(len(sentences))),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
