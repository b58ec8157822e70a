package service

import (
	"fmt"
	"log/slog"

	"textsum/internal/config"
	"textsum/internal/metrics"
	"textsum/internal/summarizer"
	"textsum/internal/tokenizer"
)

// FromConfig assembles tokenizer, summarizer and service from an AppConfig.
func FromConfig(cfg *config.AppConfig, logger *slog.Logger, rec metrics.Recorder) (*SummaryServiceImpl, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	splitter, err := tokenizer.NewSplitter(cfg.Tokenizer.SentenceSplitter)
	if err != nil {
		return nil, err
	}

	stop := tokenizer.DefaultStopwords()
	if cfg.Tokenizer.StopwordsFile != "" {
		if stop, err = tokenizer.LoadStopwords(cfg.Tokenizer.StopwordsFile); err != nil {
			return nil, err
		}
	}
	if len(cfg.Tokenizer.ExtraStopwords) > 0 {
		stop = stop.With(cfg.Tokenizer.ExtraStopwords...)
	}
	tok := tokenizer.New(splitter,
		tokenizer.WithStopwords(stop),
		tokenizer.WithStemming(cfg.Tokenizer.Stem),
	)

	var sum *summarizer.FrequencySummarizer
	switch cfg.Summarizer.Type {
	case "frequency", "":
		scoring, err := summarizer.ParseScoring(cfg.Summarizer.Scoring)
		if err != nil {
			return nil, err
		}
		sum = summarizer.NewFrequencySummarizer(tok, summarizer.WithScoring(scoring))
	default:
		return nil, fmt.Errorf("unknown summarizer: %s", cfg.Summarizer.Type)
	}

	if logger != nil {
		logger.Debug("summarizer ready",
			slog.String("splitter", cfg.Tokenizer.SentenceSplitter),
			slog.Int("stopwords", len(stop)),
			slog.Bool("stem", cfg.Tokenizer.Stem),
			slog.String("scoring", cfg.Summarizer.Scoring))
	}
	return NewSummaryService(sum, logger, rec, cfg.Summarizer.Parallelism), nil
}
