package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"textsum/internal/domain"
	"textsum/internal/export"
	"textsum/internal/logging"
	"textsum/internal/metrics"
	"textsum/internal/summarizer"
)

// Request is one summarization call. SentenceCount must already be validated.
type Request struct {
	Text          string
	SentenceCount int
	Style         domain.Style
}

// Response carries the formatted summary and the stats of the original text.
// Stats and Artifact are nil for blank input.
type Response struct {
	Summary  string
	Style    domain.Style
	Selected []domain.Sentence
	Stats    *domain.Stats
	Artifact *export.Artifact
}

// DocumentResult pairs a document with its summary.
type DocumentResult struct {
	Document domain.Document
	Response *Response
}

type SummaryServiceImpl struct {
	summarizer  *summarizer.FrequencySummarizer
	stats       *summarizer.StatsReporter
	logger      *slog.Logger
	metrics     metrics.Recorder
	parallelism int
}

func NewSummaryService(sum *summarizer.FrequencySummarizer, logger *slog.Logger, rec metrics.Recorder, parallelism int) *SummaryServiceImpl {
	if logger == nil {
		logger = logging.Discard()
	}
	if rec == nil {
		rec = metrics.Noop{}
	}
	if parallelism <= 0 {
		parallelism = 1
	}
	return &SummaryServiceImpl{
		summarizer:  sum,
		stats:       summarizer.NewStatsReporter(sum.Tokenizer()),
		logger:      logger,
		metrics:     rec,
		parallelism: parallelism,
	}
}

// Summarize runs tokenize, score, select and format for one request and
// computes stats over the untouched text.
func (s *SummaryServiceImpl) Summarize(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	logger := s.loggerFor(ctx)

	style, err := summarizer.ParseStyle(string(req.Style))
	if err != nil {
		s.metrics.RecordSummary(metrics.InvalidStyleLabel, 0, 0, time.Since(start), err)
		logger.WarnContext(ctx, "summarize rejected", slog.String("style", string(req.Style)), slog.Any("error", err))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selected := s.summarizer.Select(req.Text, req.SentenceCount)
	summary, err := summarizer.Format(selected, style)
	if err != nil {
		return nil, err
	}
	resp := &Response{
		Summary:  summary,
		Style:    style,
		Selected: selected,
		Stats:    s.stats.ComputeStats(req.Text),
	}
	if summary != "" {
		a := export.NewArtifact(summary)
		resp.Artifact = &a
	}

	docSentences := 0
	if resp.Stats != nil {
		docSentences = resp.Stats.SentenceCount
	}
	elapsed := time.Since(start)
	s.metrics.RecordSummary(string(style), docSentences, len(selected), elapsed, nil)
	logger.DebugContext(ctx, "summary generated",
		slog.Int("document_sentences", docSentences),
		slog.Int("requested", req.SentenceCount),
		slog.Int("selected", len(selected)),
		slog.String("style", string(style)),
		slog.String("scoring", string(s.summarizer.Scoring())),
		slog.Duration("duration", elapsed))
	return resp, nil
}

// SummarizeDocuments summarizes each document independently and concurrently.
// Results keep the order of docs. The first failure cancels the rest.
func (s *SummaryServiceImpl) SummarizeDocuments(ctx context.Context, docs []domain.Document, sentenceCount int, style domain.Style) ([]DocumentResult, error) {
	results := make([]DocumentResult, len(docs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.parallelism)

	for i, doc := range docs {
		eg.Go(func() error {
			resp, err := s.Summarize(egCtx, Request{Text: doc.Content, SentenceCount: sentenceCount, Style: style})
			if err != nil {
				return fmt.Errorf("summarize %s: %w", doc.Path, err)
			}
			results[i] = DocumentResult{Document: doc, Response: resp}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "documents summarized", slog.Int("documents", len(docs)), slog.String("style", string(style)))
	return results, nil
}

func (s *SummaryServiceImpl) loggerFor(ctx context.Context) *slog.Logger {
	if l, ok := logging.Lookup(ctx); ok {
		return l
	}
	return s.logger
}
