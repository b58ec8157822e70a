package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textsum/internal/config"
	"textsum/internal/domain"
	"textsum/internal/logging"
	"textsum/internal/metrics"
	"textsum/internal/summarizer"
)

const catsText = "Cats are great pets. Dogs are loyal too. Cats and dogs can be friends. Some people prefer fish as pets."

type fakeRecorder struct {
	mu       sync.Mutex
	summary  []string
	selected []int
}

func (f *fakeRecorder) RecordSummary(style string, _ int, selected int, _ time.Duration, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := "ok"
	if err != nil {
		result = "error"
	}
	f.summary = append(f.summary, style+":"+result)
	f.selected = append(f.selected, selected)
}

func (f *fakeRecorder) RecordHTTP(string, string, int, time.Duration) {}

func defaultConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	return cfg
}

func newService(t *testing.T, mutate func(*config.AppConfig)) (*SummaryServiceImpl, *fakeRecorder) {
	t.Helper()
	cfg := defaultConfig(t)
	if mutate != nil {
		mutate(cfg)
	}
	rec := &fakeRecorder{}
	svc, err := FromConfig(cfg, logging.Discard(), rec)
	require.NoError(t, err)
	return svc, rec
}

func TestSummarize_Plain(t *testing.T) {
	svc, rec := newService(t, nil)

	resp, err := svc.Summarize(context.Background(), Request{Text: catsText, SentenceCount: 2, Style: domain.StylePlain})

	require.NoError(t, err)
	assert.Equal(t, "Cats are great pets. Cats and dogs can be friends.", resp.Summary)
	assert.Equal(t, domain.StylePlain, resp.Style)
	assert.Equal(t, &domain.Stats{SentenceCount: 4, WordCount: 24, AvgWordsPerSentence: 6}, resp.Stats)
	require.NotNil(t, resp.Artifact)
	assert.Equal(t, "summary.txt", resp.Artifact.Filename)
	assert.Equal(t, resp.Summary, string(resp.Artifact.Bytes()))
	assert.Equal(t, []string{"plain:ok"}, rec.summary)
	assert.Equal(t, []int{2}, rec.selected)
}

func TestSummarize_CustomStopwords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("are\nand\nas\ntoo\nbe\n"), 0o644))

	svc, _ := newService(t, func(c *config.AppConfig) { c.Tokenizer.StopwordsFile = path })

	resp, err := svc.Summarize(context.Background(), Request{Text: catsText, SentenceCount: 2, Style: domain.StylePlain})

	require.NoError(t, err)
	assert.Equal(t, "Cats and dogs can be friends. Some people prefer fish as pets.", resp.Summary)
}

func TestSummarize_EmptyText(t *testing.T) {
	svc, _ := newService(t, nil)

	for _, text := range []string{"", "   \n\t"} {
		resp, err := svc.Summarize(context.Background(), Request{Text: text, SentenceCount: 5, Style: domain.StyleBullets})
		require.NoError(t, err)
		assert.Empty(t, resp.Summary)
		assert.Nil(t, resp.Stats)
		assert.Nil(t, resp.Artifact)
	}
}

func TestSummarize_ZeroCount(t *testing.T) {
	svc, _ := newService(t, nil)

	resp, err := svc.Summarize(context.Background(), Request{Text: catsText, SentenceCount: 0, Style: domain.StylePlain})

	require.NoError(t, err)
	assert.Empty(t, resp.Summary)
	assert.NotNil(t, resp.Stats, "stats describe the input, not the summary")
}

func TestSummarize_Numbered(t *testing.T) {
	svc, _ := newService(t, nil)

	resp, err := svc.Summarize(context.Background(), Request{Text: catsText, SentenceCount: 2, Style: domain.StyleNumbered})

	require.NoError(t, err)
	assert.Equal(t, "\n1. Cats are great pets.\n\n2. Cats and dogs can be friends.", resp.Summary)
	assert.Equal(t, " 1. Cats are great pets.  2. Cats and dogs can be friends.", string(resp.Artifact.Bytes()))
}

func TestSummarize_InvalidStyle(t *testing.T) {
	svc, rec := newService(t, nil)

	_, err := svc.Summarize(context.Background(), Request{Text: catsText, SentenceCount: 2, Style: "fancy"})

	assert.ErrorIs(t, err, summarizer.ErrInvalidStyle)
	assert.Equal(t, []string{"invalid:error"}, rec.summary)
}

func TestSummarize_InvalidStylesShareOneSeries(t *testing.T) {
	cfg := defaultConfig(t)
	svc, err := FromConfig(cfg, logging.Discard(), metrics.NewPrometheus())
	require.NoError(t, err)

	// Prime the invalid series so the count below only grows on new labels.
	_, err = svc.Summarize(context.Background(), Request{Text: catsText, SentenceCount: 1, Style: "junk"})
	require.ErrorIs(t, err, summarizer.ErrInvalidStyle)
	before := testutil.CollectAndCount(metrics.SummarizeRequestsTotal)

	for i := range 100 {
		_, err := svc.Summarize(context.Background(), Request{Text: catsText, SentenceCount: 1, Style: domain.Style(fmt.Sprintf("junk-%d", i))})
		require.ErrorIs(t, err, summarizer.ErrInvalidStyle)
	}

	assert.Equal(t, before, testutil.CollectAndCount(metrics.SummarizeRequestsTotal))
}

func TestSummarize_CanceledContext(t *testing.T) {
	svc, _ := newService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Summarize(ctx, Request{Text: catsText, SentenceCount: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize_UsesContextLogger(t *testing.T) {
	svc, _ := newService(t, nil)
	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "text", "debug"))

	_, err := svc.Summarize(ctx, Request{Text: catsText, SentenceCount: 1})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "summary generated")
	assert.Contains(t, buf.String(), "selected=1")
}

func TestSummarizeDocuments(t *testing.T) {
	svc, _ := newService(t, func(c *config.AppConfig) { c.Summarizer.Parallelism = 3 })

	var docs []domain.Document
	for i := 0; i < 8; i++ {
		docs = append(docs, domain.Document{
			ID:      fmt.Sprint(i),
			Path:    fmt.Sprintf("doc%d.txt", i),
			Content: strings.Repeat("Filler words here. ", i) + catsText,
		})
	}

	results, err := svc.SummarizeDocuments(context.Background(), docs, 2, domain.StyleBullets)

	require.NoError(t, err)
	require.Len(t, results, len(docs))
	for i, r := range results {
		assert.Equal(t, docs[i], r.Document)
		single, err := svc.Summarize(context.Background(), Request{Text: docs[i].Content, SentenceCount: 2, Style: domain.StyleBullets})
		require.NoError(t, err)
		assert.Equal(t, single.Summary, r.Response.Summary, docs[i].Path)
	}
}

func TestSummarizeDocuments_InvalidStyle(t *testing.T) {
	svc, _ := newService(t, nil)

	_, err := svc.SummarizeDocuments(context.Background(), []domain.Document{{Path: "a.txt", Content: catsText}}, 2, "bogus")

	assert.ErrorIs(t, err, summarizer.ErrInvalidStyle)
	assert.ErrorContains(t, err, "a.txt")
}

func TestFromConfig(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		cfg := defaultConfig(t)
		cfg.Tokenizer.Stem = true
		_, err := FromConfig(cfg, nil, nil)
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("missing stopwords file", func(t *testing.T) {
		cfg := defaultConfig(t)
		cfg.Tokenizer.StopwordsFile = filepath.Join(t.TempDir(), "missing.txt")
		_, err := FromConfig(cfg, nil, nil)
		assert.Error(t, err)
	})

	t.Run("symmetric with stemming and regex splitter", func(t *testing.T) {
		cfg := defaultConfig(t)
		cfg.Tokenizer.SentenceSplitter = "regex"
		cfg.Tokenizer.Stem = true
		cfg.Tokenizer.ExtraStopwords = []string{"cats"}
		cfg.Summarizer.Scoring = "symmetric"

		svc, err := FromConfig(cfg, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, summarizer.ScoringSymmetric, svc.summarizer.Scoring())
		assert.True(t, svc.summarizer.Tokenizer().Stemming())
		assert.True(t, svc.summarizer.Tokenizer().Stopwords().Contains("cats"))
	})
}
