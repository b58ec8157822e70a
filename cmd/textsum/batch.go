package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"textsum/internal/config"
	"textsum/internal/domain"
	"textsum/internal/export"
	"textsum/internal/input"
	"textsum/internal/service"
	"textsum/internal/tui"
)

type batchSummarizer interface {
	SummarizeDocuments(ctx context.Context, docs []domain.Document, sentenceCount int, style domain.Style) ([]service.DocumentResult, error)
}

type batchOptions struct {
	count  string
	style  string
	link   bool
	outDir string
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// runBatch summarizes every input and prints one block per document.
// "-" reads from stdin.
func runBatch(ctx context.Context, svc batchSummarizer, defaults config.SummarizerConfig, inputs []string, opts batchOptions, stdin io.Reader, out io.Writer) error {
	docs, err := loadDocuments(inputs, stdin)
	if err != nil {
		return err
	}

	count := defaults.MaxSentences
	if opts.count != "" {
		count = input.ParseSentenceCount(opts.count)
	}
	style := opts.style
	if style == "" {
		style = defaults.Style
	}

	results, err := svc.SummarizeDocuments(ctx, docs, count, domain.Style(style))
	if err != nil {
		return err
	}

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, headerStyle.Render(r.Document.Path))
		if strings.TrimSpace(r.Document.Content) == "" {
			fmt.Fprintln(out, "Please provide some text")
			continue
		}
		fmt.Fprintln(out, strings.TrimLeft(r.Response.Summary, "\n"))
		fmt.Fprintln(out, tui.RenderStats(r.Response.Stats))

		if r.Response.Artifact == nil {
			continue
		}
		artifact := *r.Response.Artifact
		if len(results) > 1 {
			artifact = export.NewNamedArtifact(r.Response.Summary, summaryFilename(r.Document.Path))
		}
		if opts.link {
			fmt.Fprintln(out, artifact.Link())
		}
		if opts.outDir != "" {
			path, err := artifact.Save(opts.outDir)
			if err != nil {
				return fmt.Errorf("write summary for %s: %w", r.Document.Path, err)
			}
			fmt.Fprintln(out, "saved "+path)
		}
	}
	return nil
}

func loadDocuments(inputs []string, stdin io.Reader) ([]domain.Document, error) {
	var docs []domain.Document
	for _, in := range inputs {
		if in == "-" {
			doc, err := input.Read("stdin", stdin)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			continue
		}
		for _, path := range input.Expand([]string{in}) {
			doc, err := input.LoadFile(path)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func summaryFilename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + export.DefaultFilename
}
