// Package pipeline runs papers through analysis and page creation,
// one at a time, tallying successes and failures.
package pipeline

import (
	"context"

	"github.com/haoyanli/paperflow/internal/logging"
	"github.com/haoyanli/paperflow/internal/notion"
	"github.com/haoyanli/paperflow/internal/paper"
)

// Analyzer produces a structured review of a paper PDF.
type Analyzer interface {
	AnalyzePaper(ctx context.Context, pdfPath string) (paper.Review, error)
}

// PageCreator creates a database page and returns its ID.
type PageCreator interface {
	CreatePage(ctx context.Context, databaseID string, props notion.Properties, blocks []notion.Block) (string, error)
}

// Sink receives per-paper progress events for display.
type Sink interface {
	PaperStarted(pair paper.Pair, index, total int)
	PaperSucceeded(pair paper.Pair, pageID string)
	PaperFailed(pair paper.Pair, err error)
}

// Recorder persists per-paper outcomes. A nil Recorder disables
// recording.
type Recorder interface {
	RecordSuccess(pair paper.Pair, pageID string)
	RecordFailure(pair paper.Pair, err error)
}

// Summary tallies a run.
type Summary struct {
	Succeeded int
	Failed    int
}

// Total returns the number of papers processed.
func (s Summary) Total() int { return s.Succeeded + s.Failed }

// HasFailures reports whether any paper failed.
func (s Summary) HasFailures() bool { return s.Failed > 0 }

// Pipeline processes papers sequentially: analyze the PDF, build the
// page payload, create the page. A failed paper is counted and the
// run continues; only context cancellation stops the batch.
type Pipeline struct {
	Analyzer   Analyzer
	Pages      PageCreator
	DatabaseID string
	Sink       Sink
	Recorder   Recorder
}

// Run processes the batch and returns the tally. The returned error is
// non-nil only when the context is cancelled mid-run.
func (p *Pipeline) Run(ctx context.Context, papers []paper.Pair) (Summary, error) {
	log := logging.NewLogger("pipeline")

	var summary Summary
	for i, pair := range papers {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if p.Sink != nil {
			p.Sink.PaperStarted(pair, i+1, len(papers))
		}

		pageID, err := p.processOne(ctx, pair)
		if err != nil {
			// Cancellation aborts the batch rather than failing
			// every remaining paper.
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			summary.Failed++
			log.Errorw("paper failed", "key", pair.Entry.Key, "pdf", pair.PDFPath, "error", err)
			if p.Sink != nil {
				p.Sink.PaperFailed(pair, err)
			}
			if p.Recorder != nil {
				p.Recorder.RecordFailure(pair, err)
			}
			continue
		}

		summary.Succeeded++
		log.Infow("paper processed", "key", pair.Entry.Key, "page", pageID)
		if p.Sink != nil {
			p.Sink.PaperSucceeded(pair, pageID)
		}
		if p.Recorder != nil {
			p.Recorder.RecordSuccess(pair, pageID)
		}
	}

	return summary, nil
}

func (p *Pipeline) processOne(ctx context.Context, pair paper.Pair) (string, error) {
	review, err := p.Analyzer.AnalyzePaper(ctx, pair.PDFPath)
	if err != nil {
		return "", err
	}

	props := notion.BuildProperties(pair.Entry)
	blocks := notion.BlocksFromReview(review)

	return p.Pages.CreatePage(ctx, p.DatabaseID, props, blocks)
}
