package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/haoyanli/paperflow/internal/paper"
	"github.com/haoyanli/paperflow/internal/pdfinfo"
	"github.com/haoyanli/paperflow/internal/pipeline"
)

// Title truncation length for the papers table.
const tableTitleMaxLen = 60

var (
	successMark = color.New(color.FgGreen).Sprint("✔")
	failureMark = color.New(color.FgRed).Sprint("✘")
)

// consoleSink prints per-paper progress as the pipeline runs.
type consoleSink struct {
	out io.Writer
}

func (s *consoleSink) PaperStarted(pair paper.Pair, index, total int) {
	fmt.Fprintf(s.out, "[%d/%d] %s ... ", index, total, pair.Entry.Key)
}

func (s *consoleSink) PaperSucceeded(pair paper.Pair, pageID string) {
	fmt.Fprintf(s.out, "%s page %s\n", successMark, pageID)
}

func (s *consoleSink) PaperFailed(pair paper.Pair, err error) {
	fmt.Fprintf(s.out, "%s %v\n", failureMark, err)
}

func printInfo(out io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(out, format+"\n", args...)
}

func printError(out io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(out, color.New(color.FgYellow).Sprint("warning: ")+format+"\n", args...)
}

// printPapersTable lists the papers about to be processed.
func printPapersTable(out io.Writer, papers []paper.Pair) {
	fmt.Fprintf(out, "Found %d paper(s):\n\n", len(papers))
	fmt.Fprintf(out, "  %-20s %-62s %-7s %-5s %s\n", "KEY", "TITLE", "YEAR", "PAGES", "PDF")

	for _, pair := range papers {
		year := "?"
		if pair.Entry.YearKnown() {
			year = fmt.Sprintf("%d", pair.Entry.Year)
		}
		pages := "?"
		if n, err := pdfinfo.PageCount(pair.PDFPath); err == nil {
			pages = fmt.Sprintf("%d", n)
		}
		fmt.Fprintf(out, "  %-20s %-62s %-7s %-5s %s\n",
			truncateString(pair.Entry.Key, 20),
			truncateString(pair.Entry.Title, tableTitleMaxLen),
			year, pages, pair.PDFPath)
	}
	fmt.Fprintln(out)
}

// printSummary prints the final tally.
func printSummary(out io.Writer, summary pipeline.Summary) {
	fmt.Fprintf(out, "\nDone: %d processed, %s %d succeeded, %s %d failed\n",
		summary.Total(), successMark, summary.Succeeded, failureMark, summary.Failed)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
