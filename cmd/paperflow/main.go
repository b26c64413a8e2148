// Package main provides the paperflow CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/haoyanli/paperflow/internal/config"
	"github.com/haoyanli/paperflow/internal/gemini"
	"github.com/haoyanli/paperflow/internal/logging"
	"github.com/haoyanli/paperflow/internal/notion"
	"github.com/haoyanli/paperflow/internal/paper"
	"github.com/haoyanli/paperflow/internal/pipeline"
	"github.com/haoyanli/paperflow/internal/runlog"
	"github.com/haoyanli/paperflow/internal/scanner"
	"github.com/haoyanli/paperflow/internal/zotero"
)

// Version is set at build time via ldflags
var Version = "dev"

// zoteroBib is the path to a Zotero-exported bibliography file; when
// set it replaces directory scanning.
var zoteroBib string

// errRunFailed marks a run where at least one paper failed. The tally
// has already been printed, so main only maps it to an exit code.
var errRunFailed = errors.New("run failed")

var rootCmd = &cobra.Command{
	Use:   "paperflow [directory]",
	Short: "Review research papers with Gemini and file them in Notion",
	Long: `paperflow analyzes research paper PDFs and creates one Notion
page per paper with a structured review.

Papers come from either:
  - a directory of per-paper subdirectories, each holding a .bib file
    and its PDF (or a single directory holding one such pair), or
  - a Zotero-exported .bib file whose entries reference local PDFs
    (--zotero-bib).

Credentials are read from the environment or a .env file:
  GEMINI_API_KEY, NOTION_TOKEN, NOTION_DATABASE_ID`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&zoteroBib, "zotero-bib", "z", "", "Path to a Zotero-exported .bib file")
	rootCmd.Version = Version
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	logging.Sync()

	switch {
	case err == nil:
		os.Exit(ExitSuccess)
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "Interrupted by user")
		os.Exit(ExitInterrupt)
	case errors.Is(err, errRunFailed):
		// Per-paper failures were already reported.
		os.Exit(ExitError)
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if err := logging.Setup(settings.LogFile); err != nil {
		printError(cmd.ErrOrStderr(), "logging to %s disabled: %v", settings.LogFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	papers, err := collectPapers(args)
	if err != nil {
		return err
	}
	if len(papers) == 0 {
		printInfo(cmd.OutOrStdout(), "No papers found.")
		return nil
	}

	printPapersTable(cmd.OutOrStdout(), papers)

	var recorder pipeline.Recorder
	if settings.HistoryDB == "" {
		printError(cmd.ErrOrStderr(), "run history disabled: no config directory")
	} else if db, err := runlog.Open(settings.HistoryDB); err != nil {
		printError(cmd.ErrOrStderr(), "run history disabled: %v", err)
	} else {
		defer db.Close()
		recorder = &dbRecorder{db: db}
	}

	analyzer := gemini.NewClient(cfg.GeminiAPIKey,
		gemini.WithModel(settings.Model),
		gemini.WithPolling(settings.PollInterval(), settings.PollTimeout()),
	)
	pages := notion.NewClient(cfg.NotionToken)

	p := &pipeline.Pipeline{
		Analyzer:   analyzer,
		Pages:      pages,
		DatabaseID: cfg.NotionDatabaseID,
		Sink:       &consoleSink{out: cmd.OutOrStdout()},
		Recorder:   recorder,
	}

	summary, err := p.Run(cmd.Context(), papers)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), summary)
	if summary.HasFailures() {
		return errRunFailed
	}
	return nil
}

// collectPapers gathers paper/PDF pairs from the Zotero bibliography
// when --zotero-bib is set (any directory argument is ignored then),
// otherwise by scanning the directory argument (default ".").
func collectPapers(args []string) ([]paper.Pair, error) {
	if zoteroBib != "" {
		return zotero.Parse(zoteroBib)
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	return scanner.Scan(dir)
}

// dbRecorder persists pipeline outcomes in the run history database.
type dbRecorder struct {
	db *runlog.DB
}

func (r *dbRecorder) RecordSuccess(pair paper.Pair, pageID string) {
	err := r.db.Record(runlog.Outcome{
		BibKey: pair.Entry.Key,
		Title:  pair.Entry.Title,
		Status: runlog.StatusSuccess,
		PageID: pageID,
	})
	if err != nil {
		logging.NewLogger("runlog").Warnw("recording outcome", "key", pair.Entry.Key, "error", err)
	}
}

func (r *dbRecorder) RecordFailure(pair paper.Pair, cause error) {
	err := r.db.Record(runlog.Outcome{
		BibKey: pair.Entry.Key,
		Title:  pair.Entry.Title,
		Status: runlog.StatusFailed,
		Error:  cause.Error(),
	})
	if err != nil {
		logging.NewLogger("runlog").Warnw("recording outcome", "key", pair.Entry.Key, "error", err)
	}
}
