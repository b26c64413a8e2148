package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/haoyanli/paperflow/internal/config"
	"github.com/haoyanli/paperflow/internal/runlog"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show outcomes of past runs",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of outcomes to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	if settings.HistoryDB == "" {
		return fmt.Errorf("run history disabled: no config directory")
	}

	db, err := runlog.Open(settings.HistoryDB)
	if err != nil {
		return err
	}
	defer db.Close()

	outcomes, err := db.Recent(historyLimit)
	if err != nil {
		return err
	}
	if len(outcomes) == 0 {
		printInfo(cmd.OutOrStdout(), "No run history.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, o := range outcomes {
		mark := successMark
		detail := o.PageID
		if o.Status == runlog.StatusFailed {
			mark = failureMark
			detail = o.Error
		}
		fmt.Fprintf(out, "%s %s  %-20s %-50s %s\n",
			mark,
			o.CreatedAt.Local().Format(time.DateTime),
			truncateString(o.BibKey, 20),
			truncateString(o.Title, 50),
			detail)
	}
	return nil
}
