package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/morsel/internal/config"
	"github.com/verte-zerg/morsel/internal/model"
	"github.com/verte-zerg/morsel/internal/report"
	"github.com/verte-zerg/morsel/internal/store"
	"github.com/verte-zerg/morsel/internal/tui"
)

const (
	defaultCurveWindow = 5
	curveHeight        = 8
)

var (
	historyLang        string
	historyOutcome     string
	historySince       string
	historyLast        int
	historyCurveWindow int
	historyPlain       bool
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded decode runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&historyOutcome, "outcome", "", "outcome filter (found, no-decoding, no-segmentation, cancelled)")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&historyCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print tables instead of the interactive view")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	filter := model.HistoryFilter{
		Lang:    historyLang,
		Outcome: historyOutcome,
		Since:   sinceTime,
		Last:    historyLast,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if !historyPlain {
		m := tui.NewHistoryModel(st, filter, historyCurveWindow)
		program := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run history TUI: %w", err)
		}
		return nil
	}

	ctx := context.Background()
	summary, err := st.Summary(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to summarize runs: %w", err)
	}
	runs, err := st.ListRuns(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		logErrln("No runs recorded yet. Decode something with: morsel <code>")
		return nil
	}

	out := cmd.OutOrStdout()
	width := terminalWidth()
	if err := report.RenderSummary(out, summary); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderHistory(out, runs, width); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderCurves(out, runs, historyCurveWindow, width, curveHeight); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
