package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/morsel/internal/bench"
	"github.com/verte-zerg/morsel/internal/model"
	"github.com/verte-zerg/morsel/internal/places"
	"github.com/verte-zerg/morsel/internal/rank"
)

// logFloor stands in for log10(0) on likelihood curves.
const logFloor = -40

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDecode prints the final summary of a decode.
func RenderDecode(w io.Writer, res rank.Result, elapsed time.Duration) error {
	best := res.Best.Segmentation.Text()
	if res.Outcome != rank.OutcomeFound {
		best = "-"
	}
	rows := [][]string{
		{"Best:", best},
		{"Letters:", res.Best.Letters},
		{"Likelihood:", fmt.Sprintf("%.6g", res.Best.Segmentation.Likelihood)},
		{"Candidates:", fmt.Sprintf("%d", res.Candidates)},
		{"Scored:", fmt.Sprintf("%d", res.Scored)},
		{"Outcome:", res.Outcome.String()},
		{"Elapsed:", elapsed.Round(time.Millisecond).String()},
	}
	return writeLines(w, formatTable(nil, rows, nil))
}

// RenderCollisions prints one row per shared code, cut to width cells.
func RenderCollisions(w io.Writer, collisions []places.Collision, width int) error {
	if len(collisions) == 0 {
		_, err := fmt.Fprintln(w, "No collisions found.")
		return err
	}
	rows := make([][]string, 0, len(collisions))
	for _, c := range collisions {
		rows = append(rows, []string{c.Code, fmt.Sprintf("%d", len(c.Names)), strings.Join(c.Names, ", ")})
	}
	lines := formatTable([]string{"Code", "Names", "Places"}, rows, map[int]bool{1: true})
	for i := range lines {
		lines[i] = Truncate(lines[i], width)
	}
	if err := writeLines(w, lines); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d colliding codes\n", len(collisions))
	return err
}

// RenderBench prints per-case results and the recovery rate.
func RenderBench(w io.Writer, rep bench.Report, width int) error {
	if len(rep.Cases) == 0 {
		_, err := fmt.Fprintln(w, "No bench cases.")
		return err
	}
	rows := make([][]string, 0, len(rep.Cases))
	durations := make([]float64, 0, len(rep.Cases))
	for _, c := range rep.Cases {
		mark := "miss"
		if c.Recovered() {
			mark = "ok"
		}
		rows = append(rows, []string{
			mark,
			c.Outcome,
			fmt.Sprintf("%d", c.Candidates),
			c.Duration.Round(time.Millisecond).String(),
			c.Phrase,
			c.Got,
		})
		durations = append(durations, float64(c.Duration.Milliseconds()))
	}
	lines := formatTable([]string{"Result", "Outcome", "Candidates", "Time", "Phrase", "Best"}, rows, map[int]bool{2: true, 3: true})
	for i := range lines {
		lines[i] = Truncate(lines[i], width)
	}
	if err := writeLines(w, lines); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nRecovered: %.1f%% of %d in %s\nTime: %s\n",
		rep.RecoveryRate()*100, len(rep.Cases), rep.Total().Round(time.Millisecond), Sparkline(durations))
	return err
}

// RenderSummary prints aggregate history counts.
func RenderSummary(w io.Writer, s model.RunSummary) error {
	if s.Total == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	rows := [][]string{
		{"Runs:", fmt.Sprintf("%d", s.Total)},
		{"Found:", fmt.Sprintf("%d", s.Found)},
		{"No decoding:", fmt.Sprintf("%d", s.NoDecoding)},
		{"No segmentation:", fmt.Sprintf("%d", s.NoSegmentation)},
		{"Cancelled:", fmt.Sprintf("%d", s.Cancelled)},
		{"Avg time:", fmt.Sprintf("%.0fms", s.AvgDurationMs)},
		{"Max candidates:", fmt.Sprintf("%d", s.MaxCandidates)},
	}
	return writeLines(w, formatTable(nil, rows, nil))
}

// HistoryRows formats runs as table cells: ended, outcome, mode, lang,
// candidates, likelihood, best.
func HistoryRows(runs []model.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			r.Outcome,
			r.Mode,
			r.Lang,
			fmt.Sprintf("%d", r.Candidates),
			fmt.Sprintf("%.3g", r.Likelihood),
			r.Best,
		})
	}
	return rows
}

// HistoryHeaders names the HistoryRows columns.
func HistoryHeaders() []string {
	return []string{"Ended", "Outcome", "Mode", "Lang", "Candidates", "Likelihood", "Best"}
}

// RenderHistory prints runs as a table cut to width cells.
func RenderHistory(w io.Writer, runs []model.Run, width int) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	lines := formatTable(HistoryHeaders(), HistoryRows(runs), map[int]bool{4: true, 5: true})
	for i := range lines {
		lines[i] = Truncate(lines[i], width)
	}
	return writeLines(w, lines)
}

// RenderCurves plots log10 likelihood, decode time and candidate counts
// over runs, oldest first. runs are expected newest first, as ListRuns
// returns them.
func RenderCurves(w io.Writer, runs []model.Run, window, totalWidth, height int) error {
	if len(runs) == 0 {
		return nil
	}
	n := len(runs)
	likelihood := make([]float64, n)
	durations := make([]float64, n)
	candidates := make([]float64, n)
	for i, r := range runs {
		j := n - 1 - i
		likelihood[j] = LogLikelihood(r.Likelihood, logFloor)
		durations[j] = float64(r.DurationMs)
		candidates[j] = float64(r.Candidates)
	}
	return Plot(w, "Runs", []Series{
		{Name: "log10 likelihood", Values: MovingAverage(likelihood, window)},
		{Name: "time ms", Values: MovingAverage(durations, window)},
		{Name: "candidates", Values: MovingAverage(candidates, window)},
	}, PlotWidthFor(totalWidth), height)
}
