// Package tui provides the Bubble Tea decode and history interfaces.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/morsel/internal/rank"
	"github.com/verte-zerg/morsel/internal/report"
)

const pollInterval = 100 * time.Millisecond

// progress is written by the ranker goroutine and polled by the UI.
type progress struct {
	candidates   atomic.Int64
	mu           sync.Mutex
	best         rank.Candidate
	found        bool
	improvements int
}

func (p *progress) improve(c rank.Candidate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.best = c
	p.found = true
	p.improvements++
}

func (p *progress) snapshot() (rank.Candidate, bool, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.best, p.found, p.improvements
}

type pollMsg struct{}

type doneMsg struct {
	result  rank.Result
	err     error
	elapsed time.Duration
}

// DecodeModel runs one ranker search and shows its best guess live.
type DecodeModel struct {
	ranker  rank.Ranker
	code    string
	ctx     context.Context
	cancel  context.CancelFunc
	spinner spinner.Model
	live    *progress

	width  int
	height int

	started      time.Time
	candidates   int64
	best         rank.Candidate
	prevWords    []string
	found        bool
	improvements int

	done      bool
	stopping  bool
	result    rank.Result
	err       error
	elapsed   time.Duration
	finalText string
}

// NewDecodeModel prepares a live decode of code. The ranker is copied and
// its callbacks replaced; cancelling ctx or pressing q stops the search.
func NewDecodeModel(ctx context.Context, ranker rank.Ranker, code string) *DecodeModel {
	ctx, cancel := context.WithCancel(ctx)
	live := &progress{}
	ranker.OnCandidate = func(string) { live.candidates.Add(1) }
	ranker.OnImprove = live.improve
	return &DecodeModel{
		ranker:  ranker,
		code:    code,
		ctx:     ctx,
		cancel:  cancel,
		live:    live,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(mutedStyle)),
	}
}

// Result returns the finished search, valid once the program has exited.
func (m *DecodeModel) Result() (rank.Result, time.Duration, error) {
	return m.result, m.elapsed, m.err
}

// Init implements tea.Model.
func (m *DecodeModel) Init() tea.Cmd {
	m.started = time.Now()
	return tea.Batch(m.spinner.Tick, m.run(), poll())
}

func (m *DecodeModel) run() tea.Cmd {
	ranker, ctx, code := m.ranker, m.ctx, m.code
	return func() tea.Msg {
		start := time.Now()
		res, err := ranker.Run(ctx, code)
		return doneMsg{result: res, err: err, elapsed: time.Since(start)}
	}
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollMsg{} })
}

// Update implements tea.Model.
func (m *DecodeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc", "enter":
			if m.done {
				return m, tea.Quit
			}
			if msg.String() == "enter" {
				return m, nil
			}
			m.stopping = true
			m.cancel()
			return m, nil
		}
		return m, nil
	case pollMsg:
		if m.done {
			return m, nil
		}
		m.refresh()
		return m, poll()
	case doneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		m.elapsed = msg.elapsed
		m.cancel()
		m.refresh()
		m.candidates = int64(msg.result.Candidates)
		m.finalText = renderFinal(msg.result, msg.elapsed)
		if m.stopping {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *DecodeModel) refresh() {
	m.candidates = m.live.candidates.Load()
	best, found, improvements := m.live.snapshot()
	if improvements != m.improvements {
		m.prevWords = m.best.Segmentation.Words
		m.best = best
		m.found = found
		m.improvements = improvements
	}
}

func renderFinal(res rank.Result, elapsed time.Duration) string {
	var buf bytes.Buffer
	if err := report.RenderDecode(&buf, res, elapsed); err != nil {
		return fmt.Sprintf("Failed to render result: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// View implements tea.Model.
func (m *DecodeModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	contentWidth := max(1, int(float64(width)*0.70))

	lines := []string{
		titleStyle.Render("Decoding"),
		mutedStyle.Render(truncateLine(m.code, contentWidth)),
		"",
	}
	guess := mutedStyle.Render("(no guess yet)")
	if m.found {
		guess = wrapStyledRunes(buildStyledRunes(m.best.Segmentation.Words, m.prevWords), contentWidth)
	}
	lines = append(lines, guess, "", m.renderStatus())
	if m.done {
		lines = append(lines, "", m.finalText)
		if m.err != nil {
			lines = append(lines, errorStyle.Render(m.err.Error()))
		}
	}
	content := lipgloss.NewStyle().Width(contentWidth).Render(strings.Join(lines, "\n"))
	footer := footerStyle.Render(m.renderHelp())
	if m.height < 3 {
		return content + "\n" + footer
	}
	body := lipgloss.Place(width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	return body + "\n" + lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Center, footer)
}

func (m *DecodeModel) renderStatus() string {
	elapsed := m.elapsed
	if !m.done && !m.started.IsZero() {
		elapsed = time.Since(m.started)
	}
	state := m.spinner.View() + " searching"
	switch {
	case m.done:
		state = m.result.Outcome.String()
	case m.stopping:
		state = "stopping"
	}
	segments := []string{
		state,
		fmt.Sprintf("Candidates %d", m.candidates),
		fmt.Sprintf("Improvements %d", m.improvements),
	}
	if m.found {
		segments = append(segments, fmt.Sprintf("Likelihood %.3g", m.best.Segmentation.Likelihood))
	}
	segments = append(segments, elapsed.Round(100*time.Millisecond).String())
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *DecodeModel) renderHelp() string {
	if m.done {
		return "Quit: q/enter"
	}
	return "Stop: q/esc"
}
