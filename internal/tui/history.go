package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/morsel/internal/model"
	"github.com/verte-zerg/morsel/internal/report"
	"github.com/verte-zerg/morsel/internal/store"
)

const (
	tabRuns = iota
	tabOverview
)

const curveHeight = 8

var outcomeCycle = []string{"", "found", "no-decoding", "no-segmentation", "cancelled"}

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(0, 1)
)

// HistoryModel browses stored decode runs.
type HistoryModel struct {
	store  *store.Store
	filter model.HistoryFilter
	window int

	runs    []model.Run
	summary model.RunSummary
	errMsg  string

	tabs       []string
	activeTab  int
	table      table.Model
	overview   viewport.Model
	detail     viewport.Model
	showDetail bool

	filterMode bool
	langInput  textinput.Model

	width  int
	height int
}

// NewHistoryModel constructs a history browser over st.
func NewHistoryModel(st *store.Store, filter model.HistoryFilter, window int) *HistoryModel {
	m := &HistoryModel{
		store:    st,
		filter:   filter,
		window:   max(1, window),
		tabs:     []string{"Runs", "Overview"},
		overview: viewport.New(0, 0),
		detail:   viewport.New(0, 0),
	}
	m.table = table.New(
		table.WithColumns(historyColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	m.table.SetStyles(historyTableStyles())
	m.langInput = textinput.New()
	m.langInput.Prompt = "Lang: "
	m.langInput.Placeholder = "any"
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *HistoryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.showDetail {
			switch msg.String() {
			case "esc", "enter", "backspace":
				m.showDetail = false
				return m, nil
			case "q":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h", "right", "l", "tab":
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			return m, nil
		case "o":
			m.filter.Outcome = nextOutcome(m.filter.Outcome)
			m.refresh()
			return m, nil
		case "/":
			m.filterMode = true
			m.langInput.SetValue(m.filter.Lang)
			return m, m.langInput.Focus()
		case "=":
			m.window++
			m.renderOverview()
			return m, nil
		case "-":
			m.window = max(1, m.window-1)
			m.renderOverview()
			return m, nil
		case "enter":
			if m.activeTab == tabRuns && len(m.runs) > 0 {
				m.openDetail()
			}
			return m, nil
		}
		var cmd tea.Cmd
		if m.activeTab == tabRuns {
			m.table, cmd = m.table.Update(msg)
		} else {
			m.overview, cmd = m.overview.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *HistoryModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.langInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filterMode = false
		m.langInput.Blur()
		m.filter.Lang = strings.ToLower(strings.TrimSpace(m.langInput.Value()))
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.langInput, cmd = m.langInput.Update(msg)
	return m, cmd
}

func nextOutcome(current string) string {
	for i, o := range outcomeCycle {
		if o == current {
			return outcomeCycle[(i+1)%len(outcomeCycle)]
		}
	}
	return outcomeCycle[0]
}

func (m *HistoryModel) refresh() {
	ctx := context.Background()
	runs, err := m.store.ListRuns(ctx, m.filter)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load runs: %v", err)
		return
	}
	summary, err := m.store.Summary(ctx, m.filter)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load summary: %v", err)
		return
	}
	m.errMsg = ""
	m.runs = runs
	m.summary = summary
	cells := report.HistoryRows(runs)
	rows := make([]table.Row, len(cells))
	for i, c := range cells {
		rows[i] = table.Row(c)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.renderOverview()
}

func (m *HistoryModel) renderOverview() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	var buf bytes.Buffer
	if err := report.RenderSummary(&buf, m.summary); err != nil {
		m.overview.SetContent(fmt.Sprintf("Failed to render summary: %v", err))
		return
	}
	if len(m.runs) > 1 {
		buf.WriteString("\n")
		if err := report.RenderCurves(&buf, m.runs, m.window, width, curveHeight); err != nil {
			m.overview.SetContent(fmt.Sprintf("Failed to render curves: %v", err))
			return
		}
	}
	m.overview.SetContent(strings.TrimRight(buf.String(), "\n"))
}

func (m *HistoryModel) openDetail() {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.runs) {
		return
	}
	r := m.runs[idx]
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Run %d", r.ID)),
		fmt.Sprintf("Started:    %s", r.StartedAt.Local().Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Duration:   %dms", r.DurationMs),
		fmt.Sprintf("Mode:       %s (%s)", r.Mode, r.Lang),
		fmt.Sprintf("Outcome:    %s", r.Outcome),
		fmt.Sprintf("Best:       %s", r.Best),
		fmt.Sprintf("Letters:    %s", r.Letters),
		fmt.Sprintf("Likelihood: %.6g", r.Likelihood),
		fmt.Sprintf("Candidates: %d", r.Candidates),
		fmt.Sprintf("Scored:     %d", r.Scored),
		"",
		"Code:",
		wrapPlain(r.Code, max(10, m.width-6)),
	}
	m.detail.SetContent(strings.Join(lines, "\n"))
	m.detail.GotoTop()
	m.showDetail = true
}

func wrapPlain(s string, width int) string {
	out := make([]styledRune, 0, len(s))
	for _, r := range s {
		out = append(out, styledRune{s: string(r), width: 1, isSpace: r == ' '})
	}
	return wrapStyledRunes(out, width)
}

// View implements tea.Model.
func (m *HistoryModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, 1)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *HistoryModel) layoutHeights() (int, int) {
	headerHeight := lipgloss.Height(activeNavStyle.Render("X")) + 1
	bodyHeight := max(1, m.height-headerHeight-1)
	return headerHeight, bodyHeight
}

func (m *HistoryModel) updateLayout() {
	_, bodyHeight := m.layoutHeights()
	m.table.SetColumns(historyColumns(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(1, bodyHeight-1))
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.detail.Width = max(1, m.width-4)
	m.detail.Height = max(1, bodyHeight-2)
	m.langInput.Width = max(10, m.width-lipgloss.Width(m.langInput.Prompt)-2)
}

func (m *HistoryModel) renderHeader() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return tabs + "\n" + mutedStyle.Render(truncateLine(m.filterSummary(), m.width))
}

func (m *HistoryModel) filterSummary() string {
	lang := m.filter.Lang
	if lang == "" {
		lang = "any"
	}
	outcome := m.filter.Outcome
	if outcome == "" {
		outcome = "any"
	}
	last := "all"
	if m.filter.Last > 0 {
		last = fmt.Sprintf("%d", m.filter.Last)
	}
	return fmt.Sprintf("Filter: lang=%s  outcome=%s  last=%s  window=%d  runs=%d", lang, outcome, last, m.window, len(m.runs))
}

func (m *HistoryModel) renderBody() string {
	switch {
	case m.filterMode:
		return "Filter by language (enter to apply, esc to cancel)\n" + m.langInput.View()
	case m.showDetail:
		return detailStyle.Render(m.detail.View())
	case m.activeTab == tabOverview:
		return m.overview.View()
	case len(m.runs) == 0:
		return "No runs found."
	default:
		return m.table.View()
	}
}

func (m *HistoryModel) renderFooter() string {
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	help := "Nav: left/right  Details: enter  Outcome: o  Lang: /  Window: -/=  Quit: q"
	if m.showDetail {
		help = "Back: esc  Scroll: up/down  Quit: q"
	}
	return footerStyle.Render(truncateLine(help, m.width))
}

// historyColumns sizes the run table; Best takes the remaining width.
func historyColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "Ended", Width: 16},
		{Title: "Outcome", Width: 15},
		{Title: "Mode", Width: 10},
		{Title: "Lang", Width: 5},
		{Title: "Candidates", Width: 10},
		{Title: "Likelihood", Width: 10},
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 1
	}
	return append(cols, table.Column{Title: "Best", Width: max(10, width-used-1)})
}

func historyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
