// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/adaptype/internal/model"
	"github.com/verte-zerg/adaptype/internal/stats"
)

const (
	tabOverview = iota
	tabSessions
	tabLetters
)

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
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	src stats.Source
	cfg model.StatsConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	tables    map[int]*table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a stats UI model.
func NewModel(src stats.Source, cfg model.StatsConfig) *Model {
	m := &Model{
		src:      src,
		cfg:      cfg,
		tabs:     []string{"Overview", "Sessions", "Letters"},
		overview: viewport.New(0, 0),
	}
	sessions := newTable()
	letters := newTable()
	m.tables = map[int]*table.Model{tabSessions: &sessions, tabLetters: &letters}
	m.filterInputs = []textinput.Model{
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Curve window: "),
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			return m.startFilter()
		case "r":
			m.refreshReport()
			return m, nil
		}
		if t, ok := m.tables[m.activeTab]; ok {
			var cmd tea.Cmd
			*t, cmd = t.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.overview, cmd = m.overview.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs()+"\n"+m.renderFilterSummary(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func newTable() table.Model {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	t := table.New(table.WithFocused(true), table.WithHeight(10))
	t.SetStyles(styles)
	return t
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = lipgloss.Height(activeNavStyle.Render("X")) + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	for _, t := range m.tables {
		t.SetWidth(m.width)
		t.SetHeight(max(bodyHeight-1, 1))
	}
	for i := range m.filterInputs {
		m.filterInputs[i].Width = max(10, m.width-lipgloss.Width(m.filterInputs[i].Prompt)-2)
	}
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFilterSummary() string {
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: since=%s  last=%s  window=%d", since, last, m.cfg.CurveWindow)
	return headerStyle.Render(runewidth.Truncate(summary, max(m.width, 4), "..."))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Settings: /  Reload: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	if m.filterMode {
		lines := []string{"Settings (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return strings.Join(lines, "\n")
	}
	if t, ok := m.tables[m.activeTab]; ok {
		if len(m.report.Sessions) == 0 {
			return "No sessions found."
		}
		return t.View()
	}
	return m.overview.View()
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.src, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.tables[tabSessions].SetRows(nil)
	m.tables[tabSessions].SetColumns(sessionColumns())
	m.tables[tabSessions].SetRows(sessionRows(report.Sessions))
	m.tables[tabLetters].SetRows(nil)
	m.tables[tabLetters].SetColumns(letterColumns())
	m.tables[tabLetters].SetRows(letterRows(report.Letters))
	m.renderContents()
}

func (m *Model) renderContents() {
	if m.errMsg != "" {
		return
	}
	m.overview.SetContent(renderOverview(m.report, m.cfg.CurveWindow, max(m.width, 80)))
}

func renderOverview(report stats.Report, window, width int) string {
	if len(report.Sessions) == 0 {
		return "No sessions found."
	}
	s := stats.Summarize(report.Sessions)
	cards := []string{
		metricCard("Sessions", fmt.Sprintf("%d", s.Sessions)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", s.AvgWPM)),
		metricCard("Best WPM", fmt.Sprintf("%.1f", s.BestWPM)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", s.AvgAccuracy*100)),
		metricCard("Avg Score", fmt.Sprintf("%.1f", s.AvgScore)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}

	var buf bytes.Buffer
	if err := stats.RenderCurves(&buf, report.Sessions, window); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	if err := stats.RenderEntropy(&buf, report.Entropy); err != nil {
		return fmt.Sprintf("Failed to render entropy: %v", err)
	}
	if err := stats.RenderBars(&buf, "Error distribution", stats.ErrorBars(report.Letters), width, true); err != nil {
		return fmt.Sprintf("Failed to render bars: %v", err)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String(), "\n")
}

func metricCard(label, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

func sessionColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Label", Width: 14},
		{Title: "Date", Width: 16},
		{Title: "WPM", Width: 7},
		{Title: "Accuracy", Width: 9},
		{Title: "Score", Width: 7},
		{Title: "Entropy", Width: 8},
		{Title: "KL", Width: 7},
	}
}

func sessionRows(records []model.SessionRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		rows = append(rows, table.Row{
			strconv.Itoa(r.Sequence),
			r.Label,
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%.1f", r.WPM),
			fmt.Sprintf("%.2f%%", r.Accuracy*100),
			fmt.Sprintf("%.1f", r.TypingScore),
			fmt.Sprintf("%.3f", r.Entropy),
			fmt.Sprintf("%.3f", r.KLDivergence),
		})
	}
	return rows
}

func letterColumns() []table.Column {
	return []table.Column{
		{Title: "Letter", Width: 6},
		{Title: "Attempts", Width: 8},
		{Title: "Error", Width: 7},
		{Title: "Posterior", Width: 9},
		{Title: "KL", Width: 8},
		{Title: "P(correct)", Width: 10},
		{Title: "Variance", Width: 9},
	}
}

func letterRows(diags []model.LetterDiagnostic) []table.Row {
	weakest := stats.WeakestLetters(diags, 0)
	rows := make([]table.Row, 0, len(weakest))
	for _, d := range weakest {
		rows = append(rows, table.Row{
			d.Letter,
			strconv.Itoa(d.Attempts),
			fmt.Sprintf("%.1f%%", d.EmpiricalError*100),
			fmt.Sprintf("%.3f", d.ErrorRate),
			fmt.Sprintf("%+.4f", d.KLContribution),
			fmt.Sprintf("%.3f", d.PosteriorMean),
			fmt.Sprintf("%.5f", d.PosteriorVariance),
		})
	}
	return rows
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.filterInputs[0].SetValue("")
	if m.cfg.Since != nil {
		m.filterInputs[0].SetValue(m.cfg.Since.Format("2006-01-02"))
	}
	m.filterInputs[1].SetValue("")
	if m.cfg.Last > 0 {
		m.filterInputs[1].SetValue(strconv.Itoa(m.cfg.Last))
	}
	m.filterInputs[2].SetValue(strconv.Itoa(m.cfg.CurveWindow))
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		cfg, err := parseFilter(m.cfg, m.filterInputs[0].Value(), m.filterInputs[1].Value(), m.filterInputs[2].Value())
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.cfg = cfg
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func parseFilter(cfg model.StatsConfig, sinceInput, lastInput, windowInput string) (model.StatsConfig, error) {
	cfg.Since = nil
	if s := strings.TrimSpace(sinceInput); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		cfg.Since = &parsed
	}
	cfg.Last = 0
	if s := strings.TrimSpace(lastInput); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 0 {
			return cfg, fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		cfg.Last = parsed
	}
	cfg.CurveWindow = 1
	if s := strings.TrimSpace(windowInput); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 {
			return cfg, fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		cfg.CurveWindow = parsed
	}
	return cfg, nil
}

func padLine(line string, width int) string {
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
