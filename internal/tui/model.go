// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/adaptype/internal/bootstrap"
	"github.com/verte-zerg/adaptype/internal/engine"
	"github.com/verte-zerg/adaptype/internal/history"
	"github.com/verte-zerg/adaptype/internal/logging"
	"github.com/verte-zerg/adaptype/internal/model"
	"github.com/verte-zerg/adaptype/internal/session"
	"github.com/verte-zerg/adaptype/internal/stats"
)

type screen int

const (
	screenTyping screen = iota
	screenResults
)

const weakLetterCount = 5

// improvementMsg carries an estimate for the history as it was when the
// estimate was requested.
type improvementMsg struct {
	sessions int
	imp      model.Improvement
	err      error
}

// Model implements the Bubble Tea typing UI. Backspace is ignored: input
// only moves forward.
type Model struct {
	ctx     context.Context
	engine  *engine.Engine
	tracker *session.Tracker
	logger  *zap.Logger
	now     func() time.Time

	width  int
	height int

	screen  screen
	label   string
	weak    map[rune]bool
	last    model.SessionRecord
	hasLast bool
	summary model.EntropySummary
	letters []model.LetterDiagnostic

	sessions     int
	practiceDone int
	allWPM       float64
	allAcc       float64

	estimating  bool
	improvement *model.Improvement
	estimateErr error
	submitErr   error
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	weakStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#B07CC6"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	adviceStyle      = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#A0A0A0"))
)

// NewModel constructs a typing TUI model.
func NewModel(ctx context.Context, e *engine.Engine, logger *zap.Logger) *Model {
	m := &Model{
		ctx:    ctx,
		engine: e,
		logger: logging.OrNop(logger),
		now:    time.Now,
	}
	m.tracker = e.NewTracker()
	m.refresh()
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
		return m, nil
	case improvementMsg:
		if !m.estimating || msg.sessions != m.sessions {
			m.logger.Debug("dropping stale improvement estimate", zap.Int("sessions", msg.sessions))
			return m, nil
		}
		m.estimating = false
		m.improvement = nil
		m.estimateErr = msg.err
		if msg.err == nil {
			imp := msg.imp
			m.improvement = &imp
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.screen == screenResults {
			return m.updateResults(msg)
		}
		switch msg.Type {
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeySpace:
			m.handleRunes([]rune{' '})
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		m.advance()
		return m, nil
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit
		case "b":
			return m, m.estimateCmd()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.screen == screenResults {
		return m.place(m.renderResults(), "enter next · b bootstrap · q quit")
	}
	target := []rune(m.tracker.Target())
	if len(target) == 0 {
		return ""
	}
	input := []rune(m.tracker.Typed())
	cursorIndex := -1
	if len(input) < len(target) {
		cursorIndex = len(input)
	}
	cells := styleCells(target, input, cursorIndex, m.weak)
	if m.width == 0 || m.height == 0 {
		return joinCells(cells)
	}
	contentWidth := max(int(float64(m.width)*0.70), 1)
	wrapped := wrapCells(cells, contentWidth)
	content := titleStyle.Render(m.label) + "\n\n" + lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	return m.place(content, m.renderFooter())
}

func (m *Model) place(content, footer string) string {
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footerStyle.Render(footer))
	return body + "\n" + footerLine
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		done, err := m.tracker.Type(r, m.now())
		if err != nil {
			return
		}
		if done {
			m.finishSession()
			return
		}
	}
}

func (m *Model) finishSession() {
	rec, err := m.engine.SubmitSession(m.ctx, m.tracker.Target(), m.tracker.Typed(), m.tracker.Started(), m.tracker.Ended())
	m.submitErr = err
	if err != nil {
		m.logger.Error("failed to score session", zap.Error(err))
	} else {
		m.last = rec
		m.hasLast = true
	}
	m.resetEstimate()
	m.refresh()
	m.screen = screenResults
}

func (m *Model) advance() {
	if err := m.tracker.Next(); err != nil {
		m.logger.Warn("cannot advance", zap.Error(err))
		return
	}
	m.screen = screenTyping
	m.resetEstimate()
	m.refresh()
}

func (m *Model) resetEstimate() {
	m.estimating = false
	m.improvement = nil
	m.estimateErr = nil
}

// refresh reloads everything derived from the engine.
func (m *Model) refresh() {
	_, m.label = m.engine.Phase()
	m.summary = m.engine.EntropySummary()
	m.letters = m.engine.LetterDiagnostics()
	m.weak = map[rune]bool{}
	for _, d := range stats.WeakestLetters(m.letters, weakLetterCount) {
		m.weak[[]rune(d.Letter)[0]] = true
	}

	records := m.engine.History()
	m.sessions = len(records)
	m.practiceDone = len(history.FilterPrefix(records, model.PracticeLabelPrefix))
	correct, total := history.Totals(records)
	m.allAcc = session.Accuracy(correct, total)
	elapsed := 0.0
	for _, r := range records {
		elapsed += r.ElapsedSec
	}
	m.allWPM = session.WPM(total, elapsed)
}

func (m *Model) estimateCmd() tea.Cmd {
	if m.practiceDone == 0 || m.estimating {
		return nil
	}
	m.estimating = true
	ctx, e, sessions := m.ctx, m.engine, m.sessions
	return func() tea.Msg {
		imp, err := e.EstimatePhaseImprovement(ctx, 0)
		return improvementMsg{sessions: sessions, imp: imp, err: err}
	}
}

func (m *Model) renderFooter() string {
	target := len([]rune(m.tracker.Target()))
	if target == 0 {
		return ""
	}
	progress := int(float64(m.tracker.TypedLen()) / float64(target) * 100)
	segments := []string{fmt.Sprintf("Progress %d%%", progress)}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.last.WPM, m.last.Accuracy*100))
	}
	segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", m.allWPM, m.allAcc*100))
	return strings.Join(segments, "  ")
}

func (m *Model) renderResults() string {
	var b strings.Builder
	if m.submitErr != nil {
		b.WriteString(incorrectStyle.Render(m.submitErr.Error()))
		b.WriteString("\n")
		return b.String()
	}
	r := m.last
	b.WriteString(titleStyle.Render(r.Label + " complete"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "WPM %.1f   Accuracy %.1f%%   Score %.1f\n", r.WPM, r.Accuracy*100, r.TypingScore)
	fmt.Fprintf(&b, "Entropy %.3f bits (%s)   KL %.4f bits\n", r.Entropy, m.summary.Band, r.KLDivergence)
	b.WriteString(adviceStyle.Render(m.summary.Advice))
	b.WriteString("\n\n")

	weakest := stats.WeakestLetters(m.letters, weakLetterCount)
	if len(weakest) > 0 {
		bars := make([]stats.Bar, 0, len(weakest))
		for _, d := range weakest {
			bars = append(bars, stats.Bar{Label: d.Letter, Value: d.ErrorRate})
		}
		width := 50
		if m.width > 0 {
			width = min(m.width-4, 60)
		}
		if err := stats.RenderBars(&b, "Weakest letters (error rate)", bars, width, false); err != nil {
			m.logger.Warn("render bars", zap.Error(err))
		}
	}

	b.WriteString(m.renderImprovement())
	return b.String()
}

func (m *Model) renderImprovement() string {
	switch {
	case m.practiceDone == 0:
		return footerStyle.Render("Bootstrap comparison unlocks after the first practice session.")
	case m.estimating:
		return "Estimating improvement..."
	case m.estimateErr != nil:
		if errors.Is(m.estimateErr, bootstrap.ErrUnavailable) {
			return "Improvement estimate unavailable."
		}
		return incorrectStyle.Render(m.estimateErr.Error())
	case m.improvement != nil:
		var b strings.Builder
		if err := stats.RenderImprovement(&b, *m.improvement); err != nil {
			return err.Error()
		}
		return strings.TrimRight(b.String(), "\n")
	default:
		return ""
	}
}
