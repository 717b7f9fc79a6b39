package stats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/adaptype/internal/model"
)

// Bar is one labelled value of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
}

const (
	barFull             = "█"
	barNegative         = "░"
	minBarWidth         = 10
	terminalWidthBackup = 80
	colorReset          = "\x1b[0m"
	colorPositive       = "\x1b[31m"
	colorNegative       = "\x1b[36m"
)

// RenderBars draws bars scaled to the largest absolute value. Negative
// values use a lighter glyph. width <= 0 fits the terminal.
func RenderBars(w io.Writer, title string, bars []Bar, width int, forceColor bool) error {
	if len(bars) == 0 {
		return nil
	}
	labelWidth := 0
	maxAbs := 0.0
	for _, b := range bars {
		labelWidth = max(labelWidth, runewidth.StringWidth(b.Label))
		maxAbs = max(maxAbs, abs(b.Value))
	}
	if width <= 0 {
		width = terminalWidth()
	}
	// label, space, bar, space, value
	barWidth := max(width-labelWidth-12, minBarWidth)
	useColor := shouldUseColor(w, forceColor)

	lines := []string{title}
	for _, b := range bars {
		n := 0
		if maxAbs > 0 {
			n = int(abs(b.Value) / maxAbs * float64(barWidth))
		}
		glyph, color := barFull, colorPositive
		if b.Value < 0 {
			glyph, color = barNegative, colorNegative
		}
		bar := strings.Repeat(glyph, n)
		if useColor && n > 0 {
			bar = color + bar + colorReset
		}
		pad := strings.Repeat(" ", barWidth-n)
		lines = append(lines, fmt.Sprintf("%s %s%s %+.4f", runewidth.FillRight(b.Label, labelWidth), bar, pad, b.Value))
	}
	return writeLines(w, append(lines, "")...)
}

// ErrorBars maps diagnostics to normalized error bars.
func ErrorBars(diags []model.LetterDiagnostic) []Bar {
	bars := make([]Bar, 0, len(diags))
	for _, d := range diags {
		bars = append(bars, Bar{Label: d.Letter, Value: d.NormalizedError})
	}
	return bars
}

// KLBars maps diagnostics with a nonzero normalized error to KL contribution bars.
func KLBars(diags []model.LetterDiagnostic) []Bar {
	var bars []Bar
	for _, d := range diags {
		if d.NormalizedError > 0 {
			bars = append(bars, Bar{Label: d.Letter, Value: d.KLContribution})
		}
	}
	return bars
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
