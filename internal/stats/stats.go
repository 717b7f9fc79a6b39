// Package stats renders session history and letter diagnostics as text.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/adaptype/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a run of sessions.
type Summary struct {
	Sessions    int
	Tests       int
	Practice    int
	AvgWPM      float64
	BestWPM     float64
	AvgAccuracy float64
	AvgScore    float64
	LastEntropy float64
	LastKL      float64
}

// Summarize aggregates records.
func Summarize(records []model.SessionRecord) Summary {
	var s Summary
	if len(records) == 0 {
		return s
	}
	for _, r := range records {
		s.Sessions++
		if r.IsTest() {
			s.Tests++
		} else {
			s.Practice++
		}
		s.AvgWPM += r.WPM
		s.AvgAccuracy += r.Accuracy
		s.AvgScore += r.TypingScore
		if r.WPM > s.BestWPM {
			s.BestWPM = r.WPM
		}
	}
	n := float64(len(records))
	s.AvgWPM /= n
	s.AvgAccuracy /= n
	s.AvgScore /= n
	last := records[len(records)-1]
	s.LastEntropy = last.Entropy
	s.LastKL = last.KLDivergence
	return s
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if maxVal-minVal < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[max(0, min(idx, len(sparkChars)-1))])
	}
	return b.String()
}

// RenderSummary prints aggregate numbers for records.
func RenderSummary(w io.Writer, records []model.SessionRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	s := Summarize(records)
	return writeLines(w,
		"Summary",
		fmt.Sprintf("Sessions: %d (%d test, %d practice)", s.Sessions, s.Tests, s.Practice),
		fmt.Sprintf("Avg WPM: %.2f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %.2f", s.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", s.AvgAccuracy*100),
		fmt.Sprintf("Avg Score: %.2f", s.AvgScore),
		fmt.Sprintf("Entropy: %.3f bits, KL: %.3f bits", s.LastEntropy, s.LastKL),
		"",
	)
}

// RenderCurves prints smoothed WPM and accuracy trends as sparklines.
func RenderCurves(w io.Writer, records []model.SessionRecord, window int) error {
	if len(records) < 2 {
		return nil
	}
	wpms := make([]float64, len(records))
	accs := make([]float64, len(records))
	scores := make([]float64, len(records))
	for i, r := range records {
		wpms[i] = r.WPM
		accs[i] = r.Accuracy * 100
		scores[i] = r.TypingScore
	}
	line := func(name string, values []float64) string {
		values = MovingAverage(values, window)
		return fmt.Sprintf("%-9s %s %.1f", name, Sparkline(values), values[len(values)-1])
	}
	return writeLines(w,
		"Trends",
		line("WPM", wpms),
		line("Accuracy", accs),
		line("Score", scores),
		"",
	)
}

// RenderHistory prints one row per session.
func RenderHistory(w io.Writer, records []model.SessionRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	tbl := newTextTable("#", "Label", "Date", "WPM", "Accuracy", "Score", "Entropy", "KL").alignRight(0, 3, 4, 5, 6, 7)
	for _, r := range records {
		tbl.add(
			fmt.Sprintf("%d", r.Sequence),
			r.Label,
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%.1f", r.WPM),
			fmt.Sprintf("%.2f%%", r.Accuracy*100),
			fmt.Sprintf("%.1f", r.TypingScore),
			fmt.Sprintf("%.3f", r.Entropy),
			fmt.Sprintf("%.3f", r.KLDivergence),
		)
	}
	return writeLines(w, append(tbl.lines(), "")...)
}

// RenderLetterTable prints the letters that have attempts, worst first.
func RenderLetterTable(w io.Writer, diags []model.LetterDiagnostic) error {
	attempted := WeakestLetters(diags, 0)
	if len(attempted) == 0 {
		_, err := fmt.Fprintln(w, "No letter attempts recorded.")
		return err
	}
	tbl := newTextTable("Letter", "Attempts", "Error", "Posterior", "Norm", "KL", "P(correct)", "Variance").alignRight(1, 2, 3, 4, 5, 6, 7)
	for _, d := range attempted {
		tbl.add(
			d.Letter,
			fmt.Sprintf("%d", d.Attempts),
			fmt.Sprintf("%.1f%%", d.EmpiricalError*100),
			fmt.Sprintf("%.3f", d.ErrorRate),
			fmt.Sprintf("%.3f", d.NormalizedError),
			fmt.Sprintf("%+.4f", d.KLContribution),
			fmt.Sprintf("%.3f", d.PosteriorMean),
			fmt.Sprintf("%.5f", d.PosteriorVariance),
		)
	}
	lines := append([]string{"Per-Letter"}, tbl.lines()...)
	return writeLines(w, append(lines, "")...)
}

// RenderEntropy prints the entropy summary and its advice.
func RenderEntropy(w io.Writer, s model.EntropySummary) error {
	return writeLines(w,
		fmt.Sprintf("Entropy: %.3f bits (%.0f%% of max, %s)", s.Entropy, s.NormalizedEntropy*100, s.Band),
		fmt.Sprintf("KL divergence from uniform: %.4f bits", s.KLDivergence),
		s.Advice,
		"",
	)
}

// RenderUncertainty prints bootstrap intervals per letter.
func RenderUncertainty(w io.Writer, us []model.Uncertainty) error {
	if len(us) == 0 {
		_, err := fmt.Fprintln(w, "No letter attempts recorded.")
		return err
	}
	tbl := newTextTable("Letter", "Attempts", "Mean", "Variance", "95% CI").alignRight(1, 2, 3)
	for _, u := range us {
		tbl.add(
			u.Letter,
			fmt.Sprintf("%d", u.Attempts),
			fmt.Sprintf("%.3f", u.Mean),
			fmt.Sprintf("%.5f", u.Variance),
			fmt.Sprintf("[%.3f, %.3f]", u.CI95Low, u.CI95High),
		)
	}
	lines := append([]string{"Letter Error Uncertainty (bootstrap)"}, tbl.lines()...)
	return writeLines(w, append(lines, "")...)
}

// RenderImprovement prints the phase comparison.
func RenderImprovement(w io.Writer, imp model.Improvement) error {
	return writeLines(w,
		"Improvement (bootstrap)",
		fmt.Sprintf("Baseline accuracy: %.2f%%", imp.BaselineAccuracy*100),
		fmt.Sprintf("Combined accuracy: %.2f%%", imp.CombinedAccuracy*100),
		fmt.Sprintf("Mean difference: %+.2f%% (95%% CI %+.2f%% to %+.2f%%, %d samples)",
			imp.MeanDiff*100, imp.CI95Low*100, imp.CI95High*100, imp.Samples),
		"",
	)
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
