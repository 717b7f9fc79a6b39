package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/adaptype/internal/model"
)

func sampleRecords() []model.SessionRecord {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return []model.SessionRecord{
		{Sequence: 1, Label: "Test 1", EndedAt: base, WPM: 30, Accuracy: 0.9, TypingScore: 72, Entropy: 4.6},
		{Sequence: 2, Label: "Test 2", EndedAt: base.Add(time.Minute), WPM: 40, Accuracy: 0.95, TypingScore: 78.5, Entropy: 4.5},
		{Sequence: 3, Label: "Practice 1", EndedAt: base.Add(2 * time.Minute), WPM: 50, Accuracy: 1, TypingScore: 85, Entropy: 4.4, KLDivergence: 0.3},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords())
	if s.Sessions != 3 || s.Tests != 2 || s.Practice != 1 {
		t.Fatalf("unexpected counts %+v", s)
	}
	if s.AvgWPM != 40 || s.BestWPM != 50 || math.Abs(s.AvgAccuracy-0.95) > 1e-12 {
		t.Fatalf("unexpected averages %+v", s)
	}
	if s.LastEntropy != 4.4 || s.LastKL != 0.3 {
		t.Fatalf("unexpected last values %+v", s)
	}
	if (Summarize(nil) != Summary{}) {
		t.Fatalf("expected zero summary")
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4}, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if out := MovingAverage([]float64{5, 6}, 1); out[0] != 5 || out[1] != 6 {
		t.Fatalf("window 1 should copy values")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 1}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, sampleRecords()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Label", "Practice 1", "95.00%", "85.0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := RenderHistory(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions") {
		t.Fatalf("expected empty message")
	}
}

func TestRenderSummaryAndCurves(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sampleRecords()); err != nil {
		t.Fatalf("summary: %v", err)
	}
	if err := RenderCurves(&buf, sampleRecords(), 2); err != nil {
		t.Fatalf("curves: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Sessions: 3 (2 test, 1 practice)") || !strings.Contains(out, "Trends") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRenderImprovement(t *testing.T) {
	var buf bytes.Buffer
	err := RenderImprovement(&buf, model.Improvement{
		BaselineAccuracy: 0.9, CombinedAccuracy: 0.92, MeanDiff: 0.02, CI95Low: -0.01, CI95High: 0.05, Samples: 2000,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "+2.00% (95% CI -1.00% to +5.00%, 2000 samples)") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
