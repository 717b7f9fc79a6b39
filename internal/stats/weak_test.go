package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/adaptype/internal/model"
)

func sampleDiags() []model.LetterDiagnostic {
	return []model.LetterDiagnostic{
		{Letter: "a", Attempts: 10, ErrorRate: 0.2, NormalizedError: 0.05, KLContribution: 0.1},
		{Letter: "b", Attempts: 4, ErrorRate: 0.5, NormalizedError: 0.1, KLContribution: 0.2},
		{Letter: "c", Attempts: 0, ErrorRate: 0.5, NormalizedError: 0.1, KLContribution: 0.2},
		{Letter: "d", Attempts: 4, ErrorRate: 0.1, NormalizedError: 0.02, KLContribution: -0.05},
	}
}

func TestWeakestLetters(t *testing.T) {
	got := WeakestLetters(sampleDiags(), 2)
	if LetterNames(got) != "b a" {
		t.Fatalf("unexpected weakest letters %q", LetterNames(got))
	}
	if all := WeakestLetters(sampleDiags(), 0); len(all) != 3 {
		t.Fatalf("expected only attempted letters, got %d", len(all))
	}
}

func TestMostPracticed(t *testing.T) {
	got := MostPracticed(sampleDiags(), 2)
	if LetterNames(got) != "a b" {
		t.Fatalf("unexpected order %q", LetterNames(got))
	}
	if MostPracticed(sampleDiags(), 0) != nil {
		t.Fatalf("expected nil for n=0")
	}
}

func TestRenderBars(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderBars(&buf, "KL", KLBars(sampleDiags()), 41, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 || lines[0] != "KL" {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if strings.Count(lines[2], barFull) != 2*strings.Count(lines[1], barFull) {
		t.Fatalf("bars not scaled:\n%s", buf.String())
	}
	if !strings.Contains(lines[4], barNegative) || strings.Contains(lines[4], "\x1b[") {
		t.Fatalf("unexpected negative bar %q", lines[4])
	}
}

func TestRenderLetterTable(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderLetterTable(&buf, sampleDiags()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\nc ") {
		t.Fatalf("unattempted letter listed:\n%s", out)
	}
	if strings.Index(out, "\nb ") > strings.Index(out, "\na ") {
		t.Fatalf("expected b before a:\n%s", out)
	}
}
