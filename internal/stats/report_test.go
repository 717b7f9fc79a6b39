package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/adaptype/internal/letters"
	"github.com/verte-zerg/adaptype/internal/model"
	"github.com/verte-zerg/adaptype/internal/store"
)

func TestBuildReport(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "adaptype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		end := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		correct := make([]int, letters.Count)
		incorrect := make([]int, letters.Count)
		correct[0] = 5
		incorrect[1] = 1
		correct[1] = 4
		rec := model.SessionRecord{
			RunID:           "run",
			Label:           model.PhaseTest.Label(i + 1),
			Phase:           model.PhaseTest,
			Sequence:        i + 1,
			StartedAt:       end.Add(-30 * time.Second),
			EndedAt:         end,
			CorrectChars:    9,
			TotalChars:      10,
			Accuracy:        0.9,
			WPM:             4,
			LetterCorrect:   correct,
			LetterIncorrect: incorrect,
		}
		if _, err := st.InsertSession(ctx, rec); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 || report.Sessions[0].Label != "Test 2" {
		t.Fatalf("unexpected sessions: %+v", report.Sessions)
	}
	a, b := report.Letters[0], report.Letters[1]
	if a.Attempts != 10 || b.Attempts != 10 || b.EmpiricalError != 0.2 {
		t.Fatalf("unexpected letters: %+v %+v", a, b)
	}
	if report.Entropy.Band == "" || report.Entropy.Advice == "" {
		t.Fatalf("expected entropy band and advice")
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, 2, 60, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Summary", "Weakest: b a", "Per-Letter", "KL Contribution"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestBuildReportEmpty(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "adaptype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	report, err := BuildReport(context.Background(), st, model.StatsConfig{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 0 || len(report.Letters) != letters.Count {
		t.Fatalf("unexpected empty report %+v", report)
	}
}
