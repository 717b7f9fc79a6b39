package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/adaptype/internal/letters"
	"github.com/verte-zerg/adaptype/internal/model"
)

func sampleRecord(runID, label string, phase model.Phase, ended time.Time) model.SessionRecord {
	correct := make([]int, letters.Count)
	incorrect := make([]int, letters.Count)
	correct[0] = 4
	incorrect[0] = 1
	correct[letters.Index('z')] = 2
	probs := make([]float64, letters.Count)
	for i := range probs {
		probs[i] = 0.5
	}
	return model.SessionRecord{
		RunID:           runID,
		Label:           label,
		Phase:           phase,
		Sequence:        1,
		StartedAt:       ended.Add(-10 * time.Second),
		EndedAt:         ended,
		ElapsedSec:      10,
		CorrectChars:    6,
		TotalChars:      7,
		WPM:             8.4,
		Accuracy:        6.0 / 7.0,
		Entropy:         4.7,
		KLDivergence:    0.01,
		TypingScore:     62.5,
		ErrorProbs:      probs,
		NormalizedProbs: probs,
		CorrectProbs:    probs,
		LetterCorrect:   correct,
		LetterIncorrect: incorrect,
	}
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "adaptype.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return s
}

func TestInsertAndGetSession(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	ended := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := sampleRecord("run-1", "Test 1", model.PhaseTest, ended)

	id, err := s.InsertSession(ctx, rec)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := s.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != id || got.Label != "Test 1" || got.Phase != model.PhaseTest || got.RunID != "run-1" {
		t.Fatalf("unexpected record %+v", got)
	}
	if !got.EndedAt.Equal(ended) || got.CorrectChars != 6 || got.TotalChars != 7 {
		t.Fatalf("unexpected metrics %+v", got)
	}
	if len(got.ErrorProbs) != letters.Count || got.ErrorProbs[3] != 0.5 {
		t.Fatalf("snapshot not restored: %v", got.ErrorProbs)
	}
	if got.LetterCorrect[0] != 4 || got.LetterIncorrect[0] != 1 || got.LetterCorrect[25] != 2 {
		t.Fatalf("letter stats not restored: %v %v", got.LetterCorrect, got.LetterIncorrect)
	}

	if _, err := s.GetSession(ctx, id+100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSessionsFilters(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	labels := []string{"Test 1", "Test 2", "Practice 1", "Practice 2"}
	for i, label := range labels {
		run := "run-a"
		if i == 3 {
			run = "run-b"
		}
		phase := model.PhaseTest
		if i >= 2 {
			phase = model.PhasePractice
		}
		if _, err := s.InsertSession(ctx, sampleRecord(run, label, phase, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	all, err := s.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 || all[0].Label != "Test 1" || all[3].Label != "Practice 2" {
		t.Fatalf("unexpected order: %+v", all)
	}

	last, err := s.ListSessions(ctx, model.StatsConfig{Last: 2})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 2 || last[0].Label != "Practice 1" || last[1].Label != "Practice 2" {
		t.Fatalf("unexpected last sessions: %+v", last)
	}

	since := base.Add(90 * time.Second)
	recent, err := s.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 sessions since %v, got %d", since, len(recent))
	}

	run, err := s.ListSessions(ctx, model.StatsConfig{RunID: "run-b"})
	if err != nil {
		t.Fatalf("list run: %v", err)
	}
	if len(run) != 1 || run[0].Label != "Practice 2" {
		t.Fatalf("unexpected run filter result: %+v", run)
	}
}

func TestLetterTotals(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Now().UTC()
	id1, err := s.InsertSession(ctx, sampleRecord("r", "Test 1", model.PhaseTest, base))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.InsertSession(ctx, sampleRecord("r", "Test 2", model.PhaseTest, base.Add(time.Second))); err != nil {
		t.Fatalf("insert: %v", err)
	}

	incorrect, correct, err := s.LetterTotals(ctx, nil)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if correct[0] != 8 || incorrect[0] != 2 || correct[25] != 4 || correct[1] != 0 {
		t.Fatalf("unexpected totals %v %v", correct, incorrect)
	}

	incorrect, correct, err = s.LetterTotals(ctx, []int64{id1})
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if correct[0] != 4 || incorrect[0] != 1 {
		t.Fatalf("unexpected filtered totals %v %v", correct, incorrect)
	}
}

func TestListSessionsKeepsCompletionOrderAcrossZones(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	first := time.Date(2024, 3, 1, 10, 0, 0, 0, plus2) // 08:00Z
	second := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	for _, rec := range []model.SessionRecord{
		sampleRecord("r", "Test 1", model.PhaseTest, first),
		sampleRecord("r", "Test 2", model.PhaseTest, second),
	} {
		if _, err := s.InsertSession(ctx, rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	all, err := s.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].Label != "Test 1" || all[1].Label != "Test 2" {
		t.Fatalf("unexpected order: %s, %s", all[0].Label, all[1].Label)
	}
	if !all[0].EndedAt.Equal(first) {
		t.Fatalf("ended_at changed: %v != %v", all[0].EndedAt, first)
	}

	last, err := s.ListSessions(ctx, model.StatsConfig{Last: 1})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 1 || last[0].Label != "Test 2" {
		t.Fatalf("expected the latest completion, got %+v", last)
	}

	// 09:00+02:00 is 07:00Z, so both sessions are after it.
	since := time.Date(2024, 3, 1, 9, 0, 0, 0, plus2)
	recent, err := s.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 sessions since %v, got %d", since, len(recent))
	}

	// 08:15Z excludes the session that ended at 08:00Z.
	since = time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC)
	recent, err = s.ListSessions(ctx, model.StatsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 || recent[0].Label != "Test 2" {
		t.Fatalf("unexpected since result %+v", recent)
	}
}
