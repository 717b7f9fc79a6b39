package session

import (
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/adaptype/internal/model"
)

func typeAll(t *testing.T, tr *Tracker, text string, now time.Time) {
	t.Helper()
	for i, r := range text {
		done, err := tr.Type(r, now.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("type: %v", err)
		}
		if done != (i == len([]rune(text))-1) {
			t.Fatalf("unexpected completion at %d", i)
		}
	}
}

func TestTrackerLifecycle(t *testing.T) {
	generated := 0
	tr := NewTracker([]string{"ab", "cd"}, func() string {
		generated++
		return "xy"
	})
	if tr.State() != AwaitingInput || tr.Phase() != model.PhaseTest || tr.Target() != "ab" {
		t.Fatalf("unexpected initial state %v %v %q", tr.State(), tr.Phase(), tr.Target())
	}
	if err := tr.Next(); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("expected ErrNotCompleted, got %v", err)
	}

	now := time.Unix(100, 0)
	if _, err := tr.Type('a', now); err != nil {
		t.Fatalf("type: %v", err)
	}
	if tr.State() != InProgress || !tr.Started().Equal(now) {
		t.Fatalf("first keystroke should start the session")
	}
	if _, err := tr.Type('x', now.Add(2*time.Second)); err != nil {
		t.Fatalf("type: %v", err)
	}
	if tr.State() != Completed || tr.Typed() != "ax" || !tr.Ended().Equal(now.Add(2*time.Second)) {
		t.Fatalf("expected completion, got %v %q", tr.State(), tr.Typed())
	}
	if _, err := tr.Type('z', now); !errors.Is(err, ErrCompleted) {
		t.Fatalf("expected ErrCompleted, got %v", err)
	}

	if err := tr.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if tr.Target() != "cd" || tr.TestIndex() != 1 || tr.TypedLen() != 0 || !tr.Started().IsZero() {
		t.Fatalf("expected second test text")
	}
	typeAll(t, tr, "cd", now)
	if err := tr.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if tr.Phase() != model.PhasePractice || tr.Target() != "xy" || generated != 1 {
		t.Fatalf("expected practice after tests, got %v %q", tr.Phase(), tr.Target())
	}
	for i := 0; i < 3; i++ {
		typeAll(t, tr, "xy", now)
		if err := tr.Next(); err != nil {
			t.Fatalf("next: %v", err)
		}
		if tr.Phase() != model.PhasePractice {
			t.Fatalf("practice phase must be permanent")
		}
	}
	if generated != 4 {
		t.Fatalf("expected a fresh text per practice session, got %d", generated)
	}
}

func TestTrackerWithoutTests(t *testing.T) {
	tr := NewTracker(nil, func() string { return "q" })
	if tr.Phase() != model.PhasePractice || tr.Target() != "q" {
		t.Fatalf("expected to start in practice")
	}
}

func TestTrackerTimesAndStateNames(t *testing.T) {
	tr := NewTracker([]string{"ab"}, func() string { return "xy" })
	if !tr.Started().IsZero() || !tr.Ended().IsZero() {
		t.Fatalf("times set before typing")
	}
	if err := tr.Next(); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("expected ErrNotCompleted, got %v", err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := tr.Type('a', now); err != nil {
		t.Fatalf("type: %v", err)
	}
	if tr.State() != InProgress || tr.TypedLen() != 1 || !tr.Started().Equal(now) || !tr.Ended().IsZero() {
		t.Fatalf("unexpected in-progress tracker: %v %d", tr.State(), tr.TypedLen())
	}
	if _, err := tr.Type('b', now.Add(time.Second)); err != nil {
		t.Fatalf("type: %v", err)
	}
	if tr.State() != Completed || !tr.Ended().Equal(now.Add(time.Second)) {
		t.Fatalf("unexpected completed tracker: %v", tr.State())
	}
	if _, err := tr.Type('c', now.Add(2*time.Second)); !errors.Is(err, ErrCompleted) {
		t.Fatalf("expected ErrCompleted, got %v", err)
	}
	for s, want := range map[State]string{AwaitingInput: "awaiting-input", InProgress: "in-progress", Completed: "completed"} {
		if s.String() != want {
			t.Fatalf("state %d: got %q", s, s.String())
		}
	}
}
