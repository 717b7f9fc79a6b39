package session

import (
	"errors"
	"time"

	"github.com/verte-zerg/adaptype/internal/model"
)

// State is the lifecycle state of the current text.
type State int

const (
	// AwaitingInput means no rune has been typed into the current text.
	AwaitingInput State = iota
	// InProgress means typing has started and the text is not finished.
	InProgress
	// Completed means the typed runes cover the whole target.
	Completed
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting-input"
	case InProgress:
		return "in-progress"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

var (
	// ErrCompleted is returned when input arrives after the text is finished.
	ErrCompleted = errors.New("session: text already completed")
	// ErrNotCompleted is returned by Next before the current text is finished.
	ErrNotCompleted = errors.New("session: text not completed")
)

// Tracker captures forward-only input for one text at a time. It walks the
// fixed test texts first and then switches to practice for good, asking
// practice for a fresh text every time.
type Tracker struct {
	tests    []string
	practice func() string

	phase   model.Phase
	testIdx int
	state   State
	target  []rune
	typed   []rune
	start   time.Time
	end     time.Time
}

// NewTracker starts at the first test text, or in practice when tests is empty.
func NewTracker(tests []string, practice func() string) *Tracker {
	t := &Tracker{
		tests:    append([]string(nil), tests...),
		practice: practice,
		phase:    model.PhaseTest,
	}
	if len(t.tests) == 0 {
		t.phase = model.PhasePractice
		t.reset(practice())
	} else {
		t.reset(t.tests[0])
	}
	return t
}

// Type appends r to the input. It reports whether the text is now complete.
func (t *Tracker) Type(r rune, now time.Time) (bool, error) {
	if t.state == Completed {
		return false, ErrCompleted
	}
	if t.state == AwaitingInput {
		t.state = InProgress
		t.start = now
	}
	t.typed = append(t.typed, r)
	if len(t.typed) >= len(t.target) {
		t.state = Completed
		t.end = now
		return true, nil
	}
	return false, nil
}

// Next moves to the following text.
func (t *Tracker) Next() error {
	if t.state != Completed {
		return ErrNotCompleted
	}
	if t.phase == model.PhaseTest {
		t.testIdx++
		if t.testIdx < len(t.tests) {
			t.reset(t.tests[t.testIdx])
			return nil
		}
		t.phase = model.PhasePractice
	}
	t.reset(t.practice())
	return nil
}

func (t *Tracker) reset(text string) {
	t.target = []rune(text)
	t.typed = t.typed[:0]
	t.start = time.Time{}
	t.end = time.Time{}
	t.state = AwaitingInput
	if len(t.target) == 0 {
		t.state = Completed
	}
}

// State reports where the current text is in its lifecycle.
func (t *Tracker) State() State { return t.state }

// Phase reports whether the current text is a test or a practice text.
func (t *Tracker) Phase() model.Phase { return t.phase }

// Target returns the text being typed.
func (t *Tracker) Target() string { return string(t.target) }

// Typed returns the runes entered so far.
func (t *Tracker) Typed() string { return string(t.typed) }

// TypedLen is the number of runes entered so far.
func (t *Tracker) TypedLen() int { return len(t.typed) }

// Started is the time of the first rune, or zero before typing starts.
func (t *Tracker) Started() time.Time { return t.start }

// Ended is the time of the completing rune, or zero until completion.
func (t *Tracker) Ended() time.Time { return t.end }

// TestIndex is the zero-based position within the test texts.
func (t *Tracker) TestIndex() int {
	return t.testIdx
}
