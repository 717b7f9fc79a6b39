// Package session scores completed typing sessions and drives the
// per-session input lifecycle.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/adaptype/internal/letters"
)

// ErrLengthMismatch is returned when the submission does not cover the target exactly.
var ErrLengthMismatch = errors.New("session: submitted length does not match target")

// Composite score weights.
const (
	SpeedWeight    = 0.3
	AccuracyWeight = 0.7
)

// Result holds the metrics of one scored session.
type Result struct {
	CorrectChars int
	TotalChars   int
	ElapsedSec   float64
	Accuracy     float64
	WPM          float64
	TypingScore  float64

	LetterCorrect   [letters.Count]int
	LetterIncorrect [letters.Count]int
}

// Score compares submitted against target and feeds every letter position
// into m. On length mismatch m is left untouched.
func Score(m *letters.Model, target, submitted string, start, end time.Time) (Result, error) {
	want := []rune(target)
	got := []rune(submitted)
	if len(want) != len(got) {
		return Result{}, fmt.Errorf("%w: target %d, submitted %d", ErrLengthMismatch, len(want), len(got))
	}

	var res Result
	res.TotalChars = len(want)
	for i, expected := range want {
		ok := expected == got[i]
		if ok {
			res.CorrectChars++
		}
		idx := letters.Index(expected)
		if idx < 0 {
			continue
		}
		m.Update(idx, ok)
		if ok {
			res.LetterCorrect[idx]++
		} else {
			res.LetterIncorrect[idx]++
		}
	}

	res.ElapsedSec = Elapsed(start, end)
	res.Accuracy = Accuracy(res.CorrectChars, res.TotalChars)
	res.WPM = WPM(res.TotalChars, res.ElapsedSec)
	res.TypingScore = TypingScore(res.WPM, res.Accuracy)
	return res, nil
}

// Elapsed returns seconds between the first keystroke and completion.
// A zero start means no keystroke was recorded.
func Elapsed(start, end time.Time) float64 {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return 0
	}
	return end.Sub(start).Seconds()
}

// Accuracy returns correct/total, or 0 when total is 0.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// WPM uses five characters per word.
func WPM(total int, elapsedSec float64) float64 {
	if elapsedSec <= 0 {
		return 0
	}
	return (float64(total) / 5) / (elapsedSec / 60)
}

// TypingScore blends speed and accuracy into one number.
func TypingScore(wpm, accuracy float64) float64 {
	return wpm*SpeedWeight + accuracy*100*AccuracyWeight
}
