// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Phase is the regime a session was typed in.
type Phase string

// Phases.
const (
	PhaseTest     Phase = "test"
	PhasePractice Phase = "practice"
)

// Label prefixes used in session labels.
const (
	TestLabelPrefix     = "Test"
	PracticeLabelPrefix = "Practice"
)

// Label formats the session label, e.g. "Test 2" or "Practice 5".
func (p Phase) Label(k int) string {
	if p == PhaseTest {
		return fmt.Sprintf("%s %d", TestLabelPrefix, k)
	}
	return fmt.Sprintf("%s %d", PracticeLabelPrefix, k)
}

// Config defines practice settings.
type Config struct {
	VocabularyPath string
	MinWordLength  int
	MinWords       int
	MaxWords       int
	CapsPct        float64
	PunctPct       float64
	PunctSet       string
	Resume         bool

	BootstrapSamples int
	BootstrapWorkers int
	BootstrapTimeout time.Duration
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
	RunID       string
}

// SessionRecord captures one completed session. Records are never mutated
// after creation.
type SessionRecord struct {
	ID           int64     `json:"id,omitempty" yaml:"id,omitempty"`
	RunID        string    `json:"run_id" yaml:"run_id"`
	Label        string    `json:"label" yaml:"label"`
	Phase        Phase     `json:"phase" yaml:"phase"`
	Sequence     int       `json:"sequence" yaml:"sequence"`
	StartedAt    time.Time `json:"started_at" yaml:"started_at"`
	EndedAt      time.Time `json:"ended_at" yaml:"ended_at"`
	ElapsedSec   float64   `json:"elapsed_sec" yaml:"elapsed_sec"`
	CorrectChars int       `json:"correct_chars" yaml:"correct_chars"`
	TotalChars   int       `json:"total_chars" yaml:"total_chars"`
	WPM          float64   `json:"wpm" yaml:"wpm"`
	Accuracy     float64   `json:"accuracy" yaml:"accuracy"`
	Entropy      float64   `json:"entropy" yaml:"entropy"`
	KLDivergence float64   `json:"kl_divergence" yaml:"kl_divergence"`
	TypingScore  float64   `json:"typing_score" yaml:"typing_score"`

	// Per-letter snapshot at completion time, indexed a-z.
	ErrorProbs      []float64 `json:"error_probs" yaml:"error_probs"`
	NormalizedProbs []float64 `json:"normalized_probs" yaml:"normalized_probs"`
	CorrectProbs    []float64 `json:"correct_probs" yaml:"correct_probs"`

	// Letter outcomes observed in this session only, indexed a-z.
	LetterCorrect   []int `json:"letter_correct" yaml:"letter_correct"`
	LetterIncorrect []int `json:"letter_incorrect" yaml:"letter_incorrect"`
}

// IsTest reports whether the record belongs to the fixed test set.
func (r SessionRecord) IsTest() bool {
	return strings.HasPrefix(r.Label, TestLabelPrefix)
}

// IsPractice reports whether the record is an adaptive practice session.
func (r SessionRecord) IsPractice() bool {
	return strings.HasPrefix(r.Label, PracticeLabelPrefix)
}

// LetterDiagnostic is the read-only per-letter projection for reporting.
type LetterDiagnostic struct {
	Letter            string  `json:"letter" yaml:"letter"`
	Attempts          int     `json:"attempts" yaml:"attempts"`
	ErrorRate         float64 `json:"error_rate" yaml:"error_rate"`
	EmpiricalError    float64 `json:"empirical_error" yaml:"empirical_error"`
	NormalizedError   float64 `json:"normalized_error" yaml:"normalized_error"`
	KLContribution    float64 `json:"kl_contribution" yaml:"kl_contribution"`
	PosteriorMean     float64 `json:"posterior_mean" yaml:"posterior_mean"`
	PosteriorVariance float64 `json:"posterior_variance" yaml:"posterior_variance"`
}

// EntropySummary describes how errors spread across letters.
type EntropySummary struct {
	Entropy           float64 `json:"entropy" yaml:"entropy"`
	NormalizedEntropy float64 `json:"normalized_entropy" yaml:"normalized_entropy"`
	KLDivergence      float64 `json:"kl_divergence" yaml:"kl_divergence"`
	Band              string  `json:"band" yaml:"band"`
	Advice            string  `json:"advice" yaml:"advice"`
}

// Uncertainty is the bootstrap summary of one letter's error rate.
type Uncertainty struct {
	Letter   string  `json:"letter" yaml:"letter"`
	Attempts int     `json:"attempts" yaml:"attempts"`
	Mean     float64 `json:"mean" yaml:"mean"`
	Variance float64 `json:"variance" yaml:"variance"`
	CI95Low  float64 `json:"ci95_low" yaml:"ci95_low"`
	CI95High float64 `json:"ci95_high" yaml:"ci95_high"`
}

// Improvement is the bootstrap comparison of test-only and combined accuracy.
type Improvement struct {
	BaselineAccuracy float64 `json:"baseline_accuracy" yaml:"baseline_accuracy"`
	CombinedAccuracy float64 `json:"combined_accuracy" yaml:"combined_accuracy"`
	MeanDiff         float64 `json:"mean_diff" yaml:"mean_diff"`
	CI95Low          float64 `json:"ci95_low" yaml:"ci95_low"`
	CI95High         float64 `json:"ci95_high" yaml:"ci95_high"`
	Samples          int     `json:"samples" yaml:"samples"`
}
