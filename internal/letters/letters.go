// Package letters tracks a Beta belief over the error rate of each lowercase letter.
package letters

import "fmt"

// Count is the number of tracked letters (a-z).
const Count = 26

// Model holds one Beta(alpha, beta) belief per letter. Alpha counts errors and
// beta counts correct keystrokes, each starting from a pseudo-count of 1.
type Model struct {
	alpha [Count]int
	beta  [Count]int
}

// Snapshot is an immutable copy of the model parameters.
type Snapshot struct {
	Alpha [Count]int
	Beta  [Count]int
}

// New returns a model with a uniform Beta(1,1) prior for every letter.
func New() *Model {
	m := &Model{}
	for i := 0; i < Count; i++ {
		m.alpha[i] = 1
		m.beta[i] = 1
	}
	return m
}

// FromCounts rebuilds a model from observed error and correct counts.
func FromCounts(incorrect, correct [Count]int) (*Model, error) {
	m := New()
	for i := 0; i < Count; i++ {
		if incorrect[i] < 0 || correct[i] < 0 {
			return nil, fmt.Errorf("negative count for letter %c", Letter(i))
		}
		m.alpha[i] += incorrect[i]
		m.beta[i] += correct[i]
	}
	return m, nil
}

// Index maps a rune to its letter index, case-insensitively. It returns -1
// for anything outside a-z.
func Index(r rune) int {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r - 'a')
	case r >= 'A' && r <= 'Z':
		return int(r - 'A')
	default:
		return -1
	}
}

// Letter returns the lowercase letter for an index.
func Letter(i int) rune {
	mustIndex(i)
	return rune('a' + i)
}

// Update records one observed keystroke for letter i.
func (m *Model) Update(i int, correct bool) {
	mustIndex(i)
	if correct {
		m.beta[i]++
		return
	}
	m.alpha[i]++
}

// Alpha returns the error pseudo-count for letter i.
func (m *Model) Alpha(i int) int {
	mustIndex(i)
	return m.alpha[i]
}

// Beta returns the correct pseudo-count for letter i.
func (m *Model) Beta(i int) int {
	mustIndex(i)
	return m.beta[i]
}

// Attempts returns the number of observed keystrokes for letter i.
func (m *Model) Attempts(i int) int {
	mustIndex(i)
	return m.alpha[i] + m.beta[i] - 2
}

// ErrorProbability is the posterior mean of the error rate for letter i.
func (m *Model) ErrorProbability(i int) float64 {
	mustIndex(i)
	return float64(m.alpha[i]) / float64(m.alpha[i]+m.beta[i])
}

// CorrectProbability is the posterior mean of the correct rate for letter i.
// It is derived from ErrorProbability so the pair always sums to exactly 1.
func (m *Model) CorrectProbability(i int) float64 {
	return 1 - m.ErrorProbability(i)
}

// PosteriorVariance returns the Beta variance for letter i.
func (m *Model) PosteriorVariance(i int) float64 {
	mustIndex(i)
	a := float64(m.alpha[i])
	b := float64(m.beta[i])
	total := a + b
	return (a * b) / (total * total * (total + 1))
}

// ErrorProbabilities returns the posterior error mean for every letter.
func (m *Model) ErrorProbabilities() []float64 {
	out := make([]float64, Count)
	for i := range out {
		out[i] = m.ErrorProbability(i)
	}
	return out
}

// CorrectProbabilities returns the posterior correct mean for every letter.
func (m *Model) CorrectProbabilities() []float64 {
	out := make([]float64, Count)
	for i := range out {
		out[i] = m.CorrectProbability(i)
	}
	return out
}

// Snapshot copies the current parameters.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{Alpha: m.alpha, Beta: m.beta}
}

// Clone returns an independent copy of the model.
func (m *Model) Clone() *Model {
	c := *m
	return &c
}

// Model rebuilds a read-only model view from the snapshot.
func (s Snapshot) Model() *Model {
	return &Model{alpha: s.Alpha, beta: s.Beta}
}

func mustIndex(i int) {
	if i < 0 || i >= Count {
		panic(fmt.Sprintf("letters: index %d out of range [0,%d)", i, Count))
	}
}
