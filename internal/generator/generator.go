// Package generator builds adaptive practice text from the letter error model.
package generator

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/adaptype/internal/diagnostics"
	"github.com/verte-zerg/adaptype/internal/letters"
	"github.com/verte-zerg/adaptype/internal/wordlist"
)

const (
	// Letters seen fewer than rareLetterCoverage times in the vocabulary get
	// rareLetterBoost so they are not starved of sampling weight.
	rareLetterCoverage = 10
	rareLetterBoost    = 2.0

	klBoostScale = 2.0
)

// Options control the size and decoration of generated text.
type Options struct {
	MinWords int
	MaxWords int
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
}

// DefaultOptions returns 50-100 undecorated words.
func DefaultOptions() Options {
	return Options{MinWords: 50, MaxWords: 100}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.MinWords <= 0 {
		return fmt.Errorf("min words must be > 0")
	}
	if o.MaxWords < o.MinWords {
		return fmt.Errorf("max words must be >= min words")
	}
	if o.CapsPct < 0 || o.CapsPct > 1 {
		return fmt.Errorf("caps must be between 0 and 1")
	}
	if o.PunctPct < 0 || o.PunctPct > 1 {
		return fmt.Errorf("punct must be between 0 and 1")
	}
	if o.PunctPct > 0 && len(o.PunctSet) == 0 {
		return fmt.Errorf("punct set must not be empty when punct > 0")
	}
	return nil
}

// Generator produces practice text weighted toward error-prone letters.
type Generator struct {
	rnd      *rand.Rand
	vocab    wordlist.Vocabulary
	opts     Options
	coverage [letters.Count]int
	boost    [letters.Count]float64
}

// New returns a Generator seeded with the current time.
func New(vocab wordlist.Vocabulary, opts Options) (*Generator, error) {
	return NewWithSeed(vocab, opts, time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed.
func NewWithSeed(vocab wordlist.Vocabulary, opts Options, seed int64) (*Generator, error) {
	if vocab.Len() == 0 {
		return nil, fmt.Errorf("vocabulary is empty")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		rnd:      rand.New(rand.NewSource(seed)),
		vocab:    vocab,
		opts:     opts,
		coverage: Coverage(vocab),
	}
	g.boost = BoostFactors(g.coverage)
	return g, nil
}

// Coverage counts occurrences of each letter across the vocabulary.
func Coverage(vocab wordlist.Vocabulary) [letters.Count]int {
	var cov [letters.Count]int
	for i := 0; i < vocab.Len(); i++ {
		for _, r := range vocab.At(i) {
			if idx := letters.Index(r); idx >= 0 {
				cov[idx]++
			}
		}
	}
	return cov
}

// BoostFactors maps coverage to the rare-letter multiplier.
func BoostFactors(cov [letters.Count]int) [letters.Count]float64 {
	var boost [letters.Count]float64
	for i, c := range cov {
		boost[i] = 1.0
		if c < rareLetterCoverage {
			boost[i] = rareLetterBoost
		}
	}
	return boost
}

// Coverage returns the precomputed letter coverage.
func (g *Generator) Coverage() [letters.Count]int {
	return g.coverage
}

// BoostFactors returns the precomputed rare-letter multipliers.
func (g *Generator) BoostFactors() [letters.Count]float64 {
	return g.boost
}

// Weights returns the unnormalized sampling weight of every vocabulary word.
func (g *Generator) Weights(d diagnostics.Distribution) []float64 {
	klNorm := d.KLNorm()
	entropyBoost := 1 + d.NormalizedEntropy()
	var letterWeight [letters.Count]float64
	for i := 0; i < letters.Count; i++ {
		klBoost := 1 + klNorm[i]*klBoostScale
		letterWeight[i] = d.Errors[i] * g.boost[i] * klBoost * entropyBoost
	}

	weights := make([]float64, g.vocab.Len())
	for w := range weights {
		sum := 0.0
		for _, r := range g.vocab.At(w) {
			if idx := letters.Index(r); idx >= 0 {
				sum += letterWeight[idx]
			}
		}
		weights[w] = sum
	}
	return weights
}

// Probabilities normalizes Weights into a distribution over the vocabulary,
// falling back to uniform when the weights are degenerate.
func (g *Generator) Probabilities(d diagnostics.Distribution) []float64 {
	return normalizeOrUniform(g.Weights(d))
}

// Generate returns the next practice text for the model.
func (g *Generator) Generate(m *letters.Model) string {
	probs := g.Probabilities(diagnostics.Compute(m))
	return strings.Join(g.Sample(probs, g.WordCount()), " ")
}

// WordCount draws a word count uniformly from [MinWords, MaxWords].
func (g *Generator) WordCount() int {
	return g.opts.MinWords + g.rnd.Intn(g.opts.MaxWords-g.opts.MinWords+1)
}

// Sample draws count words with replacement by inverse-transform sampling.
func (g *Generator) Sample(probs []float64, count int) []string {
	cum := make([]float64, len(probs))
	acc := 0.0
	last := 0
	for i, p := range probs {
		acc += p
		cum[i] = acc
		if p > 0 {
			last = i
		}
	}

	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		r := g.rnd.Float64()
		idx := last
		for j, c := range cum {
			if r < c && probs[j] > 0 {
				idx = j
				break
			}
		}
		word := g.vocab.At(idx)
		word = applyCaps(g.rnd, word, g.opts.CapsPct)
		word = applyPunct(g.rnd, word, g.opts.PunctPct, g.opts.PunctSet)
		result = append(result, word)
	}
	return result
}

func normalizeOrUniform(weights []float64) []float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	probs := make([]float64, len(weights))
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		for i := range probs {
			probs[i] = 1 / float64(len(probs))
		}
		return probs
	}
	for i, w := range weights {
		probs[i] = w / total
	}
	return probs
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
