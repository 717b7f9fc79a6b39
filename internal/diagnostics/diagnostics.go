// Package diagnostics derives information-theoretic summaries of the letter error model.
package diagnostics

import (
	"math"

	"github.com/verte-zerg/adaptype/internal/letters"
)

// Band classifies how broadly errors are spread across letters.
type Band string

// Entropy bands.
const (
	BandHigh     Band = "high"
	BandModerate Band = "moderate"
	BandLow      Band = "low"
)

const (
	highBandThreshold     = 0.85
	moderateBandThreshold = 0.6
)

// MaxEntropy is log2 of the alphabet size.
var MaxEntropy = math.Log2(letters.Count)

// Distribution holds everything derived from one model snapshot.
type Distribution struct {
	// Raw posterior error means.
	Errors []float64
	// Errors normalized to sum to 1.
	Normalized []float64
	Entropy    float64
	KL         float64
	// Per-letter contribution to KL (may be negative).
	KLContrib []float64
	// KLContrib with negative terms clamped to zero.
	KLClamped []float64
}

// Compute derives the distribution summaries from the model.
func Compute(m *letters.Model) Distribution {
	return FromErrors(m.ErrorProbabilities())
}

// FromErrors derives the summaries from raw per-letter error probabilities.
func FromErrors(errs []float64) Distribution {
	raw := append([]float64(nil), errs...)
	norm := Normalize(raw)
	contrib := KLContributions(norm)
	clamped := make([]float64, len(contrib))
	for i, c := range contrib {
		clamped[i] = math.Max(c, 0)
	}
	kl := 0.0
	for _, c := range contrib {
		kl += c
	}
	return Distribution{
		Errors:     raw,
		Normalized: norm,
		Entropy:    Entropy(norm),
		KL:         kl,
		KLContrib:  contrib,
		KLClamped:  clamped,
	}
}

// Normalize scales values to sum to 1. A zero or non-finite sum is treated as 1.
func Normalize(values []float64) []float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		sum = 1
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / sum
	}
	return out
}

// Entropy returns the Shannon entropy in bits, skipping zero terms.
func Entropy(p []float64) float64 {
	h := 0.0
	for _, v := range p {
		if v > 0 {
			h -= v * math.Log2(v)
		}
	}
	return h
}

// KLContributions returns p[i]*log2(p[i]/u) against the uniform distribution
// over the alphabet, with zero for empty terms.
func KLContributions(p []float64) []float64 {
	uniform := 1.0 / float64(letters.Count)
	out := make([]float64, len(p))
	for i, v := range p {
		if v > 0 {
			out[i] = v * math.Log2(v/uniform)
		}
	}
	return out
}

// NormalizedEntropy returns entropy relative to MaxEntropy.
func (d Distribution) NormalizedEntropy() float64 {
	if MaxEntropy <= 0 {
		return 0
	}
	return d.Entropy / MaxEntropy
}

// Band classifies the normalized entropy.
func (d Distribution) Band() Band {
	return BandFor(d.NormalizedEntropy())
}

// KLNorm returns the clamped per-letter KL scaled by its maximum into [0,1].
// All zeros when no letter is over-represented.
func (d Distribution) KLNorm() []float64 {
	out := make([]float64, len(d.KLClamped))
	maxKL := 0.0
	for _, v := range d.KLClamped {
		if v > maxKL {
			maxKL = v
		}
	}
	if maxKL <= 0 {
		return out
	}
	for i, v := range d.KLClamped {
		out[i] = v / maxKL
	}
	return out
}

// BandFor classifies a normalized entropy value.
func BandFor(normalized float64) Band {
	switch {
	case normalized > highBandThreshold:
		return BandHigh
	case normalized > moderateBandThreshold:
		return BandModerate
	default:
		return BandLow
	}
}

// Advice returns the fixed advisory message for a band.
func Advice(b Band) string {
	switch b {
	case BandHigh:
		return "High entropy detected: your errors are spread across many letters. Practice text keeps exploring broadly to learn your typing profile."
	case BandModerate:
		return "Moderate entropy: your errors concentrate on some letters but remain fairly distributed. Practice text balances focused drills with exploration."
	default:
		return "Low entropy detected: your errors are concentrated on a few letters. Practice text will heavily emphasize them."
	}
}
