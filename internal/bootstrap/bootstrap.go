// Package bootstrap estimates sampling uncertainty of binomial rates by
// parametric resampling.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrUnavailable is returned when an estimate cannot be produced, either
// because a required bucket has no trials or because estimation was aborted.
var ErrUnavailable = errors.New("bootstrap: estimate unavailable")

// Defaults.
const (
	DefaultSamples   = 2000
	DefaultLower     = 0.025
	DefaultUpper     = 0.975
	DefaultBatchSize = 250
)

// Config controls resampling.
type Config struct {
	// Samples is the number of synthetic resamples.
	Samples int
	// Lower and Upper are the percentiles of the interval.
	Lower float64
	Upper float64
	// Workers bounds concurrent batches. Zero means GOMAXPROCS.
	Workers int
	// BatchSize is the number of resamples per unit of work. Cancellation is
	// only observed between batches.
	BatchSize int
}

// DefaultConfig returns a 2000-sample, 95% configuration.
func DefaultConfig() Config {
	return Config{
		Samples:   DefaultSamples,
		Lower:     DefaultLower,
		Upper:     DefaultUpper,
		BatchSize: DefaultBatchSize,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Samples <= 0 {
		return fmt.Errorf("samples must be > 0")
	}
	if c.Lower < 0 || c.Upper > 1 || c.Lower >= c.Upper {
		return fmt.Errorf("percentiles must satisfy 0 <= lower < upper <= 1")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("batch size must be >= 0")
	}
	return nil
}

// Estimate summarizes a resampled rate distribution.
type Estimate struct {
	Mean     float64
	Variance float64
	Low      float64
	High     float64
	Samples  int
}

// Improvement compares a baseline accuracy with a combined accuracy.
type Improvement struct {
	BaselineAccuracy float64
	CombinedAccuracy float64
	MeanDiff         float64
	Low              float64
	High             float64
	Samples          int
}

// Estimator draws resamples from a seeded source.
type Estimator struct {
	cfg Config

	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns an Estimator. A negative seed uses the current time.
func New(cfg Config, seed int64) (*Estimator, error) {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	return &Estimator{cfg: cfg, rnd: rand.New(rand.NewSource(seed))}, nil
}

// Config returns the estimator configuration.
func (e *Estimator) Config() Config {
	return e.cfg
}

// Rate resamples `trials` Bernoulli draws at the observed rate
// successes/trials and summarizes the resulting rates.
func (e *Estimator) Rate(ctx context.Context, successes, trials, samples int) (Estimate, error) {
	if trials <= 0 {
		return Estimate{}, fmt.Errorf("%w: no trials", ErrUnavailable)
	}
	if successes < 0 || successes > trials {
		return Estimate{}, fmt.Errorf("successes %d out of range for %d trials", successes, trials)
	}
	rates, err := e.Resample(ctx, float64(successes)/float64(trials), trials, samples)
	if err != nil {
		return Estimate{}, err
	}
	return Summarize(rates, e.cfg.Lower, e.cfg.Upper), nil
}

// Improvement resamples the baseline and combined accuracies independently,
// each at its own trial count, and summarizes combined-minus-baseline.
func (e *Estimator) Improvement(ctx context.Context, baseCorrect, baseTotal, combCorrect, combTotal, samples int) (Improvement, error) {
	if baseTotal <= 0 || combTotal <= 0 {
		return Improvement{}, fmt.Errorf("%w: baseline or combined bucket has no trials", ErrUnavailable)
	}
	if baseCorrect < 0 || baseCorrect > baseTotal || combCorrect < 0 || combCorrect > combTotal {
		return Improvement{}, fmt.Errorf("correct counts out of range")
	}
	baseAcc := float64(baseCorrect) / float64(baseTotal)
	combAcc := float64(combCorrect) / float64(combTotal)

	base, err := e.Resample(ctx, baseAcc, baseTotal, samples)
	if err != nil {
		return Improvement{}, err
	}
	comb, err := e.Resample(ctx, combAcc, combTotal, samples)
	if err != nil {
		return Improvement{}, err
	}
	diffs := make([]float64, len(base))
	for i := range base {
		diffs[i] = comb[i] - base[i]
	}
	est := Summarize(diffs, e.cfg.Lower, e.cfg.Upper)
	return Improvement{
		BaselineAccuracy: baseAcc,
		CombinedAccuracy: combAcc,
		MeanDiff:         est.Mean,
		Low:              est.Low,
		High:             est.High,
		Samples:          est.Samples,
	}, nil
}

// Resample returns `samples` empirical rates, each from n Bernoulli(p)
// trials, in draw order. samples <= 0 uses the configured count. If ctx ends
// before every batch completes the whole run is discarded.
func (e *Estimator) Resample(ctx context.Context, p float64, n, samples int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: no trials", ErrUnavailable)
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return nil, fmt.Errorf("rate %v out of range", p)
	}
	if samples <= 0 {
		samples = e.cfg.Samples
	}

	batch := e.cfg.BatchSize
	batches := (samples + batch - 1) / batch
	seeds := e.seeds(batches)

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	rates := make([]float64, samples)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for b := 0; b < batches; b++ {
		start := b * batch
		end := start + batch
		if end > samples {
			end = samples
		}
		seed := seeds[b]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rnd := rand.New(rand.NewSource(seed))
			for i := start; i < end; i++ {
				rates[i] = resampleOnce(rnd, p, n)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return rates, nil
}

func (e *Estimator) seeds(n int) []int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]int64, n)
	for i := range out {
		out[i] = e.rnd.Int63()
	}
	return out
}

func resampleOnce(rnd *rand.Rand, p float64, n int) float64 {
	hits := 0
	for j := 0; j < n; j++ {
		if rnd.Float64() < p {
			hits++
		}
	}
	return float64(hits) / float64(n)
}

// Summarize computes mean, population variance and the percentile interval
// of values. The input is not modified.
func Summarize(values []float64, lower, upper float64) Estimate {
	n := len(values)
	if n == 0 {
		return Estimate{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mean := 0.0
	for _, v := range sorted {
		mean += v
	}
	mean /= float64(n)
	variance := 0.0
	for _, v := range sorted {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)

	return Estimate{
		Mean:     mean,
		Variance: variance,
		Low:      sorted[percentileIndex(n, lower)],
		High:     sorted[percentileIndex(n, upper)],
		Samples:  n,
	}
}

func percentileIndex(n int, q float64) int {
	idx := int(math.Floor(float64(n) * q))
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
