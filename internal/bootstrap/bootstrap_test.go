package bootstrap

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newEstimator(t *testing.T, cfg Config, seed int64) *Estimator {
	t.Helper()
	est, err := New(cfg, seed)
	require.NoError(t, err)
	return est
}

func TestSummarizePercentiles(t *testing.T) {
	values := make([]float64, 1000)
	for i := range values {
		// Reverse order to make sure Summarize sorts a copy.
		values[i] = float64(999 - i)
	}
	est := Summarize(values, 0.025, 0.975)
	assert.Equal(t, 25.0, est.Low)
	assert.Equal(t, 975.0, est.High)
	assert.InDelta(t, 499.5, est.Mean, 1e-9)
	assert.Equal(t, 1000, est.Samples)
	assert.Equal(t, 0.0, values[999], "input must stay unsorted")

	one := Summarize([]float64{0.3}, 0.025, 0.975)
	assert.Equal(t, 0.3, one.Low)
	assert.Equal(t, 0.3, one.High)
	assert.Zero(t, one.Variance)
	assert.Equal(t, Estimate{}, Summarize(nil, 0.025, 0.975))
}

func TestRateDegenerateProbabilities(t *testing.T) {
	est := newEstimator(t, DefaultConfig(), 1)
	ctx := context.Background()

	all, err := est.Rate(ctx, 20, 20, 200)
	require.NoError(t, err)
	assert.Equal(t, 1.0, all.Mean)
	assert.Equal(t, 1.0, all.Low)
	assert.Equal(t, 1.0, all.High)
	assert.Zero(t, all.Variance)

	none, err := est.Rate(ctx, 0, 20, 200)
	require.NoError(t, err)
	assert.Zero(t, none.Mean)
	assert.Zero(t, none.High)
}

func TestRateMatchesBinomialMoments(t *testing.T) {
	est := newEstimator(t, DefaultConfig(), 42)
	got, err := est.Rate(context.Background(), 30, 100, 4000)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, got.Mean, 0.005)
	// Var of a binomial proportion is p(1-p)/n.
	assert.InDelta(t, 0.3*0.7/100, got.Variance, 0.0004)
	assert.Less(t, got.Low, 0.3)
	assert.Greater(t, got.High, 0.3)
	assert.Equal(t, 4000, got.Samples)
}

func TestRateUnavailableWithoutTrials(t *testing.T) {
	est := newEstimator(t, DefaultConfig(), 1)
	_, err := est.Rate(context.Background(), 0, 0, 100)
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = est.Rate(context.Background(), 5, 3, 100)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestResampleDeterministicAcrossWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchSize = 16
	cfg.Workers = 1
	a, err := newEstimator(t, cfg, 99).Resample(context.Background(), 0.4, 50, 300)
	require.NoError(t, err)
	cfg.Workers = 8
	b, err := newEstimator(t, cfg, 99).Resample(context.Background(), 0.4, 50, 300)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestResampleCanceledIsUnavailable(t *testing.T) {
	est := newEstimator(t, DefaultConfig(), 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rates, err := est.Resample(ctx, 0.5, 100, 1000)
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rates)
}

func TestResampleDeadlineAbortsWholeEstimate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 1
	cfg.BatchSize = 1
	est := newEstimator(t, cfg, 5)
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	est2, err := est.Rate(ctx, 500_000, 1_000_000, 1000)
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Estimate{}, est2)
}

func TestImprovement(t *testing.T) {
	est := newEstimator(t, DefaultConfig(), 8)
	got, err := est.Improvement(context.Background(), 80, 100, 270, 300, 2000)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, got.BaselineAccuracy, 1e-12)
	assert.InDelta(t, 0.9, got.CombinedAccuracy, 1e-12)
	assert.InDelta(t, 0.1, got.MeanDiff, 0.01)
	assert.Less(t, got.Low, got.MeanDiff)
	assert.Greater(t, got.High, got.MeanDiff)
	assert.Equal(t, 2000, got.Samples)
}

func TestImprovementUnavailable(t *testing.T) {
	est := newEstimator(t, DefaultConfig(), 8)
	_, err := est.Improvement(context.Background(), 0, 0, 10, 20, 100)
	require.ErrorIs(t, err, ErrUnavailable)
	_, err = est.Improvement(context.Background(), 5, 10, 0, 0, 100)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	cfg.Lower = 0.9
	cfg.Upper = 0.1
	require.Error(t, cfg.Validate())
	_, err := New(Config{Samples: 0, Lower: 0.025, Upper: 0.975}, 1)
	require.Error(t, err)
}

// The parametric bootstrap interval should cover the true rate in roughly
// 95% of repeated experiments.
func TestIntervalCoverage(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}
	const (
		trueRate    = 0.1
		trials      = 1000
		experiments = 200
		samples     = 500
	)
	data := rand.New(rand.NewSource(2024))
	est := newEstimator(t, DefaultConfig(), 2025)
	covered := 0
	for e := 0; e < experiments; e++ {
		errorsSeen := 0
		for j := 0; j < trials; j++ {
			if data.Float64() < trueRate {
				errorsSeen++
			}
		}
		got, err := est.Rate(context.Background(), errorsSeen, trials, samples)
		require.NoError(t, err)
		if got.Low <= trueRate && trueRate <= got.High {
			covered++
		}
	}
	coverage := float64(covered) / experiments
	// Four standard errors around 0.95 for 200 experiments.
	assert.InDelta(t, 0.95, coverage, 4*math.Sqrt(0.95*0.05/experiments), "coverage %v", coverage)
}
