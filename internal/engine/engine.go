// Package engine is the entry point to the adaptive practice core. It owns
// the letter model and the session ledger and serializes every write to them.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/adaptype/internal/bootstrap"
	"github.com/verte-zerg/adaptype/internal/diagnostics"
	"github.com/verte-zerg/adaptype/internal/generator"
	"github.com/verte-zerg/adaptype/internal/history"
	"github.com/verte-zerg/adaptype/internal/letters"
	"github.com/verte-zerg/adaptype/internal/logging"
	"github.com/verte-zerg/adaptype/internal/metrics"
	"github.com/verte-zerg/adaptype/internal/model"
	"github.com/verte-zerg/adaptype/internal/session"
	"github.com/verte-zerg/adaptype/internal/wordlist"
)

// Recorder persists completed sessions.
type Recorder interface {
	InsertSession(ctx context.Context, rec model.SessionRecord) (int64, error)
}

// Source provides previously stored sessions for resuming.
type Source interface {
	ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionRecord, error)
	LetterTotals(ctx context.Context, ids []int64) (incorrect, correct [letters.Count]int, err error)
}

// Options configures an Engine. Zero values pick defaults.
type Options struct {
	Tests      []string
	Vocabulary wordlist.Vocabulary
	Generator  generator.Options
	Bootstrap  bootstrap.Config
	// Timeout bounds each bootstrap estimate; zero means no limit.
	Timeout time.Duration
	// Seed drives text generation and resampling; negative means time based.
	Seed int64

	RunID    string
	Recorder Recorder
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

// DefaultOptions uses the built-in test texts and vocabulary.
func DefaultOptions() Options {
	return Options{
		Tests:      wordlist.TestParagraphs,
		Vocabulary: wordlist.Default(),
		Generator:  generator.DefaultOptions(),
		Bootstrap:  bootstrap.DefaultConfig(),
		Seed:       -1,
	}
}

// Engine is safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	model  *letters.Model
	ledger *history.Ledger
	gen    *generator.Generator

	est      *bootstrap.Estimator
	timeout  time.Duration
	tests    []string
	runID    string
	recorder Recorder
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// New builds an engine with a fresh uniform model and an empty ledger.
func New(opts Options) (*Engine, error) {
	if opts.Vocabulary.Len() == 0 {
		opts.Vocabulary = wordlist.Default()
	}
	if opts.Generator.MinWords == 0 && opts.Generator.MaxWords == 0 {
		opts.Generator = generator.DefaultOptions()
	}
	if opts.Bootstrap.Samples == 0 {
		workers := opts.Bootstrap.Workers
		opts.Bootstrap = bootstrap.DefaultConfig()
		opts.Bootstrap.Workers = workers
	}

	seed := opts.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	gen, err := generator.NewWithSeed(opts.Vocabulary, opts.Generator, seed)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	est, err := bootstrap.New(opts.Bootstrap, seed+1)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Engine{
		model:    letters.New(),
		ledger:   history.New(),
		gen:      gen,
		est:      est,
		timeout:  opts.Timeout,
		tests:    append([]string(nil), opts.Tests...),
		runID:    runID,
		recorder: opts.Recorder,
		metrics:  opts.Metrics,
		logger:   logging.OrNop(opts.Logger).With(zap.String("run_id", runID)),
	}, nil
}

// RunID identifies this engine's sessions in the store.
func (e *Engine) RunID() string {
	return e.runID
}

// Resume replaces the model and ledger with everything src has stored.
func (e *Engine) Resume(ctx context.Context, src Source) error {
	records, err := src.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	incorrect, correct, err := src.LetterTotals(ctx, nil)
	if err != nil {
		return fmt.Errorf("letter totals: %w", err)
	}
	m, err := letters.FromCounts(incorrect, correct)
	if err != nil {
		return err
	}
	ledger := history.New()
	for _, rec := range records {
		ledger.Append(rec)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.model = m
	e.ledger = ledger
	e.logger.Info("resumed history", zap.Int("sessions", len(records)))
	return nil
}

// Phase reports the phase and label the next submitted session will get.
func (e *Engine) Phase() (model.Phase, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	phase, k := e.nextPhase()
	return phase, phase.Label(k)
}

func (e *Engine) nextPhase() (model.Phase, int) {
	tests := e.ledger.Count(model.TestLabelPrefix)
	practice := e.ledger.Count(model.PracticeLabelPrefix)
	if practice == 0 && tests < len(e.tests) {
		return model.PhaseTest, tests + 1
	}
	return model.PhasePractice, practice + 1
}

// NewTracker returns an input tracker positioned after the test texts that
// already have a record.
func (e *Engine) NewTracker() *session.Tracker {
	e.mu.Lock()
	var remaining []string
	if phase, k := e.nextPhase(); phase == model.PhaseTest {
		remaining = e.tests[k-1:]
	}
	e.mu.Unlock()
	return session.NewTracker(remaining, e.NextPracticeText)
}

// SubmitSession scores a completed text, updates the model and appends the
// record to the ledger. A length mismatch changes nothing.
func (e *Engine) SubmitSession(ctx context.Context, target, submitted string, start, end time.Time) (model.SessionRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.model.Clone()
	res, err := session.Score(next, target, submitted, start, end)
	if err != nil {
		e.metrics.ObserveRejected()
		e.logger.Debug("submission rejected", zap.Error(err))
		return model.SessionRecord{}, err
	}

	phase, k := e.nextPhase()
	dist := diagnostics.Compute(next)
	rec := model.SessionRecord{
		RunID:           e.runID,
		Label:           phase.Label(k),
		Phase:           phase,
		Sequence:        e.ledger.Len() + 1,
		StartedAt:       start,
		EndedAt:         end,
		ElapsedSec:      res.ElapsedSec,
		CorrectChars:    res.CorrectChars,
		TotalChars:      res.TotalChars,
		WPM:             res.WPM,
		Accuracy:        res.Accuracy,
		Entropy:         dist.Entropy,
		KLDivergence:    dist.KL,
		TypingScore:     res.TypingScore,
		ErrorProbs:      dist.Errors,
		NormalizedProbs: dist.Normalized,
		CorrectProbs:    next.CorrectProbabilities(),
		LetterCorrect:   res.LetterCorrect[:],
		LetterIncorrect: res.LetterIncorrect[:],
	}

	if e.recorder != nil {
		id, err := e.recorder.InsertSession(ctx, rec)
		if err != nil {
			// The in-memory ledger stays authoritative.
			e.logger.Warn("failed to persist session", zap.String("label", rec.Label), zap.Error(err))
		} else {
			rec.ID = id
		}
	}

	e.model = next
	e.ledger.Append(rec)
	e.metrics.ObserveSession(string(phase), rec.Accuracy, rec.WPM, rec.Entropy)
	e.logger.Debug("session scored",
		zap.String("label", rec.Label),
		zap.Int("correct", rec.CorrectChars),
		zap.Int("total", rec.TotalChars),
		zap.Float64("wpm", rec.WPM),
		zap.Float64("entropy", rec.Entropy))
	return rec, nil
}

// NextPracticeText generates a practice text from the current model.
func (e *Engine) NextPracticeText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	text := e.gen.Generate(e.model)
	e.metrics.ObserveGenerated(len(strings.Fields(text)))
	return text
}

// Snapshot returns the current model parameters.
func (e *Engine) Snapshot() letters.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.model.Snapshot()
}

// History returns every record in completion order.
func (e *Engine) History() []model.SessionRecord {
	e.mu.Lock()
	ledger := e.ledger
	e.mu.Unlock()
	return ledger.Records()
}

// LetterDiagnostics projects the model letter by letter.
func (e *Engine) LetterDiagnostics() []model.LetterDiagnostic {
	return Diagnose(e.Snapshot().Model())
}

// Diagnose projects m letter by letter.
func Diagnose(m *letters.Model) []model.LetterDiagnostic {
	dist := diagnostics.Compute(m)
	out := make([]model.LetterDiagnostic, letters.Count)
	for i := range out {
		attempts := m.Attempts(i)
		empirical := 0.0
		if attempts > 0 {
			empirical = float64(m.Alpha(i)-1) / float64(attempts)
		}
		out[i] = model.LetterDiagnostic{
			Letter:            string(letters.Letter(i)),
			Attempts:          attempts,
			ErrorRate:         m.ErrorProbability(i),
			EmpiricalError:    empirical,
			NormalizedError:   dist.Normalized[i],
			KLContribution:    dist.KLContrib[i],
			PosteriorMean:     m.CorrectProbability(i),
			PosteriorVariance: m.PosteriorVariance(i),
		}
	}
	return out
}

// EntropySummary classifies how widely errors are spread.
func (e *Engine) EntropySummary() model.EntropySummary {
	return Summarize(diagnostics.Compute(e.Snapshot().Model()))
}

// Summarize converts a distribution into the reporting summary.
func Summarize(dist diagnostics.Distribution) model.EntropySummary {
	band := dist.Band()
	return model.EntropySummary{
		Entropy:           dist.Entropy,
		NormalizedEntropy: dist.NormalizedEntropy(),
		KLDivergence:      dist.KL,
		Band:              string(band),
		Advice:            diagnostics.Advice(band),
	}
}

// EstimateLetterUncertainty bootstraps the error rate of one letter. Letters
// without attempts are unavailable. samples <= 0 uses the configured count.
func (e *Engine) EstimateLetterUncertainty(ctx context.Context, letter, samples int) (model.Uncertainty, error) {
	snap := e.Snapshot()
	return e.estimateLetter(ctx, snap.Model(), letter, samples)
}

// EstimateAllLetters bootstraps every letter with at least one attempt.
func (e *Engine) EstimateAllLetters(ctx context.Context, samples int) ([]model.Uncertainty, error) {
	m := e.Snapshot().Model()
	var out []model.Uncertainty
	for i := 0; i < letters.Count; i++ {
		if m.Attempts(i) == 0 {
			continue
		}
		u, err := e.estimateLetter(ctx, m, i, samples)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (e *Engine) estimateLetter(ctx context.Context, m *letters.Model, letter, samples int) (model.Uncertainty, error) {
	attempts := m.Attempts(letter)
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	started := time.Now()
	est, err := e.est.Rate(ctx, m.Alpha(letter)-1, attempts, samples)
	e.metrics.ObserveBootstrap("letter", time.Since(started).Seconds(), err == nil)
	if err != nil {
		return model.Uncertainty{}, fmt.Errorf("letter %c: %w", letters.Letter(letter), err)
	}
	return model.Uncertainty{
		Letter:   string(letters.Letter(letter)),
		Attempts: attempts,
		Mean:     est.Mean,
		Variance: est.Variance,
		CI95Low:  est.Low,
		CI95High: est.High,
	}, nil
}

// EstimatePhaseImprovement compares test-only accuracy with the accuracy of
// all sessions. It is unavailable until both buckets have characters.
func (e *Engine) EstimatePhaseImprovement(ctx context.Context, samples int) (model.Improvement, error) {
	return e.EstimateImprovement(ctx, e.History(), samples)
}

// EstimateImprovement runs the phase comparison over records.
func (e *Engine) EstimateImprovement(ctx context.Context, records []model.SessionRecord, samples int) (model.Improvement, error) {
	baseCorrect, baseTotal := history.Totals(history.FilterPrefix(records, model.TestLabelPrefix))
	combCorrect, combTotal := history.Totals(records)

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	started := time.Now()
	imp, err := e.est.Improvement(ctx, baseCorrect, baseTotal, combCorrect, combTotal, samples)
	e.metrics.ObserveBootstrap("improvement", time.Since(started).Seconds(), err == nil)
	if err != nil {
		if !errors.Is(err, bootstrap.ErrUnavailable) {
			e.logger.Warn("improvement estimate failed", zap.Error(err))
		}
		return model.Improvement{}, err
	}
	return model.Improvement{
		BaselineAccuracy: imp.BaselineAccuracy,
		CombinedAccuracy: imp.CombinedAccuracy,
		MeanDiff:         imp.MeanDiff,
		CI95Low:          imp.Low,
		CI95High:         imp.High,
		Samples:          imp.Samples,
	}, nil
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout > 0 {
		return context.WithTimeout(ctx, e.timeout)
	}
	return context.WithCancel(ctx)
}

// Coverage returns vocabulary letter coverage and the rare-letter boosts.
func (e *Engine) Coverage() ([letters.Count]int, [letters.Count]float64) {
	return e.gen.Coverage(), e.gen.BoostFactors()
}
