package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/adaptype/internal/diagnostics"
	"github.com/verte-zerg/adaptype/internal/engine"
	"github.com/verte-zerg/adaptype/internal/letters"
	"github.com/verte-zerg/adaptype/internal/model"
)

// Source is the subset of the store a report needs.
type Source interface {
	ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionRecord, error)
	LetterTotals(ctx context.Context, ids []int64) (incorrect, correct [letters.Count]int, err error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions []model.SessionRecord
	Letters  []model.LetterDiagnostic
	Entropy  model.EntropySummary
}

// BuildReport loads sessions and rebuilds the letter model from their
// per-letter outcomes.
func BuildReport(ctx context.Context, src Source, cfg model.StatsConfig) (Report, error) {
	sessions, err := src.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	m := letters.New()
	if len(sessions) > 0 {
		incorrect, correct, err := src.LetterTotals(ctx, sessionIDs(sessions))
		if err != nil {
			return Report{}, err
		}
		if m, err = letters.FromCounts(incorrect, correct); err != nil {
			return Report{}, err
		}
	}
	return Report{
		Sessions: sessions,
		Letters:  engine.Diagnose(m),
		Entropy:  engine.Summarize(diagnostics.Compute(m)),
	}, nil
}

// Render writes the full text report.
func (r Report) Render(w io.Writer, window, width int, forceColor bool) error {
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if len(r.Sessions) == 0 {
		return nil
	}
	if err := RenderCurves(w, r.Sessions, window); err != nil {
		return err
	}
	if err := RenderEntropy(w, r.Entropy); err != nil {
		return err
	}
	if err := writeLines(w,
		"Weakest: "+LetterNames(WeakestLetters(r.Letters, 5)),
		"Most practiced: "+LetterNames(MostPracticed(r.Letters, 5)),
		"",
	); err != nil {
		return err
	}
	if err := RenderLetterTable(w, r.Letters); err != nil {
		return err
	}
	return RenderBars(w, "KL Contribution", KLBars(r.Letters), width, forceColor)
}

func sessionIDs(sessions []model.SessionRecord) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids
}
