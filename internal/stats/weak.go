package stats

import (
	"sort"

	"github.com/verte-zerg/adaptype/internal/model"
)

// WeakestLetters returns attempted letters ordered by posterior error rate,
// highest first. top <= 0 returns all of them.
func WeakestLetters(diags []model.LetterDiagnostic, top int) []model.LetterDiagnostic {
	candidates := make([]model.LetterDiagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Attempts > 0 {
			candidates = append(candidates, d)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].ErrorRate == candidates[j].ErrorRate {
			return candidates[i].Letter < candidates[j].Letter
		}
		return candidates[i].ErrorRate > candidates[j].ErrorRate
	})
	if top > 0 && top < len(candidates) {
		candidates = candidates[:top]
	}
	return candidates
}

// LetterNames joins the letters of diags.
func LetterNames(diags []model.LetterDiagnostic) string {
	out := make([]byte, 0, len(diags)*2)
	for i, d := range diags {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, d.Letter...)
	}
	return string(out)
}
