package stats

import (
	"sort"

	"github.com/verte-zerg/adaptype/internal/model"
)

// MostPracticed returns the top n letters by attempts.
func MostPracticed(diags []model.LetterDiagnostic, n int) []model.LetterDiagnostic {
	if n <= 0 || len(diags) == 0 {
		return nil
	}
	items := make([]model.LetterDiagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Attempts > 0 {
			items = append(items, d)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Attempts == items[j].Attempts {
			return items[i].Letter < items[j].Letter
		}
		return items[i].Attempts > items[j].Attempts
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
