// Package history keeps the append-only ledger of completed sessions.
package history

import (
	"strings"
	"sync"

	"github.com/verte-zerg/adaptype/internal/model"
)

// Ledger is an ordered, append-only record of completed sessions.
type Ledger struct {
	mu      sync.RWMutex
	records []model.SessionRecord
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append adds a record at the end of the ledger.
func (l *Ledger) Append(r model.SessionRecord) {
	r = clone(r)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, r)
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Records returns a copy of every record in completion order.
func (l *Ledger) Records() []model.SessionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.SessionRecord, len(l.records))
	for i, r := range l.records {
		out[i] = clone(r)
	}
	return out
}

// Filter returns the records whose label starts with prefix.
func (l *Ledger) Filter(prefix string) []model.SessionRecord {
	return FilterPrefix(l.Records(), prefix)
}

// Count returns how many records have a label starting with prefix.
func (l *Ledger) Count(prefix string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, r := range l.records {
		if strings.HasPrefix(r.Label, prefix) {
			n++
		}
	}
	return n
}

// FilterPrefix selects records by label prefix, keeping order.
func FilterPrefix(records []model.SessionRecord, prefix string) []model.SessionRecord {
	var out []model.SessionRecord
	for _, r := range records {
		if strings.HasPrefix(r.Label, prefix) {
			out = append(out, r)
		}
	}
	return out
}

// Totals sums correct and total characters across records.
func Totals(records []model.SessionRecord) (correct, total int) {
	for _, r := range records {
		correct += r.CorrectChars
		total += r.TotalChars
	}
	return correct, total
}

func clone(r model.SessionRecord) model.SessionRecord {
	r.ErrorProbs = append([]float64(nil), r.ErrorProbs...)
	r.NormalizedProbs = append([]float64(nil), r.NormalizedProbs...)
	r.CorrectProbs = append([]float64(nil), r.CorrectProbs...)
	r.LetterCorrect = append([]int(nil), r.LetterCorrect...)
	r.LetterIncorrect = append([]int(nil), r.LetterIncorrect...)
	return r
}
