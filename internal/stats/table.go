package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// textTable lays out plain-text columns padded to their widest cell.
type textTable struct {
	headers []string
	right   map[int]bool
	rows    [][]string
}

func newTextTable(headers ...string) *textTable {
	return &textTable{headers: headers, right: map[int]bool{}}
}

// alignRight marks columns whose cells are padded on the left.
func (t *textTable) alignRight(cols ...int) *textTable {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

func (t *textTable) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

// lines renders the header then every row, trailing padding trimmed.
func (t *textTable) lines() []string {
	widths := t.widths()
	if len(widths) == 0 {
		return nil
	}
	out := make([]string, 0, len(t.rows)+1)
	if len(t.headers) > 0 {
		out = append(out, t.render(t.headers, widths))
	}
	for _, row := range t.rows {
		out = append(out, t.render(row, widths))
	}
	return out
}

func (t *textTable) widths() []int {
	var widths []int
	grow := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	grow(t.headers)
	for _, row := range t.rows {
		grow(row)
	}
	return widths
}

func (t *textTable) render(row []string, widths []int) string {
	var b strings.Builder
	for i, width := range widths {
		if i > 0 {
			b.WriteByte(' ')
		}
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if t.right[i] {
			b.WriteString(runewidth.FillLeft(cell, width))
		} else {
			b.WriteString(runewidth.FillRight(cell, width))
		}
	}
	return strings.TrimRight(b.String(), " ")
}
