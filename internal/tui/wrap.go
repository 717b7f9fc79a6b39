package tui

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// missedSpace stands in for a space that was typed as something else.
const missedSpace = '•'

// cell is one rendered target rune.
type cell struct {
	text  string
	width int
	space bool
}

// styleCells renders each target rune by its typing state. Only the pending
// part of the text shows the current word and weak-letter tints.
func styleCells(target, typed []rune, cursor int, weak map[rune]bool) []cell {
	wordStart, wordEnd := wordAt(target, cursor)
	cells := make([]cell, len(target))
	for i, want := range target {
		glyph := want
		style := pendingStyle
		switch {
		case i < len(typed) && typed[i] == want:
			style = correctStyle
		case i < len(typed):
			style = incorrectStyle
			if want == ' ' {
				glyph = missedSpace
			}
		case want == ' ':
		case i >= wordStart && i < wordEnd:
			style = currentWordStyle
		case weak[unicode.ToLower(want)]:
			style = weakStyle
		}
		if i == cursor && i >= len(typed) {
			style = style.Underline(true)
		}
		cells[i] = cell{
			text:  style.Render(string(glyph)),
			width: runewidth.RuneWidth(glyph),
			space: want == ' ',
		}
	}
	return cells
}

// wordAt returns the bounds of the first word ending after cursor, so a
// cursor on a space selects the next word. Past the text it selects the last
// word; with no words it returns (-1, -1).
func wordAt(target []rune, cursor int) (start, end int) {
	start, end = -1, -1
	inWord := false
	for i := 0; i <= len(target); i++ {
		if i < len(target) && target[i] != ' ' {
			if !inWord {
				start, inWord = i, true
			}
			continue
		}
		if inWord {
			end, inWord = i, false
			if end > cursor {
				return start, end
			}
		}
	}
	return start, end
}

func joinCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.text)
	}
	return b.String()
}

func widthOf(cells []cell) int {
	total := 0
	for _, c := range cells {
		total += c.width
	}
	return total
}

// wrapCells breaks cells into lines of at most width columns. Lines break
// between words and drop the separating spaces; a word longer than a line is
// split.
func wrapCells(cells []cell, width int) string {
	if width <= 0 {
		return joinCells(cells)
	}
	var out strings.Builder
	lineWidth := 0
	var gap []cell
	for i := 0; i < len(cells); {
		if cells[i].space {
			gap = append(gap, cells[i])
			i++
			continue
		}
		j := i
		for j < len(cells) && !cells[j].space {
			j++
		}
		word := cells[i:j]
		i = j

		if lineWidth > 0 && lineWidth+widthOf(gap)+widthOf(word) > width {
			out.WriteByte('\n')
			lineWidth = 0
			gap = nil
		}
		out.WriteString(joinCells(gap))
		lineWidth += widthOf(gap)
		gap = nil
		for _, c := range word {
			if lineWidth > 0 && lineWidth+c.width > width {
				out.WriteByte('\n')
				lineWidth = 0
			}
			out.WriteString(c.text)
			lineWidth += c.width
		}
	}
	if lineWidth+widthOf(gap) <= width {
		out.WriteString(joinCells(gap))
	}
	return out.String()
}
