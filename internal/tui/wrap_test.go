package tui

import (
	"strings"
	"testing"
)

func TestStyleCellsTypedState(t *testing.T) {
	cells := styleCells([]rune("abc"), []rune("ax"), 2, nil)
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	if cells[0].text != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first cell")
	}
	if cells[1].text != incorrectStyle.Render("b") {
		t.Fatalf("expected target rune in incorrect style")
	}
	if cells[2].text != currentWordStyle.Underline(true).Render("c") {
		t.Fatalf("expected underlined cursor in current word")
	}
}

func TestStyleCellsNoCursorWhenComplete(t *testing.T) {
	cells := styleCells([]rune("a"), []rune("a"), -1, nil)
	if cells[0].text != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed cell")
	}
}

func TestStyleCellsMissedSpace(t *testing.T) {
	cells := styleCells([]rune("a b"), []rune("ax"), 2, nil)
	if cells[1].text != incorrectStyle.Render(string(missedSpace)) {
		t.Fatalf("expected marker for missed space, got %q", cells[1].text)
	}
	if !cells[1].space {
		t.Fatal("missed space should still break lines")
	}
}

func TestStyleCellsWordAndWeakTints(t *testing.T) {
	cells := styleCells([]rune("one Bob"), []rune("o"), 1, map[rune]bool{'b': true})
	if cells[2].text != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style")
	}
	if cells[4].text != weakStyle.Render("B") {
		t.Fatalf("expected weak style for uppercase weak letter")
	}
	if cells[5].text != pendingStyle.Render("o") {
		t.Fatalf("expected pending style for other letters")
	}
}

func TestWordAt(t *testing.T) {
	target := []rune("ab  cd")
	cases := []struct {
		cursor     int
		start, end int
	}{
		{-1, 0, 2},
		{1, 0, 2},
		{2, 4, 6},
		{5, 4, 6},
		{9, 4, 6},
	}
	for _, c := range cases {
		start, end := wordAt(target, c.cursor)
		if start != c.start || end != c.end {
			t.Fatalf("cursor %d: got [%d,%d), want [%d,%d)", c.cursor, start, end, c.start, c.end)
		}
	}
	if start, end := wordAt([]rune("   "), 0); start != -1 || end != -1 {
		t.Fatalf("expected no word, got [%d,%d)", start, end)
	}
}

func TestWrapCellsBreaksBetweenWords(t *testing.T) {
	cells := styleCells([]rune("aaa bbb ccc"), nil, -1, nil)
	out := wrapCells(cells, 7)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if lines[0] != joinCells(cells[:7]) || lines[1] != joinCells(cells[8:]) {
		t.Fatalf("unexpected split %q", out)
	}
}

func TestWrapCellsSplitsLongWord(t *testing.T) {
	cells := styleCells([]rune("abcdefgh"), nil, -1, nil)
	out := wrapCells(cells, 3)
	if got := len(strings.Split(out, "\n")); got != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", got, out)
	}
}

func TestWrapCellsNoWidth(t *testing.T) {
	cells := styleCells([]rune("a b"), nil, -1, nil)
	if wrapCells(cells, 0) != joinCells(cells) {
		t.Fatal("expected unwrapped output")
	}
}
