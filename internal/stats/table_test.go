package stats

import "testing"

func TestTextTableAlignsColumns(t *testing.T) {
	tbl := newTextTable("Label", "WPM", "Acc").alignRight(1, 2)
	tbl.add("Test 1", "41.20", "97.50%")
	tbl.add("Practice 12", "8.00", "80.00%")

	lines := tbl.lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Label         WPM    Acc" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Test 1      41.20 97.50%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Practice 12  8.00 80.00%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTextTableTrimsTrailingPadding(t *testing.T) {
	tbl := newTextTable("A", "B")
	tbl.add("long value", "")
	if lines := tbl.lines(); lines[1] != "long value" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

func TestTextTableEmpty(t *testing.T) {
	if lines := newTextTable().lines(); lines != nil {
		t.Fatalf("expected no lines, got %q", lines)
	}
}
