package ui

import (
	"strings"
	"testing"

	"runfall/internal/timeline"
)

func TestBarCellsProportional(t *testing.T) {
	seg := timeline.Segment{StartOffset: 5000, Duration: 2500, EndOffset: 7500}
	lead, fill := barCells(seg, 10000, 40)
	if lead != 20 || fill != 10 {
		t.Fatalf("lead, fill = %d, %d; want 20, 10", lead, fill)
	}
}

func TestBarCellsKeepZeroLengthStepsVisible(t *testing.T) {
	seg := timeline.Segment{StartOffset: 5000, Duration: 0, EndOffset: 5000}
	lead, fill := barCells(seg, 10000, 40)
	if fill != 1 {
		t.Fatalf("zero-length segment should still draw one cell, got %d", fill)
	}
	if lead != 20 {
		t.Fatalf("expected lead 20, got %d", lead)
	}
}

func TestBarCellsClampToWidth(t *testing.T) {
	seg := timeline.Segment{StartOffset: 9990, Duration: 10, EndOffset: 10000}
	lead, fill := barCells(seg, 10000, 40)
	if lead+fill > 40 {
		t.Fatalf("bar overflows width: lead=%d fill=%d", lead, fill)
	}
	if fill < 1 {
		t.Fatalf("expected at least one cell, got %d", fill)
	}
}

func TestBarCellsDegenerateInputs(t *testing.T) {
	if lead, fill := barCells(timeline.Segment{Duration: 5}, 0, 40); lead != 0 || fill != 0 {
		t.Fatalf("zero total should draw nothing, got lead=%d fill=%d", lead, fill)
	}
	if lead, fill := barCells(timeline.Segment{Duration: 5}, 100, 0); lead != 0 || fill != 0 {
		t.Fatalf("zero width should draw nothing, got lead=%d fill=%d", lead, fill)
	}
}

func TestPaletteIndexWrapsBySourceIndex(t *testing.T) {
	n := len(barPalette)
	if got := paletteIndex(0); got != 0 {
		t.Fatalf("paletteIndex(0) = %d", got)
	}
	if got := paletteIndex(n); got != 0 {
		t.Fatalf("paletteIndex(%d) = %d, want 0", n, got)
	}
	if got := paletteIndex(n + 2); got != 2 {
		t.Fatalf("paletteIndex(%d) = %d, want 2", n+2, got)
	}
}

func TestRenderWaterfallRowsAndCursor(t *testing.T) {
	steps := []timeline.Step{
		{Type: "tool_calls", StartMS: 0, EndMS: 3000},
		{Type: "message_creation", StartMS: 5000, EndMS: 8000},
	}
	segs := timeline.Build(0, 10000, steps)
	sel := timeline.NewSelection(nil)
	sel.Select(0)

	out := renderWaterfall(segs, 10000, 80, sel, 1, true)
	lines := strings.Split(out, "\n")
	if len(lines) != len(segs) {
		t.Fatalf("expected %d rows, got %d:\n%s", len(segs), len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "> ") {
		t.Fatalf("expected cursor marker on row 1, got: %q", lines[1])
	}
	if !strings.HasPrefix(lines[0], "  ") {
		t.Fatalf("cursor marker leaked onto row 0: %q", lines[0])
	}
	if !strings.Contains(lines[0], "█") {
		t.Fatalf("step row should use solid bars: %q", lines[0])
	}
	if !strings.Contains(lines[1], "░") {
		t.Fatalf("gap row should use shaded bars: %q", lines[1])
	}
	if !strings.Contains(lines[1], timeline.GapLabel) {
		t.Fatalf("gap row should carry the unknown label: %q", lines[1])
	}
	if !strings.Contains(lines[0], "1. tool_calls") {
		t.Fatalf("step row should carry its label: %q", lines[0])
	}
}

func TestRenderWaterfallHidesCursorWhenUnfocused(t *testing.T) {
	steps := []timeline.Step{{Type: "tool_calls", StartMS: 0, EndMS: 1000}}
	segs := timeline.Build(0, 1000, steps)
	sel := timeline.NewSelection(nil)

	out := renderWaterfall(segs, 1000, 80, sel, 0, false)
	if strings.HasPrefix(out, "> ") {
		t.Fatalf("unfocused pane should not draw a cursor: %q", out)
	}
}

func TestRenderRulerShowsEndpoints(t *testing.T) {
	out := renderRuler(10000, 40)
	if !strings.Contains(out, "0ms") {
		t.Fatalf("expected ruler start tick, got: %q", out)
	}
	if !strings.Contains(out, "10s") {
		t.Fatalf("expected ruler end tick, got: %q", out)
	}
}

func TestRenderRulerTooNarrow(t *testing.T) {
	if out := renderRuler(10000, 5); out != "" {
		t.Fatalf("narrow ruler should render empty, got %q", out)
	}
}

func TestBarWidthForHasFloor(t *testing.T) {
	if got := barWidthFor(10); got != 10 {
		t.Fatalf("expected floor of 10, got %d", got)
	}
	if got := barWidthFor(100); got != 100-labelColWidth-4 {
		t.Fatalf("unexpected bar width %d", got)
	}
}
