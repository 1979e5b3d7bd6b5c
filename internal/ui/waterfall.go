package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"runfall/internal/timeline"
)

const labelColWidth = 22

func barWidthFor(paneWidth int) int {
	w := paneWidth - labelColWidth - 4
	if w < 10 {
		w = 10
	}
	return w
}

// Every segment fills at least one cell so zero-length steps stay visible.
func barCells(seg timeline.Segment, totalMS int64, width int) (lead, fill int) {
	if totalMS <= 0 || width <= 0 {
		return 0, 0
	}
	lead = int(seg.StartOffset * int64(width) / totalMS)
	fill = int(seg.Duration * int64(width) / totalMS)
	if fill < 1 {
		fill = 1
	}
	if lead >= width {
		lead = width - 1
	}
	if lead+fill > width {
		fill = width - lead
	}
	return lead, fill
}

func renderRuler(totalMS int64, width int) string {
	if width < 10 {
		return ""
	}
	cells := make([]rune, width)
	for i := range cells {
		cells[i] = ' '
	}
	for _, pct := range []int64{0, 25, 50, 75, 100} {
		label := []rune(timeline.FormatMillis(totalMS * pct / 100))
		pos := int(int64(width-1) * pct / 100)
		if pct == 100 {
			pos = width - len(label)
		}
		if pos < 0 {
			pos = 0
		}
		for i, r := range label {
			if pos+i >= width {
				break
			}
			cells[pos+i] = r
		}
	}
	return rulerStyle.Render(string(cells))
}

// The cursor row carries a marker only while the timeline pane is focused.
func renderWaterfall(segs []timeline.Segment, totalMS int64, paneWidth int, sel *timeline.Selection, cursor int, focused bool) string {
	barWidth := barWidthFor(paneWidth)
	var b strings.Builder

	for i, seg := range segs {
		selected := !seg.IsGap && sel.IsSelected(seg.SourceIndex)

		marker := "  "
		if focused && i == cursor {
			marker = cursorStyle.Render("> ")
		}

		label := ansi.Truncate(seg.Label, labelColWidth, "…")
		pad := labelColWidth - ansi.StringWidth(label)
		if pad < 0 {
			pad = 0
		}
		labelStyle := stepLabelStyle
		if seg.IsGap {
			labelStyle = gapLabelStyle
		} else if selected {
			labelStyle = selectedLabelStyle
		}

		b.WriteString(marker)
		b.WriteString(labelStyle.Render(label))
		b.WriteString(strings.Repeat(" ", pad+1))
		b.WriteString(renderBar(seg, selected, totalMS, barWidth))
		if i < len(segs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderBar(seg timeline.Segment, selected bool, totalMS int64, barWidth int) string {
	lead, fill := barCells(seg, totalMS, barWidth)

	char := "█"
	if seg.IsGap {
		char = "░"
	}
	bar := strings.Repeat(" ", lead) + barStyle(seg, selected).Render(strings.Repeat(char, fill))

	dur := timeline.FormatMillis(seg.Duration)
	if lead+fill+1+len(dur) <= barWidth {
		bar += " " + rulerStyle.Render(dur)
	}
	return bar
}

func paletteIndex(sourceIndex int) int {
	return sourceIndex % len(barPalette)
}

func barStyle(seg timeline.Segment, selected bool) lipgloss.Style {
	if seg.IsGap {
		return gapBarStyle
	}
	if selected {
		return selectedBarStyle
	}
	return barPalette[paletteIndex(seg.SourceIndex)]
}

var barPalette = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("168")),
}

var (
	gapBarStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	rulerStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cursorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	stepLabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	gapLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
)
