package timeline

import (
	"fmt"
	"sort"
)

// Sorted orders steps by start time, stable on ties; the input is untouched.
func Sorted(steps []Step) []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].StartMS < out[b].StartMS
	})
	return out
}

// Build reconstructs a gapless segment sequence over [runStartMS, runEndMS].
// SourceIndex values refer to positions in the sorted step order. Overlapping
// steps are emitted back-to-back; the sweep cursor never moves backward.
func Build(runStartMS, runEndMS int64, steps []Step) []Segment {
	if len(steps) == 0 {
		return nil
	}

	total := runEndMS - runStartMS
	if total < 0 {
		total = 0
	}

	sorted := Sorted(steps)
	segments := make([]Segment, 0, len(sorted)*2+1)
	var cursor int64

	for i, step := range sorted {
		relStart := clamp(step.StartMS-runStartMS, 0, total)
		relEnd := clamp(step.EndMS-runStartMS, relStart, total)

		if relStart > cursor {
			segments = append(segments, gapSegment(cursor, relStart))
		}

		label := step.Type
		if label == "" {
			label = "Unknown"
		}
		segments = append(segments, Segment{
			Label:       fmt.Sprintf("%d. %s", i+1, label),
			StartOffset: relStart,
			Duration:    relEnd - relStart,
			EndOffset:   relEnd,
			SourceIndex: i,
		})

		if relEnd > cursor {
			cursor = relEnd
		}
	}

	if cursor < total {
		segments = append(segments, gapSegment(cursor, total))
	}
	return segments
}

func gapSegment(from, to int64) Segment {
	return Segment{
		Label:       GapLabel,
		StartOffset: from,
		Duration:    to - from,
		EndOffset:   to,
		SourceIndex: GapIndex,
		IsGap:       true,
	}
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
