package timeline

// GapIndex marks idle segments; gaps are never selectable.
const GapIndex = -1

const GapLabel = "<unknown>"

// Step bounds are epoch milliseconds.
type Step struct {
	Type    string
	StartMS int64
	EndMS   int64
}

// Segment offsets are milliseconds from the run start. SourceIndex points
// into the sorted step list, or is GapIndex for gaps.
type Segment struct {
	Label       string
	StartOffset int64
	Duration    int64
	EndOffset   int64
	SourceIndex int
	IsGap       bool
}
