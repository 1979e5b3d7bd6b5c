package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"runfall/internal/api"
	"runfall/internal/detail"
	"runfall/internal/timeline"
)

type Exporter struct {
	dir string
}

func New(dir string) *Exporter {
	return &Exporter{dir: strings.TrimSpace(dir)}
}

// Re-exporting the same run overwrites the previous report.
func (e *Exporter) Export(run *api.Run, steps []api.RunStep, segments []timeline.Segment, now time.Time) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	md := BuildRunMarkdown(run, steps, segments, now)
	path := filepath.Join(e.dir, safeFileName(run.ID)+".md")
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

// BuildRunMarkdown expects steps in the sorted order the segments were
// built from.
func BuildRunMarkdown(run *api.Run, steps []api.RunStep, segments []timeline.Segment, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Run " + run.ID + "\n\n")
	b.WriteString("Exported: " + now.Format(time.RFC3339) + "\n\n")
	b.WriteString("```text\n")
	b.WriteString("thread: " + safeValue(run.ThreadID) + "\n")
	b.WriteString("assistant: " + safeValue(run.AssistantID) + "\n")
	b.WriteString("model: " + safeValue(run.Model) + "\n")
	b.WriteString("status: " + safeValue(run.Status) + "\n")
	if run.LastError != nil {
		b.WriteString("last_error: " + run.LastError.Code + ": " + run.LastError.Message + "\n")
	}
	b.WriteString("```\n\n")

	b.WriteString("## Timeline\n\n")
	b.WriteString("| segment | start | end | duration |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, seg := range segments {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			seg.Label,
			timeline.FormatMillis(seg.StartOffset),
			timeline.FormatMillis(seg.EndOffset),
			timeline.FormatMillis(seg.Duration))
	}
	b.WriteString("\n")

	for i, step := range steps {
		fmt.Fprintf(&b, "## Step %d: %s (%s)\n\n", i+1, safeValue(step.Type), safeValue(step.Status))
		md := demoteHeadings(detail.BuildMarkdown(detail.Classify(step.StepDetails)))
		b.WriteString(md)
		if !strings.HasSuffix(md, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()) + "\n"
}

// Detail headings drop one level so they nest under their step heading.
func demoteHeadings(md string) string {
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "## ") {
			lines[i] = "#" + line
		}
	}
	return strings.Join(lines, "\n")
}

func safeFileName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "run"
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	return replacer.Replace(s)
}

func safeValue(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "n/a"
	}
	return s
}
