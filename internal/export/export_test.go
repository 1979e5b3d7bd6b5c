package export

import (
	"os"
	"strings"
	"testing"
	"time"

	"runfall/internal/api"
	"runfall/internal/timeline"
)

func int64p(v int64) *int64 { return &v }

func sampleRun() (*api.Run, []api.RunStep, []timeline.Segment) {
	run := &api.Run{
		ID:          "run_1",
		ThreadID:    "thread_1",
		AssistantID: "asst_1",
		Status:      "completed",
		Model:       "gpt-4o",
		CreatedAt:   100,
		StartedAt:   int64p(100),
		CompletedAt: int64p(110),
	}
	steps := []api.RunStep{
		{
			Type:        "tool_calls",
			Status:      "completed",
			CreatedAt:   100,
			CompletedAt: int64p(103),
			StepDetails: []byte(`{"type":"tool_calls","tool_calls":[{"type":"function","function":{"name":"get_weather","arguments":"{}"}}]}`),
		},
		{
			Type:        "message_creation",
			Status:      "completed",
			CreatedAt:   105,
			CompletedAt: int64p(108),
			StepDetails: []byte(`{"type":"message_creation","message_creation":{"message_id":"msg_1"}}`),
		},
	}
	start, end := run.WindowMillis(0)
	segments := timeline.Build(start, end, api.TimelineSteps(steps, end))
	return run, steps, segments
}

func TestBuildRunMarkdown(t *testing.T) {
	run, steps, segments := sampleRun()
	out := BuildRunMarkdown(run, steps, segments, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	for _, want := range []string{
		"# Run run_1",
		"status: completed",
		"| segment | start | end | duration |",
		"| 1. tool_calls | 0ms | 3s | 3s |",
		"| <unknown> | 3s | 5s | 2s |",
		"## Step 1: tool_calls (completed)",
		"### Tool 1: get_weather",
		"Created message `msg_1`",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report, got:\n%s", want, out)
		}
	}
}

func TestBuildRunMarkdownIncludesLastError(t *testing.T) {
	run, steps, segments := sampleRun()
	run.Status = "failed"
	run.LastError = &api.RunError{Code: "rate_limit_exceeded", Message: "slow down"}

	out := BuildRunMarkdown(run, steps, segments, time.Now().UTC())
	if !strings.Contains(out, "last_error: rate_limit_exceeded: slow down") {
		t.Fatalf("expected last error line, got:\n%s", out)
	}
}

func TestExportWritesFile(t *testing.T) {
	run, steps, segments := sampleRun()
	e := New(t.TempDir())

	path, err := e.Export(run, steps, segments, time.Now().UTC())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasSuffix(path, "run_1.md") {
		t.Errorf("path = %q", path)
	}
	if !strings.Contains(string(data), "# Run run_1") {
		t.Errorf("report content missing, got:\n%s", data)
	}
}
