package api

import (
	"encoding/json"
	"sort"

	"runfall/internal/timeline"
)

// Run timestamps are epoch seconds; optional ones are nil until recorded.
type Run struct {
	ID          string    `json:"id"`
	ThreadID    string    `json:"thread_id"`
	AssistantID string    `json:"assistant_id"`
	Status      string    `json:"status"`
	Model       string    `json:"model"`
	CreatedAt   int64     `json:"created_at"`
	StartedAt   *int64    `json:"started_at"`
	CompletedAt *int64    `json:"completed_at"`
	CancelledAt *int64    `json:"cancelled_at"`
	FailedAt    *int64    `json:"failed_at"`
	LastError   *RunError `json:"last_error"`
}

type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RunStep keeps StepDetails raw; classification happens at render time.
type RunStep struct {
	ID          string          `json:"id"`
	RunID       string          `json:"run_id"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	CreatedAt   int64           `json:"created_at"`
	CompletedAt *int64          `json:"completed_at"`
	CancelledAt *int64          `json:"cancelled_at"`
	FailedAt    *int64          `json:"failed_at"`
	ExpiredAt   *int64          `json:"expired_at"`
	StepDetails json.RawMessage `json:"step_details"`
}

type stepList struct {
	Data []RunStep `json:"data"`
}

// WindowMillis resolves the run window in epoch ms; nowMS bounds open runs.
func (r *Run) WindowMillis(nowMS int64) (startMS, endMS int64) {
	startMS = timeline.ResolveMillis(r.StartedAt, timeline.ToMillis(r.CreatedAt))
	endMS = nowMS
	for _, ts := range []*int64{r.CompletedAt, r.FailedAt, r.CancelledAt} {
		if ts != nil {
			endMS = timeline.ToMillis(*ts)
			break
		}
	}
	if endMS < startMS {
		endMS = startMS
	}
	return startMS, endMS
}

// SpanMillis resolves a step's span in epoch ms; open steps run to runEndMS.
func (s *RunStep) SpanMillis(runEndMS int64) (startMS, endMS int64) {
	startMS = timeline.ToMillis(s.CreatedAt)
	endMS = runEndMS
	for _, ts := range []*int64{s.CompletedAt, s.FailedAt, s.CancelledAt, s.ExpiredAt} {
		if ts != nil {
			endMS = timeline.ToMillis(*ts)
			break
		}
	}
	if endMS < startMS {
		endMS = startMS
	}
	return startMS, endMS
}

// SortSteps is stable; the sorted order is what SourceIndex values refer to,
// so every consumer must sort the same way.
func SortSteps(steps []RunStep) []RunStep {
	out := make([]RunStep, len(steps))
	copy(out, steps)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CreatedAt < out[b].CreatedAt
	})
	return out
}

func TimelineSteps(steps []RunStep, runEndMS int64) []timeline.Step {
	out := make([]timeline.Step, 0, len(steps))
	for i := range steps {
		startMS, endMS := steps[i].SpanMillis(runEndMS)
		out = append(out, timeline.Step{Type: steps[i].Type, StartMS: startMS, EndMS: endMS})
	}
	return out
}
