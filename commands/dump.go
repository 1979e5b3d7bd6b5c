package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"runfall/internal/api"
	"runfall/internal/timeline"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the run timeline to stdout and exit",
	Long: `dump fetches the run once and prints its waterfall as a plain table,
one row per step or gap. Useful for piping and for terminals where the
interactive viewer is not wanted.`,
	RunE: runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, st, err := buildConfig()
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.ThreadID == "" || cfg.RunID == "" {
		return errors.New("thread and run ids are required (pass --thread and --run)")
	}
	if cfg.APIKey == "" {
		return errors.New("no API key: pass --api-key or set OPENAI_API_KEY")
	}

	client := api.New(cfg.BaseURL, cfg.APIKey)
	ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
	defer cancel()

	run, err := client.GetRun(ctx, cfg.ThreadID, cfg.RunID)
	if err != nil {
		return err
	}
	steps, err := client.ListRunSteps(ctx, cfg.ThreadID, cfg.RunID)
	if err != nil {
		return err
	}

	steps = api.SortSteps(steps)
	start, end := run.WindowMillis(time.Now().UnixMilli())
	segments := timeline.Build(start, end, api.TimelineSteps(steps, end))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s\n", run.ID)
	fmt.Fprintf(out, "  status: %s\n", run.Status)
	if run.Model != "" {
		fmt.Fprintf(out, "  model:  %s\n", run.Model)
	}
	fmt.Fprintf(out, "  steps:  %d\n", len(steps))
	fmt.Fprintf(out, "  total:  %s\n", timeline.FormatMillis(end-start))
	if run.LastError != nil {
		fmt.Fprintf(out, "  last error: %s: %s\n", run.LastError.Code, run.LastError.Message)
	}
	fmt.Fprintln(out)

	if len(segments) == 0 {
		fmt.Fprintln(out, "No steps recorded for this run.")
		return nil
	}
	fmt.Fprint(out, dumpTable(segments, steps))
	return nil
}

// Gaps carry no step status.
func dumpTable(segments []timeline.Segment, steps []api.RunStep) string {
	headers := []string{"Segment", "Start", "End", "Duration", "Status"}

	rows := make([][]string, 0, len(segments))
	for _, seg := range segments {
		status := "-"
		if !seg.IsGap && seg.SourceIndex < len(steps) {
			status = steps[seg.SourceIndex].Status
		}
		rows = append(rows, []string{
			seg.Label,
			timeline.FormatMillis(seg.StartOffset),
			timeline.FormatMillis(seg.EndOffset),
			timeline.FormatMillis(seg.Duration),
			status,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i == len(cells)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)+2))
		}
		b.WriteByte('\n')
	}

	writeRow(headers)
	sep := make([]string, len(headers))
	for i := range headers {
		sep[i] = strings.Repeat("-", widths[i])
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}
