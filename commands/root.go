package commands

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"runfall/internal/api"
	"runfall/internal/config"
	"runfall/internal/debuglog"
	"runfall/internal/export"
	"runfall/internal/store"
	"runfall/internal/ui"
)

var (
	// Run coordinates
	threadID string
	runID    string
	apiKey   string

	// Endpoint and storage
	baseURL string
	dataDir string

	// System and debugging
	debug bool
	reset bool

	rootCmd = &cobra.Command{
		Use:   "runfall [flags]",
		Short: "Terminal waterfall viewer for assistant runs",
		Long: `runfall renders the steps of an Assistants v2 run as a waterfall timeline.

It fetches one run and its steps, normalizes the second-resolution timestamps
to milliseconds, and draws every step - and the gaps between them - in
proportion to the run's duration. The thread id, run id, and API key persist
between sessions, so a bare invocation reopens the last run.

Examples:
  runfall                                          # Reopen the saved run
  runfall --thread thread_abc --run run_def        # Point at a specific run
  runfall --reset                                  # Forget the saved state first
  runfall --debug                                  # Write a JSONL debug log
  runfall dump --thread thread_abc --run run_def   # Print the timeline and exit`,
		RunE:          runRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&threadID, "thread", "",
		"Thread id (thread_...)")
	rootCmd.PersistentFlags().StringVar(&runID, "run", "",
		"Run id (run_...)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "",
		"API key (defaults to $OPENAI_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", api.DefaultBaseURL,
		"API base URL")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"State directory (defaults to $RUNFALL_DATA_DIR or ~/.local/share/runfall)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Write debug logs under the state directory")
	rootCmd.PersistentFlags().BoolVar(&reset, "reset", false,
		"Clear saved thread/run/key before starting")

	rootCmd.AddCommand(dumpCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, st, err := buildConfig()
	if err != nil {
		return err
	}
	defer st.Close()

	logger, err := debuglog.New(cfg.LogDir, cfg.Debug)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	defer logger.Close()

	client := newClient(cfg, logger)
	exporter := export.New(cfg.DataDir)

	model := ui.NewModel(cfg, client, st, exporter, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// newClient wires the client's trace hook into the debug log.
func newClient(cfg config.AppConfig, logger *debuglog.Logger) *api.Client {
	client := api.New(cfg.BaseURL, cfg.APIKey)
	client.Trace = func(method, url string, status int, elapsed time.Duration, err error) {
		fields := map[string]any{
			"method":     method,
			"url":        url,
			"status":     status,
			"elapsed_ms": elapsed.Milliseconds(),
		}
		if err != nil {
			fields["error"] = err.Error()
			logger.Error("api request failed", fields)
			return
		}
		logger.Debug("api request", fields)
	}
	return client
}

// buildConfig merges saved state into whatever the flags left empty; flags
// always win.
func buildConfig() (config.AppConfig, *store.Store, error) {
	cfg, err := config.Resolve(config.Options{
		ThreadID: threadID,
		RunID:    runID,
		APIKey:   apiKey,
		BaseURL:  baseURL,
		DataDir:  dataDir,
		Debug:    debug,
	})
	if err != nil {
		return config.AppConfig{}, nil, err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return config.AppConfig{}, nil, fmt.Errorf("open state store: %w", err)
	}

	if reset {
		if err := st.Clear(); err != nil {
			st.Close()
			return config.AppConfig{}, nil, fmt.Errorf("clear saved state: %w", err)
		}
	}

	saved, err := st.Load()
	if err != nil {
		st.Close()
		return config.AppConfig{}, nil, fmt.Errorf("load saved state: %w", err)
	}
	if cfg.ThreadID == "" {
		cfg.ThreadID = saved.ThreadID
	}
	if cfg.RunID == "" {
		cfg.RunID = saved.RunID
	}
	if cfg.APIKey == "" {
		cfg.APIKey = saved.APIKey
	}
	cfg.Debug = cfg.Debug || saved.Debug

	return cfg, st, nil
}

func Execute() error {
	return rootCmd.Execute()
}
