package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const DefaultGlamourStyle = "dark"

// AppConfig fields may still be empty; the input form collects what's missing.
type AppConfig struct {
	ThreadID string
	RunID    string
	APIKey   string
	BaseURL  string
	DataDir  string
	DBPath   string
	LogDir   string
	Debug    bool
}

type Options struct {
	ThreadID string
	RunID    string
	APIKey   string
	BaseURL  string
	DataDir  string
	Debug    bool
}

func Resolve(opts Options) (AppConfig, error) {
	cfg := AppConfig{
		ThreadID: opts.ThreadID,
		RunID:    opts.RunID,
		APIKey:   DetectAPIKey(opts.APIKey),
		BaseURL:  opts.BaseURL,
		Debug:    opts.Debug,
	}

	dataDir, err := DetectDataDir(opts.DataDir)
	if err != nil {
		return cfg, err
	}
	cfg.DataDir = dataDir
	cfg.DBPath = filepath.Join(dataDir, "state.sqlite")
	cfg.LogDir = filepath.Join(dataDir, "logs")
	return cfg, nil
}

func DetectAPIKey(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv("OPENAI_API_KEY")
}

// DetectDataDir precedence: explicit value, RUNFALL_DATA_DIR, then
// ~/.local/share/runfall. The directory is created if missing.
func DetectDataDir(explicit string) (string, error) {
	dir := explicit
	if dir == "" {
		dir = os.Getenv("RUNFALL_DATA_DIR")
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "runfall")
	}

	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}
