package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// Logger writes JSON-line entries to a per-process file; the TUI owns
// stdout. A nil or disabled *Logger discards everything.
type Logger struct {
	mu        sync.Mutex
	file      *os.File
	sessionID string
	enabled   bool
}

type entry struct {
	Time    string         `json:"time"`
	Session string         `json:"session"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

func New(dir string, enabled bool) (*Logger, error) {
	l := &Logger{sessionID: uuid.NewString(), enabled: enabled}
	if !enabled {
		return l, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	name := filepath.Join(dir, time.Now().Format("20060102-150405")+".jsonl")
	file, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = file
	return l, nil
}

func (l *Logger) SessionID() string {
	if l == nil {
		return ""
	}
	return l.sessionID
}

func (l *Logger) Debug(msg string, fields map[string]any) {
	l.log("debug", msg, fields)
}

func (l *Logger) Error(msg string, fields map[string]any) {
	l.log("error", msg, fields)
}

func (l *Logger) log(level, msg string, fields map[string]any) {
	if l == nil || !l.enabled || l.file == nil {
		return
	}

	line, err := sonic.Marshal(entry{
		Time:    time.Now().Format(time.RFC3339Nano),
		Session: l.sessionID,
		Level:   level,
		Message: msg,
		Fields:  fields,
	})
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.file.Write(append(line, '\n'))
}

func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
