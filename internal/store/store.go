package store

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists the last-used form input between sessions.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// State zero values mean nothing was saved yet.
type State struct {
	ThreadID string
	RunID    string
	APIKey   string
	Debug    bool
}

const (
	keyThreadID = "thread_id"
	keyRunID    = "run_id"
	keyAPIKey   = "api_key"
	keyDebug    = "debug"
)

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	stmts := []string{
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS state (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT key, value FROM state`)
	if err != nil {
		return State{}, fmt.Errorf("load state: %w", err)
	}
	defer rows.Close()

	var st State
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return State{}, fmt.Errorf("scan state row: %w", err)
		}
		switch key {
		case keyThreadID:
			st.ThreadID = value
		case keyRunID:
			st.RunID = value
		case keyAPIKey:
			st.APIKey = value
		case keyDebug:
			st.Debug = value == "1"
		}
	}
	if err := rows.Err(); err != nil {
		return State{}, fmt.Errorf("iterate state rows: %w", err)
	}
	return st, nil
}

func (s *Store) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer tx.Rollback()

	debug := "0"
	if st.Debug {
		debug = "1"
	}
	pairs := map[string]string{
		keyThreadID: st.ThreadID,
		keyRunID:    st.RunID,
		keyAPIKey:   st.APIKey,
		keyDebug:    debug,
	}

	for key, value := range pairs {
		if _, err := tx.Exec(`
			INSERT INTO state(key, value) VALUES(?, ?)
			ON CONFLICT(key) DO UPDATE SET value=excluded.value
		`, key, value); err != nil {
			return fmt.Errorf("upsert %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM state`); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}
