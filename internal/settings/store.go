// Package settings persists per-channel defaults, currently just the
// ordered project keys a channel's commands target.
package settings

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store is the settings lookup the dispatcher depends on.
type Store interface {
	ChannelProjects(ctx context.Context, channel string) ([]string, error)
	SetChannelProjects(ctx context.Context, channel string, keys []string) error
	ClearChannel(ctx context.Context, channel string) error
	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the settings database and applies
// migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS channel_projects (
		channel TEXT PRIMARY KEY,
		project_keys TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ChannelProjects returns the channel's default project keys in configured
// order, or nil when the channel has none.
func (s *SQLiteStore) ChannelProjects(ctx context.Context, channel string) ([]string, error) {
	var joined string
	err := s.db.QueryRowContext(ctx,
		`SELECT project_keys FROM channel_projects WHERE channel = ?`, channel).Scan(&joined)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if joined == "" {
		return nil, nil
	}
	return strings.Split(joined, ","), nil
}

// SetChannelProjects replaces the channel's default project keys.
func (s *SQLiteStore) SetChannelProjects(ctx context.Context, channel string, keys []string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO channel_projects (channel, project_keys) VALUES (?, ?)
		 ON CONFLICT(channel) DO UPDATE SET project_keys = excluded.project_keys`,
		channel, strings.Join(keys, ","))
	return err
}

// ClearChannel removes the channel's defaults.
func (s *SQLiteStore) ClearChannel(ctx context.Context, channel string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM channel_projects WHERE channel = ?`, channel)
	return err
}

// MemoryStore is an in-memory Store for tests and for running without a
// settings database.
type MemoryStore struct {
	projects map[string][]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string][]string)}
}

func (m *MemoryStore) ChannelProjects(ctx context.Context, channel string) ([]string, error) {
	return m.projects[channel], nil
}

func (m *MemoryStore) SetChannelProjects(ctx context.Context, channel string, keys []string) error {
	m.projects[channel] = append([]string(nil), keys...)
	return nil
}

func (m *MemoryStore) ClearChannel(ctx context.Context, channel string) error {
	delete(m.projects, channel)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
