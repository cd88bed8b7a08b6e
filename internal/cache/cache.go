// Package cache persists per-collection snapshots on the device. It is a
// namespaced key-value store: "{collection}.snapshot" holds what the
// client last saw, "{collection}.customDefault" holds a user-saved
// baseline dataset for future bootstraps. The two slots never collide.
package cache

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
)

const (
	keySnapshot         = ".snapshot"
	keyCustomDefault    = ".customDefault"
	keyHasCustomDefault = ".hasCustomDefault"
)

// KV is the snapshot cache contract. Loads report absence, not errors;
// a broken cache must never fail the calling operation.
type KV interface {
	SaveSnapshot(collection string, data []byte) error
	LoadSnapshot(collection string) ([]byte, bool)
	SaveCustomDefault(collection string, data []byte) error
	LoadCustomDefault(collection string) ([]byte, bool)
	HasCustomDefault(collection string) bool
	Close() error
}

// SQLite is the regular on-disk implementation.
type SQLite struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSQLite(path string, log *slog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open snapshot cache: %w", err)
	}

	c := &SQLite{db: db, log: log}
	if err := c.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot cache: %w", err)
	}
	return c, nil
}

func (c *SQLite) initTables() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	return err
}

func (c *SQLite) set(key string, value []byte) error {
	_, err := c.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cache write %s: %w", key, err)
	}
	return nil
}

func (c *SQLite) get(key string) ([]byte, bool) {
	var value []byte
	err := c.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		c.log.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	return value, true
}

func (c *SQLite) SaveSnapshot(collection string, data []byte) error {
	return c.set(collection+keySnapshot, data)
}

func (c *SQLite) LoadSnapshot(collection string) ([]byte, bool) {
	return c.get(collection + keySnapshot)
}

func (c *SQLite) SaveCustomDefault(collection string, data []byte) error {
	if err := c.set(collection+keyCustomDefault, data); err != nil {
		return err
	}
	return c.set(collection+keyHasCustomDefault, []byte("true"))
}

func (c *SQLite) LoadCustomDefault(collection string) ([]byte, bool) {
	return c.get(collection + keyCustomDefault)
}

func (c *SQLite) HasCustomDefault(collection string) bool {
	flag, ok := c.get(collection + keyHasCustomDefault)
	return ok && string(flag) == "true"
}

func (c *SQLite) Close() error {
	return c.db.Close()
}

// Memory is the fallback used when the on-disk cache cannot be opened.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.values[key] = cp
}

func (m *Memory) get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok
}

func (m *Memory) SaveSnapshot(collection string, data []byte) error {
	m.set(collection+keySnapshot, data)
	return nil
}

func (m *Memory) LoadSnapshot(collection string) ([]byte, bool) {
	return m.get(collection + keySnapshot)
}

func (m *Memory) SaveCustomDefault(collection string, data []byte) error {
	m.set(collection+keyCustomDefault, data)
	m.set(collection+keyHasCustomDefault, []byte("true"))
	return nil
}

func (m *Memory) LoadCustomDefault(collection string) ([]byte, bool) {
	return m.get(collection + keyCustomDefault)
}

func (m *Memory) HasCustomDefault(collection string) bool {
	flag, ok := m.get(collection + keyHasCustomDefault)
	return ok && string(flag) == "true"
}

func (m *Memory) Close() error {
	return nil
}
