// Package sqlite backs the table service with a single SQLite file.
// It is the default backend for local runs; production deployments
// point DATABASE_URI at Postgres instead.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	sqlite3 "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"zervitravel/internal/server/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

func New(path string, log *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	log.Debug("sqlite table storage ready", slog.String("path", path))
	return &Storage{db: db, log: log}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) List(ctx context.Context, collection string) ([]storage.Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT collection, id, data, version, created_at, updated_at
         FROM records WHERE collection = ?
         ORDER BY created_at DESC, seq DESC`,
		collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []storage.Row
	for rows.Next() {
		var r storage.Row
		if err := rows.Scan(&r.Collection, &r.ID, &r.Data, &r.Version, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Storage) Get(ctx context.Context, collection, id string) (*storage.Row, error) {
	var r storage.Row
	err := s.db.QueryRowContext(ctx,
		`SELECT collection, id, data, version, created_at, updated_at
         FROM records WHERE collection = ? AND id = ?`,
		collection, id).
		Scan(&r.Collection, &r.ID, &r.Data, &r.Version, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Storage) Insert(ctx context.Context, collection, id string, data []byte) (*storage.Row, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (collection, id, data, version, created_at, updated_at)
         VALUES (?, ?, ?, 1, ?, ?)`,
		collection, id, data, now, now)
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
			return nil, storage.ErrDuplicate
		}
		return nil, err
	}
	return s.Get(ctx, collection, id)
}

func (s *Storage) Update(ctx context.Context, collection, id string, baseVersion int, data []byte) (*storage.Row, error) {
	now := time.Now().UTC()

	var res sql.Result
	var err error
	if baseVersion > 0 {
		res, err = s.db.ExecContext(ctx,
			`UPDATE records SET data = ?, version = version + 1, updated_at = ?
             WHERE collection = ? AND id = ? AND version = ?`,
			data, now, collection, id, baseVersion)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE records SET data = ?, version = version + 1, updated_at = ?
             WHERE collection = ? AND id = ?`,
			data, now, collection, id)
	}
	if err != nil {
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Distinguish a missing row from a stale version.
		if _, err := s.Get(ctx, collection, id); err != nil {
			return nil, err
		}
		return nil, storage.ErrConflict
	}
	return s.Get(ctx, collection, id)
}

func (s *Storage) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND id = ?`,
		collection, id)
	return err
}
