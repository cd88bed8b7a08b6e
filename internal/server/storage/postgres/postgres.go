// Package postgres backs the table service with PostgreSQL via pgx.
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Blank import registers the PostgreSQL driver for migrations.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"zervitravel/internal/server/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

const uniqueViolation = "23505"

type Storage struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func New(ctx context.Context, databaseURI string, log *slog.Logger) (*Storage, error) {
	if err := migrateUp(databaseURI); err != nil {
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}

	pool, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	log.Debug("postgres table storage ready")
	return &Storage{db: pool, log: log}, nil
}

func migrateUp(databaseURI string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURI)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Storage) Close() error {
	s.db.Close()
	return nil
}

func (s *Storage) List(ctx context.Context, collection string) ([]storage.Row, error) {
	rows, err := s.db.Query(ctx,
		`SELECT collection, id, data, version, created_at, updated_at
         FROM records WHERE collection = $1
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
	err := s.db.QueryRow(ctx,
		`SELECT collection, id, data, version, created_at, updated_at
         FROM records WHERE collection = $1 AND id = $2`,
		collection, id).
		Scan(&r.Collection, &r.ID, &r.Data, &r.Version, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, storage.ErrNotFound
	}
	return &r, nil
}

func (s *Storage) Insert(ctx context.Context, collection, id string, data []byte) (*storage.Row, error) {
	var r storage.Row
	err := s.db.QueryRow(ctx,
		`INSERT INTO records (collection, id, data)
         VALUES ($1, $2, $3)
         RETURNING collection, id, data, version, created_at, updated_at`,
		collection, id, data).
		Scan(&r.Collection, &r.ID, &r.Data, &r.Version, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		var perr *pgconn.PgError
		if errors.As(err, &perr) && perr.Code == uniqueViolation {
			return nil, storage.ErrDuplicate
		}
		return nil, err
	}
	return &r, nil
}

func (s *Storage) Update(ctx context.Context, collection, id string, baseVersion int, data []byte) (*storage.Row, error) {
	query := `UPDATE records SET data = $3, version = version + 1, updated_at = NOW()
              WHERE collection = $1 AND id = $2
              RETURNING collection, id, data, version, created_at, updated_at`
	args := []any{collection, id, data}
	if baseVersion > 0 {
		query = `UPDATE records SET data = $3, version = version + 1, updated_at = NOW()
                 WHERE collection = $1 AND id = $2 AND version = $4
                 RETURNING collection, id, data, version, created_at, updated_at`
		args = append(args, baseVersion)
	}

	var r storage.Row
	err := s.db.QueryRow(ctx, query, args...).
		Scan(&r.Collection, &r.ID, &r.Data, &r.Version, &r.CreatedAt, &r.UpdatedAt)
	if err == nil {
		return &r, nil
	}

	// No row matched. Distinguish a missing row from a stale version.
	if _, gerr := s.Get(ctx, collection, id); gerr != nil {
		return nil, gerr
	}
	return nil, storage.ErrConflict
}

func (s *Storage) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM records WHERE collection = $1 AND id = $2`,
		collection, id)
	return err
}
