package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

var _ domain.SnapshotStore = (*SQLiteSnapshotRepository)(nil)

// SQLiteSnapshotRepository keeps a single local player's documents in one file.
type SQLiteSnapshotRepository struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at path and migrates it.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSnapshotRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	_, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS game_snapshots (
		player_id TEXT NOT NULL,
		key TEXT NOT NULL,
		payload TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (player_id, key)
	);`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	return &SQLiteSnapshotRepository{db: db}, nil
}

func (r *SQLiteSnapshotRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteSnapshotRepository) Load(ctx context.Context, playerID string, key domain.SnapshotKey) ([]byte, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM game_snapshots WHERE player_id = ? AND key = ?`,
		playerID, string(key),
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return []byte(data), nil
}

func (r *SQLiteSnapshotRepository) Save(ctx context.Context, playerID string, key domain.SnapshotKey, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO game_snapshots (player_id, key, payload, version, updated_at)
		VALUES (?1, ?2, ?3, COALESCE(json_extract(?3, '$.version'), 1), ?4)
		ON CONFLICT(player_id, key) DO UPDATE SET
			payload = excluded.payload, version = excluded.version, updated_at = excluded.updated_at`,
		playerID, string(key), string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepository) Delete(ctx context.Context, playerID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM game_snapshots WHERE player_id = ?`, playerID); err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}
	return nil
}
