package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

var _ domain.SnapshotStore = (*PostgresSnapshotRepository)(nil)

type PostgresSnapshotRepository struct {
	db *sqlx.DB
}

func NewPostgresSnapshotRepository(db *sqlx.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

func (r *PostgresSnapshotRepository) Load(ctx context.Context, playerID string, key domain.SnapshotKey) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		SELECT payload
		FROM game_snapshots
		WHERE player_id = $1 AND key = $2
	`

	var data []byte
	if err := r.db.GetContext(ctx, &data, query, playerID, string(key)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("repository: load snapshot failed: %w", err)
	}

	return data, nil
}

func (r *PostgresSnapshotRepository) Save(ctx context.Context, playerID string, key domain.SnapshotKey, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO game_snapshots (player_id, key, payload, version, updated_at)
		VALUES ($1, $2, $3::jsonb, COALESCE(($3::jsonb->>'version')::int, 1), NOW())
		ON CONFLICT (player_id, key)
		DO UPDATE SET payload = EXCLUDED.payload, version = EXCLUDED.version, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, playerID, string(key), string(data)); err != nil {
		return fmt.Errorf("repository: save snapshot failed: %w", err)
	}

	return nil
}

func (r *PostgresSnapshotRepository) Delete(ctx context.Context, playerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM game_snapshots WHERE player_id = $1`, playerID); err != nil {
		return fmt.Errorf("repository: delete snapshots failed: %w", err)
	}

	return nil
}
