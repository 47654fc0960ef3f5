package repository

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func setupSnapshotDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("pgx", testDBConfig().DSN())
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, EnsureSchema(context.Background(), db))
	return db
}

func TestPostgresSnapshotRepository_Integration(t *testing.T) {
	exerciseSnapshotStore(t, NewPostgresSnapshotRepository(setupSnapshotDB(t)))
}
