package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_BootstrapsReportSchema(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "duckdb-test-*")
	require.NoError(t, err)

	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	}()

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO ai_reports (tenant_id, subject, content) VALUES (?, ?, ?)`,
		"tenant-001", "Q2 summary", "All projects on track.",
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM ai_reports WHERE tenant_id = ?", "tenant-001").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// the sequence assigns ids starting at 1
	var id int64
	err = db.QueryRow("SELECT id FROM ai_reports WHERE tenant_id = ?", "tenant-001").Scan(&id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestQuerierFrom(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	t.Run("bare context writes through the db", func(t *testing.T) {
		assert.Equal(t, Querier(db), QuerierFrom(context.Background(), db))
	})

	t.Run("ambient transaction wins", func(t *testing.T) {
		tx, err := db.Begin()
		require.NoError(t, err)
		defer func() {
			require.NoError(t, tx.Rollback())
		}()

		ctx := WithTransaction(context.Background(), tx)
		assert.Equal(t, Querier(tx), QuerierFrom(ctx, db))
	})
}
