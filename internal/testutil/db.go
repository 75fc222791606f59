package testutil

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/manubot/manubot/internal/store"
	"github.com/manubot/manubot/internal/store/migrations"
)

// NewTestDB creates an in-memory SQLite database with migrations applied.
// The database is automatically closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")

	// every pooled connection to :memory: would see its own empty database
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	err = migrations.Run(db)
	require.NoError(t, err, "failed to run migrations")

	return db
}

// NewTestStore wraps NewTestDB in a store.Store.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.NewWithDB(NewTestDB(t))
}

// SeedRuns inserts runs into s. Runs without timestamps are spaced one
// minute apart starting at base, in slice order.
func SeedRuns(t *testing.T, s *store.Store, base time.Time, runs []store.Run) {
	t.Helper()

	for i, run := range runs {
		if run.StartedAt.IsZero() {
			run.StartedAt = base.Add(time.Duration(i) * time.Minute)
		}
		if run.FinishedAt.IsZero() {
			run.FinishedAt = run.StartedAt.Add(time.Second)
		}
		_, err := s.RecordRun(run)
		require.NoError(t, err, "failed to seed run: %+v", run)
	}
}
