package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omriShneor/project_concierge/internal/database/migrations"
)

func TestNewAppliesMigrations(t *testing.T) {
	db := NewTestDB(t)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 2, count)

	for _, col := range []string{"platform", "nationality"} {
		exists, err := migrations.ColumnExists(db.DB, "guests", col)
		require.NoError(t, err)
		assert.True(t, exists, col)
	}
}

func TestNewReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concierge.db")

	first, err := New(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	var count int
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 2, count)
}
