package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omriShneor/project_concierge/internal/catalogue"
)

// NewTestDB creates an in-memory SQLite database for testing.
// The database is automatically closed when the test completes.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CreateTestProperty inserts a listing for tests.
func CreateTestProperty(t *testing.T, db *DB, p catalogue.Property) *catalogue.Property {
	t.Helper()
	created, err := db.CreateProperty(context.Background(), p)
	require.NoError(t, err, "failed to create test property")
	return created
}

// CreateTestGuest inserts a guest for tests.
func CreateTestGuest(t *testing.T, db *DB, g Guest) *Guest {
	t.Helper()
	created, err := db.CreateGuest(context.Background(), g)
	require.NoError(t, err, "failed to create test guest")
	return created
}

// Int64Ptr returns a pointer to the given int64
func Int64Ptr(i int64) *int64 {
	return &i
}
