package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omriShneor/project_concierge/internal/catalogue"
)

func TestPropertyCRUD(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	created := CreateTestProperty(t, db, catalogue.Property{
		Name:         "Nile View",
		Address:      "12 Road 9",
		District:     "Maadi",
		Rooms:        2,
		WifiName:     "NileNet",
		WifiPassword: "secret",
		AccessType:   "lockbox",
		LockboxCode:  "4321",
	})
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := db.GetProperty(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Nile View", got.Name)
	assert.Equal(t, "Maadi", got.District)
	assert.Equal(t, 2, got.Rooms)
	assert.Equal(t, "secret", got.WifiPassword)

	got.Notes = "Quiet hours after 11pm"
	got.Rooms = 3
	require.NoError(t, db.UpdateProperty(ctx, *got))

	updated, err := db.GetProperty(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quiet hours after 11pm", updated.Notes)
	assert.Equal(t, 3, updated.Rooms)

	require.NoError(t, db.DeleteProperty(ctx, created.ID))
	gone, err := db.GetProperty(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPropertyMissing(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	assert.ErrorIs(t, db.UpdateProperty(ctx, catalogue.Property{ID: 99, Name: "x"}), ErrNotFound)
	assert.ErrorIs(t, db.DeleteProperty(ctx, 99), ErrNotFound)
}

func TestListAll(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	empty, err := db.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	CreateTestProperty(t, db, catalogue.Property{District: "Zamalek"})
	CreateTestProperty(t, db, catalogue.Property{District: "Maadi"})

	props, err := db.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, "Zamalek", props[0].District)
	assert.Equal(t, "Maadi", props[1].District)
	assert.Less(t, props[0].ID, props[1].ID)
}

func TestListAllSatisfiesStore(t *testing.T) {
	var _ catalogue.Store = (*DB)(nil)
}

func TestPropertyQueryErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db := &DB{sqlDB}
	ctx := context.Background()

	mock.ExpectQuery("SELECT .* FROM properties ORDER BY id").WillReturnError(errors.New("disk I/O error"))
	_, err = db.ListAll(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list properties")

	mock.ExpectExec("INSERT INTO properties").WillReturnError(errors.New("database is locked"))
	_, err = db.CreateProperty(ctx, catalogue.Property{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create property")

	mock.ExpectExec("UPDATE properties SET").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, db.UpdateProperty(ctx, catalogue.Property{ID: 5}), ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
