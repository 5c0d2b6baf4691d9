package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduledLifecycle(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	late, err := db.CreateScheduledMessage(ctx, "201001", "Checkout is at noon", now.Add(-time.Minute))
	require.NoError(t, err)
	early, err := db.CreateScheduledMessage(ctx, "201002", "Welcome!", now.Add(-time.Hour))
	require.NoError(t, err)
	future, err := db.CreateScheduledMessage(ctx, "201003", "Later", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, ScheduledStatusPending, future.Status)

	due, err := db.GetDueScheduledMessages(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, early.ID, due[0].ID)
	assert.Equal(t, late.ID, due[1].ID)

	require.NoError(t, db.MarkScheduledSent(ctx, early.ID))
	require.NoError(t, db.MarkScheduledFailed(ctx, late.ID, "not connected"))
	require.NoError(t, db.CancelScheduledMessage(ctx, future.ID))

	// terminal states are final
	assert.ErrorIs(t, db.MarkScheduledSent(ctx, early.ID), ErrNotFound)
	assert.ErrorIs(t, db.CancelScheduledMessage(ctx, late.ID), ErrNotFound)
	assert.ErrorIs(t, db.CancelScheduledMessage(ctx, "missing"), ErrNotFound)

	due, err = db.GetDueScheduledMessages(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, due)

	all, err := db.ListScheduledMessages(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	sent, err := db.ListScheduledMessages(ctx, ScheduledStatusSent)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	require.NotNil(t, sent[0].SentAt)

	failed, err := db.ListScheduledMessages(ctx, ScheduledStatusFailed)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "not connected", failed[0].Error)
}

func TestGetDueScheduledMessagesBatch(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)

	for i := 0; i < dueBatchSize+5; i++ {
		_, err := db.CreateScheduledMessage(ctx, "1", "x", past.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	due, err := db.GetDueScheduledMessages(ctx, time.Now())
	require.NoError(t, err)
	assert.Len(t, due, dueBatchSize)
}
