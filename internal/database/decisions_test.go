package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoResponseLogs(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	_, err := db.CreateAutoResponseLog(ctx, AutoResponseLog{
		Sender:     "201001",
		Question:   "I want a refund",
		Kind:       "escalate",
		Confidence: "low",
		Reason:     "Requires human intervention",
		Success:    true,
		Response:   "I understand your concern.",
	})
	require.NoError(t, err)

	id, err := db.CreateAutoResponseLog(ctx, AutoResponseLog{
		Sender:       "201001",
		Question:     "wifi in Maadi?",
		Kind:         "answer",
		CanAnswer:    true,
		Confidence:   "high",
		ResponseType: "amenities",
		PropertyID:   Int64Ptr(3),
		Success:      true,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	logs, err := db.ListAutoResponseLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, "answer", logs[0].Kind)
	assert.True(t, logs[0].CanAnswer)
	require.NotNil(t, logs[0].PropertyID)
	assert.Equal(t, int64(3), *logs[0].PropertyID)

	assert.Equal(t, "escalate", logs[1].Kind)
	assert.False(t, logs[1].CanAnswer)
	assert.Nil(t, logs[1].PropertyID)

	limited, err := db.ListAutoResponseLogs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
