package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omriShneor/project_concierge/internal/inbox"
)

func TestInboxConversations(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	insert := func(number, name, text string, dir inbox.Direction, agent inbox.Agent, at time.Time) {
		t.Helper()
		_, err := db.InsertInboxMessage(ctx, InboxMessage{
			ContactNumber: number,
			ContactName:   name,
			Text:          text,
			Direction:     dir,
			Agent:         agent,
			CreatedAt:     at,
		})
		require.NoError(t, err)
	}

	insert("201001", "Sara", "What's the wifi?", inbox.DirectionInbound, inbox.AgentGuest, base)
	insert("201001", "", "The network is NileNet", inbox.DirectionOutbound, inbox.AgentAuto, base.Add(time.Minute))
	insert("447700", "Tom", "Hello", inbox.DirectionInbound, inbox.AgentGuest, base.Add(2*time.Minute))

	convs, err := db.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, convs, 2)

	assert.Equal(t, "447700", convs[0].ContactNumber)
	assert.Equal(t, "Tom", convs[0].ContactName)
	assert.Equal(t, 1, convs[0].MessageCount)

	assert.Equal(t, "201001", convs[1].ContactNumber)
	assert.Equal(t, "Sara", convs[1].ContactName)
	assert.Equal(t, "The network is NileNet", convs[1].LastMessage)
	assert.Equal(t, string(inbox.AgentAuto), convs[1].LastAgent)
	assert.Equal(t, 2, convs[1].MessageCount)

	msgs, err := db.ListConversationMessages(ctx, "201001", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, inbox.DirectionInbound, msgs[0].Direction)
	assert.Equal(t, inbox.AgentAuto, msgs[1].Agent)
	assert.NotEmpty(t, msgs[0].ID)
	assert.Equal(t, "delivered", msgs[0].Status)

	latest, err := db.ListConversationMessages(ctx, "201001", 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "The network is NileNet", latest[0].Text)
}

func TestInsertInboxMessageDefaults(t *testing.T) {
	db := NewTestDB(t)

	m, err := db.InsertInboxMessage(context.Background(), InboxMessage{
		ContactNumber: "1",
		Text:          "hi",
		Direction:     inbox.DirectionInbound,
		Agent:         inbox.AgentGuest,
	})
	require.NoError(t, err)
	assert.Len(t, m.ID, 36)
	assert.False(t, m.CreatedAt.IsZero())
}
