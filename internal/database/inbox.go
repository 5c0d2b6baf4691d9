package database

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/omriShneor/project_concierge/internal/inbox"
)

// InboxMessage is one stored line of a guest conversation.
type InboxMessage struct {
	ID            string          `json:"id"`
	ContactNumber string          `json:"contactNumber"`
	ContactName   string          `json:"contactName,omitempty"`
	Text          string          `json:"text"`
	Direction     inbox.Direction `json:"direction"`
	Agent         inbox.Agent     `json:"agent"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Conversation summarises the latest message exchanged with one contact.
type Conversation struct {
	ContactNumber string    `json:"contactNumber"`
	ContactName   string    `json:"contactName,omitempty"`
	LastMessage   string    `json:"lastMessage"`
	LastAgent     string    `json:"lastAgent"`
	LastAt        time.Time `json:"lastAt"`
	MessageCount  int       `json:"messageCount"`
}

// InsertInboxMessage assigns an ID and timestamp when they are missing.
func (d *DB) InsertInboxMessage(ctx context.Context, m InboxMessage) (*InboxMessage, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now()
	} else {
		m.CreatedAt = m.CreatedAt.UTC().Truncate(time.Second)
	}
	if m.Status == "" {
		m.Status = "delivered"
	}

	_, err := d.ExecContext(ctx, `
		INSERT INTO inbox_messages (id, contact_number, contact_name, text, direction, agent, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.ContactNumber, m.ContactName, m.Text, m.Direction, m.Agent, m.Status, m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert inbox message: %w", err)
	}
	return &m, nil
}

// ListConversations returns one row per contact, most recent first.
func (d *DB) ListConversations(ctx context.Context) ([]Conversation, error) {
	rows, err := d.QueryContext(ctx, `
		SELECT m.contact_number,
			(SELECT contact_name FROM inbox_messages n
				WHERE n.contact_number = m.contact_number AND n.contact_name != ''
				ORDER BY n.created_at DESC LIMIT 1),
			m.text, m.agent, m.created_at,
			(SELECT COUNT(*) FROM inbox_messages c WHERE c.contact_number = m.contact_number)
		FROM inbox_messages m
		WHERE m.rowid = (
			SELECT l.rowid FROM inbox_messages l
			WHERE l.contact_number = m.contact_number
			ORDER BY l.created_at DESC, l.rowid DESC LIMIT 1
		)
		ORDER BY m.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var convs []Conversation
	for rows.Next() {
		var c Conversation
		var name *string
		if err := rows.Scan(&c.ContactNumber, &name, &c.LastMessage, &c.LastAgent, &c.LastAt, &c.MessageCount); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		if name != nil {
			c.ContactName = *name
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

// ListConversationMessages returns a contact's messages oldest first.
func (d *DB) ListConversationMessages(ctx context.Context, contact string, limit int) ([]InboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := d.QueryContext(ctx, `
		SELECT id, contact_number, contact_name, text, direction, agent, status, created_at
		FROM inbox_messages
		WHERE contact_number = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, contact, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var msgs []InboxMessage
	for rows.Next() {
		var m InboxMessage
		if err := rows.Scan(&m.ID, &m.ContactNumber, &m.ContactName, &m.Text, &m.Direction, &m.Agent, &m.Status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(msgs)
	return msgs, nil
}
