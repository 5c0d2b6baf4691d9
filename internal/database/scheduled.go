package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScheduledStatus is the lifecycle state of a scheduled message.
type ScheduledStatus string

const (
	ScheduledStatusPending   ScheduledStatus = "pending"
	ScheduledStatusSent      ScheduledStatus = "sent"
	ScheduledStatusCancelled ScheduledStatus = "cancelled"
	ScheduledStatusFailed    ScheduledStatus = "failed"
)

// dueBatchSize bounds how many messages one scheduler tick sends.
const dueBatchSize = 20

// ScheduledMessage is an outbound message queued for a future time.
type ScheduledMessage struct {
	ID            string          `json:"id"`
	Recipient     string          `json:"recipient"`
	Text          string          `json:"text"`
	ScheduledTime time.Time       `json:"scheduledTime"`
	Status        ScheduledStatus `json:"status"`
	Error         string          `json:"error,omitempty"`
	SentAt        *time.Time      `json:"sentAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

const scheduledColumns = `id, recipient, text, scheduled_time, status, error, sent_at, created_at`

func scanScheduled(scanner rowScanner) (*ScheduledMessage, error) {
	var m ScheduledMessage
	var sentAt sql.NullTime
	if err := scanner.Scan(&m.ID, &m.Recipient, &m.Text, &m.ScheduledTime, &m.Status, &m.Error, &sentAt, &m.CreatedAt); err != nil {
		return nil, err
	}
	if sentAt.Valid {
		m.SentAt = &sentAt.Time
	}
	return &m, nil
}

func (d *DB) CreateScheduledMessage(ctx context.Context, recipient, text string, at time.Time) (*ScheduledMessage, error) {
	m := ScheduledMessage{
		ID:            uuid.NewString(),
		Recipient:     recipient,
		Text:          text,
		ScheduledTime: at.UTC().Truncate(time.Second),
		Status:        ScheduledStatusPending,
		CreatedAt:     now(),
	}
	_, err := d.ExecContext(ctx, `
		INSERT INTO scheduled_messages (id, recipient, text, scheduled_time, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.ID, m.Recipient, m.Text, m.ScheduledTime, m.Status, m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduled message: %w", err)
	}
	return &m, nil
}

// ListScheduledMessages returns messages ordered by send time. An empty
// status lists all of them.
func (d *DB) ListScheduledMessages(ctx context.Context, status ScheduledStatus) ([]ScheduledMessage, error) {
	query := `SELECT ` + scheduledColumns + ` FROM scheduled_messages`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY scheduled_time ASC`
	return d.queryScheduled(ctx, query, args...)
}

// GetDueScheduledMessages returns pending messages scheduled at or before
// horizon, oldest first.
func (d *DB) GetDueScheduledMessages(ctx context.Context, horizon time.Time) ([]ScheduledMessage, error) {
	return d.queryScheduled(ctx, `
		SELECT `+scheduledColumns+` FROM scheduled_messages
		WHERE status = ? AND scheduled_time <= ?
		ORDER BY scheduled_time ASC
		LIMIT ?
	`, ScheduledStatusPending, horizon.UTC().Truncate(time.Second), dueBatchSize)
}

// MarkScheduledSent moves a pending message to sent.
func (d *DB) MarkScheduledSent(ctx context.Context, id string) error {
	result, err := d.ExecContext(ctx, `
		UPDATE scheduled_messages SET status = ?, sent_at = ?, error = ''
		WHERE id = ? AND status = ?
	`, ScheduledStatusSent, now(), id, ScheduledStatusPending)
	if err != nil {
		return fmt.Errorf("failed to mark scheduled message sent: %w", err)
	}
	return requireAffected(result)
}

func (d *DB) MarkScheduledFailed(ctx context.Context, id string, reason string) error {
	result, err := d.ExecContext(ctx, `
		UPDATE scheduled_messages SET status = ?, error = ?
		WHERE id = ? AND status = ?
	`, ScheduledStatusFailed, reason, id, ScheduledStatusPending)
	if err != nil {
		return fmt.Errorf("failed to mark scheduled message failed: %w", err)
	}
	return requireAffected(result)
}

// CancelScheduledMessage returns ErrNotFound unless the message is still
// pending.
func (d *DB) CancelScheduledMessage(ctx context.Context, id string) error {
	result, err := d.ExecContext(ctx, `
		UPDATE scheduled_messages SET status = ? WHERE id = ? AND status = ?
	`, ScheduledStatusCancelled, id, ScheduledStatusPending)
	if err != nil {
		return fmt.Errorf("failed to cancel scheduled message: %w", err)
	}
	return requireAffected(result)
}

func (d *DB) queryScheduled(ctx context.Context, query string, args ...any) ([]ScheduledMessage, error) {
	rows, err := d.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled messages: %w", err)
	}
	defer rows.Close()

	var msgs []ScheduledMessage
	for rows.Next() {
		m, err := scanScheduled(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheduled message: %w", err)
		}
		msgs = append(msgs, *m)
	}
	return msgs, rows.Err()
}
