package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AutoResponseLog records what the engine decided for one inbound question
// and whether a reply went out.
type AutoResponseLog struct {
	ID           int64     `json:"id"`
	Sender       string    `json:"sender"`
	Question     string    `json:"question"`
	Kind         string    `json:"kind"`
	CanAnswer    bool      `json:"canAnswer"`
	Confidence   string    `json:"confidence"`
	Reason       string    `json:"reason"`
	ResponseType string    `json:"responseType,omitempty"`
	PropertyID   *int64    `json:"propertyId,omitempty"`
	Success      bool      `json:"success"`
	Response     string    `json:"response,omitempty"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (d *DB) CreateAutoResponseLog(ctx context.Context, entry AutoResponseLog) (int64, error) {
	result, err := d.ExecContext(ctx, `
		INSERT INTO auto_responses (
			sender, question, kind, can_answer, confidence, reason,
			response_type, property_id, success, response, error, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.Sender, entry.Question, entry.Kind, entry.CanAnswer, entry.Confidence, entry.Reason,
		entry.ResponseType, entry.PropertyID, entry.Success, entry.Response, entry.Error, now(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create auto response log: %w", err)
	}
	return result.LastInsertId()
}

// ListAutoResponseLogs returns the newest entries first.
func (d *DB) ListAutoResponseLogs(ctx context.Context, limit int) ([]AutoResponseLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.QueryContext(ctx, `
		SELECT id, sender, question, kind, can_answer, confidence, reason,
			response_type, property_id, success, response, error, created_at
		FROM auto_responses
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto response logs: %w", err)
	}
	defer rows.Close()

	var logs []AutoResponseLog
	for rows.Next() {
		var e AutoResponseLog
		var propertyID sql.NullInt64
		if err := rows.Scan(
			&e.ID, &e.Sender, &e.Question, &e.Kind, &e.CanAnswer, &e.Confidence, &e.Reason,
			&e.ResponseType, &propertyID, &e.Success, &e.Response, &e.Error, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan auto response log: %w", err)
		}
		if propertyID.Valid {
			e.PropertyID = &propertyID.Int64
		}
		logs = append(logs, e)
	}
	return logs, rows.Err()
}
