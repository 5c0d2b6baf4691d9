package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Guest is a booked stay, used to verify who is writing in.
type Guest struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	GINCode     string    `json:"ginCode,omitempty"`
	Email       string    `json:"email,omitempty"`
	PropertyID  *int64    `json:"propertyId,omitempty"`
	CheckIn     string    `json:"checkIn,omitempty"`
	CheckOut    string    `json:"checkOut,omitempty"`
	Platform    string    `json:"platform,omitempty"`
	Nationality string    `json:"nationality,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

const guestColumns = `
	id, name, phone, gin_code, email, property_id, check_in, check_out,
	platform, nationality, created_at`

func scanGuest(scanner rowScanner) (*Guest, error) {
	var g Guest
	var propertyID sql.NullInt64
	err := scanner.Scan(
		&g.ID, &g.Name, &g.Phone, &g.GINCode, &g.Email, &propertyID, &g.CheckIn, &g.CheckOut,
		&g.Platform, &g.Nationality, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if propertyID.Valid {
		g.PropertyID = &propertyID.Int64
	}
	return &g, nil
}

// CreateGuest stores a guest. Phone numbers are kept as given; lookups
// compare digits only.
func (d *DB) CreateGuest(ctx context.Context, g Guest) (*Guest, error) {
	ts := now()
	result, err := d.ExecContext(ctx, `
		INSERT INTO guests (
			name, phone, gin_code, email, property_id, check_in, check_out,
			platform, nationality, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		g.Name, g.Phone, g.GINCode, strings.ToLower(g.Email), g.PropertyID, g.CheckIn, g.CheckOut,
		g.Platform, g.Nationality, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get guest id: %w", err)
	}

	g.ID = id
	g.Email = strings.ToLower(g.Email)
	g.CreatedAt = ts
	return &g, nil
}

func (d *DB) ListGuests(ctx context.Context) ([]Guest, error) {
	return d.queryGuests(ctx, `SELECT `+guestColumns+` FROM guests ORDER BY id`)
}

// GetGuestByPhone matches on digits only, so "+20 100 123" finds "20100123".
func (d *DB) GetGuestByPhone(ctx context.Context, digits string) (*Guest, error) {
	if digits == "" {
		return nil, nil
	}
	return d.queryOneGuest(ctx, `
		SELECT `+guestColumns+` FROM guests
		WHERE REPLACE(REPLACE(REPLACE(REPLACE(phone, '+', ''), ' ', ''), '-', ''), '@s.whatsapp.net', '') = ?
		ORDER BY id DESC LIMIT 1
	`, digits)
}

// FindGuestsByName returns every guest whose name contains the given text,
// case-insensitively.
func (d *DB) FindGuestsByName(ctx context.Context, name string) ([]Guest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	return d.queryGuests(ctx, `
		SELECT `+guestColumns+` FROM guests
		WHERE LOWER(name) LIKE '%' || LOWER(?) || '%'
		ORDER BY id
	`, name)
}

func (d *DB) GetGuestByGIN(ctx context.Context, gin string) (*Guest, error) {
	gin = strings.TrimSpace(gin)
	if gin == "" {
		return nil, nil
	}
	return d.queryOneGuest(ctx, `
		SELECT `+guestColumns+` FROM guests WHERE UPPER(gin_code) = UPPER(?) ORDER BY id DESC LIMIT 1
	`, gin)
}

func (d *DB) GetGuestByEmail(ctx context.Context, email string) (*Guest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	return d.queryOneGuest(ctx, `
		SELECT `+guestColumns+` FROM guests WHERE email = ? ORDER BY id DESC LIMIT 1
	`, email)
}

func (d *DB) queryOneGuest(ctx context.Context, query string, args ...any) (*Guest, error) {
	g, err := scanGuest(d.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	return g, nil
}

func (d *DB) queryGuests(ctx context.Context, query string, args ...any) ([]Guest, error) {
	rows, err := d.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	var guests []Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, *g)
	}
	return guests, rows.Err()
}
