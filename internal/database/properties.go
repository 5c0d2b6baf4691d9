package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/omriShneor/project_concierge/internal/catalogue"
)

const propertyColumns = `
	id, name, address, district, zone, rooms, beds, bathrooms, size,
	wifi_name, wifi_password, lockbox_code, access_type, host, gps_link,
	guidance, notes, kitchen_appliances, laundry_appliances,
	electricity_meter, water_meter, gas_meter, security_contact,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(scanner rowScanner) (*catalogue.Property, error) {
	var p catalogue.Property
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Address, &p.District, &p.Zone, &p.Rooms, &p.Beds, &p.Bathrooms, &p.Size,
		&p.WifiName, &p.WifiPassword, &p.LockboxCode, &p.AccessType, &p.Host, &p.GPSLink,
		&p.Guidance, &p.Notes, &p.KitchenAppliances, &p.LaundryAppliances,
		&p.ElectricityMeter, &p.WaterMeter, &p.GasMeter, &p.SecurityContact,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// CreateProperty inserts a listing and returns it with its assigned ID.
func (d *DB) CreateProperty(ctx context.Context, p catalogue.Property) (*catalogue.Property, error) {
	ts := now()
	result, err := d.ExecContext(ctx, `
		INSERT INTO properties (
			name, address, district, zone, rooms, beds, bathrooms, size,
			wifi_name, wifi_password, lockbox_code, access_type, host, gps_link,
			guidance, notes, kitchen_appliances, laundry_appliances,
			electricity_meter, water_meter, gas_meter, security_contact,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.Name, p.Address, p.District, p.Zone, p.Rooms, p.Beds, p.Bathrooms, p.Size,
		p.WifiName, p.WifiPassword, p.LockboxCode, p.AccessType, p.Host, p.GPSLink,
		p.Guidance, p.Notes, p.KitchenAppliances, p.LaundryAppliances,
		p.ElectricityMeter, p.WaterMeter, p.GasMeter, p.SecurityContact,
		ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get property id: %w", err)
	}

	p.ID = id
	p.CreatedAt = ts
	p.UpdatedAt = ts
	return &p, nil
}

// UpdateProperty replaces every editable column of an existing listing.
func (d *DB) UpdateProperty(ctx context.Context, p catalogue.Property) error {
	result, err := d.ExecContext(ctx, `
		UPDATE properties SET
			name = ?, address = ?, district = ?, zone = ?, rooms = ?, beds = ?, bathrooms = ?, size = ?,
			wifi_name = ?, wifi_password = ?, lockbox_code = ?, access_type = ?, host = ?, gps_link = ?,
			guidance = ?, notes = ?, kitchen_appliances = ?, laundry_appliances = ?,
			electricity_meter = ?, water_meter = ?, gas_meter = ?, security_contact = ?,
			updated_at = ?
		WHERE id = ?
	`,
		p.Name, p.Address, p.District, p.Zone, p.Rooms, p.Beds, p.Bathrooms, p.Size,
		p.WifiName, p.WifiPassword, p.LockboxCode, p.AccessType, p.Host, p.GPSLink,
		p.Guidance, p.Notes, p.KitchenAppliances, p.LaundryAppliances,
		p.ElectricityMeter, p.WaterMeter, p.GasMeter, p.SecurityContact,
		now(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return requireAffected(result)
}

// DeleteProperty removes a listing. Guests pointing at it keep their row
// with a NULL property.
func (d *DB) DeleteProperty(ctx context.Context, id int64) error {
	result, err := d.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return requireAffected(result)
}

// GetProperty returns nil, nil when no listing has the given ID.
func (d *DB) GetProperty(ctx context.Context, id int64) (*catalogue.Property, error) {
	row := d.QueryRowContext(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = ?`, id)
	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return p, nil
}

// ListAll returns the whole catalogue in ID order.
func (d *DB) ListAll(ctx context.Context) ([]catalogue.Property, error) {
	rows, err := d.QueryContext(ctx, `SELECT `+propertyColumns+` FROM properties ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var props []catalogue.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		props = append(props, *p)
	}
	return props, rows.Err()
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
