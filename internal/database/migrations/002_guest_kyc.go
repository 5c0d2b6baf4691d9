package migrations

import (
	"database/sql"
	"fmt"
)

func init() {
	Register(Migration{
		Version: 2,
		Name:    "guest_kyc",
		Up:      guestKYC,
	})
}

// guestKYC adds booking metadata and the lookup index for GIN codes.
func guestKYC(db *sql.DB) error {
	if err := AddColumnIfNotExists(db, "guests", "platform", "TEXT NOT NULL DEFAULT ''"); err != nil {
		return fmt.Errorf("failed to add guests.platform: %w", err)
	}
	if err := AddColumnIfNotExists(db, "guests", "nationality", "TEXT NOT NULL DEFAULT ''"); err != nil {
		return fmt.Errorf("failed to add guests.nationality: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_guests_gin ON guests(gin_code)`); err != nil {
		return fmt.Errorf("failed to create gin index: %w", err)
	}
	return nil
}
