package migrations

import "database/sql"

func init() {
	Register(Migration{
		Version: 1,
		Name:    "initial_schema",
		Up:      initialSchema,
	})
}

func initialSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			district TEXT NOT NULL DEFAULT '',
			zone TEXT NOT NULL DEFAULT '',
			rooms INTEGER NOT NULL DEFAULT 0,
			beds INTEGER NOT NULL DEFAULT 0,
			bathrooms INTEGER NOT NULL DEFAULT 0,
			size TEXT NOT NULL DEFAULT '',
			wifi_name TEXT NOT NULL DEFAULT '',
			wifi_password TEXT NOT NULL DEFAULT '',
			lockbox_code TEXT NOT NULL DEFAULT '',
			access_type TEXT NOT NULL DEFAULT '',
			host TEXT NOT NULL DEFAULT '',
			gps_link TEXT NOT NULL DEFAULT '',
			guidance TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			kitchen_appliances TEXT NOT NULL DEFAULT '',
			laundry_appliances TEXT NOT NULL DEFAULT '',
			electricity_meter TEXT NOT NULL DEFAULT '',
			water_meter TEXT NOT NULL DEFAULT '',
			gas_meter TEXT NOT NULL DEFAULT '',
			security_contact TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS guests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			gin_code TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			property_id INTEGER REFERENCES properties(id) ON DELETE SET NULL,
			check_in TEXT NOT NULL DEFAULT '',
			check_out TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_guests_phone ON guests(phone);
		CREATE INDEX IF NOT EXISTS idx_guests_email ON guests(email);

		CREATE TABLE IF NOT EXISTS inbox_messages (
			id TEXT PRIMARY KEY,
			contact_number TEXT NOT NULL,
			contact_name TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL,
			direction TEXT NOT NULL,
			agent TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'delivered',
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_inbox_contact ON inbox_messages(contact_number, created_at);

		CREATE TABLE IF NOT EXISTS scheduled_messages (
			id TEXT PRIMARY KEY,
			recipient TEXT NOT NULL,
			text TEXT NOT NULL,
			scheduled_time DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			error TEXT NOT NULL DEFAULT '',
			sent_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scheduled_due ON scheduled_messages(status, scheduled_time);

		CREATE TABLE IF NOT EXISTS auto_responses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sender TEXT NOT NULL DEFAULT '',
			question TEXT NOT NULL,
			kind TEXT NOT NULL,
			can_answer INTEGER NOT NULL DEFAULT 0,
			confidence TEXT NOT NULL DEFAULT '',
			reason TEXT NOT NULL DEFAULT '',
			response_type TEXT NOT NULL DEFAULT '',
			property_id INTEGER,
			success INTEGER NOT NULL DEFAULT 0,
			response TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}
