// Package database owns the MySQL connection and the startup schema.
// InitSchema brings the store to the expected shape before any
// repository runs: it creates the five tables if absent, installs the
// session-expiry triggers and seeds the fixed licence categories.
package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Table definitions in dependency order.  Every statement is
// idempotent (CREATE TABLE IF NOT EXISTS with inline indexes), so the
// whole list is safe to run unconditionally on every startup.
var createTables = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		sub VARCHAR(191) NOT NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NULL,
		phone VARCHAR(32) NULL,
		date_of_birth DATE NULL,
		address TEXT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_sub (sub)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS licence_categories (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		code VARCHAR(8) NOT NULL,
		label VARCHAR(128) NOT NULL,
		description TEXT NULL,
		fee DECIMAL(10,2) NOT NULL,
		min_age TINYINT UNSIGNED NOT NULL,
		vehicle_type VARCHAR(32) NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_licence_categories_code (code),
		KEY idx_licence_categories_active (is_active)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS user_sessions (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		session_id VARCHAR(191) NOT NULL,
		sub VARCHAR(191) NOT NULL,
		access_token TEXT NOT NULL,
		token_type VARCHAR(32) NOT NULL DEFAULT 'Bearer',
		scope VARCHAR(255) NULL,
		expires_in INT NOT NULL,
		expires_at TIMESTAMP NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_user_sessions_session_id (session_id),
		KEY idx_user_sessions_sub (sub),
		KEY idx_user_sessions_expires_at (expires_at),
		CONSTRAINT fk_user_sessions_sub FOREIGN KEY (sub) REFERENCES users (sub) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS medical_certificates (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		certificate_id VARCHAR(64) NOT NULL,
		sub VARCHAR(191) NOT NULL,
		issue_date DATE NOT NULL,
		expiry_date DATE NOT NULL,
		doctor_name VARCHAR(255) NOT NULL,
		hospital_name VARCHAR(255) NOT NULL,
		medically_fit TINYINT(1) NOT NULL DEFAULT 0,
		vision_status VARCHAR(64) NULL,
		hearing_status VARCHAR(64) NULL,
		remarks TEXT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_medical_certificates_certificate_id (certificate_id),
		KEY idx_medical_certificates_sub (sub),
		KEY idx_medical_certificates_expiry (expiry_date),
		CONSTRAINT fk_medical_certificates_sub FOREIGN KEY (sub) REFERENCES users (sub) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS applications (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		application_id VARCHAR(64) NOT NULL,
		certificate_id VARCHAR(64) NOT NULL,
		sub VARCHAR(191) NOT NULL,
		full_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NULL,
		phone VARCHAR(32) NULL,
		date_of_birth DATE NULL,
		gender VARCHAR(16) NULL,
		blood_group VARCHAR(8) NULL,
		doctor_name VARCHAR(255) NULL,
		hospital_name VARCHAR(255) NULL,
		issue_date DATE NULL,
		expiry_date DATE NULL,
		medically_fit TINYINT(1) NOT NULL DEFAULT 0,
		vision_status VARCHAR(64) NULL,
		hearing_status VARCHAR(64) NULL,
		remarks TEXT NULL,
		photo_url VARCHAR(512) NULL,
		selected_categories JSON NOT NULL,
		written_test JSON NULL,
		practical_test JSON NULL,
		status ENUM('pending','submitted','approved','rejected','cancelled') NOT NULL DEFAULT 'pending',
		admin_status ENUM('unverified','verified','on_hold') NOT NULL DEFAULT 'unverified',
		payment_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
		payment_reference VARCHAR(128) NULL,
		payment_order_id VARCHAR(128) NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_applications_application_id (application_id),
		KEY idx_applications_certificate_id (certificate_id),
		KEY idx_applications_sub (sub),
		KEY idx_applications_status_created (status, created_at),
		CONSTRAINT fk_applications_sub FOREIGN KEY (sub) REFERENCES users (sub) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// expires_at is always derived server-side from the row's creation
// time plus expires_in; application code never writes it.
var sessionTriggers = []string{
	`DROP TRIGGER IF EXISTS trg_user_sessions_expiry_insert`,
	`CREATE TRIGGER trg_user_sessions_expiry_insert
		BEFORE INSERT ON user_sessions FOR EACH ROW
		SET NEW.expires_at = TIMESTAMPADD(SECOND, NEW.expires_in, CURRENT_TIMESTAMP)`,
	`DROP TRIGGER IF EXISTS trg_user_sessions_expiry_update`,
	`CREATE TRIGGER trg_user_sessions_expiry_update
		BEFORE UPDATE ON user_sessions FOR EACH ROW
		SET NEW.expires_at = TIMESTAMPADD(SECOND, NEW.expires_in, NEW.created_at)`,
}

// seedCategory is one of the fixed licence categories installed at
// startup.  Seeding is an idempotent upsert keyed on code, so local
// edits to label/fee are overwritten on the next start.
type seedCategory struct {
	Code        string
	Label       string
	Description string
	Fee         float64
	MinAge      int
	VehicleType string
}

var defaultCategories = []seedCategory{
	{"A1", "Light Motorcycle", "Motorcycles up to 125cc", 40.00, 16, "motorcycle"},
	{"A", "Motorcycle", "Motorcycles of any engine size", 55.00, 18, "motorcycle"},
	{"B1", "Light Vehicle", "Light four-wheeled vehicles", 45.00, 16, "light_vehicle"},
	{"B", "Car", "Passenger cars up to 3500kg", 60.00, 18, "car"},
	{"C1", "Medium Goods Vehicle", "Goods vehicles between 3500kg and 7500kg", 75.00, 18, "truck"},
	{"C", "Heavy Goods Vehicle", "Goods vehicles over 7500kg", 90.00, 21, "truck"},
	{"D1", "Minibus", "Passenger vehicles with up to 16 seats", 80.00, 21, "bus"},
	{"D", "Bus", "Passenger vehicles with more than 16 seats", 95.00, 24, "bus"},
}

const seedCategorySQL = `INSERT INTO licence_categories
	(code, label, description, fee, min_age, vehicle_type)
	VALUES (?,?,?,?,?,?)
	ON DUPLICATE KEY UPDATE
		label = VALUES(label),
		description = VALUES(description),
		fee = VALUES(fee),
		min_age = VALUES(min_age),
		vehicle_type = VALUES(vehicle_type),
		is_active = 1`

// InitSchema brings the database to the expected shape: connectivity
// probe, table creation, session-expiry triggers and category seeding,
// all issued through a single transaction.  On MySQL the DDL
// statements commit implicitly; the transaction scopes the seed and
// guarantees the first failure aborts the remaining steps so startup
// fails loudly instead of running on a partial schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("schema init: connectivity probe failed: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("schema init: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range createTables {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema init: create table: %w", err)
		}
	}
	for _, stmt := range sessionTriggers {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema init: session trigger: %w", err)
		}
	}
	for _, c := range defaultCategories {
		if _, err := tx.ExecContext(ctx, seedCategorySQL,
			c.Code, c.Label, c.Description, c.Fee, c.MinAge, c.VehicleType); err != nil {
			return fmt.Errorf("schema init: seed category %s: %w", c.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("schema init: commit: %w", err)
	}
	return nil
}
