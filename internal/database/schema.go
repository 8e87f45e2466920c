package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/lateshow-api/internal/config"
)

// Tables in dependency order: children first, so deleting in this order never
// trips a foreign key.
var Tables = []string{"appearances", "episodes", "guests"}

// SQLite reuses max(rowid)+1 for INTEGER PRIMARY KEY without AUTOINCREMENT,
// so ids restart at 1 once a table is emptied.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS episodes (
		id INTEGER PRIMARY KEY,
		date TEXT NOT NULL,
		number INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS guests (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		occupation TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS appearances (
		id INTEGER PRIMARY KEY,
		rating INTEGER NOT NULL,
		episode_id INTEGER NOT NULL REFERENCES episodes(id),
		guest_id INTEGER NOT NULL REFERENCES guests(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appearances_episode ON appearances(episode_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appearances_guest ON appearances(guest_id)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS episodes (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		date VARCHAR(64) NOT NULL,
		number INT NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS guests (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		occupation VARCHAR(255) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS appearances (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		rating INT NOT NULL,
		episode_id BIGINT UNSIGNED NOT NULL,
		guest_id BIGINT UNSIGNED NOT NULL,
		CONSTRAINT fk_appearances_episode FOREIGN KEY (episode_id) REFERENCES episodes(id),
		CONSTRAINT fk_appearances_guest FOREIGN KEY (guest_id) REFERENCES guests(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the three catalog tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	stmts := sqliteSchema
	if driver == config.DriverMySQL {
		stmts = mysqlSchema
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// ResetSequences makes the next insert into each (empty) table get id 1.
// SQLite already behaves that way; InnoDB keeps its counter until told otherwise.
func ResetSequences(ctx context.Context, db *sql.DB, driver string) error {
	if driver != config.DriverMySQL {
		return nil
	}
	for _, table := range Tables {
		if _, err := db.ExecContext(ctx, "ALTER TABLE "+table+" AUTO_INCREMENT = 1"); err != nil {
			return fmt.Errorf("reset %s sequence: %w", table, err)
		}
	}
	return nil
}
