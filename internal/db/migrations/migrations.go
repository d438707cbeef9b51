// internal/db/migrations/migrations.go
package migrations

import (
	"database/sql"
	"fmt"
	"log"
)

type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// all migrations ship compiled into the binary, ordered by version.
var all = []Migration{
	{
		Version: 1,
		Name:    "create_users",
		Up: `
			CREATE TABLE IF NOT EXISTS users (
				id            TEXT PRIMARY KEY,
				name          TEXT NOT NULL,
				email         TEXT NOT NULL,
				gender        TEXT NOT NULL DEFAULT '',
				phone         TEXT NOT NULL,
				address       TEXT NOT NULL DEFAULT '',
				state         TEXT NOT NULL DEFAULT '',
				city          TEXT NOT NULL DEFAULT '',
				country       TEXT NOT NULL,
				description   TEXT NOT NULL DEFAULT '',
				password_hash TEXT NOT NULL,
				created_at    TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`,
		Down: `DROP TABLE IF EXISTS users`,
	},
	{
		Version: 2,
		Name:    "users_email_unique",
		Up:      `CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (LOWER(email))`,
		Down:    `DROP INDEX IF EXISTS users_email_key`,
	},
	{
		Version: 3,
		Name:    "users_created_at_idx",
		Up:      `CREATE INDEX IF NOT EXISTS users_created_at_idx ON users (created_at DESC)`,
		Down:    `DROP INDEX IF EXISTS users_created_at_idx`,
	},
}

func RunMigrations(db *sql.DB) error {
	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, m := range all {
		if _, exists := applied[m.Version]; !exists {
			if err := applyMigration(db, m); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", m.Name, err)
			}
			log.Printf("Applied migration: %s", m.Name)
		}
	}

	return nil
}

func createMigrationsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func getAppliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyMigration(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migration.Up); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES ($1, $2) ON CONFLICT (version) DO NOTHING",
		migration.Version,
		migration.Name,
	); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}
