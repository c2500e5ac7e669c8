package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS food_items (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					label TEXT NOT NULL,
					brand TEXT NOT NULL DEFAULT '',
					info TEXT NOT NULL DEFAULT '',
					image_uri TEXT NOT NULL DEFAULT '',
					amount INTEGER NOT NULL DEFAULT 0,
					unit TEXT NOT NULL,
					time_frame INTEGER NOT NULL,
					frequency INTEGER NOT NULL,
					countdown_value REAL NOT NULL DEFAULT 0,
					onetime_item BOOLEAN NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)
			`)
			return err
		},
	},
	{
		Version:     2,
		Description: "Add preferences for grocery days and cycle state",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS preferences (
					key TEXT PRIMARY KEY,
					value TEXT NOT NULL,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)
			`)
			return err
		},
	},
	{
		Version:     3,
		Description: "Index food items by label and one-time flag",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_food_items_label ON food_items(label COLLATE NOCASE)`,
				`CREATE INDEX IF NOT EXISTS idx_food_items_onetime ON food_items(onetime_item) WHERE onetime_item = 1`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
}

// SchemaVersion returns the database's current schema version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// MigrationProgress is called after each migration is applied.
type MigrationProgress func(version int, description string)

// PendingMigrations returns how many migrations Migrate would apply.
func (s *SQLiteStorage) PendingMigrations(ctx context.Context) (int, error) {
	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return 0, err
	}

	pending := 0
	for _, migration := range migrations {
		if migration.Version > currentVersion {
			pending++
		}
	}
	return pending, nil
}

// Migrate applies all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	return s.MigrateWithProgress(ctx, nil)
}

// MigrateWithProgress applies all pending migrations, reporting each one to
// progress when it is non-nil.
func (s *SQLiteStorage) MigrateWithProgress(ctx context.Context, progress MigrationProgress) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)

		if progress != nil {
			progress(migration.Version, migration.Description)
		}
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
