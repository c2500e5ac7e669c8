package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/grocery-manager/internal/cli"
	"github.com/Veraticus/grocery-manager/internal/config"
	"github.com/Veraticus/grocery-manager/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every other command migrates on startup; this command is useful to prepare a
database ahead of time or to check its schema version.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	slog.Info("Starting database migration",
		"database", store.Path(),
		"status_only", status)

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	out := cmd.OutOrStdout()
	if status {
		_, err = fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Database %s is at schema version %d of %d",
			store.Path(), current, storage.ExpectedSchemaVersion)))
		return err
	}

	pending, err := store.PendingMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending migrations: %w", err)
	}
	if pending == 0 {
		_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Database is up to date (version %d)", current)))
		return err
	}

	bar := progressbar.NewOptions(pending,
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("Migrating"),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(out); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	err = store.MigrateWithProgress(ctx, func(version int, description string) {
		bar.Describe(fmt.Sprintf("v%d %s", version, description))
		if addErr := bar.Add(1); addErr != nil {
			slog.Warn("Failed to update progress bar", "error", addErr)
		}
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Database migrated from version %d to %d",
		current, storage.ExpectedSchemaVersion)))
	return err
}
