// Package testutil provides test utilities for grocer: an isolated SQLite
// database with migrations applied, grocery days set and a seeded pantry.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/grocery-manager/internal/storage"
	"github.com/Veraticus/grocery-manager/internal/testutil/pantry"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
	Items   pantry.Items
}

// SetupTestDB creates a migrated in-memory database with the given grocery
// days and no items.
func SetupTestDB(t *testing.T, groceryDays ...time.Weekday) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{GroceryDays: groceryDays})
}

// SetupTestDBWithBuilder creates a test database seeded through a pantry
// builder.
//
// Example:
//
//	db := testutil.SetupTestDBWithBuilder(t, []time.Weekday{time.Monday},
//		func(b pantry.Builder) pantry.Builder {
//			return b.WithFixture(pantry.FixtureStaples)
//		})
func SetupTestDBWithBuilder(t *testing.T, groceryDays []time.Weekday, configure func(pantry.Builder) pantry.Builder) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{GroceryDays: groceryDays, Configure: configure})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Configure      func(pantry.Builder) pantry.Builder
	Path           string
	GroceryDays    []time.Weekday
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	path := opts.Path
	if path == "" {
		path = ":memory:"
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	db := &TestDB{Storage: store, t: t}
	if opts.SkipMigrations {
		return db
	}

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(opts.GroceryDays) > 0 {
		if err := store.SetGroceryDays(ctx, opts.GroceryDays); err != nil {
			t.Fatalf("failed to set grocery days: %v", err)
		}
	}

	if opts.Configure != nil {
		items, err := opts.Configure(pantry.NewBuilder(t)).Build(ctx, store)
		if err != nil {
			t.Fatalf("failed to seed pantry: %v", err)
		}
		db.Items = items
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return db
}

// MustGetItem returns the ID of a seeded item or fails the test.
func (db *TestDB) MustGetItem(name pantry.ItemName) int64 {
	db.t.Helper()
	return db.Items.MustFind(db.t, name).ID
}
