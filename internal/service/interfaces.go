// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/grocery-manager/internal/model"
)

// ItemStore is the persistence contract for tracked food items.
type ItemStore interface {
	InsertFoodItem(ctx context.Context, item *model.FoodItem) (int64, error)
	GetFoodItem(ctx context.Context, id int64) (*model.FoodItem, error)
	// GetFoodItemsOrderedByLabel returns every item, sorted by label.
	GetFoodItemsOrderedByLabel(ctx context.Context) ([]model.FoodItem, error)
	UpdateFoodItem(ctx context.Context, item *model.FoodItem) error
	DeleteFoodItem(ctx context.Context, id int64) error
	DeleteOnetimeItems(ctx context.Context) (int64, error)
}

// Preferences is the settings contract: the grocery-day selection plus a
// small key/value area holding the open cycle's bookkeeping.
type Preferences interface {
	GetGroceryDays(ctx context.Context) ([]time.Weekday, error)
	SetGroceryDays(ctx context.Context, days []time.Weekday) error

	GetList(ctx context.Context, key string) ([]model.FoodItem, error)
	SaveList(ctx context.Context, key string, items []model.FoodItem) error
	ClearList(ctx context.Context, key string) error

	GetValue(ctx context.Context, key string) (string, bool, error)
	SetValue(ctx context.Context, key, value string) error
	ClearValue(ctx context.Context, key string) error
}

// Storage combines every persistence contract the application needs.
type Storage interface {
	ItemStore
	Preferences

	Migrate(ctx context.Context) error
	Close() error
}
