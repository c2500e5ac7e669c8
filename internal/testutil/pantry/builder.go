// Package pantry provides test infrastructure for seeding food items. It
// offers a fluent API over a set of named, strongly-typed items with fixed
// schedules so tests can reason about countdowns without repeating setup.
//
// Example usage:
//
//	db := testutil.SetupTestDBWithBuilder(t, []time.Weekday{time.Monday},
//		func(b pantry.Builder) pantry.Builder {
//			return b.WithFixture(pantry.FixtureStaples).WithItem(pantry.ItemCandles)
//		})
package pantry

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/Veraticus/grocery-manager/internal/model"
	"github.com/Veraticus/grocery-manager/internal/service"
)

// Builder provides a fluent interface for constructing test pantries.
type Builder interface {
	// WithItem adds a single named item.
	WithItem(name ItemName) Builder

	// WithItems adds several named items.
	WithItems(names ...ItemName) Builder

	// WithCountdown overrides the starting countdown of a named item.
	WithCountdown(name ItemName, countdown float64) Builder

	// WithFixture adds every item of a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// Build inserts the items into storage in label order and returns them
	// with their assigned IDs.
	Build(ctx context.Context, store service.ItemStore) (Items, error)
}

// ItemName represents a strongly-typed pantry item label.
type ItemName string

// String returns the item label.
func (n ItemName) String() string {
	return string(n)
}

// Pantry items used across tests.
const (
	ItemMilk    ItemName = "Milk"
	ItemBread   ItemName = "Bread"
	ItemEggs    ItemName = "Eggs"
	ItemCoffee  ItemName = "Coffee"
	ItemRice    ItemName = "Rice"
	ItemApples  ItemName = "Apples"
	ItemCandles ItemName = "Candles"
)

// templates holds the schedule of every known item. Countdowns are chosen so
// that Milk and Candles are due on the first grocery day.
var templates = map[ItemName]model.FoodItem{
	ItemMilk:    {Amount: 2, Unit: model.UnitCartons, TimeFrame: model.TimeFrameWeek, Frequency: 1, CountdownValue: 1.0},
	ItemBread:   {Amount: 1, Unit: model.UnitPieces, TimeFrame: model.TimeFrameWeek, Frequency: 1, CountdownValue: 0.5},
	ItemEggs:    {Amount: 12, Unit: model.UnitPieces, TimeFrame: model.TimeFrameTwoWeeks, Frequency: 1, CountdownValue: 0.5},
	ItemCoffee:  {Amount: 1, Unit: model.UnitPackets, TimeFrame: model.TimeFrameMonth, Frequency: 1, CountdownValue: 0.25},
	ItemRice:    {Amount: 1, Unit: model.UnitKilograms, TimeFrame: model.TimeFrameMonth, Frequency: 1, CountdownValue: 0.75},
	ItemApples:  {Amount: 1, Unit: model.UnitKilograms, TimeFrame: model.TimeFrameWeek, Frequency: 1, CountdownValue: 0.0},
	ItemCandles: {Amount: 1, Unit: model.UnitBoxes, TimeFrame: model.TimeFrameWeek, Frequency: 1, CountdownValue: 1.0, OnetimeItem: true},
}

// Items represents a collection of created test items.
type Items []model.FoodItem

// Find returns the item with the given label, or nil if not found.
func (items Items) Find(name ItemName) *model.FoodItem {
	for i := range items {
		if items[i].Label == name.String() {
			return &items[i]
		}
	}
	return nil
}

// MustFind returns the item with the given label, or fails the test.
func (items Items) MustFind(t *testing.T, name ItemName) model.FoodItem {
	t.Helper()
	item := items.Find(name)
	if item == nil {
		t.Fatalf("item %q not found in test data", name)
	}
	return *item
}

// Labels returns every item label.
func (items Items) Labels() []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

type pantryBuilder struct {
	t          *testing.T
	items      map[ItemName]struct{}
	countdowns map[ItemName]float64
}

// NewBuilder creates a new pantry builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &pantryBuilder{
		t:          t,
		items:      make(map[ItemName]struct{}),
		countdowns: make(map[ItemName]float64),
	}
}

func (b *pantryBuilder) WithItem(name ItemName) Builder {
	b.items[name] = struct{}{}
	return b
}

func (b *pantryBuilder) WithItems(names ...ItemName) Builder {
	for _, name := range names {
		b.items[name] = struct{}{}
	}
	return b
}

func (b *pantryBuilder) WithCountdown(name ItemName, countdown float64) Builder {
	b.items[name] = struct{}{}
	b.countdowns[name] = countdown
	return b
}

func (b *pantryBuilder) WithFixture(fixture Fixture) Builder {
	return b.WithItems(fixture.Items()...)
}

func (b *pantryBuilder) Build(ctx context.Context, store service.ItemStore) (Items, error) {
	b.t.Helper()

	names := make([]ItemName, 0, len(b.items))
	for name := range b.items {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	result := make(Items, 0, len(names))
	for _, name := range names {
		template, ok := templates[name]
		if !ok {
			return nil, fmt.Errorf("no template for pantry item %q", name)
		}

		item := template
		item.Label = name.String()
		if countdown, ok := b.countdowns[name]; ok {
			item.CountdownValue = countdown
		}

		if _, err := store.InsertFoodItem(ctx, &item); err != nil {
			return nil, fmt.Errorf("failed to create item %q: %w", name, err)
		}
		result = append(result, item)
	}
	return result, nil
}
