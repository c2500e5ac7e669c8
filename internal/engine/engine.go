// Package engine implements the grocery-list eligibility engine and the
// grocery cycle that drives it.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/grocery-manager/internal/common"
	"github.com/Veraticus/grocery-manager/internal/model"
	"github.com/Veraticus/grocery-manager/internal/service"
)

// ErrNoOpenCycle is returned when an operation needs today's grocery list but
// no cycle is open.
var ErrNoOpenCycle = errors.New("no grocery cycle is open today")

// Lifecycle opens, evaluates and closes grocery cycles.
//
// A cycle opens the first time the list is evaluated on a grocery day and
// closes on the first evaluation that happens on another date. Lifecycle
// holds no locks; callers run one operation at a time.
type Lifecycle struct {
	items     service.ItemStore
	prefs     service.Preferences
	extractor *Extractor
	now       func() time.Time
}

// Config holds configuration options for the lifecycle.
type Config struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Evaluation describes today's grocery list.
type Evaluation struct {
	Date          time.Time
	GroceryDays   []time.Weekday
	Items         []model.FoodItem
	DaysUntilNext int
	IsGroceryDay  bool
	ClosedCycle   bool
}

// CycleStatus summarizes the persisted cycle bookkeeping.
type CycleStatus struct {
	OpenedOn    time.Time
	Incremented []model.FoodItem
	Removed     []model.FoodItem
	Open        bool
}

// NewLifecycle creates a lifecycle with the default configuration.
func NewLifecycle(items service.ItemStore, prefs service.Preferences) *Lifecycle {
	return NewLifecycleWithConfig(items, prefs, Config{})
}

// NewLifecycleWithConfig creates a lifecycle with custom configuration.
func NewLifecycleWithConfig(items service.ItemStore, prefs service.Preferences, config Config) *Lifecycle {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Lifecycle{
		items:     items,
		prefs:     prefs,
		extractor: NewExtractor(),
		now:       config.Now,
	}
}

// Evaluate produces today's grocery list. A cycle left open from another
// date, or on a day that is no longer a grocery day, is closed first.
func (l *Lifecycle) Evaluate(ctx context.Context) (*Evaluation, error) {
	now := l.now()

	days, err := l.prefs.GetGroceryDays(ctx)
	if err != nil {
		return nil, common.PersistenceError("load grocery days", err)
	}

	state, err := LoadCycleState(ctx, l.prefs)
	if err != nil {
		return nil, err
	}

	eval := &Evaluation{
		Date:          now,
		GroceryDays:   days,
		IsGroceryDay:  IsGroceryDay(now.Weekday(), days),
		DaysUntilNext: DaysUntilNextGroceryDay(now.Weekday(), days),
	}

	if state.IsOpen() && (!eval.IsGroceryDay || !state.OpenedOnDay(now)) {
		if err := l.closeCycle(ctx, state); err != nil {
			return nil, err
		}
		eval.ClosedCycle = true
	}

	if !eval.IsGroceryDay {
		slog.Debug("Not a grocery day", "weekday", now.Weekday(), "days_until_next", eval.DaysUntilNext)
		return eval, nil
	}

	items, err := l.items.GetFoodItemsOrderedByLabel(ctx)
	if err != nil {
		return nil, common.PersistenceError("load food items", err)
	}

	extraction, err := l.extractor.Extract(items, state, len(days))
	if err != nil {
		return nil, err
	}

	state.Open(now)
	if err := state.Persist(ctx); err != nil {
		return nil, err
	}

	eval.Items = extraction.Eligible
	slog.Info("Evaluated grocery list",
		"date", now.Format(dateLayout),
		"items", len(items),
		"eligible", len(extraction.Eligible))

	return eval, nil
}

// Dismiss removes the item with the given ID from today's list until the
// cycle closes.
func (l *Lifecycle) Dismiss(ctx context.Context, id int64) (*model.FoodItem, error) {
	state, err := LoadCycleState(ctx, l.prefs)
	if err != nil {
		return nil, err
	}
	if !state.OpenedOnDay(l.now()) {
		return nil, ErrNoOpenCycle
	}

	item, err := l.items.GetFoodItem(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("food item %d: %w", id, err)
		}
		return nil, common.PersistenceError("load food item", err)
	}

	if state.IsRemoved(*item) {
		return item, nil
	}

	state.MarkRemoved(*item)
	if err := state.Persist(ctx); err != nil {
		return nil, err
	}

	slog.Info("Dismissed item from grocery list", "id", item.ID, "label", item.Label)
	return item, nil
}

// OnCycleClose ends the open cycle: countdowns recorded during the cycle are
// written back, one-time items are purged and the cycle state is cleared.
// The state is cleared last so an interrupted close can simply be re-run.
func (l *Lifecycle) OnCycleClose(ctx context.Context) error {
	state, err := LoadCycleState(ctx, l.prefs)
	if err != nil {
		return err
	}
	return l.closeCycle(ctx, state)
}

// Status reports the persisted cycle bookkeeping.
func (l *Lifecycle) Status(ctx context.Context) (*CycleStatus, error) {
	state, err := LoadCycleState(ctx, l.prefs)
	if err != nil {
		return nil, err
	}
	openedOn, _ := state.OpenedOn()
	return &CycleStatus{
		OpenedOn:    openedOn,
		Incremented: state.IncrementedItems(),
		Removed:     state.RemovedItems(),
		Open:        state.IsOpen(),
	}, nil
}

func (l *Lifecycle) closeCycle(ctx context.Context, state *CycleState) error {
	if !state.IsOpen() {
		slog.Debug("No open cycle to close")
		return nil
	}

	updated := 0
	for _, snapshot := range state.IncrementedItems() {
		current, err := l.items.GetFoodItem(ctx, snapshot.ID)
		if errors.Is(err, common.ErrNotFound) {
			slog.Debug("Item deleted during cycle, skipping", "id", snapshot.ID)
			continue
		}
		if err != nil {
			return common.PersistenceError("load food item", err)
		}

		current.CountdownValue = snapshot.CountdownValue
		if err := l.items.UpdateFoodItem(ctx, current); err != nil {
			return common.PersistenceError("update countdown", err)
		}
		updated++
	}

	purged, err := l.items.DeleteOnetimeItems(ctx)
	if err != nil {
		return common.PersistenceError("delete one-time items", err)
	}

	if err := state.Reset(ctx); err != nil {
		return err
	}

	slog.Info("Closed grocery cycle", "countdowns_saved", updated, "onetime_purged", purged)
	return nil
}
