package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/grocery-manager/internal/common"
	"github.com/Veraticus/grocery-manager/internal/model"
	"github.com/Veraticus/grocery-manager/internal/service"
)

// Catalog manages the household's tracked food items.
type Catalog struct {
	items   service.ItemStore
	prefs   service.Preferences
	checker *RequirementChecker
}

// NewCatalog creates a catalog over the given stores.
func NewCatalog(items service.ItemStore, prefs service.Preferences) *Catalog {
	return &Catalog{
		items:   items,
		prefs:   prefs,
		checker: NewRequirementChecker(),
	}
}

// Add validates req and stores a new item. Recurring items start counting
// down from their quotient; one-time items start due.
func (c *Catalog) Add(ctx context.Context, req ItemRequest) (*model.FoodItem, error) {
	req = normalize(req)

	days, err := c.prefs.GetGroceryDays(ctx)
	if err != nil {
		return nil, common.PersistenceError("load grocery days", err)
	}

	quotient, err := c.checker.Check(req, len(days))
	if err != nil {
		return nil, err
	}

	var item model.FoodItem
	if req.Onetime {
		item = model.NewOnetimeItem(req.Label, req.Brand, req.Info, req.Amount, req.Unit)
		item.ImageURI = req.ImageURI
	} else {
		item = model.FoodItem{
			Label:          req.Label,
			Brand:          req.Brand,
			Info:           req.Info,
			ImageURI:       req.ImageURI,
			Amount:         req.Amount,
			Unit:           req.Unit,
			TimeFrame:      req.TimeFrame,
			Frequency:      req.Frequency,
			CountdownValue: quotient,
		}
	}

	id, err := c.items.InsertFoodItem(ctx, &item)
	if err != nil {
		return nil, common.PersistenceError("insert food item", err)
	}
	item.ID = id

	slog.Info("Added food item", "id", id, "label", item.Label, "onetime", item.OnetimeItem, "quotient", quotient)
	return &item, nil
}

// Edit replaces the descriptive and scheduling attributes of an item. The
// countdown is left for the eligibility engine to manage.
func (c *Catalog) Edit(ctx context.Context, id int64, req ItemRequest) (*model.FoodItem, error) {
	existing, err := c.items.GetFoodItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load food item %d: %w", id, err)
	}

	req.Onetime = existing.OnetimeItem
	req = normalize(req)

	days, err := c.prefs.GetGroceryDays(ctx)
	if err != nil {
		return nil, common.PersistenceError("load grocery days", err)
	}
	if _, err := c.checker.Check(req, len(days)); err != nil {
		return nil, err
	}

	existing.Label = req.Label
	existing.Brand = req.Brand
	existing.Info = req.Info
	existing.ImageURI = req.ImageURI
	existing.Amount = req.Amount
	existing.Unit = req.Unit
	existing.TimeFrame = req.TimeFrame
	existing.Frequency = req.Frequency

	if err := c.items.UpdateFoodItem(ctx, existing); err != nil {
		return nil, common.PersistenceError("update food item", err)
	}

	slog.Info("Updated food item", "id", id, "label", existing.Label)
	return existing, nil
}

// Delete removes an item permanently.
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	if err := c.items.DeleteFoodItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete food item %d: %w", id, err)
	}
	slog.Info("Deleted food item", "id", id)
	return nil
}

// Get returns a single item.
func (c *Catalog) Get(ctx context.Context, id int64) (*model.FoodItem, error) {
	return c.items.GetFoodItem(ctx, id)
}

// List returns every item ordered by label.
func (c *Catalog) List(ctx context.Context) ([]model.FoodItem, error) {
	items, err := c.items.GetFoodItemsOrderedByLabel(ctx)
	if err != nil {
		return nil, common.PersistenceError("list food items", err)
	}
	return items, nil
}

func normalize(req ItemRequest) ItemRequest {
	req.Label = strings.TrimSpace(req.Label)
	req.Brand = strings.TrimSpace(req.Brand)
	req.Info = strings.TrimSpace(req.Info)
	if req.Onetime {
		req.TimeFrame = model.TimeFrameWeek
		req.Frequency = 1
	}
	return req
}
