package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Veraticus/grocery-manager/internal/common"
	"github.com/Veraticus/grocery-manager/internal/model"
)

const foodItemsTable = "food_items"

var foodItemColumns = []string{
	"id", "label", "brand", "info", "image_uri", "amount", "unit",
	"time_frame", "frequency", "countdown_value", "onetime_item",
	"created_at", "updated_at",
}

// InsertFoodItem stores a new item and returns its ID.
func (s *SQLiteStorage) InsertFoodItem(ctx context.Context, item *model.FoodItem) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateFoodItem(item); err != nil {
		return 0, err
	}

	now := s.now()
	insert := sq.Insert(foodItemsTable).
		Columns("label", "brand", "info", "image_uri", "amount", "unit",
			"time_frame", "frequency", "countdown_value", "onetime_item",
			"created_at", "updated_at").
		Values(item.Label, item.Brand, item.Info, item.ImageURI, item.Amount, string(item.Unit),
			int(item.TimeFrame), item.Frequency, item.CountdownValue, item.OnetimeItem,
			now, now)

	var id int64
	err := s.write(ctx, func() error {
		result, err := exec(ctx, s.db, insert)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert food item: %w", err)
	}

	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return id, nil
}

// GetFoodItem retrieves a single item by ID.
func (s *SQLiteStorage) GetFoodItem(ctx context.Context, id int64) (*model.FoodItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	query, args, err := sq.Select(foodItemColumns...).
		From(foodItemsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	item, err := scanFoodItem(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("food item %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}
	return item, nil
}

// GetFoodItemsOrderedByLabel returns every item sorted by label, ignoring case.
func (s *SQLiteStorage) GetFoodItemsOrderedByLabel(ctx context.Context) ([]model.FoodItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query, args, err := sq.Select(foodItemColumns...).
		From(foodItemsTable).
		OrderBy("label COLLATE NOCASE", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query food items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]model.FoodItem, 0)
	for rows.Next() {
		item, err := scanFoodItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate food items: %w", err)
	}
	return items, nil
}

// UpdateFoodItem replaces every stored attribute of item.
func (s *SQLiteStorage) UpdateFoodItem(ctx context.Context, item *model.FoodItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateFoodItem(item); err != nil {
		return err
	}
	if err := validateID(item.ID); err != nil {
		return err
	}

	now := s.now()
	update := sq.Update(foodItemsTable).
		SetMap(map[string]any{
			"label":           item.Label,
			"brand":           item.Brand,
			"info":            item.Info,
			"image_uri":       item.ImageURI,
			"amount":          item.Amount,
			"unit":            string(item.Unit),
			"time_frame":      int(item.TimeFrame),
			"frequency":       item.Frequency,
			"countdown_value": item.CountdownValue,
			"onetime_item":    item.OnetimeItem,
			"updated_at":      now,
		}).
		Where(sq.Eq{"id": item.ID})

	var affected int64
	err := s.write(ctx, func() error {
		result, err := exec(ctx, s.db, update)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update food item: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("food item %d: %w", item.ID, common.ErrNotFound)
	}

	item.UpdatedAt = now
	return nil
}

// DeleteFoodItem removes an item.
func (s *SQLiteStorage) DeleteFoodItem(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	var affected int64
	err := s.write(ctx, func() error {
		result, err := exec(ctx, s.db, sq.Delete(foodItemsTable).Where(sq.Eq{"id": id}))
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete food item: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("food item %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// DeleteOnetimeItems removes every one-time item and reports how many went.
func (s *SQLiteStorage) DeleteOnetimeItems(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var affected int64
	err := s.write(ctx, func() error {
		result, err := exec(ctx, s.db, sq.Delete(foodItemsTable).Where(sq.Eq{"onetime_item": true}))
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete one-time items: %w", err)
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFoodItem(row rowScanner) (*model.FoodItem, error) {
	var (
		item      model.FoodItem
		unit      string
		timeFrame int
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&item.ID,
		&item.Label,
		&item.Brand,
		&item.Info,
		&item.ImageURI,
		&item.Amount,
		&unit,
		&timeFrame,
		&item.Frequency,
		&item.CountdownValue,
		&item.OnetimeItem,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	frame, err := model.TimeFrameFromWeight(timeFrame)
	if err != nil {
		return nil, fmt.Errorf("%w: food item %d: %w", ErrCorruptRow, item.ID, err)
	}

	item.Unit = model.Unit(unit)
	item.TimeFrame = frame
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time
	return &item, nil
}
