package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Veraticus/grocery-manager/internal/model"
)

const preferencesTable = "preferences"

// GroceryDaysKey holds the selected grocery weekdays.
const GroceryDaysKey = "grocerydays"

// GetValue returns the raw preference stored under key.
func (s *SQLiteStorage) GetValue(ctx context.Context, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateString(key, "key"); err != nil {
		return "", false, err
	}
	return s.getValue(ctx, s.db, key)
}

func (s *SQLiteStorage) getValue(ctx context.Context, q queryable, key string) (string, bool, error) {
	query, args, err := sq.Select("value").
		From(preferencesTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("failed to build query: %w", err)
	}

	var value string
	err = q.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get preference %q: %w", key, err)
	}
	return value, true, nil
}

// SetValue stores value under key, replacing any previous value.
func (s *SQLiteStorage) SetValue(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	upsert := sq.Insert(preferencesTable).
		Columns("key", "value", "updated_at").
		Values(key, value, s.now()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at")

	err := s.write(ctx, func() error {
		_, err := exec(ctx, s.db, upsert)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to set preference %q: %w", key, err)
	}
	return nil
}

// ClearValue removes key. Clearing a missing key is not an error.
func (s *SQLiteStorage) ClearValue(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	err := s.write(ctx, func() error {
		_, err := exec(ctx, s.db, sq.Delete(preferencesTable).Where(sq.Eq{"key": key}))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear preference %q: %w", key, err)
	}
	return nil
}

// GetList returns the item snapshots stored under key, or nil if none are.
func (s *SQLiteStorage) GetList(ctx context.Context, key string) ([]model.FoodItem, error) {
	raw, ok, err := s.GetValue(ctx, key)
	if err != nil || !ok {
		return nil, err
	}

	var items []model.FoodItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode preference %q: %w", key, err)
	}
	return items, nil
}

// SaveList stores item snapshots under key as a JSON array.
func (s *SQLiteStorage) SaveList(ctx context.Context, key string, items []model.FoodItem) error {
	if items == nil {
		items = []model.FoodItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode preference %q: %w", key, err)
	}
	return s.SetValue(ctx, key, string(data))
}

// ClearList removes the list stored under key.
func (s *SQLiteStorage) ClearList(ctx context.Context, key string) error {
	return s.ClearValue(ctx, key)
}

// GetGroceryDays returns the selected grocery weekdays, Monday first.
func (s *SQLiteStorage) GetGroceryDays(ctx context.Context) ([]time.Weekday, error) {
	raw, ok, err := s.GetValue(ctx, GroceryDaysKey)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []time.Weekday{}, nil
	}

	days, err := model.ParseWeekdays([]string{raw})
	if err != nil {
		return nil, fmt.Errorf("failed to decode grocery days %q: %w", raw, err)
	}
	return days, nil
}

// SetGroceryDays replaces the selected grocery weekdays.
func (s *SQLiteStorage) SetGroceryDays(ctx context.Context, days []time.Weekday) error {
	if err := validateWeekdays(days); err != nil {
		return err
	}

	names := make([]string, 0, len(days))
	seen := make(map[time.Weekday]bool, len(days))
	for _, d := range model.SortWeekdays(days) {
		if seen[d] {
			continue
		}
		seen[d] = true
		names = append(names, d.String())
	}
	return s.SetValue(ctx, GroceryDaysKey, strings.Join(names, ","))
}
