package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/grocery-manager/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidID       = errors.New("invalid food item ID")
	ErrInvalidFoodItem = errors.New("invalid food item")
	ErrInvalidWeekday  = errors.New("invalid weekday")

	// ErrCorruptRow marks a stored row that no longer decodes into a valid
	// value.
	ErrCorruptRow = errors.New("corrupt row")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return nil
}

// validateFoodItem checks the columns the schema cannot enforce.
func validateFoodItem(item *model.FoodItem) error {
	if item == nil {
		return fmt.Errorf("%w: food item", ErrNilParameter)
	}
	if strings.TrimSpace(item.Label) == "" {
		return fmt.Errorf("%w: missing label", ErrInvalidFoodItem)
	}
	if item.Amount < 0 {
		return fmt.Errorf("%w: negative amount %d", ErrInvalidFoodItem, item.Amount)
	}
	if !item.Unit.IsValid() {
		return fmt.Errorf("%w: unknown unit %q", ErrInvalidFoodItem, item.Unit)
	}
	if !item.TimeFrame.IsSet() {
		return fmt.Errorf("%w: time frame not set", ErrInvalidFoodItem)
	}
	if item.Frequency <= 0 {
		return fmt.Errorf("%w: frequency must be positive", ErrInvalidFoodItem)
	}
	return nil
}

func validateWeekdays(days []time.Weekday) error {
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: %d", ErrInvalidWeekday, d)
		}
	}
	return nil
}
