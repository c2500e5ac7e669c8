package engine

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/grocery-manager/internal/model"
)

// EligibilityThreshold is the countdown value at which an item is due.
const EligibilityThreshold = 1.0

// Extraction is the outcome of one pass over the item list.
type Extraction struct {
	Eligible []model.FoodItem
}

// Extractor decides which food items belong on today's grocery list.
//
// An item is due when its countdown has reached 1.0 and the user has not
// dismissed it this cycle. A due item's countdown restarts at its quotient;
// any other item's countdown grows by its quotient. Each item advances at most
// once per cycle: later passes reuse the countdown recorded in CycleState.
//
// New countdowns are not written back here. Each item's snapshot in
// CycleState carries the value it should hold, and Lifecycle persists those
// snapshots when the cycle closes.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract evaluates items in order against state and records each item's
// new countdown there. Input items are not modified; the returned eligible
// items are copies carrying their new countdown. If any item's quotient cannot be computed the pass is abandoned
// before state is touched.
func (e *Extractor) Extract(items []model.FoodItem, state *CycleState, groceryDaysPerWeek int) (Extraction, error) {
	quotients := make([]float64, len(items))
	for i, item := range items {
		q, err := e.quotientFor(item, groceryDaysPerWeek)
		if err != nil {
			return Extraction{}, err
		}
		quotients[i] = q
	}

	result := Extraction{Eligible: make([]model.FoodItem, 0)}

	for i, item := range items {
		eligible, countdown := e.evaluate(item, quotients[i], state)

		updated := item
		updated.CountdownValue = countdown
		state.MarkIncremented(updated)

		if eligible {
			result.Eligible = append(result.Eligible, updated)
		}
	}

	slog.Debug("Extracted grocery list",
		"items", len(items),
		"eligible", len(result.Eligible),
		"grocery_days", groceryDaysPerWeek)

	return result, nil
}

// evaluate returns whether item is due and the countdown it carries after
// this cycle. Items already advanced this cycle keep their recorded countdown.
func (e *Extractor) evaluate(item model.FoodItem, quotient float64, state *CycleState) (bool, float64) {
	eligible := item.CountdownValue >= EligibilityThreshold && !state.IsRemoved(item)

	if recorded, ok := state.Incremented(item.ID); ok {
		return eligible, recorded.CountdownValue
	}

	if eligible {
		return true, quotient
	}
	return false, roundToTwentieth(item.CountdownValue + quotient)
}

func (e *Extractor) quotientFor(item model.FoodItem, groceryDaysPerWeek int) (float64, error) {
	q, err := ComputeQuotient(item.Frequency, item.TimeFrame.Weight(), groceryDaysPerWeek)
	if err != nil {
		return 0, fmt.Errorf("failed to compute quotient for item %d (%s): %w", item.ID, item.Label, err)
	}
	return q, nil
}
