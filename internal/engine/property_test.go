package engine

import (
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/Veraticus/grocery-manager/internal/model"
)

func onGrid(v float64) bool {
	return math.Abs(v*20-math.Round(v*20)) < 1e-6
}

// TestQuotientProperties checks that quotients are finite, positive and on
// the 0.05 grid for every valid configuration.
func TestQuotientProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("quotient is a finite multiple of 0.05", prop.ForAll(
		func(frequency, weight, days int) bool {
			q, err := ComputeQuotient(frequency, weight, days)
			if err != nil {
				return false
			}
			return !math.IsInf(q, 0) && !math.IsNaN(q) && q >= 0 && onGrid(q)
		},
		gen.IntRange(1, 31),
		gen.OneConstOf(1, 2, 4),
		gen.IntRange(1, 7),
	))

	properties.Property("zero grocery days always fails", prop.ForAll(
		func(frequency, weight int) bool {
			_, err := ComputeQuotient(frequency, weight, 0)
			return err != nil
		},
		gen.IntRange(0, 31),
		gen.OneConstOf(1, 2, 4),
	))

	properties.TestingRun(t)
}

func genPantry() gopter.Gen {
	return gen.SliceOfN(12, gen.IntRange(0, 40)).Map(func(steps []int) []model.FoodItem {
		items := make([]model.FoodItem, len(steps))
		for i, step := range steps {
			items[i] = fortnightly(int64(i+1), "item", float64(step)/20)
			items[i].TimeFrame = []model.TimeFrame{model.TimeFrameWeek, model.TimeFrameTwoWeeks, model.TimeFrameMonth}[i%3]
		}
		return items
	})
}

// TestExtractProperties checks the eligibility rules over random pantries.
func TestExtractProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("repeated passes in one cycle agree", prop.ForAll(
		func(items []model.FoodItem, days int) bool {
			state := NewCycleState(NewMockStore())
			first, err := NewExtractor().Extract(items, state, days)
			if err != nil {
				return false
			}
			second, err := NewExtractor().Extract(items, state, days)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(first, second) && len(state.IncrementedItems()) == len(items)
		},
		genPantry(),
		gen.IntRange(1, 7),
	))

	properties.Property("eligible items reset and others accumulate", prop.ForAll(
		func(items []model.FoodItem, days int, dismissEvery int) bool {
			state := NewCycleState(NewMockStore())
			for i, item := range items {
				if i%dismissEvery == 0 {
					state.MarkRemoved(item)
				}
			}

			result, err := NewExtractor().Extract(items, state, days)
			if err != nil {
				return false
			}

			eligible := make(map[int64]bool, len(result.Eligible))
			for _, item := range result.Eligible {
				eligible[item.ID] = true
			}

			for _, item := range items {
				q, _ := ComputeQuotient(item.Frequency, item.TimeFrame.Weight(), days)
				recorded, ok := state.Incremented(item.ID)
				if !ok {
					return false
				}
				due := item.CountdownValue >= EligibilityThreshold && !state.IsRemoved(item)

				if eligible[item.ID] != due {
					return false
				}
				if due && math.Abs(recorded.CountdownValue-q) > 1e-9 {
					return false
				}
				if !due && (recorded.CountdownValue < item.CountdownValue || !onGrid(recorded.CountdownValue)) {
					return false
				}
			}
			return true
		},
		genPantry(),
		gen.IntRange(1, 7),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}
