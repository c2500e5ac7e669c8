package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/grocery-manager/internal/common"
	"github.com/Veraticus/grocery-manager/internal/model"
)

func fortnightly(id int64, label string, countdown float64) model.FoodItem {
	return model.FoodItem{
		ID:             id,
		Label:          label,
		Amount:         1,
		Unit:           model.UnitPieces,
		TimeFrame:      model.TimeFrameTwoWeeks,
		Frequency:      1,
		CountdownValue: countdown,
	}
}

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name          string
		items         []model.FoodItem
		removed       []model.FoodItem
		wantEligible  []int64
		wantCountdown map[int64]float64
	}{
		{
			name:          "due item resets to its quotient",
			items:         []model.FoodItem{fortnightly(1, "Milk", 1.0)},
			wantEligible:  []int64{1},
			wantCountdown: map[int64]float64{1: 0.5},
		},
		{
			name:          "dismissed item is suppressed and keeps accumulating",
			items:         []model.FoodItem{fortnightly(1, "Milk", 1.0)},
			removed:       []model.FoodItem{fortnightly(1, "Milk", 1.0)},
			wantEligible:  []int64{},
			wantCountdown: map[int64]float64{1: 1.5},
		},
		{
			name:          "item below threshold accumulates",
			items:         []model.FoodItem{fortnightly(1, "Milk", 0.4)},
			wantEligible:  []int64{},
			wantCountdown: map[int64]float64{1: 0.9},
		},
		{
			name: "mixed list keeps input order",
			items: []model.FoodItem{
				fortnightly(3, "Apples", 1.2),
				fortnightly(1, "Bread", 0.1),
				fortnightly(2, "Cheese", 1.0),
			},
			wantEligible:  []int64{3, 2},
			wantCountdown: map[int64]float64{3: 0.5, 1: 0.6, 2: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewCycleState(NewMockStore())
			for _, item := range tt.removed {
				state.MarkRemoved(item)
			}

			result, err := NewExtractor().Extract(tt.items, state, 1)
			require.NoError(t, err)

			gotIDs := make([]int64, 0, len(result.Eligible))
			for _, item := range result.Eligible {
				gotIDs = append(gotIDs, item.ID)
			}
			assert.Equal(t, tt.wantEligible, gotIDs)

			require.Len(t, state.IncrementedItems(), len(tt.items))
			for _, item := range tt.items {
				recorded, ok := state.Incremented(item.ID)
				require.True(t, ok, "item %d", item.ID)
				assert.InDelta(t, tt.wantCountdown[item.ID], recorded.CountdownValue, 1e-9, "item %d", item.ID)
			}
		})
	}
}

func TestExtractor_DoesNotMutateInput(t *testing.T) {
	items := []model.FoodItem{fortnightly(1, "Milk", 1.0), fortnightly(2, "Eggs", 0.2)}
	state := NewCycleState(NewMockStore())

	result, err := NewExtractor().Extract(items, state, 1)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, items[0].CountdownValue, 1e-9)
	assert.InDelta(t, 0.2, items[1].CountdownValue, 1e-9)

	require.Len(t, result.Eligible, 1)
	assert.InDelta(t, 0.5, result.Eligible[0].CountdownValue, 1e-9)
}

func TestExtractor_RepeatedPassesAreIdempotent(t *testing.T) {
	items := []model.FoodItem{
		fortnightly(1, "Milk", 1.0),
		fortnightly(2, "Eggs", 0.4),
		fortnightly(3, "Flour", 0.7),
	}
	state := NewCycleState(NewMockStore())
	extractor := NewExtractor()

	first, err := extractor.Extract(items, state, 1)
	require.NoError(t, err)

	for pass := 0; pass < 3; pass++ {
		again, err := extractor.Extract(items, state, 1)
		require.NoError(t, err)
		assert.Equal(t, first, again, "pass %d", pass)
	}
	assert.Len(t, state.IncrementedItems(), len(items))
}

func TestExtractor_DismissAfterFirstPass(t *testing.T) {
	items := []model.FoodItem{fortnightly(1, "Milk", 1.0)}
	state := NewCycleState(NewMockStore())
	extractor := NewExtractor()

	first, err := extractor.Extract(items, state, 1)
	require.NoError(t, err)
	require.Len(t, first.Eligible, 1)

	state.MarkRemoved(items[0])

	second, err := extractor.Extract(items, state, 1)
	require.NoError(t, err)
	assert.Empty(t, second.Eligible)
	recorded, ok := state.Incremented(1)
	require.True(t, ok)
	assert.InDelta(t, 0.5, recorded.CountdownValue, 1e-9, "recorded countdown is reused")
}

func TestExtractor_QuotientErrorLeavesStateUntouched(t *testing.T) {
	items := []model.FoodItem{fortnightly(1, "Milk", 1.0), fortnightly(2, "Eggs", 0.4)}
	state := NewCycleState(NewMockStore())

	_, err := NewExtractor().Extract(items, state, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDivisionByZero)
	assert.ErrorIs(t, err, common.ErrConfiguration)
	assert.Empty(t, state.IncrementedItems())
}

func TestExtractor_EmptyList(t *testing.T) {
	result, err := NewExtractor().Extract(nil, NewCycleState(NewMockStore()), 2)
	require.NoError(t, err)
	assert.Empty(t, result.Eligible)
}

func TestExtractor_AccumulationStaysOnGrid(t *testing.T) {
	tests := []struct {
		name      string
		timeFrame model.TimeFrame
		quotient  float64
		cycles    int
	}{
		{name: "twenty steps of 0.05", timeFrame: model.TimeFrameMonth, quotient: 0.05, cycles: 20},
		{name: "ten steps of 0.1", timeFrame: model.TimeFrameTwoWeeks, quotient: 0.1, cycles: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := fortnightly(1, "Salt", 0)
			item.TimeFrame = tt.timeFrame
			extractor := NewExtractor()

			for cycle := 1; cycle <= tt.cycles; cycle++ {
				state := NewCycleState(NewMockStore())
				result, err := extractor.Extract([]model.FoodItem{item}, state, 5)
				require.NoError(t, err)
				require.Empty(t, result.Eligible, "cycle %d", cycle)

				recorded, ok := state.Incremented(item.ID)
				require.True(t, ok)
				item.CountdownValue = recorded.CountdownValue
			}
			assert.Equal(t, 1.0, item.CountdownValue)

			result, err := extractor.Extract([]model.FoodItem{item}, NewCycleState(NewMockStore()), 5)
			require.NoError(t, err)
			require.Len(t, result.Eligible, 1)
			assert.Equal(t, tt.quotient, result.Eligible[0].CountdownValue)
		})
	}
}
