package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/grocery-manager/internal/common"
	"github.com/Veraticus/grocery-manager/internal/model"
)

func TestCycleState_MarkIncrementedIsIdempotent(t *testing.T) {
	state := NewCycleState(NewMockStore())

	milk := model.FoodItem{ID: 1, Label: "Milk", CountdownValue: 0.5}
	state.MarkIncremented(milk)

	milk.CountdownValue = 0.9
	state.MarkIncremented(milk)

	items := state.IncrementedItems()
	require.Len(t, items, 1)
	assert.InDelta(t, 0.5, items[0].CountdownValue, 1e-9, "first recorded countdown wins")
}

func TestCycleState_MembershipIsByID(t *testing.T) {
	state := NewCycleState(NewMockStore())

	state.MarkRemoved(model.FoodItem{ID: 7, Label: "Bread", CountdownValue: 1.0})

	renamed := model.FoodItem{ID: 7, Label: "Rye bread", CountdownValue: 0.2}
	assert.True(t, state.IsRemoved(renamed))
	assert.False(t, state.IsRemoved(model.FoodItem{ID: 8, Label: "Bread"}))
	assert.False(t, state.IsIncremented(renamed))
}

func TestCycleState_MarkRemovedAppends(t *testing.T) {
	state := NewCycleState(NewMockStore())
	item := model.FoodItem{ID: 3}

	state.MarkRemoved(item)
	state.MarkRemoved(item)

	assert.Len(t, state.RemovedItems(), 2)
	assert.True(t, state.IsRemoved(item))
}

func TestCycleState_PersistAndLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()
	opened := time.Date(2024, time.March, 4, 9, 30, 0, 0, time.Local)

	state := NewCycleState(store)
	state.MarkIncremented(model.FoodItem{ID: 1, Label: "Milk", CountdownValue: 0.5})
	state.MarkRemoved(model.FoodItem{ID: 2, Label: "Eggs", CountdownValue: 1.0})
	state.Open(opened)
	require.NoError(t, state.Persist(ctx))

	loaded, err := LoadCycleState(ctx, store)
	require.NoError(t, err)

	assert.True(t, loaded.IsOpen())
	assert.True(t, loaded.OpenedOnDay(opened.Add(8*time.Hour)))
	assert.False(t, loaded.OpenedOnDay(opened.AddDate(0, 0, 1)))

	recorded, ok := loaded.Incremented(1)
	require.True(t, ok)
	assert.Equal(t, "Milk", recorded.Label)
	assert.InDelta(t, 0.5, recorded.CountdownValue, 1e-9)
	assert.True(t, loaded.IsRemoved(model.FoodItem{ID: 2}))

	day, ok := loaded.OpenedOn()
	require.True(t, ok)
	assert.Equal(t, 4, day.Day())
}

func TestCycleState_Reset(t *testing.T) {
	ctx := context.Background()
	store := NewMockStore()

	state := NewCycleState(store)
	state.MarkIncremented(model.FoodItem{ID: 1})
	state.MarkRemoved(model.FoodItem{ID: 2})
	state.Open(time.Now())
	require.NoError(t, state.Persist(ctx))

	require.NoError(t, state.Reset(ctx))

	assert.False(t, state.IsOpen())
	assert.Empty(t, state.IncrementedItems())
	assert.Empty(t, state.RemovedItems())

	loaded, err := LoadCycleState(ctx, store)
	require.NoError(t, err)
	assert.False(t, loaded.IsOpen())
	_, ok, err := store.GetValue(ctx, CycleOpenedOnKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCycleState_ResetFailureKeepsMemory(t *testing.T) {
	store := NewMockStore()
	store.ClearListErr = errors.New("disk full")

	state := NewCycleState(store)
	state.MarkIncremented(model.FoodItem{ID: 1})

	err := state.Reset(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPersistence)
	assert.True(t, state.IsIncremented(model.FoodItem{ID: 1}))
}

func TestLoadCycleState_Failure(t *testing.T) {
	store := NewMockStore()
	store.GetListErr = errors.New("corrupt")

	_, err := LoadCycleState(context.Background(), store)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPersistence)
}
