package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/grocery-manager/internal/common"
	"github.com/Veraticus/grocery-manager/internal/model"
	"github.com/Veraticus/grocery-manager/internal/service"
)

var (
	_ service.ItemStore   = (*MockStore)(nil)
	_ service.Preferences = (*MockStore)(nil)
)

// MockStore is an in-memory ItemStore and Preferences for tests.
// Set the *Err fields to make the matching operation fail.
type MockStore struct {
	items       map[int64]model.FoodItem
	lists       map[string][]model.FoodItem
	values      map[string]string
	groceryDays []time.Weekday
	updateCalls []model.FoodItem

	GetDaysErr   error
	GetItemsErr  error
	GetItemErr   error
	UpdateErr    error
	DeleteOneErr error
	SaveListErr  error
	ClearListErr error
	GetListErr   error
	InsertErr    error
	nextID       int64
	mu           sync.Mutex
}

// NewMockStore creates an empty mock store with the given grocery days.
func NewMockStore(days ...time.Weekday) *MockStore {
	return &MockStore{
		items:       make(map[int64]model.FoodItem),
		lists:       make(map[string][]model.FoodItem),
		values:      make(map[string]string),
		groceryDays: append([]time.Weekday(nil), days...),
		nextID:      1,
	}
}

// Seed inserts items directly, assigning IDs to those without one.
func (m *MockStore) Seed(items ...model.FoodItem) []model.FoodItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.FoodItem, 0, len(items))
	for _, item := range items {
		if item.ID == 0 {
			item.ID = m.nextID
		}
		if item.ID >= m.nextID {
			m.nextID = item.ID + 1
		}
		m.items[item.ID] = item
		out = append(out, item)
	}
	return out
}

// Item returns the stored copy of an item.
func (m *MockStore) Item(id int64) (model.FoodItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	return item, ok
}

// UpdateCalls returns every item passed to UpdateFoodItem.
func (m *MockStore) UpdateCalls() []model.FoodItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.FoodItem(nil), m.updateCalls...)
}

// InsertFoodItem stores a copy of item under a fresh ID.
func (m *MockStore) InsertFoodItem(_ context.Context, item *model.FoodItem) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.InsertErr != nil {
		return 0, m.InsertErr
	}
	id := m.nextID
	m.nextID++

	stored := *item
	stored.ID = id
	m.items[id] = stored
	return id, nil
}

// GetFoodItem returns a copy of the item with the given ID.
func (m *MockStore) GetFoodItem(_ context.Context, id int64) (*model.FoodItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetItemErr != nil {
		return nil, m.GetItemErr
	}
	item, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("food item %d: %w", id, common.ErrNotFound)
	}
	return &item, nil
}

// GetFoodItemsOrderedByLabel returns copies of every item sorted by label.
func (m *MockStore) GetFoodItemsOrderedByLabel(_ context.Context) ([]model.FoodItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetItemsErr != nil {
		return nil, m.GetItemsErr
	}
	out := make([]model.FoodItem, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].Label), strings.ToLower(out[j].Label)
		if li == lj {
			return out[i].ID < out[j].ID
		}
		return li < lj
	})
	return out, nil
}

// UpdateFoodItem replaces the stored item.
func (m *MockStore) UpdateFoodItem(_ context.Context, item *model.FoodItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updateCalls = append(m.updateCalls, *item)
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.items[item.ID]; !ok {
		return fmt.Errorf("food item %d: %w", item.ID, common.ErrNotFound)
	}
	m.items[item.ID] = *item
	return nil
}

// DeleteFoodItem removes an item.
func (m *MockStore) DeleteFoodItem(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("food item %d: %w", id, common.ErrNotFound)
	}
	delete(m.items, id)
	return nil
}

// DeleteOnetimeItems removes every one-time item.
func (m *MockStore) DeleteOnetimeItems(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteOneErr != nil {
		return 0, m.DeleteOneErr
	}
	var n int64
	for id, item := range m.items {
		if item.OnetimeItem {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

// GetGroceryDays returns the configured grocery days.
func (m *MockStore) GetGroceryDays(_ context.Context) ([]time.Weekday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetDaysErr != nil {
		return nil, m.GetDaysErr
	}
	return append([]time.Weekday(nil), m.groceryDays...), nil
}

// SetGroceryDays replaces the configured grocery days.
func (m *MockStore) SetGroceryDays(_ context.Context, days []time.Weekday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groceryDays = append([]time.Weekday(nil), days...)
	return nil
}

// GetList returns the list stored under key.
func (m *MockStore) GetList(_ context.Context, key string) ([]model.FoodItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetListErr != nil {
		return nil, m.GetListErr
	}
	return append([]model.FoodItem(nil), m.lists[key]...), nil
}

// SaveList stores a copy of items under key.
func (m *MockStore) SaveList(_ context.Context, key string, items []model.FoodItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveListErr != nil {
		return m.SaveListErr
	}
	m.lists[key] = append([]model.FoodItem(nil), items...)
	return nil
}

// ClearList removes the list stored under key.
func (m *MockStore) ClearList(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ClearListErr != nil {
		return m.ClearListErr
	}
	delete(m.lists, key)
	return nil
}

// GetValue returns the value stored under key.
func (m *MockStore) GetValue(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// SetValue stores value under key.
func (m *MockStore) SetValue(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// ClearValue removes key.
func (m *MockStore) ClearValue(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
