package engine

import (
	"context"
	"time"

	"github.com/Veraticus/grocery-manager/internal/common"
	"github.com/Veraticus/grocery-manager/internal/model"
	"github.com/Veraticus/grocery-manager/internal/service"
)

// Preference keys holding the open cycle. These names are part of the
// persisted layout and must not change.
const (
	IncrementedItemsKey = "incrementedItems"
	RemovedItemsKey     = "removedItems"
	CycleOpenedOnKey    = "cycleOpenedOn"
)

const dateLayout = "2006-01-02"

// CycleState is the bookkeeping of one open grocery cycle: the items whose
// countdown already advanced and the items the user dismissed from today's
// list. Membership is by item ID.
//
// CycleState is not safe for concurrent use.
type CycleState struct {
	prefs       service.Preferences
	openedOn    string
	incremented []model.FoodItem
	removed     []model.FoodItem
}

// NewCycleState returns an empty state backed by prefs.
func NewCycleState(prefs service.Preferences) *CycleState {
	return &CycleState{prefs: prefs}
}

// LoadCycleState reads the persisted state from prefs.
func LoadCycleState(ctx context.Context, prefs service.Preferences) (*CycleState, error) {
	incremented, err := prefs.GetList(ctx, IncrementedItemsKey)
	if err != nil {
		return nil, common.PersistenceError("load "+IncrementedItemsKey, err)
	}
	removed, err := prefs.GetList(ctx, RemovedItemsKey)
	if err != nil {
		return nil, common.PersistenceError("load "+RemovedItemsKey, err)
	}
	openedOn, _, err := prefs.GetValue(ctx, CycleOpenedOnKey)
	if err != nil {
		return nil, common.PersistenceError("load "+CycleOpenedOnKey, err)
	}

	return &CycleState{
		prefs:       prefs,
		incremented: incremented,
		removed:     removed,
		openedOn:    openedOn,
	}, nil
}

// IsIncremented reports whether item's countdown already advanced this cycle.
func (s *CycleState) IsIncremented(item model.FoodItem) bool {
	return indexOf(s.incremented, item.ID) >= 0
}

// MarkIncremented records item, with its updated countdown, unless it is
// already recorded.
func (s *CycleState) MarkIncremented(item model.FoodItem) {
	if s.IsIncremented(item) {
		return
	}
	s.incremented = append(s.incremented, item)
}

// Incremented returns the snapshot recorded for id this cycle.
func (s *CycleState) Incremented(id int64) (model.FoodItem, bool) {
	i := indexOf(s.incremented, id)
	if i < 0 {
		return model.FoodItem{}, false
	}
	return s.incremented[i], true
}

// IncrementedItems returns a copy of the incremented snapshots in the order
// they were recorded.
func (s *CycleState) IncrementedItems() []model.FoodItem {
	out := make([]model.FoodItem, len(s.incremented))
	copy(out, s.incremented)
	return out
}

// MarkRemoved records that the user dismissed item from today's list.
func (s *CycleState) MarkRemoved(item model.FoodItem) {
	s.removed = append(s.removed, item)
}

// IsRemoved reports whether item was dismissed this cycle.
func (s *CycleState) IsRemoved(item model.FoodItem) bool {
	return indexOf(s.removed, item.ID) >= 0
}

// RemovedItems returns a copy of the dismissed snapshots.
func (s *CycleState) RemovedItems() []model.FoodItem {
	out := make([]model.FoodItem, len(s.removed))
	copy(out, s.removed)
	return out
}

// Open stamps the cycle with the calendar date of now.
func (s *CycleState) Open(now time.Time) {
	s.openedOn = now.Format(dateLayout)
}

// OpenedOn returns the date the cycle was opened on.
func (s *CycleState) OpenedOn() (time.Time, bool) {
	if s.openedOn == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(dateLayout, s.openedOn, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// OpenedOnDay reports whether the cycle was opened on now's calendar date.
func (s *CycleState) OpenedOnDay(now time.Time) bool {
	return s.openedOn != "" && s.openedOn == now.Format(dateLayout)
}

// IsOpen reports whether anything has been recorded for a cycle.
func (s *CycleState) IsOpen() bool {
	return s.openedOn != "" || len(s.incremented) > 0 || len(s.removed) > 0
}

// Persist writes the state to the preferences store.
func (s *CycleState) Persist(ctx context.Context) error {
	if err := s.prefs.SaveList(ctx, IncrementedItemsKey, s.incremented); err != nil {
		return common.PersistenceError("save "+IncrementedItemsKey, err)
	}
	if err := s.prefs.SaveList(ctx, RemovedItemsKey, s.removed); err != nil {
		return common.PersistenceError("save "+RemovedItemsKey, err)
	}
	if s.openedOn != "" {
		if err := s.prefs.SetValue(ctx, CycleOpenedOnKey, s.openedOn); err != nil {
			return common.PersistenceError("save "+CycleOpenedOnKey, err)
		}
	}
	return nil
}

// Reset clears the state in storage, then in memory.
func (s *CycleState) Reset(ctx context.Context) error {
	if err := s.prefs.ClearList(ctx, IncrementedItemsKey); err != nil {
		return common.PersistenceError("clear "+IncrementedItemsKey, err)
	}
	if err := s.prefs.ClearList(ctx, RemovedItemsKey); err != nil {
		return common.PersistenceError("clear "+RemovedItemsKey, err)
	}
	if err := s.prefs.ClearValue(ctx, CycleOpenedOnKey); err != nil {
		return common.PersistenceError("clear "+CycleOpenedOnKey, err)
	}

	s.incremented = nil
	s.removed = nil
	s.openedOn = ""
	return nil
}

func indexOf(items []model.FoodItem, id int64) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
