package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/grocery-manager/internal/engine"
	"github.com/Veraticus/grocery-manager/internal/model"
)

type fakeDismisser struct {
	err   error
	items map[int64]model.FoodItem
	calls []int64
	mu    sync.Mutex
}

func (f *fakeDismisser) Dismiss(_ context.Context, id int64) (*model.FoodItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id)
	if f.err != nil {
		return nil, f.err
	}
	item := f.items[id]
	return &item, nil
}

func testEvaluation() *engine.Evaluation {
	return &engine.Evaluation{
		Date:         time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC),
		IsGroceryDay: true,
		Items: []model.FoodItem{
			{ID: 3, Label: "Candles", Amount: 4, Unit: model.UnitPieces, OnetimeItem: true},
			{ID: 1, Label: "Milk", Brand: "Arla", Amount: 2, Unit: model.UnitLiters},
			{ID: 5, Label: "Rice", Amount: 1, Unit: model.UnitBags},
		},
	}
}

func newTestModel(t *testing.T, d *fakeDismisser) Model {
	t.Helper()
	eval := testEvaluation()
	if d.items == nil {
		d.items = make(map[int64]model.FoodItem)
		for _, item := range eval.Items {
			d.items[item.ID] = item
		}
	}
	return New(context.Background(), eval, d)
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, c := m.Update(msg)
		next, ok := updated.(Model)
		require.True(t, ok)
		m, cmd = next, c
	}
	return m, cmd
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	next, ok := updated.(Model)
	require.True(t, ok)
	return next
}

func labelsOf(items []model.FoodItem) []string {
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	return labels
}

func TestModel_Navigation(t *testing.T) {
	m := newTestModel(t, &fakeDismisser{})

	m, _ = press(t, m, "down", "down", "down")
	assert.Equal(t, 2, m.cursor, "cursor stops at the last item")

	m, _ = press(t, m, "k")
	assert.Equal(t, 1, m.cursor)

	m, _ = press(t, m, "g")
	assert.Equal(t, 0, m.cursor)

	m, _ = press(t, m, "up")
	assert.Equal(t, 0, m.cursor, "cursor stops at the first item")

	m, _ = press(t, m, "G")
	assert.Equal(t, 2, m.cursor)
}

func TestModel_DismissRemovesItem(t *testing.T) {
	d := &fakeDismisser{}
	m := newTestModel(t, d)

	m, cmd := press(t, m, "j", "x")
	assert.True(t, m.pending)

	// A second press while the write is in flight is ignored.
	m, second := press(t, m, "x")
	assert.Nil(t, second)

	m = run(t, m, cmd)
	assert.False(t, m.pending)
	assert.Equal(t, []int64{1}, d.calls)
	assert.Equal(t, []string{"Candles", "Rice"}, labelsOf(m.Remaining()))
	assert.Equal(t, 1, m.bought)
	assert.Contains(t, m.View(), "Got Milk")
	assert.Contains(t, m.View(), "1 in the cart, 2 to go")
}

func TestModel_DismissLastItemMovesCursor(t *testing.T) {
	m := newTestModel(t, &fakeDismisser{})

	m, cmd := press(t, m, "G", "enter")
	m = run(t, m, cmd)

	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, []string{"Candles", "Milk"}, labelsOf(m.Remaining()))
}

func TestModel_DismissEverything(t *testing.T) {
	m := newTestModel(t, &fakeDismisser{})

	for i := 0; i < 3; i++ {
		var cmd tea.Cmd
		m, cmd = press(t, m, "x")
		m = run(t, m, cmd)
	}

	assert.Empty(t, m.Remaining())
	assert.Contains(t, m.View(), "Nothing left to buy")

	_, cmd := press(t, m, "x")
	assert.Nil(t, cmd)
}

func TestModel_DismissErrors(t *testing.T) {
	tests := []struct {
		err        error
		name       string
		wantStatus string
	}{
		{
			name:       "cycle closed",
			err:        engine.ErrNoOpenCycle,
			wantStatus: "Restart to load today's list",
		},
		{
			name: "storage failure",
			err:  errors.New("disk full"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, &fakeDismisser{err: tt.err})

			m, cmd := press(t, m, "x")
			m = run(t, m, cmd)

			assert.Len(t, m.Remaining(), 3)
			assert.Equal(t, 0, m.bought)
			view := m.View()
			assert.Contains(t, view, tt.err.Error())
			if tt.wantStatus != "" {
				assert.Contains(t, view, tt.wantStatus)
			}
		})
	}
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := newTestModel(t, &fakeDismisser{})

	assert.Contains(t, m.View(), "got it")
	assert.NotContains(t, m.View(), "first item")

	m, _ = press(t, m, "?")
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "first item")

	m, cmd := press(t, m, "q")
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModel_ViewShowsItems(t *testing.T) {
	m := newTestModel(t, &fakeDismisser{})
	view := m.View()

	assert.Contains(t, view, "Grocery list for Monday, 4 Mar")
	assert.Contains(t, view, "> Candles")
	assert.Contains(t, view, "one-time")
	assert.Contains(t, view, "2 liters")
	assert.Contains(t, view, "Arla")
	assert.True(t, strings.Contains(view, "  Rice"))
}

func TestModel_DoesNotShareEvaluationItems(t *testing.T) {
	eval := testEvaluation()
	m := New(context.Background(), eval, &fakeDismisser{items: map[int64]model.FoodItem{}})

	m, cmd := press(t, m, "x")
	_ = run(t, m, cmd)

	assert.Equal(t, []string{"Candles", "Milk", "Rice"}, labelsOf(eval.Items))
}

func TestRun(t *testing.T) {
	t.Run("requires a grocery day", func(t *testing.T) {
		eval := testEvaluation()
		eval.IsGroceryDay = false
		err := Run(context.Background(), eval, &fakeDismisser{})
		assert.ErrorIs(t, err, ErrNotGroceryDay)
	})

	t.Run("requires a dismisser", func(t *testing.T) {
		err := Run(context.Background(), testEvaluation(), nil)
		assert.Error(t, err)
	})

	t.Run("quits on q", func(t *testing.T) {
		var out bytes.Buffer
		err := Run(context.Background(), testEvaluation(), &fakeDismisser{},
			tea.WithInput(strings.NewReader("q")),
			tea.WithOutput(&out),
		)
		require.NoError(t, err)
	})
}
