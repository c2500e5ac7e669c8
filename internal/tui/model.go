// Package tui implements the interactive shopping list.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/grocery-manager/internal/engine"
	"github.com/Veraticus/grocery-manager/internal/model"
)

// Dismisser removes an item from today's grocery list.
type Dismisser interface {
	Dismiss(ctx context.Context, id int64) (*model.FoodItem, error)
}

// dismissTimeout bounds a single dismissal write.
const dismissTimeout = 10 * time.Second

type dismissedMsg struct {
	err  error
	item *model.FoodItem
	id   int64
}

// Model holds the shopping list state.
type Model struct {
	ctx       context.Context
	dismisser Dismisser
	lastError error
	date      time.Time
	status    string
	items     []model.FoodItem
	keymap    KeyMap
	help      help.Model
	theme     Theme
	bought    int
	cursor    int
	width     int
	height    int
	pending   bool
	quitting  bool
}

// New creates a shopping list model for an evaluated grocery day.
func New(ctx context.Context, eval *engine.Evaluation, dismisser Dismisser) Model {
	items := make([]model.FoodItem, len(eval.Items))
	copy(items, eval.Items)
	return Model{
		ctx:       ctx,
		dismisser: dismisser,
		date:      eval.Date,
		items:     items,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		theme:     DefaultTheme,
		width:     80,
		height:    24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)

	case dismissedMsg:
		m.pending = false
		m.handleDismissed(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Home):
		m.cursor = 0
	case key.Matches(msg, m.keymap.End):
		m.cursor = max(len(m.items)-1, 0)
	case key.Matches(msg, m.keymap.Dismiss):
		if m.pending || len(m.items) == 0 {
			return m, nil
		}
		m.pending = true
		return m, m.dismiss(m.items[m.cursor].ID)
	}
	return m, nil
}

// dismiss persists the dismissal off the update loop.
func (m Model) dismiss(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, dismissTimeout)
		defer cancel()

		item, err := m.dismisser.Dismiss(ctx, id)
		return dismissedMsg{id: id, item: item, err: err}
	}
}

func (m *Model) handleDismissed(msg dismissedMsg) {
	if msg.err != nil {
		slog.Warn("Failed to dismiss item", "id", msg.id, "error", msg.err)
		m.lastError = msg.err
		if errors.Is(msg.err, engine.ErrNoOpenCycle) {
			m.status = "The grocery cycle has closed. Restart to load today's list."
		} else {
			m.status = ""
		}
		return
	}

	m.lastError = nil
	for i, item := range m.items {
		if item.ID != msg.id {
			continue
		}
		m.items = append(m.items[:i], m.items[i+1:]...)
		m.bought++
		m.status = fmt.Sprintf("Got %s", item.Label)
		break
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
}

// Remaining returns the items still on the list.
func (m Model) Remaining() []model.FoodItem {
	return append([]model.FoodItem(nil), m.items...)
}

// View renders the list.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("🛒 Grocery list for " + m.date.Format("Monday, 2 Jan")))
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(m.theme.Success.Render("All done! Nothing left to buy."))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		b.WriteString(m.renderItem(i, item))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.lastError != nil:
		b.WriteString(m.theme.Error.Render("✗ " + m.lastError.Error()))
		b.WriteString("\n")
		if m.status != "" {
			b.WriteString(m.theme.Muted.Render(m.status))
			b.WriteString("\n")
		}
	case m.status != "":
		b.WriteString(m.theme.Success.Render("✓ " + m.status))
		b.WriteString("\n")
	}

	progress := fmt.Sprintf("%d in the cart, %d to go", m.bought, len(m.items))
	b.WriteString(m.theme.Muted.Render(progress))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))

	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}

func (m Model) renderItem(i int, item model.FoodItem) string {
	line := fmt.Sprintf("%s  %s", item.Label, m.theme.Muted.Render(item.DisplayAmount()))
	if item.Brand != "" {
		line += m.theme.Muted.Render(" · " + item.Brand)
	}
	if item.Info != "" {
		line += m.theme.Muted.Render(" · " + item.Info)
	}
	if item.OnetimeItem {
		line += " " + m.theme.Onetime.Render("one-time")
	}

	if i == m.cursor {
		return m.theme.Selected.Render("> " + line)
	}
	return "  " + line
}
