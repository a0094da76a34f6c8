package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/maint/internal/theme"
)

// Screen is the view of one route
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
	// HelpBindings lists the screen-specific keys for the footer
	HelpBindings() []key.Binding
}

// storeChangedMsg tells the current screen that a store changed locally
// after a confirmed write, so it can redraw without fetching
type storeChangedMsg struct{}

// load runs fn off the UI goroutine and reports completion for screen
func load(screen string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return dataLoadedMsg{err: fn(context.Background()), screen: screen}
	}
}

// recordTable is a bubbles table whose rows are addressed by record id
type recordTable struct {
	ids   []string
	table table.Model
}

func newRecordTable(keys KeyMap, columns ...table.Column) recordTable {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithKeyMap(tableKeyMap(keys)),
	)
	t.SetStyles(theme.TableStyles())
	return recordTable{table: t}
}

// tableKeyMap keeps paging on keys that no screen action uses
func tableKeyMap(keys KeyMap) table.KeyMap {
	km := table.DefaultKeyMap()
	km.LineUp = keys.Navigation.Up.Binding
	km.LineDown = keys.Navigation.Down.Binding
	km.PageUp.SetKeys("pgup")
	km.PageDown.SetKeys("pgdown")
	km.HalfPageUp.SetKeys("ctrl+u")
	km.HalfPageDown.SetKeys("ctrl+d")
	km.GotoTop.SetKeys("home")
	km.GotoBottom.SetKeys("end")
	return km
}

// setRows replaces the rows, keeping the cursor on the same record when possible
func (r *recordTable) setRows(ids []string, rows []table.Row) {
	previous := r.selectedID()
	r.ids = ids
	r.table.SetRows(rows)

	cursor := 0
	for i, id := range ids {
		if id == previous {
			cursor = i
			break
		}
	}
	r.table.SetCursor(cursor)
}

func (r *recordTable) selectedID() string {
	cursor := r.table.Cursor()
	if cursor < 0 || cursor >= len(r.ids) {
		return ""
	}
	return r.ids[cursor]
}

func (r *recordTable) setSize(width, height int) {
	r.table.SetWidth(width)
	r.table.SetHeight(max(height, 3))
}

func (r *recordTable) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	r.table, cmd = r.table.Update(msg)
	return cmd
}

func (r *recordTable) view() string {
	if len(r.ids) == 0 {
		return theme.HelpDescStyle.Render("Nothing to show.")
	}
	return r.table.View()
}

// field renders one "label value" line of a detail screen
func field(label, value string) string {
	return theme.LabelStyle.Render(label) + theme.NormalStyle.Render(value) + "\n"
}

// cut shortens s to width runes for table cells
func cut(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func cmdOf(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
