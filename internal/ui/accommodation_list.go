package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/theme"
)

const accommodationListScreen = "accommodations"

// accommodationFilters is the cycle order of the status filter
var accommodationFilters = []domain.AccommodationStatus{"", domain.AccommodationActive, domain.AccommodationInactive}

// AccommodationListScreen lists accommodations in a table
type AccommodationListScreen struct {
	app     *application.App
	filter  int
	keys    KeyMap
	loading bool
	table   recordTable
}

// NewAccommodationListScreen creates the accommodations screen
func NewAccommodationListScreen(app *application.App, keys KeyMap) *AccommodationListScreen {
	return &AccommodationListScreen{
		app:  app,
		keys: keys,
		table: newRecordTable(keys,
			table.Column{Title: "Code", Width: 6},
			table.Column{Title: "Name", Width: 28},
			table.Column{Title: "Status", Width: 10},
			table.Column{Title: "Address", Width: 36},
		),
	}
}

func (s *AccommodationListScreen) Init() tea.Cmd {
	s.loading = true
	return load(accommodationListScreen, s.app.Accommodations.FetchAll)
}

func (s *AccommodationListScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dataLoadedMsg:
		if msg.screen != accommodationListScreen {
			return s, nil
		}
		s.loading = false
		s.refreshRows()
		if msg.err != nil {
			return s, cmdOf(ErrorMsg{Err: msg.err})
		}
		return s, nil

	case storeChangedMsg:
		s.refreshRows()
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Navigation.Open.Binding):
			if id := s.table.selectedID(); id != "" {
				return s, cmdOf(NavigateMsg{Path: "/accommodations/" + id})
			}
			return s, nil

		case key.Matches(msg, s.keys.Record.New.Binding):
			return s, cmdOf(EditAccommodationMsg{})

		case key.Matches(msg, s.keys.Record.Edit.Binding):
			if selected := s.selected(); selected != nil {
				return s, cmdOf(EditAccommodationMsg{Accommodation: selected})
			}
			return s, nil

		case key.Matches(msg, s.keys.Record.Delete.Binding):
			if selected := s.selected(); selected != nil {
				return s, cmdOf(confirmAccommodationDelete(s.app, *selected, ""))
			}
			return s, nil

		case key.Matches(msg, s.keys.Record.FilterStatus.Binding):
			s.filter = (s.filter + 1) % len(accommodationFilters)
			s.refreshRows()
			return s, nil
		}
	}

	return s, s.table.update(msg)
}

func (s *AccommodationListScreen) selected() *domain.Accommodation {
	id := s.table.selectedID()
	for _, item := range s.app.Accommodations.Items() {
		if item.ID == id {
			return &item
		}
	}
	return nil
}

func (s *AccommodationListScreen) visible() []domain.Accommodation {
	switch accommodationFilters[s.filter] {
	case domain.AccommodationActive:
		return s.app.Accommodations.Active()
	case domain.AccommodationInactive:
		return s.app.Accommodations.Inactive()
	}
	return s.app.Accommodations.Items()
}

func (s *AccommodationListScreen) refreshRows() {
	items := s.visible()
	ids := make([]string, 0, len(items))
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
		rows = append(rows, table.Row{
			item.Code,
			cut(item.Name, 28),
			string(item.Status),
			cut(orDash(item.Address), 36),
		})
	}
	s.table.setRows(ids, rows)
}

func (s *AccommodationListScreen) View() string {
	var b strings.Builder

	store := s.app.Accommodations
	summary := fmt.Sprintf("%d total, %d active, %d inactive", store.TotalCount(), store.ActiveCount(), store.InactiveCount())
	if filter := accommodationFilters[s.filter]; filter != "" {
		summary += fmt.Sprintf(" • showing %s", filter)
	}
	if s.loading {
		summary += " • loading..."
	}
	b.WriteString(theme.UserStyle.Render(summary))
	b.WriteString("\n\n")
	b.WriteString(s.table.view())
	return b.String()
}

func (s *AccommodationListScreen) SetSize(width, height int) {
	s.table.setSize(width, height-2)
}

func (s *AccommodationListScreen) HelpBindings() []key.Binding {
	return []key.Binding{
		s.keys.Navigation.Open.Binding,
		s.keys.Record.New.Binding,
		s.keys.Record.Edit.Binding,
		s.keys.Record.Delete.Binding,
		s.keys.Record.FilterStatus.Binding,
	}
}

// confirmAccommodationDelete builds the delete confirmation for accommodation
func confirmAccommodationDelete(app *application.App, accommodation domain.Accommodation, thenPath string) ConfirmDeleteMsg {
	return ConfirmDeleteMsg{
		Delete: func() error {
			return app.Accommodations.Remove(context.Background(), accommodation.ID)
		},
		Label:    fmt.Sprintf("accommodation %s (%s)", accommodation.Code, accommodation.Name),
		ThenPath: thenPath,
	}
}
