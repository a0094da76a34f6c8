package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/theme"
)

const (
	dashboardScreen = "dashboard"
	maxUrgentTasks  = 5
)

// DashboardScreen shows collection counts and the most urgent open tasks
type DashboardScreen struct {
	app     *application.App
	keys    KeyMap
	loaded  int
	loading bool
	spinner spinner.Model
	width   int
}

// NewDashboardScreen creates the home screen
func NewDashboardScreen(app *application.App, keys KeyMap) *DashboardScreen {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.SpinnerStyle

	return &DashboardScreen{
		app:     app,
		keys:    keys,
		spinner: s,
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	d.loading = true
	return tea.Batch(d.spinner.Tick, load(dashboardScreen, d.app.Refresh))
}

func (d *DashboardScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dataLoadedMsg:
		if msg.screen != dashboardScreen {
			return d, nil
		}
		d.loading = false
		d.loaded++
		if msg.err != nil {
			return d, cmdOf(ErrorMsg{Err: msg.err})
		}
		return d, nil

	case spinner.TickMsg:
		if !d.loading {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DashboardScreen) View() string {
	var b strings.Builder

	session := d.app.Session
	b.WriteString(theme.UserStyle.Render(fmt.Sprintf("Signed in as %s (%s)",
		session.UserDisplayName(), session.UserRole())))
	b.WriteString("\n\n")

	if d.loading && d.loaded == 0 {
		b.WriteString(d.spinner.View() + " Loading...\n")
		return b.String()
	}

	accommodations := d.app.Accommodations
	tasks := d.app.Tasks
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		card("Accommodations", accommodations.TotalCount()),
		card("Active", accommodations.ActiveCount()),
		card("Inactive", accommodations.InactiveCount()),
	))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		card("Tasks", tasks.TotalCount()),
		card("Pending", tasks.PendingCount()),
		card("In progress", tasks.InProgressCount()),
		card("Completed", tasks.CompletedCount()),
	))
	b.WriteString("\n")

	b.WriteString(theme.SectionStyle.Render("Open high priority tasks"))
	b.WriteString("\n")
	urgent := tasks.HighPriority()
	if len(urgent) == 0 {
		b.WriteString(theme.HelpDescStyle.Render("None. Nice work."))
		b.WriteString("\n")
	}
	for i, task := range urgent {
		if i == maxUrgentTasks {
			b.WriteString(theme.HelpDescStyle.Render(fmt.Sprintf("... and %d more", len(urgent)-maxUrgentTasks)))
			b.WriteString("\n")
			break
		}
		line := fmt.Sprintf("%-4s  %-11s  %s", accommodationCode(task), statusLabel(task.Status), task.Description)
		b.WriteString(theme.NormalStyle.Render(cut(line, max(d.width-2, 20))))
		b.WriteString("\n")
	}

	if tips := d.keys.Tips(); len(tips) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderTip(tips[d.loaded%len(tips)]))
		b.WriteString("\n")
	}
	return b.String()
}

func (d *DashboardScreen) SetSize(width, height int) {
	d.width = width
}

func (d *DashboardScreen) HelpBindings() []key.Binding {
	return nil
}

func card(label string, value int) string {
	return theme.CardStyle.Render(
		theme.CardValueStyle.Render(strconv.Itoa(value)) + "\n" + theme.CardLabelStyle.Render(label))
}
