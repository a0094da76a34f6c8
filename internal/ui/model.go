package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/renato0307/maint/internal/application"
	"github.com/renato0307/maint/internal/config"
	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/services"
	"github.com/renato0307/maint/internal/theme"
)

// DefaultErrorClearDelaySeconds is how long errors stay on screen by default
const DefaultErrorClearDelaySeconds = 10

// authPollInterval is how often the model notices sessions that ended
// without user action, such as a failed token refresh
const authPollInterval = 15 * time.Second

// Vertical space taken by the page chrome around a screen
const (
	errorLines  = maxErrorLines
	footerLines = 3
	headerLines = 5
)

type uiState int

const (
	stateScreen uiState = iota
	stateConfirmingDelete
	stateDialog
	stateHelp
)

// ModelConfig configures a Model
type ModelConfig struct {
	App             *application.App
	DevMode         bool
	ErrorClearDelay time.Duration
	InitialPath     string
	KeysConfig      config.KeyBindingsConfig
}

// Model is the root of the TUI. Every screen change goes through the route
// guard, so protected screens are never shown to a signed out user.
type Model struct {
	app          *application.App
	confirm      *ConfirmDeleteMsg // Pending delete confirmation
	devMode      bool              // Development mode (shows version info in headers)
	dialog       *Dialog           // Create, edit or completion form
	errorManager *ErrorManager     // Error display and auto-clearing
	height       int
	helpScreen   *Dialog // Help screen dialog
	history      []string
	initialPath  string
	keys         KeyMap // Keyboard shortcuts
	nav          services.Navigation
	notice       string
	screen       Screen
	state        uiState
	width        int
}

// NewModel creates the root model. The app should already be started so the
// first navigation does not wait on the session check.
func NewModel(cfg ModelConfig) *Model {
	initialPath := cfg.InitialPath
	if initialPath == "" {
		initialPath = services.HomePath
	}

	return &Model{
		app:          cfg.App,
		devMode:      cfg.DevMode,
		errorManager: NewErrorManager(cfg.ErrorClearDelay),
		initialPath:  initialPath,
		keys:         NewKeyMap(cfg.KeysConfig),
		state:        stateScreen,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.navigate(m.initialPath, false), pollAuth())
}

// Path returns the path of the screen being shown
func (m *Model) Path() string {
	return m.nav.Path
}

// navigate resolves path through the guard off the UI goroutine. Back
// navigations do not add to the history.
func (m *Model) navigate(path string, back bool) tea.Cmd {
	guard := m.app.Guard
	return func() tea.Msg {
		return routeResolvedMsg{back: back, nav: guard.Resolve(context.Background(), path)}
	}
}

func pollAuth() tea.Cmd {
	return tea.Tick(authPollInterval, func(time.Time) tea.Msg {
		return authPollMsg{}
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.resize(msg)

	case clearErrorMsg:
		m.errorManager.handleClear(msg)
		return m, nil

	case ErrorMsg:
		return m, m.showError(msg.Err)

	case NavigateMsg:
		return m, m.navigate(msg.Path, false)

	case routeResolvedMsg:
		return m, m.applyRoute(msg)

	case authPollMsg:
		return m, m.checkSession()

	case loginResultMsg:
		if msg.err != nil {
			return m, m.updateScreen(msg)
		}
		m.history = nil
		return m, m.navigate(msg.redirect, true)

	case logoutResultMsg:
		if msg.err != nil {
			return m, m.showError(fmt.Errorf("sign out failed: %w", msg.err))
		}
		m.history = nil
		m.notice = "Signed out"
		return m, m.navigate(services.LoginPath, true)

	case dataLoadedMsg, storeChangedMsg, spinner.TickMsg:
		return m, m.updateScreen(msg)

	case taskChangedMsg:
		if msg.err != nil {
			return m, m.showError(msg.err)
		}
		m.notice = fmt.Sprintf("Task %s is now %s", shortID(msg.task.ID), statusLabel(msg.task.Status))
		return m, m.updateScreen(storeChangedMsg{})

	case deleteResultMsg:
		if msg.err != nil {
			return m, m.showError(fmt.Errorf("failed to delete %s: %w", msg.label, msg.err))
		}
		m.notice = "Deleted " + msg.label
		if msg.thenPath != "" {
			return m, m.navigate(msg.thenPath, true)
		}
		return m, m.updateScreen(storeChangedMsg{})

	case EditAccommodationMsg:
		title := "New accommodation"
		if msg.Accommodation != nil {
			title = "Edit accommodation " + msg.Accommodation.Code
		}
		return m, m.openDialog(title, NewAccommodationForm(m.app, msg.Accommodation))

	case EditTaskMsg:
		return m, m.loadTaskFormData(msg)

	case taskFormDataMsg:
		if msg.err != nil {
			return m, m.showError(fmt.Errorf("failed to open task form: %w", msg.err))
		}
		if len(msg.choices.Accommodations) == 0 {
			return m, m.showError(errors.New("create an accommodation before adding tasks"))
		}
		title := "New task"
		if msg.request.Task != nil {
			title = "Edit task " + shortID(msg.request.Task.ID)
		}
		return m, m.openDialog(title, NewTaskForm(m.app, msg.choices, msg.request.Task, msg.request.AccommodationID))

	case CompleteTaskMsg:
		if msg.Task.Status == domain.TaskCompleted {
			return m, m.showError(fmt.Errorf("task %s is already completed", shortID(msg.Task.ID)))
		}
		return m, m.openDialog("Complete task "+shortID(msg.Task.ID), NewCompletionForm(m.app, msg.Task))

	case ConfirmDeleteMsg:
		m.confirm = &msg
		m.state = stateConfirmingDelete
		return m, nil
	}

	switch m.state {
	case stateConfirmingDelete:
		return m, m.updateConfirmingDelete(msg)
	case stateDialog:
		return m, m.updateDialog(msg)
	case stateHelp:
		return m, m.updateHelp(msg)
	}
	return m, m.updateKeys(msg)
}

// applyRoute shows the screen of an allowed navigation or follows the redirect
func (m *Model) applyRoute(msg routeResolvedMsg) tea.Cmd {
	nav := msg.nav
	if !nav.Allowed() {
		return m.navigate(nav.Redirect, msg.back)
	}

	if !msg.back && m.nav.Path != "" && m.nav.Path != nav.Path && m.nav.Route.Name != services.RouteLogin {
		m.history = append(m.history, m.nav.Path)
	}

	logging.Logger.Debug("Showing screen", "path", nav.Path, "route", nav.Route.Name)
	m.nav = nav
	m.screen = m.buildScreen(nav)
	m.screen.SetSize(m.screenSize())
	return tea.Batch(m.screen.Init(), tea.SetWindowTitle(nav.Title))
}

func (m *Model) buildScreen(nav services.Navigation) Screen {
	switch nav.Route.Name {
	case services.RouteLogin:
		return NewLoginScreen(m.app, nav.Path)
	case services.RouteHome:
		return NewDashboardScreen(m.app, m.keys)
	case services.RouteAccommodations:
		return NewAccommodationListScreen(m.app, m.keys)
	case services.RouteAccommodationDetail:
		return NewAccommodationDetailScreen(m.app, m.keys, nav.Params["id"])
	case services.RouteTasks:
		return NewTaskListScreen(m.app, m.keys)
	case services.RouteTaskDetail:
		return NewTaskDetailScreen(m.app, m.keys, nav.Params["id"])
	}
	return NewNotFoundScreen(m.keys, nav.Path)
}

// checkSession sends the user to the login screen when the session ended
// while a protected screen is open
func (m *Model) checkSession() tea.Cmd {
	next := pollAuth()
	if !m.nav.Route.RequiresAuth || m.app.Session.IsAuthenticated() {
		return next
	}

	logging.Logger.Info("Session ended, returning to login", "path", m.nav.Path)
	m.history = nil
	m.dialog = nil
	m.confirm = nil
	m.state = stateScreen
	return tea.Batch(next, m.navigate(services.LoginRedirect(m.nav.Path), true))
}

func (m *Model) showError(err error) tea.Cmd {
	logging.Logger.Warn("Showing error", "error", err)
	m.errorManager.SetError(err)
	return m.errorManager.ClearAfterDelay()
}

func (m *Model) resize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height
	if m.screen != nil {
		m.screen.SetSize(m.screenSize())
	}

	var cmds []tea.Cmd
	if m.dialog != nil {
		_, cmd := m.dialog.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.helpScreen != nil {
		_, cmd := m.helpScreen.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) screenSize() (int, int) {
	return m.width, m.height - headerLines - footerLines - errorLines
}

func (m *Model) updateScreen(msg tea.Msg) tea.Cmd {
	if m.screen == nil {
		return nil
	}
	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return cmd
}

// updateKeys handles global keys on a screen and forwards the rest
func (m *Model) updateKeys(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateScreen(msg)
	}
	if key.Matches(keyMsg, m.keys.Application.ForceQuit.Binding) {
		return tea.Quit
	}
	// The login form takes every other key as text
	if m.nav.Route.Name == services.RouteLogin {
		return m.updateScreen(msg)
	}

	m.notice = ""
	switch {
	case key.Matches(keyMsg, m.keys.Application.Quit.Binding):
		return tea.Quit

	case key.Matches(keyMsg, m.keys.Application.Help.Binding):
		return m.openHelp()

	case key.Matches(keyMsg, m.keys.Application.Refresh.Binding):
		if m.screen == nil {
			return nil
		}
		return m.screen.Init()

	case key.Matches(keyMsg, m.keys.Application.Logout.Binding):
		session := m.app.Session
		return func() tea.Msg {
			return logoutResultMsg{err: session.Logout(context.Background())}
		}

	case key.Matches(keyMsg, m.keys.Navigation.Back.Binding):
		if len(m.history) == 0 {
			return nil
		}
		previous := m.history[len(m.history)-1]
		m.history = m.history[:len(m.history)-1]
		return m.navigate(previous, true)

	case key.Matches(keyMsg, m.keys.Navigation.Dashboard.Binding):
		return m.navigate(services.HomePath, false)

	case key.Matches(keyMsg, m.keys.Navigation.Accommodations.Binding):
		return m.navigate("/accommodations", false)

	case key.Matches(keyMsg, m.keys.Navigation.Tasks.Binding):
		return m.navigate("/tasks", false)
	}

	return m.updateScreen(msg)
}

func (m *Model) openHelp() tea.Cmd {
	m.helpScreen = NewDialog("Help", NewHelpScreen(&m.keys), m.devMode)
	m.state = stateHelp
	// Send initial WindowSizeMsg so viewport can initialize
	initCmd := m.helpScreen.Init()
	_, sizeCmd := m.helpScreen.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	return tea.Batch(initCmd, sizeCmd)
}

func (m *Model) updateHelp(msg tea.Msg) tea.Cmd {
	_, cmd := m.helpScreen.Update(msg)
	if content, ok := m.helpScreen.Content().(*HelpScreen); ok && content.Completed {
		m.helpScreen = nil
		m.state = stateScreen
		return nil
	}
	return cmd
}

func (m *Model) openDialog(title string, form *RecordForm) tea.Cmd {
	m.dialog = NewDialog(title, form, m.devMode)
	m.state = stateDialog
	initCmd := m.dialog.Init()
	_, sizeCmd := m.dialog.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	return tea.Batch(initCmd, sizeCmd)
}

func (m *Model) updateDialog(msg tea.Msg) tea.Cmd {
	_, cmd := m.dialog.Update(msg)

	content, ok := m.dialog.Content().(*RecordForm)
	if !ok || !content.Completed {
		return cmd
	}

	result := content.Result()
	m.dialog = nil
	m.state = stateScreen

	if result.Error != nil {
		return m.showError(result.Error)
	}
	if result.Cancelled {
		return nil
	}
	m.notice = result.Notice
	return m.updateScreen(storeChangedMsg{})
}

func (m *Model) updateConfirmingDelete(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateScreen(msg)
	}

	switch keyMsg.String() {
	case "y", "Y":
		pending := *m.confirm
		m.confirm = nil
		m.state = stateScreen
		logging.Logger.Info("Deleting record", "label", pending.Label)
		return func() tea.Msg {
			return deleteResultMsg{err: pending.Delete(), label: pending.Label, thenPath: pending.ThenPath}
		}
	case "n", "N", "esc", "ctrl+c":
		m.confirm = nil
		m.state = stateScreen
	}
	return nil
}

// loadTaskFormData fetches the accommodations and catalog the task form offers
func (m *Model) loadTaskFormData(request EditTaskMsg) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		var catalog []domain.AreaWithElements
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			return app.Accommodations.FetchAll(ctx)
		})
		g.Go(func() error {
			var err error
			catalog, err = app.Catalog.Grouped(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return taskFormDataMsg{err: err, request: request}
		}

		return taskFormDataMsg{
			choices: TaskFormChoices{
				Accommodations: app.Accommodations.Items(),
				Catalog:        catalog,
			},
			request: request,
		}
	}
}

func (m *Model) View() string {
	switch m.state {
	case stateHelp:
		return m.helpScreen.View()
	case stateDialog:
		return m.dialog.View() + "\n" + m.renderStatusLine()
	}

	page := m.renderPage()
	if m.state == stateConfirmingDelete && m.confirm != nil {
		prompt := theme.ErrorStyle.Render("Delete "+m.confirm.Label+"?") + "\n\n" +
			theme.HelpDescStyle.Render("y to delete • n or esc to keep it")
		return compositeOverlay(page, theme.ConfirmStyle.Render(prompt), m.width, m.height)
	}
	return page
}

func (m *Model) renderPage() string {
	if m.screen == nil {
		return renderHeader(m.devMode, "") + "\n" + theme.HelpDescStyle.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(renderHeader(m.devMode, m.nav.Route.Title))
	b.WriteString("\n")
	b.WriteString(m.screen.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderStatusLine shows the current error, or the last notice
func (m *Model) renderStatusLine() string {
	if m.errorManager.HasError() {
		return theme.ErrorStyle.Render(formatErrorForDisplay(m.errorManager.GetError(), m.width)) + "\n"
	}
	if m.notice != "" {
		return theme.SuccessStyle.Render(m.notice) + "\n"
	}
	return ""
}

func (m *Model) renderFooter() string {
	if m.nav.Route.Name == services.RouteLogin {
		return renderHelpLine(m.keys.Application.ForceQuit.Binding)
	}

	bindings := m.screen.HelpBindings()
	bindings = append(bindings, m.keys.Navigation.Back.Binding, m.keys.Application.Logout.Binding)
	bindings = append(bindings, m.keys.ShortHelp()...)
	return renderHelpLine(bindings...)
}
