package ui

import (
	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/services"
)

// NavigateMsg asks the model to open Path through the route guard
type NavigateMsg struct {
	Path string
}

// ErrorMsg reports a failure to display under the current screen
type ErrorMsg struct {
	Err error
}

// routeResolvedMsg carries the guard's decision for a navigation
type routeResolvedMsg struct {
	back bool
	nav  services.Navigation
}

// authPollMsg fires periodically to notice sessions ended elsewhere
type authPollMsg struct{}

// loginResultMsg reports the outcome of a sign in attempt
type loginResultMsg struct {
	err      error
	redirect string
}

// logoutResultMsg reports the outcome of a sign out
type logoutResultMsg struct {
	err error
}

// dataLoadedMsg reports that a screen's data finished loading
type dataLoadedMsg struct {
	err    error
	screen string
}

// taskChangedMsg reports a single task change made from a list or detail screen
type taskChangedMsg struct {
	err  error
	task domain.Task
}

// EditAccommodationMsg opens the accommodation form. A nil Accommodation creates one.
type EditAccommodationMsg struct {
	Accommodation *domain.Accommodation
}

// EditTaskMsg opens the task form. A nil Task creates one, optionally
// preselecting AccommodationID.
type EditTaskMsg struct {
	AccommodationID string
	Task            *domain.Task
}

// CompleteTaskMsg opens the completion form for Task
type CompleteTaskMsg struct {
	Task domain.Task
}

// ConfirmDeleteMsg asks before deleting a record
type ConfirmDeleteMsg struct {
	Delete   func() error
	Label    string
	ThenPath string
}

// deleteResultMsg reports the outcome of a confirmed delete
type deleteResultMsg struct {
	err      error
	label    string
	thenPath string
}

// taskFormDataMsg carries the choices needed by the task form
type taskFormDataMsg struct {
	choices TaskFormChoices
	err     error
	request EditTaskMsg
}
