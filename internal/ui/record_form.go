package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/renato0307/maint/internal/forms"
	"github.com/renato0307/maint/internal/logging"
)

// RecordFormResult contains the result of a create or edit form
type RecordFormResult struct {
	Cancelled bool
	Error     error
	Notice    string
}

// RecordForm is a Bubble Tea component that runs a huh form and saves the
// record when the form is submitted
type RecordForm struct {
	Completed bool
	form      *huh.Form
	name      string
	result    RecordFormResult
	submit    func(ctx context.Context) (string, error)
}

// NewRecordForm wraps form; submit saves the record and returns the notice
// shown afterwards
func NewRecordForm(name string, form *huh.Form, submit func(ctx context.Context) (string, error)) *RecordForm {
	return &RecordForm{
		form:   form,
		name:   name,
		submit: submit,
	}
}

func (rf *RecordForm) Init() tea.Cmd {
	return rf.form.Init()
}

func (rf *RecordForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle Escape or Ctrl+C to cancel
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			rf.result.Cancelled = true
			rf.Completed = true
			return rf, nil
		}
	}

	form, cmd := rf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		rf.form = f
	}

	switch rf.form.State {
	case huh.StateAborted:
		rf.result.Cancelled = true
		rf.Completed = true
		return rf, nil

	case huh.StateCompleted:
		rf.Completed = true
		notice, err := rf.submit(context.Background())
		if err != nil {
			logging.Logger.Error("Failed to save record", "form", rf.name, "error", err)
			rf.result.Error = err
			return rf, nil
		}
		logging.Logger.Info("Record saved", "form", rf.name)
		rf.result.Notice = notice
		return rf, nil
	}

	return rf, cmd
}

func (rf *RecordForm) View() string {
	if rf.form != nil {
		return rf.form.View()
	}
	return ""
}

// Result returns the form result
func (rf *RecordForm) Result() RecordFormResult {
	return rf.result
}

// fieldRule adapts a whole-form validation to a single huh field. set copies
// the value under validation into a copy of the current input.
func fieldRule[I any](field string, current *I, set func(in *I, value string), validate func(I) error) func(string) error {
	return func(value string) error {
		in := *current
		set(&in, value)

		var verr *forms.ValidationError
		if errors.As(validate(in), &verr) {
			if msg := verr.For(field); msg != "" {
				return errors.New(msg)
			}
		}
		return nil
	}
}
