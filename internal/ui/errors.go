package ui

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/maint/internal/domain"
)

const (
	errorPrefix    = "Error: "
	maxErrorLines  = 2
	truncationMark = "..."
)

// clearErrorMsg asks the model to drop the error identified by generation
type clearErrorMsg struct {
	generation int
}

// ErrorManager holds the error shown under the current screen and clears it
// after a delay. A newer error is never cleared by an older timer.
type ErrorManager struct {
	delay time.Duration

	mu         sync.Mutex
	err        error
	generation int
}

// NewErrorManager creates an ErrorManager; a zero delay keeps errors until replaced
func NewErrorManager(delay time.Duration) *ErrorManager {
	return &ErrorManager{delay: delay}
}

// SetError replaces the displayed error
func (e *ErrorManager) SetError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
	e.generation++
}

// ClearError removes the displayed error
func (e *ErrorManager) ClearError() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = nil
}

// HasError reports whether an error is displayed
func (e *ErrorManager) HasError() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err != nil
}

// GetError returns the displayed error
func (e *ErrorManager) GetError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// ClearAfterDelay schedules removal of the current error
func (e *ErrorManager) ClearAfterDelay() tea.Cmd {
	if e.delay <= 0 {
		return nil
	}
	e.mu.Lock()
	generation := e.generation
	e.mu.Unlock()

	return tea.Tick(e.delay, func(time.Time) tea.Msg {
		return clearErrorMsg{generation: generation}
	})
}

// handleClear clears the error when msg belongs to the current one
func (e *ErrorManager) handleClear(msg clearErrorMsg) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if msg.generation == e.generation {
		e.err = nil
	}
}

// formatErrorForDisplay renders err on at most maxErrorLines lines of
// maxWidth runes, ending with "..." when it had to be cut
func formatErrorForDisplay(err error, maxWidth int) string {
	if err == nil {
		return ""
	}

	words := strings.Fields(err.Error())
	if len(words) == 0 {
		return errorPrefix + domain.UnknownErrorMessage
	}

	firstLineWidth := max(maxWidth-utf8.RuneCountInString(errorPrefix), 10)
	otherLineWidth := max(maxWidth, 10)

	var lines []string
	var current strings.Builder
	lineWidth := firstLineWidth
	truncated := false

	for _, word := range words {
		currentLen := utf8.RuneCountInString(current.String())
		if currentLen > 0 && currentLen+1+utf8.RuneCountInString(word) > lineWidth {
			lines = append(lines, current.String())
			current.Reset()
			if len(lines) == maxErrorLines {
				truncated = true
				break
			}
			lineWidth = otherLineWidth
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 && len(lines) < maxErrorLines {
		lines = append(lines, current.String())
	}

	if truncated {
		last := []rune(lines[len(lines)-1])
		room := otherLineWidth - utf8.RuneCountInString(truncationMark)
		if len(last) > room && room > 0 {
			last = last[:room]
		}
		lines[len(lines)-1] = string(last) + truncationMark
	}

	return errorPrefix + strings.Join(lines, "\n")
}
