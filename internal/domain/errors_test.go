package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, UnknownErrorMessage},
		{"plain", errors.New("boom"), "boom"},
		{"blank", errors.New("   "), UnknownErrorMessage},
		{"wrapped remote", fmt.Errorf("ctx: %w", &RemoteError{Message: "Invalid login credentials"}), "Invalid login credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorMessage(tt.err))
		})
	}
}

func TestRemoteError_KeepsCause(t *testing.T) {
	err := NewRemoteError("create task", ErrNotAuthenticated)

	assert.Equal(t, "user not authenticated", err.Error())
	assert.Equal(t, "create task", err.Op)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
