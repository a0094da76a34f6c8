package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotAuthenticated = errors.New("user not authenticated")
	ErrNotFound         = errors.New("record not found")
)

// UnknownErrorMessage is shown when an error carries no usable text
const UnknownErrorMessage = "unknown error"

// RemoteError is the uniform failure returned by anything that talks to the
// remote store. Message is always a human-readable string.
type RemoteError struct {
	Err     error
	Message string
	Op      string
}

// NewRemoteError wraps err, normalizing its message
func NewRemoteError(op string, err error) *RemoteError {
	return &RemoteError{
		Err:     err,
		Message: ErrorMessage(err),
		Op:      op,
	}
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// ErrorMessage extracts a display message from any error, never returning an empty string
func ErrorMessage(err error) string {
	if err == nil {
		return UnknownErrorMessage
	}

	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return remoteErr.Message
	}

	message := strings.TrimSpace(err.Error())
	if message == "" {
		return UnknownErrorMessage
	}
	return message
}
