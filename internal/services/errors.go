package services

import (
	"context"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/ports"
)

// remoteFailure logs err and wraps it into the uniform error surfaced to callers
func remoteFailure(op string, err error) error {
	logging.Logger.Error("Remote operation failed", "op", op, "error", err)
	return domain.NewRemoteError(op, err)
}

// currentUserID resolves the signed-in user or fails with ErrNotAuthenticated
func currentUserID(ctx context.Context, auth ports.AuthReader) (string, error) {
	user, err := auth.GetUser(ctx)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrNotAuthenticated
	}
	return user.ID, nil
}
