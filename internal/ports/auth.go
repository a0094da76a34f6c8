package ports

import (
	"context"

	"github.com/renato0307/maint/internal/domain"
)

// AuthStateHandler receives session change notifications
type AuthStateHandler func(ctx context.Context, event domain.AuthEvent, session *domain.Session)

// AuthReader exposes the current session and user
type AuthReader interface {
	// GetSession returns the current session, refreshing it when expired.
	// Returns nil, nil when nobody is signed in.
	GetSession(ctx context.Context) (*domain.Session, error)
	// GetUser returns the user of the current session, or nil, nil when nobody is signed in.
	GetUser(ctx context.Context) (*domain.User, error)
}

// Authenticator exchanges credentials for sessions
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	SignOut(ctx context.Context) error
}

// AuthEventSource notifies subscribers about session changes
type AuthEventSource interface {
	OnAuthStateChange(handler AuthStateHandler) (unsubscribe func())
}

// AuthProvider is the composite auth interface
type AuthProvider interface {
	AuthReader
	Authenticator
	AuthEventSource
}

// SessionStore persists the current session between runs
type SessionStore interface {
	// Load returns the stored session or nil, nil when there is none
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Clear(ctx context.Context) error
}
