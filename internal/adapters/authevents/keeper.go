package authevents

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/ports"
)

// ErrRefreshTokenMissing is returned when an expired session cannot be renewed
var ErrRefreshTokenMissing = errors.New("refresh token missing")

// RefreshFunc exchanges a refresh token for a new session
type RefreshFunc func(ctx context.Context, refreshToken string) (*domain.Session, error)

// Keeper owns the current session of a backend client: it restores it from
// the store, renews it when expired and announces every change.
type Keeper struct {
	emitter *Emitter
	now     func() time.Time
	refresh RefreshFunc
	store   ports.SessionStore
	group   singleflight.Group

	mu      sync.Mutex
	loaded  bool
	session *domain.Session
}

// NewKeeper creates a Keeper backed by store
func NewKeeper(store ports.SessionStore, refresh RefreshFunc) *Keeper {
	return &Keeper{
		emitter: NewEmitter(),
		now:     time.Now,
		refresh: refresh,
		store:   store,
	}
}

// Peek returns the stored session without renewing it
func (k *Keeper) Peek(ctx context.Context) (*domain.Session, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.loaded {
		session, err := k.store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to restore session: %w", err)
		}
		k.session = session
		k.loaded = true
	}
	return copySession(k.session), nil
}

// Current returns a usable session, renewing an expired one first. It returns
// nil, nil when nobody is signed in. A failed renewal signs the user out.
func (k *Keeper) Current(ctx context.Context) (*domain.Session, error) {
	session, err := k.Peek(ctx)
	if err != nil || session == nil {
		return nil, err
	}
	if !session.Expired(k.now()) {
		return session, nil
	}

	// Refresh tokens are single use, so concurrent callers share one renewal
	result, err, _ := k.group.Do("refresh", func() (any, error) {
		return k.renew(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	return copySession(result.(*domain.Session)), nil
}

func (k *Keeper) renew(ctx context.Context, expired *domain.Session) (*domain.Session, error) {
	// Another caller may have renewed it already
	if current, _ := k.Peek(ctx); current != nil && !current.Expired(k.now()) {
		return current, nil
	}

	if expired.RefreshToken == "" {
		k.Clear(ctx)
		return nil, ErrRefreshTokenMissing
	}

	logging.Logger.Debug("Refreshing expired session", "user_id", expired.User.ID)
	renewed, err := k.refresh(ctx, expired.RefreshToken)
	if err != nil {
		logging.Logger.Warn("Session refresh failed, signing out", "error", err)
		k.Clear(ctx)
		return nil, err
	}

	if err := k.Establish(ctx, renewed, domain.AuthEventTokenRefreshed); err != nil {
		return nil, err
	}
	return renewed, nil
}

// Establish installs session as current, persists it and notifies subscribers
func (k *Keeper) Establish(ctx context.Context, session *domain.Session, event domain.AuthEvent) error {
	if err := k.store.Save(ctx, session); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	k.mu.Lock()
	k.session = copySession(session)
	k.loaded = true
	k.mu.Unlock()

	k.emitter.Emit(ctx, event, copySession(session))
	return nil
}

// Clear forgets the current session and announces the sign out. Persistence
// errors are logged; the in-memory session is dropped regardless.
func (k *Keeper) Clear(ctx context.Context) {
	if err := k.store.Clear(ctx); err != nil {
		logging.Logger.Error("Failed to clear stored session", "error", err)
	}

	k.mu.Lock()
	k.session = nil
	k.loaded = true
	k.mu.Unlock()

	k.emitter.Emit(ctx, domain.AuthEventSignedOut, nil)
}

// Subscribe registers handler and immediately replays the stored session to
// it as INITIAL_SESSION
func (k *Keeper) Subscribe(handler ports.AuthStateHandler) func() {
	unsubscribe := k.emitter.Subscribe(handler)

	ctx := context.Background()
	session, err := k.Peek(ctx)
	if err != nil {
		logging.Logger.Warn("Failed to read session for initial event", "error", err)
	}
	handler(ctx, domain.AuthEventInitialSession, session)

	return unsubscribe
}

func copySession(session *domain.Session) *domain.Session {
	if session == nil {
		return nil
	}
	c := *session
	return &c
}
