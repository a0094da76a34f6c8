package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/ports"
)

// SessionState is the lifecycle state of the client session
type SessionState int

const (
	StateUninitialized SessionState = iota
	StateChecking
	StateAuthenticated
	StateUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "uninitialized"
	}
}

const checkAuthKey = "check-auth"

// SessionManager owns the current user, their profile and the bootstrap latch.
// Remote calls are never made while mu is held.
type SessionManager struct {
	auth  ports.AuthProvider
	data  ports.DataReader
	now   func() time.Time
	group singleflight.Group

	mu sync.RWMutex
	// epoch changes on every login and logout; a check started in an older
	// epoch does not touch the user or the latch
	epoch       uint64
	initialized bool
	loading     int
	profile     *domain.UserProfile
	state       SessionState
	user        *domain.User

	startOnce   sync.Once
	unsubscribe func()
}

// NewSessionManager creates a SessionManager in the uninitialized state
func NewSessionManager(auth ports.AuthProvider, data ports.DataReader) *SessionManager {
	return &SessionManager{
		auth: auth,
		data: data,
		now:  time.Now,
	}
}

// Start subscribes to auth events. Only the first call has an effect.
func (m *SessionManager) Start() {
	m.startOnce.Do(func() {
		// Providers may replay the current session synchronously, so the
		// subscription happens outside the lock.
		unsubscribe := m.auth.OnAuthStateChange(m.handleAuthEvent)

		m.mu.Lock()
		m.unsubscribe = unsubscribe
		m.mu.Unlock()
	})
}

// Stop removes the auth event subscription
func (m *SessionManager) Stop() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// CheckAuth restores an existing session. It runs at most once until the next
// Logout; concurrent callers share a single remote lookup. Failures leave the
// manager unauthenticated and are never returned.
func (m *SessionManager) CheckAuth(ctx context.Context) {
	if m.IsInitialized() {
		return
	}

	_, _, _ = m.group.Do(checkAuthKey, func() (any, error) {
		if m.IsInitialized() {
			return nil, nil
		}

		// Waiting callers share this lookup, so it outlives the first caller's cancellation
		ctx := context.WithoutCancel(ctx)

		epoch := m.beginCheck()
		defer m.finishCheck(epoch)

		var user *domain.User
		session, err := m.auth.GetSession(ctx)
		switch {
		case err != nil:
			logging.Logger.Error("Failed to check auth", "error", err)
		case session == nil:
			logging.Logger.Debug("No stored session")
		default:
			found := session.User
			user = &found
		}

		if !m.applyCheck(epoch, user) {
			logging.Logger.Debug("Discarding auth check overtaken by login or logout")
			return nil, nil
		}
		if user != nil {
			m.FetchProfile(ctx)
		}
		return nil, nil
	})
}

func (m *SessionManager) beginCheck() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading++
	m.state = StateChecking
	return m.epoch
}

// applyCheck installs the user found by a check, or clears it when user is
// nil. It reports false when a login or logout happened since the check began.
func (m *SessionManager) applyCheck(epoch uint64, user *domain.User) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != epoch {
		return false
	}
	if user == nil || (m.user != nil && m.user.ID != user.ID) {
		m.profile = nil
	}
	m.user = user
	return true
}

func (m *SessionManager) finishCheck(epoch uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading--
	if m.epoch == epoch {
		m.initialized = true
	}
	m.state = m.settledState()
}

// Login exchanges credentials for a session and loads the profile
func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	release := m.beginLoading()
	defer release()

	session, err := m.auth.SignInWithPassword(ctx, email, password)
	if err == nil && session == nil {
		err = errors.New("no session returned")
	}
	if err != nil {
		logging.Logger.Error("Failed to log in", "email", email, "error", err)
		return domain.NewRemoteError("login", err)
	}

	logging.Logger.Info("Logged in", "user_id", session.User.ID)
	m.mu.Lock()
	m.epoch++
	m.mu.Unlock()
	m.setUser(session.User)
	m.FetchProfile(ctx)
	return nil
}

// Logout ends the remote session and resets the bootstrap latch so the next
// CheckAuth verifies again. Local state is kept when the remote call fails.
func (m *SessionManager) Logout(ctx context.Context) error {
	release := m.beginLoading()
	defer release()

	if err := m.auth.SignOut(ctx); err != nil {
		logging.Logger.Error("Failed to log out", "error", err)
		return domain.NewRemoteError("logout", err)
	}

	m.mu.Lock()
	m.epoch++
	m.user = nil
	m.profile = nil
	m.initialized = false
	m.state = StateUnauthenticated
	m.mu.Unlock()

	logging.Logger.Info("Logged out")
	return nil
}

// FetchProfile loads the users row of the current user. Any failure installs
// the default profile instead.
func (m *SessionManager) FetchProfile(ctx context.Context) {
	user := m.User()
	if user == nil {
		return
	}

	profile, err := m.readProfile(ctx, user.ID)
	if err != nil {
		logging.Logger.Warn("Failed to fetch profile, using default", "user_id", user.ID, "error", err)
		fallback := domain.DefaultProfile(*user, m.now())
		profile = &fallback
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// The user may have signed out while the profile was loading
	if m.user == nil || m.user.ID != user.ID {
		return
	}
	m.profile = profile
}

func (m *SessionManager) readProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	row, err := m.data.SelectOne(ctx, UsersTable, ports.Query{Filters: byID(userID)})
	if err != nil {
		return nil, err
	}
	profile, err := decodeRow[domain.UserProfile](row)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// handleAuthEvent applies provider notifications once bootstrap is complete.
// Earlier events are ignored so a replayed session is not applied twice.
func (m *SessionManager) handleAuthEvent(ctx context.Context, event domain.AuthEvent, session *domain.Session) {
	if !m.IsInitialized() {
		logging.Logger.Debug("Ignoring auth event before initialization", "event", event)
		return
	}

	logging.Logger.Debug("Handling auth event", "event", event, "has_session", session != nil)

	switch event {
	case domain.AuthEventSignedIn:
		if session == nil {
			return
		}
		m.setUser(session.User)
		m.FetchProfile(ctx)
	case domain.AuthEventSignedOut:
		m.clearUser()
	default:
		if session != nil {
			m.setUser(session.User)
		}
	}
}

func (m *SessionManager) beginLoading() func() {
	m.mu.Lock()
	m.loading++
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		m.loading--
		m.mu.Unlock()
	}
}

func (m *SessionManager) setUser(user domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user != nil && m.user.ID != user.ID {
		m.profile = nil
	}
	m.user = &user
	if m.state != StateChecking {
		m.state = StateAuthenticated
	}
}

func (m *SessionManager) clearUser() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = nil
	m.profile = nil
	if m.state != StateChecking {
		m.state = StateUnauthenticated
	}
}

// settledState must be called with mu held
func (m *SessionManager) settledState() SessionState {
	if m.user != nil {
		return StateAuthenticated
	}
	return StateUnauthenticated
}

// User returns a copy of the current user, or nil
func (m *SessionManager) User() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

// Profile returns a copy of the loaded profile, or nil
func (m *SessionManager) Profile() *domain.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.profile == nil {
		return nil
	}
	profile := *m.profile
	return &profile
}

func (m *SessionManager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

func (m *SessionManager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

func (m *SessionManager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading > 0
}

func (m *SessionManager) State() SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// UserRole returns the profile role, supervisor when no profile is loaded
func (m *SessionManager) UserRole() domain.UserRole {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.profile == nil || m.profile.Role == "" {
		return domain.RoleSupervisor
	}
	return m.profile.Role
}

// UserDisplayName falls back from the profile name to the email, then to a fixed label
func (m *SessionManager) UserDisplayName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.profile != nil && m.profile.FullName != "" {
		return m.profile.FullName
	}
	if m.user != nil && m.user.Email != "" {
		return m.user.Email
	}
	return domain.DefaultDisplayName
}
