package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/ports"
	portsmocks "github.com/renato0307/maint/internal/ports/mocks"
)

var testUser = domain.User{ID: "user-1", Email: "ana@example.com"}

func profileQuery(id string) ports.Query {
	return ports.Query{Filters: []ports.Filter{{Column: "id", Value: id}}}
}

func profileRow() ports.Row {
	return ports.Row{
		"id":                  testUser.ID,
		"role":                "chief",
		"full_name":           "Ana Ruiz",
		"profile_picture_url": nil,
		"created_at":          "2024-01-01T00:00:00Z",
		"updated_at":          "2024-01-02T00:00:00Z",
	}
}

func newTestSessionManager(t *testing.T) (*SessionManager, *portsmocks.MockAuthProvider, *portsmocks.MockDataService) {
	auth := portsmocks.NewMockAuthProvider(t)
	data := portsmocks.NewMockDataService(t)
	manager := NewSessionManager(auth, data)
	manager.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return manager, auth, data
}

func TestCheckAuth_RestoresSessionAndProfile(t *testing.T) {
	manager, auth, data := newTestSessionManager(t)

	auth.EXPECT().GetSession(mock.Anything).Return(&domain.Session{User: testUser}, nil).Once()
	data.EXPECT().SelectOne(mock.Anything, UsersTable, profileQuery(testUser.ID)).Return(profileRow(), nil).Once()

	assert.Equal(t, StateUninitialized, manager.State())
	manager.CheckAuth(context.Background())

	assert.True(t, manager.IsInitialized())
	assert.True(t, manager.IsAuthenticated())
	assert.False(t, manager.IsLoading())
	assert.Equal(t, StateAuthenticated, manager.State())
	assert.Equal(t, domain.RoleChief, manager.UserRole())
	assert.Equal(t, "Ana Ruiz", manager.UserDisplayName())
}

func TestCheckAuth_NoSession(t *testing.T) {
	manager, auth, _ := newTestSessionManager(t)

	auth.EXPECT().GetSession(mock.Anything).Return(nil, nil).Once()

	manager.CheckAuth(context.Background())

	assert.True(t, manager.IsInitialized())
	assert.False(t, manager.IsAuthenticated())
	assert.Nil(t, manager.Profile())
	assert.Equal(t, StateUnauthenticated, manager.State())
}

func TestCheckAuth_SwallowsRemoteError(t *testing.T) {
	manager, auth, _ := newTestSessionManager(t)

	auth.EXPECT().GetSession(mock.Anything).Return(nil, errors.New("network down")).Once()

	manager.CheckAuth(context.Background())

	assert.True(t, manager.IsInitialized(), "latch is set even on failure")
	assert.False(t, manager.IsAuthenticated())
	assert.False(t, manager.IsLoading())
}

func TestCheckAuth_LatchSkipsSecondLookup(t *testing.T) {
	manager, auth, _ := newTestSessionManager(t)

	auth.EXPECT().GetSession(mock.Anything).Return(nil, nil).Once()

	manager.CheckAuth(context.Background())
	manager.CheckAuth(context.Background())
}

func TestCheckAuth_ConcurrentCallersShareLookup(t *testing.T) {
	manager, auth, _ := newTestSessionManager(t)

	release := make(chan struct{})
	auth.EXPECT().GetSession(mock.Anything).
		RunAndReturn(func(context.Context) (*domain.Session, error) {
			<-release
			return nil, nil
		}).Once()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			manager.CheckAuth(context.Background())
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.True(t, manager.IsInitialized())
}

func TestCheckAuth_SharedLookupOutlivesFirstCallerCancel(t *testing.T) {
	manager, auth, data := newTestSessionManager(t)

	started := make(chan struct{})
	release := make(chan struct{})
	auth.EXPECT().GetSession(mock.Anything).
		RunAndReturn(func(ctx context.Context) (*domain.Session, error) {
			close(started)
			<-release
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return &domain.Session{User: testUser}, nil
		}).Once()
	data.EXPECT().SelectOne(mock.Anything, UsersTable, profileQuery(testUser.ID)).Return(profileRow(), nil).Once()

	first, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		manager.CheckAuth(first)
	}()
	<-started
	go func() {
		defer wg.Done()
		manager.CheckAuth(context.Background())
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	close(release)
	wg.Wait()

	assert.True(t, manager.IsInitialized())
	assert.True(t, manager.IsAuthenticated())
	assert.Equal(t, domain.RoleChief, manager.UserRole())
}

func TestCheckAuth_LogoutDuringLookupWins(t *testing.T) {
	manager, auth, _ := newTestSessionManager(t)

	started := make(chan struct{})
	release := make(chan struct{})
	auth.EXPECT().GetSession(mock.Anything).
		RunAndReturn(func(context.Context) (*domain.Session, error) {
			close(started)
			<-release
			return &domain.Session{User: testUser}, nil
		}).Once()
	auth.EXPECT().SignOut(mock.Anything).Return(nil).Once()

	done := make(chan struct{})
	go func() {
		defer close(done)
		manager.CheckAuth(context.Background())
	}()
	<-started

	require.NoError(t, manager.Logout(context.Background()))
	close(release)
	<-done

	// The stale lookup neither restores the user nor sets the latch
	assert.False(t, manager.IsAuthenticated())
	assert.False(t, manager.IsInitialized())
	assert.False(t, manager.IsLoading())
	assert.Equal(t, StateUnauthenticated, manager.State())

	auth.EXPECT().GetSession(mock.Anything).Return(nil, nil).Once()
	manager.CheckAuth(context.Background())

	assert.True(t, manager.IsInitialized())
	assert.False(t, manager.IsAuthenticated())
}

func TestCheckAuth_LoginDuringLookupWins(t *testing.T) {
	manager, auth, data := newTestSessionManager(t)

	started := make(chan struct{})
	release := make(chan struct{})
	auth.EXPECT().GetSession(mock.Anything).
		RunAndReturn(func(context.Context) (*domain.Session, error) {
			close(started)
			<-release
			return nil, nil
		}).Once()
	auth.EXPECT().SignInWithPassword(mock.Anything, "ana@example.com", "secret1").
		Return(&domain.Session{User: testUser}, nil).Once()
	data.EXPECT().SelectOne(mock.Anything, UsersTable, profileQuery(testUser.ID)).Return(profileRow(), nil).Once()

	done := make(chan struct{})
	go func() {
		defer close(done)
		manager.CheckAuth(context.Background())
	}()
	<-started

	require.NoError(t, manager.Login(context.Background(), "ana@example.com", "secret1"))
	close(release)
	<-done

	assert.True(t, manager.IsAuthenticated())
	assert.Equal(t, StateAuthenticated, manager.State())
	assert.Equal(t, "Ana Ruiz", manager.UserDisplayName())
}

func TestLogin_Success(t *testing.T) {
	manager, auth, data := newTestSessionManager(t)

	auth.EXPECT().SignInWithPassword(mock.Anything, "ana@example.com", "secret1").
		Return(&domain.Session{AccessToken: "token", User: testUser}, nil)
	data.EXPECT().SelectOne(mock.Anything, UsersTable, profileQuery(testUser.ID)).Return(profileRow(), nil)

	err := manager.Login(context.Background(), "ana@example.com", "secret1")

	require.NoError(t, err)
	assert.True(t, manager.IsAuthenticated())
	assert.False(t, manager.IsLoading())
	assert.Equal(t, testUser, *manager.User())
	assert.Equal(t, StateAuthenticated, manager.State())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	manager, auth, _ := newTestSessionManager(t)

	auth.EXPECT().SignInWithPassword(mock.Anything, "ana@example.com", "wrong").
		Return(nil, errors.New("Invalid login credentials"))

	err := manager.Login(context.Background(), "ana@example.com", "wrong")

	var remoteErr *domain.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "Invalid login credentials", remoteErr.Message)
	assert.Equal(t, "login", remoteErr.Op)
	assert.False(t, manager.IsAuthenticated())
	assert.False(t, manager.IsLoading())
}

func TestLogout_ResetsLatchAndForcesRecheck(t *testing.T) {
	manager, auth, data := newTestSessionManager(t)

	auth.EXPECT().GetSession(mock.Anything).Return(&domain.Session{User: testUser}, nil).Once()
	data.EXPECT().SelectOne(mock.Anything, UsersTable, profileQuery(testUser.ID)).Return(profileRow(), nil).Once()
	manager.CheckAuth(context.Background())
	require.True(t, manager.IsAuthenticated())

	auth.EXPECT().SignOut(mock.Anything).Return(nil).Once()
	require.NoError(t, manager.Logout(context.Background()))

	assert.False(t, manager.IsAuthenticated())
	assert.False(t, manager.IsInitialized())
	assert.Nil(t, manager.Profile())
	assert.Equal(t, StateUnauthenticated, manager.State())

	auth.EXPECT().GetSession(mock.Anything).Return(nil, nil).Once()
	manager.CheckAuth(context.Background())

	assert.True(t, manager.IsInitialized())
	assert.False(t, manager.IsAuthenticated())
}

func TestLogout_RemoteFailureKeepsState(t *testing.T) {
	manager, auth, data := newTestSessionManager(t)

	auth.EXPECT().SignInWithPassword(mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Session{User: testUser}, nil)
	data.EXPECT().SelectOne(mock.Anything, UsersTable, mock.Anything).Return(profileRow(), nil)
	require.NoError(t, manager.Login(context.Background(), "ana@example.com", "secret1"))

	auth.EXPECT().SignOut(mock.Anything).Return(errors.New("timeout"))

	err := manager.Logout(context.Background())

	require.Error(t, err)
	assert.Equal(t, "timeout", domain.ErrorMessage(err))
	assert.True(t, manager.IsAuthenticated())
	assert.False(t, manager.IsLoading())
}

func TestFetchProfile_FallsBackToDefault(t *testing.T) {
	manager, auth, data := newTestSessionManager(t)

	auth.EXPECT().SignInWithPassword(mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Session{User: testUser}, nil)
	data.EXPECT().SelectOne(mock.Anything, UsersTable, profileQuery(testUser.ID)).
		Return(nil, domain.ErrNotFound)

	require.NoError(t, manager.Login(context.Background(), "ana@example.com", "secret1"))

	profile := manager.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, domain.RoleSupervisor, profile.Role)
	assert.Equal(t, "ana", profile.FullName)
	assert.Equal(t, testUser.ID, profile.ID)
	assert.Equal(t, "ana", manager.UserDisplayName())
}

func TestFetchProfile_NoUserIsNoop(t *testing.T) {
	manager, _, _ := newTestSessionManager(t)

	manager.FetchProfile(context.Background())

	assert.Nil(t, manager.Profile())
}

func TestAuthEvents_IgnoredUntilInitialized(t *testing.T) {
	manager, auth, data := newTestSessionManager(t)

	var handler ports.AuthStateHandler
	auth.EXPECT().OnAuthStateChange(mock.Anything).
		RunAndReturn(func(h ports.AuthStateHandler) func() {
			handler = h
			return func() {}
		}).Once()

	manager.Start()
	manager.Start()
	require.NotNil(t, handler)

	handler(context.Background(), domain.AuthEventSignedIn, &domain.Session{User: testUser})
	assert.False(t, manager.IsAuthenticated(), "events before bootstrap are ignored")

	auth.EXPECT().GetSession(mock.Anything).Return(nil, nil).Once()
	manager.CheckAuth(context.Background())

	data.EXPECT().SelectOne(mock.Anything, UsersTable, profileQuery(testUser.ID)).Return(profileRow(), nil).Once()
	handler(context.Background(), domain.AuthEventSignedIn, &domain.Session{User: testUser})
	assert.True(t, manager.IsAuthenticated())
	assert.Equal(t, domain.RoleChief, manager.UserRole())

	handler(context.Background(), domain.AuthEventSignedOut, nil)
	assert.False(t, manager.IsAuthenticated())
	assert.Nil(t, manager.Profile())
}

func TestAuthEvents_AfterInitialization(t *testing.T) {
	otherUser := domain.User{ID: "user-2", Email: "luis@example.com"}

	tests := []struct {
		name          string
		signedIn      bool
		event         domain.AuthEvent
		session       *domain.Session
		expectedUser  *domain.User
		expectProfile bool
	}{
		{
			name:         "token refresh with a session updates the user",
			signedIn:     true,
			event:        domain.AuthEventTokenRefreshed,
			session:      &domain.Session{User: otherUser},
			expectedUser: &otherUser,
		},
		{
			name:         "user update with a session signs the user in",
			signedIn:     false,
			event:        domain.AuthEventUserUpdated,
			session:      &domain.Session{User: testUser},
			expectedUser: &testUser,
		},
		{
			name:          "token refresh without a session keeps the user",
			signedIn:      true,
			event:         domain.AuthEventTokenRefreshed,
			session:       nil,
			expectedUser:  &testUser,
			expectProfile: true,
		},
		{
			name:          "initial session keeps the profile of the same user",
			signedIn:      true,
			event:         domain.AuthEventInitialSession,
			session:       &domain.Session{User: testUser},
			expectedUser:  &testUser,
			expectProfile: true,
		},
		{
			name:         "signed in without a session is ignored",
			signedIn:     false,
			event:        domain.AuthEventSignedIn,
			session:      nil,
			expectedUser: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, auth, data := newTestSessionManager(t)

			var handler ports.AuthStateHandler
			auth.EXPECT().OnAuthStateChange(mock.Anything).
				RunAndReturn(func(h ports.AuthStateHandler) func() {
					handler = h
					return func() {}
				}).Once()
			manager.Start()

			if tt.signedIn {
				auth.EXPECT().GetSession(mock.Anything).Return(&domain.Session{User: testUser}, nil).Once()
				data.EXPECT().SelectOne(mock.Anything, UsersTable, profileQuery(testUser.ID)).Return(profileRow(), nil).Once()
			} else {
				auth.EXPECT().GetSession(mock.Anything).Return(nil, nil).Once()
			}
			manager.CheckAuth(context.Background())

			handler(context.Background(), tt.event, tt.session)

			if tt.expectedUser == nil {
				assert.Nil(t, manager.User())
				assert.False(t, manager.IsAuthenticated())
				return
			}
			require.NotNil(t, manager.User())
			assert.Equal(t, *tt.expectedUser, *manager.User())
			assert.Equal(t, StateAuthenticated, manager.State())
			assert.Equal(t, tt.expectProfile, manager.Profile() != nil)
		})
	}
}

func TestStop_Unsubscribes(t *testing.T) {
	manager, auth, _ := newTestSessionManager(t)

	unsubscribed := 0
	auth.EXPECT().OnAuthStateChange(mock.Anything).Return(func() { unsubscribed++ }).Once()

	manager.Start()
	manager.Stop()
	manager.Stop()

	assert.Equal(t, 1, unsubscribed)
}

func TestUserDisplayName_Fallbacks(t *testing.T) {
	manager, _, _ := newTestSessionManager(t)
	assert.Equal(t, domain.DefaultDisplayName, manager.UserDisplayName())
	assert.Equal(t, domain.RoleSupervisor, manager.UserRole())

	manager.setUser(testUser)
	assert.Equal(t, testUser.Email, manager.UserDisplayName())
}
