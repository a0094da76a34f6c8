package authevents

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/maint/internal/domain"
)

var keeperNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeStore struct {
	cleared int
	mu      sync.Mutex
	session *domain.Session
}

func (s *fakeStore) Load(context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySession(s.session), nil
}

func (s *fakeStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = copySession(session)
	return nil
}

func (s *fakeStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.cleared++
	return nil
}

func newTestKeeper(store *fakeStore, refresh RefreshFunc) *Keeper {
	keeper := NewKeeper(store, refresh)
	keeper.now = func() time.Time { return keeperNow }
	return keeper
}

func sessionFor(token string, expiresAt time.Time) *domain.Session {
	return &domain.Session{
		AccessToken:  "access-" + token,
		ExpiresAt:    expiresAt,
		RefreshToken: "refresh-" + token,
		TokenType:    "bearer",
		User:         domain.User{Email: "ana@example.com", ID: "user-1"},
	}
}

func TestKeeper_CurrentRestoresStoredSession(t *testing.T) {
	store := &fakeStore{session: sessionFor("a", keeperNow.Add(time.Hour))}
	keeper := newTestKeeper(store, nil)

	session, err := keeper.Current(context.Background())

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "access-a", session.AccessToken)
}

func TestKeeper_CurrentWithoutSession(t *testing.T) {
	keeper := newTestKeeper(&fakeStore{}, nil)

	session, err := keeper.Current(context.Background())

	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestKeeper_CurrentRefreshesExpiredSession(t *testing.T) {
	store := &fakeStore{session: sessionFor("old", keeperNow.Add(-time.Minute))}
	var events []domain.AuthEvent

	keeper := newTestKeeper(store, func(_ context.Context, refreshToken string) (*domain.Session, error) {
		assert.Equal(t, "refresh-old", refreshToken)
		return sessionFor("new", keeperNow.Add(time.Hour)), nil
	})
	keeper.Subscribe(func(_ context.Context, event domain.AuthEvent, _ *domain.Session) {
		events = append(events, event)
	})

	session, err := keeper.Current(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "access-new", session.AccessToken)
	assert.Equal(t, "access-new", store.session.AccessToken, "renewed session is persisted")
	assert.Equal(t, []domain.AuthEvent{domain.AuthEventInitialSession, domain.AuthEventTokenRefreshed}, events)
}

func TestKeeper_ConcurrentCallersShareOneRefresh(t *testing.T) {
	store := &fakeStore{session: sessionFor("old", keeperNow.Add(-time.Minute))}
	var refreshes atomic.Int32
	release := make(chan struct{})

	keeper := newTestKeeper(store, func(context.Context, string) (*domain.Session, error) {
		refreshes.Add(1)
		<-release
		return sessionFor("new", keeperNow.Add(time.Hour)), nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := keeper.Current(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "access-new", session.AccessToken)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), refreshes.Load())
}

func TestKeeper_FailedRefreshSignsOut(t *testing.T) {
	store := &fakeStore{session: sessionFor("old", keeperNow.Add(-time.Minute))}
	refreshErr := errors.New("Invalid Refresh Token")
	var events []domain.AuthEvent

	keeper := newTestKeeper(store, func(context.Context, string) (*domain.Session, error) {
		return nil, refreshErr
	})
	keeper.Subscribe(func(_ context.Context, event domain.AuthEvent, _ *domain.Session) {
		events = append(events, event)
	})

	session, err := keeper.Current(context.Background())

	assert.ErrorIs(t, err, refreshErr)
	assert.Nil(t, session)
	assert.Nil(t, store.session)
	assert.Contains(t, events, domain.AuthEventSignedOut)

	peeked, err := keeper.Peek(context.Background())
	require.NoError(t, err)
	assert.Nil(t, peeked)
}

func TestKeeper_ExpiredWithoutRefreshToken(t *testing.T) {
	expired := sessionFor("old", keeperNow.Add(-time.Minute))
	expired.RefreshToken = ""
	store := &fakeStore{session: expired}
	keeper := newTestKeeper(store, func(context.Context, string) (*domain.Session, error) {
		t.Fatal("refresh must not be called")
		return nil, nil
	})

	_, err := keeper.Current(context.Background())

	assert.ErrorIs(t, err, ErrRefreshTokenMissing)
	assert.Equal(t, 1, store.cleared)
}

func TestKeeper_SubscribeReplaysInitialSession(t *testing.T) {
	store := &fakeStore{session: sessionFor("a", keeperNow.Add(time.Hour))}
	keeper := newTestKeeper(store, nil)

	var gotEvent domain.AuthEvent
	var gotSession *domain.Session
	unsubscribe := keeper.Subscribe(func(_ context.Context, event domain.AuthEvent, session *domain.Session) {
		gotEvent = event
		gotSession = session
	})
	defer unsubscribe()

	assert.Equal(t, domain.AuthEventInitialSession, gotEvent)
	require.NotNil(t, gotSession)
	assert.Equal(t, "user-1", gotSession.User.ID)
}

func TestKeeper_EstablishAndClear(t *testing.T) {
	store := &fakeStore{}
	keeper := newTestKeeper(store, nil)
	var events []domain.AuthEvent
	keeper.Subscribe(func(_ context.Context, event domain.AuthEvent, _ *domain.Session) {
		events = append(events, event)
	})

	require.NoError(t, keeper.Establish(context.Background(), sessionFor("a", keeperNow.Add(time.Hour)), domain.AuthEventSignedIn))
	assert.NotNil(t, store.session)

	keeper.Clear(context.Background())
	assert.Nil(t, store.session)

	assert.Equal(t, []domain.AuthEvent{
		domain.AuthEventInitialSession,
		domain.AuthEventSignedIn,
		domain.AuthEventSignedOut,
	}, events)
}
