package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/ports"
)

// SessionStore persists one session per backend key in the state database
type SessionStore struct {
	backend string
	db      *gorm.DB
}

// Verify interface compliance at compile time
var (
	_ ports.SessionStore = (*SessionStore)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
)

// OpenStateDB opens the client state database holding persisted sessions
func OpenStateDB(dbPath string) (*gorm.DB, error) {
	return Open(dbPath, &SessionModel{})
}

// NewSessionStore creates a store for the sessions of backend
func NewSessionStore(db *gorm.DB, backend string) *SessionStore {
	return &SessionStore{
		backend: backend,
		db:      db,
	}
}

func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	var model SessionModel
	err := withRetry(func() error {
		return s.db.WithContext(ctx).Where("backend = ?", s.backend).First(&model).Error
	}, defaultRetries)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	session := sessionModelToDomain(model)
	return &session, nil
}

func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return s.Clear(ctx)
	}

	model := domainToSessionModel(s.backend, *session)
	err := withRetry(func() error {
		return s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "backend"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_token", "expires_at", "refresh_token", "token_type", "user_email", "user_id", "updated_at"}),
		}).Create(&model).Error
	}, defaultRetries)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	err := withRetry(func() error {
		return s.db.WithContext(ctx).Where("backend = ?", s.backend).Delete(&SessionModel{}).Error
	}, defaultRetries)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// MemorySessionStore keeps the session for the lifetime of the process only
type MemorySessionStore struct {
	mu      sync.Mutex
	session *domain.Session
}

// NewMemorySessionStore creates an empty MemorySessionStore
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Load(context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, nil
	}
	session := *s.session
	return &session, nil
}

func (s *MemorySessionStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session == nil {
		s.session = nil
		return nil
	}
	stored := *session
	s.session = &stored
	return nil
}

func (s *MemorySessionStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
