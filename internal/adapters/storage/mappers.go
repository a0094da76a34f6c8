package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/ports"
)

// sessionModelToDomain converts a SessionModel (GORM) to domain.Session
func sessionModelToDomain(m SessionModel) domain.Session {
	session := domain.Session{
		AccessToken:  m.AccessToken,
		RefreshToken: m.RefreshToken,
		TokenType:    m.TokenType,
		User: domain.User{
			Email: m.UserEmail,
			ID:    m.UserID,
		},
	}
	if m.ExpiresAt != nil {
		session.ExpiresAt = m.ExpiresAt.UTC()
	}
	return session
}

// domainToSessionModel converts a domain.Session to SessionModel (GORM)
func domainToSessionModel(backend string, s domain.Session) SessionModel {
	var expiresAt *time.Time
	if !s.ExpiresAt.IsZero() {
		stamp := s.ExpiresAt.UTC()
		expiresAt = &stamp
	}
	return SessionModel{
		AccessToken:  s.AccessToken,
		Backend:      backend,
		ExpiresAt:    expiresAt,
		RefreshToken: s.RefreshToken,
		TokenType:    s.TokenType,
		UserEmail:    s.User.Email,
		UserID:       s.User.ID,
	}
}

// modelToRow exposes a model through its JSON field names
func modelToRow(model any) (ports.Row, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("failed to encode model: %w", err)
	}
	var row ports.Row
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	return row, nil
}

// rowToModel fills model from a row keyed by JSON field names
func rowToModel(row ports.Row, model any) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}
	if err := json.Unmarshal(data, model); err != nil {
		return fmt.Errorf("failed to decode row: %w", err)
	}
	return nil
}
