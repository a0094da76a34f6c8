package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/logging"
)

// ErrEmailTaken is returned when adding an account whose email already exists
var ErrEmailTaken = errors.New("email already registered")

// AddUser creates a local account with a bcrypt-hashed password and returns its id
func (b *LocalBackend) AddUser(ctx context.Context, email, password, fullName string, role domain.UserRole) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("email is required")
	}
	if !role.Valid() {
		return "", fmt.Errorf("invalid role %q", role)
	}

	var count int64
	if err := b.db.WithContext(ctx).Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := UserModel{
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		ID:           uuid.NewString(),
		PasswordHash: string(hash),
		Role:         string(role),
	}
	if err := withRetry(func() error { return b.db.WithContext(ctx).Create(&user).Error }, defaultRetries); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	logging.Logger.Info("Local user added", "user_id", user.ID, "role", role)
	return user.ID, nil
}

// AddArea inserts a catalog area and returns its id
func (b *LocalBackend) AddArea(ctx context.Context, key, label string, displayOrder int) (string, error) {
	area := AreaCatalogModel{
		DisplayOrder: displayOrder,
		ID:           uuid.NewString(),
		Key:          strings.TrimSpace(key),
		Label:        strings.TrimSpace(label),
	}
	if area.Key == "" || area.Label == "" {
		return "", fmt.Errorf("area key and label are required")
	}
	if err := withRetry(func() error { return b.db.WithContext(ctx).Create(&area).Error }, defaultRetries); err != nil {
		return "", fmt.Errorf("failed to create area: %w", err)
	}
	return area.ID, nil
}

// AddElement inserts a catalog element under areaID and returns its id
func (b *LocalBackend) AddElement(ctx context.Context, areaID, name string, displayOrder int) (string, error) {
	var count int64
	if err := b.db.WithContext(ctx).Model(&AreaCatalogModel{}).Where("id = ?", areaID).Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to check area: %w", err)
	}
	if count == 0 {
		return "", fmt.Errorf("area %s: %w", areaID, domain.ErrNotFound)
	}

	element := ElementCatalogModel{
		AreaCatalogID: areaID,
		DisplayOrder:  displayOrder,
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(name),
	}
	if element.Name == "" {
		return "", fmt.Errorf("element name is required")
	}
	if err := withRetry(func() error { return b.db.WithContext(ctx).Create(&element).Error }, defaultRetries); err != nil {
		return "", fmt.Errorf("failed to create element: %w", err)
	}
	return element.ID, nil
}
