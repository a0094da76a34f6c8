package domain

import (
	"strings"
	"time"
)

// DefaultDisplayName is used when neither a profile name nor an email is known
const DefaultDisplayName = "Usuario"

// sessionExpirySkew treats tokens as expired slightly before they really are
const sessionExpirySkew = 30 * time.Second

// User is the authenticated identity behind a session
type User struct {
	Email string `json:"email"`
	ID    string `json:"id"`
}

// Session is a server-issued credential bound to exactly one user
type Session struct {
	AccessToken  string    `json:"access_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	User         User      `json:"user"`
}

// Expired reports whether the access token should be refreshed before use.
// A zero ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(sessionExpirySkew).Before(s.ExpiresAt)
}

// UserRole is the role stored in the users table
type UserRole string

const (
	RoleChief      UserRole = "chief"
	RoleSupervisor UserRole = "supervisor"
)

// Valid reports whether r is a known role
func (r UserRole) Valid() bool {
	return r == RoleChief || r == RoleSupervisor
}

// UserProfile is the extended user record from the users table
type UserProfile struct {
	CreatedAt         time.Time `json:"created_at"`
	FullName          string    `json:"full_name"`
	ID                string    `json:"id"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	Role              UserRole  `json:"role"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultProfile synthesizes the profile used when the users row cannot be read
func DefaultProfile(user User, now time.Time) UserProfile {
	return UserProfile{
		CreatedAt: now,
		FullName:  EmailLocalPart(user.Email),
		ID:        user.ID,
		Role:      RoleSupervisor,
		UpdatedAt: now,
	}
}

// EmailLocalPart returns the part of an email before '@', or DefaultDisplayName
func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return DefaultDisplayName
	}
	return local
}

// AuthEvent is a session change notification emitted by an auth provider
type AuthEvent string

const (
	AuthEventInitialSession AuthEvent = "INITIAL_SESSION"
	AuthEventSignedIn       AuthEvent = "SIGNED_IN"
	AuthEventSignedOut      AuthEvent = "SIGNED_OUT"
	AuthEventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	AuthEventUserUpdated    AuthEvent = "USER_UPDATED"
)
