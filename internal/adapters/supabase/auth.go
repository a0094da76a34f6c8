package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/ports"
)

const (
	logoutPath = "/auth/v1/logout"
	tokenPath  = "/auth/v1/token"
	userPath   = "/auth/v1/user"
)

// tokenResponse is the GoTrue session payload
type tokenResponse struct {
	AccessToken  string      `json:"access_token"`
	ExpiresAt    int64       `json:"expires_at"`
	ExpiresIn    int64       `json:"expires_in"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	User         userPayload `json:"user"`
}

type userPayload struct {
	Email string `json:"email"`
	ID    string `json:"id"`
}

func (u userPayload) toDomain() domain.User {
	return domain.User{Email: u.Email, ID: u.ID}
}

// SignInWithPassword exchanges email and password for a session
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	session, err := c.grant(ctx, "password", map[string]string{
		"email":    strings.TrimSpace(email),
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	if err := c.keeper.Establish(ctx, session, domain.AuthEventSignedIn); err != nil {
		return nil, err
	}
	logging.Logger.Info("Signed in", "user_id", session.User.ID)
	return session, nil
}

// SignOut revokes the session remotely and forgets it locally. A session the
// server no longer knows is treated as signed out.
func (c *Client) SignOut(ctx context.Context) error {
	session, err := c.keeper.Peek(ctx)
	if err != nil {
		return err
	}

	if session != nil {
		resp, err := c.http.R().
			SetContext(ctx).
			SetAuthToken(session.AccessToken).
			SetQueryParam("scope", "global").
			Post(logoutPath)
		if err != nil {
			return fmt.Errorf("failed to sign out: %w", err)
		}
		switch resp.StatusCode() {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			logging.Logger.Debug("Session already gone on server", "status", resp.StatusCode())
		default:
			if resp.IsError() {
				return parseAPIError(resp)
			}
		}
	}

	c.keeper.Clear(ctx)
	return nil
}

func (c *Client) GetSession(ctx context.Context) (*domain.Session, error) {
	return c.keeper.Current(ctx)
}

// GetUser validates the current access token with the server
func (c *Client) GetUser(ctx context.Context) (*domain.User, error) {
	session, err := c.keeper.Current(ctx)
	if err != nil || session == nil {
		return nil, err
	}

	var user userPayload
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(session.AccessToken).
		SetResult(&user).
		Get(userPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if resp.IsError() {
		return nil, parseAPIError(resp)
	}

	u := user.toDomain()
	return &u, nil
}

func (c *Client) OnAuthStateChange(handler ports.AuthStateHandler) func() {
	return c.keeper.Subscribe(handler)
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	return c.grant(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
}

// grant calls the token endpoint with grantType
func (c *Client) grant(ctx context.Context, grantType string, body map[string]string) (*domain.Session, error) {
	var payload tokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.key).
		SetQueryParam("grant_type", grantType).
		SetBody(body).
		SetResult(&payload).
		Post(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to request token: %w", err)
	}
	if resp.IsError() {
		apiErr := parseAPIError(resp)
		logging.Logger.Warn("Token request rejected", "grant_type", grantType, "status", apiErr.Status, "code", apiErr.Code)
		return nil, apiErr
	}

	return c.toSession(payload), nil
}

func (c *Client) toSession(payload tokenResponse) *domain.Session {
	session := &domain.Session{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		TokenType:    payload.TokenType,
		User:         payload.User.toDomain(),
	}

	switch {
	case payload.ExpiresAt > 0:
		session.ExpiresAt = time.Unix(payload.ExpiresAt, 0).UTC()
	case payload.ExpiresIn > 0:
		session.ExpiresAt = c.now().Add(time.Duration(payload.ExpiresIn) * time.Second).UTC().Truncate(time.Second)
	default:
		session.ExpiresAt = tokenExpiry(payload.AccessToken)
	}
	return session
}
