package supabase

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/renato0307/maint/internal/logging"
)

// tokenExpiry reads the exp claim of an access token without verifying it.
// The server verifies tokens; the client only needs to know when to refresh.
func tokenExpiry(accessToken string) time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		logging.Logger.Warn("Could not read access token expiry", "error", err)
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.UTC()
}
