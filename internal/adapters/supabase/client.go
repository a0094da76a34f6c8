// Package supabase talks to a hosted Supabase project: GoTrue for auth and
// PostgREST for data.
package supabase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/renato0307/maint/internal/adapters/authevents"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/ports"
)

const (
	defaultRetries = 2
	defaultTimeout = 30 * time.Second
)

var (
	ErrMissingKey = errors.New("supabase publishable key is required")
	ErrMissingURL = errors.New("supabase url is required")
)

// Config holds the project coordinates
type Config struct {
	PublishableKey string
	Retries        int
	Timeout        time.Duration
	URL            string
}

// Client implements ports.RemoteDataService against a Supabase project
type Client struct {
	http   *resty.Client
	keeper *authevents.Keeper
	key    string
	now    func() time.Time
}

// Verify interface compliance at compile time
var _ ports.RemoteDataService = (*Client)(nil)

// New creates a Client. The session is restored from and persisted to sessions.
func New(cfg Config, sessions ports.SessionStore) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, ErrMissingURL
	}
	if strings.TrimSpace(cfg.PublishableKey) == "" {
		return nil, ErrMissingKey
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	// Zero means the default, negative disables retries
	retries := cfg.Retries
	switch {
	case retries == 0:
		retries = defaultRetries
	case retries < 0:
		retries = 0
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(3*time.Second).
		AddRetryCondition(retryReads).
		SetHeader("apikey", cfg.PublishableKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	c := &Client{
		http: httpClient,
		key:  cfg.PublishableKey,
		now:  time.Now,
	}
	c.keeper = authevents.NewKeeper(sessions, c.refresh)

	logging.Logger.Debug("Supabase client created", "url", cfg.URL, "timeout", timeout)
	return c, nil
}

// retryReads retries only reads that failed before any response arrived.
// A write or token grant may already be committed when the connection drops.
func retryReads(resp *resty.Response, err error) bool {
	if err == nil || resp == nil || resp.Request == nil || resp.RawResponse != nil {
		return false
	}
	switch resp.Request.Method {
	case http.MethodGet, http.MethodHead:
		return true
	}
	return false
}

// Close releases idle connections
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}

// request starts a request authorized as the current user, or anonymously
// with the publishable key when nobody is signed in
func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	token := c.key
	session, err := c.keeper.Current(ctx)
	if err != nil {
		return nil, err
	}
	if session != nil {
		token = session.AccessToken
	}
	return c.http.R().SetContext(ctx).SetAuthToken(token), nil
}
