package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/maint/internal/adapters/storage"
	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/ports"
)

const testKey = "sb_publishable_test"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func tokenBody(access, refresh string) map[string]any {
	return map[string]any{
		"access_token":  access,
		"expires_in":    3600,
		"refresh_token": refresh,
		"token_type":    "bearer",
		"user":          map[string]any{"id": "user-1", "email": "ana@example.com"},
	}
}

func newTestClient(t *testing.T, mux *http.ServeMux, sessions ports.SessionStore) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	if sessions == nil {
		sessions = storage.NewMemorySessionStore()
	}
	client, err := New(Config{PublishableKey: testKey, Retries: -1, URL: server.URL + "/"}, sessions)
	require.NoError(t, err)
	return client
}

func TestNew_RequiresProjectCoordinates(t *testing.T) {
	_, err := New(Config{PublishableKey: testKey}, storage.NewMemorySessionStore())
	assert.ErrorIs(t, err, ErrMissingURL)

	_, err = New(Config{URL: "http://localhost"}, storage.NewMemorySessionStore())
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestClient_SignInWithPassword(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, testKey, r.Header.Get("apikey"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		assert.Equal(t, "secret123", body["password"])

		writeJSON(w, http.StatusOK, tokenBody("access-1", "refresh-1"))
	})

	sessions := storage.NewMemorySessionStore()
	client := newTestClient(t, mux, sessions)

	var events []domain.AuthEvent
	client.OnAuthStateChange(func(_ context.Context, event domain.AuthEvent, _ *domain.Session) {
		events = append(events, event)
	})

	session, err := client.SignInWithPassword(context.Background(), " ana@example.com ", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "access-1", session.AccessToken)
	assert.Equal(t, "user-1", session.User.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)

	stored, err := sessions.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", stored.RefreshToken, "session is persisted")
	assert.Equal(t, []domain.AuthEvent{domain.AuthEventInitialSession, domain.AuthEventSignedIn}, events)
}

func TestClient_SignInRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":       400,
			"error_code": "invalid_credentials",
			"msg":        "Invalid login credentials",
		})
	})
	client := newTestClient(t, mux, nil)

	_, err := client.SignInWithPassword(context.Background(), "ana@example.com", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_credentials", apiErr.Code)
	assert.Equal(t, "Invalid login credentials", domain.ErrorMessage(err))
}

func signedIn(t *testing.T, access string, expiresAt time.Time) ports.SessionStore {
	t.Helper()
	sessions := storage.NewMemorySessionStore()
	require.NoError(t, sessions.Save(context.Background(), &domain.Session{
		AccessToken:  access,
		ExpiresAt:    expiresAt,
		RefreshToken: "refresh-" + access,
		TokenType:    "bearer",
		User:         domain.User{Email: "ana@example.com", ID: "user-1"},
	}))
	return sessions
}

func TestClient_SelectBuildsPostgrestQuery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rest/v1/tasks", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "*,accommodation:accommodations(id,code,name)", query.Get("select"))
		assert.Equal(t, "eq.acc-1", query.Get("accommodation_id"))
		assert.Equal(t, "created_at.desc", query.Get("order"))
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": "task-1", "estimated_cost": 1234567890.123456789},
		})
	})
	client := newTestClient(t, mux, signedIn(t, "access-1", time.Now().Add(time.Hour)))

	rows, err := client.Select(context.Background(), "tasks", ports.Query{
		Embeds: []ports.Embed{{
			Alias:      "accommodation",
			Columns:    []string{"id", "code", "name"},
			ForeignKey: "accommodation_id",
			Table:      "accommodations",
		}},
		Filters: []ports.Filter{ports.Eq("accommodation_id", "acc-1")},
		Order:   &ports.Order{Column: "created_at"},
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.IsType(t, json.Number(""), rows[0]["estimated_cost"])
}

func TestClient_AnonymousRequestsUseThePublishableKey(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rest/v1/area_catalog", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []map[string]any{})
	})
	client := newTestClient(t, mux, nil)

	rows, err := client.Select(context.Background(), "area_catalog", ports.Query{})

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestClient_SelectOneNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rest/v1/accommodations", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, singleObject, r.Header.Get("Accept"))
		writeJSON(w, http.StatusNotAcceptable, map[string]any{
			"code":    "PGRST116",
			"details": "The result contains 0 rows",
			"message": "Cannot coerce the result to a single JSON object",
		})
	})
	client := newTestClient(t, mux, nil)

	_, err := client.SelectOne(context.Background(), "accommodations", ports.Query{
		Filters: []ports.Filter{ports.Eq("id", "missing")},
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_InsertReturnsRepresentation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /rest/v1/accommodations", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "*", r.URL.Query().Get("select"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "AB1", body["code"])

		body["id"] = "acc-1"
		writeJSON(w, http.StatusCreated, body)
	})
	client := newTestClient(t, mux, signedIn(t, "access-1", time.Now().Add(time.Hour)))

	row, err := client.Insert(context.Background(), "accommodations", ports.Row{"code": "AB1"}, ports.Query{})

	require.NoError(t, err)
	assert.Equal(t, "acc-1", row["id"])
}

// dropFirst closes the connection of the first request without answering,
// then hands the following requests to next
func dropFirst(t *testing.T, calls *atomic.Int32, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		next(w, r)
	}
}

func newDefaultRetryClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := New(Config{PublishableKey: testKey, URL: server.URL}, storage.NewMemorySessionStore())
	require.NoError(t, err)
	return client
}

func TestClient_DroppedWritesAreNotReplayed(t *testing.T) {
	var posts, patches atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /rest/v1/accommodations", dropFirst(t, &posts, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"id": "acc-1"})
	}))
	mux.HandleFunc("PATCH /rest/v1/accommodations", dropFirst(t, &patches, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": "acc-1"})
	}))
	client := newDefaultRetryClient(t, mux)
	ctx := context.Background()

	_, err := client.Insert(ctx, "accommodations", ports.Row{"code": "AB1"}, ports.Query{})
	assert.Error(t, err)
	assert.Equal(t, int32(1), posts.Load())

	_, err = client.Update(ctx, "accommodations",
		[]ports.Filter{ports.Eq("id", "acc-1")},
		ports.Row{"name": "Villa Sur"},
		ports.Query{},
	)
	assert.Error(t, err)
	assert.Equal(t, int32(1), patches.Load())
}

func TestClient_DroppedReadsAreRetried(t *testing.T) {
	var gets atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rest/v1/accommodations", dropFirst(t, &gets, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "acc-1"}})
	}))
	client := newDefaultRetryClient(t, mux)

	rows, err := client.Select(context.Background(), "accommodations", ports.Query{})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(2), gets.Load())
}

func TestClient_UpdateFiltersAndSurfacesErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /rest/v1/tasks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.task-1", r.URL.Query().Get("id"))
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":    "23514",
			"message": `new row for relation "tasks" violates check constraint "tasks_status_check"`,
		})
	})
	client := newTestClient(t, mux, signedIn(t, "access-1", time.Now().Add(time.Hour)))

	_, err := client.Update(context.Background(), "tasks",
		[]ports.Filter{ports.Eq("id", "task-1")},
		ports.Row{"status": "bogus"},
		ports.Query{},
	)

	require.Error(t, err)
	assert.Contains(t, domain.ErrorMessage(err), "violates check constraint")
}

func TestClient_ExpiredSessionIsRefreshedBeforeRequests(t *testing.T) {
	var refreshes atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		refreshes.Add(1)
		writeJSON(w, http.StatusOK, tokenBody("access-2", "refresh-2"))
	})
	mux.HandleFunc("GET /rest/v1/tasks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-2", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []map[string]any{})
	})
	client := newTestClient(t, mux, signedIn(t, "access-1", time.Now().Add(-time.Minute)))

	_, err := client.Select(context.Background(), "tasks", ports.Query{})
	require.NoError(t, err)
	_, err = client.Select(context.Background(), "tasks", ports.Query{})
	require.NoError(t, err)

	assert.Equal(t, int32(1), refreshes.Load())
}

func TestClient_SignOutToleratesUnknownSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusUnauthorized, map[string]any{"msg": "invalid JWT"})
	})
	sessions := signedIn(t, "access-1", time.Now().Add(time.Hour))
	client := newTestClient(t, mux, sessions)

	require.NoError(t, client.SignOut(context.Background()))

	stored, err := sessions.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestClient_GetUserWithoutSession(t *testing.T) {
	client := newTestClient(t, http.NewServeMux(), nil)

	user, err := client.GetUser(context.Background())

	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestTokenExpiry(t *testing.T) {
	expiresAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString([]byte("any-secret"))
	require.NoError(t, err)

	assert.Equal(t, expiresAt, tokenExpiry(token))
	assert.True(t, tokenExpiry("not-a-jwt").IsZero())
}
