package api

import (
	"encoding/json/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/auth/register", map[string]any{
		"name":     "Alice",
		"email":    "a@x.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.NotEmpty(t, body.Token)
	assert.NotEmpty(t, body.User.ID)
	assert.Equal(t, "a@x.com", body.User.Email)
	assert.Equal(t, "Alice", body.User.Name)
	assert.NotContains(t, resp.Body.String(), "password")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerTestUser(t, "taken@example.com")

	resp := ts.api.Post("/api/auth/register", map[string]any{
		"email":    "taken@example.com",
		"password": "another password",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "error")
}

func TestRegister_MissingFields(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/auth/register", map[string]any{
		"email": "a@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestLogin(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerTestUser(t, "alice@example.com")

	resp := ts.api.Post("/api/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "a secure password",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"token"`)
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerTestUser(t, "alice@example.com")

	resp := ts.api.Post("/api/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Unknown email reads identically to a wrong password.
	resp = ts.api.Post("/api/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "a secure password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerTestUser(t, "alice@example.com")

	limited := false
	for range 15 {
		resp := ts.api.Post("/api/auth/login", map[string]any{
			"email":    "alice@example.com",
			"password": "wrong password",
		})
		if resp.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited, "expected repeated login attempts to be rate limited")
}

func TestLoginRateLimit_KeyedByClientAddress(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerTestUser(t, "alice@example.com")

	login := func(addr string) int {
		body := strings.NewReader(`{"email":"alice@example.com","password":"wrong password"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		ts.ServeHTTP(rec, req)
		return rec.Code
	}

	// Exhaust one client's bucket.
	limited := false
	for range 15 {
		if login("198.51.100.7:4000") == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	require.True(t, limited, "expected repeated attempts from one address to be limited")

	// A different client address has its own bucket.
	assert.Equal(t, http.StatusUnauthorized, login("203.0.113.9:4000"))
}

func TestUpdateCurrentUser(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerTestUser(t, "alice@example.com")

	resp := ts.api.Put("/api/auth/me", bearer(token), map[string]any{
		"name": "Alice B.",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "Alice B.")
	assert.Contains(t, resp.Body.String(), "alice@example.com")

	resp = ts.api.Get("/api/auth/me", bearer(token))
	assert.Contains(t, resp.Body.String(), "Alice B.")
}

func TestUpdateCurrentUser_ChangesPassword(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerTestUser(t, "alice@example.com")

	resp := ts.api.Put("/api/auth/me", bearer(token), map[string]any{
		"name":     "Alice",
		"password": "a brand new password",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Post("/api/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "a secure password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Post("/api/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "a brand new password",
	})
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func TestUpdateCurrentUser_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/auth/me", map[string]any{"name": "Nobody"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetCurrentUser(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerTestUser(t, "alice@example.com")

	resp := ts.api.Get("/api/auth/me", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "alice@example.com")
}

func TestGetCurrentUser_Unauthorized(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/auth/me")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/auth/me", "Authorization: Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestDeleteCurrentUser(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerTestUser(t, "alice@example.com")

	resp := ts.api.Delete("/api/auth/me", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// The account is gone; the token no longer resolves to a user.
	resp = ts.api.Get("/api/auth/me", bearer(token))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
