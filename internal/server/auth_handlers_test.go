package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	app, _ := setupTestServer(t)

	status, body := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/users", map[string]string{
		"name":     "Dev One",
		"email":    "dev@example.com",
		"password": "secret123",
	}, ""))

	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "Dev One", user["name"])
	assert.Equal(t, "dev@example.com", user["email"])
	assert.Contains(t, user["avatar"], "gravatar.com")
	// The password hash never leaves the server.
	assert.NotContains(t, user, "password")
}

func TestRegister_Validation(t *testing.T) {
	app, _ := setupTestServer(t)

	status, body := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/users", map[string]string{
		"name":     "",
		"email":    "not-an-email",
		"password": "123",
	}, ""))

	require.Equal(t, http.StatusBadRequest, status)
	violations := body["errors"].([]any)
	// Every violation reported at once.
	assert.Len(t, violations, 3)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, _ := setupTestServer(t)
	registerUser(t, app, "Dev One", "dup@example.com")

	status, body := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/users", map[string]string{
		"name":     "Dev Two",
		"email":    "dup@example.com",
		"password": "secret123",
	}, ""))

	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User already exists", body["error"])
}

func TestLogin(t *testing.T) {
	app, _ := setupTestServer(t)
	registerUser(t, app, "Dev One", "dev@example.com")

	status, body := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "dev@example.com",
		"password": "secret123",
	}, ""))
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, body = doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "dev@example.com",
		"password": "wrong-password",
	}, ""))
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["error"])

	// Unknown email is indistinguishable from a wrong password.
	status, body = doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret123",
	}, ""))
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestAuthGate(t *testing.T) {
	app, _ := setupTestServer(t)
	token, userID := registerUser(t, app, "Dev One", "dev@example.com")

	t.Run("valid token resolves identity", func(t *testing.T) {
		status, body := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/auth", nil, token))
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(userID), body["id"])
	})

	t.Run("missing header rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/auth", nil, ""))
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		status, _ := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/auth", nil, "not-a-real-token"))
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := jsonRequest(t, http.MethodGet, "/api/auth", nil, "")
		req.Header.Set("Authorization", "Token abc")
		status, _ := doJSON(t, app, req)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
