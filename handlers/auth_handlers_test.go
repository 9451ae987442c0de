package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tourbook/auth"
	"tourbook/models"
)

func newAuthApp(t *testing.T, profiles *fakeProfiles) (*fiber.App, *auth.Tokens) {
	t.Helper()
	tokens := auth.NewTokens("test-secret", time.Hour)
	h := &Handler{
		Profiles: profiles,
		Tokens:   tokens,
		Verifier: auth.NewVerifier(tokens, profiles),
		Log:      zap.NewNop(),
	}
	app := fiber.New()
	app.Post("/auth/login", h.HandleLogin)
	app.Get("/auth/session", h.HandleGetSession)
	return app, tokens
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin(t *testing.T) {
	profiles := &fakeProfiles{byID: map[string]*models.Profile{
		"u1": {ID: "u1", Email: "admin@example.com", Role: models.RoleAdmin, PasswordHash: hashed(t, "s3cret!")},
	}}
	app, tokens := newAuthApp(t, profiles)

	resp, body := do(t, app, "POST", "/auth/login", map[string]any{"email": "admin@example.com", "password": "s3cret!"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	token, _ := body["accessToken"].(string)
	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)

	profile := body["profile"].(map[string]any)
	assert.Equal(t, "admin", profile["role"])
	assert.NotContains(t, profile, "password_hash")
}

func TestLoginRejects(t *testing.T) {
	profiles := &fakeProfiles{byID: map[string]*models.Profile{
		"u1": {ID: "u1", Email: "admin@example.com", Role: models.RoleAdmin, PasswordHash: hashed(t, "s3cret!")},
		"u2": {ID: "u2", Email: "nopass@example.com", Role: models.RoleAdmin},
	}}
	app, _ := newAuthApp(t, profiles)

	cases := []struct {
		name   string
		req    map[string]any
		status int
	}{
		{"wrong password", map[string]any{"email": "admin@example.com", "password": "guess"}, fiber.StatusUnauthorized},
		{"unknown email", map[string]any{"email": "who@example.com", "password": "s3cret!"}, fiber.StatusUnauthorized},
		{"no stored hash", map[string]any{"email": "nopass@example.com", "password": "anything"}, fiber.StatusUnauthorized},
		{"missing password", map[string]any{"email": "admin@example.com"}, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := do(t, app, "POST", "/auth/login", tc.req)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestLoginStoreFailure(t *testing.T) {
	app, _ := newAuthApp(t, &fakeProfiles{err: errors.New("db down")})

	resp, _ := do(t, app, "POST", "/auth/login", map[string]any{"email": "admin@example.com", "password": "x"})
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestSessionStates(t *testing.T) {
	profiles := &fakeProfiles{byID: map[string]*models.Profile{
		"admin": {ID: "admin", Email: "a@example.com", Role: models.RoleAdmin},
		"guest": {ID: "guest", Email: "g@example.com", Role: models.RoleGuest},
	}}
	app, tokens := newAuthApp(t, profiles)

	issue := func(id string) string {
		token, err := tokens.Issue(id)
		require.NoError(t, err)
		return token
	}

	cases := []struct {
		name  string
		token string
		state string
	}{
		{"anonymous", "", "unauthenticated"},
		{"garbage", "not.a.jwt", "unauthenticated"},
		{"admin", issue("admin"), "authorized"},
		{"guest", issue("guest"), "forbidden"},
		{"deleted profile", issue("removed"), "unauthenticated"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var headers []string
			if tc.token != "" {
				headers = []string{"Authorization", "Bearer " + tc.token}
			}
			resp, body := do(t, app, "GET", "/auth/session", nil, headers...)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.state, body["data"].(map[string]any)["state"])
		})
	}
}

func TestSessionProfileFetchError(t *testing.T) {
	profiles := &fakeProfiles{}
	app, tokens := newAuthApp(t, profiles)
	token, err := tokens.Issue("u1")
	require.NoError(t, err)
	profiles.err = errors.New("db down")

	resp, _ := do(t, app, "GET", "/auth/session", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
