package handlers_test

import (
	"authbox/handlers"
	"authbox/models"
	"authbox/utils"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Message
}

func TestLoginRejectsNonPost(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()

	handlers.LoginHandler(w, r, nil, nil)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestLoginRejectsMissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "missing password", body: `{"username":"alice"}`},
		{name: "missing username", body: `{"password":"secret"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handlers.LoginHandler(w, r, nil, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "missing credentials", decodeMessage(t, w))
		})
	}
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	handlers.LoginHandler(w, r, nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "short username",
			body:    `{"username":"ab","password":"SecureP@ss123"}`,
			wantMsg: "username must be between 3 and 32 characters",
		},
		{
			name:    "weak password",
			body:    `{"username":"alice","password":"short"}`,
			wantMsg: "password must be at least 8 characters long",
		},
		{
			name:    "bad email",
			body:    `{"username":"alice","password":"SecureP@ss123","email":"not-an-email"}`,
			wantMsg: "invalid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handlers.RegisterHandler(w, r, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMsg, decodeMessage(t, w))
		})
	}
}

func TestMeRequiresBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	w := httptest.NewRecorder()

	handlers.MeHandler(w, r, nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing bearer token", decodeMessage(t, w))
}

func TestLogoutRevokesSession(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	session := models.Session{
		Token:        "T1",
		UserID:       "user-1",
		CreatedAt:    time.Now().Format(time.RFC3339),
		ExpiresAt:    time.Now().Add(handlers.SessionTTL).Format(time.RFC3339),
		LastActivity: time.Now().Format(time.RFC3339),
	}
	require.NoError(t, utils.StoreSession(redisClient, session, handlers.SessionTTL))

	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.Header.Set("Authorization", "Bearer T1")
	w := httptest.NewRecorder()

	handlers.LogoutHandler(w, r, redisClient)
	assert.Equal(t, http.StatusOK, w.Code)

	valid, err := utils.ValidateSession(redisClient, "T1")
	require.NoError(t, err)
	assert.False(t, valid, "session must be revoked")

	// Revoking again fails: the token no longer exists.
	w = httptest.NewRecorder()
	handlers.LogoutHandler(w, r, redisClient)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRequiresBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()

	handlers.LogoutHandler(w, r, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
