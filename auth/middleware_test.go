package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/user/blogger-go/apperror"
	"github.com/user/blogger-go/config"
)

// gateTestHandler echoes the identity the middleware attached to the context.
func gateTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		require.True(t, ok)
		email, ok := GetEmailFromContext(r.Context())
		require.True(t, ok)
		WriteJSON(w, http.StatusOK, map[string]interface{}{"userId": userID, "email": email})
	})
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(time.Hour)
	token, err := ts.Issue(9, "gate@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/post/user-post", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	JWTMiddleware(ts)(gateTestHandler(t)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.EqualValues(t, 9, body["userId"])
	require.Equal(t, "gate@example.com", body["email"])
}

func TestJWTMiddlewareRejections(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(time.Hour)
	expired, err := newTestTokenService(-time.Minute).Issue(9, "gate@example.com")
	require.NoError(t, err)
	foreign, err := NewTokenService(config.AuthConfig{JWTSecret: "some-other-secret", TokenDuration: time.Hour}).Issue(9, "gate@example.com")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer value", "Token abc"},
		{"single segment", "Bearer"},
		{"malformed token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expired},
		{"wrong signature", "Bearer " + foreign},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/post/user-post", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			handlerRan := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { handlerRan = true })
			JWTMiddleware(ts)(next).ServeHTTP(rec, req)

			// Rejection happens before the handler, always as 401.
			require.False(t, handlerRan)
			require.Equal(t, http.StatusUnauthorized, rec.Code)

			var envelope apperror.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			require.NotEmpty(t, envelope.Message)
		})
	}
}
