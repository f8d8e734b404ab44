package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/blogger-go/config"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(t *testing.T, handler http.Handler, path, ip string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = ip + ":54321"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthBucketIsStricter(t *testing.T) {
	t.Parallel()

	m := New(&config.RateLimitConfig{GeneralRPM: 100, AuthRPM: 3})
	handler := m.Handler(okHandler())

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, doRequest(t, handler, "/user/login", "10.0.0.1"))
	}
	require.Equal(t, http.StatusTooManyRequests, doRequest(t, handler, "/user/login", "10.0.0.1"))

	// The general bucket for the same client is untouched.
	require.Equal(t, http.StatusOK, doRequest(t, handler, "/post", "10.0.0.1"))
}

func TestClientsAreIsolated(t *testing.T) {
	t.Parallel()

	m := New(&config.RateLimitConfig{GeneralRPM: 100, AuthRPM: 1})
	handler := m.Handler(okHandler())

	require.Equal(t, http.StatusOK, doRequest(t, handler, "/user/create", "10.0.0.1"))
	require.Equal(t, http.StatusTooManyRequests, doRequest(t, handler, "/user/create", "10.0.0.1"))

	// A different client still has a full bucket.
	require.Equal(t, http.StatusOK, doRequest(t, handler, "/user/create", "10.0.0.2"))
}

func TestForwardedForIsPreferred(t *testing.T) {
	t.Parallel()

	m := New(&config.RateLimitConfig{GeneralRPM: 100, AuthRPM: 1})
	handler := m.Handler(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/user/login", nil)
	req.RemoteAddr = "10.0.0.1:1111"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Same forwarded client, different socket: shares the same bucket.
	req2 := httptest.NewRequest(http.MethodPost, "/user/login", nil)
	req2.RemoteAddr = "10.0.0.9:2222"
	req2.Header.Set("X-Forwarded-For", "203.0.113.7")
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	require.Equal(t, http.StatusTooManyRequests, rec2.Code)
}
