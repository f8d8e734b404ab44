package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/user/blogger-go/apperror"
	"github.com/user/blogger-go/auth"
)

// newTestRouter wires the user routes the way main does, minus the JWT gate.
// Tests that need an identity put it in the request context directly.
func newTestRouter(h *UserHandlers) chi.Router {
	r := chi.NewRouter()
	r.Post("/user/create", h.HandleRegister())
	r.Post("/user/login", h.HandleLogin())
	r.Get("/user/{userId}", h.HandleGetUser())
	r.Put("/user/update/{userId}", h.HandleUpdateUser())
	r.Delete("/user/delete/{userId}", h.HandleDeleteUser())
	return r
}

func asUser(r *http.Request, userID int) *http.Request {
	ctx := context.WithValue(r.Context(), auth.UserIDKey, userID)
	return r.WithContext(ctx)
}

// The service is never reached on these paths, so a nil pool is safe.
func testHandlers() *UserHandlers {
	return NewUserHandlers(NewUserService(nil, nil))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apperror.ErrorResponse {
	t.Helper()
	var resp apperror.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRegisterRejectsInvalidPayloads(t *testing.T) {
	router := newTestRouter(testHandlers())

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", `{"email": `, http.StatusBadRequest},
		{"missing fields", `{}`, http.StatusUnprocessableEntity},
		{"bad email", `{"email":"not-an-email","name":"x","password":"y"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/user/create", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeEnvelope(t, rec)
			require.NotEmpty(t, resp.Message)
		})
	}
}

func TestLoginRejectsInvalidPayloads(t *testing.T) {
	router := newTestRouter(testHandlers())

	req := httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(`{"email":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetUserRejectsOtherUsers(t *testing.T) {
	router := newTestRouter(testHandlers())

	// Authenticated as user 2, fetching user 1.
	req := asUser(httptest.NewRequest(http.MethodGet, "/user/1", nil), 2)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.Equal(t, "Not Authorized", resp.Message)
}

func TestGetUserNonNumericIDIsNotFound(t *testing.T) {
	router := newTestRouter(testHandlers())

	req := asUser(httptest.NewRequest(http.MethodGet, "/user/abc", nil), 1)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.Equal(t, "user not found!", resp.Message)
}

func TestMutationsRequireIdentity(t *testing.T) {
	router := newTestRouter(testHandlers())

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"get", http.MethodGet, "/user/1"},
		{"update", http.MethodPut, "/user/update/1"},
		{"delete", http.MethodDelete, "/user/delete/1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No identity in context, as if the gate were bypassed.
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
