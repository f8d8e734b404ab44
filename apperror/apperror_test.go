package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusCodeMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		errType ErrorType
		want    int
	}{
		{ValidationError, http.StatusUnprocessableEntity},
		{NotFoundError, http.StatusNotFound},
		{AuthError, http.StatusUnauthorized},
		{UnauthorizedError, http.StatusForbidden},
		{ConflictError, http.StatusConflict},
		{BadRequestError, http.StatusBadRequest},
		{DatabaseError, http.StatusInternalServerError},
		{InternalError, http.StatusInternalServerError},
		{UnknownError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, NewAppError(tc.errType, "msg", nil).StatusCode())
	}
}

func TestToResponseHidesUnderlyingError(t *testing.T) {
	t.Parallel()

	underlying := errors.New("pq: duplicate key value violates unique constraint")
	appErr := NewConflictError("E-mail address already exists.", underlying)

	resp := appErr.ToResponse()
	require.Equal(t, "E-mail address already exists.", resp.Message)
	require.Nil(t, resp.Data)
	require.NotContains(t, resp.Message, "pq:")
}

func TestFromErrorUnwrapsChain(t *testing.T) {
	t.Parallel()

	appErr := NewNotFoundError("post not found!", nil)
	wrapped := fmt.Errorf("handling request: %w", appErr)

	got, ok := FromError(wrapped)
	require.True(t, ok)
	require.Equal(t, NotFoundError, got.Type)

	_, ok = FromError(errors.New("plain"))
	require.False(t, ok)

	_, ok = FromError(nil)
	require.False(t, ok)
}

func TestClassifiers(t *testing.T) {
	t.Parallel()

	require.True(t, IsNotFound(NewNotFoundError("missing", nil)))
	require.True(t, IsAuthError(NewAuthError("invalid credentials", nil)))
	require.True(t, IsUnauthorizedError(NewUnauthorizedError("Not Authorized", nil)))
	require.True(t, IsValidationError(NewValidationError("bad payload", nil)))
	require.True(t, IsConflictError(NewConflictError("duplicate", nil)))
	require.False(t, IsNotFound(NewConflictError("duplicate", nil)))
}
