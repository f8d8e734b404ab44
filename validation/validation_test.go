package validation

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/blogger-go/apperror"
)

type registerPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func TestStructValid(t *testing.T) {
	t.Parallel()

	err := Struct(registerPayload{
		Email:    "writer@example.com",
		Name:     "Writer",
		Password: "s3cret",
	})
	require.NoError(t, err)
}

func TestStructReportsAllViolations(t *testing.T) {
	t.Parallel()

	err := Struct(registerPayload{Email: "not-an-email"})
	require.Error(t, err)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode())
	require.Contains(t, appErr.Message, "email must be a valid email address")
	require.Contains(t, appErr.Message, "name is required")
	require.Contains(t, appErr.Message, "password is required")
}
