package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/blogger-go/apperror"
)

func TestAssertOwner(t *testing.T) {
	t.Parallel()

	require.NoError(t, AssertOwner(1, 1))

	err := AssertOwner(1, 2)
	require.Error(t, err)

	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, appErr.StatusCode())
	require.Equal(t, "Not Authorized", appErr.Message)
}
