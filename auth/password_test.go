package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordProducesDistinctSaltedDigests(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("hunter2")
	require.NoError(t, err)
	second, err := HashPassword("hunter2")
	require.NoError(t, err)

	// Same plaintext, different salt, different digest.
	require.NotEqual(t, first, second)
	require.True(t, CheckPassword("hunter2", first))
	require.True(t, CheckPassword("hunter2", second))
}

func TestCheckPasswordMismatch(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	require.False(t, CheckPassword("wrong password", digest))
	require.False(t, CheckPassword("", digest))
	require.False(t, CheckPassword("correct horse battery staple", "not-a-bcrypt-digest"))
}
