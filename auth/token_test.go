package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/user/blogger-go/config"
)

func newTestTokenService(ttl time.Duration) *TokenService {
	return NewTokenService(config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenDuration: ttl,
	})
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(time.Hour)

	token, err := ts.Issue(42, "reader@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	require.Equal(t, 42, claims.UserID)
	require.Equal(t, "reader@example.com", claims.Email)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerifyExpiredToken(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(-time.Second)

	token, err := ts.Issue(7, "late@example.com")
	require.NoError(t, err)

	_, err = ts.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := newTestTokenService(time.Hour).Issue(7, "a@example.com")
	require.NoError(t, err)

	other := NewTokenService(config.AuthConfig{JWTSecret: "another-secret", TokenDuration: time.Hour})
	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyMalformedToken(t *testing.T) {
	t.Parallel()

	_, err := newTestTokenService(time.Hour).Verify("not.a.token")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsZeroSubject(t *testing.T) {
	t.Parallel()

	ts := newTestTokenService(time.Hour)
	token, err := ts.Issue(0, "nobody@example.com")
	require.NoError(t, err)

	_, err = ts.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
