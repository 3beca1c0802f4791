package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	appErr "github.com/xxxsen/remindme/internal/pkg/errors"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager([]byte("super-secret"), 7*24*time.Hour)
	token, err := m.Issue(42, "alice@example.com")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
}

func TestVerifyWindow(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	m := NewManager([]byte("secret"), 7*24*time.Hour).WithClock(func() time.Time { return now })

	token, err := m.Issue(7, "bob@example.com")
	require.NoError(t, err)

	now = issuedAt.Add(6 * 24 * time.Hour)
	claims, err := m.Verify(token)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)

	now = issuedAt.Add(8 * 24 * time.Hour)
	_, err = m.Verify(token)
	require.ErrorIs(t, err, appErr.ErrTokenExpired)
	require.True(t, appErr.IsUnauthorized(err))
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewManager([]byte("right-secret"), time.Hour).Issue(1, "a@b.c")
	require.NoError(t, err)

	_, err = NewManager([]byte("wrong-secret"), time.Hour).Verify(token)
	require.ErrorIs(t, err, appErr.ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	_, err := NewManager([]byte("k"), time.Hour).Verify("not.a.jwt")
	require.ErrorIs(t, err, appErr.ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewManager([]byte("k"), time.Hour).Verify(token)
	require.ErrorIs(t, err, appErr.ErrInvalidToken)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{UserID: 1}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewManager([]byte("k"), time.Hour).Verify(token)
	require.ErrorIs(t, err, appErr.ErrInvalidToken)
}
