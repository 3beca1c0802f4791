package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMatchesKind(t *testing.T) {
	require.True(t, errors.Is(ErrTokenExpired, ErrUnauthorized))
	require.True(t, errors.Is(ErrTokenExpired, ErrTokenExpired))
	require.False(t, errors.Is(ErrTokenExpired, ErrInvalidToken))
	require.False(t, errors.Is(ErrTokenExpired, ErrNotFound))

	wrapped := fmt.Errorf("login: %w", ErrInvalidCredentials)
	require.True(t, IsUnauthorized(wrapped))
	require.True(t, errors.Is(wrapped, ErrInvalidCredentials))
}

func TestInvalidCarriesField(t *testing.T) {
	err := Invalid("title", "is required")
	require.True(t, IsInvalid(err))
	require.Equal(t, "title", err.Field())
	require.Equal(t, "is required", err.Error())

	var target *Error
	require.True(t, errors.As(fmt.Errorf("create: %w", err), &target))
	require.Equal(t, "title", target.Field())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrDelivery, "failed to deliver notification", cause)
	require.True(t, errors.Is(err, ErrDelivery))
	require.True(t, errors.Is(err, cause))
	require.Equal(t, "failed to deliver notification", err.Message())
	require.Contains(t, err.Error(), "connection refused")
}
