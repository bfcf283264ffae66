package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorMessageIncludesInternal(t *testing.T) {
	base := New("TEST", "outer message", http.StatusBadRequest)
	wrapped := base.WithInternal(errors.New("inner detail"))

	require.Equal(t, "outer message: inner detail", wrapped.Error())
	require.Equal(t, "outer message", base.Error())
	require.ErrorIs(t, wrapped, wrapped.Internal)
}

func TestFromErrorPassesThroughAppErrors(t *testing.T) {
	appErr := NewNotFound("Organization")
	require.Same(t, appErr, FromError(appErr))

	generic := errors.New("connection refused")
	converted := FromError(generic)
	require.Equal(t, ErrInternalServer.Code, converted.Code)
	require.ErrorIs(t, converted, generic)

	require.Nil(t, FromError(nil))
}

func TestConflictNamesField(t *testing.T) {
	err := NewConflict("email")
	require.Equal(t, "CONFLICT", err.Code)
	require.Equal(t, "email already in use", err.Message)
	require.Equal(t, http.StatusBadRequest, err.StatusCode)
}

func TestIsNotFound(t *testing.T) {
	require.True(t, IsNotFound(NewNotFound("User")))
	require.True(t, IsNotFound(ErrNotFound))
	require.False(t, IsNotFound(NewValidation("role is invalid")))
	require.False(t, IsNotFound(errors.New("plain")))
}
