package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/primetrade/taskboard-api/internal/domain"
	"github.com/primetrade/taskboard-api/internal/service/auth"
	"github.com/primetrade/taskboard-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"bad signature", auth.ErrInvalidSignature, http.StatusUnauthorized},
		{"malformed token", auth.ErrMalformedToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"weak password", domain.ErrPasswordTooWeak, http.StatusBadRequest},
		{"invalid task status", domain.ErrInvalidTaskStatus, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped task not found", fmt.Errorf("lookup: %w", store.ErrTaskNotFound), http.StatusNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("invalid credentials never name the failing field", func(t *testing.T) {
		t.Parallel()

		msg := GetSafeErrorMessage(auth.ErrInvalidCredentials)
		assert.Equal(t, "Invalid credentials", msg)
		assert.NotContains(t, msg, "email")
		assert.NotContains(t, msg, "password")
	})

	t.Run("domain validation messages pass through", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, domain.ErrEmptyTaskTitle.Error(),
			GetSafeErrorMessage(domain.ErrEmptyTaskTitle))
		assert.Equal(t, domain.ErrPasswordTooWeak.Error(),
			GetSafeErrorMessage(domain.ErrPasswordTooWeak))
	})

	t.Run("unknown errors get a generic message", func(t *testing.T) {
		t.Parallel()

		internal := errors.New("pq: relation tasks does not exist")
		msg := GetSafeErrorMessage(internal)
		assert.Equal(t, "An unexpected error occurred", msg)
		assert.NotContains(t, msg, "pq:")
	})

	t.Run("nil error gets a generic message", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	t.Run("extracts field and tag", func(t *testing.T) {
		t.Parallel()

		err := errors.New(
			"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag")
		assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))
	})

	t.Run("falls back for other errors", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
	})
}
