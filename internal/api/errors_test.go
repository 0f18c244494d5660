package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/interna-hq/interna-api/internal/api"
	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/generation"
	"github.com/interna-hq/interna-api/internal/service/auth"
	"github.com/interna-hq/interna-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"forbidden", domain.ErrUnauthorized, http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"simulation not found", store.ErrSimulationNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"issue throttled", store.ErrIssueThrottled, http.StatusTooManyRequests},
		{"too many attempts", store.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"challenge gone", store.ErrChallengeNotFound, http.StatusGone},
		{"code mismatch", store.ErrCodeMismatch, http.StatusBadRequest},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"content blocked", generation.ErrContentBlocked, http.StatusUnprocessableEntity},
		{"transient upstream", generation.ErrTransientFailure, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToStatusCodeWrapped(t *testing.T) {
	// Wrapped sentinels must classify the same as bare ones.
	wrapped := fmt.Errorf("failed to verify code: %w", store.ErrTooManyAttempts)
	assert.Equal(t, http.StatusTooManyRequests, api.MapErrorToStatusCode(wrapped))

	doubleWrapped := fmt.Errorf("handler: %w", fmt.Errorf("service: %w", store.ErrEmailExists))
	assert.Equal(t, http.StatusConflict, api.MapErrorToStatusCode(doubleWrapped))
}

func TestGetSafeErrorMessage(t *testing.T) {
	// The safe message never carries the internal error text.
	internalErr := fmt.Errorf("pq: duplicate key value violates unique constraint %w", store.ErrEmailExists)
	msg := api.GetSafeErrorMessage(internalErr)
	assert.Equal(t, "An account with this email already exists", msg)
	assert.NotContains(t, msg, "pq:")

	assert.Equal(t, "An unexpected error occurred", api.GetSafeErrorMessage(errors.New("raw driver error")))
	assert.Equal(t, "An unexpected error occurred", api.GetSafeErrorMessage(nil))
}

func TestSanitizeValidationError(t *testing.T) {
	v := validator.New()

	type form struct {
		Email string `validate:"required,email"`
	}

	err := v.Struct(form{Email: "not-an-email"})
	msg := api.SanitizeValidationError(err)
	assert.Equal(t, "Invalid Email: invalid email format", msg)

	err = v.Struct(form{})
	msg = api.SanitizeValidationError(err)
	assert.Equal(t, "Invalid Email: required field", msg)

	assert.Equal(t, "Validation error", api.SanitizeValidationError(errors.New("something else")))
}
