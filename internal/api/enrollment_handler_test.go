package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interna-hq/interna-api/internal/api"
	"github.com/interna-hq/interna-api/internal/domain"
)

func TestVerifyEmailEndpoint(t *testing.T) {
	ctx := context.Background()

	t.Run("correct code verifies and advances", func(t *testing.T) {
		env := newAPIEnv(t)
		env.seedUser(t, "sara@example.com", false)
		require.NoError(t, env.challenges.Issue(ctx, "sara@example.com", "123456"))

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		req := jsonRequest(t, http.MethodPost, "/api/enrollment/verify",
			map[string]string{"email": "sara@example.com", "code": "123456"})
		rec := httptest.NewRecorder()
		handler.VerifyEmail(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body api.EnrollmentResultResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "success", body.Status)
		assert.Equal(t, domain.StepField, body.Step)
	})

	t.Run("wrong code is 400 invalid_code", func(t *testing.T) {
		env := newAPIEnv(t)
		env.seedUser(t, "sara@example.com", false)
		require.NoError(t, env.challenges.Issue(ctx, "sara@example.com", "123456"))

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		req := jsonRequest(t, http.MethodPost, "/api/enrollment/verify",
			map[string]string{"email": "sara@example.com", "code": "654321"})
		rec := httptest.NewRecorder()
		handler.VerifyEmail(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body api.EnrollmentResultResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "error", body.Status)
		assert.Equal(t, "invalid_code", body.Reason)
	})

	t.Run("expired challenge is 410", func(t *testing.T) {
		env := newAPIEnv(t)
		env.seedUser(t, "sara@example.com", false)

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		req := jsonRequest(t, http.MethodPost, "/api/enrollment/verify",
			map[string]string{"email": "sara@example.com", "code": "123456"})
		rec := httptest.NewRecorder()
		handler.VerifyEmail(rec, req)

		assert.Equal(t, http.StatusGone, rec.Code)

		var body api.EnrollmentResultResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "expired", body.Reason)
	})

	t.Run("unknown account is 404", func(t *testing.T) {
		env := newAPIEnv(t)

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		req := jsonRequest(t, http.MethodPost, "/api/enrollment/verify",
			map[string]string{"email": "nobody@example.com", "code": "123456"})
		rec := httptest.NewRecorder()
		handler.VerifyEmail(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed code fails payload validation", func(t *testing.T) {
		env := newAPIEnv(t)

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		req := jsonRequest(t, http.MethodPost, "/api/enrollment/verify",
			map[string]string{"email": "sara@example.com", "code": "12ab"})
		rec := httptest.NewRecorder()
		handler.VerifyEmail(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("re-verifying an already-verified email redirects", func(t *testing.T) {
		env := newAPIEnv(t)
		env.seedUser(t, "sara@example.com", true)

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		req := jsonRequest(t, http.MethodPost, "/api/enrollment/verify",
			map[string]string{"email": "sara@example.com", "code": "123456"})
		rec := httptest.NewRecorder()
		handler.VerifyEmail(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body api.EnrollmentResultResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "redirect", body.Status)
		assert.Equal(t, domain.StepField, body.Step)
	})
}

func TestResendCodeEndpoint(t *testing.T) {
	ctx := context.Background()

	t.Run("resend outside the cooldown succeeds with countdown seed", func(t *testing.T) {
		env := newAPIEnv(t)
		env.seedUser(t, "sara@example.com", false)

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		req := jsonRequest(t, http.MethodPost, "/api/enrollment/resend",
			map[string]string{"email": "sara@example.com"})
		rec := httptest.NewRecorder()
		handler.ResendCode(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body api.EnrollmentResultResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "success", body.Status)
		assert.Equal(t, 60, body.ResendInSeconds)
		assert.Len(t, env.mailer.Sent, 1)
	})

	t.Run("resend inside the cooldown is 429 with Retry-After", func(t *testing.T) {
		env := newAPIEnv(t)
		env.seedUser(t, "sara@example.com", false)
		require.NoError(t, env.challenges.Issue(ctx, "sara@example.com", "123456"))

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		req := jsonRequest(t, http.MethodPost, "/api/enrollment/resend",
			map[string]string{"email": "sara@example.com"})
		rec := httptest.NewRecorder()
		handler.ResendCode(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))

		var body api.EnrollmentResultResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "rate_limited", body.Reason)
		assert.Equal(t, 60, body.ResendInSeconds)
	})

	t.Run("resend for a verified account redirects", func(t *testing.T) {
		env := newAPIEnv(t)
		env.seedUser(t, "sara@example.com", true)

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		req := jsonRequest(t, http.MethodPost, "/api/enrollment/resend",
			map[string]string{"email": "sara@example.com"})
		rec := httptest.NewRecorder()
		handler.ResendCode(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body api.EnrollmentResultResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "redirect", body.Status)
		assert.Empty(t, env.mailer.Sent)
	})
}

func TestCompleteOnboardingEndpoint(t *testing.T) {
	t.Run("valid answers redirect to the dashboard", func(t *testing.T) {
		env := newAPIEnv(t)
		user := env.seedUser(t, "sara@example.com", true)

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		req := asUser(jsonRequest(t, http.MethodPost, "/api/enrollment/onboarding",
			map[string]interface{}{
				"field":            "frontend",
				"experience_level": "junior",
				"interests":        []string{"React", "UI/UX"},
			}), user.ID)
		rec := httptest.NewRecorder()
		handler.CompleteOnboarding(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body api.EnrollmentResultResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "redirect", body.Status)
		assert.Equal(t, domain.StepEnteredDashboard, body.Step)
	})

	t.Run("answer outside the catalog is 400", func(t *testing.T) {
		env := newAPIEnv(t)
		user := env.seedUser(t, "sara@example.com", true)

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		req := asUser(jsonRequest(t, http.MethodPost, "/api/enrollment/onboarding",
			map[string]interface{}{
				"field":            "astrology",
				"experience_level": "junior",
				"interests":        []string{"React"},
			}), user.ID)
		rec := httptest.NewRecorder()
		handler.CompleteOnboarding(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing session is rejected", func(t *testing.T) {
		env := newAPIEnv(t)

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		req := jsonRequest(t, http.MethodPost, "/api/enrollment/onboarding",
			map[string]interface{}{
				"field":            "frontend",
				"experience_level": "junior",
				"interests":        []string{"React"},
			})
		rec := httptest.NewRecorder()
		handler.CompleteOnboarding(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestStateEndpoint(t *testing.T) {
	t.Run("unfinished flow reports enrollment route and step", func(t *testing.T) {
		env := newAPIEnv(t)
		user := env.seedUser(t, "sara@example.com", false)

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		req := asUser(jsonRequest(t, http.MethodGet, "/api/enrollment/state", nil), user.ID)
		rec := httptest.NewRecorder()
		handler.State(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body api.EnrollmentStateResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "enrollment", body.Route)
		assert.Equal(t, domain.StepVerifyEmail, body.Step)
	})

	t.Run("finished flow reports dashboard route", func(t *testing.T) {
		env := newAPIEnv(t)
		user := env.seedUser(t, "sara@example.com", true)
		_, err := env.enrollment.CompleteOnboarding(context.Background(), user.ID,
			domain.FieldBackend, domain.ExperienceJunior, []string{"Python"})
		require.NoError(t, err)

		handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
		r := asUser(jsonRequest(t, http.MethodGet, "/api/enrollment/state", nil), user.ID)
		rec := httptest.NewRecorder()
		handler.State(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body api.EnrollmentStateResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "dashboard", body.Route)
		assert.Empty(t, body.Step)
	})
}

func TestCatalogsEndpoint(t *testing.T) {
	env := newAPIEnv(t)

	handler := api.NewEnrollmentHandler(env.enrollment, env.logger)
	r := jsonRequest(t, http.MethodGet, "/api/enrollment/catalogs", nil)
	rec := httptest.NewRecorder()
	handler.Catalogs(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body api.CatalogResponse
	decodeBody(t, rec, &body)
	assert.Len(t, body.Regions, 7)
	assert.Len(t, body.Fields, 6)
	assert.Len(t, body.ExperienceLevels, 3)
	assert.Len(t, body.Interests, 12)
}
