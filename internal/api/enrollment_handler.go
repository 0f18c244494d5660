package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/interna-hq/interna-api/internal/api/shared"
	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/service/enrollment"
)

// EnrollmentHandler drives the verification and onboarding steps of the
// enrollment flow over HTTP.
type EnrollmentHandler struct {
	enrollment *enrollment.Service
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *enrollment.Service, logger *slog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollment: enrollmentService,
		validator:  validator.New(),
		logger:     logger.With(slog.String("component", "enrollment_handler")),
	}
}

// VerifyEmail handles POST /api/enrollment/verify. Success flips the
// verified flag exactly once; re-verifying redirects to the current step.
func (h *EnrollmentHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	res, err := h.enrollment.VerifyEmail(r.Context(), req.Email, req.Code)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to verify email")
		return
	}

	h.respondResult(w, r, res)
}

// ResendCode handles POST /api/enrollment/resend. While the cooldown from
// the previous issuance is running the request is rejected as rate limited,
// with the live remainder attached.
func (h *EnrollmentHandler) ResendCode(w http.ResponseWriter, r *http.Request) {
	var req ResendCodeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	res, err := h.enrollment.ResendCode(r.Context(), req.Email)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to resend code")
		return
	}

	h.respondResult(w, r, res)
}

// CompleteOnboarding handles POST /api/enrollment/onboarding: the
// questionnaire step. Requires authentication.
func (h *EnrollmentHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req OnboardingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	res, err := h.enrollment.CompleteOnboarding(
		r.Context(),
		userID,
		domain.Field(req.Field),
		domain.ExperienceLevel(req.ExperienceLevel),
		req.Interests,
	)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete onboarding")
		return
	}

	h.respondResult(w, r, res)
}

// State handles GET /api/enrollment/state: the guard decision for the
// authenticated session. Pure read; safe to call on every navigation.
func (h *EnrollmentHandler) State(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	decision, err := h.enrollment.Evaluate(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to resolve enrollment state")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, EnrollmentStateResponse{
		Route: string(decision.Route),
		Step:  decision.Step,
	})
}

// Catalogs handles GET /api/enrollment/catalogs: the fixed option sets the
// client renders during signup and onboarding.
func (h *EnrollmentHandler) Catalogs(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, CatalogResponse{
		Regions: domain.Regions,
		Fields: []string{
			string(domain.FieldFrontend), string(domain.FieldBackend),
			string(domain.FieldFullstack), string(domain.FieldMobile),
			string(domain.FieldData), string(domain.FieldDesign),
		},
		ExperienceLevels: []string{
			string(domain.ExperienceStudent),
			string(domain.ExperienceFreshGrad),
			string(domain.ExperienceJunior),
		},
		Interests: domain.Interests,
	})
}

// respondResult maps a service result onto a status code and writes it.
func (h *EnrollmentHandler) respondResult(w http.ResponseWriter, r *http.Request, res enrollment.Result) {
	body := resultResponse(res)

	if res.Outcome != enrollment.OutcomeError {
		shared.RespondWithJSON(w, r, http.StatusOK, body)
		return
	}

	status := http.StatusBadRequest
	switch res.Reason {
	case enrollment.ReasonEmailTaken:
		status = http.StatusConflict
	case enrollment.ReasonRateLimited, enrollment.ReasonTooManyAttempts:
		status = http.StatusTooManyRequests
	case enrollment.ReasonExpired:
		status = http.StatusGone
	case enrollment.ReasonUnknownAccount:
		status = http.StatusNotFound
	}

	if status == http.StatusTooManyRequests && body.ResendInSeconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(body.ResendInSeconds))
	}

	shared.RespondWithJSON(w, r, status, body)
}
