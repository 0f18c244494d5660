package api

import (
	"github.com/google/uuid"

	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/service/enrollment"
	"github.com/interna-hq/interna-api/internal/service/projects"
)

// Common request/response structures

// RegisterRequest defines the payload for the account registration endpoint.
type RegisterRequest struct {
	FullName        string `json:"full_name"        validate:"required,min=2"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Region          string `json:"region"           validate:"required"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// Step is the enrollment position the client should render next
	Step domain.EnrollmentStep `json:"step,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SessionResponse describes the authenticated account behind a token.
type SessionResponse struct {
	UserID        uuid.UUID             `json:"user_id"`
	Email         string                `json:"email"`
	EmailVerified bool                  `json:"email_verified"`
	FullName      string                `json:"full_name,omitempty"`
	Region        string                `json:"region,omitempty"`
	Step          domain.EnrollmentStep `json:"step"`
}

// VerifyEmailRequest defines the payload for the code verification endpoint.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

// ResendCodeRequest defines the payload for the code resend endpoint.
type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// OnboardingRequest defines the payload for the questionnaire completion
// endpoint. Catalog membership is enforced by the domain layer.
type OnboardingRequest struct {
	Field           string   `json:"field"            validate:"required"`
	ExperienceLevel string   `json:"experience_level" validate:"required"`
	Interests       []string `json:"interests"        validate:"required,min=1"`
}

// EnrollmentResultResponse is the uniform body for mutating enrollment
// operations.
type EnrollmentResultResponse struct {
	Status  string                `json:"status"` // success | error | redirect
	Message string                `json:"message"`
	Reason  string                `json:"reason,omitempty"`
	Step    domain.EnrollmentStep `json:"step,omitempty"`

	// ResendInSeconds is the live resend cooldown, present after issuances
	// and on rate_limited errors.
	ResendInSeconds int `json:"resend_in_seconds,omitempty"`
}

// EnrollmentStateResponse is the guard's routing decision for a session.
type EnrollmentStateResponse struct {
	Route string                `json:"route"` // login | enrollment | dashboard
	Step  domain.EnrollmentStep `json:"step,omitempty"`
}

// CatalogResponse exposes the fixed signup and onboarding catalogs.
type CatalogResponse struct {
	Regions          []string `json:"regions"`
	Fields           []string `json:"fields"`
	ExperienceLevels []string `json:"experience_levels"`
	Interests        []string `json:"interests"`
}

// ProjectListResponse wraps the merged dashboard listing.
type ProjectListResponse struct {
	Projects []projects.Project `json:"projects"`
	Total    int                `json:"total"`
}

// CreateSimulationRequest defines the payload for creating a custom project.
type CreateSimulationRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Field       string `json:"field"       validate:"required"`
}

// ChatMessagePayload is one turn of simulated client conversation.
type ChatMessagePayload struct {
	Role    string `json:"role"    validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatRequestPayload defines the payload for the simulated client chat
// endpoint. The full history is resent on every call; the server keeps no
// conversation state.
type ChatRequestPayload struct {
	ProjectID string               `json:"project_id" validate:"required"`
	Messages  []ChatMessagePayload `json:"messages"   validate:"required,min=1,dive"`
	Language  string               `json:"language"   validate:"omitempty,oneof=en ar"`
}

// ChatResponsePayload carries the client's reply. Synthetic is true when the
// reply was generated locally because the AI backend was unreachable.
type ChatResponsePayload struct {
	Reply     string `json:"reply"`
	Synthetic bool   `json:"synthetic,omitempty"`
}

// ReviewRequestPayload defines the payload for the code review endpoint.
type ReviewRequestPayload struct {
	ProjectID string `json:"project_id" validate:"required"`
	Code      string `json:"code"       validate:"required"`
	Language  string `json:"language"   validate:"required"`

	// FeedbackLanguage selects the language of the review text.
	FeedbackLanguage string `json:"feedback_language" validate:"omitempty,oneof=en ar"`
}

// ReviewResponsePayload carries the review verdict.
type ReviewResponsePayload struct {
	Feedback string `json:"feedback"`
	Approved bool   `json:"approved"`
}

// resultResponse converts a service result into its wire form.
func resultResponse(res enrollment.Result) EnrollmentResultResponse {
	return EnrollmentResultResponse{
		Status:          string(res.Outcome),
		Message:         res.Message,
		Reason:          res.Reason,
		Step:            res.Step,
		ResendInSeconds: int(res.Remaining.Seconds()),
	}
}
