package enrollment

import (
	"time"

	"github.com/interna-hq/interna-api/internal/domain"
)

// Outcome classifies what a mutating enrollment operation produced.
type Outcome string

// Possible outcomes. Every mutating operation returns exactly one of these.
const (
	// OutcomeSuccess means the step committed and the flow advances.
	OutcomeSuccess Outcome = "success"

	// OutcomeError means the input was rejected; nothing was committed.
	OutcomeError Outcome = "error"

	// OutcomeRedirect means the caller should leave the flow (already past
	// this step, or finished) and land on the step or dashboard indicated.
	OutcomeRedirect Outcome = "redirect"
)

// Machine-readable reasons attached to error results. The Message field
// carries the human string; handlers key behavior off the reason.
const (
	ReasonValidation      = "validation"
	ReasonEmailTaken      = "email_taken"
	ReasonInvalidCode     = "invalid_code"
	ReasonExpired         = "expired"
	ReasonTooManyAttempts = "too_many_attempts"
	ReasonRateLimited     = "rate_limited"
	ReasonUnknownAccount  = "unknown_account"
)

// Result is the uniform return value of the state machine's mutating
// operations. Messages are human strings, never raw provider payloads.
type Result struct {
	Outcome Outcome
	Message string

	// Reason is set on error results only.
	Reason string

	// Step is the position the client should render next.
	Step domain.EnrollmentStep

	// Remaining is the live resend cooldown, set on rate_limited errors and
	// on successful issuances so the UI can seed its countdown.
	Remaining time.Duration
}

func successResult(msg string, step domain.EnrollmentStep) Result {
	return Result{Outcome: OutcomeSuccess, Message: msg, Step: step}
}

func errorResult(reason, msg string) Result {
	return Result{Outcome: OutcomeError, Reason: reason, Message: msg}
}

func redirectResult(msg string, step domain.EnrollmentStep) Result {
	return Result{Outcome: OutcomeRedirect, Message: msg, Step: step}
}
