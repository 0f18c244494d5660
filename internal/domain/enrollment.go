package domain

import "errors"

// EnrollmentStep is a position in the signup-to-onboarding sequence.
// It is derived from persisted account and profile state, never trusted from
// the client, so a reload or a second tab always lands on the right step.
type EnrollmentStep string

// Enrollment steps in order. EnteredDashboard is terminal.
const (
	StepCredentials      EnrollmentStep = "credentials"
	StepVerifyEmail      EnrollmentStep = "verify_email"
	StepField            EnrollmentStep = "field"
	StepExperience       EnrollmentStep = "experience"
	StepInterests        EnrollmentStep = "interests"
	StepEnteredDashboard EnrollmentStep = "entered_dashboard"
)

// ErrInvalidEnrollmentStep is returned when a step value is not recognised.
var ErrInvalidEnrollmentStep = errors.New("invalid enrollment step")

// ValidEnrollmentStep reports whether the step is one of the known states.
func ValidEnrollmentStep(step EnrollmentStep) bool {
	switch step {
	case StepCredentials, StepVerifyEmail, StepField, StepExperience,
		StepInterests, StepEnteredDashboard:
		return true
	default:
		return false
	}
}

// DeriveEnrollmentStep computes the step a user should resume at from
// persisted state alone. A nil profile means the seed row was never written;
// the flow resumes at the questionnaire since the account and verified email
// already exist and must not be recreated.
func DeriveEnrollmentStep(emailVerified bool, profile *Profile) EnrollmentStep {
	if !emailVerified {
		return StepVerifyEmail
	}

	if profile == nil {
		return StepField
	}

	switch {
	case profile.OnboardingCompleted:
		return StepEnteredDashboard
	case profile.Field == "":
		return StepField
	case profile.ExperienceLevel == "":
		return StepExperience
	default:
		return StepInterests
	}
}
