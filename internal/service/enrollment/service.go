package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/mailer"
	"github.com/interna-hq/interna-api/internal/store"
)

// SignupInput carries the credentials step of the flow. Validation happens
// locally before any store or mailer is touched.
type SignupInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	Region          string
}

// ErrPasswordMismatch indicates the confirmation did not match the password.
var ErrPasswordMismatch = errors.New("passwords do not match")

// Service drives the enrollment state machine. All transitions are
// forward-only: committed state is never undone by navigating back.
type Service struct {
	db         *sql.DB
	users      store.UserStore
	profiles   store.ProfileStore
	challenges store.ChallengeStore
	mailer     mailer.Mailer
	logger     *slog.Logger
}

// NewService creates the enrollment service.
func NewService(
	db *sql.DB,
	users store.UserStore,
	profiles store.ProfileStore,
	challenges store.ChallengeStore,
	m mailer.Mailer,
	logger *slog.Logger,
) *Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if users == nil {
		panic("user store cannot be nil")
	}
	if profiles == nil {
		panic("profile store cannot be nil")
	}
	if challenges == nil {
		panic("challenge store cannot be nil")
	}
	if m == nil {
		panic("mailer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &Service{
		db:         db,
		users:      users,
		profiles:   profiles,
		challenges: challenges,
		mailer:     m,
		logger:     logger.With(slog.String("component", "enrollment_service")),
	}
}

// SubmitCredentials validates the signup form, creates the account with its
// profile seed in one transaction, and issues the first verification code.
// A taken email comes back as an error result, not an internal error.
func (s *Service) SubmitCredentials(ctx context.Context, input SignupInput) (Result, error) {
	if input.Password != input.ConfirmPassword {
		return errorResult(ReasonValidation, "Passwords do not match."), nil
	}

	user, err := domain.NewUser(input.Email, input.Password)
	if err != nil {
		return errorResult(ReasonValidation, validationMessage(err)), nil
	}

	profile, err := domain.NewProfile(user.ID, input.FullName, input.Region)
	if err != nil {
		return errorResult(ReasonValidation, validationMessage(err)), nil
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.profiles.WithTx(tx).Upsert(ctx, profile)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("signup rejected: email already registered",
				"email", user.Email)
			return errorResult(ReasonEmailTaken, "An account with this email already exists."), nil
		}
		s.logger.Error("failed to create account",
			"error", err,
			"email", user.Email)
		return Result{}, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created",
		"user_id", user.ID,
		"email", user.Email)

	remaining, err := s.issueCode(ctx, user.Email)
	if err != nil {
		// The account exists; the user can recover through resend.
		s.logger.Error("failed to issue initial verification code",
			"error", err,
			"email", user.Email)
	}

	res := successResult("Account created. Check your email for the verification code.", domain.StepVerifyEmail)
	res.Remaining = remaining
	return res, nil
}

// VerifyEmail checks the submitted code against the active challenge and
// flips the verified flag exactly once. Re-verifying an already-verified
// email is an idempotent success that redirects to the user's current step.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) (Result, error) {
	if !validCodeFormat(code) {
		return errorResult(ReasonValidation, "Verification code must be 6 digits."), nil
	}

	email = domain.NormalizeEmail(email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return errorResult(ReasonUnknownAccount, "No account found for this email."), nil
		}
		return Result{}, fmt.Errorf("failed to load account for verification: %w", err)
	}

	if user.EmailVerified {
		step, err := s.stepFor(ctx, user)
		if err != nil {
			return Result{}, err
		}
		return redirectResult("Email is already verified.", step), nil
	}

	if err := s.challenges.Verify(ctx, email, code); err != nil {
		switch {
		case errors.Is(err, store.ErrCodeMismatch):
			return errorResult(ReasonInvalidCode, "The code you entered is incorrect."), nil
		case errors.Is(err, store.ErrChallengeNotFound):
			return errorResult(ReasonExpired, "This code has expired. Request a new one."), nil
		case errors.Is(err, store.ErrTooManyAttempts):
			return errorResult(ReasonTooManyAttempts, "Too many attempts. Request a new code."), nil
		default:
			s.logger.Error("challenge verification failed",
				"error", err,
				"email", email)
			return Result{}, fmt.Errorf("failed to verify code: %w", err)
		}
	}

	if err := s.users.MarkEmailVerified(ctx, user.ID); err != nil {
		s.logger.Error("failed to mark email verified",
			"error", err,
			"user_id", user.ID)
		return Result{}, fmt.Errorf("failed to mark email verified: %w", err)
	}

	s.logger.Info("email verified",
		"user_id", user.ID,
		"email", email)

	return successResult("Email verified.", domain.StepField), nil
}

// ResendCode issues a fresh verification code for the email, superseding the
// previous one and re-arming the cooldown. While the cooldown from the last
// issuance is still running the request is rejected as rate_limited, with
// the live remainder attached so the UI can show an honest countdown.
func (s *Service) ResendCode(ctx context.Context, email string) (Result, error) {
	email = domain.NormalizeEmail(email)
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return errorResult(ReasonUnknownAccount, "No account found for this email."), nil
		}
		return Result{}, fmt.Errorf("failed to load account for resend: %w", err)
	}

	if user.EmailVerified {
		step, err := s.stepFor(ctx, user)
		if err != nil {
			return Result{}, err
		}
		return redirectResult("Email is already verified.", step), nil
	}

	remaining, err := s.issueCode(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrIssueThrottled) {
			res := errorResult(ReasonRateLimited, "Please wait before requesting another code.")
			res.Remaining = remaining
			return res, nil
		}
		s.logger.Error("failed to resend verification code",
			"error", err,
			"email", email)
		return Result{}, fmt.Errorf("failed to resend code: %w", err)
	}

	res := successResult("A new verification code is on its way.", domain.StepVerifyEmail)
	res.Remaining = remaining
	return res, nil
}

// CompleteOnboarding records the questionnaire answers and flips the
// completion flag exactly once. Completing an already-completed profile is
// an idempotent redirect to the dashboard.
func (s *Service) CompleteOnboarding(
	ctx context.Context,
	userID uuid.UUID,
	field domain.Field,
	level domain.ExperienceLevel,
	interests []string,
) (Result, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			s.logger.Warn("onboarding submitted without a profile seed",
				"user_id", userID)
			return errorResult(ReasonUnknownAccount, "Account profile not found."), nil
		}
		return Result{}, fmt.Errorf("failed to load profile: %w", err)
	}

	if profile.OnboardingCompleted {
		return redirectResult("Onboarding is already complete.", domain.StepEnteredDashboard), nil
	}

	if err := profile.CompleteOnboarding(field, level, interests); err != nil {
		return errorResult(ReasonValidation, validationMessage(err)), nil
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		s.logger.Error("failed to save onboarding answers",
			"error", err,
			"user_id", userID)
		return Result{}, fmt.Errorf("failed to save onboarding answers: %w", err)
	}

	s.logger.Info("onboarding completed",
		"user_id", userID,
		"field", field,
		"experience_level", level)

	return redirectResult("Onboarding complete.", domain.StepEnteredDashboard), nil
}

// CurrentStep re-derives the user's position in the flow from persisted
// state alone.
func (s *Service) CurrentStep(ctx context.Context, userID uuid.UUID) (domain.EnrollmentStep, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load account: %w", err)
	}
	return s.stepFor(ctx, user)
}

// ResendRemaining reports the live resend cooldown for the email.
func (s *Service) ResendRemaining(ctx context.Context, email string) (time.Duration, error) {
	return s.challenges.ResendRemaining(ctx, domain.NormalizeEmail(email))
}

// issueCode generates, stores, and mails a fresh verification code, then
// reports the cooldown the client should display. On ErrIssueThrottled the
// returned duration is the remainder of the running cooldown.
func (s *Service) issueCode(ctx context.Context, email string) (time.Duration, error) {
	code, err := generateCode()
	if err != nil {
		return 0, err
	}

	if err := s.challenges.Issue(ctx, email, code); err != nil {
		if errors.Is(err, store.ErrIssueThrottled) {
			remaining, remErr := s.challenges.ResendRemaining(ctx, email)
			if remErr != nil {
				remaining = 0
			}
			return remaining, err
		}
		return 0, err
	}

	if err := s.mailer.SendVerificationCode(ctx, email, code); err != nil {
		// The challenge is armed; delivery failure is recoverable via resend
		// once the cooldown lapses.
		s.logger.Error("failed to deliver verification code",
			"error", err,
			"email", email)
	}

	remaining, err := s.challenges.ResendRemaining(ctx, email)
	if err != nil {
		remaining = 0
	}
	return remaining, nil
}

// stepFor derives the enrollment step for a loaded user, tolerating a
// missing profile row.
func (s *Service) stepFor(ctx context.Context, user *domain.User) (domain.EnrollmentStep, error) {
	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			profile = nil
		} else {
			return "", fmt.Errorf("failed to load profile: %w", err)
		}
	}
	return domain.DeriveEnrollmentStep(user.EmailVerified, profile), nil
}

// validationMessage turns a domain validation error into the human string
// shown on the form. Domain sentinels already read as user-facing text.
func validationMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return capitalizeSentence(err.Error())
}

func capitalizeSentence(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	if b[len(b)-1] != '.' {
		b = append(b, '.')
	}
	return string(b)
}
