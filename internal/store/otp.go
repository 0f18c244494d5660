package store

import (
	"context"
	"time"
)

// ChallengeStore owns the ephemeral one-time-code state: the active
// challenge per email and the resend cooldown. Issuing a new challenge
// always supersedes the previous code, so at most one code is usable per
// email at any time.
type ChallengeStore interface {
	// Issue creates a new challenge for the email with the given code,
	// replacing any active one, and arms the resend cooldown.
	// Returns ErrIssueThrottled when the cooldown from a previous issuance
	// is still running.
	Issue(ctx context.Context, email, code string) error

	// Verify checks the submitted code against the active challenge and
	// consumes the challenge on success.
	// Returns ErrChallengeNotFound when no challenge is active (never
	// issued, expired, or already consumed), ErrCodeMismatch on a wrong
	// code, and ErrTooManyAttempts once the guess budget is exhausted.
	Verify(ctx context.Context, email, code string) error

	// ResendRemaining reports how long until the resend affordance becomes
	// actionable again. Zero means a resend is allowed now.
	ResendRemaining(ctx context.Context, email string) (time.Duration, error)
}
