package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrProfileNotFound indicates that the requested profile does not exist in the store.
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)

	// ErrSimulationNotFound indicates that the requested simulation does not exist in the store.
	ErrSimulationNotFound = fmt.Errorf("%w: simulation", ErrNotFound)

	// ErrChallengeNotFound indicates that no active OTP challenge exists for
	// the email, either because none was issued or because it expired.
	ErrChallengeNotFound = fmt.Errorf("%w: otp challenge", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// OTP challenge errors beyond the generic not-found/duplicate taxonomy.
var (
	// ErrCodeMismatch is returned when a submitted code does not match the
	// active challenge for the email.
	ErrCodeMismatch = errors.New("code does not match active challenge")

	// ErrTooManyAttempts is returned when a challenge has been guessed too
	// many times and has been invalidated server-side.
	ErrTooManyAttempts = errors.New("too many verification attempts")

	// ErrIssueThrottled is returned when an issuance is requested while the
	// resend cooldown for the email is still running.
	ErrIssueThrottled = errors.New("code issuance throttled")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
