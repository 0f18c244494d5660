package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/interna-hq/interna-api/internal/domain"
)

// UserStore defines the interface for account persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their case-normalized email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// MarkEmailVerified flips the email_verified flag for the user.
	// The flag only moves false to true; calling it on an already-verified
	// user succeeds without effect. Returns ErrUserNotFound if the user
	// does not exist.
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction, so multiple operations can commit atomically.
	WithTx(tx *sql.Tx) UserStore
}

// ProfileStore defines the interface for profile persistence.
// There is at most one profile row per account.
type ProfileStore interface {
	// Upsert writes the profile, inserting the row on first write and
	// replacing the mutable fields afterwards. The onboarding_completed
	// flag is never downgraded by an upsert.
	Upsert(ctx context.Context, profile *domain.Profile) error

	// GetByUserID retrieves the profile for an account.
	// Returns ErrProfileNotFound if no row exists yet.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// WithTx returns a new ProfileStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ProfileStore
}
