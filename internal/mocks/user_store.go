package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/store"
)

// MockUserStore implements store.UserStore for testing with an in-memory
// map keyed by normalized email.
type MockUserStore struct {
	mu sync.Mutex

	// Function fields for customizable behavior
	CreateFn            func(ctx context.Context, user *domain.User) error
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn        func(ctx context.Context, email string) (*domain.User, error)
	MarkEmailVerifiedFn func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Users       map[string]*domain.User
	CreateError error
	GetError    error
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the store.UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}
	m.Users[user.Email] = user
	return nil
}

// GetByID implements the store.UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements the store.UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, exists := m.Users[domain.NormalizeEmail(email)]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// MarkEmailVerified implements the store.UserStore interface
func (m *MockUserStore) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	if m.MarkEmailVerifiedFn != nil {
		return m.MarkEmailVerifiedFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if user.ID == id {
			user.MarkEmailVerified()
			return nil
		}
	}
	return store.ErrUserNotFound
}

// WithTx implements the store.UserStore interface; the mock ignores the
// transaction and returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

var _ store.UserStore = (*MockUserStore)(nil)

// MockProfileStore implements store.ProfileStore for testing.
type MockProfileStore struct {
	mu sync.Mutex

	UpsertFn      func(ctx context.Context, profile *domain.Profile) error
	GetByUserIDFn func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	Profiles    map[uuid.UUID]*domain.Profile
	UpsertError error
	GetError    error
}

// NewMockProfileStore creates a new mock store with initialized defaults
func NewMockProfileStore() *MockProfileStore {
	return &MockProfileStore{
		Profiles: make(map[uuid.UUID]*domain.Profile),
	}
}

// Upsert implements the store.ProfileStore interface. Like the real store,
// the onboarding_completed flag is never downgraded.
func (m *MockProfileStore) Upsert(ctx context.Context, profile *domain.Profile) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, profile)
	}
	if m.UpsertError != nil {
		return m.UpsertError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.Profiles[profile.UserID]; ok && existing.OnboardingCompleted {
		profile.OnboardingCompleted = true
	}
	m.Profiles[profile.UserID] = profile
	return nil
}

// GetByUserID implements the store.ProfileStore interface
func (m *MockProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	profile, exists := m.Profiles[userID]
	if !exists {
		return nil, store.ErrProfileNotFound
	}
	return profile, nil
}

// WithTx implements the store.ProfileStore interface; the mock ignores the
// transaction and returns itself.
func (m *MockProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return m
}

var _ store.ProfileStore = (*MockProfileStore)(nil)
