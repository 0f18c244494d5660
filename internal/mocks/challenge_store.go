package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/interna-hq/interna-api/internal/store"
)

// MockChallengeStore implements store.ChallengeStore in memory, modeling
// the supersede-on-issue and consume-on-verify semantics of the real store.
type MockChallengeStore struct {
	mu sync.Mutex

	IssueFn           func(ctx context.Context, email, code string) error
	VerifyFn          func(ctx context.Context, email, code string) error
	ResendRemainingFn func(ctx context.Context, email string) (time.Duration, error)

	// Cooldown is the duration reported after an issuance. CooldownActive
	// makes the next Issue call fail with ErrIssueThrottled.
	Cooldown       time.Duration
	CooldownActive bool
	MaxAttempts    int

	codes    map[string]string
	attempts map[string]int

	// IssuedCodes records every issued code in order, for assertions.
	IssuedCodes []string
}

// NewMockChallengeStore creates a mock with the given attempt budget.
func NewMockChallengeStore(maxAttempts int) *MockChallengeStore {
	return &MockChallengeStore{
		MaxAttempts: maxAttempts,
		codes:       make(map[string]string),
		attempts:    make(map[string]int),
	}
}

// Issue implements the store.ChallengeStore interface
func (m *MockChallengeStore) Issue(ctx context.Context, email, code string) error {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, email, code)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CooldownActive {
		return store.ErrIssueThrottled
	}
	m.codes[email] = code
	m.attempts[email] = 0
	m.IssuedCodes = append(m.IssuedCodes, code)
	m.CooldownActive = true
	return nil
}

// Verify implements the store.ChallengeStore interface
func (m *MockChallengeStore) Verify(ctx context.Context, email, code string) error {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, email, code)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	active, ok := m.codes[email]
	if !ok {
		return store.ErrChallengeNotFound
	}

	m.attempts[email]++
	if m.MaxAttempts > 0 && m.attempts[email] > m.MaxAttempts {
		delete(m.codes, email)
		return store.ErrTooManyAttempts
	}

	if active != code {
		return store.ErrCodeMismatch
	}

	delete(m.codes, email)
	delete(m.attempts, email)
	return nil
}

// ResendRemaining implements the store.ChallengeStore interface
func (m *MockChallengeStore) ResendRemaining(ctx context.Context, email string) (time.Duration, error) {
	if m.ResendRemainingFn != nil {
		return m.ResendRemainingFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CooldownActive {
		return m.Cooldown, nil
	}
	return 0, nil
}

// ClearCooldown simulates the cooldown lapsing.
func (m *MockChallengeStore) ClearCooldown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CooldownActive = false
}

// ActiveCode returns the currently armed code for the email, if any.
func (m *MockChallengeStore) ActiveCode(email string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[email]
	return code, ok
}

var _ store.ChallengeStore = (*MockChallengeStore)(nil)
