package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/store"
)

// MockProgressStore implements store.ProgressStore for testing.
type MockProgressStore struct {
	mu sync.Mutex

	UpsertFn     func(ctx context.Context, progress *domain.InternProgress) error
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.InternProgress, error)

	Rows      []*domain.InternProgress
	UpsertErr error
	ListErr   error
}

// Upsert implements the store.ProgressStore interface
func (m *MockProgressStore) Upsert(ctx context.Context, progress *domain.InternProgress) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, progress)
	}
	if m.UpsertErr != nil {
		return m.UpsertErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.Rows {
		if row.UserID == progress.UserID && row.TaskID == progress.TaskID {
			row.LastActivityAt = progress.LastActivityAt
			return nil
		}
	}
	m.Rows = append(m.Rows, progress)
	return nil
}

// ListByUser implements the store.ProgressStore interface
func (m *MockProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.InternProgress, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []*domain.InternProgress
	for _, row := range m.Rows {
		if row.UserID == userID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

var _ store.ProgressStore = (*MockProgressStore)(nil)

// MockSimulationStore implements store.SimulationStore for testing.
type MockSimulationStore struct {
	mu sync.Mutex

	CreateFn     func(ctx context.Context, sim *domain.Simulation) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Simulation, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Simulation, error)
	TouchFn      func(ctx context.Context, id uuid.UUID) error

	Simulations []*domain.Simulation
	CreateErr   error
	GetErr      error
}

// Create implements the store.SimulationStore interface
func (m *MockSimulationStore) Create(ctx context.Context, sim *domain.Simulation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, sim)
	}
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Simulations = append(m.Simulations, sim)
	return nil
}

// GetByID implements the store.SimulationStore interface
func (m *MockSimulationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sim := range m.Simulations {
		if sim.ID == id {
			return sim, nil
		}
	}
	return nil, store.ErrSimulationNotFound
}

// ListByUser implements the store.SimulationStore interface
func (m *MockSimulationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Simulation, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var sims []*domain.Simulation
	for _, sim := range m.Simulations {
		if sim.UserID == userID {
			sims = append(sims, sim)
		}
	}
	return sims, nil
}

// Touch implements the store.SimulationStore interface
func (m *MockSimulationStore) Touch(ctx context.Context, id uuid.UUID) error {
	if m.TouchFn != nil {
		return m.TouchFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sim := range m.Simulations {
		if sim.ID == id {
			now := time.Now().UTC()
			sim.UpdatedAt = &now
			return nil
		}
	}
	return store.ErrSimulationNotFound
}

var _ store.SimulationStore = (*MockSimulationStore)(nil)
