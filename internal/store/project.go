package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/interna-hq/interna-api/internal/domain"
)

// ProgressStore defines the interface for predefined-task progress records.
type ProgressStore interface {
	// Upsert records activity on a catalog task, creating the row on first
	// entry and bumping last_activity_at on subsequent ones.
	Upsert(ctx context.Context, progress *domain.InternProgress) error

	// ListByUser returns the user's progress rows ordered by last activity,
	// most recent first. Returns an empty slice when there are none.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.InternProgress, error)
}

// SimulationStore defines the interface for user-owned custom simulations.
type SimulationStore interface {
	// Create saves a new simulation.
	Create(ctx context.Context, sim *domain.Simulation) error

	// GetByID retrieves a simulation by id.
	// Returns ErrSimulationNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Simulation, error)

	// ListByUser returns the user's simulations ordered by creation time,
	// most recent first. Returns an empty slice when there are none.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Simulation, error)

	// Touch sets updated_at to now, marking fresh activity.
	// Returns ErrSimulationNotFound if the simulation does not exist.
	Touch(ctx context.Context, id uuid.UUID) error
}
