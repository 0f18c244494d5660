package projects_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/mocks"
	"github.com/interna-hq/interna-api/internal/service/projects"
	"github.com/interna-hq/interna-api/internal/store"
)

func newService(t *testing.T) (*projects.Service, *mocks.MockProgressStore, *mocks.MockSimulationStore) {
	t.Helper()
	progress := &mocks.MockProgressStore{}
	sims := &mocks.MockSimulationStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return projects.NewService(progress, sims, logger), progress, sims
}

func progressAt(t *testing.T, userID uuid.UUID, taskID string, at time.Time) *domain.InternProgress {
	t.Helper()
	row, err := domain.NewInternProgress(userID, taskID)
	require.NoError(t, err)
	row.LastActivityAt = at
	return row
}

func TestList(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("merges tasks and simulations, most recent first", func(t *testing.T) {
		svc, progress, sims := newService(t)

		progress.Rows = []*domain.InternProgress{
			progressAt(t, userID, "landing-page-rescue", base.Add(1*time.Hour)),
			progressAt(t, userID, "orders-api-cleanup", base.Add(3*time.Hour)),
		}

		sim, err := domain.NewSimulation(userID, "Food delivery tracker", "Track orders", domain.FieldMobile)
		require.NoError(t, err)
		sim.CreatedAt = base.Add(2 * time.Hour)
		sims.Simulations = []*domain.Simulation{sim}

		list, err := svc.List(ctx, userID, projects.Filter{})
		require.NoError(t, err)
		require.Len(t, list, 3)

		assert.Equal(t, "orders-api-cleanup", list[0].ID)
		assert.Equal(t, "sim-"+sim.ID.String(), list[1].ID)
		assert.Equal(t, "landing-page-rescue", list[2].ID)

		assert.Equal(t, domain.ProjectTypePredefined, list[0].Type)
		assert.Equal(t, domain.ProjectTypeCustom, list[1].Type)
	})

	t.Run("progress rows for retired catalog ids are dropped", func(t *testing.T) {
		svc, progress, _ := newService(t)

		progress.Rows = []*domain.InternProgress{
			progressAt(t, userID, "landing-page-rescue", base),
			progressAt(t, userID, "task-no-longer-shipped", base.Add(time.Hour)),
		}

		list, err := svc.List(ctx, userID, projects.Filter{})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "landing-page-rescue", list[0].ID)
	})

	t.Run("simulation ordering falls back to creation time until updated", func(t *testing.T) {
		svc, _, sims := newService(t)

		older, err := domain.NewSimulation(userID, "Older", "desc", domain.FieldBackend)
		require.NoError(t, err)
		older.CreatedAt = base

		newer, err := domain.NewSimulation(userID, "Newer", "desc", domain.FieldBackend)
		require.NoError(t, err)
		newer.CreatedAt = base.Add(time.Hour)

		sims.Simulations = []*domain.Simulation{older, newer}

		list, err := svc.List(ctx, userID, projects.Filter{})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Newer", list[0].Title)

		// Touching the older one moves it to the top.
		touched := base.Add(2 * time.Hour)
		older.UpdatedAt = &touched

		list, err = svc.List(ctx, userID, projects.Filter{})
		require.NoError(t, err)
		assert.Equal(t, "Older", list[0].Title)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		svc, progress, _ := newService(t)
		progress.ListErr = errors.New("connection refused")

		_, err := svc.List(ctx, userID, projects.Filter{})
		assert.Error(t, err)
	})
}

func TestEnterTask(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("first entry creates an in-progress row", func(t *testing.T) {
		svc, progress, _ := newService(t)

		project, err := svc.EnterTask(ctx, userID, "landing-page-rescue")
		require.NoError(t, err)

		assert.Equal(t, "landing-page-rescue", project.ID)
		assert.Equal(t, domain.ProjectTypePredefined, project.Type)
		assert.Equal(t, domain.ProjectStatusInProgress, project.Status)
		require.Len(t, progress.Rows, 1)
	})

	t.Run("re-entry bumps activity instead of duplicating", func(t *testing.T) {
		svc, progress, _ := newService(t)

		first, err := svc.EnterTask(ctx, userID, "landing-page-rescue")
		require.NoError(t, err)

		time.Sleep(time.Millisecond)
		second, err := svc.EnterTask(ctx, userID, "landing-page-rescue")
		require.NoError(t, err)

		require.Len(t, progress.Rows, 1)
		assert.True(t, second.LastActivity.After(first.LastActivity))
	})

	t.Run("unknown task id is rejected before any write", func(t *testing.T) {
		svc, progress, _ := newService(t)

		_, err := svc.EnterTask(ctx, userID, "no-such-task")
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Empty(t, progress.Rows)
	})
}

func TestCreateSimulation(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates with defaults", func(t *testing.T) {
		svc, _, sims := newService(t)

		sim, err := svc.CreateSimulation(ctx, userID, "Food delivery tracker", "Track orders", domain.FieldMobile)
		require.NoError(t, err)

		assert.Equal(t, "medium", sim.Difficulty)
		assert.Equal(t, 1, sim.Level)
		require.Len(t, sims.Simulations, 1)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		svc, _, sims := newService(t)

		_, err := svc.CreateSimulation(ctx, userID, "", "desc", domain.FieldMobile)
		assert.ErrorIs(t, err, domain.ErrEmptySimulationTitle)
		assert.Empty(t, sims.Simulations)
	})
}

func TestTouchSimulation(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("owner can touch", func(t *testing.T) {
		svc, _, sims := newService(t)

		sim, err := domain.NewSimulation(userID, "Title", "desc", domain.FieldBackend)
		require.NoError(t, err)
		sims.Simulations = []*domain.Simulation{sim}

		require.NoError(t, svc.TouchSimulation(ctx, userID, sim.ID))
		assert.NotNil(t, sim.UpdatedAt)
	})

	t.Run("another user's simulation is forbidden", func(t *testing.T) {
		svc, _, sims := newService(t)

		sim, err := domain.NewSimulation(uuid.New(), "Title", "desc", domain.FieldBackend)
		require.NoError(t, err)
		sims.Simulations = []*domain.Simulation{sim}

		err = svc.TouchSimulation(ctx, userID, sim.ID)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Nil(t, sim.UpdatedAt)
	})

	t.Run("missing simulation is not found", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.TouchSimulation(ctx, userID, uuid.New())
		assert.ErrorIs(t, err, store.ErrSimulationNotFound)
	})
}
