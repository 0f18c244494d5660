package projects

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/interna-hq/interna-api/internal/catalog"
	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/store"
)

// Project is one row of the merged dashboard listing. Predefined tasks keep
// their catalog id; custom simulations carry their UUID prefixed with "sim-"
// so the two id spaces cannot collide.
type Project struct {
	ID            string               `json:"id"`
	Type          domain.ProjectType   `json:"type"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Field         domain.Field         `json:"field"`
	Difficulty    string               `json:"difficulty"`
	Level         int                  `json:"level"`
	Duration      string               `json:"duration"`
	Tools         []string             `json:"tools"`
	ClientPersona string               `json:"client_persona"`
	ClientMood    string               `json:"client_mood"`
	Status        domain.ProjectStatus `json:"status"`
	LastActivity  time.Time            `json:"last_activity"`
}

// Filter narrows the merged listing. Zero values mean "no constraint".
// All matching is case-insensitive.
type Filter struct {
	Field      string
	Difficulty string
	Search     string
}

// Service builds project listings and records project activity.
type Service struct {
	progress    store.ProgressStore
	simulations store.SimulationStore
	logger      *slog.Logger
}

// NewService creates the projects service.
func NewService(progress store.ProgressStore, simulations store.SimulationStore, logger *slog.Logger) *Service {
	if progress == nil {
		panic("progress store cannot be nil")
	}
	if simulations == nil {
		panic("simulation store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &Service{
		progress:    progress,
		simulations: simulations,
		logger:      logger.With(slog.String("component", "projects_service")),
	}
}

// List returns the user's merged, filtered project listing, most recently
// active first. Progress rows whose task id is no longer in the catalog are
// dropped rather than surfaced as broken entries.
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter Filter) ([]Project, error) {
	progressRows, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list progress records",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list progress records: %w", err)
	}

	sims, err := s.simulations.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list simulations",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}

	merged := MergeProjects(progressRows, sims)
	filtered := ApplyFilter(merged, filter)

	s.logger.Debug("assembled project listing",
		"user_id", userID,
		"merged", len(merged),
		"returned", len(filtered))

	return filtered, nil
}

// EnterTask records activity on a predefined catalog task, creating the
// progress row on first entry and bumping last_activity_at afterwards.
// Unknown task ids are rejected before any write.
func (s *Service) EnterTask(ctx context.Context, userID uuid.UUID, taskID string) (Project, error) {
	task, ok := catalog.ByID(taskID)
	if !ok {
		return Project{}, fmt.Errorf("%w: task %q", store.ErrNotFound, taskID)
	}

	progress, err := domain.NewInternProgress(userID, taskID)
	if err != nil {
		return Project{}, err
	}

	if err := s.progress.Upsert(ctx, progress); err != nil {
		s.logger.Error("failed to record task entry",
			"error", err,
			"user_id", userID,
			"task_id", taskID)
		return Project{}, fmt.Errorf("failed to record task entry: %w", err)
	}

	s.logger.Info("task entered",
		"user_id", userID,
		"task_id", taskID)

	return taskProject(task, progress), nil
}

// CreateSimulation saves a new custom simulation for the user.
func (s *Service) CreateSimulation(
	ctx context.Context,
	userID uuid.UUID,
	title, description string,
	field domain.Field,
) (*domain.Simulation, error) {
	sim, err := domain.NewSimulation(userID, title, description, field)
	if err != nil {
		return nil, err
	}

	if err := s.simulations.Create(ctx, sim); err != nil {
		s.logger.Error("failed to create simulation",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}

	s.logger.Info("simulation created",
		"user_id", userID,
		"simulation_id", sim.ID)

	return sim, nil
}

// TouchSimulation marks fresh activity on a custom simulation, checking
// ownership first.
func (s *Service) TouchSimulation(ctx context.Context, userID, simID uuid.UUID) error {
	sim, err := s.simulations.GetByID(ctx, simID)
	if err != nil {
		return err
	}
	if sim.UserID != userID {
		return fmt.Errorf("%w: simulation %s", domain.ErrUnauthorized, simID)
	}

	if err := s.simulations.Touch(ctx, simID); err != nil {
		if errors.Is(err, store.ErrSimulationNotFound) {
			return err
		}
		s.logger.Error("failed to touch simulation",
			"error", err,
			"simulation_id", simID)
		return fmt.Errorf("failed to touch simulation: %w", err)
	}
	return nil
}

// MergeProjects joins progress rows against the static catalog and appends
// custom simulations, then orders the result by last activity, most recent
// first. Progress rows referencing ids absent from the catalog are dropped.
func MergeProjects(progressRows []*domain.InternProgress, sims []*domain.Simulation) []Project {
	merged := make([]Project, 0, len(progressRows)+len(sims))

	for _, row := range progressRows {
		task, ok := catalog.ByID(row.TaskID)
		if !ok {
			continue
		}
		merged = append(merged, taskProject(task, row))
	}

	for _, sim := range sims {
		merged = append(merged, Project{
			ID:            "sim-" + sim.ID.String(),
			Type:          domain.ProjectTypeCustom,
			Title:         sim.Title,
			Description:   sim.Description,
			Field:         sim.Field,
			Difficulty:    sim.Difficulty,
			Level:         sim.Level,
			Duration:      sim.Duration,
			Tools:         sim.Tools,
			ClientPersona: sim.ClientPersona,
			ClientMood:    sim.ClientMood,
			Status:        domain.ProjectStatusInProgress,
			LastActivity:  sim.LastActivity(),
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].LastActivity.After(merged[j].LastActivity)
	})

	return merged
}

func taskProject(task catalog.Task, row *domain.InternProgress) Project {
	return Project{
		ID:            task.ID,
		Type:          domain.ProjectTypePredefined,
		Title:         task.Title,
		Description:   task.Description,
		Field:         task.Field,
		Difficulty:    task.Difficulty,
		Level:         task.Level,
		Duration:      task.Duration,
		Tools:         task.Tools,
		ClientPersona: task.ClientPersona,
		ClientMood:    task.ClientMood,
		Status:        row.Status,
		LastActivity:  row.LastActivityAt,
	}
}
