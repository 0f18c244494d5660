package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProjectType distinguishes catalog tasks from user-generated simulations.
type ProjectType string

// Possible project type values
const (
	ProjectTypePredefined ProjectType = "predefined"
	ProjectTypeCustom     ProjectType = "custom"
)

// ProjectStatus is the user's progress state on a project.
type ProjectStatus string

// Possible project status values
const (
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

// Common validation errors for progress and simulation records
var (
	ErrEmptyProgressUserID   = errors.New("progress user ID cannot be empty")
	ErrEmptyProgressTaskID   = errors.New("progress task ID cannot be empty")
	ErrEmptySimulationID     = errors.New("simulation ID cannot be empty")
	ErrEmptySimulationUserID = errors.New("simulation user ID cannot be empty")
	ErrEmptySimulationTitle  = errors.New("simulation title cannot be empty")
)

// InternProgress records a user's activity on a predefined catalog task.
// TaskID references the static catalog; rows whose task no longer exists in
// the catalog are dropped at merge time rather than surfaced.
type InternProgress struct {
	UserID         uuid.UUID     `json:"user_id"`
	TaskID         string        `json:"task_id"`
	Status         ProjectStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	LastActivityAt time.Time     `json:"last_activity_at"`
}

// NewInternProgress creates a progress record for a catalog task.
func NewInternProgress(userID uuid.UUID, taskID string) (*InternProgress, error) {
	now := time.Now().UTC()
	progress := &InternProgress{
		UserID:         userID,
		TaskID:         taskID,
		Status:         ProjectStatusInProgress,
		CreatedAt:      now,
		LastActivityAt: now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the InternProgress has valid data.
func (p *InternProgress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}
	if p.TaskID == "" {
		return ErrEmptyProgressTaskID
	}
	return nil
}

// Touch bumps the last-activity timestamp to now.
func (p *InternProgress) Touch() {
	p.LastActivityAt = time.Now().UTC()
}

// Simulation is a user-owned, AI-generated custom project.
// UpdatedAt is nil until the simulation is first modified; sorting falls
// back to CreatedAt in that case.
type Simulation struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Field         Field      `json:"field"`
	Difficulty    string     `json:"difficulty"`
	Level         int        `json:"level"`
	Duration      string     `json:"duration"`
	Tools         []string   `json:"tools"`
	ClientPersona string     `json:"client_persona"`
	ClientMood    string     `json:"client_mood"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// NewSimulation creates a custom simulation owned by the given user.
func NewSimulation(userID uuid.UUID, title, description string, field Field) (*Simulation, error) {
	sim := &Simulation{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Field:       field,
		Difficulty:  "medium",
		Level:       1,
		Duration:    "Variable",
		CreatedAt:   time.Now().UTC(),
	}

	if err := sim.Validate(); err != nil {
		return nil, err
	}

	return sim, nil
}

// Validate checks if the Simulation has valid data.
func (s *Simulation) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySimulationID
	}
	if s.UserID == uuid.Nil {
		return ErrEmptySimulationUserID
	}
	if s.Title == "" {
		return ErrEmptySimulationTitle
	}
	if s.Field != "" && !ValidField(s.Field) {
		return ErrUnknownField
	}
	return nil
}

// LastActivity returns the timestamp used for recency ordering, falling back
// to the creation time when the simulation has never been updated.
func (s *Simulation) LastActivity() time.Time {
	if s.UpdatedAt != nil {
		return *s.UpdatedAt
	}
	return s.CreatedAt
}
