package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/platform/logger"
	"github.com/interna-hq/interna-api/internal/store"
)

// PostgresSimulationStore implements the store.SimulationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSimulationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSimulationStore creates a new PostgreSQL implementation of the
// SimulationStore interface.
func NewPostgresSimulationStore(db store.DBTX, log *slog.Logger) *PostgresSimulationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresSimulationStore{
		db:     db,
		logger: log.With(slog.String("component", "simulation_store")),
	}
}

// Ensure PostgresSimulationStore implements store.SimulationStore interface
var _ store.SimulationStore = (*PostgresSimulationStore)(nil)

// Create implements store.SimulationStore.Create
func (s *PostgresSimulationStore) Create(ctx context.Context, sim *domain.Simulation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := sim.Validate(); err != nil {
		log.Warn("simulation validation failed during create",
			slog.String("error", err.Error()),
			slog.String("simulation_id", sim.ID.String()))
		return err
	}

	tools, err := json.Marshal(sim.Tools)
	if err != nil {
		return fmt.Errorf("failed to marshal tools: %w", err)
	}

	query := `
		INSERT INTO simulations (id, user_id, title, description, field, difficulty,
		                         level, duration, tools, client_persona, client_mood,
		                         created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		sim.ID,
		sim.UserID,
		sim.Title,
		sim.Description,
		string(sim.Field),
		sim.Difficulty,
		sim.Level,
		sim.Duration,
		tools,
		sim.ClientPersona,
		sim.ClientMood,
		sim.CreatedAt,
		sim.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, sim.UserID)
		}

		log.Error("failed to create simulation",
			slog.String("error", err.Error()),
			slog.String("simulation_id", sim.ID.String()))
		return err
	}

	log.Info("simulation created",
		slog.String("simulation_id", sim.ID.String()),
		slog.String("user_id", sim.UserID.String()))
	return nil
}

// GetByID implements store.SimulationStore.GetByID
// Returns store.ErrSimulationNotFound if the simulation does not exist.
func (s *PostgresSimulationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	query := simulationSelect + ` WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	sim, err := scanSimulation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSimulationNotFound
		}
		return nil, err
	}
	return sim, nil
}

// ListByUser implements store.SimulationStore.ListByUser
func (s *PostgresSimulationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Simulation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := simulationSelect + ` WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query simulations",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	sims := []*domain.Simulation{}
	for rows.Next() {
		sim, err := scanSimulation(rows.Scan)
		if err != nil {
			log.Error("failed to scan simulation row",
				slog.String("error", err.Error()))
			return nil, err
		}
		sims = append(sims, sim)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sims, nil
}

// Touch implements store.SimulationStore.Touch
func (s *PostgresSimulationStore) Touch(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE simulations SET updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrSimulationNotFound
	}

	return nil
}

const simulationSelect = `
	SELECT id, user_id, title, description, field, difficulty,
	       level, duration, tools, client_persona, client_mood,
	       created_at, updated_at
	FROM simulations`

// scanSimulation reads one simulation row through the given scan function,
// so a *sql.Row and *sql.Rows share the column mapping.
func scanSimulation(scan func(dest ...any) error) (*domain.Simulation, error) {
	var sim domain.Simulation
	var field string
	var tools []byte
	var updatedAt sql.NullTime

	if err := scan(
		&sim.ID,
		&sim.UserID,
		&sim.Title,
		&sim.Description,
		&field,
		&sim.Difficulty,
		&sim.Level,
		&sim.Duration,
		&tools,
		&sim.ClientPersona,
		&sim.ClientMood,
		&sim.CreatedAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	sim.Field = domain.Field(field)
	if updatedAt.Valid {
		t := updatedAt.Time
		sim.UpdatedAt = &t
	}
	if len(tools) > 0 {
		if err := json.Unmarshal(tools, &sim.Tools); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tools: %w", err)
		}
	}

	return &sim, nil
}
