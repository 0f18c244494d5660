package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/interna-hq/interna-api/internal/domain"
	"github.com/interna-hq/interna-api/internal/platform/logger"
	"github.com/interna-hq/interna-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface.
func NewPostgresProgressStore(db store.DBTX, log *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: log.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// Upsert implements store.ProgressStore.Upsert
// Re-entering a task bumps last_activity_at and keeps the stronger status.
func (s *PostgresProgressStore) Upsert(ctx context.Context, progress *domain.InternProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("progress validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("task_id", progress.TaskID))
		return err
	}

	query := `
		INSERT INTO intern_progress (user_id, task_id, status, created_at, last_activity_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, task_id) DO UPDATE SET
			status = CASE
				WHEN intern_progress.status = 'completed' THEN intern_progress.status
				ELSE EXCLUDED.status
			END,
			last_activity_at = EXCLUDED.last_activity_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		progress.UserID,
		progress.TaskID,
		string(progress.Status),
		progress.CreatedAt,
		progress.LastActivityAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, progress.UserID)
		}

		log.Error("failed to upsert progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("task_id", progress.TaskID))
		return err
	}

	return nil
}

// ListByUser implements store.ProgressStore.ListByUser
func (s *PostgresProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.InternProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, task_id, status, created_at, last_activity_at
		FROM intern_progress
		WHERE user_id = $1
		ORDER BY last_activity_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	records := []*domain.InternProgress{}
	for rows.Next() {
		var record domain.InternProgress
		var status string

		if err := rows.Scan(
			&record.UserID,
			&record.TaskID,
			&status,
			&record.CreatedAt,
			&record.LastActivityAt,
		); err != nil {
			log.Error("failed to scan progress row",
				slog.String("error", err.Error()))
			return nil, err
		}

		record.Status = domain.ProjectStatus(status)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
