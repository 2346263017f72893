package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/ghlaw/taskdesk/internal/platform/logger"
	"github.com/ghlaw/taskdesk/internal/store"
)

// PostgresStatsStore implements the store.StatsStore interface
// using aggregate queries over the tasks table.
type PostgresStatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatsStore creates a new PostgreSQL implementation of the
// StatsStore interface.
func NewPostgresStatsStore(db store.DBTX, logger *slog.Logger) *PostgresStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure PostgresStatsStore implements store.StatsStore interface
var _ store.StatsStore = (*PostgresStatsStore)(nil)

// CountByStatus implements store.StatsStore.CountByStatus.
func (s *PostgresStatsStore) CountByStatus(ctx context.Context) (*store.TaskStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'new') AS new,
			COUNT(*) FILTER (WHERE status = 'in_progress') AS in_progress,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled
		FROM tasks
	`

	var stats store.TaskStats
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.New,
		&stats.InProgress,
		&stats.Completed,
		&stats.Cancelled,
	)
	if err != nil {
		log.Error("failed to count tasks by status", slog.String("error", err.Error()))
		return nil, err
	}

	return &stats, nil
}

// CountByAssignee implements store.StatsStore.CountByAssignee.
// An assignee with no tasks yields zero counts, not an error.
func (s *PostgresStatsStore) CountByAssignee(ctx context.Context, assignee string) (*store.AssigneeStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*) AS total_tasks,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed_tasks,
			COUNT(*) FILTER (WHERE status IN ('new', 'in_progress')) AS pending_tasks
		FROM tasks
		WHERE assigned_to = $1
	`

	stats := store.AssigneeStats{Assignee: assignee}
	err := s.db.QueryRowContext(ctx, query, assignee).Scan(
		&stats.Total,
		&stats.Completed,
		&stats.Pending,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &stats, nil
		}
		log.Error("failed to count tasks by assignee",
			slog.String("error", err.Error()),
			slog.String("assignee", assignee))
		return nil, err
	}

	return &stats, nil
}
