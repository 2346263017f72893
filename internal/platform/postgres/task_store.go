package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ghlaw/taskdesk/internal/domain"
	"github.com/ghlaw/taskdesk/internal/platform/logger"
	"github.com/ghlaw/taskdesk/internal/store"
)

// taskColumns is the canonical select list, matching scanTask's field order.
const taskColumns = `id, task_id, title, description, category,
		assigned_to, assigned_to_email, created_by, created_by_email,
		due_date, priority, status, attachments_folder_url,
		attachments_count, notes, created_at, updated_at`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create.
// The task's reference, priority default, and forced "new" status are the
// caller's responsibility; this method validates and persists.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (
			id, task_id, title, description, category,
			assigned_to, assigned_to_email, created_by, created_by_email,
			due_date, priority, status, attachments_folder_url,
			attachments_count, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Reference,
		task.Title,
		task.Description,
		task.Category,
		task.AssignedTo,
		task.AssignedToEmail,
		task.CreatedBy,
		task.CreatedByEmail,
		task.DueDate,
		task.Priority,
		task.Status,
		task.AttachmentsFolderURL,
		task.AttachmentsCount,
		task.Notes,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("reference", task.Reference))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("reference", task.Reference),
		slog.String("assigned_to", task.AssignedTo))
	return nil
}

// GetAll implements store.TaskStore.GetAll.
func (s *PostgresTaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks ORDER BY created_at DESC`, taskColumns)
	return s.queryTasks(ctx, query)
}

// GetByID implements store.TaskStore.GetByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1`, taskColumns)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	return task, nil
}

// GetByReference implements store.TaskStore.GetByReference.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByReference(ctx context.Context, reference string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE task_id = $1`, taskColumns)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, reference))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("reference", reference))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by reference",
			slog.String("error", err.Error()),
			slog.String("reference", reference))
		return nil, err
	}

	return task, nil
}

// taskPatchColumns maps patch fields to their SQL columns in a fixed order.
// The closed list keeps column names out of caller control; values are
// always bound as positional parameters, never interpolated.
func taskPatchAssignments(patch *domain.TaskPatch) (columns []string, values []any) {
	if patch.Title != nil {
		columns = append(columns, "title")
		values = append(values, *patch.Title)
	}
	if patch.Description != nil {
		columns = append(columns, "description")
		values = append(values, *patch.Description)
	}
	if patch.Category != nil {
		columns = append(columns, "category")
		values = append(values, *patch.Category)
	}
	if patch.AssignedTo != nil {
		columns = append(columns, "assigned_to")
		values = append(values, *patch.AssignedTo)
	}
	if patch.AssignedToEmail != nil {
		columns = append(columns, "assigned_to_email")
		values = append(values, *patch.AssignedToEmail)
	}
	if patch.DueDate != nil {
		columns = append(columns, "due_date")
		values = append(values, *patch.DueDate)
	}
	if patch.Priority != nil {
		columns = append(columns, "priority")
		values = append(values, string(*patch.Priority))
	}
	if patch.Status != nil {
		columns = append(columns, "status")
		values = append(values, string(*patch.Status))
	}
	if patch.AttachmentsFolderURL != nil {
		columns = append(columns, "attachments_folder_url")
		values = append(values, *patch.AttachmentsFolderURL)
	}
	if patch.Notes != nil {
		columns = append(columns, "notes")
		values = append(values, *patch.Notes)
	}
	return columns, values
}

// buildTaskUpdate assembles a single parameterized UPDATE statement from the
// supplied patch fields plus an updated_at refresh. Returns ("", nil) when
// the patch supplies no fields.
func buildTaskUpdate(id uuid.UUID, patch *domain.TaskPatch, now time.Time) (string, []any) {
	columns, values := taskPatchAssignments(patch)
	if len(columns) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("UPDATE tasks SET ")
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s = $%d", col, i+1)
	}
	fmt.Fprintf(&b, ", updated_at = $%d WHERE id = $%d RETURNING %s",
		len(columns)+1, len(columns)+2, taskColumns)

	values = append(values, now, id)
	return b.String(), values
}

// Update implements store.TaskStore.Update.
// Only non-nil patch fields are applied, atomically, in a single statement.
// An empty patch is treated as a no-op: the current row is read back
// unchanged. A missing task surfaces as store.ErrTaskNotFound via the
// RETURNING clause producing no row.
func (s *PostgresTaskStore) Update(ctx context.Context, id uuid.UUID, patch *domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		log.Warn("task patch validation failed",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	query, args := buildTaskUpdate(id, patch, time.Now().UTC())
	if query == "" {
		// Zero fields supplied: no-op read-back of the current state.
		return s.GetByID(ctx, id)
	}

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	log.Info("task updated successfully",
		slog.String("task_id", id.String()),
		slog.String("reference", task.Reference))
	return task, nil
}

// Delete implements store.TaskStore.Delete.
// Deleting a nonexistent task is not an error: reported as (false, nil).
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return false, err
	}

	if rowsAffected > 0 {
		log.Info("task deleted successfully", slog.String("task_id", id.String()))
	}
	return rowsAffected > 0, nil
}

// GetByAssignee implements store.TaskStore.GetByAssignee.
func (s *PostgresTaskStore) GetByAssignee(ctx context.Context, assignee string) ([]*domain.Task, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM tasks WHERE assigned_to = $1 ORDER BY created_at DESC`, taskColumns)
	return s.queryTasks(ctx, query, assignee)
}

// GetByStatus implements store.TaskStore.GetByStatus.
func (s *PostgresTaskStore) GetByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM tasks WHERE status = $1 ORDER BY created_at DESC`, taskColumns)
	return s.queryTasks(ctx, query, string(status))
}

// queryTasks runs a multi-row task query and scans the results.
func (s *PostgresTaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask scans one task row in taskColumns order.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var priority, status string

	err := row.Scan(
		&task.ID,
		&task.Reference,
		&task.Title,
		&task.Description,
		&task.Category,
		&task.AssignedTo,
		&task.AssignedToEmail,
		&task.CreatedBy,
		&task.CreatedByEmail,
		&task.DueDate,
		&priority,
		&status,
		&task.AttachmentsFolderURL,
		&task.AttachmentsCount,
		&task.Notes,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Priority = domain.TaskPriority(priority)
	task.Status = domain.TaskStatus(status)
	return &task, nil
}
