package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/ghlaw/taskdesk/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store. The caller supplies a task that
	// already carries its generated ID, reference, priority default, and
	// status. Returns validation errors from the domain Task if data is
	// invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetAll retrieves every task ordered by creation time descending.
	GetAll(ctx context.Context) ([]*domain.Task, error)

	// GetByID retrieves a task by its internal UUID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetByReference retrieves a task by its human-facing reference string.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByReference(ctx context.Context, reference string) (*domain.Task, error)

	// Update applies a partial update: only non-nil patch fields are
	// modified, as a single atomic statement against the target row.
	// An empty patch is a no-op read-back of the current row.
	// Returns ErrTaskNotFound if the task does not exist, and the
	// post-update row on success.
	Update(ctx context.Context, id uuid.UUID, patch *domain.TaskPatch) (*domain.Task, error)

	// Delete removes a task by ID. Reports whether a row was removed;
	// deleting a nonexistent ID returns (false, nil), never ErrTaskNotFound.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// GetByAssignee retrieves tasks assigned to the given name,
	// ordered by creation time descending.
	GetByAssignee(ctx context.Context, assignee string) ([]*domain.Task, error)

	// GetByStatus retrieves tasks in the given status,
	// ordered by creation time descending.
	GetByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
}
