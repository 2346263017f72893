package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ghlaw/taskdesk/internal/api/shared"
	"github.com/ghlaw/taskdesk/internal/domain"
	"github.com/ghlaw/taskdesk/internal/notify"
	"github.com/ghlaw/taskdesk/internal/platform/logger"
	"github.com/ghlaw/taskdesk/internal/store"
)

// TaskHandler handles task CRUD and filter API requests.
type TaskHandler struct {
	taskStore  store.TaskStore
	auditStore store.AuditStore
	notifier   notify.Notifier
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(
	taskStore store.TaskStore,
	auditStore store.AuditStore,
	notifier notify.Notifier,
	log *slog.Logger,
) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskStore:  taskStore,
		auditStore: auditStore,
		notifier:   notifier,
		validator:  validator.New(),
		logger:     log.With(slog.String("component", "task_handler")),
	}
}

// pathTaskID extracts and parses the {id} path parameter.
// Writes a 400 response and returns false on a malformed ID.
func pathTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/tasks.
// The response is written as soon as the row is persisted; the assignee
// notification is dispatched on its own workers and never awaited.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task := req.ToTask()

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("reference", task.Reference))

	h.notifier.TaskCreated(task)
	recordAudit(r, h.auditStore, nil, "task.create", "task", task.ID)

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// GetAll handles GET /api/tasks.
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskStore.GetAll(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Internal server error", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetByID handles GET /api/tasks/{id}.
// The path segment is either a task UUID or a human-facing reference of the
// form TASK-<timestamp>-<digits>.
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")

	var task *domain.Task
	var err error
	if strings.HasPrefix(raw, "TASK-") {
		task, err = h.taskStore.GetByReference(r.Context(), raw)
	} else {
		var id uuid.UUID
		id, err = uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
			return
		}
		task, err = h.taskStore.GetByID(r.Context(), id)
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PUT /api/tasks/{id}.
// Only fields present in the payload are modified. Existence is checked
// before the update; a missing task is a 404 and nothing is notified.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := pathTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if _, err := h.taskStore.GetByID(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	task, err := h.taskStore.Update(r.Context(), id, req.ToPatch())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Info("task updated",
		slog.String("task_id", task.ID.String()),
		slog.String("reference", task.Reference))

	h.notifier.TaskUpdated(task)
	recordAudit(r, h.auditStore, nil, "task.update", "task", task.ID)

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}.
// The store reports a missing row as a boolean, not an error; at the HTTP
// layer that still surfaces as a 404.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := pathTaskID(w, r)
	if !ok {
		return
	}

	deleted, err := h.taskStore.Delete(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Internal server error", err)
		return
	}

	if !deleted {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	recordAudit(r, h.auditStore, nil, "task.delete", "task", id)

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteTaskResponse{
		Message: "Task deleted successfully",
		ID:      id,
	})
}

// GetByAssignee handles GET /api/tasks/assignee/{assignee}.
func (h *TaskHandler) GetByAssignee(w http.ResponseWriter, r *http.Request) {
	assignee := chi.URLParam(r, "assignee")
	if assignee == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Assignee is required")
		return
	}

	tasks, err := h.taskStore.GetByAssignee(r.Context(), assignee)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Internal server error", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetByStatus handles GET /api/tasks/status/{status}.
// A value outside the status enumeration is rejected before touching storage.
func (h *TaskHandler) GetByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.TaskStatus(chi.URLParam(r, "status"))
	if !status.IsValid() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task status")
		return
	}

	tasks, err := h.taskStore.GetByStatus(r.Context(), status)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Internal server error", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}
