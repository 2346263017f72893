package api

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ghlaw/taskdesk/internal/domain"
	"github.com/ghlaw/taskdesk/internal/store"
)

// mockTaskStore implements store.TaskStore with injectable behavior.
type mockTaskStore struct {
	createFn        func(ctx context.Context, task *domain.Task) error
	getAllFn        func(ctx context.Context) ([]*domain.Task, error)
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	getByRefFn      func(ctx context.Context, reference string) (*domain.Task, error)
	updateFn        func(ctx context.Context, id uuid.UUID, patch *domain.TaskPatch) (*domain.Task, error)
	deleteFn        func(ctx context.Context, id uuid.UUID) (bool, error)
	getByAssigneeFn func(ctx context.Context, assignee string) ([]*domain.Task, error)
	getByStatusFn   func(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
}

var _ store.TaskStore = (*mockTaskStore)(nil)

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.createFn != nil {
		return m.createFn(ctx, task)
	}
	return nil
}

func (m *mockTaskStore) GetAll(ctx context.Context) ([]*domain.Task, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return []*domain.Task{}, nil
}

func (m *mockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrTaskNotFound
}

func (m *mockTaskStore) GetByReference(ctx context.Context, reference string) (*domain.Task, error) {
	if m.getByRefFn != nil {
		return m.getByRefFn(ctx, reference)
	}
	return nil, store.ErrTaskNotFound
}

func (m *mockTaskStore) Update(ctx context.Context, id uuid.UUID, patch *domain.TaskPatch) (*domain.Task, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return nil, store.ErrTaskNotFound
}

func (m *mockTaskStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

func (m *mockTaskStore) GetByAssignee(ctx context.Context, assignee string) ([]*domain.Task, error) {
	if m.getByAssigneeFn != nil {
		return m.getByAssigneeFn(ctx, assignee)
	}
	return []*domain.Task{}, nil
}

func (m *mockTaskStore) GetByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	if m.getByStatusFn != nil {
		return m.getByStatusFn(ctx, status)
	}
	return []*domain.Task{}, nil
}

// mockUserStore implements store.UserStore with injectable behavior.
type mockUserStore struct {
	createFn          func(ctx context.Context, user *domain.User) error
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	updateLastLoginFn func(ctx context.Context, id uuid.UUID) error
}

var _ store.UserStore = (*mockUserStore)(nil)

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	if m.updateLastLoginFn != nil {
		return m.updateLastLoginFn(ctx, id)
	}
	return nil
}

// mockAuditStore records audit entries in memory.
type mockAuditStore struct {
	mu      sync.Mutex
	entries []*domain.AuditEntry
}

var _ store.AuditStore = (*mockAuditStore)(nil)

func (m *mockAuditStore) Record(_ context.Context, entry *domain.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditStore) recorded() []*domain.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.AuditEntry(nil), m.entries...)
}

// mockNotifier counts notification calls.
type mockNotifier struct {
	mu      sync.Mutex
	created []*domain.Task
	updated []*domain.Task
}

func (m *mockNotifier) TaskCreated(task *domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, task)
}

func (m *mockNotifier) TaskUpdated(task *domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated = append(m.updated, task)
}

func (m *mockNotifier) createdTasks() []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Task(nil), m.created...)
}

func (m *mockNotifier) updatedTasks() []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Task(nil), m.updated...)
}

// mockStatsStore implements store.StatsStore with injectable behavior.
type mockStatsStore struct {
	countByStatusFn   func(ctx context.Context) (*store.TaskStats, error)
	countByAssigneeFn func(ctx context.Context, assignee string) (*store.AssigneeStats, error)
}

var _ store.StatsStore = (*mockStatsStore)(nil)

func (m *mockStatsStore) CountByStatus(ctx context.Context) (*store.TaskStats, error) {
	if m.countByStatusFn != nil {
		return m.countByStatusFn(ctx)
	}
	return &store.TaskStats{}, nil
}

func (m *mockStatsStore) CountByAssignee(ctx context.Context, assignee string) (*store.AssigneeStats, error) {
	if m.countByAssigneeFn != nil {
		return m.countByAssigneeFn(ctx, assignee)
	}
	return &store.AssigneeStats{Assignee: assignee}, nil
}

// stubVerifier accepts exactly one password.
type stubVerifier struct {
	accept string
}

func (v *stubVerifier) Compare(_, password string) error {
	if password == v.accept {
		return nil
	}
	return errPasswordMismatch
}
