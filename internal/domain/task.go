package domain

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Common task validation errors
var (
	ErrEmptyTaskID        = errors.New("task ID cannot be empty")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrTitleTooLong       = errors.New("title must be at most 500 characters long")
	ErrEmptyCategory      = errors.New("category cannot be empty")
	ErrEmptyAssignee      = errors.New("assignee cannot be empty")
	ErrInvalidTaskEmail   = errors.New("invalid email format")
	ErrInvalidPriority    = errors.New("invalid task priority")
	ErrInvalidStatus      = errors.New("invalid task status")
)

// TaskPriority is the closed set of priority levels a task can carry.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityNormal TaskPriority = "normal"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// IsValid reports whether the priority belongs to the closed enumeration.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TaskStatus is the closed set of lifecycle states a task can be in.
type TaskStatus string

const (
	StatusNew        TaskStatus = "new"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// IsValid reports whether the status belongs to the closed enumeration.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Task represents an assigned work item tracked by the office.
// The Reference field is the human-facing identifier printed in emails
// and spreadsheets; ID is the internal database identity.
type Task struct {
	ID                   uuid.UUID    `json:"id"`
	Reference            string       `json:"task_id"`
	Title                string       `json:"title"`
	Description          *string      `json:"description"`
	Category             string       `json:"category"`
	AssignedTo           string       `json:"assigned_to"`
	AssignedToEmail      string       `json:"assigned_to_email"`
	CreatedBy            string       `json:"created_by"`
	CreatedByEmail       string       `json:"created_by_email"`
	DueDate              *time.Time   `json:"due_date"`
	Priority             TaskPriority `json:"priority"`
	Status               TaskStatus   `json:"status"`
	AttachmentsFolderURL *string      `json:"attachments_folder_url"`
	AttachmentsCount     int          `json:"attachments_count"`
	Notes                *string      `json:"notes"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// NewTaskReference generates a human-facing task reference of the form
// TASK-<timestamp>-<4 digits>. The numeric suffix is a random value modulo
// 10000 and is not guaranteed unique; the reference is cosmetic and
// collisions are acceptable.
func NewTaskReference(now time.Time) string {
	return fmt.Sprintf("TASK-%s-%04d", now.UTC().Format("20060102150405"), rand.Intn(10000))
}

// Validate checks the task invariants that must hold before persistence.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if len(t.Title) > 500 {
		return ErrTitleTooLong
	}
	if t.Category == "" {
		return ErrEmptyCategory
	}
	if t.AssignedTo == "" {
		return ErrEmptyAssignee
	}
	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// TaskPatch describes a partial update to a task. Only non-nil fields are
// applied; absent fields leave the stored value untouched.
type TaskPatch struct {
	Title                *string       `json:"title"`
	Description          *string       `json:"description"`
	Category             *string       `json:"category"`
	AssignedTo           *string       `json:"assigned_to"`
	AssignedToEmail      *string       `json:"assigned_to_email"`
	DueDate              *time.Time    `json:"due_date"`
	Priority             *TaskPriority `json:"priority"`
	Status               *TaskStatus   `json:"status"`
	AttachmentsFolderURL *string       `json:"attachments_folder_url"`
	Notes                *string       `json:"notes"`
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p *TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Category == nil &&
		p.AssignedTo == nil &&
		p.AssignedToEmail == nil &&
		p.DueDate == nil &&
		p.Priority == nil &&
		p.Status == nil &&
		p.AttachmentsFolderURL == nil &&
		p.Notes == nil
}

// Validate checks the enumeration invariants on the supplied fields.
func (p *TaskPatch) Validate() error {
	if p.Priority != nil && !p.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if p.Status != nil && !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	if p.Title != nil {
		if *p.Title == "" {
			return ErrEmptyTitle
		}
		if len(*p.Title) > 500 {
			return ErrTitleTooLong
		}
	}
	return nil
}
