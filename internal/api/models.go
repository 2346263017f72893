package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ghlaw/taskdesk/internal/domain"
)

// Common request/response structures

// DateOnly accepts a calendar date in YYYY-MM-DD form in request payloads.
type DateOnly struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler for YYYY-MM-DD dates.
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	t, err := time.Parse(`"2006-01-02"`, s)
	if err != nil {
		return fmt.Errorf("invalid date %s: expected YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

// MarshalJSON implements json.Marshaler for YYYY-MM-DD dates.
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(d.Time.Format(`"2006-01-02"`)), nil
}

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string  `json:"email"    validate:"required,email"`
	Name     string  `json:"name"     validate:"required,max=100"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Role     *string `json:"role"     validate:"omitempty,oneof=admin user viewer"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the public view of a user account.
// It never carries the password hash.
type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      domain.UserRole `json:"role"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewUserResponse builds the public view from a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateTaskRequest defines the payload for task creation.
// Status is deliberately absent: it is forced to "new" at creation and only
// mutable through update. Priority defaults to "normal" when omitted.
type CreateTaskRequest struct {
	Title                string    `json:"title"                  validate:"required,max=500"`
	Description          *string   `json:"description"`
	Category             string    `json:"category"               validate:"required,max=100"`
	AssignedTo           string    `json:"assigned_to"            validate:"required,max=100"`
	AssignedToEmail      string    `json:"assigned_to_email"      validate:"required,email"`
	CreatedBy            string    `json:"created_by"             validate:"required,max=100"`
	CreatedByEmail       string    `json:"created_by_email"       validate:"required,email"`
	DueDate              *DateOnly `json:"due_date"`
	Priority             *string   `json:"priority"               validate:"omitempty,oneof=low normal high urgent"`
	AttachmentsFolderURL *string   `json:"attachments_folder_url"`
	Notes                *string   `json:"notes"`
}

// ToTask builds a fully populated domain task from the request: fresh ID,
// generated reference, priority default, forced "new" status, timestamps.
func (r *CreateTaskRequest) ToTask() *domain.Task {
	now := time.Now().UTC()

	priority := domain.PriorityNormal
	if r.Priority != nil {
		priority = domain.TaskPriority(*r.Priority)
	}

	var dueDate *time.Time
	if r.DueDate != nil {
		d := r.DueDate.Time
		dueDate = &d
	}

	return &domain.Task{
		ID:                   uuid.New(),
		Reference:            domain.NewTaskReference(now),
		Title:                r.Title,
		Description:          r.Description,
		Category:             r.Category,
		AssignedTo:           r.AssignedTo,
		AssignedToEmail:      r.AssignedToEmail,
		CreatedBy:            r.CreatedBy,
		CreatedByEmail:       r.CreatedByEmail,
		DueDate:              dueDate,
		Priority:             priority,
		Status:               domain.StatusNew,
		AttachmentsFolderURL: r.AttachmentsFolderURL,
		Notes:                r.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// UpdateTaskRequest defines the payload for the partial-update endpoint.
// Absent fields leave the stored values untouched.
type UpdateTaskRequest struct {
	Title                *string   `json:"title"                  validate:"omitempty,max=500"`
	Description          *string   `json:"description"`
	Category             *string   `json:"category"               validate:"omitempty,max=100"`
	AssignedTo           *string   `json:"assigned_to"            validate:"omitempty,max=100"`
	AssignedToEmail      *string   `json:"assigned_to_email"      validate:"omitempty,email"`
	DueDate              *DateOnly `json:"due_date"`
	Priority             *string   `json:"priority"               validate:"omitempty,oneof=low normal high urgent"`
	Status               *string   `json:"status"                 validate:"omitempty,oneof=new in_progress completed cancelled"`
	AttachmentsFolderURL *string   `json:"attachments_folder_url"`
	Notes                *string   `json:"notes"`
}

// ToPatch converts the request into a domain patch.
func (r *UpdateTaskRequest) ToPatch() *domain.TaskPatch {
	patch := &domain.TaskPatch{
		Title:                r.Title,
		Description:          r.Description,
		Category:             r.Category,
		AssignedTo:           r.AssignedTo,
		AssignedToEmail:      r.AssignedToEmail,
		AttachmentsFolderURL: r.AttachmentsFolderURL,
		Notes:                r.Notes,
	}

	if r.DueDate != nil {
		d := r.DueDate.Time
		patch.DueDate = &d
	}
	if r.Priority != nil {
		p := domain.TaskPriority(*r.Priority)
		patch.Priority = &p
	}
	if r.Status != nil {
		s := domain.TaskStatus(*r.Status)
		patch.Status = &s
	}

	return patch
}

// DeleteTaskResponse confirms a successful deletion.
type DeleteTaskResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}
