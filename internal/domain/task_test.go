package domain

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTaskPriorityIsValid(t *testing.T) {
	valid := []TaskPriority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}
	for _, p := range valid {
		if !p.IsValid() {
			t.Errorf("Expected priority %q to be valid", p)
		}
	}

	invalid := []TaskPriority{"", "critical", "LOW", "Normal"}
	for _, p := range invalid {
		if p.IsValid() {
			t.Errorf("Expected priority %q to be invalid", p)
		}
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	valid := []TaskStatus{StatusNew, StatusInProgress, StatusCompleted, StatusCancelled}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("Expected status %q to be valid", s)
		}
	}

	invalid := []TaskStatus{"", "done", "NEW", "in progress"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("Expected status %q to be invalid", s)
		}
	}
}

func TestNewTaskReference(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	pattern := regexp.MustCompile(`^TASK-20250314092653-\d{4}$`)

	for i := 0; i < 100; i++ {
		ref := NewTaskReference(now)
		if !pattern.MatchString(ref) {
			t.Fatalf("Reference %q does not match expected format", ref)
		}
	}
}

func TestNewTaskReferenceUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	local := time.Date(2025, 3, 14, 14, 26, 53, 0, loc)

	ref := NewTaskReference(local)
	if !strings.HasPrefix(ref, "TASK-20250314092653-") {
		t.Errorf("Expected reference built from UTC timestamp, got %q", ref)
	}
}

func TestTaskValidate(t *testing.T) {
	validTask := Task{
		ID:         uuid.New(),
		Reference:  "TASK-20250314092653-0042",
		Title:      "Prepare quarterly report",
		Category:   "reports",
		AssignedTo: "Dana",
		Priority:   PriorityNormal,
		Status:     StatusNew,
	}

	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalid := validTask
	invalid.ID = uuid.Nil
	if err := invalid.Validate(); err != ErrEmptyTaskID {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskID, err)
	}

	invalid = validTask
	invalid.Title = ""
	if err := invalid.Validate(); err != ErrEmptyTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyTitle, err)
	}

	invalid = validTask
	invalid.Title = strings.Repeat("x", 501)
	if err := invalid.Validate(); err != ErrTitleTooLong {
		t.Errorf("Expected error %v, got %v", ErrTitleTooLong, err)
	}

	invalid = validTask
	invalid.Category = ""
	if err := invalid.Validate(); err != ErrEmptyCategory {
		t.Errorf("Expected error %v, got %v", ErrEmptyCategory, err)
	}

	invalid = validTask
	invalid.AssignedTo = ""
	if err := invalid.Validate(); err != ErrEmptyAssignee {
		t.Errorf("Expected error %v, got %v", ErrEmptyAssignee, err)
	}

	invalid = validTask
	invalid.Priority = "critical"
	if err := invalid.Validate(); err != ErrInvalidPriority {
		t.Errorf("Expected error %v, got %v", ErrInvalidPriority, err)
	}

	invalid = validTask
	invalid.Status = "done"
	if err := invalid.Validate(); err != ErrInvalidStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidStatus, err)
	}
}

func TestTaskPatchIsEmpty(t *testing.T) {
	empty := TaskPatch{}
	if !empty.IsEmpty() {
		t.Error("Expected zero-value patch to be empty")
	}

	notes := "follow up next week"
	withNotes := TaskPatch{Notes: &notes}
	if withNotes.IsEmpty() {
		t.Error("Expected patch with notes to be non-empty")
	}

	status := StatusCompleted
	withStatus := TaskPatch{Status: &status}
	if withStatus.IsEmpty() {
		t.Error("Expected patch with status to be non-empty")
	}
}

func TestTaskPatchValidate(t *testing.T) {
	if err := (&TaskPatch{}).Validate(); err != nil {
		t.Errorf("Expected empty patch to validate, got %v", err)
	}

	badPriority := TaskPriority("critical")
	if err := (&TaskPatch{Priority: &badPriority}).Validate(); err != ErrInvalidPriority {
		t.Errorf("Expected error %v, got %v", ErrInvalidPriority, err)
	}

	badStatus := TaskStatus("done")
	if err := (&TaskPatch{Status: &badStatus}).Validate(); err != ErrInvalidStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidStatus, err)
	}

	emptyTitle := ""
	if err := (&TaskPatch{Title: &emptyTitle}).Validate(); err != ErrEmptyTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyTitle, err)
	}

	longTitle := strings.Repeat("x", 501)
	if err := (&TaskPatch{Title: &longTitle}).Validate(); err != ErrTitleTooLong {
		t.Errorf("Expected error %v, got %v", ErrTitleTooLong, err)
	}

	goodTitle := "Renamed task"
	goodStatus := StatusInProgress
	patch := TaskPatch{Title: &goodTitle, Status: &goodStatus}
	if err := patch.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
