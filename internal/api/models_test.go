package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghlaw/taskdesk/internal/domain"
)

func TestDateOnlyUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid_date",
			input: `"2025-04-01"`,
			want:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "null_is_zero_value",
			input: `null`,
			want:  time.Time{},
		},
		{
			name:    "datetime_rejected",
			input:   `"2025-04-01T10:00:00Z"`,
			wantErr: true,
		},
		{
			name:    "wrong_order",
			input:   `"01-04-2025"`,
			wantErr: true,
		},
		{
			name:    "not_a_string",
			input:   `20250401`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var d DateOnly
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.want.Equal(d.Time), "got %v, want %v", d.Time, tt.want)
			}
		})
	}
}

func TestDateOnlyMarshal(t *testing.T) {
	t.Parallel()

	d := DateOnly{Time: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)}
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-04-01"`, string(raw))
}

func TestCreateTaskRequestToTask(t *testing.T) {
	t.Parallel()

	req := CreateTaskRequest{
		Title:           "Prepare quarterly report",
		Category:        "reports",
		AssignedTo:      "Dana",
		AssignedToEmail: "dana@example.com",
		CreatedBy:       "Omer",
		CreatedByEmail:  "omer@example.com",
	}

	task := req.ToTask()

	assert.Equal(t, domain.StatusNew, task.Status)
	assert.Equal(t, domain.PriorityNormal, task.Priority)
	assert.NotEmpty(t, task.Reference)
	assert.NoError(t, task.Validate())
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	assert.Nil(t, task.DueDate)
}

func TestCreateTaskRequestToTaskWithPriority(t *testing.T) {
	t.Parallel()

	priority := "urgent"
	due := DateOnly{Time: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)}
	req := CreateTaskRequest{
		Title:           "Prepare quarterly report",
		Category:        "reports",
		AssignedTo:      "Dana",
		AssignedToEmail: "dana@example.com",
		CreatedBy:       "Omer",
		CreatedByEmail:  "omer@example.com",
		Priority:        &priority,
		DueDate:         &due,
	}

	task := req.ToTask()

	assert.Equal(t, domain.PriorityUrgent, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.True(t, due.Time.Equal(*task.DueDate))
}

func TestUpdateTaskRequestToPatch(t *testing.T) {
	t.Parallel()

	empty := UpdateTaskRequest{}
	assert.True(t, empty.ToPatch().IsEmpty())

	status := "completed"
	notes := "done early"
	req := UpdateTaskRequest{Status: &status, Notes: &notes}
	patch := req.ToPatch()

	assert.False(t, patch.IsEmpty())
	require.NotNil(t, patch.Status)
	assert.Equal(t, domain.StatusCompleted, *patch.Status)
	require.NotNil(t, patch.Notes)
	assert.Equal(t, "done early", *patch.Notes)
	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.Priority)
}
