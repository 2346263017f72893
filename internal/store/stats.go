package store

import "context"

// TaskStats aggregates task counts by lifecycle status.
type TaskStats struct {
	Total      int64 `json:"total"`
	New        int64 `json:"new"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}

// AssigneeStats aggregates task counts for a single assignee.
type AssigneeStats struct {
	Assignee  string `json:"assignee"`
	Total     int64  `json:"total_tasks"`
	Completed int64  `json:"completed_tasks"`
	Pending   int64  `json:"pending_tasks"`
}

// StatsStore defines the interface for aggregate task statistics.
type StatsStore interface {
	// CountByStatus returns task counts broken down by status.
	CountByStatus(ctx context.Context) (*TaskStats, error)

	// CountByAssignee returns task counts for the given assignee.
	// An assignee with no tasks yields zero counts, not an error.
	CountByAssignee(ctx context.Context, assignee string) (*AssigneeStats, error)
}
