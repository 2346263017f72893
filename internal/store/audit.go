package store

import (
	"context"

	"github.com/ghlaw/taskdesk/internal/domain"
)

// AuditStore defines the interface for the append-only audit trail.
// Entries are recorded best-effort and never read back, mutated, or
// deleted by this application.
type AuditStore interface {
	// Record appends a single audit entry.
	Record(ctx context.Context, entry *domain.AuditEntry) error
}
