package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditEntry records a single state-changing action for the append-only
// audit trail. Entries are written best-effort and never mutated.
type AuditEntry struct {
	ID         uuid.UUID       `json:"id"`
	ActorID    *uuid.UUID      `json:"user_id"` // nil for system actions
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   uuid.UUID       `json:"entity_id"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	IPAddress  *string         `json:"ip_address,omitempty"`
	UserAgent  *string         `json:"user_agent,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewAuditEntry creates an audit entry for the given action against an
// entity. Actor may be nil for system-initiated actions.
func NewAuditEntry(actor *uuid.UUID, action, entityType string, entityID uuid.UUID) *AuditEntry {
	return &AuditEntry{
		ID:         uuid.New(),
		ActorID:    actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now().UTC(),
	}
}
