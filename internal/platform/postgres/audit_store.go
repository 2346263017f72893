package postgres

import (
	"context"
	"log/slog"

	"github.com/ghlaw/taskdesk/internal/domain"
	"github.com/ghlaw/taskdesk/internal/platform/logger"
	"github.com/ghlaw/taskdesk/internal/store"
)

// PostgresAuditStore implements the store.AuditStore interface.
// The audit trail is append-only: this store only ever inserts.
type PostgresAuditStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAuditStore creates a new PostgreSQL implementation of the
// AuditStore interface.
func NewPostgresAuditStore(db store.DBTX, logger *slog.Logger) *PostgresAuditStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAuditStore{
		db:     db,
		logger: logger.With(slog.String("component", "audit_store")),
	}
}

// Ensure PostgresAuditStore implements store.AuditStore interface
var _ store.AuditStore = (*PostgresAuditStore)(nil)

// Record implements store.AuditStore.Record.
func (s *PostgresAuditStore) Record(ctx context.Context, entry *domain.AuditEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO audit_log (id, user_id, action, entity_type, entity_id, changes, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	// json.RawMessage(nil) must land as SQL NULL, not an empty jsonb value.
	var changes any
	if len(entry.Changes) > 0 {
		changes = []byte(entry.Changes)
	}

	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.ActorID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		changes,
		entry.IPAddress,
		entry.UserAgent,
		entry.CreatedAt,
	)
	if err != nil {
		log.Error("failed to record audit entry",
			slog.String("error", err.Error()),
			slog.String("action", entry.Action),
			slog.String("entity_type", entry.EntityType),
			slog.String("entity_id", entry.EntityID.String()))
		return err
	}

	return nil
}
