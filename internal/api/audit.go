package api

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/ghlaw/taskdesk/internal/api/shared"
	"github.com/ghlaw/taskdesk/internal/domain"
	"github.com/ghlaw/taskdesk/internal/platform/logger"
	"github.com/ghlaw/taskdesk/internal/store"
)

// recordAudit appends an audit entry for a completed action, best-effort:
// a failed write is logged and otherwise ignored. When actor is nil the
// authenticated claims from the request context are used instead, leaving
// the actor empty for unauthenticated actions.
func recordAudit(
	r *http.Request,
	audit store.AuditStore,
	actor *uuid.UUID,
	action, entityType string,
	entityID uuid.UUID,
) {
	if audit == nil {
		return
	}

	if actor == nil {
		if claims, ok := shared.ClaimsFromContext(r.Context()); ok {
			id := claims.UserID
			actor = &id
		}
	}

	entry := domain.NewAuditEntry(actor, action, entityType, entityID)

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		entry.IPAddress = &host
	}
	if ua := r.UserAgent(); ua != "" {
		entry.UserAgent = &ua
	}

	if err := audit.Record(r.Context(), entry); err != nil {
		logger.FromContext(r.Context()).Warn("failed to record audit entry",
			slog.String("error", err.Error()),
			slog.String("action", action),
			slog.String("entity_id", entityID.String()))
	}
}
