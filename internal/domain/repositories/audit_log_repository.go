package repositories

import (
	"context"

	"github.com/google/uuid"

	"wardrobe-api/internal/domain/entities"
)

// AuditLogRepository persists the append-only system-wide audit trail.
type AuditLogRepository interface {
	// Append writes one audit entry.
	Append(ctx context.Context, entry *entities.AuditLog) error

	// ListByUser returns a user's audit entries, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.AuditLog, int64, error)

	// List returns all audit entries, newest first. Admin surface only.
	List(ctx context.Context, limit, offset int) ([]*entities.AuditLog, int64, error)
}
