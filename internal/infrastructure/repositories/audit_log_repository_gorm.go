package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/domain/repositories"
)

// auditLogRepositoryGorm is the GORM audit log repository. Append only.
type auditLogRepositoryGorm struct {
	db *gorm.DB
}

// NewAuditLogRepositoryGorm creates the GORM audit log repository.
func NewAuditLogRepositoryGorm(db *gorm.DB) repositories.AuditLogRepository {
	return &auditLogRepositoryGorm{db: db}
}

// Append writes one audit entry.
func (r *auditLogRepositoryGorm) Append(ctx context.Context, entry *entities.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

// ListByUser returns a user's audit entries, newest first.
func (r *auditLogRepositoryGorm) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.AuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.AuditLog{}).Where("user_id = ?", userID)
	return r.page(query, limit, offset)
}

// List returns all audit entries, newest first.
func (r *auditLogRepositoryGorm) List(ctx context.Context, limit, offset int) ([]*entities.AuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.AuditLog{})
	return r.page(query, limit, offset)
}

func (r *auditLogRepositoryGorm) page(query *gorm.DB, limit, offset int) ([]*entities.AuditLog, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var entries []*entities.AuditLog
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return entries, total, nil
}
