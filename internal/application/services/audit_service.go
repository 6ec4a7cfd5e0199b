package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/domain/repositories"
)

// AuditService exposes the read side of the audit trail.
type AuditService interface {
	// ListByUser returns one user's audit entries, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*dto.AuditLogResponse, int64, error)

	// ListAll returns the system-wide trail. Admin surface only.
	ListAll(ctx context.Context, limit, offset int) ([]*dto.AuditLogResponse, int64, error)
}

type auditServiceImpl struct {
	auditRepo repositories.AuditLogRepository
}

// NewAuditService creates the audit query service.
func NewAuditService(auditRepo repositories.AuditLogRepository) AuditService {
	return &auditServiceImpl{auditRepo: auditRepo}
}

func (s *auditServiceImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*dto.AuditLogResponse, int64, error) {
	entries, total, err := s.auditRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	return dto.NewAuditLogResponses(entries), total, nil
}

func (s *auditServiceImpl) ListAll(ctx context.Context, limit, offset int) ([]*dto.AuditLogResponse, int64, error) {
	entries, total, err := s.auditRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit entries: %w", err)
	}
	return dto.NewAuditLogResponses(entries), total, nil
}
