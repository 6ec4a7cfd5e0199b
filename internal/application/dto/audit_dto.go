package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"wardrobe-api/internal/domain/entities"
)

// AuditLogResponse is one audit trail entry.
type AuditLogResponse struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Action    string          `json:"action"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	SourceIP  string          `json:"source_ip,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewAuditLogResponses converts audit log entities.
func NewAuditLogResponses(entries []*entities.AuditLog) []*AuditLogResponse {
	out := make([]*AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &AuditLogResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Action:    e.Action,
			Payload:   json.RawMessage(e.Payload),
			SourceIP:  e.SourceIP,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
