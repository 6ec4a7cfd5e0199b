package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit action tags. The column is free text; these are the tags the
// service itself emits.
const (
	AuditActionUploadItem   = "UPLOAD_ITEM"
	AuditActionDeleteItem   = "DELETE_ITEM"
	AuditActionUserLogin    = "USER_LOGIN"
	AuditActionUserRegister = "USER_REGISTER"
)

// AuditLog is one append-only, system-wide audit entry. Entries are never
// mutated after creation.
type AuditLog struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Action   string    `json:"action" gorm:"not null;size:64;index"`
	Payload  []byte    `json:"payload,omitempty" gorm:"type:jsonb"`
	SourceIP string    `json:"source_ip" gorm:"size:45"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime;index"`
}

// TableName sets the table name.
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate assigns an id when none was set.
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// NewAuditLog builds an entry with the payload serialized to JSON. A
// payload that cannot be serialized is dropped rather than failing the
// audit write.
func NewAuditLog(userID uuid.UUID, action string, payload interface{}, sourceIP string) *AuditLog {
	entry := &AuditLog{
		UserID:   userID,
		Action:   action,
		SourceIP: sourceIP,
	}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			entry.Payload = data
		}
	}
	return entry
}
