package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryAction is the event type of an item history entry.
type HistoryAction string

const (
	HistoryActionCreated       HistoryAction = "CREATED"
	HistoryActionWorn          HistoryAction = "WORN"
	HistoryActionMarkedLaundry HistoryAction = "MARKED_LAUNDRY"
	HistoryActionReturned      HistoryAction = "RETURNED"
	HistoryActionEdited        HistoryAction = "EDITED"
	HistoryActionFavorited     HistoryAction = "FAVORITED"
	HistoryActionUnfavorited   HistoryAction = "UNFAVORITED"
	HistoryActionDeleted       HistoryAction = "DELETED"
)

// ItemHistory is one append-only event in an item's life. Entries are
// never mutated after creation.
type ItemHistory struct {
	ID     uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	ItemID uuid.UUID     `json:"item_id" gorm:"type:uuid;not null;index"`
	UserID uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	Action HistoryAction `json:"action" gorm:"not null;size:20"`
	Note   string        `json:"note" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime;index"`
}

// TableName sets the table name.
func (ItemHistory) TableName() string {
	return "item_history"
}

// BeforeCreate assigns an id when none was set.
func (h *ItemHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
