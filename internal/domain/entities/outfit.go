package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Outfit is a named collection of item references.
type Outfit struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	IsPublic    bool      `json:"is_public" gorm:"not null;default:false"`

	Items []OutfitItem `json:"items" gorm:"foreignKey:OutfitID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;autoUpdateTime"`
}

// TableName sets the table name.
func (Outfit) TableName() string {
	return "outfits"
}

// BeforeCreate assigns an id when none was set.
func (o *Outfit) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// IsOwnedBy reports whether the outfit belongs to the given user.
func (o *Outfit) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

// OutfitItem links an item into an outfit at a display position.
type OutfitItem struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OutfitID uuid.UUID `json:"outfit_id" gorm:"type:uuid;not null;index"`
	ItemID   uuid.UUID `json:"item_id" gorm:"type:uuid;not null;index"`
	Position int       `json:"position" gorm:"not null;default:0"`
}

// TableName sets the table name.
func (OutfitItem) TableName() string {
	return "outfit_items"
}

// BeforeCreate assigns an id when none was set.
func (oi *OutfitItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}
