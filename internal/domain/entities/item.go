package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GarmentType classifies what kind of clothing article an item is.
type GarmentType string

const (
	GarmentTypeTop        GarmentType = "TOP"
	GarmentTypeBottom     GarmentType = "BOTTOM"
	GarmentTypeDress      GarmentType = "DRESS"
	GarmentTypeOuterwear  GarmentType = "OUTERWEAR"
	GarmentTypeShoes      GarmentType = "SHOES"
	GarmentTypeAccessory  GarmentType = "ACCESSORY"
	GarmentTypeUnderwear  GarmentType = "UNDERWEAR"
	GarmentTypeSwimwear   GarmentType = "SWIMWEAR"
	GarmentTypeSportswear GarmentType = "SPORTSWEAR"
)

// AllGarmentTypes lists every valid garment type, used for validation and
// for keyword matching of classifier output.
var AllGarmentTypes = []GarmentType{
	GarmentTypeTop, GarmentTypeBottom, GarmentTypeDress, GarmentTypeOuterwear,
	GarmentTypeShoes, GarmentTypeAccessory, GarmentTypeUnderwear,
	GarmentTypeSwimwear, GarmentTypeSportswear,
}

// Occasion describes what an item is suitable for.
type Occasion string

const (
	OccasionCasual   Occasion = "CASUAL"
	OccasionFormal   Occasion = "FORMAL"
	OccasionBusiness Occasion = "BUSINESS"
	OccasionSport    Occasion = "SPORT"
	OccasionParty    Occasion = "PARTY"
)

// AllOccasions lists every valid occasion.
var AllOccasions = []Occasion{
	OccasionCasual, OccasionFormal, OccasionBusiness, OccasionSport, OccasionParty,
}

// Season describes when an item is wearable.
type Season string

const (
	SeasonSpring    Season = "SPRING"
	SeasonSummer    Season = "SUMMER"
	SeasonFall      Season = "FALL"
	SeasonWinter    Season = "WINTER"
	SeasonAllSeason Season = "ALL_SEASON"
)

// AllSeasons lists every valid season.
var AllSeasons = []Season{
	SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter, SeasonAllSeason,
}

// LaundryStatus is the lifecycle state of an item's physical availability.
type LaundryStatus string

const (
	LaundryStatusInWardrobe LaundryStatus = "IN_WARDROBE"
	LaundryStatusInLaundry  LaundryStatus = "IN_LAUNDRY"
	LaundryStatusClean      LaundryStatus = "CLEAN"
	LaundryStatusAway       LaundryStatus = "AWAY"
)

// Item is one wardrobe article.
type Item struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`

	Name      string      `json:"name" gorm:"size:255"`
	Colors    StringList  `json:"colors" gorm:"type:jsonb"`
	Type      GarmentType `json:"type" gorm:"not null;size:20;index"`
	Occasion  Occasion    `json:"occasion" gorm:"size:20"` // legacy single value, superseded by Occasions
	Occasions StringList  `json:"occasions" gorm:"type:jsonb"`
	Season    Season      `json:"season" gorm:"size:20;index"`

	Filename     string  `json:"filename" gorm:"size:255"`
	ImageURL     string  `json:"image_url" gorm:"size:500"`
	ThumbnailURL string  `json:"thumbnail_url" gorm:"size:500"`
	ProcessedURL *string `json:"processed_url,omitempty" gorm:"size:500"`

	LaundryStatus LaundryStatus `json:"laundry_status" gorm:"not null;default:IN_WARDROBE;size:20;index"`
	UsageCount    int           `json:"usage_count" gorm:"not null;default:0"`
	IsFavorite    bool          `json:"is_favorite" gorm:"not null;default:false"`

	// Reserved for a moderation workflow that does not exist yet. No
	// pipeline logic reads or writes these.
	Moderated       bool    `json:"moderated" gorm:"not null;default:false"`
	ModerationNotes *string `json:"moderation_notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;autoUpdateTime"`
}

// TableName sets the table name.
func (Item) TableName() string {
	return "items"
}

// BeforeCreate assigns an id when none was set.
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// IsOwnedBy reports whether the item belongs to the given user.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.UserID == userID
}

// MarkWorn moves the item back to the wardrobe and counts the wear.
// Valid from any state.
func (i *Item) MarkWorn() {
	i.LaundryStatus = LaundryStatusInWardrobe
	i.UsageCount++
}

// MarkLaundry sends the item to the laundry. Wearing it is what put it
// there, so the usage count increments here as well. Re-marking an item
// already in the laundry is a state no-op and does not count.
func (i *Item) MarkLaundry() {
	if i.LaundryStatus == LaundryStatusInLaundry {
		return
	}
	i.LaundryStatus = LaundryStatusInLaundry
	i.UsageCount++
}

// MarkClean marks the item as washed.
func (i *Item) MarkClean() {
	i.LaundryStatus = LaundryStatusClean
}

// MarkAway stores the item out of rotation. Valid from any state.
func (i *Item) MarkAway() {
	i.LaundryStatus = LaundryStatusAway
}

// IsValidGarmentType reports whether s is a known garment type.
func IsValidGarmentType(s string) bool {
	for _, t := range AllGarmentTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// IsValidOccasion reports whether s is a known occasion.
func IsValidOccasion(s string) bool {
	for _, o := range AllOccasions {
		if string(o) == s {
			return true
		}
	}
	return false
}

// IsValidSeason reports whether s is a known season.
func IsValidSeason(s string) bool {
	for _, se := range AllSeasons {
		if string(se) == s {
			return true
		}
	}
	return false
}

// IsValidLaundryStatus reports whether s is a known laundry status.
func IsValidLaundryStatus(s string) bool {
	switch LaundryStatus(s) {
	case LaundryStatusInWardrobe, LaundryStatusInLaundry, LaundryStatusClean, LaundryStatusAway:
		return true
	}
	return false
}
