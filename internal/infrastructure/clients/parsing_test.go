package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wardrobe-api/internal/domain/entities"
)

func TestParseGarmentType(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     entities.GarmentType
	}{
		{"bare enum", "TOP", entities.GarmentTypeTop},
		{"lowercase", "dress", entities.GarmentTypeDress},
		{"json object", `{"type":"OUTERWEAR"}`, entities.GarmentTypeOuterwear},
		{"fenced json", "```json\n{\"type\":\"SHOES\"}\n```", entities.GarmentTypeShoes},
		{"inside sentence", "This item is clearly a BOTTOM garment.", entities.GarmentTypeBottom},
		{"garbage falls back", "I cannot tell what this is.", DefaultGarmentType},
		{"empty falls back", "", DefaultGarmentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGarmentType(tt.response))
		})
	}
}

func TestParseOccasion(t *testing.T) {
	assert.Equal(t, entities.OccasionFormal, ParseOccasion("FORMAL"))
	assert.Equal(t, entities.OccasionSport, ParseOccasion(`{"occasion": "sport"}`))
	assert.Equal(t, entities.OccasionParty, ParseOccasion("Definitely a PARTY outfit"))
	assert.Equal(t, DefaultOccasion, ParseOccasion("no idea"))
}

func TestParseSeason(t *testing.T) {
	assert.Equal(t, entities.SeasonWinter, ParseSeason("WINTER"))
	assert.Equal(t, entities.SeasonSummer, ParseSeason(`{"season":"SUMMER"}`))
	// ALL_SEASON must win even though it contains other season names as
	// a keyword family.
	assert.Equal(t, entities.SeasonAllSeason, ParseSeason("Works in ALL_SEASON conditions"))
	assert.Equal(t, DefaultSeason, ParseSeason("whenever"))
}

func TestParseColors(t *testing.T) {
	t.Run("json array", func(t *testing.T) {
		assert.Equal(t, []string{"Navy", "White"}, ParseColors(`["Navy","White"]`))
	})

	t.Run("array embedded in prose", func(t *testing.T) {
		got := ParseColors(`The dominant colors are ["Red", "Black"] overall.`)
		assert.Equal(t, []string{"Red", "Black"}, got)
	})

	t.Run("fenced array", func(t *testing.T) {
		got := ParseColors("```json\n[\"Olive\"]\n```")
		assert.Equal(t, []string{"Olive"}, got)
	})

	t.Run("comma separated fallback", func(t *testing.T) {
		got := ParseColors("Navy, White, Gray")
		assert.Equal(t, []string{"Navy", "White", "Gray"}, got)
	})

	t.Run("empty reply uses default", func(t *testing.T) {
		assert.Equal(t, DefaultColors, ParseColors(""))
	})

	t.Run("blank entries dropped", func(t *testing.T) {
		got := ParseColors(`["Blue", "", "  "]`)
		assert.Equal(t, []string{"Blue"}, got)
	})
}

func TestParseName(t *testing.T) {
	assert.Equal(t, "Blue Denim Jacket", ParseName("Blue Denim Jacket"))
	assert.Equal(t, "Blue Denim Jacket", ParseName(`"Blue Denim Jacket"`))
	assert.Equal(t, "Striped Shirt", ParseName("Striped Shirt\nIt has long sleeves."))
	assert.Equal(t, "Wool Coat", ParseName("```\nWool Coat\n```"))
	assert.Equal(t, DefaultItemName, ParseName("   "))
}
