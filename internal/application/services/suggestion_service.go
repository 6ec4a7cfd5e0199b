package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/domain/repositories"
	"wardrobe-api/internal/infrastructure/clients"
	"wardrobe-api/internal/infrastructure/logger"
)

// suggestionCount is how many combinations one request aims to return.
const suggestionCount = 3

// SuggestionService proposes outfit combinations from the available
// wardrobe. The AI model proposes first; a rule-based engine fills in
// whatever the model did not deliver and takes over entirely when the
// model is unreachable.
type SuggestionService interface {
	// SuggestOutfits proposes up to three combinations of available
	// items. Returns ErrNotEnoughItems when fewer than two items are in
	// the wardrobe.
	SuggestOutfits(ctx context.Context, userID uuid.UUID, req *dto.SuggestOutfitsRequest) (*dto.SuggestOutfitsResponse, error)
}

type suggestionServiceImpl struct {
	itemRepo repositories.ItemRepository
	provider clients.ClassificationProvider
	logger   logger.Logger
}

// NewSuggestionService creates the suggestion service.
func NewSuggestionService(itemRepo repositories.ItemRepository, provider clients.ClassificationProvider, log logger.Logger) SuggestionService {
	return &suggestionServiceImpl{
		itemRepo: itemRepo,
		provider: provider,
		logger:   log,
	}
}

func (s *suggestionServiceImpl) SuggestOutfits(ctx context.Context, userID uuid.UUID, req *dto.SuggestOutfitsRequest) (*dto.SuggestOutfitsResponse, error) {
	if req != nil {
		if req.Occasion != "" && !entities.IsValidOccasion(req.Occasion) {
			return nil, fmt.Errorf("%w: unknown occasion %q", entities.ErrValidation, req.Occasion)
		}
		if req.Season != "" && !entities.IsValidSeason(req.Season) {
			return nil, fmt.Errorf("%w: unknown season %q", entities.ErrValidation, req.Season)
		}
	}

	// Only items physically in the wardrobe can be proposed.
	status := entities.LaundryStatusInWardrobe
	items, _, err := s.itemRepo.ListByUser(ctx, userID, &repositories.ItemFilters{LaundryStatus: &status}, 200, 0)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if len(items) < 2 {
		return nil, entities.ErrNotEnoughItems
	}

	byID := make(map[uuid.UUID]*entities.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	var suggestions []*dto.OutfitSuggestion
	fallback := false

	reply, err := s.provider.Complete(ctx, buildSuggestionPrompt(items, req))
	if err != nil {
		s.logger.WithField("error", err.Error()).Warn("Suggestion model unavailable, using rule-based combinations")
		fallback = true
	} else {
		suggestions = parseSuggestions(reply, byID)
	}

	suggestions = backfillSuggestions(suggestions, items)

	if len(suggestions) > suggestionCount {
		suggestions = suggestions[:suggestionCount]
	}

	return &dto.SuggestOutfitsResponse{
		Suggestions: suggestions,
		Fallback:    fallback,
	}, nil
}

// buildSuggestionPrompt enumerates the available items so the model can
// refer to them by id.
func buildSuggestionPrompt(items []*entities.Item, req *dto.SuggestOutfitsRequest) string {
	var b strings.Builder

	b.WriteString("Propose exactly 3 outfit combinations from the following wardrobe items.\n")
	if req != nil && req.Occasion != "" {
		fmt.Fprintf(&b, "The outfits are for a %s occasion.\n", req.Occasion)
	}
	if req != nil && req.Season != "" {
		fmt.Fprintf(&b, "The outfits are for the %s season.\n", req.Season)
	}
	b.WriteString("Items:\n")

	for _, item := range items {
		fmt.Fprintf(&b, "- id=%s type=%s colors=%s occasion=%s season=%s name=%q\n",
			item.ID, item.Type, strings.Join(item.Colors, ","), item.Occasion, item.Season, item.Name)
	}

	b.WriteString("\nAnswer with a JSON array only, in this shape:\n")
	b.WriteString(`[{"name":"<short outfit name>","item_ids":["<id>","<id>"],"description":"<one sentence>","rationale":"<why these work together>"}]`)

	return b.String()
}

// rawSuggestion is the shape the model is asked to reply with.
type rawSuggestion struct {
	Name        string   `json:"name"`
	ItemIDs     []string `json:"item_ids"`
	Description string   `json:"description"`
	Rationale   string   `json:"rationale"`
}

// parseSuggestions extracts combinations from a model reply. Parsing is
// lenient: unknown ids are dropped, combinations that end up with no
// known item are discarded, and duplicate id sets collapse to one.
func parseSuggestions(reply string, byID map[uuid.UUID]*entities.Item) []*dto.OutfitSuggestion {
	raw := reply
	if arr := extractJSONArray(raw); arr != "" {
		raw = arr
	}

	var parsed []rawSuggestion
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		// Some models reply with bare id arrays instead of objects.
		var idLists [][]string
		if err := json.Unmarshal([]byte(raw), &idLists); err != nil {
			return nil
		}
		for _, ids := range idLists {
			parsed = append(parsed, rawSuggestion{ItemIDs: ids})
		}
	}

	seen := make(map[string]bool)
	var out []*dto.OutfitSuggestion

	for _, rs := range parsed {
		var members []*entities.Item
		for _, idStr := range rs.ItemIDs {
			id, err := uuid.Parse(strings.TrimSpace(idStr))
			if err != nil {
				continue
			}
			item, ok := byID[id]
			if !ok {
				continue
			}
			members = append(members, item)
		}
		if len(members) == 0 {
			continue
		}

		key := idSetKey(members)
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, &dto.OutfitSuggestion{
			Name:        strings.TrimSpace(rs.Name),
			Items:       dto.NewItemResponses(members),
			Description: strings.TrimSpace(rs.Description),
			Rationale:   strings.TrimSpace(rs.Rationale),
		})
	}

	return out
}

// backfillSuggestions tops the list up to suggestionCount with obvious
// rule-based combinations: a top with a bottom, a dress on its own, and
// outerwear layered over an existing pair.
func backfillSuggestions(existing []*dto.OutfitSuggestion, items []*entities.Item) []*dto.OutfitSuggestion {
	if len(existing) >= suggestionCount {
		return existing
	}

	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[suggestionKey(s)] = true
	}

	byType := make(map[entities.GarmentType][]*entities.Item)
	for _, item := range items {
		byType[item.Type] = append(byType[item.Type], item)
	}

	add := func(members []*entities.Item, name, description, rationale string) bool {
		key := idSetKey(members)
		if seen[key] {
			return false
		}
		seen[key] = true
		existing = append(existing, &dto.OutfitSuggestion{
			Name:        name,
			Items:       dto.NewItemResponses(members),
			Description: description,
			Rationale:   rationale,
		})
		return len(existing) >= suggestionCount
	}

	// Top and bottom pairs.
	for _, top := range byType[entities.GarmentTypeTop] {
		for _, bottom := range byType[entities.GarmentTypeBottom] {
			if len(existing) >= suggestionCount {
				return existing
			}
			if add([]*entities.Item{top, bottom},
				fmt.Sprintf("%s & %s", top.Name, bottom.Name),
				fmt.Sprintf("%s with %s", top.Name, bottom.Name),
				"A top and a bottom make a complete base outfit.") {
				return existing
			}
		}
	}

	// A dress stands alone.
	for _, dress := range byType[entities.GarmentTypeDress] {
		if len(existing) >= suggestionCount {
			return existing
		}
		if add([]*entities.Item{dress},
			dress.Name,
			fmt.Sprintf("The %s on its own", dress.Name),
			"A dress works as a full outfit by itself.") {
			return existing
		}
	}

	// Outerwear layered over a top and bottom.
	for _, outer := range byType[entities.GarmentTypeOuterwear] {
		for _, top := range byType[entities.GarmentTypeTop] {
			for _, bottom := range byType[entities.GarmentTypeBottom] {
				if len(existing) >= suggestionCount {
					return existing
				}
				if add([]*entities.Item{top, bottom, outer},
					fmt.Sprintf("%s & %s & %s", top.Name, bottom.Name, outer.Name),
					fmt.Sprintf("%s with %s under %s", top.Name, bottom.Name, outer.Name),
					"Outerwear adds a finished layer over a matching pair.") {
					return existing
				}
			}
		}
	}

	return existing
}

// idSetKey is an order-independent identity for a combination.
func idSetKey(members []*entities.Item) string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID.String())
	}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

func suggestionKey(s *dto.OutfitSuggestion) string {
	ids := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		ids = append(ids, item.ID.String())
	}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

// extractJSONArray pulls the first balanced [...] block out of a reply
// that wraps its JSON in prose or code fences.
func extractJSONArray(s string) string {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
