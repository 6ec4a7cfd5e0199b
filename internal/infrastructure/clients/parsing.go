package clients

import (
	"encoding/json"
	"strings"

	"wardrobe-api/internal/domain/entities"
)

// Lenient parsing of model replies. Strategy per field: strict JSON first,
// then keyword matching against the known enum values, then the safe
// default. Models wrap answers in prose and markdown fences often enough
// that none of this is optional.

// ParseGarmentType extracts a garment type from a model reply.
func ParseGarmentType(response string) entities.GarmentType {
	if v, ok := parseEnumReply(response, "type"); ok {
		if entities.IsValidGarmentType(v) {
			return entities.GarmentType(v)
		}
	}

	upper := strings.ToUpper(response)
	for _, t := range entities.AllGarmentTypes {
		if strings.Contains(upper, string(t)) {
			return t
		}
	}

	return DefaultGarmentType
}

// ParseOccasion extracts an occasion from a model reply.
func ParseOccasion(response string) entities.Occasion {
	if v, ok := parseEnumReply(response, "occasion"); ok {
		if entities.IsValidOccasion(v) {
			return entities.Occasion(v)
		}
	}

	upper := strings.ToUpper(response)
	for _, o := range entities.AllOccasions {
		if strings.Contains(upper, string(o)) {
			return o
		}
	}

	return DefaultOccasion
}

// ParseSeason extracts a season from a model reply.
func ParseSeason(response string) entities.Season {
	if v, ok := parseEnumReply(response, "season"); ok {
		if entities.IsValidSeason(v) {
			return entities.Season(v)
		}
	}

	upper := strings.ToUpper(response)
	// ALL_SEASON first: it would otherwise never win against the
	// individual season substrings models like to enumerate alongside it.
	if strings.Contains(upper, "ALL_SEASON") || strings.Contains(upper, "ALL SEASON") {
		return entities.SeasonAllSeason
	}
	for _, s := range entities.AllSeasons {
		if strings.Contains(upper, string(s)) {
			return s
		}
	}

	return DefaultSeason
}

// ParseColors extracts a color name list from a model reply.
func ParseColors(response string) []string {
	// Strict path: a JSON array, possibly embedded in prose.
	if arr := extractJSONArray(response); arr != "" {
		var colors []string
		if err := json.Unmarshal([]byte(arr), &colors); err == nil {
			if cleaned := cleanStrings(colors); len(cleaned) > 0 {
				return cleaned
			}
		}
	}

	// Fallback: comma-separated words.
	parts := strings.Split(stripFences(response), ",")
	if cleaned := cleanStrings(parts); len(cleaned) > 0 && len(cleaned) <= 8 {
		return cleaned
	}

	return DefaultColors
}

// ParseName extracts a short item name from a model reply.
func ParseName(response string) string {
	name := stripFences(response)
	if idx := strings.IndexAny(name, "\r\n"); idx >= 0 {
		name = name[:idx]
	}
	name = strings.Trim(strings.TrimSpace(name), `"'`)

	if name == "" {
		return DefaultItemName
	}
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}

// parseEnumReply handles both {"key":"VALUE"} objects and bare "VALUE"
// strings.
func parseEnumReply(response, key string) (string, bool) {
	body := stripFences(response)

	var obj map[string]string
	if err := json.Unmarshal([]byte(body), &obj); err == nil {
		if v, ok := obj[key]; ok {
			return strings.ToUpper(strings.TrimSpace(v)), true
		}
	}

	var s string
	if err := json.Unmarshal([]byte(body), &s); err == nil {
		return strings.ToUpper(strings.TrimSpace(s)), true
	}

	trimmed := strings.ToUpper(strings.TrimSpace(body))
	if trimmed != "" && !strings.ContainsAny(trimmed, " \n{}[]") {
		return trimmed, true
	}

	return "", false
}

// extractJSONArray returns the first top-level JSON array substring.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
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

// stripFences removes markdown code fences around a reply.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.Trim(strings.TrimSpace(s), `"'.`)
		if s == "" || len(s) > 40 {
			continue
		}
		out = append(out, s)
	}
	return out
}
