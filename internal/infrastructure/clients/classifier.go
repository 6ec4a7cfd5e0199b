package clients

import (
	"context"
	"sync"

	"wardrobe-api/internal/domain/entities"
)

// Safe defaults returned whenever a classification call fails or its
// output cannot be parsed. Callers can always rely on getting a usable
// value, never an error.
const (
	DefaultItemName = "Clothing Item"
)

var (
	DefaultGarmentType = entities.GarmentTypeTop
	DefaultOccasion    = entities.OccasionCasual
	DefaultSeason      = entities.SeasonAllSeason
	DefaultColors      = []string{"Unknown"}
)

// ClassificationProvider abstracts the remote vision/LLM service used to
// infer item attributes from an image. The five classify operations never
// return an error: on any transport failure, non-2xx response or
// unparseable output they return the documented safe default. Complete is
// the general text primitive and does surface errors, because the outfit
// suggestion engine needs to know when to switch to its rule-based
// fallback.
type ClassificationProvider interface {
	// ExtractColors names the dominant colors of the garment.
	ExtractColors(ctx context.Context, image []byte, mimeType string) []string

	// IdentifyType classifies the garment into a closed type enum.
	IdentifyType(ctx context.Context, image []byte, mimeType string) entities.GarmentType

	// SuggestOccasion picks the occasion the garment suits best.
	SuggestOccasion(ctx context.Context, image []byte, mimeType string) entities.Occasion

	// SuggestSeason picks the season the garment suits best.
	SuggestSeason(ctx context.Context, image []byte, mimeType string) entities.Season

	// GenerateName produces a short descriptive item name.
	GenerateName(ctx context.Context, image []byte, mimeType string) string

	// Complete runs a plain text completion.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Classification aggregates the five per-image analyses.
type Classification struct {
	Colors   []string
	Type     entities.GarmentType
	Occasion entities.Occasion
	Season   entities.Season
	Name     string
}

// ClassifyImage runs all five analyses concurrently and waits for every
// one of them. The calls are independent; a failing call only affects its
// own field, which carries the safe default in that case.
func ClassifyImage(ctx context.Context, provider ClassificationProvider, image []byte, mimeType string) *Classification {
	result := &Classification{}

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		result.Colors = provider.ExtractColors(ctx, image, mimeType)
	}()
	go func() {
		defer wg.Done()
		result.Type = provider.IdentifyType(ctx, image, mimeType)
	}()
	go func() {
		defer wg.Done()
		result.Occasion = provider.SuggestOccasion(ctx, image, mimeType)
	}()
	go func() {
		defer wg.Done()
		result.Season = provider.SuggestSeason(ctx, image, mimeType)
	}()
	go func() {
		defer wg.Done()
		result.Name = provider.GenerateName(ctx, image, mimeType)
	}()

	wg.Wait()
	return result
}
