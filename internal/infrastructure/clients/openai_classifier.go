package clients

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/logger"
)

const classifierSystemPrompt = "You are a fashion assistant that analyzes clothing photographs. " +
	"Answer exactly in the format the user asks for, with no extra commentary."

// openaiClassifier implements ClassificationProvider against any
// OpenAI-compatible chat/vision endpoint.
type openaiClassifier struct {
	api         *openai.Client
	model       string
	maxRetries  int
	retryDelay  time.Duration
	temperature float32
	logger      logger.Logger
}

// NewOpenAIClassifier creates the provider from configuration. A custom
// base URL switches the upstream without touching any calling code.
func NewOpenAIClassifier(cfg *config.ClassifierConfig, log logger.Logger) ClassificationProvider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 3
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = time.Second
	}

	return &openaiClassifier{
		api:         openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxRetries:  maxRetries,
		retryDelay:  retryDelay,
		temperature: float32(cfg.Temperature),
		logger:      log,
	}
}

// ExtractColors names the dominant colors of the garment.
func (c *openaiClassifier) ExtractColors(ctx context.Context, image []byte, mimeType string) []string {
	reply, err := c.visionRequest(ctx, image, mimeType,
		`List the dominant colors of this clothing item as a JSON array of color names, e.g. ["Navy","White"]. Maximum 4 colors.`)
	if err != nil {
		c.logClassifyFailure("extract_colors", err)
		return DefaultColors
	}
	return ParseColors(reply)
}

// IdentifyType classifies the garment into the closed type enum.
func (c *openaiClassifier) IdentifyType(ctx context.Context, image []byte, mimeType string) entities.GarmentType {
	reply, err := c.visionRequest(ctx, image, mimeType,
		`Classify this clothing item. Answer with exactly one of: TOP, BOTTOM, DRESS, OUTERWEAR, SHOES, ACCESSORY, UNDERWEAR, SWIMWEAR, SPORTSWEAR.`)
	if err != nil {
		c.logClassifyFailure("identify_type", err)
		return DefaultGarmentType
	}
	return ParseGarmentType(reply)
}

// SuggestOccasion picks the occasion the garment suits best.
func (c *openaiClassifier) SuggestOccasion(ctx context.Context, image []byte, mimeType string) entities.Occasion {
	reply, err := c.visionRequest(ctx, image, mimeType,
		`Which occasion does this clothing item suit best? Answer with exactly one of: CASUAL, FORMAL, BUSINESS, SPORT, PARTY.`)
	if err != nil {
		c.logClassifyFailure("suggest_occasion", err)
		return DefaultOccasion
	}
	return ParseOccasion(reply)
}

// SuggestSeason picks the season the garment suits best.
func (c *openaiClassifier) SuggestSeason(ctx context.Context, image []byte, mimeType string) entities.Season {
	reply, err := c.visionRequest(ctx, image, mimeType,
		`Which season does this clothing item suit best? Answer with exactly one of: SPRING, SUMMER, FALL, WINTER, ALL_SEASON.`)
	if err != nil {
		c.logClassifyFailure("suggest_season", err)
		return DefaultSeason
	}
	return ParseSeason(reply)
}

// GenerateName produces a short descriptive item name.
func (c *openaiClassifier) GenerateName(ctx context.Context, image []byte, mimeType string) string {
	reply, err := c.visionRequest(ctx, image, mimeType,
		`Give this clothing item a short descriptive name of at most 5 words, e.g. "Blue Denim Jacket". Answer with the name only.`)
	if err != nil {
		c.logClassifyFailure("generate_name", err)
		return DefaultItemName
	}
	return ParseName(reply)
}

// Complete runs a plain text completion. Unlike the classify operations
// this surfaces errors, so the suggestion engine can flag its fallback.
func (c *openaiClassifier) Complete(ctx context.Context, prompt string) (string, error) {
	return c.chatWithRetry(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifierSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
}

// visionRequest sends one image question.
func (c *openaiClassifier) visionRequest(ctx context.Context, image []byte, mimeType, question string) (string, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	return c.chatWithRetry(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifierSystemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: question},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURI,
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
	})
}

// chatWithRetry sends the request with exponential backoff. Only 5xx, 429
// and transport errors are retried; other 4xx responses go straight back
// to the caller.
func (c *openaiClassifier) chatWithRetry(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	var lastErr error
	delay := c.retryDelay

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
				return "", errors.New("empty completion response")
			}
			return resp.Choices[0].Message.Content, nil
		}

		lastErr = err
		if !isRetryable(err) {
			return "", err
		}

		if attempt < c.maxRetries {
			c.logger.WithFields(map[string]interface{}{
				"attempt": attempt,
				"delay":   delay.String(),
				"error":   err.Error(),
			}).Warn("Classifier request failed, retrying")

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return "", lastErr
}

// isRetryable reports whether the error is a 5xx/429 API error or a
// transport-level failure.
func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}

	// Anything else is a generic transport failure.
	return true
}

func (c *openaiClassifier) logClassifyFailure(operation string, err error) {
	c.logger.WithFields(map[string]interface{}{
		"operation": operation,
		"error":     err.Error(),
	}).Warn("Classification failed, using safe default")
}
