package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/logger"
)

// fakeBackend is a minimal OpenAI-compatible chat completion server.
type fakeBackend struct {
	requests int64
	handler  func(calls int64, w http.ResponseWriter, r *http.Request)
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	calls := atomic.AddInt64(&f.requests, 1)
	f.handler(calls, w, r)
}

func (f *fakeBackend) calls() int64 {
	return atomic.LoadInt64(&f.requests)
}

func writeCompletion(w http.ResponseWriter, content string) {
	resp := map[string]interface{}{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":{"message":%q,"type":"test_error"}}`, message)
}

func newTestClassifier(t *testing.T, backend *fakeBackend, maxRetries int) ClassificationProvider {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	return NewOpenAIClassifier(&config.ClassifierConfig{
		APIKey:     "test-key",
		BaseURL:    server.URL + "/v1",
		Model:      "gpt-4o-mini",
		MaxRetries: maxRetries,
		RetryDelay: time.Millisecond,
	}, logger.NewNopLogger())
}

func TestClassifierParsesReplies(t *testing.T) {
	backend := &fakeBackend{handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content json.RawMessage `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Messages)

		question := string(req.Messages[len(req.Messages)-1].Content)
		switch {
		case contains(question, "colors"):
			writeCompletion(w, `["Navy","White"]`)
		case contains(question, "TOP, BOTTOM"):
			writeCompletion(w, "DRESS")
		case contains(question, "occasion"):
			writeCompletion(w, "FORMAL")
		case contains(question, "season"):
			writeCompletion(w, "SUMMER")
		default:
			writeCompletion(w, "Red Evening Dress")
		}
	}}

	provider := newTestClassifier(t, backend, 3)
	ctx := context.Background()
	image := []byte("fake-image-bytes")

	assert.Equal(t, []string{"Navy", "White"}, provider.ExtractColors(ctx, image, "image/jpeg"))
	assert.Equal(t, entities.GarmentTypeDress, provider.IdentifyType(ctx, image, "image/jpeg"))
	assert.Equal(t, entities.OccasionFormal, provider.SuggestOccasion(ctx, image, "image/jpeg"))
	assert.Equal(t, entities.SeasonSummer, provider.SuggestSeason(ctx, image, "image/jpeg"))
	assert.Equal(t, "Red Evening Dress", provider.GenerateName(ctx, image, "image/jpeg"))
}

func TestClassifierRetriesServerErrors(t *testing.T) {
	backend := &fakeBackend{handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
		if calls < 3 {
			writeAPIError(w, http.StatusInternalServerError, "upstream exploded")
			return
		}
		writeCompletion(w, "TOP")
	}}

	provider := newTestClassifier(t, backend, 3)
	got := provider.IdentifyType(context.Background(), []byte("img"), "image/jpeg")

	assert.Equal(t, entities.GarmentTypeTop, got)
	assert.EqualValues(t, 3, backend.calls())
}

func TestClassifierRetriesRateLimits(t *testing.T) {
	backend := &fakeBackend{handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
		if calls == 1 {
			writeAPIError(w, http.StatusTooManyRequests, "slow down")
			return
		}
		writeCompletion(w, "WINTER")
	}}

	provider := newTestClassifier(t, backend, 3)
	got := provider.SuggestSeason(context.Background(), []byte("img"), "image/jpeg")

	assert.Equal(t, entities.SeasonWinter, got)
	assert.EqualValues(t, 2, backend.calls())
}

func TestClassifierNoRetryOnBadRequest(t *testing.T) {
	backend := &fakeBackend{handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusBadRequest, "invalid request")
	}}

	provider := newTestClassifier(t, backend, 3)
	got := provider.IdentifyType(context.Background(), []byte("img"), "image/jpeg")

	// A 4xx is terminal, so the safe default applies after one call.
	assert.Equal(t, DefaultGarmentType, got)
	assert.EqualValues(t, 1, backend.calls())
}

func TestClassifierSafeDefaultsAfterExhaustedRetries(t *testing.T) {
	backend := &fakeBackend{handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusServiceUnavailable, "still down")
	}}

	provider := newTestClassifier(t, backend, 2)
	ctx := context.Background()
	image := []byte("img")

	assert.Equal(t, DefaultColors, provider.ExtractColors(ctx, image, "image/jpeg"))
	assert.Equal(t, DefaultGarmentType, provider.IdentifyType(ctx, image, "image/jpeg"))
	assert.Equal(t, DefaultOccasion, provider.SuggestOccasion(ctx, image, "image/jpeg"))
	assert.Equal(t, DefaultSeason, provider.SuggestSeason(ctx, image, "image/jpeg"))
	assert.Equal(t, DefaultItemName, provider.GenerateName(ctx, image, "image/jpeg"))
}

func TestCompleteSurfacesErrors(t *testing.T) {
	backend := &fakeBackend{handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusInternalServerError, "boom")
	}}

	provider := newTestClassifier(t, backend, 2)
	_, err := provider.Complete(context.Background(), "suggest an outfit")

	require.Error(t, err)
	assert.EqualValues(t, 2, backend.calls())
}

func TestClassifyImageCombinesAllCalls(t *testing.T) {
	backend := &fakeBackend{handler: func(calls int64, w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content json.RawMessage `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		question := ""
		if len(req.Messages) > 0 {
			question = string(req.Messages[len(req.Messages)-1].Content)
		}

		switch {
		case contains(question, "colors"):
			writeCompletion(w, `["Black"]`)
		case contains(question, "TOP, BOTTOM"):
			writeCompletion(w, "OUTERWEAR")
		case contains(question, "occasion"):
			writeCompletion(w, "BUSINESS")
		case contains(question, "season"):
			writeAPIError(w, http.StatusInternalServerError, "one call fails")
		default:
			writeCompletion(w, "Charcoal Overcoat")
		}
	}}

	provider := newTestClassifier(t, backend, 1)
	result := ClassifyImage(context.Background(), provider, []byte("img"), "image/jpeg")

	require.NotNil(t, result)
	assert.Equal(t, []string{"Black"}, result.Colors)
	assert.Equal(t, entities.GarmentTypeOuterwear, result.Type)
	assert.Equal(t, entities.OccasionBusiness, result.Occasion)
	// The failed season call degrades to its default without affecting
	// the other four results.
	assert.Equal(t, DefaultSeason, result.Season)
	assert.Equal(t, "Charcoal Overcoat", result.Name)
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}
