package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/imaging"
	"wardrobe-api/internal/infrastructure/logger"
)

type itemServiceFixture struct {
	itemRepo    *MockItemRepository
	historyRepo *MockItemHistoryRepository
	auditRepo   *MockAuditLogRepository
	provider    *MockClassificationProvider
	store       *memoryStore
	service     ItemService
}

func newItemServiceFixture() *itemServiceFixture {
	f := &itemServiceFixture{
		itemRepo:    &MockItemRepository{},
		historyRepo: &MockItemHistoryRepository{},
		auditRepo:   &MockAuditLogRepository{},
		provider:    &MockClassificationProvider{},
		store:       newMemoryStore(),
	}

	normalizer := imaging.NewNormalizer(config.ImageConfig{
		MaxDimension:   1200,
		ThumbDimension: 400,
		Quality:        85,
		ThumbQuality:   70,
	}, logger.NewNopLogger())

	f.service = NewItemService(
		f.itemRepo, f.historyRepo, f.auditRepo,
		normalizer, f.store, f.provider,
		logger.NewNopLogger(),
	)
	return f
}

func (f *itemServiceFixture) stubClassification(colors []string, t entities.GarmentType, o entities.Occasion, s entities.Season, name string) {
	f.provider.On("ExtractColors", mock.Anything, mock.Anything, mock.Anything).Return(colors)
	f.provider.On("IdentifyType", mock.Anything, mock.Anything, mock.Anything).Return(t)
	f.provider.On("SuggestOccasion", mock.Anything, mock.Anything, mock.Anything).Return(o)
	f.provider.On("SuggestSeason", mock.Anything, mock.Anything, mock.Anything).Return(s)
	f.provider.On("GenerateName", mock.Anything, mock.Anything, mock.Anything).Return(name)
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestUploadItemClassifiesAndPersists(t *testing.T) {
	f := newItemServiceFixture()
	userID := uuid.New()

	f.stubClassification([]string{"Blue"}, entities.GarmentTypeOuterwear,
		entities.OccasionCasual, entities.SeasonWinter, "Blue Parka")
	f.itemRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.service.UploadItem(context.Background(), userID,
		"parka.jpg", "image/jpeg", testJPEG(t, 640, 480), &dto.UploadItemRequest{}, "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, "Blue Parka", resp.Name)
	assert.Equal(t, "OUTERWEAR", resp.Type)
	assert.Equal(t, "WINTER", resp.Season)
	assert.Equal(t, []string{"Blue"}, resp.Colors)
	assert.Equal(t, "IN_WARDROBE", resp.LaundryStatus)
	assert.Equal(t, 0, resp.UsageCount)
	assert.False(t, resp.IsFavorite)
	assert.NotEmpty(t, resp.ImageURL)
	assert.NotEmpty(t, resp.ThumbnailURL)
	assert.Len(t, f.store.objects, 2)

	f.historyRepo.AssertCalled(t, "Append", mock.Anything, mock.MatchedBy(func(e *entities.ItemHistory) bool {
		return e.Action == entities.HistoryActionCreated && e.UserID == userID
	}))
	f.auditRepo.AssertCalled(t, "Append", mock.Anything, mock.MatchedBy(func(e *entities.AuditLog) bool {
		return e.Action == entities.AuditActionUploadItem && e.SourceIP == "10.0.0.1"
	}))
}

func TestUploadItemOverridesBeatClassifier(t *testing.T) {
	f := newItemServiceFixture()

	f.stubClassification([]string{"Unknown"}, entities.GarmentTypeTop,
		entities.OccasionCasual, entities.SeasonAllSeason, "Clothing Item")
	f.itemRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.service.UploadItem(context.Background(), uuid.New(),
		"dress.jpg", "image/jpeg", testJPEG(t, 320, 240), &dto.UploadItemRequest{
			Name:     "Summer Dress",
			Type:     "DRESS",
			Occasion: "PARTY",
			Season:   "SUMMER",
			Colors:   []string{"Yellow"},
		}, "")

	require.NoError(t, err)
	assert.Equal(t, "Summer Dress", resp.Name)
	assert.Equal(t, "DRESS", resp.Type)
	assert.Equal(t, "SUMMER", resp.Season)
	assert.Equal(t, []string{"Yellow"}, resp.Colors)
	// The single-occasion override also lands in the occasions list.
	assert.Equal(t, "PARTY", resp.Occasion)
	assert.Contains(t, resp.Occasions, "PARTY")
}

func TestUploadItemCorruptImageStillCompletes(t *testing.T) {
	f := newItemServiceFixture()

	f.stubClassification([]string{"Unknown"}, entities.GarmentTypeTop,
		entities.OccasionCasual, entities.SeasonAllSeason, "Clothing Item")
	f.itemRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.service.UploadItem(context.Background(), uuid.New(),
		"broken.png", "image/png", []byte("not an image at all"), nil, "")

	require.NoError(t, err)
	assert.Equal(t, "Clothing Item", resp.Name)
	assert.Equal(t, "TOP", resp.Type)
	assert.Equal(t, "ALL_SEASON", resp.Season)
	assert.Equal(t, []string{"Unknown"}, resp.Colors)
	assert.Len(t, f.store.objects, 2)
}

func TestUploadItemRejectsNonImage(t *testing.T) {
	f := newItemServiceFixture()

	_, err := f.service.UploadItem(context.Background(), uuid.New(),
		"notes.txt", "text/plain", []byte("hello"), nil, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrValidation)
	f.itemRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadItemRejectsInvalidOverride(t *testing.T) {
	f := newItemServiceFixture()

	_, err := f.service.UploadItem(context.Background(), uuid.New(),
		"top.jpg", "image/jpeg", testJPEG(t, 100, 100), &dto.UploadItemRequest{Type: "HAT"}, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestLaundryActionsFollowStateMachine(t *testing.T) {
	f := newItemServiceFixture()
	userID := uuid.New()
	item := &entities.Item{
		ID:            uuid.New(),
		UserID:        userID,
		LaundryStatus: entities.LaundryStatusInWardrobe,
	}

	f.itemRepo.On("GetByID", mock.Anything, item.ID).Return(item, nil)
	f.itemRepo.On("Update", mock.Anything, item).Return(nil)
	f.historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	ctx := context.Background()

	resp, err := f.service.ApplyLaundryAction(ctx, userID, item.ID, dto.LaundryActionMarkLaundry)
	require.NoError(t, err)
	assert.Equal(t, "IN_LAUNDRY", resp.LaundryStatus)
	assert.Equal(t, 1, resp.UsageCount)

	// Re-marking an item already in the laundry changes nothing, but the
	// action is still recorded.
	resp, err = f.service.ApplyLaundryAction(ctx, userID, item.ID, dto.LaundryActionMarkLaundry)
	require.NoError(t, err)
	assert.Equal(t, "IN_LAUNDRY", resp.LaundryStatus)
	assert.Equal(t, 1, resp.UsageCount)

	resp, err = f.service.ApplyLaundryAction(ctx, userID, item.ID, dto.LaundryActionMarkClean)
	require.NoError(t, err)
	assert.Equal(t, "CLEAN", resp.LaundryStatus)
	assert.Equal(t, 1, resp.UsageCount)

	resp, err = f.service.ApplyLaundryAction(ctx, userID, item.ID, dto.LaundryActionMarkWorn)
	require.NoError(t, err)
	assert.Equal(t, "IN_WARDROBE", resp.LaundryStatus)
	assert.Equal(t, 2, resp.UsageCount)

	resp, err = f.service.ApplyLaundryAction(ctx, userID, item.ID, dto.LaundryActionMarkAway)
	require.NoError(t, err)
	assert.Equal(t, "AWAY", resp.LaundryStatus)
	assert.Equal(t, 2, resp.UsageCount)

	f.historyRepo.AssertNumberOfCalls(t, "Append", 5)
}

func TestLaundryActionsCleanAndAwayAreDistinguishable(t *testing.T) {
	f := newItemServiceFixture()
	userID := uuid.New()
	item := &entities.Item{
		ID:            uuid.New(),
		UserID:        userID,
		LaundryStatus: entities.LaundryStatusInLaundry,
	}

	var entries []*entities.ItemHistory
	f.itemRepo.On("GetByID", mock.Anything, item.ID).Return(item, nil)
	f.itemRepo.On("Update", mock.Anything, item).Return(nil)
	f.historyRepo.On("Append", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			entries = append(entries, args.Get(1).(*entities.ItemHistory))
		}).Return(nil)

	ctx := context.Background()

	_, err := f.service.ApplyLaundryAction(ctx, userID, item.ID, dto.LaundryActionMarkClean)
	require.NoError(t, err)
	_, err = f.service.ApplyLaundryAction(ctx, userID, item.ID, dto.LaundryActionMarkAway)
	require.NoError(t, err)

	// Both actions record RETURNED; the note says which one happened.
	require.Len(t, entries, 2)
	assert.Equal(t, entities.HistoryActionReturned, entries[0].Action)
	assert.Equal(t, entities.HistoryActionReturned, entries[1].Action)
	assert.Equal(t, "marked clean", entries[0].Note)
	assert.Equal(t, "stored away", entries[1].Note)
}

func TestLaundryActionUnknownAction(t *testing.T) {
	f := newItemServiceFixture()
	userID := uuid.New()
	item := &entities.Item{ID: uuid.New(), UserID: userID}

	f.itemRepo.On("GetByID", mock.Anything, item.ID).Return(item, nil)

	_, err := f.service.ApplyLaundryAction(context.Background(), userID, item.ID, "fold")
	assert.ErrorIs(t, err, entities.ErrValidation)
}

func TestOwnershipMismatchIsForbidden(t *testing.T) {
	f := newItemServiceFixture()
	owner := uuid.New()
	intruder := uuid.New()
	item := &entities.Item{ID: uuid.New(), UserID: owner}

	f.itemRepo.On("GetByID", mock.Anything, item.ID).Return(item, nil)

	_, err := f.service.GetItem(context.Background(), intruder, item.ID)
	assert.ErrorIs(t, err, entities.ErrForbidden)

	err = f.service.DeleteItem(context.Background(), intruder, item.ID, "")
	assert.ErrorIs(t, err, entities.ErrForbidden)
	f.itemRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestMissingItemIsNotFound(t *testing.T) {
	f := newItemServiceFixture()
	id := uuid.New()

	f.itemRepo.On("GetByID", mock.Anything, id).Return(nil, entities.ErrItemNotFound)

	_, err := f.service.GetItem(context.Background(), uuid.New(), id)
	assert.ErrorIs(t, err, entities.ErrItemNotFound)
}

func TestSetFavoriteRecordsHistoryOnlyOnChange(t *testing.T) {
	f := newItemServiceFixture()
	userID := uuid.New()
	item := &entities.Item{ID: uuid.New(), UserID: userID}

	f.itemRepo.On("GetByID", mock.Anything, item.ID).Return(item, nil)
	f.itemRepo.On("Update", mock.Anything, item).Return(nil)
	f.historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	ctx := context.Background()

	resp, err := f.service.SetFavorite(ctx, userID, item.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.IsFavorite)

	// Same value again is a no-op.
	_, err = f.service.SetFavorite(ctx, userID, item.ID, true)
	require.NoError(t, err)

	f.itemRepo.AssertNumberOfCalls(t, "Update", 1)
	f.historyRepo.AssertNumberOfCalls(t, "Append", 1)
}

func TestDeleteItemRemovesStoredObjects(t *testing.T) {
	f := newItemServiceFixture()
	userID := uuid.New()

	f.store.objects["items/2026/08/30/abc.jpg"] = []byte("img")
	f.store.objects["items/2026/08/30/abc_thumb.jpg"] = []byte("thumb")

	item := &entities.Item{
		ID:           uuid.New(),
		UserID:       userID,
		ImageURL:     "http://store.test/items/2026/08/30/abc.jpg",
		ThumbnailURL: "http://store.test/items/2026/08/30/abc_thumb.jpg",
	}

	f.itemRepo.On("GetByID", mock.Anything, item.ID).Return(item, nil)
	f.itemRepo.On("Delete", mock.Anything, item.ID).Return(nil)
	f.historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	f.auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.service.DeleteItem(context.Background(), userID, item.ID, "10.0.0.2"))
	assert.Empty(t, f.store.objects)

	f.auditRepo.AssertCalled(t, "Append", mock.Anything, mock.MatchedBy(func(e *entities.AuditLog) bool {
		return e.Action == entities.AuditActionDeleteItem
	}))
}

func TestListItemsValidatesFilters(t *testing.T) {
	f := newItemServiceFixture()

	_, _, err := f.service.ListItems(context.Background(), uuid.New(), &dto.ListItemsRequest{Type: "HAT"})
	assert.ErrorIs(t, err, entities.ErrValidation)

	_, _, err = f.service.ListItems(context.Background(), uuid.New(), &dto.ListItemsRequest{LaundryStatus: "WET"})
	assert.ErrorIs(t, err, entities.ErrValidation)
}
