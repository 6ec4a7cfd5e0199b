package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/domain/repositories"
	"wardrobe-api/internal/infrastructure/clients"
	"wardrobe-api/internal/infrastructure/imaging"
	"wardrobe-api/internal/infrastructure/logger"
	"wardrobe-api/internal/infrastructure/storage"
	"wardrobe-api/internal/utils"
)

// ItemService implements the wardrobe item lifecycle: upload with image
// processing and AI classification, metadata edits, laundry transitions
// and deletion. Every operation is scoped to the calling owner.
type ItemService interface {
	// UploadItem runs the full ingestion pipeline for one image.
	UploadItem(ctx context.Context, userID uuid.UUID, filename, mimeType string, image []byte, req *dto.UploadItemRequest, sourceIP string) (*dto.ItemResponse, error)

	// GetItem fetches one owned item.
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (*dto.ItemResponse, error)

	// ListItems returns the owner's wardrobe page.
	ListItems(ctx context.Context, userID uuid.UUID, req *dto.ListItemsRequest) ([]*dto.ItemResponse, int64, error)

	// UpdateItem edits item metadata.
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req *dto.UpdateItemRequest) (*dto.ItemResponse, error)

	// DeleteItem removes an item and its stored images.
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID, sourceIP string) error

	// ApplyLaundryAction runs one laundry state transition.
	ApplyLaundryAction(ctx context.Context, userID, itemID uuid.UUID, action string) (*dto.ItemResponse, error)

	// SetFavorite sets the favorite flag.
	SetFavorite(ctx context.Context, userID, itemID uuid.UUID, favorite bool) (*dto.ItemResponse, error)

	// GetItemHistory returns an item's event log page.
	GetItemHistory(ctx context.Context, userID, itemID uuid.UUID, limit, offset int) ([]*dto.ItemHistoryResponse, int64, error)
}

type itemServiceImpl struct {
	itemRepo    repositories.ItemRepository
	historyRepo repositories.ItemHistoryRepository
	auditRepo   repositories.AuditLogRepository
	normalizer  *imaging.Normalizer
	store       storage.ObjectStore
	classifier  clients.ClassificationProvider
	logger      logger.Logger
}

// NewItemService creates the item service.
func NewItemService(
	itemRepo repositories.ItemRepository,
	historyRepo repositories.ItemHistoryRepository,
	auditRepo repositories.AuditLogRepository,
	normalizer *imaging.Normalizer,
	store storage.ObjectStore,
	classifier clients.ClassificationProvider,
	log logger.Logger,
) ItemService {
	return &itemServiceImpl{
		itemRepo:    itemRepo,
		historyRepo: historyRepo,
		auditRepo:   auditRepo,
		normalizer:  normalizer,
		store:       store,
		classifier:  classifier,
		logger:      log,
	}
}

func (s *itemServiceImpl) UploadItem(ctx context.Context, userID uuid.UUID, filename, mimeType string, image []byte, req *dto.UploadItemRequest, sourceIP string) (*dto.ItemResponse, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", entities.ErrValidation)
	}
	if mimeType == "" {
		mimeType = utils.InferMimeType(filename)
	}
	if !utils.IsImageFile(mimeType) {
		return nil, fmt.Errorf("%w: unsupported content type %q", entities.ErrValidation, mimeType)
	}
	if err := validateOverrides(req); err != nil {
		return nil, err
	}

	filename = utils.SanitizeFileName(filename)

	// Normalization fails open: a corrupt image is stored as-is and the
	// upload still completes.
	primary, thumb := s.normalizer.Normalize(image, mimeType)

	primaryKey := utils.GenerateObjectKey(storedName(filename, primary.MimeType), "items")
	thumbKey := thumbObjectKey(primaryKey, thumb.MimeType)

	primaryPut, err := s.store.Put(ctx, primaryKey, primary.MimeType, bytes.NewReader(primary.Data))
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	thumbPut, err := s.store.Put(ctx, thumbKey, thumb.MimeType, bytes.NewReader(thumb.Data))
	if err != nil {
		// Best effort cleanup of the primary object.
		if delErr := s.store.Delete(ctx, primaryPut.Key); delErr != nil {
			s.logger.WithField("key", primaryPut.Key).Warn("Failed to clean up image after thumbnail failure")
		}
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}

	// Classification degrades to safe defaults internally and never
	// fails the upload.
	classification := clients.ClassifyImage(ctx, s.classifier, primary.Data, primary.MimeType)

	item := &entities.Item{
		UserID:        userID,
		Name:          classification.Name,
		Colors:        entities.StringList(classification.Colors),
		Type:          classification.Type,
		Occasion:      classification.Occasion,
		Occasions:     entities.StringList{string(classification.Occasion)},
		Season:        classification.Season,
		Filename:      filename,
		ImageURL:      primaryPut.URL,
		ThumbnailURL:  thumbPut.URL,
		LaundryStatus: entities.LaundryStatusInWardrobe,
	}
	applyOverrides(item, req)

	if err := s.itemRepo.Create(ctx, item); err != nil {
		if delErr := s.store.Delete(ctx, primaryPut.Key); delErr != nil {
			s.logger.WithField("key", primaryPut.Key).Warn("Failed to clean up image after create failure")
		}
		if delErr := s.store.Delete(ctx, thumbPut.Key); delErr != nil {
			s.logger.WithField("key", thumbPut.Key).Warn("Failed to clean up thumbnail after create failure")
		}
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.appendHistory(ctx, item, entities.HistoryActionCreated, "uploaded")
	s.appendAudit(ctx, userID, entities.AuditActionUploadItem, map[string]interface{}{
		"item_id":  item.ID,
		"filename": item.Filename,
		"type":     item.Type,
	}, sourceIP)

	s.logger.WithFields(map[string]interface{}{
		"item_id": item.ID,
		"user_id": userID,
		"type":    item.Type,
	}).Info("Item uploaded")

	return dto.NewItemResponse(item), nil
}

func (s *itemServiceImpl) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*dto.ItemResponse, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	return dto.NewItemResponse(item), nil
}

func (s *itemServiceImpl) ListItems(ctx context.Context, userID uuid.UUID, req *dto.ListItemsRequest) ([]*dto.ItemResponse, int64, error) {
	filters := &repositories.ItemFilters{Favorite: req.Favorite}

	if req.Type != "" {
		if !entities.IsValidGarmentType(req.Type) {
			return nil, 0, fmt.Errorf("%w: unknown type %q", entities.ErrValidation, req.Type)
		}
		t := entities.GarmentType(req.Type)
		filters.Type = &t
	}
	if req.Season != "" {
		if !entities.IsValidSeason(req.Season) {
			return nil, 0, fmt.Errorf("%w: unknown season %q", entities.ErrValidation, req.Season)
		}
		se := entities.Season(req.Season)
		filters.Season = &se
	}
	if req.LaundryStatus != "" {
		if !entities.IsValidLaundryStatus(req.LaundryStatus) {
			return nil, 0, fmt.Errorf("%w: unknown laundry status %q", entities.ErrValidation, req.LaundryStatus)
		}
		ls := entities.LaundryStatus(req.LaundryStatus)
		filters.LaundryStatus = &ls
	}

	items, total, err := s.itemRepo.ListByUser(ctx, userID, filters, req.Limit, req.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	return dto.NewItemResponses(items), total, nil
}

func (s *itemServiceImpl) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req *dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil && !entities.IsValidGarmentType(*req.Type) {
		return nil, fmt.Errorf("%w: unknown type %q", entities.ErrValidation, *req.Type)
	}
	if req.Occasion != nil && !entities.IsValidOccasion(*req.Occasion) {
		return nil, fmt.Errorf("%w: unknown occasion %q", entities.ErrValidation, *req.Occasion)
	}
	if req.Occasions != nil {
		for _, o := range *req.Occasions {
			if !entities.IsValidOccasion(o) {
				return nil, fmt.Errorf("%w: unknown occasion %q", entities.ErrValidation, o)
			}
		}
	}
	if req.Season != nil && !entities.IsValidSeason(*req.Season) {
		return nil, fmt.Errorf("%w: unknown season %q", entities.ErrValidation, *req.Season)
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		item.Type = entities.GarmentType(*req.Type)
	}
	if req.Occasion != nil {
		item.Occasion = entities.Occasion(*req.Occasion)
	}
	if req.Occasions != nil {
		item.Occasions = entities.StringList(*req.Occasions)
	}
	if req.Season != nil {
		item.Season = entities.Season(*req.Season)
	}
	if req.Colors != nil {
		item.Colors = entities.StringList(*req.Colors)
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.appendHistory(ctx, item, entities.HistoryActionEdited, "")

	return dto.NewItemResponse(item), nil
}

func (s *itemServiceImpl) DeleteItem(ctx context.Context, userID, itemID uuid.UUID, sourceIP string) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	// Stored objects are removed best effort after the record is gone.
	for _, url := range []string{item.ImageURL, item.ThumbnailURL} {
		key := objectKeyFromURL(url)
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"item_id": item.ID,
				"key":     key,
				"error":   err.Error(),
			}).Warn("Failed to delete stored object")
		}
	}

	s.appendHistory(ctx, item, entities.HistoryActionDeleted, "")
	s.appendAudit(ctx, userID, entities.AuditActionDeleteItem, map[string]interface{}{
		"item_id": item.ID,
		"name":    item.Name,
	}, sourceIP)

	return nil
}

func (s *itemServiceImpl) ApplyLaundryAction(ctx context.Context, userID, itemID uuid.UUID, action string) (*dto.ItemResponse, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	var (
		historyAction entities.HistoryAction
		note          string
	)
	switch action {
	case dto.LaundryActionMarkWorn:
		item.MarkWorn()
		historyAction = entities.HistoryActionWorn
	case dto.LaundryActionMarkLaundry:
		item.MarkLaundry()
		historyAction = entities.HistoryActionMarkedLaundry
	case dto.LaundryActionMarkClean:
		item.MarkClean()
		historyAction = entities.HistoryActionReturned
		note = "marked clean"
	case dto.LaundryActionMarkAway:
		item.MarkAway()
		historyAction = entities.HistoryActionReturned
		note = "stored away"
	default:
		return nil, fmt.Errorf("%w: unknown laundry action %q", entities.ErrValidation, action)
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	// History records the action even when the transition was a state
	// no-op, so the event log reflects what the user did. Clean and away
	// share the RETURNED action, so the note tells them apart.
	s.appendHistory(ctx, item, historyAction, note)

	return dto.NewItemResponse(item), nil
}

func (s *itemServiceImpl) SetFavorite(ctx context.Context, userID, itemID uuid.UUID, favorite bool) (*dto.ItemResponse, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if item.IsFavorite != favorite {
		item.IsFavorite = favorite
		if err := s.itemRepo.Update(ctx, item); err != nil {
			return nil, fmt.Errorf("update item: %w", err)
		}
		action := entities.HistoryActionFavorited
		if !favorite {
			action = entities.HistoryActionUnfavorited
		}
		s.appendHistory(ctx, item, action, "")
	}

	return dto.NewItemResponse(item), nil
}

func (s *itemServiceImpl) GetItemHistory(ctx context.Context, userID, itemID uuid.UUID, limit, offset int) ([]*dto.ItemHistoryResponse, int64, error) {
	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return nil, 0, err
	}

	entries, total, err := s.historyRepo.ListByItem(ctx, itemID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list history: %w", err)
	}
	return dto.NewItemHistoryResponses(entries), total, nil
}

// ownedItem fetches an item and enforces ownership. A mismatch returns
// ErrForbidden, not ErrItemNotFound.
func (s *itemServiceImpl) ownedItem(ctx context.Context, userID, itemID uuid.UUID) (*entities.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsOwnedBy(userID) {
		return nil, entities.ErrForbidden
	}
	return item, nil
}

// appendHistory writes a history entry best effort. The item write has
// already succeeded; a failed history append is logged, not surfaced.
func (s *itemServiceImpl) appendHistory(ctx context.Context, item *entities.Item, action entities.HistoryAction, note string) {
	entry := &entities.ItemHistory{
		ItemID: item.ID,
		UserID: item.UserID,
		Action: action,
		Note:   note,
	}
	if err := s.historyRepo.Append(ctx, entry); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"item_id": item.ID,
			"action":  action,
			"error":   err.Error(),
		}).Warn("Failed to append item history")
	}
}

func (s *itemServiceImpl) appendAudit(ctx context.Context, userID uuid.UUID, action string, payload interface{}, sourceIP string) {
	entry := entities.NewAuditLog(userID, action, payload, sourceIP)
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"action": action,
			"error":  err.Error(),
		}).Warn("Failed to append audit log")
	}
}

// validateOverrides checks the optional classification overrides sent
// with the upload form.
func validateOverrides(req *dto.UploadItemRequest) error {
	if req == nil {
		return nil
	}
	if req.Type != "" && !entities.IsValidGarmentType(req.Type) {
		return fmt.Errorf("%w: unknown type %q", entities.ErrValidation, req.Type)
	}
	if req.Occasion != "" && !entities.IsValidOccasion(req.Occasion) {
		return fmt.Errorf("%w: unknown occasion %q", entities.ErrValidation, req.Occasion)
	}
	for _, o := range req.Occasions {
		if !entities.IsValidOccasion(o) {
			return fmt.Errorf("%w: unknown occasion %q", entities.ErrValidation, o)
		}
	}
	if req.Season != "" && !entities.IsValidSeason(req.Season) {
		return fmt.Errorf("%w: unknown season %q", entities.ErrValidation, req.Season)
	}
	return nil
}

// applyOverrides lets explicit form fields win over classifier output.
func applyOverrides(item *entities.Item, req *dto.UploadItemRequest) {
	if req == nil {
		return
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		item.Name = name
	}
	if req.Type != "" {
		item.Type = entities.GarmentType(req.Type)
	}
	if len(req.Occasions) > 0 {
		item.Occasions = entities.StringList(req.Occasions)
	}
	if req.Occasion != "" {
		item.Occasion = entities.Occasion(req.Occasion)
		if !item.Occasions.Contains(req.Occasion) {
			item.Occasions = append(item.Occasions, req.Occasion)
		}
	}
	if req.Season != "" {
		item.Season = entities.Season(req.Season)
	}
	if len(req.Colors) > 0 {
		item.Colors = entities.StringList(req.Colors)
	}
}

// storedName swaps the file extension when normalization re-encoded the
// image to JPEG.
func storedName(filename, mimeType string) string {
	if mimeType != "image/jpeg" {
		return filename
	}
	ext := path.Ext(filename)
	if ext == ".jpg" || ext == ".jpeg" {
		return filename
	}
	return strings.TrimSuffix(filename, ext) + ".jpg"
}

// thumbObjectKey derives the thumbnail key next to the primary key.
func thumbObjectKey(primaryKey, mimeType string) string {
	ext := path.Ext(primaryKey)
	base := strings.TrimSuffix(primaryKey, ext)
	if mimeType == "image/jpeg" {
		ext = ".jpg"
	}
	return base + "_thumb" + ext
}

// objectKeyFromURL recovers the storage key from a stored URL. Keys are
// always of the form prefix/yyyy/mm/dd/name, so the last five path
// segments are the key.
func objectKeyFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parts := strings.Split(rawURL, "/")
	if len(parts) < 5 {
		return ""
	}
	return strings.Join(parts[len(parts)-5:], "/")
}
