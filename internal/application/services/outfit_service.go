package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/domain/repositories"
	"wardrobe-api/internal/infrastructure/logger"
)

// OutfitService manages saved outfits. Every referenced item must exist
// and belong to the outfit's owner.
type OutfitService interface {
	// CreateOutfit saves a new outfit.
	CreateOutfit(ctx context.Context, userID uuid.UUID, req *dto.CreateOutfitRequest) (*dto.OutfitResponse, error)

	// GetOutfit fetches one owned outfit.
	GetOutfit(ctx context.Context, userID, outfitID uuid.UUID) (*dto.OutfitResponse, error)

	// ListOutfits returns the owner's outfits page.
	ListOutfits(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*dto.OutfitResponse, int64, error)

	// UpdateOutfit edits an outfit.
	UpdateOutfit(ctx context.Context, userID, outfitID uuid.UUID, req *dto.UpdateOutfitRequest) (*dto.OutfitResponse, error)

	// DeleteOutfit removes an outfit. Items themselves are untouched.
	DeleteOutfit(ctx context.Context, userID, outfitID uuid.UUID) error
}

type outfitServiceImpl struct {
	outfitRepo repositories.OutfitRepository
	itemRepo   repositories.ItemRepository
	logger     logger.Logger
}

// NewOutfitService creates the outfit service.
func NewOutfitService(outfitRepo repositories.OutfitRepository, itemRepo repositories.ItemRepository, log logger.Logger) OutfitService {
	return &outfitServiceImpl{
		outfitRepo: outfitRepo,
		itemRepo:   itemRepo,
		logger:     log,
	}
}

func (s *outfitServiceImpl) CreateOutfit(ctx context.Context, userID uuid.UUID, req *dto.CreateOutfitRequest) (*dto.OutfitResponse, error) {
	links, err := s.itemLinks(ctx, userID, req.ItemIDs)
	if err != nil {
		return nil, err
	}

	outfit := &entities.Outfit{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		Items:       links,
	}

	if err := s.outfitRepo.Create(ctx, outfit); err != nil {
		return nil, fmt.Errorf("create outfit: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"outfit_id": outfit.ID,
		"user_id":   userID,
		"items":     len(links),
	}).Info("Outfit created")

	return dto.NewOutfitResponse(outfit), nil
}

func (s *outfitServiceImpl) GetOutfit(ctx context.Context, userID, outfitID uuid.UUID) (*dto.OutfitResponse, error) {
	outfit, err := s.ownedOutfit(ctx, userID, outfitID)
	if err != nil {
		return nil, err
	}
	return dto.NewOutfitResponse(outfit), nil
}

func (s *outfitServiceImpl) ListOutfits(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*dto.OutfitResponse, int64, error) {
	outfits, total, err := s.outfitRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list outfits: %w", err)
	}
	return dto.NewOutfitResponses(outfits), total, nil
}

func (s *outfitServiceImpl) UpdateOutfit(ctx context.Context, userID, outfitID uuid.UUID, req *dto.UpdateOutfitRequest) (*dto.OutfitResponse, error) {
	outfit, err := s.ownedOutfit(ctx, userID, outfitID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		outfit.Name = *req.Name
	}
	if req.Description != nil {
		outfit.Description = *req.Description
	}
	if req.IsPublic != nil {
		outfit.IsPublic = *req.IsPublic
	}
	if req.ItemIDs != nil {
		links, err := s.itemLinks(ctx, userID, *req.ItemIDs)
		if err != nil {
			return nil, err
		}
		outfit.Items = links
	}

	if err := s.outfitRepo.Update(ctx, outfit); err != nil {
		return nil, fmt.Errorf("update outfit: %w", err)
	}

	return dto.NewOutfitResponse(outfit), nil
}

func (s *outfitServiceImpl) DeleteOutfit(ctx context.Context, userID, outfitID uuid.UUID) error {
	if _, err := s.ownedOutfit(ctx, userID, outfitID); err != nil {
		return err
	}
	if err := s.outfitRepo.Delete(ctx, outfitID); err != nil {
		return fmt.Errorf("delete outfit: %w", err)
	}
	return nil
}

func (s *outfitServiceImpl) ownedOutfit(ctx context.Context, userID, outfitID uuid.UUID) (*entities.Outfit, error) {
	outfit, err := s.outfitRepo.GetByID(ctx, outfitID)
	if err != nil {
		return nil, err
	}
	if !outfit.IsOwnedBy(userID) {
		return nil, entities.ErrForbidden
	}
	return outfit, nil
}

// itemLinks validates that every referenced item exists and belongs to
// the caller, then builds positioned links in request order.
func (s *outfitServiceImpl) itemLinks(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) ([]entities.OutfitItem, error) {
	seen := make(map[uuid.UUID]bool, len(itemIDs))
	links := make([]entities.OutfitItem, 0, len(itemIDs))

	for i, itemID := range itemIDs {
		if seen[itemID] {
			return nil, fmt.Errorf("%w: duplicate item %s", entities.ErrValidation, itemID)
		}
		seen[itemID] = true

		item, err := s.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if !item.IsOwnedBy(userID) {
			return nil, entities.ErrForbidden
		}

		links = append(links, entities.OutfitItem{
			ItemID:   itemID,
			Position: i,
		})
	}

	return links, nil
}
