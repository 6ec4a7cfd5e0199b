package services

import (
	"wardrobe-api/internal/domain/repositories"
	"wardrobe-api/internal/infrastructure/clients"
	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/imaging"
	"wardrobe-api/internal/infrastructure/logger"
	infraRepos "wardrobe-api/internal/infrastructure/repositories"
	"wardrobe-api/internal/infrastructure/storage"
)

// ServiceFactory wires application services from the infrastructure
// pieces built in main.
type ServiceFactory struct {
	repoFactory *infraRepos.RepositoryFactory
	normalizer  *imaging.Normalizer
	store       storage.ObjectStore
	classifier  clients.ClassificationProvider
	config      *config.Config
	logger      logger.Logger

	jwtService JWTService
}

// NewServiceFactory creates the service factory.
func NewServiceFactory(
	repoFactory *infraRepos.RepositoryFactory,
	normalizer *imaging.Normalizer,
	store storage.ObjectStore,
	classifier clients.ClassificationProvider,
	cfg *config.Config,
	log logger.Logger,
) *ServiceFactory {
	return &ServiceFactory{
		repoFactory: repoFactory,
		normalizer:  normalizer,
		store:       store,
		classifier:  classifier,
		config:      cfg,
		logger:      log,
		jwtService:  NewJWTService(&cfg.JWT),
	}
}

// UserRepository exposes the user repository for the auth middleware.
func (f *ServiceFactory) UserRepository() repositories.UserRepository {
	return f.repoFactory.UserRepository()
}

// JWTService returns the shared token service.
func (f *ServiceFactory) JWTService() JWTService {
	return f.jwtService
}

// AuthService builds the auth service.
func (f *ServiceFactory) AuthService() AuthService {
	return NewAuthService(
		f.repoFactory.UserRepository(),
		f.repoFactory.AuditLogRepository(),
		f.jwtService,
		f.logger,
	)
}

// ItemService builds the item service.
func (f *ServiceFactory) ItemService() ItemService {
	return NewItemService(
		f.repoFactory.ItemRepository(),
		f.repoFactory.ItemHistoryRepository(),
		f.repoFactory.AuditLogRepository(),
		f.normalizer,
		f.store,
		f.classifier,
		f.logger,
	)
}

// OutfitService builds the outfit service.
func (f *ServiceFactory) OutfitService() OutfitService {
	return NewOutfitService(
		f.repoFactory.OutfitRepository(),
		f.repoFactory.ItemRepository(),
		f.logger,
	)
}

// SuggestionService builds the suggestion service.
func (f *ServiceFactory) SuggestionService() SuggestionService {
	return NewSuggestionService(
		f.repoFactory.ItemRepository(),
		f.classifier,
		f.logger,
	)
}

// AuditService builds the audit query service.
func (f *ServiceFactory) AuditService() AuditService {
	return NewAuditService(f.repoFactory.AuditLogRepository())
}
