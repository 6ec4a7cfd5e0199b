package services

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/domain/repositories"
	"wardrobe-api/internal/infrastructure/storage"
)

// MockItemRepository is a testify mock of repositories.ItemRepository.
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *entities.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Item), args.Error(1)
}

func (m *MockItemRepository) ListByUser(ctx context.Context, userID uuid.UUID, filters *repositories.ItemFilters, limit, offset int) ([]*entities.Item, int64, error) {
	args := m.Called(ctx, userID, filters, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) Update(ctx context.Context, item *entities.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockItemHistoryRepository is a testify mock of repositories.ItemHistoryRepository.
type MockItemHistoryRepository struct {
	mock.Mock
}

func (m *MockItemHistoryRepository) Append(ctx context.Context, entry *entities.ItemHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockItemHistoryRepository) ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*entities.ItemHistory, int64, error) {
	args := m.Called(ctx, itemID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.ItemHistory), args.Get(1).(int64), args.Error(2)
}

// MockAuditLogRepository is a testify mock of repositories.AuditLogRepository.
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Append(ctx context.Context, entry *entities.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.AuditLog, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditLogRepository) List(ctx context.Context, limit, offset int) ([]*entities.AuditLog, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AuditLog), args.Get(1).(int64), args.Error(2)
}

// MockOutfitRepository is a testify mock of repositories.OutfitRepository.
type MockOutfitRepository struct {
	mock.Mock
}

func (m *MockOutfitRepository) Create(ctx context.Context, outfit *entities.Outfit) error {
	args := m.Called(ctx, outfit)
	return args.Error(0)
}

func (m *MockOutfitRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Outfit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Outfit), args.Error(1)
}

func (m *MockOutfitRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Outfit, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Outfit), args.Get(1).(int64), args.Error(2)
}

func (m *MockOutfitRepository) Update(ctx context.Context, outfit *entities.Outfit) error {
	args := m.Called(ctx, outfit)
	return args.Error(0)
}

func (m *MockOutfitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a testify mock of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockClassificationProvider is a testify mock of the classification
// provider. The five classify calls return whatever defaults the test
// configures; Complete is the only call that can fail.
type MockClassificationProvider struct {
	mock.Mock
}

func (m *MockClassificationProvider) ExtractColors(ctx context.Context, image []byte, mimeType string) []string {
	args := m.Called(ctx, image, mimeType)
	return args.Get(0).([]string)
}

func (m *MockClassificationProvider) IdentifyType(ctx context.Context, image []byte, mimeType string) entities.GarmentType {
	args := m.Called(ctx, image, mimeType)
	return args.Get(0).(entities.GarmentType)
}

func (m *MockClassificationProvider) SuggestOccasion(ctx context.Context, image []byte, mimeType string) entities.Occasion {
	args := m.Called(ctx, image, mimeType)
	return args.Get(0).(entities.Occasion)
}

func (m *MockClassificationProvider) SuggestSeason(ctx context.Context, image []byte, mimeType string) entities.Season {
	args := m.Called(ctx, image, mimeType)
	return args.Get(0).(entities.Season)
}

func (m *MockClassificationProvider) GenerateName(ctx context.Context, image []byte, mimeType string) string {
	args := m.Called(ctx, image, mimeType)
	return args.String(0)
}

func (m *MockClassificationProvider) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// memoryStore is an in-memory object store for service tests.
type memoryStore struct {
	objects map[string][]byte
	putErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (s *memoryStore) Put(ctx context.Context, key, contentType string, content io.Reader) (*storage.PutResult, error) {
	if s.putErr != nil {
		return nil, s.putErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	s.objects[key] = data
	return &storage.PutResult{
		Key:      key,
		URL:      "http://store.test/" + key,
		MimeType: contentType,
	}, nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	return nil
}
