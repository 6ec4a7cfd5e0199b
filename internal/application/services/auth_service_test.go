package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/infrastructure/config"
	"wardrobe-api/internal/infrastructure/logger"
)

func testJWTService() JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:         "test-secret-at-least-32-bytes-long!!",
		AccessTokenTTL: time.Hour,
		Issuer:         "wardrobe-api",
		Audience:       "wardrobe-clients",
	})
}

type authFixture struct {
	userRepo  *MockUserRepository
	auditRepo *MockAuditLogRepository
	service   AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:  &MockUserRepository{},
		auditRepo: &MockAuditLogRepository{},
	}
	f.service = NewAuthService(f.userRepo, f.auditRepo, testJWTService(), logger.NewNopLogger())
	return f
}

func TestRegisterIssuesToken(t *testing.T) {
	f := newAuthFixture()

	f.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.Email == "ana@example.com" && u.Role == entities.UserRoleUser
	})).Return(nil)
	f.auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Email:       "Ana@Example.com",
		Password:    "correct-horse",
		DisplayName: "Ana",
	}, "10.0.0.1")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, "Ana", resp.User.DisplayName)

	f.auditRepo.AssertCalled(t, "Append", mock.Anything, mock.MatchedBy(func(e *entities.AuditLog) bool {
		return e.Action == entities.AuditActionUserRegister
	}))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture()

	f.userRepo.On("Create", mock.Anything, mock.Anything).Return(entities.ErrEmailTaken)

	_, err := f.service.Register(context.Background(), &dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "some-password",
	}, "")
	assert.ErrorIs(t, err, entities.ErrEmailTaken)
}

func TestLoginVerifiesPassword(t *testing.T) {
	f := newAuthFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entities.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         entities.UserRoleUser,
		Status:       entities.UserStatusActive,
	}
	f.userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(user, nil)
	f.auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "Ana@Example.com",
		Password: "correct-horse",
	}, "10.0.0.1")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture()

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	user := &entities.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Status:       entities.UserStatusActive,
	}
	f.userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(user, nil)

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	}, "")
	assert.ErrorIs(t, err, entities.ErrInvalidPassword)
}

func TestLoginUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	f := newAuthFixture()

	f.userRepo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, entities.ErrUserNotFound)

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "anything",
	}, "")
	assert.ErrorIs(t, err, entities.ErrInvalidPassword)
}

func TestLoginSuspendedAccount(t *testing.T) {
	f := newAuthFixture()

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	user := &entities.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Status:       entities.UserStatusSuspended,
	}
	f.userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(user, nil)

	_, err := f.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "right",
	}, "")
	assert.ErrorIs(t, err, entities.ErrInvalidPassword)
}

func TestJWTRoundTrip(t *testing.T) {
	svc := testJWTService()
	user := &entities.User{ID: uuid.New(), Role: entities.UserRoleAdmin}

	token, expiresIn, err := svc.GenerateToken(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.ParseToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	svc := testJWTService()
	user := &entities.User{ID: uuid.New(), Role: entities.UserRoleUser}

	token, _, err := svc.GenerateToken(context.Background(), user)
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), token+"x")
	assert.Error(t, err)

	other := NewJWTService(&config.JWTConfig{
		Secret:         "a-completely-different-signing-key!!",
		AccessTokenTTL: time.Hour,
		Issuer:         "wardrobe-api",
		Audience:       "wardrobe-clients",
	})
	_, err = other.ParseToken(context.Background(), token)
	assert.Error(t, err)
}
