package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wardrobe-api/internal/application/dto"
	"wardrobe-api/internal/domain/entities"
	"wardrobe-api/internal/domain/repositories"
	"wardrobe-api/internal/infrastructure/logger"
)

// AuthService handles account registration, login and profile access.
type AuthService interface {
	// Register creates an account and returns a fresh access token.
	Register(ctx context.Context, req *dto.RegisterRequest, sourceIP string) (*dto.AuthResponse, error)

	// Login verifies credentials and returns a fresh access token.
	Login(ctx context.Context, req *dto.LoginRequest, sourceIP string) (*dto.AuthResponse, error)

	// GetProfile returns the public view of an account.
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserInfo, error)
}

type authServiceImpl struct {
	userRepo  repositories.UserRepository
	auditRepo repositories.AuditLogRepository
	jwt       JWTService
	logger    logger.Logger
}

// NewAuthService creates the auth service.
func NewAuthService(userRepo repositories.UserRepository, auditRepo repositories.AuditLogRepository, jwt JWTService, log logger.Logger) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		jwt:       jwt,
		logger:    log,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest, sourceIP string) (*dto.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entities.User{
		Email:        entities.NormalizeEmail(req.Email),
		PasswordHash: string(hash),
		Role:         entities.UserRoleUser,
		Status:       entities.UserStatusActive,
	}
	if req.DisplayName != "" {
		name := req.DisplayName
		user.DisplayName = &name
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return nil, entities.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.appendAudit(ctx, user.ID, entities.AuditActionUserRegister, map[string]interface{}{
		"email": user.Email,
	}, sourceIP)

	return s.issueToken(ctx, user)
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest, sourceIP string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, entities.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			// The same error as a bad password, so the response does not
			// reveal whether the account exists.
			return nil, entities.ErrInvalidPassword
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if !user.IsActive() {
		return nil, entities.ErrInvalidPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, entities.ErrInvalidPassword
	}

	s.appendAudit(ctx, user.ID, entities.AuditActionUserLogin, nil, sourceIP)

	return s.issueToken(ctx, user)
}

func (s *authServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserInfo(user), nil
}

func (s *authServiceImpl) issueToken(ctx context.Context, user *entities.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwt.GenerateToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        dto.NewUserInfo(user),
	}, nil
}

// appendAudit writes an audit entry best effort. Audit failures are
// logged and never fail the user-facing operation.
func (s *authServiceImpl) appendAudit(ctx context.Context, userID uuid.UUID, action string, payload interface{}, sourceIP string) {
	entry := entities.NewAuditLog(userID, action, payload, sourceIP)
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"action": action,
			"error":  err.Error(),
		}).Warn("Failed to append audit log")
	}
}
