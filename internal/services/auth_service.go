package services

import (
	"context"
	"fmt"
	"time"

	"ridedispatch/internal/models"
	"ridedispatch/internal/repositories/interfaces"
	"ridedispatch/internal/utils"
	"ridedispatch/pkg/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthService interface {
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	CurrentUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	userRepo  interfaces.UserRepository
	cache     CacheService
	jwtSecret string
	tokenTTL  time.Duration
	logger    *logger.Logger
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	SessionID   string       `json:"session_id"`
}

func NewAuthService(
	userRepo interfaces.UserRepository,
	cache CacheService,
	jwtSecret string,
	tokenTTL time.Duration,
	log *logger.Logger,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		cache:     cache,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    log,
	}
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, err.Error())
	}

	// A missing account and a wrong password produce the same error.
	user, err := s.userRepo.GetByEmail(ctx, request.Email)
	if err != nil || user == nil {
		s.logger.WithField("email", request.Email).Warn("Login attempt with invalid credentials")
		return nil, fmt.Errorf("%w: %s", utils.ErrUnauthorized, utils.MsgInvalidCredentials)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: %s", utils.ErrUnauthorized, utils.MsgInvalidCredentials)
	}

	if !utils.CheckPassword(request.Password, user.Password) {
		s.logger.WithUserID(user.ID).Warn("Login attempt with wrong password")
		return nil, fmt.Errorf("%w: %s", utils.ErrUnauthorized, utils.MsgInvalidCredentials)
	}

	sessionID := uuid.NewString()
	pair, err := utils.GenerateAccessToken(user.ID, string(user.Role), user.Email, sessionID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if s.cache != nil {
		session := map[string]interface{}{
			"user_id":    user.ID.Hex(),
			"user_role":  string(user.Role),
			"created_at": time.Now().UTC(),
		}
		s.cache.Set(ctx, utils.CacheSessionPrefix+sessionID, session, s.tokenTTL)
	}

	s.logger.WithUserID(user.ID).WithField("event", utils.EventUserLogin).Info("User logged in")

	return &AuthResponse{
		User:        user,
		AccessToken: pair.AccessToken,
		TokenType:   pair.TokenType,
		ExpiresIn:   pair.ExpiresIn,
		SessionID:   sessionID,
	}, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user", utils.ErrNotFound)
	}

	return user, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if s.cache == nil || sessionID == "" {
		return nil
	}
	return s.cache.Delete(ctx, utils.CacheSessionPrefix+sessionID)
}
