package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/adapters/persistence/repositories"
	"quartermaster/internal/config"
	"quartermaster/internal/core/domain"
	"quartermaster/internal/pkg/password"
	"quartermaster/internal/pkg/token"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo    repositories.UserRepository
	userService *UserService
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, userService *UserService, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		userService: userService,
		cfg:         cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult represents a successful authentication
type AuthResult struct {
	User  *models.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// Login authenticates a user and issues a session token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := token.Generate(user.ID, user.Username, user.Role, user.BaseID, s.cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:  user.ToResponse(),
		Token: signed,
	}, nil
}

// Signup creates a user through the shared provisioning path and issues a
// session token for the new account.
func (s *AuthService) Signup(ctx context.Context, input *CreateUserInput) (*AuthResult, error) {
	user, err := s.userService.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	signed, err := token.Generate(user.ID, user.Username, user.Role, user.BaseID, s.cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:  user.ToResponse(),
		Token: signed,
	}, nil
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
