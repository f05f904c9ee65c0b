package services

import (
	"context"
	"fmt"
	"strings"

	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/adapters/persistence/repositories"
	"quartermaster/internal/core/domain"
	"quartermaster/internal/pkg/password"
)

// UserService handles user provisioning. Signup and the admin console both
// create users through here so the role/base invariants live in one place.
type UserService struct {
	userRepo repositories.UserRepository
	baseRepo repositories.BaseRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, baseRepo repositories.BaseRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		baseRepo: baseRepo,
	}
}

// CreateUserInput represents user creation input
type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	BaseID   *uint  `json:"baseId"`
}

// Create validates and persists a new user. Non-admin roles must carry a
// home base that resolves to an existing base; admins must not carry one.
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	if username == "" || email == "" || input.Password == "" || fullName == "" {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if !password.Validate(input.Password) {
		return nil, fmt.Errorf("%w: password must be at least %d characters long",
			domain.ErrInvalidInput, password.MinLength)
	}

	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	if role == domain.RoleAdmin {
		if input.BaseID != nil {
			return nil, fmt.Errorf("%w: admin users must not have a home base", domain.ErrInvalidInput)
		}
	} else {
		if input.BaseID == nil {
			return nil, fmt.Errorf("%w: a home base is required for role %s", domain.ErrInvalidInput, role)
		}
		exists, err := s.baseRepo.Exists(ctx, *input.BaseID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: base %d", domain.ErrBaseNotFound, *input.BaseID)
		}
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: username already exists", domain.ErrDuplicateEntry)
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email already exists", domain.ErrDuplicateEntry)
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		BaseID:       input.BaseID,
		FullName:     fullName,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// List returns all users with their base resolved
func (s *UserService) List(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

// GetByID returns a single user
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
