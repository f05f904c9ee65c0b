package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"quartermaster/internal/adapters/persistence/models"
	"quartermaster/internal/adapters/persistence/repositories"
	"quartermaster/internal/core/domain"
)

// BaseService handles base provisioning and lookup
type BaseService struct {
	baseRepo repositories.BaseRepository
	userRepo repositories.UserRepository
}

// NewBaseService creates a new base service
func NewBaseService(baseRepo repositories.BaseRepository, userRepo repositories.UserRepository) *BaseService {
	return &BaseService{
		baseRepo: baseRepo,
		userRepo: userRepo,
	}
}

// CreateBaseInput represents base creation input
type CreateBaseInput struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	CommanderID *uint  `json:"commanderId"`
}

// Create validates and persists a new base. A commander reference must
// resolve to a user holding the base_commander role.
func (s *BaseService) Create(ctx context.Context, input *CreateBaseInput) (*models.Base, error) {
	name := strings.TrimSpace(input.Name)
	location := strings.TrimSpace(input.Location)

	if name == "" || location == "" {
		return nil, fmt.Errorf("%w: name and location are required", domain.ErrInvalidInput)
	}

	exists, err := s.baseRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: base name already exists", domain.ErrDuplicateEntry)
	}

	if input.CommanderID != nil {
		commander, err := s.userRepo.GetByID(ctx, *input.CommanderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: commander not found", domain.ErrInvalidInput)
			}
			return nil, err
		}
		if commander.Role != domain.RoleBaseCommander {
			return nil, fmt.Errorf("%w: commander reference must be a base commander", domain.ErrInvalidInput)
		}
	}

	base := &models.Base{
		Name:        name,
		Location:    location,
		CommanderID: input.CommanderID,
	}

	if err := s.baseRepo.Create(ctx, base); err != nil {
		return nil, err
	}

	return base, nil
}

// List returns all bases
func (s *BaseService) List(ctx context.Context) ([]*models.Base, error) {
	return s.baseRepo.List(ctx)
}
