package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/repositories"
	"github.com/edulearn-platform/learning-service/internal/validator"
)

type moduleService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewModuleService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
) ModuleService {
	return &moduleService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *moduleService) List(ctx context.Context) ([]*models.Module, error) {
	modules, err := s.repo.Module().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	return modules, nil
}

// Create records who authored the module; both teachers and admins may
// publish content.
func (s *moduleService) Create(ctx context.Context, req *CreateModuleRequest, creatorID string, creatorRole models.UserRole) (*models.Module, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	subject := req.Subject
	if subject == "" {
		subject = models.SubjectGeneral
	}

	module := &models.Module{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Content:     req.Content,
		Subject:     subject,
		CreatedBy:   creatorRole,
		CreatedByID: creatorID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Module().Create(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to create module: %w", err)
	}

	s.logger.Info("module created", "module_id", module.ID, "created_by", creatorID)
	return module, nil
}
