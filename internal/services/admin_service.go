package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edulearn-platform/learning-service/internal/events"
	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/repositories"
)

type adminService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewAdminService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
) AdminService {
	return &adminService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *adminService) Stats(ctx context.Context) (*AdminStatsResponse, error) {
	students, err := s.repo.User().CountByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	teachers, err := s.repo.User().CountByRole(ctx, models.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("failed to count teachers: %w", err)
	}
	modules, err := s.repo.Module().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count modules: %w", err)
	}
	quizzes, err := s.repo.Quiz().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count quizzes: %w", err)
	}

	return &AdminStatsResponse{
		TotalStudents: students,
		TotalTeachers: teachers,
		TotalModules:  modules,
		TotalQuizzes:  quizzes,
	}, nil
}

func (s *adminService) Users(ctx context.Context) ([]models.UserPublicView, error) {
	users, err := s.repo.User().List(ctx, repositories.UserFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	views := make([]models.UserPublicView, 0, len(users))
	for _, u := range users {
		views = append(views, u.Public())
	}
	return views, nil
}

// DeleteUser removes the account and everything keyed to it. The cascade
// runs in one transaction so a partial delete can never leave orphaned
// progress rows behind.
func (s *adminService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Progress().DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete progress: %w", err)
		}
		if err := tx.ChatLog().DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete chat logs: %w", err)
		}
		if err := tx.Enrollment().DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete enrollments: %w", err)
		}
		if err := tx.User().Delete(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.NewEvent(events.TypeUserDeleted, map[string]interface{}{
		"user_id": userID,
		"email":   user.Email,
		"role":    user.Role,
	}))

	s.logger.Info("user deleted", "user_id", userID, "role", user.Role)
	return nil
}

func (s *adminService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "type", event.Type, "error", err)
	}
}
