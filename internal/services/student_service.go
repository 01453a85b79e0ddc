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

type studentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
) StudentService {
	return &studentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *studentService) Profile(ctx context.Context, userID string) (*models.UserPublicView, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	view := user.Public()
	return &view, nil
}

// Courses lists every module with the caller's enrollment state annotated
// per course.
func (s *studentService) Courses(ctx context.Context, userID string) ([]CourseView, error) {
	modules, err := s.repo.Module().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}

	views := make([]CourseView, 0, len(modules))
	for _, m := range modules {
		enrolled, err := s.repo.Enrollment().Exists(ctx, userID, m.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
		views = append(views, CourseView{Module: m, IsEnrolled: enrolled})
	}

	return views, nil
}

// Enroll is idempotent: re-enrolling an already enrolled course only
// refreshes the enrollment timestamp.
func (s *studentService) Enroll(ctx context.Context, userID string, req *EnrollRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	if _, err := s.repo.Module().GetByID(ctx, req.CourseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrModuleNotFound
		}
		return fmt.Errorf("failed to load module: %w", err)
	}

	enrollment := &models.Enrollment{
		ID:         uuid.New().String(),
		UserID:     userID,
		CourseID:   req.CourseID,
		EnrolledAt: time.Now().UTC(),
	}
	if err := s.repo.Enrollment().Upsert(ctx, enrollment); err != nil {
		return fmt.Errorf("failed to enroll: %w", err)
	}

	s.logger.Info("student enrolled", "user_id", userID, "course_id", req.CourseID)
	return nil
}

// AssignedQuizzes returns the teacher-published quiz pool. Quizzes are
// shared class-wide, not assigned per student.
func (s *studentService) AssignedQuizzes(ctx context.Context) ([]*models.Quiz, error) {
	quizzes, err := s.repo.Quiz().ListByCreator(ctx, models.QuizCreatedByTeacher)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}
