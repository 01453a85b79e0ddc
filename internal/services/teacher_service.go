package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/edulearn-platform/learning-service/internal/events"
	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/repositories"
	"github.com/edulearn-platform/learning-service/internal/validator"
)

type teacherService struct {
	repo      repositories.Repository
	progress  ProgressService
	ai        AIService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTeacherService(
	repo repositories.Repository,
	progress ProgressService,
	ai AIService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) TeacherService {
	return &teacherService{
		repo:      repo,
		progress:  progress,
		ai:        ai,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *teacherService) Analytics(ctx context.Context) (*ClassAnalyticsResponse, error) {
	return s.progress.ClassAnalytics(ctx)
}

// ExportAnalytics renders the class analytics as a single-sheet xlsx
// workbook, one row per student.
func (s *teacherService) ExportAnalytics(ctx context.Context) ([]byte, error) {
	analytics, err := s.progress.ClassAnalytics(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Class Analytics"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Name", "Email", "Quizzes Taken", "Average Score", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, student := range analytics.Students {
		values := []interface{}{
			student.Name,
			student.Email,
			student.QuizzesTaken,
			student.AverageScore,
			student.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	summaryRow := len(analytics.Students) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	summary := fmt.Sprintf("Students: %d / Quizzes: %d / Class average: %.1f",
		analytics.Stats.TotalStudents, analytics.Stats.TotalQuizzes, analytics.Stats.ClassAverage)
	if err := f.SetCellValue(sheet, cell, summary); err != nil {
		return nil, fmt.Errorf("failed to write summary: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// CreateQuiz generates a quiz on the requested topic at medium difficulty
// and publishes it to the class pool.
func (s *teacherService) CreateQuiz(ctx context.Context, teacherID string, req *CreateQuizRequest) (*CreateQuizResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	questions := s.ai.GenerateQuiz(ctx, req.Topic, models.DifficultyMedium)
	if len(questions) == 0 {
		return nil, ErrQuizGenerationFailed
	}

	payload, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode questions: %w", err)
	}

	quiz := &models.Quiz{
		ID:         uuid.New().String(),
		Topic:      req.Topic,
		Difficulty: models.DifficultyMedium,
		Questions:  payload,
		CreatedBy:  models.QuizCreatedByTeacher,
		TeacherID:  &teacherID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to store quiz: %w", err)
	}

	s.publish(ctx, events.NewEvent(events.TypeQuizPublished, map[string]interface{}{
		"quiz_id":    quiz.ID,
		"topic":      quiz.Topic,
		"teacher_id": teacherID,
	}))

	s.logger.Info("quiz published", "quiz_id", quiz.ID, "topic", quiz.Topic, "teacher_id", teacherID)
	return &CreateQuizResponse{QuizID: quiz.ID, Questions: questions}, nil
}

func (s *teacherService) Students(ctx context.Context) ([]models.UserPublicView, error) {
	role := models.RoleStudent
	users, err := s.repo.User().List(ctx, repositories.UserFilters{Role: &role})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	views := make([]models.UserPublicView, 0, len(users))
	for _, u := range users {
		views = append(views, u.Public())
	}
	return views, nil
}

func (s *teacherService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "type", event.Type, "error", err)
	}
}
