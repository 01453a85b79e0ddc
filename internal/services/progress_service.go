package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/edulearn-platform/learning-service/internal/events"
	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/repositories"
	"github.com/edulearn-platform/learning-service/internal/validator"
)

type progressService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProgressService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ProgressService {
	return &progressService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Record upserts the quiz outcome for the caller's (user, key) pair. The
// key is the module id when supplied, otherwise the free-text topic; the
// two kinds never collide because the tag is stored alongside the key.
func (s *progressService) Record(ctx context.Context, userID string, req *ProgressUpdateRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	refType := models.ProgressRefModule
	refKey := req.ModuleID
	if refKey == "" {
		refType = models.ProgressRefTopic
		refKey = req.Topic
	}
	if refKey == "" {
		return ErrProgressKeyRequired
	}

	topic := req.Topic
	if topic == "" {
		topic = req.ModuleID
	}
	status := req.Status
	if status == "" {
		status = models.ProgressStatusCompleted
	}

	record := &models.ProgressRecord{
		ID:          uuid.New().String(),
		UserID:      userID,
		RefType:     refType,
		RefKey:      refKey,
		Topic:       topic,
		Status:      status,
		Score:       req.Score,
		LastUpdated: time.Now().UTC(),
	}
	if err := s.repo.Progress().Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	s.logger.Info("progress recorded",
		"user_id", userID,
		"key_type", refType,
		"key", refKey,
		"score", req.Score)
	s.publish(ctx, events.NewEvent(events.TypeProgressRecorded, map[string]interface{}{
		"user_id": userID,
		"key":     refKey,
		"score":   req.Score,
	}))

	return nil
}

// History returns the caller's records newest first plus count/average
// stats. The average rounds to one decimal and is zero for no records.
func (s *progressService) History(ctx context.Context, userID string) (*ProgressHistoryResponse, error) {
	records, err := s.repo.Progress().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	views := make([]ProgressRecordView, 0, len(records))
	var totalScore float64
	for _, r := range records {
		views = append(views, toProgressView(r))
		totalScore += r.Score
	}

	stats := ProgressStats{TotalQuizzes: len(records)}
	if len(records) > 0 {
		stats.AverageScore = roundFloat(totalScore/float64(len(records)), 1)
	}

	return &ProgressHistoryResponse{History: views, Stats: stats}, nil
}

// Summary is the compact per-user aggregate for the performance endpoint.
func (s *progressService) Summary(ctx context.Context, userID string) (*PerformanceSummaryResponse, error) {
	history, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &PerformanceSummaryResponse{
		AverageScore:     history.Stats.AverageScore,
		TotalQuizzes:     history.Stats.TotalQuizzes,
		ModulesCompleted: history.Stats.TotalQuizzes,
	}, nil
}

// WeakTopics returns the distinct topic labels scored under the threshold.
func (s *progressService) WeakTopics(ctx context.Context, userID string, threshold float64) ([]string, error) {
	records, err := s.repo.Progress().GetBelowScore(ctx, userID, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to load weak records: %w", err)
	}

	seen := make(map[string]struct{}, len(records))
	topics := make([]string, 0, len(records))
	for _, r := range records {
		topic := r.Topic
		if topic == "" {
			topic = "General"
		}
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
	}
	return topics, nil
}

// WeakestTopic returns the topic with the minimum below-threshold score.
// Ties break toward the most recently updated record rather than store
// iteration order. Empty string means no weak topic exists.
func (s *progressService) WeakestTopic(ctx context.Context, userID string, threshold float64) (string, error) {
	records, err := s.repo.Progress().GetBelowScore(ctx, userID, threshold)
	if err != nil {
		return "", fmt.Errorf("failed to load weak records: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	weakest := records[0]
	for _, r := range records[1:] {
		if r.Score < weakest.Score ||
			(r.Score == weakest.Score && r.LastUpdated.After(weakest.LastUpdated)) {
			weakest = r
		}
	}
	if weakest.Topic == "" {
		return weakest.RefKey, nil
	}
	return weakest.Topic, nil
}

// ClassAnalytics aggregates every student's progress. The class average is
// attempt-weighted: total score over total attempts, not the mean of the
// per-student averages.
func (s *progressService) ClassAnalytics(ctx context.Context) (*ClassAnalyticsResponse, error) {
	students, err := s.repo.User().List(ctx, repositories.UserFilters{Role: rolePtr(models.RoleStudent)})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	performance := make([]StudentPerformance, 0, len(students))
	var classTotalScore float64
	var classTotalAttempts int

	for _, student := range students {
		records, err := s.repo.Progress().GetByUser(ctx, student.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load progress for student %s: %w", student.ID, err)
		}

		var totalScore float64
		for _, r := range records {
			totalScore += r.Score
		}
		attempts := len(records)

		avg := 0.0
		if attempts > 0 {
			avg = roundFloat(totalScore/float64(attempts), 1)
		}
		status := "Inactive"
		if attempts > 0 {
			status = "Active"
		}

		classTotalScore += totalScore
		classTotalAttempts += attempts

		performance = append(performance, StudentPerformance{
			ID:           student.ID,
			Name:         student.Name,
			Email:        student.Email,
			QuizzesTaken: attempts,
			AverageScore: avg,
			Status:       status,
		})
	}

	sort.Slice(performance, func(i, j int) bool {
		return performance[i].Name < performance[j].Name
	})

	classAverage := 0.0
	if classTotalAttempts > 0 {
		classAverage = roundFloat(classTotalScore/float64(classTotalAttempts), 1)
	}

	totalQuizzes, err := s.repo.Quiz().CountByCreator(ctx, models.QuizCreatedByTeacher)
	if err != nil {
		return nil, fmt.Errorf("failed to count quizzes: %w", err)
	}

	return &ClassAnalyticsResponse{
		Stats: ClassStats{
			TotalStudents: int64(len(students)),
			TotalQuizzes:  totalQuizzes,
			ClassAverage:  classAverage,
		},
		Students: performance,
	}, nil
}

func (s *progressService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("failed to publish event", "type", event.Type, "error", err)
	}
}

func toProgressView(r *models.ProgressRecord) ProgressRecordView {
	return ProgressRecordView{
		ID:          r.ID,
		UserID:      r.UserID,
		KeyType:     string(r.RefType),
		Key:         r.RefKey,
		Topic:       r.Topic,
		Status:      r.Status,
		Score:       r.Score,
		LastUpdated: r.LastUpdated,
	}
}

func rolePtr(role models.UserRole) *models.UserRole {
	return &role
}

func roundFloat(val float64, precision int) float64 {
	ratio := 1.0
	for i := 0; i < precision; i++ {
		ratio *= 10
	}
	return float64(int(val*ratio+0.5)) / ratio
}
