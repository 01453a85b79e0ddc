package services

import (
	"context"
	"time"

	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Request payloads live with the validator so tags stay in one place.
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type UpdateProfileRequest = validator.UpdateProfileRequest
type EnrollRequest = validator.EnrollRequest
type CreateModuleRequest = validator.CreateModuleRequest
type ProgressUpdateRequest = validator.ProgressUpdateRequest
type ChatRequest = validator.ChatRequest
type GenerateQuizRequest = validator.GenerateQuizRequest
type CreateQuizRequest = validator.CreateQuizRequest

// ===== RESPONSE DTOs =====

type LoginResponse struct {
	Token string                `json:"token"`
	User  models.UserPublicView `json:"user"`
}

// ProgressRecordView renders every identifier as a plain string; internal
// id types never leak to the boundary.
type ProgressRecordView struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	KeyType     string    `json:"key_type"`
	Key         string    `json:"key"`
	Topic       string    `json:"topic"`
	Status      string    `json:"status"`
	Score       float64   `json:"score"`
	LastUpdated time.Time `json:"last_updated"`
}

type ProgressStats struct {
	TotalQuizzes int     `json:"total_quizzes"`
	AverageScore float64 `json:"average_score"`
}

type ProgressHistoryResponse struct {
	History []ProgressRecordView `json:"history"`
	Stats   ProgressStats        `json:"stats"`
}

type PerformanceSummaryResponse struct {
	AverageScore     float64 `json:"average_score"`
	TotalQuizzes     int     `json:"total_quizzes"`
	ModulesCompleted int     `json:"modules_completed"`
}

type StudentPerformance struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	QuizzesTaken int     `json:"quizzes_taken"`
	AverageScore float64 `json:"average_score"`
	Status       string  `json:"status"`
}

type ClassAnalyticsResponse struct {
	Stats    ClassStats           `json:"stats"`
	Students []StudentPerformance `json:"students"`
}

type ClassStats struct {
	TotalStudents int64   `json:"total_students"`
	TotalQuizzes  int64   `json:"total_quizzes"`
	ClassAverage  float64 `json:"class_average"`
}

type AdminStatsResponse struct {
	TotalStudents int64 `json:"total_students"`
	TotalTeachers int64 `json:"total_teachers"`
	TotalModules  int64 `json:"total_modules"`
	TotalQuizzes  int64 `json:"total_quizzes"`
}

type CourseView struct {
	*models.Module
	IsEnrolled bool `json:"is_enrolled"`
}

type AdaptiveQuizResponse struct {
	Topic string                `json:"topic"`
	Quiz  []models.QuizQuestion `json:"quiz"`
}

type CreateQuizResponse struct {
	QuizID    string                `json:"quiz_id"`
	Questions []models.QuizQuestion `json:"quiz"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (string, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) error
}

type StudentService interface {
	Profile(ctx context.Context, userID string) (*models.UserPublicView, error)
	Courses(ctx context.Context, userID string) ([]CourseView, error)
	Enroll(ctx context.Context, userID string, req *EnrollRequest) error
	AssignedQuizzes(ctx context.Context) ([]*models.Quiz, error)
}

type ModuleService interface {
	List(ctx context.Context) ([]*models.Module, error)
	Create(ctx context.Context, req *CreateModuleRequest, creatorID string, creatorRole models.UserRole) (*models.Module, error)
}

// ProgressService is the progress ledger: per-(user, key) upserts plus the
// per-user and per-class aggregations built on top of them.
type ProgressService interface {
	Record(ctx context.Context, userID string, req *ProgressUpdateRequest) error
	History(ctx context.Context, userID string) (*ProgressHistoryResponse, error)
	Summary(ctx context.Context, userID string) (*PerformanceSummaryResponse, error)
	WeakTopics(ctx context.Context, userID string, threshold float64) ([]string, error)
	WeakestTopic(ctx context.Context, userID string, threshold float64) (string, error)
	ClassAnalytics(ctx context.Context) (*ClassAnalyticsResponse, error)
}

type TeacherService interface {
	Analytics(ctx context.Context) (*ClassAnalyticsResponse, error)
	ExportAnalytics(ctx context.Context) ([]byte, error)
	CreateQuiz(ctx context.Context, teacherID string, req *CreateQuizRequest) (*CreateQuizResponse, error)
	Students(ctx context.Context) ([]models.UserPublicView, error)
}

type AdminService interface {
	Stats(ctx context.Context) (*AdminStatsResponse, error)
	Users(ctx context.Context) ([]models.UserPublicView, error)
	DeleteUser(ctx context.Context, userID string) error
}

type AIService interface {
	Chat(ctx context.Context, userID, message string) (string, error)
	GenerateQuiz(ctx context.Context, topic string, difficulty models.Difficulty) []models.QuizQuestion
	Recommendation(ctx context.Context, userID string) (string, error)
	AdaptiveQuiz(ctx context.Context, userID string) (*AdaptiveQuizResponse, error)
}

// WeakScoreThreshold marks a topic as weak when the recorded score falls
// strictly below it.
const WeakScoreThreshold = 60.0
