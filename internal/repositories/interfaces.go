package repositories

import (
	"context"

	"github.com/edulearn-platform/learning-service/internal/models"
)

// UserFilters narrows user listings.
type UserFilters struct {
	Role   *models.UserRole
	Limit  int
	Offset int
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error

	// List returns users newest first, password hash included (the
	// service layer is responsible for projecting public views).
	List(ctx context.Context, filters UserFilters) ([]*models.User, error)
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
}

type ModuleRepository interface {
	Create(ctx context.Context, module *models.Module) error
	GetByID(ctx context.Context, id string) (*models.Module, error)
	List(ctx context.Context) ([]*models.Module, error)
	Count(ctx context.Context) (int64, error)
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	ListByCreator(ctx context.Context, createdBy string) ([]*models.Quiz, error)
	Count(ctx context.Context) (int64, error)
	CountByCreator(ctx context.Context, createdBy string) (int64, error)
}

type ProgressRepository interface {
	// Upsert writes the record for its (user, ref) key, overwriting any
	// previous attempt. Last write wins.
	Upsert(ctx context.Context, record *models.ProgressRecord) error

	// GetByUser returns records ordered by LastUpdated, newest first.
	GetByUser(ctx context.Context, userID string) ([]*models.ProgressRecord, error)

	// GetBelowScore returns records with score strictly under the
	// threshold, ordered by score ascending then LastUpdated descending.
	GetBelowScore(ctx context.Context, userID string, threshold float64) ([]*models.ProgressRecord, error)

	DeleteByUser(ctx context.Context, userID string) error
}

type EnrollmentRepository interface {
	// Upsert refreshes EnrolledAt when the (user, course) pair exists.
	Upsert(ctx context.Context, enrollment *models.Enrollment) error
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type ChatLogRepository interface {
	Create(ctx context.Context, log *models.ChatLog) error
	DeleteByUser(ctx context.Context, userID string) error
}
