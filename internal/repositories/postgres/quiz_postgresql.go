package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edulearn-platform/learning-service/internal/cache"
	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/repositories"
)

type QuizPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewQuizPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db, cacheManager: cacheManager}
}

func (r *QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	if err := r.db.WithContext(ctx).Create(quiz).Error; err != nil {
		return err
	}
	_ = r.cacheManager.Quizzes.InvalidatePattern(ctx, "creator:*")
	return nil
}

func (r *QuizPostgreSQL) ListByCreator(ctx context.Context, createdBy string) ([]*models.Quiz, error) {
	var quizzes []*models.Quiz
	cacheKey := fmt.Sprintf("creator:%s", createdBy)
	err := r.cacheManager.Quizzes.CacheOrExecute(ctx, cacheKey, &quizzes, cache.QuizCacheConfig.TTL, func() (interface{}, error) {
		var fresh []*models.Quiz
		if err := r.db.WithContext(ctx).
			Where("created_by = ?", createdBy).
			Order("created_at DESC").
			Find(&fresh).Error; err != nil {
			return nil, err
		}
		return fresh, nil
	})
	return quizzes, err
}

func (r *QuizPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Quiz{}).Count(&count).Error
	return count, err
}

func (r *QuizPostgreSQL) CountByCreator(ctx context.Context, createdBy string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("created_by = ?", createdBy).
		Count(&count).Error
	return count, err
}
