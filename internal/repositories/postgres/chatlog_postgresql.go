package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/repositories"
)

type ChatLogPostgreSQL struct {
	db *gorm.DB
}

func NewChatLogPostgreSQL(db *gorm.DB) repositories.ChatLogRepository {
	return &ChatLogPostgreSQL{db: db}
}

func (r *ChatLogPostgreSQL) Create(ctx context.Context, log *models.ChatLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *ChatLogPostgreSQL) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&models.ChatLog{}, "user_id = ?", userID).Error
}
