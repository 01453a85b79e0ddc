package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/repositories"
)

type ProgressPostgreSQL struct {
	db *gorm.DB
}

func NewProgressPostgreSQL(db *gorm.DB) repositories.ProgressRepository {
	return &ProgressPostgreSQL{db: db}
}

// Upsert relies on the composite unique index over (user_id, ref_type,
// ref_key); concurrent submissions for the same key resolve last-write-wins.
func (r *ProgressPostgreSQL) Upsert(ctx context.Context, record *models.ProgressRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "ref_type"},
			{Name: "ref_key"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"topic", "status", "score", "last_updated"}),
	}).Create(record).Error
}

func (r *ProgressPostgreSQL) GetByUser(ctx context.Context, userID string) ([]*models.ProgressRecord, error) {
	var records []*models.ProgressRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_updated DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ProgressPostgreSQL) GetBelowScore(ctx context.Context, userID string, threshold float64) ([]*models.ProgressRecord, error) {
	var records []*models.ProgressRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND score < ?", userID, threshold).
		Order("score ASC, last_updated DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ProgressPostgreSQL) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&models.ProgressRecord{}, "user_id = ?", userID).Error
}
