package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/edulearn-platform/learning-service/internal/cache"
	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/repositories"
)

type ModulePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewModulePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ModuleRepository {
	return &ModulePostgreSQL{db: db, cacheManager: cacheManager}
}

func (r *ModulePostgreSQL) Create(ctx context.Context, module *models.Module) error {
	if err := r.db.WithContext(ctx).Create(module).Error; err != nil {
		return err
	}
	// Listings are stale once a module is added.
	if err := r.cacheManager.Modules.Delete(ctx, "list"); err != nil {
		// Cache failures never fail the write.
		_ = err
	}
	return nil
}

func (r *ModulePostgreSQL) GetByID(ctx context.Context, id string) (*models.Module, error) {
	var module models.Module
	if err := r.db.WithContext(ctx).First(&module, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &module, nil
}

func (r *ModulePostgreSQL) List(ctx context.Context) ([]*models.Module, error) {
	var modules []*models.Module
	err := r.cacheManager.Modules.CacheOrExecute(ctx, "list", &modules, cache.ModuleCacheConfig.TTL, func() (interface{}, error) {
		var fresh []*models.Module
		if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&fresh).Error; err != nil {
			return nil, err
		}
		return fresh, nil
	})
	return modules, err
}

func (r *ModulePostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Module{}).Count(&count).Error
	return count, err
}
