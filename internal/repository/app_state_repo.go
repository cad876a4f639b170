package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"attendtrack/backend/internal/model"
)

// AppStateRepository 应用状态标记数据访问接口
type AppStateRepository interface {
	// Get 读取标记值；键不存在时返回空串且无错误
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type appStateRepo struct {
	db *gorm.DB
}

// NewAppStateRepo 创建 AppStateRepository 实例
func NewAppStateRepo(db *gorm.DB) AppStateRepository {
	return &appStateRepo{db: db}
}

func (r *appStateRepo) Get(ctx context.Context, key string) (string, error) {
	var state model.AppState
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return state.Value, nil
}

func (r *appStateRepo) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&model.AppState{Key: key, Value: value}).Error
}

func (r *appStateRepo) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.AppState{}).Error
}
