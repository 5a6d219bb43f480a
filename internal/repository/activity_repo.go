package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
)

// ActivityRepository 操作日志数据访问接口（追加写）
type ActivityRepository interface {
	Append(ctx context.Context, entry *model.ActivityLog) error
	List(ctx context.Context, eventID string, offset, limit int) ([]model.ActivityLog, int64, error)
}

// activityRepo ActivityRepository 的 GORM 实现
type activityRepo struct {
	db *gorm.DB
}

// NewActivityRepo 创建 ActivityRepository 实例
func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Append(ctx context.Context, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List 按时间倒序分页返回日志，eventID 为空时返回全站日志
func (r *activityRepo) List(ctx context.Context, eventID string, offset, limit int) ([]model.ActivityLog, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.ActivityLog{})
	if eventID != "" {
		db = db.Where("event_id = ?", eventID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.ActivityLog
	err := db.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
