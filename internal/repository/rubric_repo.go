package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
)

// RubricRepository 评分标准数据访问接口
type RubricRepository interface {
	List(ctx context.Context) ([]model.RubricCriterion, error)
	GetByID(ctx context.Context, id string) (*model.RubricCriterion, error)
}

// rubricRepo RubricRepository 的 GORM 实现
type rubricRepo struct {
	db *gorm.DB
}

// NewRubricRepo 创建 RubricRepository 实例
func NewRubricRepo(db *gorm.DB) RubricRepository {
	return &rubricRepo{db: db}
}

// List 按展示顺序返回全部评分标准
func (r *rubricRepo) List(ctx context.Context) ([]model.RubricCriterion, error) {
	var criteria []model.RubricCriterion
	err := r.db.WithContext(ctx).
		Order("display_order ASC").
		Find(&criteria).Error
	if err != nil {
		return nil, err
	}
	return criteria, nil
}

func (r *rubricRepo) GetByID(ctx context.Context, id string) (*model.RubricCriterion, error) {
	var criterion model.RubricCriterion
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&criterion).Error
	if err != nil {
		return nil, err
	}
	return &criterion, nil
}
