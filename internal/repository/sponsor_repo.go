package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
)

// SponsorRepository 赞助商数据访问接口
type SponsorRepository interface {
	Create(ctx context.Context, sponsor *model.Sponsor) error
	GetByID(ctx context.Context, id string) (*model.Sponsor, error)
	List(ctx context.Context) ([]model.Sponsor, error)
	Update(ctx context.Context, sponsor *model.Sponsor) error
}

// sponsorRepo SponsorRepository 的 GORM 实现
type sponsorRepo struct {
	db *gorm.DB
}

// NewSponsorRepo 创建 SponsorRepository 实例
func NewSponsorRepo(db *gorm.DB) SponsorRepository {
	return &sponsorRepo{db: db}
}

func (r *sponsorRepo) Create(ctx context.Context, sponsor *model.Sponsor) error {
	return r.db.WithContext(ctx).Create(sponsor).Error
}

func (r *sponsorRepo) GetByID(ctx context.Context, id string) (*model.Sponsor, error) {
	var sponsor model.Sponsor
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sponsor).Error
	if err != nil {
		return nil, err
	}
	return &sponsor, nil
}

func (r *sponsorRepo) List(ctx context.Context) ([]model.Sponsor, error) {
	var sponsors []model.Sponsor
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&sponsors).Error
	if err != nil {
		return nil, err
	}
	return sponsors, nil
}

func (r *sponsorRepo) Update(ctx context.Context, sponsor *model.Sponsor) error {
	return r.db.WithContext(ctx).Save(sponsor).Error
}
