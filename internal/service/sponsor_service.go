package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/repository"
)

// ── 赞助商模块业务错误 ──

var (
	ErrSponsorNotFound  = errors.New("赞助商不存在")
	ErrSponsorNameTaken = errors.New("赞助商名称已存在")
)

// SponsorService 赞助商业务接口
type SponsorService interface {
	Create(ctx context.Context, req *dto.CreateSponsorRequest) (*dto.SponsorResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SponsorResponse, error)
	List(ctx context.Context) ([]dto.SponsorResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSponsorRequest) (*dto.SponsorResponse, error)
}

type sponsorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSponsorService 创建 SponsorService 实例
func NewSponsorService(repo *repository.Repository, logger *zap.Logger) SponsorService {
	return &sponsorService{repo: repo, logger: logger}
}

func (s *sponsorService) Create(ctx context.Context, req *dto.CreateSponsorRequest) (*dto.SponsorResponse, error) {
	sponsor := &model.Sponsor{
		Name:       req.Name,
		LogoURL:    req.LogoURL,
		WebsiteURL: req.WebsiteURL,
		Tier:       req.Tier,
	}
	if req.PrimaryColor != nil {
		sponsor.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		sponsor.SecondaryColor = *req.SecondaryColor
	}
	if req.TextColor != nil {
		sponsor.TextColor = *req.TextColor
	}

	if err := s.repo.Sponsor.Create(ctx, sponsor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSponsorNameTaken
		}
		s.logger.Error("创建赞助商失败", zap.Error(err))
		return nil, err
	}

	return toSponsorResponse(sponsor), nil
}

func (s *sponsorService) GetByID(ctx context.Context, id string) (*dto.SponsorResponse, error) {
	sponsor, err := s.repo.Sponsor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSponsorNotFound
		}
		s.logger.Error("查询赞助商失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSponsorResponse(sponsor), nil
}

func (s *sponsorService) List(ctx context.Context) ([]dto.SponsorResponse, error) {
	sponsors, err := s.repo.Sponsor.List(ctx)
	if err != nil {
		s.logger.Error("列出赞助商失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SponsorResponse, 0, len(sponsors))
	for i := range sponsors {
		result = append(result, *toSponsorResponse(&sponsors[i]))
	}
	return result, nil
}

func (s *sponsorService) Update(ctx context.Context, id string, req *dto.UpdateSponsorRequest) (*dto.SponsorResponse, error) {
	sponsor, err := s.repo.Sponsor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSponsorNotFound
		}
		s.logger.Error("查询赞助商失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		sponsor.Name = *req.Name
	}
	if req.LogoURL != nil {
		sponsor.LogoURL = req.LogoURL
	}
	if req.WebsiteURL != nil {
		sponsor.WebsiteURL = req.WebsiteURL
	}
	if req.Tier != nil {
		sponsor.Tier = req.Tier
	}
	if req.PrimaryColor != nil {
		sponsor.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		sponsor.SecondaryColor = *req.SecondaryColor
	}
	if req.TextColor != nil {
		sponsor.TextColor = *req.TextColor
	}

	if err := s.repo.Sponsor.Update(ctx, sponsor); err != nil {
		s.logger.Error("更新赞助商失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSponsorResponse(sponsor), nil
}

// ── 内部辅助方法 ──

func toSponsorResponse(sponsor *model.Sponsor) *dto.SponsorResponse {
	return &dto.SponsorResponse{
		ID:             sponsor.SponsorID,
		Name:           sponsor.Name,
		LogoURL:        sponsor.LogoURL,
		WebsiteURL:     sponsor.WebsiteURL,
		Tier:           sponsor.Tier,
		PrimaryColor:   sponsor.PrimaryColor,
		SecondaryColor: sponsor.SecondaryColor,
		TextColor:      sponsor.TextColor,
	}
}
