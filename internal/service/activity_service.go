package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/repository"
)

// ActivityService 活动日志业务接口
type ActivityService interface {
	List(ctx context.Context, req *dto.ListActivityRequest) ([]dto.ActivityResponse, int64, error)
}

type activityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

func (s *activityService) List(ctx context.Context, req *dto.ListActivityRequest) ([]dto.ActivityResponse, int64, error) {
	entries, total, err := s.repo.Activity.List(ctx, req.EventID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出活动日志失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ActivityResponse, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		result = append(result, dto.ActivityResponse{
			ID:           entry.ActivityID,
			EventID:      entry.EventID,
			UserID:       entry.UserID,
			Title:        entry.Title,
			Description:  entry.Description,
			ActivityType: entry.ActivityType,
			IconName:     entry.IconName,
			Tone:         entry.Tone,
			CreatedAt:    entry.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, total, nil
}
