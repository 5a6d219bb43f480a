package service

import (
	"go.uber.org/zap"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/config"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/repository"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/pkg/jwt"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	User     UserService
	Sponsor  SponsorService
	Event    EventService
	Team     TeamService
	Judge    JudgeService
	Score    ScoreService
	Activity ActivityService
	Export   ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:     NewUserService(repo, logger),
		Sponsor:  NewSponsorService(repo, logger),
		Event:    NewEventService(cfg, repo, logger),
		Team:     NewTeamService(repo, logger),
		Judge:    NewJudgeService(cfg, repo, logger),
		Score:    NewScoreService(repo, logger),
		Activity: NewActivityService(repo, logger),
		Export:   NewExportService(repo, logger),
	}
}
