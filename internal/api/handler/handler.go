package handler

import "github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Sponsor  *SponsorHandler
	Event    *EventHandler
	Team     *TeamHandler
	Judge    *JudgeHandler
	Score    *ScoreHandler
	Activity *ActivityHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		User:     NewUserHandler(svc.User),
		Sponsor:  NewSponsorHandler(svc.Sponsor),
		Event:    NewEventHandler(svc.Event),
		Team:     NewTeamHandler(svc.Team),
		Judge:    NewJudgeHandler(svc.Judge),
		Score:    NewScoreHandler(svc.Score),
		Activity: NewActivityHandler(svc.Activity),
		Export:   NewExportHandler(svc.Export),
	}
}
