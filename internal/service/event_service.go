package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/config"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/repository"
)

// ── 赛事模块业务错误 ──

var (
	ErrEventNotFound      = errors.New("赛事不存在")
	ErrEventNameTaken     = errors.New("赛事名称已存在")
	ErrEventTypeInvalid   = errors.New("赛事类型不合法")
	ErrEventDateInvalid   = errors.New("赛事结束时间必须晚于开始时间")
	ErrPhaseInvalid       = errors.New("评审阶段不合法")
	ErrTeamNotInEvent     = errors.New("队伍不属于该赛事")
	ErrEventSponsorAbsent = errors.New("指定的赞助商不存在")
)

// EventService 赛事业务接口
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest, callerID string) (*dto.EventResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EventResponse, error)
	List(ctx context.Context, req *dto.ListEventsRequest, callerID, callerRole string) ([]dto.EventResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, id string) error
	UpdateJudgingPhase(ctx context.Context, id string, req *dto.UpdateJudgingPhaseRequest, callerID string) error
	SetActiveTeam(ctx context.Context, id string, req *dto.UpdateActiveTeamRequest, callerID string) error
	Insights(ctx context.Context, id string) (*dto.EventInsightsResponse, error)
	ModeratorStatus(ctx context.Context, id string) (*dto.ModeratorStatusResponse, error)
}

type eventService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest, callerID string) (*dto.EventResponse, error) {
	if !model.ValidEventTypes[req.EventType] {
		return nil, ErrEventTypeInvalid
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, ErrEventDateInvalid
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return nil, ErrEventDateInvalid
	}
	if !endDate.After(startDate) {
		return nil, ErrEventDateInvalid
	}

	if req.SponsorID != nil {
		if _, err := s.repo.Sponsor.GetByID(ctx, *req.SponsorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEventSponsorAbsent
			}
			s.logger.Error("查询赞助商失败", zap.Error(err))
			return nil, err
		}
	}

	event := &model.Event{
		Name:         req.Name,
		Description:  req.Description,
		EventType:    req.EventType,
		Status:       model.EventStatusUpcoming,
		Location:     req.Location,
		StartDate:    startDate,
		EndDate:      endDate,
		MaxTeams:     req.MaxTeams,
		SponsorID:    req.SponsorID,
		JudgingPhase: model.PhaseNotStarted,
	}
	if req.RegistrationDeadline != nil {
		deadline, err := time.Parse(time.RFC3339, *req.RegistrationDeadline)
		if err != nil {
			return nil, ErrEventDateInvalid
		}
		event.RegistrationDeadline = &deadline
	}
	if req.MaxTeamSize != nil {
		event.MaxTeamSize = *req.MaxTeamSize
	} else {
		event.MaxTeamSize = 4
	}
	if req.MinTeamSize != nil {
		event.MinTeamSize = *req.MinTeamSize
	} else {
		event.MinTeamSize = 1
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEventNameTaken
		}
		s.logger.Error("创建赛事失败", zap.Error(err))
		return nil, err
	}

	s.appendActivity(ctx, event.EventID, &callerID, "Event Created", event.Name,
		model.ActivityEventCreated, "CalendarPlus", "primary")

	return s.toEventResponse(event, repository.EventCounts{}), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *eventService) GetByID(ctx context.Context, id string) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	counts, err := s.repo.Event.CountsByEvent(ctx, []string{id})
	if err != nil {
		s.logger.Error("统计赛事数量失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toEventResponse(event, counts[id]), nil
}

// ────────────────────── List ──────────────────────

// List 按角色过滤：评委只看到自己持有席位的赛事
func (s *eventService) List(ctx context.Context, req *dto.ListEventsRequest, callerID, callerRole string) ([]dto.EventResponse, error) {
	filter := repository.EventFilter{
		Status:    req.Status,
		EventType: req.EventType,
	}
	if callerRole == model.RoleJudge {
		filter.JudgeUserID = callerID
	}

	events, err := s.repo.Event.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出赛事失败", zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(events))
	for i := range events {
		ids = append(ids, events[i].EventID)
	}
	counts, err := s.repo.Event.CountsByEvent(ctx, ids)
	if err != nil {
		s.logger.Error("统计赛事数量失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *s.toEventResponse(&events[i], counts[events[i].EventID]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *eventService) Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.Location != nil {
		event.Location = req.Location
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			return nil, ErrEventDateInvalid
		}
		event.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			return nil, ErrEventDateInvalid
		}
		event.EndDate = endDate
	}
	if !event.EndDate.After(event.StartDate) {
		return nil, ErrEventDateInvalid
	}
	if req.RegistrationDeadline != nil {
		deadline, err := time.Parse(time.RFC3339, *req.RegistrationDeadline)
		if err != nil {
			return nil, ErrEventDateInvalid
		}
		event.RegistrationDeadline = &deadline
	}
	if req.MaxTeamSize != nil {
		event.MaxTeamSize = *req.MaxTeamSize
	}
	if req.MinTeamSize != nil {
		event.MinTeamSize = *req.MinTeamSize
	}
	if req.MaxTeams != nil {
		event.MaxTeams = req.MaxTeams
	}
	if req.SponsorID != nil {
		if _, err := s.repo.Sponsor.GetByID(ctx, *req.SponsorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEventSponsorAbsent
			}
			s.logger.Error("查询赞助商失败", zap.Error(err))
			return nil, err
		}
		event.SponsorID = req.SponsorID
	}

	if err := s.repo.Event.Update(ctx, event); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEventNameTaken
		}
		s.logger.Error("更新赛事失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	counts, err := s.repo.Event.CountsByEvent(ctx, []string{id})
	if err != nil {
		s.logger.Error("统计赛事数量失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toEventResponse(event, counts[id]), nil
}

// ────────────────────── Delete ──────────────────────

func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Event.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("删除赛事失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── UpdateJudgingPhase ──────────────────────

// UpdateJudgingPhase 切换评审阶段
// 允许任意方向切换（含回退），回退只记日志不拒绝。
func (s *eventService) UpdateJudgingPhase(ctx context.Context, id string, req *dto.UpdateJudgingPhaseRequest, callerID string) error {
	if !model.ValidJudgingPhases[req.JudgingPhase] {
		return ErrPhaseInvalid
	}

	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if phaseRank(req.JudgingPhase) < phaseRank(event.JudgingPhase) {
		s.logger.Warn("评审阶段回退",
			zap.String("event_id", id),
			zap.String("from", event.JudgingPhase),
			zap.String("to", req.JudgingPhase))
	}

	if err := s.repo.Event.UpdateJudgingPhase(ctx, id, req.JudgingPhase); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("更新评审阶段失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.appendActivity(ctx, id, &callerID, "Judging Phase Changed",
		event.JudgingPhase+" → "+req.JudgingPhase,
		model.ActivityPhaseChanged, "Workflow", "warning")
	return nil
}

// ────────────────────── SetActiveTeam ──────────────────────

func (s *eventService) SetActiveTeam(ctx context.Context, id string, req *dto.UpdateActiveTeamRequest, callerID string) error {
	if _, err := s.repo.Event.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if req.TeamID != nil {
		team, err := s.repo.Team.GetByID(ctx, *req.TeamID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotInEvent
			}
			s.logger.Error("查询队伍失败", zap.String("team_id", *req.TeamID), zap.Error(err))
			return err
		}
		if team.EventID != id {
			return ErrTeamNotInEvent
		}
	}

	if err := s.repo.Event.SetActiveTeam(ctx, id, req.TeamID, &callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("切换登台队伍失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Insights ──────────────────────

func (s *eventService) Insights(ctx context.Context, id string) (*dto.EventInsightsResponse, error) {
	if _, err := s.repo.Event.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	insights, err := s.repo.Event.Insights(ctx, id)
	if err != nil {
		s.logger.Error("查询赛事总览失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.EventInsightsResponse{
		TotalTeams:        insights.TotalTeams,
		ApprovedTeams:     insights.ApprovedTeams,
		TotalJudges:       insights.TotalJudges,
		CompletedScores:   insights.CompletedScores,
		TeamsWithScores:   insights.TeamsWithScores,
		AverageTotalScore: insights.AverageTotalScore,
	}, nil
}

// ────────────────────── ModeratorStatus ──────────────────────

// ModeratorStatus 主持人控制台快照：登台队伍、在线评委、逐队逐评委进度
func (s *eventService) ModeratorStatus(ctx context.Context, id string) (*dto.ModeratorStatusResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	teams, err := s.repo.Team.ListByEvent(ctx, id)
	if err != nil {
		s.logger.Error("列出队伍失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 在线快照失败降级为全员离线，不阻断控制台
	now := time.Now()
	window := s.cfg.Judging.PresenceWindow
	online := make([]dto.OnlineJudgeResponse, 0)
	presence, err := s.repo.Judge.PresenceRows(ctx, id)
	if err != nil {
		s.logger.Warn("查询评委在线状态失败", zap.String("id", id), zap.Error(err))
		presence = nil
	}
	onlineCount := 0
	for _, row := range presence {
		item := dto.OnlineJudgeResponse{
			JudgeID:     row.JudgeID,
			Name:        row.Name,
			TeamsScored: row.TeamsScored,
		}
		if row.LastActivity != nil {
			item.LastActivity = row.LastActivity.Format(time.RFC3339)
			item.Online = now.Sub(*row.LastActivity) < window
		}
		if item.Online {
			onlineCount++
		}
		online = append(online, item)
	}

	matrix, err := s.repo.Score.MatrixRows(ctx, id)
	if err != nil {
		s.logger.Error("查询打分矩阵失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	byTeam := make(map[string][]dto.JudgeScoreStatus)
	for _, cell := range matrix {
		byTeam[cell.TeamID] = append(byTeam[cell.TeamID], dto.JudgeScoreStatus{
			JudgeID:    cell.JudgeID,
			JudgeName:  cell.JudgeName,
			ScoreTotal: cell.TotalScore,
			IsComplete: cell.SubmittedAt != nil,
		})
	}

	teamStatuses := make([]dto.TeamJudgingStatus, 0, len(teams))
	var activeTeamName, activeTeamProject *string
	for i := range teams {
		team := &teams[i]
		if event.CurrentActiveTeamID != nil && team.TeamID == *event.CurrentActiveTeamID {
			activeTeamName = &team.Name
			activeTeamProject = team.ProjectTitle
		}
		teamStatuses = append(teamStatuses, dto.TeamJudgingStatus{
			TeamID:            team.TeamID,
			Name:              team.Name,
			ProjectTitle:      team.ProjectTitle,
			PresentationOrder: team.PresentationOrder,
			Status:            team.Status,
			JudgeScores:       byTeam[team.TeamID],
		})
	}

	return &dto.ModeratorStatusResponse{
		Event: dto.ModeratorEventInfo{
			ID:                  event.EventID,
			Name:                event.Name,
			JudgingPhase:        event.JudgingPhase,
			CurrentActiveTeamID: event.CurrentActiveTeamID,
			ActiveTeamName:      activeTeamName,
			ActiveTeamProject:   activeTeamProject,
		},
		OnlineJudges: online,
		Teams:        teamStatuses,
		Summary: dto.ModeratorSummary{
			TotalTeams:        len(teams),
			TotalJudges:       len(presence),
			OnlineJudgesCount: onlineCount,
			CurrentPhase:      event.JudgingPhase,
		},
	}, nil
}

// ── 内部辅助方法 ──

// phaseRank 阶段先后次序，用于识别回退
func phaseRank(phase string) int {
	switch phase {
	case model.PhaseNotStarted:
		return 0
	case model.PhaseInProgress:
		return 1
	case model.PhaseEnded:
		return 2
	}
	return -1
}

// appendActivity 追加操作日志，失败只告警不阻断主流程
func (s *eventService) appendActivity(ctx context.Context, eventID string, userID *string, title, description, activityType, icon, tone string) {
	entry := &model.ActivityLog{
		EventID:      &eventID,
		UserID:       userID,
		Title:        title,
		Description:  &description,
		ActivityType: &activityType,
		IconName:     &icon,
		Tone:         &tone,
	}
	if err := s.repo.Activity.Append(ctx, entry); err != nil {
		s.logger.Warn("写入操作日志失败", zap.String("event_id", eventID), zap.Error(err))
	}
}

func (s *eventService) toEventResponse(event *model.Event, counts repository.EventCounts) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:                  event.EventID,
		Name:                event.Name,
		Description:         event.Description,
		EventType:           event.EventType,
		Status:              event.Status,
		Location:            event.Location,
		StartDate:           event.StartDate.Format(time.RFC3339),
		EndDate:             event.EndDate.Format(time.RFC3339),
		MaxTeamSize:         event.MaxTeamSize,
		MinTeamSize:         event.MinTeamSize,
		MaxTeams:            event.MaxTeams,
		JudgingPhase:        event.JudgingPhase,
		CurrentActiveTeamID: event.CurrentActiveTeamID,
		TeamsCount:          counts.TeamsCount,
		JudgesCount:         counts.JudgesCount,
		CreatedAt:           event.CreatedAt.Format(time.RFC3339),
	}
	if event.RegistrationDeadline != nil {
		resp.RegistrationDeadline = event.RegistrationDeadline.Format(time.RFC3339)
	}
	if event.Sponsor != nil {
		resp.Sponsor = toSponsorResponse(event.Sponsor)
	}
	return resp
}
