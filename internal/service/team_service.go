package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/repository"
)

// ── 队伍模块业务错误 ──

var (
	ErrTeamNotFound      = errors.New("队伍不存在")
	ErrTeamNameTaken     = errors.New("赛事内队名或出场顺序已被占用")
	ErrTeamStatusInvalid = errors.New("队伍状态不合法")
	ErrTeamMemberLimit   = errors.New("队伍人数已达上限")
	ErrMemberNotFound    = errors.New("队伍成员不存在")
)

// TeamService 队伍业务接口
type TeamService interface {
	Create(ctx context.Context, eventID string, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeamResponse, error)
	GetDetail(ctx context.Context, id string) (*dto.TeamDetailResponse, error)
	ListByEvent(ctx context.Context, eventID string) ([]dto.TeamResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateTeamStatusRequest) error
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, teamID string, req *dto.AddTeamMemberRequest) (*dto.TeamMemberResponse, error)
	RemoveMember(ctx context.Context, teamID, memberID string) error
}

type teamService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeamService 创建 TeamService 实例
func NewTeamService(repo *repository.Repository, logger *zap.Logger) TeamService {
	return &teamService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *teamService) Create(ctx context.Context, eventID string, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	team := &model.Team{
		EventID:           eventID,
		Name:              req.Name,
		ProjectTitle:      req.ProjectTitle,
		Description:       req.Description,
		PresentationOrder: req.PresentationOrder,
		Status:            model.TeamStatusWaiting,
		ProjectURL:        req.ProjectURL,
	}
	if err := s.repo.Team.Create(ctx, team); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeamNameTaken
		}
		s.logger.Error("创建队伍失败", zap.Error(err))
		return nil, err
	}
	return toTeamResponse(team), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *teamService) GetByID(ctx context.Context, id string) (*dto.TeamResponse, error) {
	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("查询队伍失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTeamResponse(team), nil
}

// ────────────────────── GetDetail ──────────────────────

// GetDetail 队伍详情含已提交的逐评委评分细目（主持人/管理端）
func (s *teamService) GetDetail(ctx context.Context, id string) (*dto.TeamDetailResponse, error) {
	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("查询队伍失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	rows, err := s.repo.Team.ScoreDetails(ctx, id)
	if err != nil {
		s.logger.Error("查询队伍评分细目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	scores := make([]dto.TeamScoreDetail, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, dto.TeamScoreDetail{
			JudgeName:       row.JudgeName,
			CriterionName:   row.CriterionName,
			ShortName:       row.ShortName,
			Score:           row.Score,
			Reflection:      row.Reflection,
			SubmittedAt:     row.SubmittedAt.Format(time.RFC3339),
			OverallComments: row.OverallComments,
		})
	}

	resp := toTeamResponse(team)
	return &dto.TeamDetailResponse{
		Team:    *resp,
		Members: resp.Members,
		Scores:  scores,
	}, nil
}

// ────────────────────── ListByEvent ──────────────────────

func (s *teamService) ListByEvent(ctx context.Context, eventID string) ([]dto.TeamResponse, error) {
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	teams, err := s.repo.Team.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("列出队伍失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		result = append(result, *toTeamResponse(&teams[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *teamService) Update(ctx context.Context, id string, req *dto.UpdateTeamRequest) (*dto.TeamResponse, error) {
	team, err := s.repo.Team.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("查询队伍失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.ProjectTitle != nil {
		team.ProjectTitle = req.ProjectTitle
	}
	if req.Description != nil {
		team.Description = req.Description
	}
	if req.PresentationOrder != nil {
		team.PresentationOrder = req.PresentationOrder
	}
	if req.ProjectURL != nil {
		team.ProjectURL = req.ProjectURL
	}

	if err := s.repo.Team.Update(ctx, team); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeamNameTaken
		}
		s.logger.Error("更新队伍失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTeamResponse(team), nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *teamService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateTeamStatusRequest) error {
	if !model.ValidTeamStatuses[req.Status] {
		return ErrTeamStatusInvalid
	}
	if err := s.repo.Team.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		s.logger.Error("更新队伍状态失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *teamService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Team.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		s.logger.Error("删除队伍失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── AddMember ──────────────────────

func (s *teamService) AddMember(ctx context.Context, teamID string, req *dto.AddTeamMemberRequest) (*dto.TeamMemberResponse, error) {
	team, err := s.repo.Team.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("查询队伍失败", zap.String("id", teamID), zap.Error(err))
		return nil, err
	}

	event, err := s.repo.Event.GetByID(ctx, team.EventID)
	if err != nil {
		s.logger.Error("查询赛事失败", zap.String("event_id", team.EventID), zap.Error(err))
		return nil, err
	}
	if event.MaxTeamSize > 0 && len(team.Members) >= event.MaxTeamSize {
		return nil, ErrTeamMemberLimit
	}

	member := &model.TeamMember{
		TeamID: teamID,
		Name:   req.Name,
		Email:  req.Email,
	}
	if err := s.repo.Team.AddMember(ctx, member); err != nil {
		s.logger.Error("添加队伍成员失败", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}

	return &dto.TeamMemberResponse{
		ID:    member.MemberID,
		Name:  member.Name,
		Email: member.Email,
	}, nil
}

// ────────────────────── RemoveMember ──────────────────────

func (s *teamService) RemoveMember(ctx context.Context, teamID, memberID string) error {
	if err := s.repo.Team.RemoveMember(ctx, teamID, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		s.logger.Error("移除队伍成员失败",
			zap.String("team_id", teamID),
			zap.String("member_id", memberID),
			zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toTeamResponse(team *model.Team) *dto.TeamResponse {
	members := make([]dto.TeamMemberResponse, 0, len(team.Members))
	for i := range team.Members {
		members = append(members, dto.TeamMemberResponse{
			ID:    team.Members[i].MemberID,
			Name:  team.Members[i].Name,
			Email: team.Members[i].Email,
		})
	}
	return &dto.TeamResponse{
		ID:                team.TeamID,
		EventID:           team.EventID,
		Name:              team.Name,
		ProjectTitle:      team.ProjectTitle,
		Description:       team.Description,
		PresentationOrder: team.PresentationOrder,
		Status:            team.Status,
		ProjectURL:        team.ProjectURL,
		Members:           members,
		CreatedAt:         team.CreatedAt.Format(time.RFC3339),
	}
}
