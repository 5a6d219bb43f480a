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

// ── 评委模块业务错误 ──

var (
	ErrJudgeNotFound   = errors.New("评委席位不存在")
	ErrJudgeNameTaken  = errors.New("赛事内评委名称已被占用")
	ErrJudgeNotInEvent = errors.New("评委席位不属于该赛事")
	ErrNotSeatOwner    = errors.New("只能操作自己的评委席位")
)

// JudgeService 评委席位与在线状态业务接口
type JudgeService interface {
	Assign(ctx context.Context, eventID string, req *dto.AssignJudgeRequest, callerID string) (*dto.JudgeResponse, error)
	Remove(ctx context.Context, eventID, judgeID string) error
	ListByEvent(ctx context.Context, eventID string) ([]dto.JudgeResponse, error)
	AssignedSeats(ctx context.Context, userID string) ([]dto.JudgeResponse, error)
	Heartbeat(ctx context.Context, req *dto.HeartbeatRequest, callerID, callerRole string) error
	Logout(ctx context.Context, eventID, judgeID, callerID, callerRole string) error
	OnlineJudges(ctx context.Context, eventID string) ([]dto.OnlineJudgeResponse, error)
	Progress(ctx context.Context, eventID, judgeID, callerID, callerRole string) ([]dto.JudgeProgressResponse, error)
}

type judgeService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewJudgeService 创建 JudgeService 实例
func NewJudgeService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) JudgeService {
	return &judgeService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Assign ──────────────────────

func (s *judgeService) Assign(ctx context.Context, eventID string, req *dto.AssignJudgeRequest, callerID string) (*dto.JudgeResponse, error) {
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.User.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	judge := &model.EventJudge{
		EventID: eventID,
		UserID:  req.UserID,
		Name:    req.Name,
	}
	if err := s.repo.Judge.Assign(ctx, judge); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrJudgeNameTaken
		}
		s.logger.Error("分配评委席位失败", zap.Error(err))
		return nil, err
	}

	s.appendActivity(ctx, eventID, &callerID, "Judge Assigned", judge.Name,
		model.ActivityJudgeAssigned, "UserCheck", "primary")

	return toJudgeResponse(judge), nil
}

// ────────────────────── Remove ──────────────────────

func (s *judgeService) Remove(ctx context.Context, eventID, judgeID string) error {
	if err := s.repo.Judge.Remove(ctx, eventID, judgeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJudgeNotFound
		}
		s.logger.Error("移除评委席位失败",
			zap.String("event_id", eventID),
			zap.String("judge_id", judgeID),
			zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ListByEvent ──────────────────────

func (s *judgeService) ListByEvent(ctx context.Context, eventID string) ([]dto.JudgeResponse, error) {
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	judges, err := s.repo.Judge.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("列出评委席位失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.JudgeResponse, 0, len(judges))
	for i := range judges {
		result = append(result, *toJudgeResponse(&judges[i]))
	}
	return result, nil
}

// ────────────────────── AssignedSeats ──────────────────────

func (s *judgeService) AssignedSeats(ctx context.Context, userID string) ([]dto.JudgeResponse, error) {
	judges, err := s.repo.Judge.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询席位失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.JudgeResponse, 0, len(judges))
	for i := range judges {
		result = append(result, *toJudgeResponse(&judges[i]))
	}
	return result, nil
}

// ────────────────────── Heartbeat ──────────────────────

// Heartbeat 在线心跳：刷新最近未登出会话的活动时间；
// 没有会话时自愈式地开一条（崩溃后的客户端无需重新登录流程）。
func (s *judgeService) Heartbeat(ctx context.Context, req *dto.HeartbeatRequest, callerID, callerRole string) error {
	judge, err := s.ownedSeat(ctx, req.EventID, req.JudgeID, callerID, callerRole)
	if err != nil {
		return err
	}

	now := time.Now()
	session, err := s.repo.Judge.FindOpenSession(ctx, req.EventID, judge.JudgeID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询会话失败", zap.String("judge_id", judge.JudgeID), zap.Error(err))
			return err
		}
		// 自愈：开新会话
		session = &model.JudgeSession{
			EventID:      req.EventID,
			JudgeID:      judge.JudgeID,
			LoggedInAt:   now,
			LastActivity: now,
		}
		if err := s.repo.Judge.CreateSession(ctx, session); err != nil {
			s.logger.Error("创建会话失败", zap.String("judge_id", judge.JudgeID), zap.Error(err))
			return err
		}
		return nil
	}

	if err := s.repo.Judge.TouchSession(ctx, session.SessionID, now); err != nil {
		s.logger.Error("刷新心跳失败", zap.String("session_id", session.SessionID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Logout ──────────────────────

func (s *judgeService) Logout(ctx context.Context, eventID, judgeID, callerID, callerRole string) error {
	if _, err := s.ownedSeat(ctx, eventID, judgeID, callerID, callerRole); err != nil {
		return err
	}
	if err := s.repo.Judge.CloseSessions(ctx, eventID, judgeID, time.Now()); err != nil {
		s.logger.Error("关闭会话失败", zap.String("judge_id", judgeID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── OnlineJudges ──────────────────────

// OnlineJudges 在线快照；"在线"只在此处派生：
// 未登出会话且最近活动落在配置的时间窗口内
func (s *judgeService) OnlineJudges(ctx context.Context, eventID string) ([]dto.OnlineJudgeResponse, error) {
	rows, err := s.repo.Judge.PresenceRows(ctx, eventID)
	if err != nil {
		s.logger.Error("查询评委在线状态失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	now := time.Now()
	window := s.cfg.Judging.PresenceWindow
	result := make([]dto.OnlineJudgeResponse, 0, len(rows))
	for _, row := range rows {
		item := dto.OnlineJudgeResponse{
			JudgeID:     row.JudgeID,
			Name:        row.Name,
			TeamsScored: row.TeamsScored,
		}
		if row.LastActivity != nil {
			item.LastActivity = row.LastActivity.Format(time.RFC3339)
			item.Online = now.Sub(*row.LastActivity) < window
		}
		result = append(result, item)
	}
	return result, nil
}

// ────────────────────── Progress ──────────────────────

func (s *judgeService) Progress(ctx context.Context, eventID, judgeID, callerID, callerRole string) ([]dto.JudgeProgressResponse, error) {
	if _, err := s.ownedSeat(ctx, eventID, judgeID, callerID, callerRole); err != nil {
		return nil, err
	}

	rows, err := s.repo.Score.JudgeProgressRows(ctx, eventID, judgeID)
	if err != nil {
		s.logger.Error("查询打分进度失败", zap.String("judge_id", judgeID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.JudgeProgressResponse, 0, len(rows))
	for _, row := range rows {
		item := dto.JudgeProgressResponse{
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			ProjectTitle: row.ProjectTitle,
			Status:       "not-started",
			TotalScore:   row.TotalScore,
		}
		if row.StartedAt != nil {
			item.StartedAt = row.StartedAt.Format(time.RFC3339)
			item.Status = "in-progress"
		}
		if row.SubmittedAt != nil {
			item.SubmittedAt = row.SubmittedAt.Format(time.RFC3339)
			item.Status = "completed"
		}
		result = append(result, item)
	}
	return result, nil
}

// ── 内部辅助方法 ──

// ownedSeat 校验席位存在、属于该赛事，且调用者是席位持有人（管理员/主持人豁免）
func (s *judgeService) ownedSeat(ctx context.Context, eventID, judgeID, callerID, callerRole string) (*model.EventJudge, error) {
	judge, err := s.repo.Judge.GetByID(ctx, judgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJudgeNotFound
		}
		s.logger.Error("查询评委席位失败", zap.String("judge_id", judgeID), zap.Error(err))
		return nil, err
	}
	if judge.EventID != eventID {
		return nil, ErrJudgeNotInEvent
	}
	if callerRole == model.RoleJudge && judge.UserID != callerID {
		return nil, ErrNotSeatOwner
	}
	return judge, nil
}

func (s *judgeService) appendActivity(ctx context.Context, eventID string, userID *string, title, description, activityType, icon, tone string) {
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

func toJudgeResponse(judge *model.EventJudge) *dto.JudgeResponse {
	return &dto.JudgeResponse{
		ID:         judge.JudgeID,
		EventID:    judge.EventID,
		UserID:     judge.UserID,
		Name:       judge.Name,
		AssignedAt: judge.AssignedAt.Format(time.RFC3339),
	}
}
