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

// ── 打分模块业务错误 ──

var (
	ErrScoringClosed      = errors.New("评审已结束，不再接受打分")
	ErrScoresEmpty        = errors.New("评分列表不能为空")
	ErrCriterionUnknown   = errors.New("评分标准不存在")
	ErrCriterionDuplicate = errors.New("同一标准不能重复打分")
	ErrScoreOutOfRange    = errors.New("分值超出该标准的允许范围")
)

// ScoreService 打分与排行榜业务接口
type ScoreService interface {
	ListCriteria(ctx context.Context) ([]dto.RubricCriterionResponse, error)
	Submit(ctx context.Context, req *dto.SubmitScoresRequest, callerID, callerRole string) error
	Leaderboard(ctx context.Context, eventID string) ([]dto.LeaderboardRow, error)
	Matrix(ctx context.Context, eventID string) ([]dto.ScoringMatrixCell, error)
}

type scoreService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScoreService 创建 ScoreService 实例
func NewScoreService(repo *repository.Repository, logger *zap.Logger) ScoreService {
	return &scoreService{repo: repo, logger: logger}
}

// ────────────────────── ListCriteria ──────────────────────

func (s *scoreService) ListCriteria(ctx context.Context) ([]dto.RubricCriterionResponse, error) {
	criteria, err := s.repo.Rubric.List(ctx)
	if err != nil {
		s.logger.Error("列出评分标准失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RubricCriterionResponse, 0, len(criteria))
	for i := range criteria {
		c := &criteria[i]
		result = append(result, dto.RubricCriterionResponse{
			ID:              c.CriterionID,
			Name:            c.Name,
			ShortName:       c.ShortName,
			Description:     c.Description,
			MaxScore:        c.MaxScore,
			DisplayOrder:    c.DisplayOrder,
			IconName:        c.IconName,
			GuidingQuestion: c.GuidingQuestion,
		})
	}
	return result, nil
}

// ────────────────────── Submit ──────────────────────

// Submit 打分提交
// 前置校验全部通过后才进入写事务：
// 阶段闸门（ended 拒绝）、席位归属、队伍归属、
// 标准存在且不重复、分值落在 [0, 标准上限]。
func (s *scoreService) Submit(ctx context.Context, req *dto.SubmitScoresRequest, callerID, callerRole string) error {
	if len(req.Scores) == 0 {
		return ErrScoresEmpty
	}

	event, err := s.repo.Event.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("event_id", req.EventID), zap.Error(err))
		return err
	}
	if event.JudgingPhase == model.PhaseEnded {
		return ErrScoringClosed
	}

	team, err := s.repo.Team.GetByID(ctx, req.TeamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		s.logger.Error("查询队伍失败", zap.String("team_id", req.TeamID), zap.Error(err))
		return err
	}
	if team.EventID != req.EventID {
		return ErrTeamNotInEvent
	}

	judge, err := s.repo.Judge.GetByID(ctx, req.JudgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJudgeNotFound
		}
		s.logger.Error("查询评委席位失败", zap.String("judge_id", req.JudgeID), zap.Error(err))
		return err
	}
	if judge.EventID != req.EventID {
		return ErrJudgeNotInEvent
	}
	if callerRole == model.RoleJudge && judge.UserID != callerID {
		return ErrNotSeatOwner
	}

	criteria, err := s.repo.Rubric.List(ctx)
	if err != nil {
		s.logger.Error("列出评分标准失败", zap.Error(err))
		return err
	}
	maxByCriterion := make(map[string]int, len(criteria))
	for i := range criteria {
		maxByCriterion[criteria[i].CriterionID] = criteria[i].MaxScore
	}

	seen := make(map[string]bool, len(req.Scores))
	values := make([]repository.ScoreValue, 0, len(req.Scores))
	for _, entry := range req.Scores {
		maxScore, ok := maxByCriterion[entry.CriterionID]
		if !ok {
			return ErrCriterionUnknown
		}
		if seen[entry.CriterionID] {
			return ErrCriterionDuplicate
		}
		seen[entry.CriterionID] = true
		if entry.Score < 0 || entry.Score > maxScore {
			return ErrScoreOutOfRange
		}
		values = append(values, repository.ScoreValue{
			CriteriaID: entry.CriterionID,
			Score:      entry.Score,
			Reflection: entry.Reflection,
		})
	}

	err = s.repo.Score.SubmitScores(ctx, repository.SubmitScoresParams{
		EventID:          req.EventID,
		TeamID:           req.TeamID,
		JudgeID:          req.JudgeID,
		Values:           values,
		OverallComments:  req.OverallComments,
		TimeSpentSeconds: req.TimeSpentSeconds,
		SubmittedAt:      time.Now(),
		ActorUserID:      &callerID,
	})
	if err != nil {
		s.logger.Error("打分提交失败",
			zap.String("judge_id", req.JudgeID),
			zap.String("team_id", req.TeamID),
			zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Leaderboard ──────────────────────

func (s *scoreService) Leaderboard(ctx context.Context, eventID string) ([]dto.LeaderboardRow, error) {
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	roster, err := s.repo.Team.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("列出队伍失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	rows, err := s.repo.Score.SubmittedScoreRows(ctx, eventID)
	if err != nil {
		s.logger.Error("查询评分明细失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return BuildLeaderboard(roster, rows), nil
}

// ────────────────────── Matrix ──────────────────────

func (s *scoreService) Matrix(ctx context.Context, eventID string) ([]dto.ScoringMatrixCell, error) {
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	rows, err := s.repo.Score.MatrixRows(ctx, eventID)
	if err != nil {
		s.logger.Error("查询打分矩阵失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScoringMatrixCell, 0, len(rows))
	for _, row := range rows {
		cell := dto.ScoringMatrixCell{
			JudgeID:    row.JudgeID,
			JudgeName:  row.JudgeName,
			TeamID:     row.TeamID,
			TeamName:   row.TeamName,
			TotalScore: row.TotalScore,
			IsComplete: row.SubmittedAt != nil,
		}
		if row.SubmittedAt != nil {
			cell.SubmittedAt = row.SubmittedAt.Format(time.RFC3339)
		}
		result = append(result, cell)
	}
	return result, nil
}
