package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
)

// JudgePresenceRow 评委在线快照行
// LastActivity 取该评委未登出会话中的最新活动时间，无会话时为空
type JudgePresenceRow struct {
	JudgeID      string     `gorm:"column:judge_id"`
	Name         string     `gorm:"column:name"`
	LastActivity *time.Time `gorm:"column:last_activity"`
	TeamsScored  int        `gorm:"column:teams_scored"`
}

// JudgeRepository 评委席位与会话数据访问接口
type JudgeRepository interface {
	Assign(ctx context.Context, judge *model.EventJudge) error
	GetByID(ctx context.Context, id string) (*model.EventJudge, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*model.EventJudge, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.EventJudge, error)
	ListByUser(ctx context.Context, userID string) ([]model.EventJudge, error)
	Remove(ctx context.Context, eventID, judgeID string) error

	FindOpenSession(ctx context.Context, eventID, judgeID string) (*model.JudgeSession, error)
	CreateSession(ctx context.Context, session *model.JudgeSession) error
	TouchSession(ctx context.Context, sessionID string, at time.Time) error
	CloseSessions(ctx context.Context, eventID, judgeID string, at time.Time) error
	PresenceRows(ctx context.Context, eventID string) ([]JudgePresenceRow, error)
}

// judgeRepo JudgeRepository 的 GORM 实现
type judgeRepo struct {
	db *gorm.DB
}

// NewJudgeRepo 创建 JudgeRepository 实例
func NewJudgeRepo(db *gorm.DB) JudgeRepository {
	return &judgeRepo{db: db}
}

func (r *judgeRepo) Assign(ctx context.Context, judge *model.EventJudge) error {
	return r.db.WithContext(ctx).Create(judge).Error
}

func (r *judgeRepo) GetByID(ctx context.Context, id string) (*model.EventJudge, error) {
	var judge model.EventJudge
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&judge).Error
	if err != nil {
		return nil, err
	}
	return &judge, nil
}

func (r *judgeRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*model.EventJudge, error) {
	var judge model.EventJudge
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&judge).Error
	if err != nil {
		return nil, err
	}
	return &judge, nil
}

func (r *judgeRepo) ListByEvent(ctx context.Context, eventID string) ([]model.EventJudge, error) {
	var judges []model.EventJudge
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("name ASC").
		Find(&judges).Error
	if err != nil {
		return nil, err
	}
	return judges, nil
}

// ListByUser 返回某账号在所有赛事中持有的席位
func (r *judgeRepo) ListByUser(ctx context.Context, userID string) ([]model.EventJudge, error) {
	var judges []model.EventJudge
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("assigned_at DESC").
		Find(&judges).Error
	if err != nil {
		return nil, err
	}
	return judges, nil
}

// Remove 移除席位，级联删除其会话/提交/打分/评语
func (r *judgeRepo) Remove(ctx context.Context, eventID, judgeID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND event_id = ?", judgeID, eventID).
		Delete(&model.EventJudge{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindOpenSession 查找该席位最近一条未登出会话
func (r *judgeRepo) FindOpenSession(ctx context.Context, eventID, judgeID string) (*model.JudgeSession, error) {
	var session model.JudgeSession
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND judge_id = ? AND logged_out_at IS NULL", eventID, judgeID).
		Order("logged_in_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *judgeRepo) CreateSession(ctx context.Context, session *model.JudgeSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *judgeRepo) TouchSession(ctx context.Context, sessionID string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.JudgeSession{}).
		Where("id = ? AND logged_out_at IS NULL", sessionID).
		Update("last_activity", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CloseSessions 关闭该席位的全部未登出会话（登出幂等）
func (r *judgeRepo) CloseSessions(ctx context.Context, eventID, judgeID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.JudgeSession{}).
		Where("event_id = ? AND judge_id = ? AND logged_out_at IS NULL", eventID, judgeID).
		Update("logged_out_at", at).Error
}

// PresenceRows 赛事下各席位的在线快照原始行
// 在线与否的判定放在服务层（时间窗口是配置项）
func (r *judgeRepo) PresenceRows(ctx context.Context, eventID string) ([]JudgePresenceRow, error) {
	var rows []JudgePresenceRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			ej.id AS judge_id,
			ej.name,
			(SELECT MAX(js.last_activity) FROM judge_sessions js
			 WHERE js.judge_id = ej.id AND js.logged_out_at IS NULL) AS last_activity,
			(SELECT COUNT(*) FROM score_submissions ss
			 WHERE ss.judge_id = ej.id AND ss.submitted_at IS NOT NULL) AS teams_scored
		FROM event_judges ej
		WHERE ej.event_id = ?
		ORDER BY ej.name ASC
	`, eventID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
