package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/model"
)

// EventFilter 赛事列表筛选条件
// JudgeUserID 非空时只返回该用户持有评委席位的赛事
type EventFilter struct {
	Status      string
	EventType   string
	JudgeUserID string
}

// EventCounts 赛事维度的队伍/评委数量
type EventCounts struct {
	EventID     string `gorm:"column:event_id"`
	TeamsCount  int64  `gorm:"column:teams_count"`
	JudgesCount int64  `gorm:"column:judges_count"`
}

// EventInsights 赛事数据总览行（管理端）
type EventInsights struct {
	TotalTeams        int64    `gorm:"column:total_teams"`
	ApprovedTeams     int64    `gorm:"column:approved_teams"`
	TotalJudges       int64    `gorm:"column:total_judges"`
	CompletedScores   int64    `gorm:"column:completed_scores"`
	TeamsWithScores   int64    `gorm:"column:teams_with_scores"`
	AverageTotalScore *float64 `gorm:"column:average_total_score"`
}

// EventRepository 赛事数据访问接口
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, filter EventFilter) ([]model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
	CountsByEvent(ctx context.Context, eventIDs []string) (map[string]EventCounts, error)
	UpdateJudgingPhase(ctx context.Context, id, phase string) error
	SetActiveTeam(ctx context.Context, eventID string, teamID *string, actorID *string) error
	Insights(ctx context.Context, eventID string) (*EventInsights, error)
}

// eventRepo EventRepository 的 GORM 实现
type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo 创建 EventRepository 实例
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("Sponsor").
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) List(ctx context.Context, filter EventFilter) ([]model.Event, error) {
	db := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Preload("Sponsor")

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.EventType != "" {
		db = db.Where("event_type = ?", filter.EventType)
	}
	if filter.JudgeUserID != "" {
		db = db.Where(
			"id IN (SELECT event_id FROM event_judges WHERE user_id = ?)",
			filter.JudgeUserID,
		)
	}

	var events []model.Event
	err := db.Order("start_date DESC").
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Update 全量保存赛事（调用方负责只改白名单字段）
func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	event.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete 删除赛事，依赖数据库外键级联清理队伍/提交/打分等从属数据
func (r *eventRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *eventRepo) CountsByEvent(ctx context.Context, eventIDs []string) (map[string]EventCounts, error) {
	if len(eventIDs) == 0 {
		return map[string]EventCounts{}, nil
	}

	var rows []EventCounts
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			e.id AS event_id,
			(SELECT COUNT(*) FROM teams t WHERE t.event_id = e.id) AS teams_count,
			(SELECT COUNT(*) FROM event_judges ej WHERE ej.event_id = e.id) AS judges_count
		FROM events e
		WHERE e.id IN ?
	`, eventIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]EventCounts, len(rows))
	for _, row := range rows {
		counts[row.EventID] = row
	}
	return counts, nil
}

func (r *eventRepo) UpdateJudgingPhase(ctx context.Context, id, phase string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"judging_phase": phase, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetActiveTeam 原子切换登台队伍
// 同一事务内完成：更新赛事指针 + 选中队伍置 active、其余队伍回 waiting。
// teamID 为 nil 表示清空：指针置 NULL，所有 active 队伍回 waiting。
// 事务中途失败全部回滚，不可能出现两支队伍同时 active。
func (r *eventRepo) SetActiveTeam(ctx context.Context, eventID string, teamID *string, actorID *string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Event{}).
			Where("id = ?", eventID).
			Updates(map[string]interface{}{
				"current_active_team_id": teamID,
				"updated_at":             time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if teamID == nil {
			return tx.Model(&model.Team{}).
				Where("event_id = ? AND status = ?", eventID, model.TeamStatusActive).
				Updates(map[string]interface{}{"status": model.TeamStatusWaiting, "updated_at": time.Now()}).Error
		}

		if err := tx.Exec(`
			UPDATE teams
			SET status = CASE WHEN id = ? THEN 'active' ELSE 'waiting' END,
			    updated_at = NOW()
			WHERE event_id = ?
		`, *teamID, eventID).Error; err != nil {
			return err
		}

		var teamName string
		if err := tx.Raw(`SELECT name FROM teams WHERE id = ?`, *teamID).Scan(&teamName).Error; err != nil {
			return err
		}

		activityType := model.ActivityTeamActivated
		icon := "Users"
		tone := "primary"
		entry := model.ActivityLog{
			EventID:      &eventID,
			UserID:       actorID,
			Title:        "Team Activated",
			Description:  &teamName,
			ActivityType: &activityType,
			IconName:     &icon,
			Tone:         &tone,
		}
		return tx.Create(&entry).Error
	})
}

// Insights 赛事数据总览聚合
func (r *eventRepo) Insights(ctx context.Context, eventID string) (*EventInsights, error) {
	var row EventInsights
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(DISTINCT t.id) AS total_teams,
			COUNT(DISTINCT CASE WHEN t.status = 'approved' THEN t.id END) AS approved_teams,
			COUNT(DISTINCT ej.id) AS total_judges,
			COUNT(DISTINCT ss.id) FILTER (WHERE ss.submitted_at IS NOT NULL) AS completed_scores,
			COUNT(DISTINCT ss.team_id) FILTER (WHERE ss.submitted_at IS NOT NULL) AS teams_with_scores,
			ROUND(AVG(
				(SELECT SUM(score) FROM scores WHERE submission_id = ss.id)
			) FILTER (WHERE ss.submitted_at IS NOT NULL), 2) AS average_total_score
		FROM events e
		LEFT JOIN teams t ON e.id = t.event_id
		LEFT JOIN event_judges ej ON e.id = ej.event_id
		LEFT JOIN score_submissions ss ON e.id = ss.event_id
		WHERE e.id = ?
	`, eventID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
