package model

import "time"

// ── 活动类型 ──

const (
	ActivityEventCreated   = "event_created"
	ActivityEventStarted   = "event_started"
	ActivityJudgeAssigned  = "judge_assigned"
	ActivityTeamActivated  = "team_activated"
	ActivityPhaseChanged   = "phase_changed"
	ActivityScoreSubmitted = "score_submitted"
)

// ActivityLog 操作日志表 — 对应 activity_log
// 追加写（append-only），供管理端时间线展示
type ActivityLog struct {
	ActivityID   string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EventID      *string   `gorm:"type:uuid;index"                                          json:"event_id,omitempty"`
	UserID       *string   `gorm:"type:uuid"                                                json:"user_id,omitempty"`
	Title        string    `gorm:"type:varchar(255);not null"                               json:"title"`
	Description  *string   `gorm:"type:text"                                                json:"description,omitempty"`
	ActivityType *string   `gorm:"type:varchar(50)"                                         json:"activity_type,omitempty"`
	IconName     *string   `gorm:"type:varchar(50)"                                         json:"icon_name,omitempty"`
	Tone         *string   `gorm:"type:varchar(20)"                                         json:"tone,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

// TableName 指定表名
func (ActivityLog) TableName() string { return "activity_log" }
