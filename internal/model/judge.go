package model

import "time"

// EventJudge 评委席位表 — 对应 event_judges
// 一个席位属于一个赛事，有独立的展示名（同一登录账号可承载多个席位）。
// 会话、打分提交、评语均外键到席位而非用户账号。
type EventJudge struct {
	JudgeID    string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EventID    string    `gorm:"type:uuid;not null;index"                                 json:"event_id"`
	UserID     string    `gorm:"type:uuid;not null"                                       json:"user_id"`
	Name       string    `gorm:"type:varchar(255);not null"                               json:"name"`
	AssignedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"assigned_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (EventJudge) TableName() string { return "event_judges" }

// JudgeSession 评委会话表 — 对应 judge_sessions
// 每次登录产生一行；"在线"是派生状态：
// logged_out_at 为空且 last_activity 在在线窗口内。
type JudgeSession struct {
	SessionID    string     `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EventID      string     `gorm:"type:uuid;not null;index"                                 json:"event_id"`
	JudgeID      string     `gorm:"type:uuid;not null;index"                                 json:"judge_id"`
	LoggedInAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"logged_in_at"`
	LastActivity time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"last_activity"`
	LoggedOutAt  *time.Time `gorm:""                                                         json:"logged_out_at,omitempty"`
}

// TableName 指定表名
func (JudgeSession) TableName() string { return "judge_sessions" }

// IsOnline 按给定时刻与窗口判定该会话是否在线
func (s *JudgeSession) IsOnline(now time.Time, window time.Duration) bool {
	if s.LoggedOutAt != nil {
		return false
	}
	return now.Sub(s.LastActivity) < window
}
