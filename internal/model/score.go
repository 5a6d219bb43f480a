package model

import "time"

// ScoreSubmission 打分提交表 — 对应 score_submissions
// 幂等单位：每 (judge, team) 至多一行；重复提交覆盖而非追加。
// submitted_at 为空表示"进行中"，聚合统计只认已提交的行。
type ScoreSubmission struct {
	SubmissionID     string     `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	JudgeID          string     `gorm:"type:uuid;not null;uniqueIndex:uniq_judge_team"           json:"judge_id"`
	EventID          string     `gorm:"type:uuid;not null;index"                                 json:"event_id"`
	TeamID           string     `gorm:"type:uuid;not null;uniqueIndex:uniq_judge_team"           json:"team_id"`
	StartedAt        time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"started_at"`
	SubmittedAt      *time.Time `gorm:""                                                         json:"submitted_at,omitempty"`
	TimeSpentSeconds *int       `gorm:""                                                         json:"time_spent_seconds,omitempty"`
	BaseModel
}

// TableName 指定表名
func (ScoreSubmission) TableName() string { return "score_submissions" }

// IsSubmitted 该提交是否已完成（而非仅开始）
func (s *ScoreSubmission) IsSubmitted() bool { return s.SubmittedAt != nil }

// Score 单项打分表 — 对应 scores
// 每 (judge, team, criterion) 单值；分值由数据库 CHECK 约束兜底，
// 应用层在写入前按 criterion.max_score 预校验。
type Score struct {
	ScoreID          string  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SubmissionID     string  `gorm:"type:uuid;not null;index"                                 json:"submission_id"`
	JudgeID          string  `gorm:"type:uuid;not null"                                       json:"judge_id"`
	TeamID           string  `gorm:"type:uuid;not null;index"                                 json:"team_id"`
	RubricCriteriaID string  `gorm:"type:uuid;not null"                                       json:"rubric_criteria_id"`
	Score            int     `gorm:"not null"                                                 json:"score"`
	Reflection       *string `gorm:"type:text"                                                json:"reflection,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Score) TableName() string { return "scores" }

// JudgeComment 评委总评表 — 对应 judge_comments
// 每 (judge, team) 一条自由文本总评，随打分一并 upsert
type JudgeComment struct {
	CommentID    string `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SubmissionID string `gorm:"type:uuid;not null;index"                                 json:"submission_id"`
	JudgeID      string `gorm:"type:uuid;not null;uniqueIndex:uniq_comment_judge_team"   json:"judge_id"`
	TeamID       string `gorm:"type:uuid;not null;uniqueIndex:uniq_comment_judge_team"   json:"team_id"`
	Comments     string `gorm:"type:text"                                                json:"comments"`
	BaseModel
}

// TableName 指定表名
func (JudgeComment) TableName() string { return "judge_comments" }
