package dto

// ── 评委模块 DTO ──

// AssignJudgeRequest 分配评委席位请求
type AssignJudgeRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Name   string `json:"name"    binding:"required,min=1,max=255"`
}

// JudgeResponse 评委席位响应
type JudgeResponse struct {
	ID         string `json:"id"`
	EventID    string `json:"event_id"`
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	AssignedAt string `json:"assigned_at"`
}

// HeartbeatRequest 在线心跳请求
type HeartbeatRequest struct {
	EventID string `json:"event_id" binding:"required,uuid"`
	JudgeID string `json:"judge_id" binding:"required,uuid"`
}

// OnlineJudgeResponse 评委在线状态快照
type OnlineJudgeResponse struct {
	JudgeID      string `json:"judge_id"`
	Name         string `json:"name"`
	Online       bool   `json:"online"`
	LastActivity string `json:"last_activity,omitempty"`
	TeamsScored  int    `json:"teams_scored"`
}

// JudgeProgressResponse 评委本人对各队伍的打分进度
type JudgeProgressResponse struct {
	TeamID       string  `json:"team_id"`
	TeamName     string  `json:"team_name"`
	ProjectTitle *string `json:"project_title,omitempty"`
	Status       string  `json:"status"` // "not-started" | "in-progress" | "completed"
	StartedAt    string  `json:"started_at,omitempty"`
	SubmittedAt  string  `json:"submitted_at,omitempty"`
	TotalScore   *int    `json:"total_score,omitempty"`
}
