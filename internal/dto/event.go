package dto

// ── 赛事模块 DTO ──

// CreateEventRequest 创建赛事请求
type CreateEventRequest struct {
	Name                 string  `json:"name"                  binding:"required,min=2,max=255"`
	Description          *string `json:"description"`
	EventType            string  `json:"event_type"            binding:"required"`
	Location             *string `json:"location"`
	StartDate            string  `json:"start_date"            binding:"required"` // RFC3339
	EndDate              string  `json:"end_date"              binding:"required"`
	RegistrationDeadline *string `json:"registration_deadline"`
	MaxTeamSize          *int    `json:"max_team_size"         binding:"omitempty,min=1"`
	MinTeamSize          *int    `json:"min_team_size"         binding:"omitempty,min=1"`
	MaxTeams             *int    `json:"max_teams"             binding:"omitempty,min=1"`
	SponsorID            *string `json:"sponsor_id"`
}

// UpdateEventRequest 更新赛事请求
// 可更新字段为显式白名单；未出现的列不可能被写（避免动态拼接 SET 子句）
type UpdateEventRequest struct {
	Name                 *string `json:"name"                  binding:"omitempty,min=2,max=255"`
	Description          *string `json:"description"`
	Status               *string `json:"status"                binding:"omitempty,oneof=upcoming active completed cancelled"`
	Location             *string `json:"location"`
	StartDate            *string `json:"start_date"`
	EndDate              *string `json:"end_date"`
	RegistrationDeadline *string `json:"registration_deadline"`
	MaxTeamSize          *int    `json:"max_team_size"         binding:"omitempty,min=1"`
	MinTeamSize          *int    `json:"min_team_size"         binding:"omitempty,min=1"`
	MaxTeams             *int    `json:"max_teams"             binding:"omitempty,min=1"`
	SponsorID            *string `json:"sponsor_id"`
}

// ListEventsRequest 赛事列表筛选
type ListEventsRequest struct {
	Status    string `form:"status" binding:"omitempty,oneof=upcoming active completed cancelled"`
	EventType string `form:"type"`
}

// UpdateJudgingPhaseRequest 评审阶段切换请求
type UpdateJudgingPhaseRequest struct {
	JudgingPhase string `json:"judging_phase" binding:"required,oneof=not-started in-progress ended"`
}

// UpdateActiveTeamRequest 登台队伍切换请求
// TeamID 为空表示清空当前登台队伍
type UpdateActiveTeamRequest struct {
	TeamID *string `json:"team_id"`
}

// EventResponse 赛事信息响应
type EventResponse struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Description          *string          `json:"description,omitempty"`
	EventType            string           `json:"event_type"`
	Status               string           `json:"status"`
	Location             *string          `json:"location,omitempty"`
	StartDate            string           `json:"start_date"`
	EndDate              string           `json:"end_date"`
	RegistrationDeadline string           `json:"registration_deadline,omitempty"`
	MaxTeamSize          int              `json:"max_team_size"`
	MinTeamSize          int              `json:"min_team_size"`
	MaxTeams             *int             `json:"max_teams,omitempty"`
	JudgingPhase         string           `json:"judging_phase"`
	CurrentActiveTeamID  *string          `json:"current_active_team_id,omitempty"`
	Sponsor              *SponsorResponse `json:"sponsor,omitempty"`
	TeamsCount           int64            `json:"teams_count"`
	JudgesCount          int64            `json:"judges_count"`
	CreatedAt            string           `json:"created_at"`
}

// EventInsightsResponse 赛事数据总览（管理端）
type EventInsightsResponse struct {
	TotalTeams        int64    `json:"total_teams"`
	ApprovedTeams     int64    `json:"approved_teams"`
	TotalJudges       int64    `json:"total_judges"`
	CompletedScores   int64    `json:"completed_scores"`
	TeamsWithScores   int64    `json:"teams_with_scores"`
	AverageTotalScore *float64 `json:"average_total_score,omitempty"`
}

// ModeratorStatusResponse 主持人控制台实时状态
type ModeratorStatusResponse struct {
	Event        ModeratorEventInfo    `json:"event"`
	OnlineJudges []OnlineJudgeResponse `json:"online_judges"`
	Teams        []TeamJudgingStatus   `json:"teams"`
	Summary      ModeratorSummary      `json:"summary"`
}

// ModeratorEventInfo 控制台里的赛事概要
type ModeratorEventInfo struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	JudgingPhase        string  `json:"judging_phase"`
	CurrentActiveTeamID *string `json:"current_active_team_id,omitempty"`
	ActiveTeamName      *string `json:"active_team_name,omitempty"`
	ActiveTeamProject   *string `json:"active_team_project,omitempty"`
}

// ModeratorSummary 控制台汇总数字
type ModeratorSummary struct {
	TotalTeams        int `json:"total_teams"`
	TotalJudges       int `json:"total_judges"`
	OnlineJudgesCount int `json:"online_judges_count"`
	CurrentPhase      string `json:"current_phase"`
}

// TeamJudgingStatus 队伍 × 评委 打分进度
type TeamJudgingStatus struct {
	TeamID            string             `json:"team_id"`
	Name              string             `json:"name"`
	ProjectTitle      *string            `json:"project_title,omitempty"`
	PresentationOrder *int               `json:"presentation_order,omitempty"`
	Status            string             `json:"status"`
	JudgeScores       []JudgeScoreStatus `json:"judge_scores"`
}

// JudgeScoreStatus 单个评委对单个队伍的打分状态
type JudgeScoreStatus struct {
	JudgeID    string `json:"judge_id"`
	JudgeName  string `json:"judge_name"`
	ScoreTotal int    `json:"score_total"`
	IsComplete bool   `json:"is_complete"`
}
