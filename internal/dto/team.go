package dto

// ── 队伍模块 DTO ──

// CreateTeamRequest 创建队伍请求
type CreateTeamRequest struct {
	Name              string  `json:"name"               binding:"required,min=1,max=255"`
	ProjectTitle      *string `json:"project_title"`
	Description       *string `json:"description"`
	PresentationOrder *int    `json:"presentation_order" binding:"omitempty,min=1"`
	ProjectURL        *string `json:"project_url"`
}

// UpdateTeamRequest 更新队伍请求
type UpdateTeamRequest struct {
	Name              *string `json:"name"               binding:"omitempty,min=1,max=255"`
	ProjectTitle      *string `json:"project_title"`
	Description       *string `json:"description"`
	PresentationOrder *int    `json:"presentation_order" binding:"omitempty,min=1"`
	ProjectURL        *string `json:"project_url"`
}

// UpdateTeamStatusRequest 队伍状态流转请求
type UpdateTeamStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=waiting active completed pending approved rejected"`
}

// AddTeamMemberRequest 添加队伍成员请求
type AddTeamMemberRequest struct {
	Name  string  `json:"name"  binding:"required,min=1,max=255"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// TeamResponse 队伍信息响应
type TeamResponse struct {
	ID                string               `json:"id"`
	EventID           string               `json:"event_id"`
	Name              string               `json:"name"`
	ProjectTitle      *string              `json:"project_title,omitempty"`
	Description       *string              `json:"description,omitempty"`
	PresentationOrder *int                 `json:"presentation_order,omitempty"`
	Status            string               `json:"status"`
	ProjectURL        *string              `json:"project_url,omitempty"`
	Members           []TeamMemberResponse `json:"members,omitempty"`
	CreatedAt         string               `json:"created_at"`
}

// TeamMemberResponse 队伍成员响应
type TeamMemberResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

// TeamDetailResponse 队伍详情（含评分细目，主持人/管理端）
type TeamDetailResponse struct {
	Team    TeamResponse         `json:"team"`
	Members []TeamMemberResponse `json:"members"`
	Scores  []TeamScoreDetail    `json:"scores"`
}

// TeamScoreDetail 单条评分细目（评委 × 标准）
type TeamScoreDetail struct {
	JudgeName       string  `json:"judge_name"`
	CriterionName   string  `json:"criterion_name"`
	ShortName       *string `json:"short_name,omitempty"`
	Score           int     `json:"score"`
	Reflection      *string `json:"reflection,omitempty"`
	SubmittedAt     string  `json:"submitted_at"`
	OverallComments *string `json:"overall_comments,omitempty"`
}
