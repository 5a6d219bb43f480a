package dto

// ── 打分模块 DTO ──

// ScoreEntry 单项评分
type ScoreEntry struct {
	CriterionID string  `json:"criterion_id" binding:"required,uuid"`
	Score       int     `json:"score"        binding:"min=0"`
	Reflection  *string `json:"reflection"`
}

// SubmitScoresRequest 打分提交请求
// 全量替换语义：本次未包含的标准项会被清除
type SubmitScoresRequest struct {
	EventID          string       `json:"event_id" binding:"required,uuid"`
	TeamID           string       `json:"team_id"  binding:"required,uuid"`
	JudgeID          string       `json:"judge_id" binding:"required,uuid"`
	Scores           []ScoreEntry `json:"scores"   binding:"required,min=1,dive"`
	OverallComments  *string      `json:"overall_comments"`
	TimeSpentSeconds *int         `json:"time_spent_seconds" binding:"omitempty,min=0"`
}

// RubricCriterionResponse 评分标准响应
type RubricCriterionResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	ShortName       *string `json:"short_name,omitempty"`
	Description     *string `json:"description,omitempty"`
	MaxScore        int     `json:"max_score"`
	DisplayOrder    int     `json:"display_order"`
	IconName        *string `json:"icon_name,omitempty"`
	GuidingQuestion *string `json:"guiding_question,omitempty"`
}

// ── 排行榜 ──

// LeaderboardRow 排行榜单行
// AverageScore 为空表示尚无已提交的评分（区别于真实的 0 分均值）
type LeaderboardRow struct {
	Rank              int                  `json:"rank"`
	TeamID            string               `json:"team_id"`
	Name              string               `json:"name"`
	ProjectTitle      *string              `json:"project_title,omitempty"`
	TotalScore        int                  `json:"total_score"`
	JudgesScored      int                  `json:"judges_scored"`
	AverageScore      *float64             `json:"average_score,omitempty"`
	CriteriaBreakdown []CriterionBreakdown `json:"criteria_breakdown,omitempty"`
}

// CriterionBreakdown 按标准聚合的分数
type CriterionBreakdown struct {
	CriterionID   string   `json:"criterion_id"`
	CriterionName string   `json:"criterion_name"`
	TotalScore    int      `json:"total_score"`
	AverageScore  *float64 `json:"average_score,omitempty"`
}

// ScoringMatrixCell 打分矩阵单元（评委 × 队伍）
type ScoringMatrixCell struct {
	JudgeID     string `json:"judge_id"`
	JudgeName   string `json:"judge_name"`
	TeamID      string `json:"team_id"`
	TeamName    string `json:"team_name"`
	TotalScore  int    `json:"total_score"`
	IsComplete  bool   `json:"is_complete"`
	SubmittedAt string `json:"submitted_at,omitempty"`
}
