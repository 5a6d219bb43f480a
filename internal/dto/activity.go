package dto

// ── 活动日志模块 DTO ──

// ActivityResponse 活动日志单条响应
type ActivityResponse struct {
	ID           string  `json:"id"`
	EventID      *string `json:"event_id,omitempty"`
	UserID       *string `json:"user_id,omitempty"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	ActivityType *string `json:"activity_type,omitempty"`
	IconName     *string `json:"icon_name,omitempty"`
	Tone         *string `json:"tone,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// ListActivityRequest 活动日志列表筛选
type ListActivityRequest struct {
	PaginationRequest
	EventID string `form:"event_id" binding:"omitempty,uuid"`
}
