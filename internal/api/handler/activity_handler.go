package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/service"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/pkg/response"
)

// ActivityHandler 活动日志模块 HTTP 处理器
type ActivityHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// List 活动日志列表（支持按赛事过滤）
// GET /api/v1/activity
func (h *ActivityHandler) List(c *gin.Context) {
	var req dto.ListActivityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	entries, total, err := h.activitySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, entries, total, req.GetPage(), req.GetPageSize())
}
