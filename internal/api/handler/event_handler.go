package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/service"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/pkg/response"
)

// EventHandler 赛事模块 HTTP 处理器
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// Create 创建赛事
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.Created(c, event)
}

// Get 获取赛事详情
// GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	event, err := h.eventSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// List 赛事列表
// 评委角色只能看到被分配席位的赛事
// GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	var req dto.ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	events, err := h.eventSvc.List(c.Request.Context(), &req, callerID, callerRole)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, gin.H{"list": events})
}

// Update 更新赛事
// PUT /api/v1/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	event, err := h.eventSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// Delete 删除赛事（级联清除队伍、席位与评分）
// DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, nil)
}

// UpdateJudgingPhase 切换评审阶段
// PUT /api/v1/events/:id/judging-phase
func (h *EventHandler) UpdateJudgingPhase(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	var req dto.UpdateJudgingPhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.eventSvc.UpdateJudgingPhase(c.Request.Context(), id, &req, callerID); err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, nil)
}

// SetActiveTeam 切换登台队伍（team_id 为空表示清空）
// PUT /api/v1/events/:id/active-team
func (h *EventHandler) SetActiveTeam(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	var req dto.UpdateActiveTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.eventSvc.SetActiveTeam(c.Request.Context(), id, &req, callerID); err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, nil)
}

// Insights 赛事数据总览（管理端仪表盘）
// GET /api/v1/events/:id/insights
func (h *EventHandler) Insights(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	insights, err := h.eventSvc.Insights(c.Request.Context(), id)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, insights)
}

// ModeratorStatus 主持人控制台聚合快照
// GET /api/v1/events/:id/moderator-status
func (h *EventHandler) ModeratorStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	status, err := h.eventSvc.ModeratorStatus(c.Request.Context(), id)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, status)
}

// handleEventError 统一处理赛事模块业务错误
func (h *EventHandler) handleEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 12101, "赛事不存在")
	case errors.Is(err, service.ErrEventNameTaken):
		response.BadRequest(c, 12102, "赛事名称已存在")
	case errors.Is(err, service.ErrEventTypeInvalid):
		response.BadRequest(c, 12103, "赛事类型不合法")
	case errors.Is(err, service.ErrEventDateInvalid):
		response.BadRequest(c, 12104, "赛事起止时间不合法")
	case errors.Is(err, service.ErrPhaseInvalid):
		response.BadRequest(c, 12105, "评审阶段不合法")
	case errors.Is(err, service.ErrTeamNotInEvent):
		response.BadRequest(c, 12106, "队伍不属于该赛事")
	case errors.Is(err, service.ErrEventSponsorAbsent):
		response.BadRequest(c, 12107, "主办方不存在")
	default:
		response.InternalError(c)
	}
}
