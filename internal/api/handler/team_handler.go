package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/service"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/pkg/response"
)

// TeamHandler 队伍模块 HTTP 处理器
type TeamHandler struct {
	teamSvc service.TeamService
}

// NewTeamHandler 创建 TeamHandler
func NewTeamHandler(teamSvc service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// Create 创建队伍
// POST /api/v1/events/:id/teams
func (h *TeamHandler) Create(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	team, err := h.teamSvc.Create(c.Request.Context(), eventID, &req)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.Created(c, team)
}

// ListByEvent 赛事下的队伍列表（按出场顺序）
// GET /api/v1/events/:id/teams
func (h *TeamHandler) ListByEvent(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	teams, err := h.teamSvc.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, gin.H{"list": teams})
}

// Get 获取队伍详情
// GET /api/v1/teams/:id
func (h *TeamHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "队伍ID不能为空")
		return
	}

	team, err := h.teamSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, team)
}

// GetDetail 队伍详情含逐评委评分细目（主持人/管理端）
// GET /api/v1/teams/:id/detail
func (h *TeamHandler) GetDetail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "队伍ID不能为空")
		return
	}

	detail, err := h.teamSvc.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, detail)
}

// Update 更新队伍
// PUT /api/v1/teams/:id
func (h *TeamHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "队伍ID不能为空")
		return
	}

	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	team, err := h.teamSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, team)
}

// UpdateStatus 队伍状态流转（waiting / active / completed）
// PUT /api/v1/teams/:id/status
func (h *TeamHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "队伍ID不能为空")
		return
	}

	var req dto.UpdateTeamStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.teamSvc.UpdateStatus(c.Request.Context(), id, &req); err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete 删除队伍
// DELETE /api/v1/teams/:id
func (h *TeamHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "队伍ID不能为空")
		return
	}

	if err := h.teamSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, nil)
}

// AddMember 添加队伍成员
// POST /api/v1/teams/:id/members
func (h *TeamHandler) AddMember(c *gin.Context) {
	teamID := c.Param("id")
	if teamID == "" {
		response.BadRequest(c, 10001, "队伍ID不能为空")
		return
	}

	var req dto.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	member, err := h.teamSvc.AddMember(c.Request.Context(), teamID, &req)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.Created(c, member)
}

// RemoveMember 移除队伍成员
// DELETE /api/v1/teams/:id/members/:memberId
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	teamID := c.Param("id")
	memberID := c.Param("memberId")
	if teamID == "" || memberID == "" {
		response.BadRequest(c, 10001, "队伍ID与成员ID不能为空")
		return
	}

	if err := h.teamSvc.RemoveMember(c.Request.Context(), teamID, memberID); err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleTeamError 统一处理队伍模块业务错误
func (h *TeamHandler) handleTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		response.NotFound(c, 13101, "队伍不存在")
	case errors.Is(err, service.ErrTeamNameTaken):
		response.BadRequest(c, 13102, "赛事内队名或出场顺序已被占用")
	case errors.Is(err, service.ErrTeamStatusInvalid):
		response.BadRequest(c, 13103, "队伍状态不合法")
	case errors.Is(err, service.ErrTeamMemberLimit):
		response.BadRequest(c, 13104, "队伍人数已达上限")
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 13105, "队伍成员不存在")
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 12101, "赛事不存在")
	default:
		response.InternalError(c)
	}
}
