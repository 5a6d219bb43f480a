package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/service"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/pkg/response"
)

// JudgeHandler 评委模块 HTTP 处理器
type JudgeHandler struct {
	judgeSvc service.JudgeService
}

// NewJudgeHandler 创建 JudgeHandler
func NewJudgeHandler(judgeSvc service.JudgeService) *JudgeHandler {
	return &JudgeHandler{judgeSvc: judgeSvc}
}

// Assign 分配评委席位
// POST /api/v1/events/:id/judges
func (h *JudgeHandler) Assign(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	var req dto.AssignJudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	judge, err := h.judgeSvc.Assign(c.Request.Context(), eventID, &req, callerID)
	if err != nil {
		h.handleJudgeError(c, err)
		return
	}

	response.Created(c, judge)
}

// Remove 撤销评委席位
// DELETE /api/v1/events/:id/judges/:judgeId
func (h *JudgeHandler) Remove(c *gin.Context) {
	eventID := c.Param("id")
	judgeID := c.Param("judgeId")
	if eventID == "" || judgeID == "" {
		response.BadRequest(c, 10001, "赛事ID与席位ID不能为空")
		return
	}

	if err := h.judgeSvc.Remove(c.Request.Context(), eventID, judgeID); err != nil {
		h.handleJudgeError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListByEvent 赛事下的评委席位列表
// GET /api/v1/events/:id/judges
func (h *JudgeHandler) ListByEvent(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	judges, err := h.judgeSvc.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		h.handleJudgeError(c, err)
		return
	}

	response.OK(c, gin.H{"list": judges})
}

// MySeats 当前用户被分配的全部席位
// GET /api/v1/judges/my-seats
func (h *JudgeHandler) MySeats(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	seats, err := h.judgeSvc.AssignedSeats(c.Request.Context(), userID)
	if err != nil {
		h.handleJudgeError(c, err)
		return
	}

	response.OK(c, gin.H{"list": seats})
}

// Heartbeat 评委在线心跳（维持会话活跃）
// POST /api/v1/judges/heartbeat
func (h *JudgeHandler) Heartbeat(c *gin.Context) {
	var req dto.HeartbeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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

	if err := h.judgeSvc.Heartbeat(c.Request.Context(), &req, callerID, callerRole); err != nil {
		h.handleJudgeError(c, err)
		return
	}

	response.OK(c, nil)
}

// Logout 评委退出评审（关闭全部会话）
// POST /api/v1/events/:id/judges/:judgeId/logout
func (h *JudgeHandler) Logout(c *gin.Context) {
	eventID := c.Param("id")
	judgeID := c.Param("judgeId")
	if eventID == "" || judgeID == "" {
		response.BadRequest(c, 10001, "赛事ID与席位ID不能为空")
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

	if err := h.judgeSvc.Logout(c.Request.Context(), eventID, judgeID, callerID, callerRole); err != nil {
		h.handleJudgeError(c, err)
		return
	}

	response.OK(c, nil)
}

// Online 赛事评委在线状态快照
// GET /api/v1/events/:id/judges/online
func (h *JudgeHandler) Online(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	judges, err := h.judgeSvc.OnlineJudges(c.Request.Context(), eventID)
	if err != nil {
		h.handleJudgeError(c, err)
		return
	}

	response.OK(c, gin.H{"list": judges})
}

// Progress 评委对各队伍的打分进度
// GET /api/v1/events/:id/judges/:judgeId/progress
func (h *JudgeHandler) Progress(c *gin.Context) {
	eventID := c.Param("id")
	judgeID := c.Param("judgeId")
	if eventID == "" || judgeID == "" {
		response.BadRequest(c, 10001, "赛事ID与席位ID不能为空")
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

	progress, err := h.judgeSvc.Progress(c.Request.Context(), eventID, judgeID, callerID, callerRole)
	if err != nil {
		h.handleJudgeError(c, err)
		return
	}

	response.OK(c, gin.H{"list": progress})
}

// handleJudgeError 统一处理评委模块业务错误
func (h *JudgeHandler) handleJudgeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrJudgeNotFound):
		response.NotFound(c, 14101, "评委席位不存在")
	case errors.Is(err, service.ErrJudgeNameTaken):
		response.BadRequest(c, 14102, "赛事内评委名称已存在")
	case errors.Is(err, service.ErrJudgeNotInEvent):
		response.BadRequest(c, 14103, "评委席位不属于该赛事")
	case errors.Is(err, service.ErrNotSeatOwner):
		response.Forbidden(c, 14104, "只能操作自己的评委席位")
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 12101, "赛事不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11101, "用户不存在")
	default:
		response.InternalError(c)
	}
}
