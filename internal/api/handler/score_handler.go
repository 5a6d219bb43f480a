package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/service"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/pkg/response"
)

// ScoreHandler 打分模块 HTTP 处理器
type ScoreHandler struct {
	scoreSvc service.ScoreService
}

// NewScoreHandler 创建 ScoreHandler
func NewScoreHandler(scoreSvc service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreSvc: scoreSvc}
}

// ListCriteria 评分标准列表（全局 Rubric）
// GET /api/v1/rubric
func (h *ScoreHandler) ListCriteria(c *gin.Context) {
	criteria, err := h.scoreSvc.ListCriteria(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": criteria})
}

// Submit 提交评分（全量替换，可重复提交覆盖）
// POST /api/v1/scores
func (h *ScoreHandler) Submit(c *gin.Context) {
	var req dto.SubmitScoresRequest
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

	if err := h.scoreSvc.Submit(c.Request.Context(), &req, callerID, callerRole); err != nil {
		h.handleScoreError(c, err)
		return
	}

	response.OK(c, nil)
}

// Leaderboard 赛事排行榜
// GET /api/v1/events/:id/leaderboard
func (h *ScoreHandler) Leaderboard(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	rows, err := h.scoreSvc.Leaderboard(c.Request.Context(), eventID)
	if err != nil {
		h.handleScoreError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// Matrix 赛事打分矩阵（评委 × 队伍）
// GET /api/v1/events/:id/scoring-matrix
func (h *ScoreHandler) Matrix(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	cells, err := h.scoreSvc.Matrix(c.Request.Context(), eventID)
	if err != nil {
		h.handleScoreError(c, err)
		return
	}

	response.OK(c, gin.H{"list": cells})
}

// handleScoreError 统一处理打分模块业务错误
func (h *ScoreHandler) handleScoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScoringClosed):
		response.BadRequest(c, 15101, "评审已结束，不可提交评分")
	case errors.Is(err, service.ErrScoresEmpty):
		response.BadRequest(c, 15102, "评分列表不能为空")
	case errors.Is(err, service.ErrCriterionUnknown):
		response.BadRequest(c, 15103, "评分标准不存在")
	case errors.Is(err, service.ErrCriterionDuplicate):
		response.BadRequest(c, 15104, "评分标准重复提交")
	case errors.Is(err, service.ErrScoreOutOfRange):
		response.BadRequest(c, 15105, "分数超出标准分值范围")
	case errors.Is(err, service.ErrNotSeatOwner):
		response.Forbidden(c, 14104, "只能操作自己的评委席位")
	case errors.Is(err, service.ErrJudgeNotInEvent):
		response.BadRequest(c, 14103, "评委席位不属于该赛事")
	case errors.Is(err, service.ErrTeamNotInEvent):
		response.BadRequest(c, 12106, "队伍不属于该赛事")
	case errors.Is(err, service.ErrTeamNotFound):
		response.NotFound(c, 13101, "队伍不存在")
	case errors.Is(err, service.ErrJudgeNotFound):
		response.NotFound(c, 14101, "评委席位不存在")
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 12101, "赛事不存在")
	default:
		response.InternalError(c)
	}
}
