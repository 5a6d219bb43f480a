package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/dto"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/service"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/pkg/response"
)

// SponsorHandler 主办方模块 HTTP 处理器
type SponsorHandler struct {
	sponsorSvc service.SponsorService
}

// NewSponsorHandler 创建 SponsorHandler
func NewSponsorHandler(sponsorSvc service.SponsorService) *SponsorHandler {
	return &SponsorHandler{sponsorSvc: sponsorSvc}
}

// Create 创建主办方
// POST /api/v1/sponsors
func (h *SponsorHandler) Create(c *gin.Context) {
	var req dto.CreateSponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	sponsor, err := h.sponsorSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSponsorError(c, err)
		return
	}

	response.Created(c, sponsor)
}

// Get 获取主办方详情
// GET /api/v1/sponsors/:id
func (h *SponsorHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "主办方ID不能为空")
		return
	}

	sponsor, err := h.sponsorSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSponsorError(c, err)
		return
	}

	response.OK(c, sponsor)
}

// List 主办方列表
// GET /api/v1/sponsors
func (h *SponsorHandler) List(c *gin.Context) {
	sponsors, err := h.sponsorSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": sponsors})
}

// Update 更新主办方
// PUT /api/v1/sponsors/:id
func (h *SponsorHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "主办方ID不能为空")
		return
	}

	var req dto.UpdateSponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	sponsor, err := h.sponsorSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleSponsorError(c, err)
		return
	}

	response.OK(c, sponsor)
}

// handleSponsorError 统一处理主办方模块业务错误
func (h *SponsorHandler) handleSponsorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSponsorNotFound):
		response.NotFound(c, 16101, "主办方不存在")
	case errors.Is(err, service.ErrSponsorNameTaken):
		response.BadRequest(c, 16102, "主办方名称已存在")
	default:
		response.InternalError(c)
	}
}
