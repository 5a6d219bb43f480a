package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/TAMU-Meloy-Software-Tools/Judging-App/internal/service"
	"github.com/TAMU-Meloy-Software-Tools/Judging-App/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportScoringMatrix 导出赛事打分矩阵为 Excel
// GET /api/v1/events/:id/export/scoring-matrix
func (h *ExportHandler) ExportScoringMatrix(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportScoringMatrix(c.Request.Context(), eventID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// CalendarFeed 赛事日历订阅（.ics）
// GET /api/v1/calendar.ics
func (h *ExportHandler) CalendarFeed(c *gin.Context) {
	buf, err := h.exportSvc.CalendarFeed(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=events.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 12101, "赛事不存在")
	case errors.Is(err, service.ErrExportNoJudges):
		response.BadRequest(c, 17101, "该赛事尚无评委席位")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
