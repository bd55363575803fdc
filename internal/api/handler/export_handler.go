package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/service"
	"github.com/LukasdeSouza/login-corp-nexus-backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportNotificationStats 导出通知统计
// GET /api/v1/export/notification-stats
func (h *ExportHandler) ExportNotificationStats(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportNotificationStats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
