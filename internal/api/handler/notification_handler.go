package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/dto"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/service"
	pkgerrors "github.com/LukasdeSouza/login-corp-nexus-backend/pkg/errors"
	"github.com/LukasdeSouza/login-corp-nexus-backend/pkg/response"
)

// NotificationHandler 通知模块 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List 当前用户的通知列表
// GET /api/v1/notifications?page=&page_size=&include_read=&types=&priorities=
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	feed, err := h.notificationSvc.ListForUser(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, feed)
}

// UnreadCount 当前用户的未读通知数
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	count, err := h.notificationSvc.UnreadCount(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, dto.UnreadCountResponse{UnreadCount: count})
}

// MarkRead 标记单条通知已读
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// MarkReadMultiple 批量标记通知已读
// PUT /api/v1/notifications/read-multiple
func (h *NotificationHandler) MarkReadMultiple(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.MarkMultipleReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "通知 ID 列表不能为空")
		return
	}

	result, err := h.notificationSvc.MarkReadBatch(c.Request.Context(), &req, userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Create 创建通知（管理员）
// POST /api/v1/notifications
func (h *NotificationHandler) Create(c *gin.Context) {
	email, ok := MustGetEmail(c)
	if !ok {
		return
	}

	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	notification, err := h.notificationSvc.Create(c.Request.Context(), &req, email)
	if err != nil {
		if pkgerrors.IsValidation(err) {
			response.BadRequest(c, 14002, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, notification)
}

// Deactivate 停用通知（管理员）
// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Deactivate(c *gin.Context) {
	if err := h.notificationSvc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFound(c, 14001, "通知不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// AdminList 全量通知列表（管理员）
// GET /api/v1/notifications/admin/list?search=&type=&priority=&active=
func (h *NotificationHandler) AdminList(c *gin.Context) {
	var req dto.AdminNotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.notificationSvc.AdminList(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Stats 通知统计（管理员）
// GET /api/v1/notifications/admin/stats
func (h *NotificationHandler) Stats(c *gin.Context) {
	stats, err := h.notificationSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// Webhook 外部系统摄入通知
// POST /api/v1/notifications/webhook
func (h *NotificationHandler) Webhook(c *gin.Context) {
	var req dto.WebhookNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求体格式无效")
		return
	}

	wc := &service.WebhookContext{
		Source:    "external_webhook",
		UserAgent: c.Request.UserAgent(),
		ClientIP:  c.ClientIP(),
	}

	result, err := h.notificationSvc.IngestWebhook(c.Request.Context(), &req, wc)
	if err != nil {
		if pkgerrors.IsValidation(err) {
			response.BadRequest(c, 14002, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}
