package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/dto"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/service"
	"github.com/LukasdeSouza/login-corp-nexus-backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Create 创建用户
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			response.BadRequest(c, 12002, "邮箱已被使用")
		case errors.Is(err, service.ErrCompanyNotFound):
			response.BadRequest(c, 13001, "企业不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, user)
}

// Get 获取用户详情
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// Update 更新用户信息
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "用户不存在")
		case errors.Is(err, service.ErrEmailTaken):
			response.BadRequest(c, 12002, "邮箱已被使用")
		case errors.Is(err, service.ErrCompanyNotFound):
			response.BadRequest(c, 13001, "企业不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}

// List 用户列表
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize())
}

// AssignRole 分配角色
// PUT /api/v1/users/:id/role
func (h *UserHandler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.AssignRole(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// Deactivate 停用用户
// DELETE /api/v1/users/:id
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.userSvc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
