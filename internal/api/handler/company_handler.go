package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/dto"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/service"
	"github.com/LukasdeSouza/login-corp-nexus-backend/pkg/response"
)

// CompanyHandler 企业模块 HTTP 处理器
type CompanyHandler struct {
	companySvc service.CompanyService
}

// NewCompanyHandler 创建 CompanyHandler
func NewCompanyHandler(companySvc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc}
}

// Create 创建企业
// POST /api/v1/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	company, err := h.companySvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCompanyEmailTaken) {
			response.BadRequest(c, 13002, "企业邮箱已被使用")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, company)
}

// Get 获取企业详情
// GET /api/v1/companies/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			response.NotFound(c, 13001, "企业不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, company)
}

// Update 更新企业信息
// PUT /api/v1/companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	company, err := h.companySvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyNotFound):
			response.NotFound(c, 13001, "企业不存在")
		case errors.Is(err, service.ErrCompanyEmailTaken):
			response.BadRequest(c, 13002, "企业邮箱已被使用")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, company)
}

// List 企业列表
// GET /api/v1/companies
func (h *CompanyHandler) List(c *gin.Context) {
	var req dto.CompanyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	companies, total, err := h.companySvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, companies, total, req.GetPage(), req.GetPageSize())
}

// Deactivate 停用企业
// DELETE /api/v1/companies/:id
func (h *CompanyHandler) Deactivate(c *gin.Context) {
	if err := h.companySvc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			response.NotFound(c, 13001, "企业不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
