package dto

// ── 企业模块 DTO ──

// CreateCompanyRequest 创建企业请求
type CreateCompanyRequest struct {
	Name             string  `json:"name"              binding:"required,min=2,max=255"`
	Email            string  `json:"email"             binding:"required,email"`
	CNPJ             *string `json:"cnpj"              binding:"omitempty,max=18"`
	Phone            *string `json:"phone"             binding:"omitempty,max=20"`
	City             *string `json:"city"              binding:"omitempty,max=100"`
	State            *string `json:"state"             binding:"omitempty,max=50"`
	SubscriptionPlan string  `json:"subscription_plan" binding:"omitempty,oneof=basic premium enterprise"`
}

// UpdateCompanyRequest 更新企业请求（仅更新非 nil 字段）
type UpdateCompanyRequest struct {
	Name             *string `json:"name"              binding:"omitempty,min=2,max=255"`
	Email            *string `json:"email"             binding:"omitempty,email"`
	CNPJ             *string `json:"cnpj"              binding:"omitempty,max=18"`
	Phone            *string `json:"phone"             binding:"omitempty,max=20"`
	City             *string `json:"city"              binding:"omitempty,max=100"`
	State            *string `json:"state"             binding:"omitempty,max=50"`
	SubscriptionPlan *string `json:"subscription_plan" binding:"omitempty,oneof=basic premium enterprise"`
}

// CompanyListRequest 企业列表查询参数
type CompanyListRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
}

// CompanyResponse 企业信息响应
type CompanyResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	CNPJ             *string `json:"cnpj,omitempty"`
	City             *string `json:"city,omitempty"`
	State            *string `json:"state,omitempty"`
	SubscriptionPlan string  `json:"subscription_plan"`
	IsActive         bool    `json:"is_active"`
}
