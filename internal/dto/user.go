package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	Email     string `json:"email"      binding:"required,email"`
	Password  string `json:"password"   binding:"required,min=8,max=72"`
	Role      string `json:"role"       binding:"required,oneof=ADMINISTRADOR GERENTE FUNCIONARIO RH FINANCEIRO"`
	CompanyID string `json:"company_id" binding:"required,uuid"`
}

// UpdateUserRequest 更新用户信息请求（仅更新非 nil 字段）
type UpdateUserRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=100"`
	Email     *string `json:"email"      binding:"omitempty,email"`
	CompanyID *string `json:"company_id" binding:"omitempty,uuid"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	CompanyID string `form:"company_id" binding:"omitempty,uuid"`
	Role      string `form:"role"       binding:"omitempty,oneof=ADMINISTRADOR GERENTE FUNCIONARIO RH FINANCEIRO"`
	Keyword   string `form:"keyword"    binding:"omitempty,max=100"`
}

// AssignRoleRequest 分配角色请求
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMINISTRADOR GERENTE FUNCIONARIO RH FINANCEIRO"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	IsActive  bool             `json:"is_active"`
	Company   *CompanyResponse `json:"company,omitempty"`
	CreatedAt string           `json:"created_at"`
}
