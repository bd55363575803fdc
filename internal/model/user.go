package model

import "time"

// ── 用户角色 ──

const (
	RoleAdministrador = "ADMINISTRADOR"
	RoleGerente       = "GERENTE"
	RoleFuncionario   = "FUNCIONARIO"
	RoleRH            = "RH"
	RoleFinanceiro    = "FINANCEIRO"
)

// ValidRoles 合法角色集合
var ValidRoles = []string{RoleAdministrador, RoleGerente, RoleFuncionario, RoleRH, RoleFinanceiro}

// IsValidRole 检查角色是否合法
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User 用户表 — 对应 users
// 通知核心只读取 {UserID, CompanyID, Role} 作为身份上下文。
type User struct {
	UserID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"user_id"`
	Name         string     `gorm:"type:varchar(100);not null"                      json:"name"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"          json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                      json:"-"`
	Role         string     `gorm:"type:varchar(50);not null;default:'FUNCIONARIO'" json:"role"`
	CompanyID    string     `gorm:"type:uuid;not null"                              json:"company_id"`
	IsActive     bool       `gorm:"not null;default:true"                           json:"is_active"`
	LastLogin    *time.Time `gorm:"type:timestamptz"                                json:"last_login,omitempty"`
	BaseModel

	// 关联
	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
