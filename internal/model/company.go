package model

// Company 企业租户表 — 对应 companies
type Company struct {
	CompanyID        string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"company_id"`
	Name             string  `gorm:"type:varchar(255);not null"                     json:"name"`
	Email            string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	CNPJ             *string `gorm:"type:varchar(18)"                               json:"cnpj,omitempty"`
	Phone            *string `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	City             *string `gorm:"type:varchar(100)"                              json:"city,omitempty"`
	State            *string `gorm:"type:varchar(50)"                               json:"state,omitempty"`
	SubscriptionPlan string  `gorm:"type:varchar(50);not null;default:'basic'"      json:"subscription_plan"`
	IsActive         bool    `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Company) TableName() string { return "companies" }
