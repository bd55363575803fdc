package model

import (
	pkgerrors "github.com/LukasdeSouza/login-corp-nexus-backend/pkg/errors"
)

// ── 受众判别符 ──

const (
	AudienceTagAll     = "all"
	AudienceTagCompany = "company"
	AudienceTagUser    = "user"
	AudienceTagRole    = "role"
)

// ── 受众校验错误 ──

var (
	ErrAudienceInvalid         = pkgerrors.Invalid("target_audience 取值非法（all/company/user/role）")
	ErrAudienceCompanyRequired = pkgerrors.Invalid(`audience="company" 时 target_company_id 必填`)
	ErrAudienceUserRequired    = pkgerrors.Invalid(`audience="user" 时 target_user_id 必填`)
	ErrAudienceRolesRequired   = pkgerrors.Invalid(`audience="role" 时 target_roles 不能为空`)
)

// Audience 通知受众和类型（密封接口）。
// 四种取值互斥：全员 / 单个企业 / 单个用户 / 角色集合。
// 只有 NewAudience 能从松散的线上数据构造实例，
// 非法组合（如 company 判别符配空企业 ID）在构造期即被拒绝。
type Audience interface {
	// Tag 返回存储用判别符
	Tag() string
	// Matches 判断给定用户是否属于该受众
	Matches(u *User) bool

	sealed()
}

// AudienceAll 全员可见
type AudienceAll struct{}

func (AudienceAll) Tag() string { return AudienceTagAll }

func (AudienceAll) Matches(_ *User) bool { return true }

func (AudienceAll) sealed() {}

// AudienceCompany 仅指定企业的用户可见
type AudienceCompany struct {
	CompanyID string
}

func (AudienceCompany) Tag() string { return AudienceTagCompany }

func (a AudienceCompany) Matches(u *User) bool {
	return u != nil && u.CompanyID == a.CompanyID
}

func (AudienceCompany) sealed() {}

// AudienceUser 仅指定用户可见
type AudienceUser struct {
	UserID string
}

func (AudienceUser) Tag() string { return AudienceTagUser }

func (a AudienceUser) Matches(u *User) bool {
	return u != nil && u.UserID == a.UserID
}

func (AudienceUser) sealed() {}

// AudienceRoles 持有集合内任一角色的用户可见
type AudienceRoles struct {
	Roles StringArray
}

func (AudienceRoles) Tag() string { return AudienceTagRole }

func (a AudienceRoles) Matches(u *User) bool {
	if u == nil {
		return false
	}
	for _, r := range a.Roles {
		if r == u.Role {
			return true
		}
	}
	return false
}

func (AudienceRoles) sealed() {}

// NewAudience 从线上形态（判别符 + 可空载荷）构造受众。
// 管理端与 Webhook 两条摄入路径共用同一套判别符词汇。
func NewAudience(tag string, companyID, userID *string, roles []string) (Audience, error) {
	switch tag {
	case AudienceTagAll:
		return AudienceAll{}, nil
	case AudienceTagCompany:
		if companyID == nil || *companyID == "" {
			return nil, ErrAudienceCompanyRequired
		}
		return AudienceCompany{CompanyID: *companyID}, nil
	case AudienceTagUser:
		if userID == nil || *userID == "" {
			return nil, ErrAudienceUserRequired
		}
		return AudienceUser{UserID: *userID}, nil
	case AudienceTagRole:
		if len(roles) == 0 {
			return nil, ErrAudienceRolesRequired
		}
		return AudienceRoles{Roles: roles}, nil
	default:
		return nil, ErrAudienceInvalid
	}
}
