package model

import "time"

// ── 通知类型 ──

const (
	TypeInfo        = "info"
	TypeWarning     = "warning"
	TypeError       = "error"
	TypeSuccess     = "success"
	TypeMaintenance = "maintenance"
	TypeFeature     = "feature"
	TypeUpdate      = "update"
)

// ValidNotificationTypes 合法通知类型集合
var ValidNotificationTypes = []string{
	TypeInfo, TypeWarning, TypeError, TypeSuccess, TypeMaintenance, TypeFeature, TypeUpdate,
}

// IsValidNotificationType 检查通知类型是否合法
func IsValidNotificationType(t string) bool {
	for _, v := range ValidNotificationTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ── 通知优先级 ──

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidPriorities 合法优先级集合
var ValidPriorities = []string{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}

// IsValidPriority 检查优先级是否合法
func IsValidPriority(p string) bool {
	for _, v := range ValidPriorities {
		if v == p {
			return true
		}
	}
	return false
}

// priorityRank 优先级排序权重：urgent > high > normal > low
var priorityRank = map[string]int{
	PriorityUrgent: 3,
	PriorityHigh:   2,
	PriorityNormal: 1,
	PriorityLow:    0,
}

// PriorityRank 返回优先级排序权重，未知优先级视为最低
func PriorityRank(p string) int {
	return priorityRank[p]
}

// Notification 通知表 — 对应 notifications
// 受众以扁平列存储（target_audience 判别符 + 载荷列），
// 读取时通过 Audience() 还原为和类型，非法组合在创建期即被拒绝。
type Notification struct {
	NotificationID  string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	Title           string      `gorm:"type:varchar(255);not null"                     json:"title"`
	Message         string      `gorm:"type:text;not null"                             json:"message"`
	Type            string      `gorm:"type:varchar(50);not null;default:'info'"       json:"type"`
	Priority        string      `gorm:"type:varchar(20);not null;default:'normal'"     json:"priority"`
	TargetAudience  string      `gorm:"type:varchar(50);not null;default:'all'"        json:"target_audience"`
	TargetCompanyID *string     `gorm:"type:uuid"                                      json:"target_company_id,omitempty"`
	TargetUserID    *string     `gorm:"type:uuid"                                      json:"target_user_id,omitempty"`
	TargetRoles     StringArray `gorm:"type:text[]"                                    json:"target_roles,omitempty"`
	IsActive        bool        `gorm:"not null;default:true"                          json:"is_active"`
	ScheduleFor     *time.Time  `gorm:"type:timestamptz"                               json:"schedule_for,omitempty"`
	ExpiresAt       *time.Time  `gorm:"type:timestamptz"                               json:"expires_at,omitempty"`
	Metadata        JSONMap     `gorm:"type:jsonb"                                     json:"metadata,omitempty"`
	CreatedBy       string      `gorm:"type:varchar(100);not null;default:'system'"    json:"created_by"`
	BaseModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// Audience 将扁平列还原为受众和类型。
// 存储态由 NewAudience 保证合法，这里对脏数据兜底为不可见的空角色集。
func (n *Notification) Audience() Audience {
	switch n.TargetAudience {
	case AudienceTagAll:
		return AudienceAll{}
	case AudienceTagCompany:
		if n.TargetCompanyID != nil {
			return AudienceCompany{CompanyID: *n.TargetCompanyID}
		}
	case AudienceTagUser:
		if n.TargetUserID != nil {
			return AudienceUser{UserID: *n.TargetUserID}
		}
	case AudienceTagRole:
		return AudienceRoles{Roles: n.TargetRoles}
	}
	return AudienceRoles{}
}

// SetAudience 将受众和类型落回扁平列
func (n *Notification) SetAudience(aud Audience) {
	n.TargetAudience = aud.Tag()
	n.TargetCompanyID = nil
	n.TargetUserID = nil
	n.TargetRoles = nil

	switch a := aud.(type) {
	case AudienceCompany:
		n.TargetCompanyID = &a.CompanyID
	case AudienceUser:
		n.TargetUserID = &a.UserID
	case AudienceRoles:
		n.TargetRoles = a.Roles
	}
}

// VisibleTo 可见性判定：激活 ∧ 时间窗口 ∧ 受众匹配。
// 纯函数；同一次查询的所有行必须用同一个 now，避免分页内边界不一致。
func (n *Notification) VisibleTo(u *User, now time.Time) bool {
	if !n.IsActive {
		return false
	}
	if n.ExpiresAt != nil && !now.Before(*n.ExpiresAt) {
		return false
	}
	if n.ScheduleFor != nil && now.Before(*n.ScheduleFor) {
		return false
	}
	return n.Audience().Matches(u)
}

// NotificationRead 已读回执表 — 对应 notification_reads
// (notification_id, user_id) 唯一；一旦写入不再修改或删除。
type NotificationRead struct {
	ID             string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	NotificationID string    `gorm:"type:uuid;not null;uniqueIndex:uniq_notification_user" json:"notification_id"`
	UserID         string    `gorm:"type:uuid;not null;uniqueIndex:uniq_notification_user" json:"user_id"`
	ReadAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"read_at"`
}

// TableName 指定表名
func (NotificationRead) TableName() string { return "notification_reads" }
