package dto

import (
	"strings"
	"time"
)

// ── 通知模块 DTO ──

// CreateNotificationRequest 管理端创建通知请求
// type/priority/target_audience 的枚举校验在 Service 层完成，
// 以便与 Webhook 摄入路径共用同一套带字段说明的校验错误。
type CreateNotificationRequest struct {
	Title           string                 `json:"title"             binding:"required,max=255"`
	Message         string                 `json:"message"           binding:"required"`
	Type            string                 `json:"type"`
	Priority        string                 `json:"priority"`
	TargetAudience  string                 `json:"target_audience"`
	TargetCompanyID *string                `json:"target_company_id" binding:"omitempty,uuid"`
	TargetUserID    *string                `json:"target_user_id"    binding:"omitempty,uuid"`
	TargetRoles     []string               `json:"target_roles"`
	ScheduleFor     *time.Time             `json:"schedule_for"`
	ExpiresAt       *time.Time             `json:"expires_at"`
	Metadata        map[string]interface{} `json:"metadata"`
}

// WebhookNotificationRequest 外部 Webhook 摄入请求（松散形态）
// target 为字符串判别符，与管理端共用同一词汇表；
// 必填字段的缺失由 Service 层报出具体字段名，便于外部生产方自纠。
type WebhookNotificationRequest struct {
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	Type        string                 `json:"type"`
	Priority    string                 `json:"priority"`
	Target      string                 `json:"target"`
	ScheduleFor *time.Time             `json:"schedule_for"`
	ExpiresAt   *time.Time             `json:"expires_at"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// NotificationListRequest 用户通知列表查询参数
// types/priorities 为逗号分隔的集合，空集合表示不过滤
type NotificationListRequest struct {
	PaginationRequest
	IncludeRead *bool  `form:"include_read"`
	Types       string `form:"types"`
	Priorities  string `form:"priorities"`
}

// GetIncludeRead 是否包含已读（默认 true）
func (r *NotificationListRequest) GetIncludeRead() bool {
	if r.IncludeRead == nil {
		return true
	}
	return *r.IncludeRead
}

// GetTypes 解析逗号分隔的类型过滤集合
func (r *NotificationListRequest) GetTypes() []string {
	return splitCSV(r.Types)
}

// GetPriorities 解析逗号分隔的优先级过滤集合
func (r *NotificationListRequest) GetPriorities() []string {
	return splitCSV(r.Priorities)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AdminNotificationListRequest 管理端通知列表查询参数
type AdminNotificationListRequest struct {
	PaginationRequest
	Search   string `form:"search"   binding:"omitempty,max=255"`
	Type     string `form:"type"     binding:"omitempty"`
	Priority string `form:"priority" binding:"omitempty"`
	Active   string `form:"active"   binding:"omitempty,oneof=all true false"`
}

// MarkMultipleReadRequest 批量标记已读请求
type MarkMultipleReadRequest struct {
	NotificationIDs []string `json:"notification_ids" binding:"required,min=1,dive,uuid"`
}

// MarkMultipleReadResponse 批量标记已读响应
type MarkMultipleReadResponse struct {
	Marked int `json:"marked"`
}

// NotificationResponse 用户视角的通知响应
type NotificationResponse struct {
	ID             string                 `json:"id"`
	Title          string                 `json:"title"`
	Message        string                 `json:"message"`
	Type           string                 `json:"type"`
	Priority       string                 `json:"priority"`
	TargetAudience string                 `json:"target_audience"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	CreatedBy      string                 `json:"created_by"`
	CreatedAt      time.Time              `json:"created_at"`
	ScheduleFor    *time.Time             `json:"schedule_for,omitempty"`
	ExpiresAt      *time.Time             `json:"expires_at,omitempty"`
	IsRead         bool                   `json:"is_read"`
	ReadAt         *time.Time             `json:"read_at,omitempty"`
}

// NotificationFeedResponse 用户通知列表响应
// unread_count 按可见集合全量计算，与分页和 include_read 无关
type NotificationFeedResponse struct {
	List        []NotificationResponse `json:"list"`
	Pagination  PaginationMeta         `json:"pagination"`
	UnreadCount int64                  `json:"unread_count"`
}

// UnreadCountResponse 未读数响应
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// AdminNotificationResponse 管理端通知响应（含完整内部字段）
type AdminNotificationResponse struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	Message         string                 `json:"message"`
	Type            string                 `json:"type"`
	Priority        string                 `json:"priority"`
	TargetAudience  string                 `json:"target_audience"`
	TargetCompanyID *string                `json:"target_company_id,omitempty"`
	TargetUserID    *string                `json:"target_user_id,omitempty"`
	TargetRoles     []string               `json:"target_roles,omitempty"`
	IsActive        bool                   `json:"is_active"`
	ScheduleFor     *time.Time             `json:"schedule_for,omitempty"`
	ExpiresAt       *time.Time             `json:"expires_at,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	CreatedBy       string                 `json:"created_by"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// WebhookNotificationResponse Webhook 摄入响应
// 只暴露最小字段集，内部字段不对外部生产方泄露
type WebhookNotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ── 统计 DTO ──

// NotificationStatsOverview 通知统计概览
type NotificationStatsOverview struct {
	Total     int64 `json:"total_notifications"`
	Active    int64 `json:"active_notifications"`
	Urgent    int64 `json:"urgent_notifications"`
	Expired   int64 `json:"expired_notifications"`
	Scheduled int64 `json:"scheduled_notifications"`
}

// NotificationTypeStat 单一类型的送达/已读统计
type NotificationTypeStat struct {
	Type           string  `json:"type"`
	Sent           int64   `json:"sent"`
	Read           int64   `json:"read"`
	ReadPercentage float64 `json:"read_percentage"`
}

// NotificationStatsResponse 通知统计响应
type NotificationStatsResponse struct {
	Overview NotificationStatsOverview `json:"overview"`
	ByType   []NotificationTypeStat    `json:"by_type"`
}
