package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/model"
)

// NotificationListFilters 管理端通知列表过滤条件
type NotificationListFilters struct {
	Search   string // 标题/正文模糊匹配
	Type     string // 精确匹配，空串不过滤
	Priority string // 精确匹配，空串不过滤
	Active   *bool  // nil 不过滤
}

// NotificationOverviewRow 统计概览查询结果
type NotificationOverviewRow struct {
	Total     int64
	Active    int64
	Urgent    int64
	Expired   int64
	Scheduled int64
}

// NotificationTypeStatRow 按类型统计查询结果
type NotificationTypeStatRow struct {
	Type           string
	Sent           int64
	ReadCount      int64
	ReadPercentage float64
}

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	// Deactivate 直接 UPDATE is_active，保证对下一次可见性判定立即生效；
	// 记录不存在时返回 gorm.ErrRecordNotFound，已停用的记录重复停用不报错。
	Deactivate(ctx context.Context, id string) error
	// ListLive 返回全部激活通知（受众/时间窗口过滤在 Service 层进行）
	ListLive(ctx context.Context) ([]model.Notification, error)
	ListAll(ctx context.Context, filters *NotificationListFilters, offset, limit int) ([]model.Notification, int64, error)
	Overview(ctx context.Context, now time.Time) (*NotificationOverviewRow, error)
	TypeStats(ctx context.Context) ([]NotificationTypeStatRow, error)
}

// notificationRepo NotificationRepository 的 GORM 实现
type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	var n model.Notification
	err := r.db.WithContext(ctx).
		Where("notification_id = ?", id).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) Deactivate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("notification_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepo) ListLive(ctx context.Context) ([]model.Notification, error) {
	var list []model.Notification
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificationRepo) ListAll(ctx context.Context, filters *NotificationListFilters, offset, limit int) ([]model.Notification, int64, error) {
	var list []model.Notification
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Notification{})
	if filters != nil {
		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			db = db.Where("title ILIKE ? OR message ILIKE ?", pattern, pattern)
		}
		if filters.Type != "" {
			db = db.Where("type = ?", filters.Type)
		}
		if filters.Priority != "" {
			db = db.Where("priority = ?", filters.Priority)
		}
		if filters.Active != nil {
			db = db.Where("is_active = ?", *filters.Active)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *notificationRepo) Overview(ctx context.Context, now time.Time) (*NotificationOverviewRow, error) {
	var row NotificationOverviewRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(CASE WHEN is_active = true THEN 1 END) AS active,
			COUNT(CASE WHEN priority = 'urgent' THEN 1 END) AS urgent,
			COUNT(CASE WHEN expires_at < ? THEN 1 END) AS expired,
			COUNT(CASE WHEN schedule_for > ? THEN 1 END) AS scheduled
		FROM notifications
	`, now, now).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *notificationRepo) TypeStats(ctx context.Context) ([]NotificationTypeStatRow, error) {
	var rows []NotificationTypeStatRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			n.type,
			COUNT(*) AS sent,
			COUNT(nr.id) AS read_count,
			ROUND(COUNT(nr.id) * 100.0 / COUNT(*), 2) AS read_percentage
		FROM notifications n
		LEFT JOIN notification_reads nr ON n.notification_id = nr.notification_id
		WHERE n.is_active = true
		GROUP BY n.type
		ORDER BY sent DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
