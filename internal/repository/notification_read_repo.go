package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/model"
)

// NotificationReadRepository 已读回执数据访问接口
type NotificationReadRepository interface {
	// MarkRead 写入已读回执，重复标记静默忽略（ON CONFLICT DO NOTHING）
	MarkRead(ctx context.Context, notificationID, userID string) error
	// MarkReadBatch 单条多行插入批量回执，冲突行静默忽略
	MarkReadBatch(ctx context.Context, notificationIDs []string, userID string) error
	IsRead(ctx context.Context, notificationID, userID string) (bool, error)
	// ReadSetByUser 返回该用户全部已读回执，键为通知 ID
	ReadSetByUser(ctx context.Context, userID string) (map[string]time.Time, error)
}

// notificationReadRepo NotificationReadRepository 的 GORM 实现
type notificationReadRepo struct {
	db *gorm.DB
}

// NewNotificationReadRepo 创建 NotificationReadRepository 实例
func NewNotificationReadRepo(db *gorm.DB) NotificationReadRepository {
	return &notificationReadRepo{db: db}
}

func (r *notificationReadRepo) MarkRead(ctx context.Context, notificationID, userID string) error {
	read := model.NotificationRead{
		NotificationID: notificationID,
		UserID:         userID,
		ReadAt:         time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "notification_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&read).Error
}

func (r *notificationReadRepo) MarkReadBatch(ctx context.Context, notificationIDs []string, userID string) error {
	if len(notificationIDs) == 0 {
		return nil
	}
	now := time.Now()
	reads := make([]model.NotificationRead, 0, len(notificationIDs))
	for _, id := range notificationIDs {
		reads = append(reads, model.NotificationRead{
			NotificationID: id,
			UserID:         userID,
			ReadAt:         now,
		})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "notification_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&reads).Error
}

func (r *notificationReadRepo) IsRead(ctx context.Context, notificationID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.NotificationRead{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *notificationReadRepo) ReadSetByUser(ctx context.Context, userID string) (map[string]time.Time, error) {
	var reads []model.NotificationRead
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&reads).Error
	if err != nil {
		return nil, err
	}
	set := make(map[string]time.Time, len(reads))
	for _, nr := range reads {
		set[nr.NotificationID] = nr.ReadAt
	}
	return set, nil
}
