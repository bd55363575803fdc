package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Company          CompanyRepository
	User             UserRepository
	Notification     NotificationRepository
	NotificationRead NotificationReadRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Company:          NewCompanyRepo(db),
		User:             NewUserRepo(db),
		Notification:     NewNotificationRepo(db),
		NotificationRead: NewNotificationReadRepo(db),
	}
}
