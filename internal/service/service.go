package service

import (
	"go.uber.org/zap"

	"github.com/LukasdeSouza/login-corp-nexus-backend/config"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/repository"
	"github.com/LukasdeSouza/login-corp-nexus-backend/pkg/jwt"
	"github.com/LukasdeSouza/login-corp-nexus-backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Company      CompanyService
	Notification NotificationService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	notification := NewNotificationService(repo, logger)
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:         NewUserService(repo, logger),
		Company:      NewCompanyService(repo, logger),
		Notification: notification,
		Export:       NewExportService(notification, logger),
	}
}
