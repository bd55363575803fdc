package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/LukasdeSouza/login-corp-nexus-backend/config"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/dto"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/model"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/repository"
	"github.com/LukasdeSouza/login-corp-nexus-backend/pkg/jwt"
	"github.com/LukasdeSouza/login-corp-nexus-backend/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserInactive       = errors.New("用户已停用")
	ErrRefreshTokenType   = errors.New("不是有效的 Refresh Token")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	// Logout 将当前 Token 加入黑名单（Redis 不可用时为空操作）
	Logout(ctx context.Context, claims *jwt.Claims) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 更新最后登录时间（失败不阻断登录）
	now := time.Now()
	user.LastLogin = &now
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Warn("更新最后登录时间失败", zap.Error(err))
	}

	return s.issueTokens(user)
}

func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, ErrRefreshTokenType
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("黑名单查询失败", zap.Error(err))
		} else if blacklisted {
			return nil, jwt.ErrTokenInvalid
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return s.issueTokens(user)
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Email, user.Role, user.CompanyID)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Email, user.Role, user.CompanyID)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User:         toUserResponse(user),
	}, nil
}
