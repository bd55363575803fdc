package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/LukasdeSouza/login-corp-nexus-backend/config"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/dto"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/model"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/repository"
	"github.com/LukasdeSouza/login-corp-nexus-backend/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService() (AuthService, *mockUserRepo) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-0123456789abcdef",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 168 * time.Hour,
		},
	}
	userRepo := newMockUserRepo()
	repo := &repository.Repository{
		Company:          newMockCompanyRepo(),
		User:             userRepo,
		Notification:     newMockNotificationRepo(newMockNotificationReadRepo()),
		NotificationRead: newMockNotificationReadRepo(),
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, userRepo
}

func seedLoginUser(userRepo *mockUserRepo, email, password string, active bool) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		UserID:       "uid-" + email,
		Name:         "测试用户",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleFuncionario,
		CompanyID:    "company-a",
		IsActive:     active,
	}
	userRepo.users[user.UserID] = user
	return user
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	seedLoginUser(userRepo, "joao@empresa.com", "senha123", true)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "joao@empresa.com",
		Password: "senha123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("应返回 Token 对")
	}
	if result.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("expires_in 不符: %d", result.ExpiresIn)
	}
	if result.User.Email != "joao@empresa.com" {
		t.Errorf("用户信息不符: %+v", result.User)
	}

	// 最后登录时间应被刷新
	user := userRepo.users["uid-joao@empresa.com"]
	if user.LastLogin == nil {
		t.Error("登录成功后应更新 last_login")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	seedLoginUser(userRepo, "joao@empresa.com", "senha123", true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "joao@empresa.com",
		Password: "errada",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ninguem@empresa.com",
		Password: "qualquer",
	})
	// 不暴露用户是否存在
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	seedLoginUser(userRepo, "joao@empresa.com", "senha123", false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "joao@empresa.com",
		Password: "senha123",
	})
	if !errors.Is(err, ErrUserInactive) {
		t.Errorf("期望 ErrUserInactive，实际 %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	seedLoginUser(userRepo, "joao@empresa.com", "senha123", true)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "joao@empresa.com",
		Password: "senha123",
	})

	result, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("应签发新的 AccessToken")
	}
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, userRepo := setupTestAuthService()
	seedLoginUser(userRepo, "joao@empresa.com", "senha123", true)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "joao@empresa.com",
		Password: "senha123",
	})

	// 用 AccessToken 换新应被拒绝
	_, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.AccessToken,
	})
	if !errors.Is(err, ErrRefreshTokenType) {
		t.Errorf("期望 ErrRefreshTokenType，实际 %v", err)
	}
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: "not-a-token",
	})
	if !errors.Is(err, jwt.ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际 %v", err)
	}
}

// ── Logout / GetCurrentUser 测试 ──

func TestAuthService_Logout_NoRedis(t *testing.T) {
	svc, _ := setupTestAuthService()

	// Redis 不可用时登出为空操作，不应报错
	claims := &jwt.Claims{}
	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Errorf("无 Redis 时 Logout 应成功: %v", err)
	}
}

func TestAuthService_GetCurrentUser_NotFound(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.GetCurrentUser(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际 %v", err)
	}
}
