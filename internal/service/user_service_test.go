package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/dto"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/model"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestUserService() (UserService, *mockUserRepo, *mockCompanyRepo) {
	userRepo := newMockUserRepo()
	companyRepo := newMockCompanyRepo()
	repo := &repository.Repository{
		Company:          companyRepo,
		User:             userRepo,
		Notification:     newMockNotificationRepo(newMockNotificationReadRepo()),
		NotificationRead: newMockNotificationReadRepo(),
	}
	svc := NewUserService(repo, zap.NewNop())
	return svc, userRepo, companyRepo
}

func seedCompany(companyRepo *mockCompanyRepo, id, name string) *model.Company {
	company := &model.Company{
		CompanyID:        id,
		Name:             name,
		Email:            id + "@empresa.com",
		SubscriptionPlan: "basic",
		IsActive:         true,
	}
	companyRepo.companies[id] = company
	return company
}

// ── Create 测试 ──

func TestUserService_Create_Success(t *testing.T) {
	svc, userRepo, companyRepo := setupTestUserService()
	seedCompany(companyRepo, "company-a", "Empresa A")

	result, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:      "Maria Silva",
		Email:     "maria@empresa.com",
		Password:  "senha12345",
		Role:      model.RoleRH,
		CompanyID: "company-a",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Role != model.RoleRH {
		t.Errorf("角色不符: %s", result.Role)
	}

	stored := userRepo.users[result.ID]
	if stored == nil {
		t.Fatal("用户未入库")
	}
	// 密码应以 bcrypt 哈希存储
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("senha12345")); err != nil {
		t.Error("密码哈希校验失败")
	}
}

func TestUserService_Create_EmailTaken(t *testing.T) {
	svc, userRepo, companyRepo := setupTestUserService()
	seedCompany(companyRepo, "company-a", "Empresa A")
	seedLoginUser(userRepo, "maria@empresa.com", "senha123", true)

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:      "Outra Maria",
		Email:     "maria@empresa.com",
		Password:  "senha12345",
		Role:      model.RoleFuncionario,
		CompanyID: "company-a",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("期望 ErrEmailTaken，实际 %v", err)
	}
}

func TestUserService_Create_CompanyNotFound(t *testing.T) {
	svc, _, _ := setupTestUserService()

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:      "Maria Silva",
		Email:     "maria@empresa.com",
		Password:  "senha12345",
		Role:      model.RoleFuncionario,
		CompanyID: "ghost-company",
	})
	if !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("期望 ErrCompanyNotFound，实际 %v", err)
	}
}

// ── Update / AssignRole / Deactivate 测试 ──

func TestUserService_Update_PartialFields(t *testing.T) {
	svc, userRepo, _ := setupTestUserService()
	user := seedLoginUser(userRepo, "maria@empresa.com", "senha123", true)

	newName := "Maria Souza"
	result, err := svc.Update(context.Background(), user.UserID, &dto.UpdateUserRequest{
		Name: &newName,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != "Maria Souza" {
		t.Errorf("姓名未更新: %s", result.Name)
	}
	// 未提供的字段保持不变
	if result.Email != "maria@empresa.com" {
		t.Errorf("邮箱不应被改动: %s", result.Email)
	}
}

func TestUserService_AssignRole(t *testing.T) {
	svc, userRepo, _ := setupTestUserService()
	user := seedLoginUser(userRepo, "maria@empresa.com", "senha123", true)

	result, err := svc.AssignRole(context.Background(), user.UserID, &dto.AssignRoleRequest{
		Role: model.RoleGerente,
	})
	if err != nil {
		t.Fatalf("AssignRole 应成功: %v", err)
	}
	if result.Role != model.RoleGerente {
		t.Errorf("角色未变更: %s", result.Role)
	}
}

func TestUserService_Deactivate(t *testing.T) {
	svc, userRepo, _ := setupTestUserService()
	user := seedLoginUser(userRepo, "maria@empresa.com", "senha123", true)

	if err := svc.Deactivate(context.Background(), user.UserID); err != nil {
		t.Fatalf("Deactivate 应成功: %v", err)
	}
	if userRepo.users[user.UserID].IsActive {
		t.Error("用户应被停用")
	}

	if err := svc.Deactivate(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际 %v", err)
	}
}

// ── List 测试 ──

func TestUserService_List_RoleFilter(t *testing.T) {
	svc, userRepo, _ := setupTestUserService()
	seedLoginUser(userRepo, "a@empresa.com", "senha123", true)
	rh := seedLoginUser(userRepo, "b@empresa.com", "senha123", true)
	rh.Role = model.RoleRH

	req := &dto.UserListRequest{Role: model.RoleRH}
	users, total, err := svc.List(context.Background(), req)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 || len(users) != 1 || users[0].Role != model.RoleRH {
		t.Errorf("角色过滤不符: total=%d users=%+v", total, users)
	}
}
