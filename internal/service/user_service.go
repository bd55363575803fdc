package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/dto"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/model"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/repository"
)

var (
	ErrEmailTaken = errors.New("邮箱已被使用")
)

// UserService 用户业务接口
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest) (*dto.UserResponse, error)
	// Deactivate 停用用户（软删除）
	Deactivate(ctx context.Context, id string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	// 1. 邮箱唯一性检查
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 企业必须存在
	if _, err := s.repo.Company.GetByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询企业失败", zap.Error(err))
		return nil, err
	}

	// 3. 密码哈希 (bcrypt)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		CompanyID:    req.CompanyID,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户已创建", zap.String("user_id", user.UserID), zap.String("role", user.Role))

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
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

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.User.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询用户失败", zap.Error(err))
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.CompanyID != nil && *req.CompanyID != user.CompanyID {
		if _, err := s.repo.Company.GetByID(ctx, *req.CompanyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCompanyNotFound
			}
			s.logger.Error("查询企业失败", zap.Error(err))
			return nil, err
		}
		user.CompanyID = *req.CompanyID
		user.Company = nil
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filters := &repository.UserListFilters{
		CompanyID: req.CompanyID,
		Role:      req.Role,
		Keyword:   req.Keyword,
	}

	users, total, err := s.repo.User.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return resp, total, nil
}

func (s *userService) AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	user.Role = req.Role
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("分配角色失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("角色已变更", zap.String("user_id", user.UserID), zap.String("role", user.Role))

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) Deactivate(ctx context.Context, id string) error {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	user.IsActive = false
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("停用用户失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 转换辅助 ──

func toUserResponse(user *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if user.Company != nil {
		c := toCompanyResponse(user.Company)
		resp.Company = &c
	}
	return resp
}
