package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/dto"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/model"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/repository"
)

var (
	ErrCompanyNotFound   = errors.New("企业不存在")
	ErrCompanyEmailTaken = errors.New("企业邮箱已被使用")
)

// CompanyService 企业租户业务接口
type CompanyService interface {
	Create(ctx context.Context, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	List(ctx context.Context, req *dto.CompanyListRequest) ([]dto.CompanyResponse, int64, error)
	// Deactivate 停用企业（软删除；不级联停用用户）
	Deactivate(ctx context.Context, id string) error
}

type companyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCompanyService 创建 CompanyService 实例
func NewCompanyService(repo *repository.Repository, logger *zap.Logger) CompanyService {
	return &companyService{repo: repo, logger: logger}
}

func (s *companyService) Create(ctx context.Context, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if _, err := s.repo.Company.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrCompanyEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询企业失败", zap.Error(err))
		return nil, err
	}

	plan := req.SubscriptionPlan
	if plan == "" {
		plan = "basic"
	}

	company := &model.Company{
		Name:             req.Name,
		Email:            req.Email,
		CNPJ:             req.CNPJ,
		Phone:            req.Phone,
		City:             req.City,
		State:            req.State,
		SubscriptionPlan: plan,
		IsActive:         true,
	}

	if err := s.repo.Company.Create(ctx, company); err != nil {
		s.logger.Error("创建企业失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("企业已创建", zap.String("company_id", company.CompanyID))

	resp := toCompanyResponse(company)
	return &resp, nil
}

func (s *companyService) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询企业失败", zap.Error(err))
		return nil, err
	}
	resp := toCompanyResponse(company)
	return &resp, nil
}

func (s *companyService) Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("查询企业失败", zap.Error(err))
		return nil, err
	}

	if req.Email != nil && *req.Email != company.Email {
		if _, err := s.repo.Company.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrCompanyEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询企业失败", zap.Error(err))
			return nil, err
		}
		company.Email = *req.Email
	}
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.CNPJ != nil {
		company.CNPJ = req.CNPJ
	}
	if req.Phone != nil {
		company.Phone = req.Phone
	}
	if req.City != nil {
		company.City = req.City
	}
	if req.State != nil {
		company.State = req.State
	}
	if req.SubscriptionPlan != nil {
		company.SubscriptionPlan = *req.SubscriptionPlan
	}

	if err := s.repo.Company.Update(ctx, company); err != nil {
		s.logger.Error("更新企业失败", zap.Error(err))
		return nil, err
	}

	resp := toCompanyResponse(company)
	return &resp, nil
}

func (s *companyService) List(ctx context.Context, req *dto.CompanyListRequest) ([]dto.CompanyResponse, int64, error) {
	companies, total, err := s.repo.Company.List(ctx, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询企业列表失败", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		resp = append(resp, toCompanyResponse(&companies[i]))
	}
	return resp, total, nil
}

func (s *companyService) Deactivate(ctx context.Context, id string) error {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		s.logger.Error("查询企业失败", zap.Error(err))
		return err
	}

	company.IsActive = false
	if err := s.repo.Company.Update(ctx, company); err != nil {
		s.logger.Error("停用企业失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 转换辅助 ──

func toCompanyResponse(company *model.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:               company.CompanyID,
		Name:             company.Name,
		Email:            company.Email,
		CNPJ:             company.CNPJ,
		City:             company.City,
		State:            company.State,
		SubscriptionPlan: company.SubscriptionPlan,
		IsActive:         company.IsActive,
	}
}
