package service

import (
	"context"
	"strings"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/models"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/repository"
)

// OrganizationService 组织业务服务
type OrganizationService struct {
	repo repository.OrganizationRepository
}

// NewOrganizationService 创建组织服务
func NewOrganizationService(repo repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{repo: repo}
}

// OrganizationListInput 组织列表输入
type OrganizationListInput struct {
	Page     int
	PageSize int
	Search   string
	SortBy   string
}

// Create 创建组织
func (s *OrganizationService) Create(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	count, err := s.repo.CountByName(ctx, name, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrOrganizationExists
	}

	if err := s.repo.Create(ctx, &models.Organization{Name: name}); err != nil {
		if repository.IsDuplicateKeyErr(err) {
			return ErrOrganizationExists
		}
		return err
	}
	return nil
}

// GetByID 获取组织详情（含计价规则及物品）
func (s *OrganizationService) GetByID(ctx context.Context, id uint) (*models.Organization, error) {
	org, err := s.repo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	return org, nil
}

// GetByName 按名称获取组织详情
func (s *OrganizationService) GetByName(ctx context.Context, name string) (*models.Organization, error) {
	org, err := s.repo.GetDetailByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}
	return org, nil
}

// List 组织列表
func (s *OrganizationService) List(ctx context.Context, input OrganizationListInput) ([]models.Organization, int64, error) {
	return s.repo.List(ctx, repository.OrganizationListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Search:   input.Search,
		SortBy:   input.SortBy,
	})
}

// Update 更新组织名称；唯一性校验排除自身
func (s *OrganizationService) Update(ctx context.Context, id uint, name string) error {
	org, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if org == nil {
		return ErrOrganizationNotFound
	}

	name = strings.TrimSpace(name)
	count, err := s.repo.CountByName(ctx, name, &id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrOrganizationExists
	}

	if err := s.repo.Update(ctx, id, map[string]interface{}{"name": name}); err != nil {
		if repository.IsDuplicateKeyErr(err) {
			return ErrOrganizationExists
		}
		return err
	}
	return nil
}

// Delete 删除组织
func (s *OrganizationService) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyErr(err) {
			return ErrOrganizationInUse
		}
		return err
	}
	if affected == 0 {
		return ErrOrganizationNotFound
	}
	return nil
}
