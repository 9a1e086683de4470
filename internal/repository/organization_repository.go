package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/models"

	"gorm.io/gorm"
)

// OrganizationRepository 组织数据访问接口
type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id uint) (*models.Organization, error)
	GetDetailByID(ctx context.Context, id uint) (*models.Organization, error)
	GetDetailByName(ctx context.Context, name string) (*models.Organization, error)
	List(ctx context.Context, filter OrganizationListFilter) ([]models.Organization, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) (int64, error)
	CountByName(ctx context.Context, name string, excludeID *uint) (int64, error)
}

// GormOrganizationRepository GORM 实现
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository 创建组织仓库
func NewOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create 创建组织
func (r *GormOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

// GetByID 根据 ID 获取组织（不含关联），不存在返回 nil
func (r *GormOrganizationRepository) GetByID(ctx context.Context, id uint) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

// GetDetailByID 根据 ID 获取组织及其计价规则
func (r *GormOrganizationRepository) GetDetailByID(ctx context.Context, id uint) (*models.Organization, error) {
	return r.firstDetail(r.db.WithContext(ctx).Where("id = ?", id))
}

// GetDetailByName 根据名称获取组织及其计价规则
func (r *GormOrganizationRepository) GetDetailByName(ctx context.Context, name string) (*models.Organization, error) {
	return r.firstDetail(r.db.WithContext(ctx).Where("name = ?", name))
}

func (r *GormOrganizationRepository) firstDetail(query *gorm.DB) (*models.Organization, error) {
	var org models.Organization
	err := query.
		Preload("Pricings", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Pricings.Item").
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

// List 组织分页列表，search 对 name 做大小写不敏感的子串匹配
func (r *GormOrganizationRepository) List(ctx context.Context, filter OrganizationListFilter) ([]models.Organization, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Organization{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, arg := containsCondition(r.db, "name", search)
		query = query.Where(condition, arg)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orgs []models.Organization
	query = query.
		Preload("Pricings", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Pricings.Item").
		Order(organizationOrder(filter.SortBy))
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Find(&orgs).Error; err != nil {
		return nil, 0, err
	}
	return orgs, total, nil
}

// Update 局部更新
func (r *GormOrganizationRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Organization{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除组织，返回受影响行数
func (r *GormOrganizationRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Organization{}, id)
	return result.RowsAffected, result.Error
}

// CountByName 统计名称数量
func (r *GormOrganizationRepository) CountByName(ctx context.Context, name string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Organization{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
