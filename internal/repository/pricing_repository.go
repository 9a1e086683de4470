package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/models"

	"gorm.io/gorm"
)

// PricingRepository 计价规则数据访问接口
type PricingRepository interface {
	Create(ctx context.Context, pricing *models.Pricing) error
	GetByID(ctx context.Context, id uint) (*models.Pricing, error)
	GetDetailByID(ctx context.Context, id uint) (*models.Pricing, error)
	List(ctx context.Context, filter PricingListFilter) ([]models.Pricing, int64, error)
	FindFirstMatch(ctx context.Context, match PricingMatch) (*models.Pricing, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) (int64, error)
}

// GormPricingRepository GORM 实现
type GormPricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository 创建计价规则仓库
func NewPricingRepository(db *gorm.DB) *GormPricingRepository {
	return &GormPricingRepository{db: db}
}

// Create 创建计价规则
func (r *GormPricingRepository) Create(ctx context.Context, pricing *models.Pricing) error {
	return r.db.WithContext(ctx).Create(pricing).Error
}

// GetByID 根据 ID 获取计价规则（不含关联），不存在返回 nil
func (r *GormPricingRepository) GetByID(ctx context.Context, id uint) (*models.Pricing, error) {
	var pricing models.Pricing
	if err := r.db.WithContext(ctx).First(&pricing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pricing, nil
}

// GetDetailByID 根据 ID 获取计价规则及所属组织、物品
func (r *GormPricingRepository) GetDetailByID(ctx context.Context, id uint) (*models.Pricing, error) {
	var pricing models.Pricing
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("Item").
		First(&pricing, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pricing, nil
}

// List 计价规则分页列表
func (r *GormPricingRepository) List(ctx context.Context, filter PricingListFilter) ([]models.Pricing, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Pricing{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, arg := containsCondition(r.db, "pricings.zone", search)
		query = query.Where(condition, arg)
	}
	if filter.OrganizationID > 0 {
		query = query.Where("pricings.organization_id = ?", filter.OrganizationID)
	}
	if filter.ItemID > 0 {
		query = query.Where("pricings.item_id = ?", filter.ItemID)
	}
	if filter.ItemType != "" {
		query = joinItemType(query, filter.ItemType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Pricing
	query = query.Select("pricings.*").
		Preload("Organization").
		Preload("Item").
		Order(pricingOrder(filter.SortBy))
	if err := applyPagination(query, filter.Page, filter.PageSize).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindFirstMatch 按 (zone, organizationId, item.type) 查找第一条规则，id 最小者优先
func (r *GormPricingRepository) FindFirstMatch(ctx context.Context, match PricingMatch) (*models.Pricing, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Pricing{}).
		Select("pricings.*").
		Where("pricings.zone = ? AND pricings.organization_id = ?", match.Zone, match.OrganizationID)
	if match.ItemType != "" {
		query = joinItemType(query, match.ItemType)
	}

	var pricing models.Pricing
	if err := query.Preload("Item").Order("pricings.id ASC").Take(&pricing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pricing, nil
}

// Update 局部更新
func (r *GormPricingRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Pricing{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除计价规则，返回受影响行数
func (r *GormPricingRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Pricing{}, id)
	return result.RowsAffected, result.Error
}

func joinItemType(query *gorm.DB, itemType string) *gorm.DB {
	return query.
		Joins("JOIN items ON items.id = pricings.item_id").
		Where("items.type = ?", itemType)
}
