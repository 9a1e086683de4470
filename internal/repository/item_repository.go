package repository

import (
	"context"
	"errors"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/models"

	"gorm.io/gorm"
)

// ItemRepository 物品数据访问接口
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uint) (*models.Item, error)
	GetDetailByID(ctx context.Context, id uint) (*models.Item, error)
	GetDetailByType(ctx context.Context, itemType string) (*models.Item, error)
	List(ctx context.Context, filter ItemListFilter) ([]models.Item, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) (int64, error)
	CountByType(ctx context.Context, itemType string, excludeID *uint) (int64, error)
}

// GormItemRepository GORM 实现
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建物品仓库
func NewItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Create 创建物品
func (r *GormItemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID 根据 ID 获取物品（不含关联），不存在返回 nil
func (r *GormItemRepository) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetDetailByID 根据 ID 获取物品及其计价规则
func (r *GormItemRepository) GetDetailByID(ctx context.Context, id uint) (*models.Item, error) {
	return r.firstDetail(r.db.WithContext(ctx).Where("id = ?", id))
}

// GetDetailByType 根据类型获取物品及其计价规则
func (r *GormItemRepository) GetDetailByType(ctx context.Context, itemType string) (*models.Item, error) {
	return r.firstDetail(r.db.WithContext(ctx).Where("type = ?", itemType))
}

func (r *GormItemRepository) firstDetail(query *gorm.DB) (*models.Item, error) {
	var item models.Item
	err := query.
		Preload("Pricings", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Pricings.Organization").
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List 物品分页列表（含计价规则及组织），total 不受分页影响
func (r *GormItemRepository) List(ctx context.Context, filter ItemListFilter) ([]models.Item, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Item{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Item
	query = query.
		Preload("Pricings", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Pricings.Organization").
		Order(itemOrder(filter.SortBy))
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update 局部更新
func (r *GormItemRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除物品，返回受影响行数
func (r *GormItemRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Item{}, id)
	return result.RowsAffected, result.Error
}

// CountByType 统计类型数量
func (r *GormItemRepository) CountByType(ctx context.Context, itemType string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Item{}).Where("type = ?", itemType)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
