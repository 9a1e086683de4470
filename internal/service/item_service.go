package service

import (
	"context"
	"strings"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/models"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/repository"
)

// ItemService 物品业务服务
type ItemService struct {
	repo repository.ItemRepository
}

// NewItemService 创建物品服务
func NewItemService(repo repository.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// CreateItemInput 创建物品输入
type CreateItemInput struct {
	Type        string
	Description *string
}

// UpdateItemInput 更新物品输入，nil 字段保持不变
type UpdateItemInput struct {
	Type        *string
	Description *string
}

// ItemListInput 物品列表输入
type ItemListInput struct {
	Page     int
	PageSize int
	Type     string
	SortBy   string
}

// Create 创建物品，type 已存在时返回 ErrItemExists
func (s *ItemService) Create(ctx context.Context, input CreateItemInput) error {
	itemType := strings.TrimSpace(input.Type)
	count, err := s.repo.CountByType(ctx, itemType, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrItemExists
	}

	item := models.Item{
		Type:        itemType,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		if repository.IsDuplicateKeyErr(err) {
			return ErrItemExists
		}
		return err
	}
	return nil
}

// GetByID 获取物品详情（含计价规则及组织）
func (s *ItemService) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.repo.GetDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// GetByType 按类型获取物品详情
func (s *ItemService) GetByType(ctx context.Context, itemType string) (*models.Item, error) {
	item, err := s.repo.GetDetailByType(ctx, strings.TrimSpace(itemType))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// List 物品列表
func (s *ItemService) List(ctx context.Context, input ItemListInput) ([]models.Item, int64, error) {
	return s.repo.List(ctx, repository.ItemListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Type:     strings.TrimSpace(input.Type),
		SortBy:   input.SortBy,
	})
}

// Update 局部更新物品；type 唯一性校验排除自身
func (s *ItemService) Update(ctx context.Context, id uint, input UpdateItemInput) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}

	updates := map[string]interface{}{}
	if input.Type != nil {
		itemType := strings.TrimSpace(*input.Type)
		count, err := s.repo.CountByType(ctx, itemType, &id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrItemExists
		}
		updates["type"] = itemType
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		if repository.IsDuplicateKeyErr(err) {
			return ErrItemExists
		}
		return err
	}
	return nil
}

// Delete 删除物品；被计价规则引用时由外键拒绝
func (s *ItemService) Delete(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyErr(err) {
			return ErrItemInUse
		}
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}
