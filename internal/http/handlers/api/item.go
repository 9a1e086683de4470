package api

import (
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/constants"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/response"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/validation"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateItemRequest 创建物品请求
type CreateItemRequest struct {
	Type        string  `json:"type" binding:"required,oneof=PERISHABLE NONPERISHABLE"`
	Description *string `json:"description"`
}

// UpdateItemRequest 更新物品请求，type 必填
type UpdateItemRequest struct {
	Type        string  `json:"type" binding:"required,oneof=PERISHABLE NONPERISHABLE"`
	Description *string `json:"description"`
}

// ItemTypeParam 按类型查询的路径参数
type ItemTypeParam struct {
	Type string `uri:"type" binding:"required,oneof=PERISHABLE NONPERISHABLE"`
}

// ItemListQuery 物品列表查询参数
type ItemListQuery struct {
	PageQuery
	Type string `form:"type" binding:"omitempty,oneof=PERISHABLE NONPERISHABLE"`
}

// CreateItem 创建物品
func (h *Handler) CreateItem(c *gin.Context) {
	req := validation.Body[CreateItemRequest](c)
	if err := h.ItemService.Create(c.Request.Context(), service.CreateItemInput{
		Type:        req.Type,
		Description: req.Description,
	}); err != nil {
		respondWithMappedError(c, err, itemErrorRules)
		return
	}
	response.Created(c, constants.MsgItemCreated, nil)
}

// GetItem 获取物品详情
func (h *Handler) GetItem(c *gin.Context) {
	id := validation.URIOf[IDParam](c).Value()
	item, err := h.ItemService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, itemErrorRules)
		return
	}
	response.OK(c, constants.MsgItemFetched, item)
}

// GetItemByType 按类型获取物品详情
func (h *Handler) GetItemByType(c *gin.Context) {
	itemType := validation.URIOf[ItemTypeParam](c).Type
	item, err := h.ItemService.GetByType(c.Request.Context(), itemType)
	if err != nil {
		respondWithMappedError(c, err, itemErrorRules)
		return
	}
	response.OK(c, constants.MsgItemFetched, item)
}

// ListItems 物品分页列表
func (h *Handler) ListItems(c *gin.Context) {
	q := validation.QueryOf[ItemListQuery](c)
	pageNo, perPage := h.pagination(q.PageQuery)
	items, total, err := h.ItemService.List(c.Request.Context(), service.ItemListInput{
		Page:     pageNo,
		PageSize: perPage,
		Type:     q.Type,
		SortBy:   q.SortBy,
	})
	if err != nil {
		respondWithMappedError(c, err, itemErrorRules)
		return
	}
	response.Page(c, constants.MsgItemFetched, items, total, perPage, pageNo)
}

// UpdateItem 更新物品
func (h *Handler) UpdateItem(c *gin.Context) {
	id := validation.URIOf[IDParam](c).Value()
	req := validation.Body[UpdateItemRequest](c)
	itemType := req.Type
	if err := h.ItemService.Update(c.Request.Context(), id, service.UpdateItemInput{
		Type:        &itemType,
		Description: req.Description,
	}); err != nil {
		respondWithMappedError(c, err, itemErrorRules)
		return
	}
	response.OK(c, constants.MsgItemUpdated, nil)
}

// DeleteItem 删除物品
func (h *Handler) DeleteItem(c *gin.Context) {
	id := validation.URIOf[IDParam](c).Value()
	if err := h.ItemService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, itemErrorRules)
		return
	}
	response.OK(c, constants.MsgItemDeleted, nil)
}
