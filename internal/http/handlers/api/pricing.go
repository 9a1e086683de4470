package api

import (
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/constants"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/handlers/shared"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/response"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/validation"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePricingRequest 创建计价规则请求，距离单位为米
type CreatePricingRequest struct {
	OrganizationID *uint    `json:"organizationId" binding:"required"`
	ItemID         *uint    `json:"itemId" binding:"required"`
	Zone           string   `json:"zone" binding:"required"`
	BaseDistance   *float64 `json:"baseDistance" binding:"required,gte=0"`
	PricePerKM     *float64 `json:"pricePerKM" binding:"required,gte=0"`
	FixPrice       *float64 `json:"fixPrice" binding:"required,gte=0"`
}

// UpdatePricingRequest 更新计价规则请求，全部字段可选
type UpdatePricingRequest struct {
	OrganizationID *uint    `json:"organizationId"`
	ItemID         *uint    `json:"itemId"`
	Zone           *string  `json:"zone"`
	BaseDistance   *float64 `json:"baseDistance" binding:"omitempty,gte=0"`
	PricePerKM     *float64 `json:"pricePerKM" binding:"omitempty,gte=0"`
	FixPrice       *float64 `json:"fixPrice" binding:"omitempty,gte=0"`
}

// PricingListQuery 计价规则列表查询参数
type PricingListQuery struct {
	PageQuery
	Search         string `form:"search"`
	ItemID         string `form:"itemId" binding:"omitempty,number,id"`
	OrganizationID string `form:"organizationId" binding:"omitempty,number,id"`
	ItemType       string `form:"itemType" binding:"omitempty,oneof=PERISHABLE NONPERISHABLE"`
}

// DynamicPriceRequest 动态计价请求
type DynamicPriceRequest struct {
	Zone           string   `json:"zone" binding:"required"`
	OrganizationID *uint    `json:"organizationId" binding:"required"`
	ItemType       string   `json:"itemType" binding:"omitempty,oneof=PERISHABLE NONPERISHABLE"`
	TotalDistance  *float64 `json:"totalDistance" binding:"required,gte=0"`
}

// CreatePricing 创建计价规则
func (h *Handler) CreatePricing(c *gin.Context) {
	req := validation.Body[CreatePricingRequest](c)
	id, err := h.PricingService.Create(c.Request.Context(), service.CreatePricingInput{
		OrganizationID: *req.OrganizationID,
		ItemID:         *req.ItemID,
		Zone:           req.Zone,
		BaseDistance:   *req.BaseDistance,
		PricePerKM:     *req.PricePerKM,
		FixPrice:       *req.FixPrice,
	})
	if err != nil {
		respondWithMappedError(c, err, pricingErrorRules)
		return
	}
	response.Created(c, constants.MsgPricingCreated, gin.H{"id": id})
}

// GetPricing 获取计价规则详情
func (h *Handler) GetPricing(c *gin.Context) {
	id := validation.URIOf[IDParam](c).Value()
	pricing, err := h.PricingService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, pricingErrorRules)
		return
	}
	response.OK(c, constants.MsgPricingFetched, pricing)
}

// ListPricing 计价规则分页列表
func (h *Handler) ListPricing(c *gin.Context) {
	q := validation.QueryOf[PricingListQuery](c)
	pageNo, perPage := h.pagination(q.PageQuery)
	list, total, err := h.PricingService.List(c.Request.Context(), service.PricingListInput{
		Page:           pageNo,
		PageSize:       perPage,
		Search:         q.Search,
		SortBy:         q.SortBy,
		ItemID:         shared.ParseID(q.ItemID),
		OrganizationID: shared.ParseID(q.OrganizationID),
		ItemType:       q.ItemType,
	})
	if err != nil {
		respondWithMappedError(c, err, pricingErrorRules)
		return
	}
	response.Page(c, constants.MsgPricingFetched, list, total, perPage, pageNo)
}

// UpdatePricing 局部更新计价规则
func (h *Handler) UpdatePricing(c *gin.Context) {
	id := validation.URIOf[IDParam](c).Value()
	req := validation.Body[UpdatePricingRequest](c)
	if err := h.PricingService.Update(c.Request.Context(), id, service.UpdatePricingInput{
		OrganizationID: req.OrganizationID,
		ItemID:         req.ItemID,
		Zone:           req.Zone,
		BaseDistance:   req.BaseDistance,
		PricePerKM:     req.PricePerKM,
		FixPrice:       req.FixPrice,
	}); err != nil {
		respondWithMappedError(c, err, pricingErrorRules)
		return
	}
	response.OK(c, constants.MsgPricingUpdated, nil)
}

// DeletePricing 删除计价规则
func (h *Handler) DeletePricing(c *gin.Context) {
	id := validation.URIOf[IDParam](c).Value()
	if err := h.PricingService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, pricingErrorRules)
		return
	}
	response.OK(c, constants.MsgPricingDeleted, nil)
}

// CalculatePrice 动态计价
func (h *Handler) CalculatePrice(c *gin.Context) {
	req := validation.Body[DynamicPriceRequest](c)
	total, err := h.PricingService.ComputeDynamicPrice(c.Request.Context(), service.DynamicPriceInput{
		Zone:           req.Zone,
		OrganizationID: *req.OrganizationID,
		ItemType:       req.ItemType,
		TotalDistance:  *req.TotalDistance,
	})
	if err != nil {
		respondWithMappedError(c, err, pricingErrorRules)
		return
	}
	response.OK(c, constants.MsgPricingCalculated, gin.H{"totalPrice": total})
}
