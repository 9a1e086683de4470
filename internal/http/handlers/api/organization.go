package api

import (
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/constants"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/response"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/validation"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/service"

	"github.com/gin-gonic/gin"
)

// OrganizationRequest 创建/更新组织请求
type OrganizationRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// OrganizationNameParam 按名称查询的路径参数
type OrganizationNameParam struct {
	Name string `uri:"name" binding:"required"`
}

// OrganizationListQuery 组织列表查询参数
type OrganizationListQuery struct {
	PageQuery
	Search string `form:"search"`
}

// CreateOrganization 创建组织
func (h *Handler) CreateOrganization(c *gin.Context) {
	req := validation.Body[OrganizationRequest](c)
	if err := h.OrganizationService.Create(c.Request.Context(), req.Name); err != nil {
		respondWithMappedError(c, err, organizationErrorRules)
		return
	}
	response.Created(c, constants.MsgOrganizationCreated, nil)
}

// GetOrganization 获取组织详情
func (h *Handler) GetOrganization(c *gin.Context) {
	id := validation.URIOf[IDParam](c).Value()
	org, err := h.OrganizationService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, organizationErrorRules)
		return
	}
	response.OK(c, constants.MsgOrganizationFetched, org)
}

// GetOrganizationByName 按名称获取组织详情
func (h *Handler) GetOrganizationByName(c *gin.Context) {
	name := validation.URIOf[OrganizationNameParam](c).Name
	org, err := h.OrganizationService.GetByName(c.Request.Context(), name)
	if err != nil {
		respondWithMappedError(c, err, organizationErrorRules)
		return
	}
	response.OK(c, constants.MsgOrganizationFetched, org)
}

// ListOrganizations 组织分页列表
func (h *Handler) ListOrganizations(c *gin.Context) {
	q := validation.QueryOf[OrganizationListQuery](c)
	pageNo, perPage := h.pagination(q.PageQuery)
	orgs, total, err := h.OrganizationService.List(c.Request.Context(), service.OrganizationListInput{
		Page:     pageNo,
		PageSize: perPage,
		Search:   q.Search,
		SortBy:   q.SortBy,
	})
	if err != nil {
		respondWithMappedError(c, err, organizationErrorRules)
		return
	}
	response.Page(c, constants.MsgOrganizationFetched, orgs, total, perPage, pageNo)
}

// UpdateOrganization 更新组织
func (h *Handler) UpdateOrganization(c *gin.Context) {
	id := validation.URIOf[IDParam](c).Value()
	req := validation.Body[OrganizationRequest](c)
	if err := h.OrganizationService.Update(c.Request.Context(), id, req.Name); err != nil {
		respondWithMappedError(c, err, organizationErrorRules)
		return
	}
	response.OK(c, constants.MsgOrganizationUpdated, nil)
}

// DeleteOrganization 删除组织
func (h *Handler) DeleteOrganization(c *gin.Context) {
	id := validation.URIOf[IDParam](c).Value()
	if err := h.OrganizationService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, organizationErrorRules)
		return
	}
	response.OK(c, constants.MsgOrganizationDeleted, nil)
}
