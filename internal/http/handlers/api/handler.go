package api

import (
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/handlers/shared"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/provider"
)

// Handler /api/v1 接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// IDParam 路径中的数字 ID
type IDParam struct {
	ID string `uri:"id" binding:"required,number,id"`
}

// Value 返回解析后的 ID
func (p IDParam) Value() uint {
	return shared.ParseID(p.ID)
}

// PageQuery 通用分页与排序参数
type PageQuery struct {
	PerPage string `form:"perPage" binding:"omitempty,number"`
	PageNo  string `form:"pageNo" binding:"omitempty,number"`
	SortBy  string `form:"sortBy"`
}

// pagination 按配置归一化分页参数
func (h *Handler) pagination(q PageQuery) (int, int) {
	defaultPerPage, maxPerPage := 10, 100
	if h.Config != nil {
		defaultPerPage = h.Config.Pagination.DefaultPerPage
		maxPerPage = h.Config.Pagination.MaxPerPage
	}
	pageNo := shared.ParseIntOr(q.PageNo, 1)
	perPage := shared.ParseIntOr(q.PerPage, defaultPerPage)
	return shared.NormalizePagination(pageNo, perPage, defaultPerPage, maxPerPage)
}
