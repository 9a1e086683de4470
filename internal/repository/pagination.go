package repository

import "gorm.io/gorm"

// applyPagination 应用 pageNo/perPage，非法页码按第一页处理
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
