package service

import "errors"

// 业务错误，由 handler 层映射为 HTTP 响应
var (
	ErrItemExists   = errors.New("item already exists")
	ErrItemNotFound = errors.New("item not found")
	ErrItemInUse    = errors.New("item is referenced by pricing rules")

	ErrOrganizationExists   = errors.New("organization already exists")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrganizationInUse    = errors.New("organization is referenced by pricing rules")

	ErrPricingNotFound      = errors.New("pricing not found")
	ErrPricingNotCalculable = errors.New("pricing could not be calculated")
	ErrInvalidDistance      = errors.New("total distance must not be negative")
)
