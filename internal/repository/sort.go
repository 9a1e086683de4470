package repository

import (
	"strings"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/constants"
)

const defaultOrder = "created_at DESC, id DESC"

// itemOrder 仅识别 createdAt，包含 asc 时升序
func itemOrder(sortBy string) string {
	if !strings.Contains(sortBy, constants.SortKeyCreatedAt) {
		return defaultOrder
	}
	if strings.Contains(sortBy, constants.SortAscSuffix) {
		return "created_at ASC, id ASC"
	}
	return defaultOrder
}

// organizationOrder 仅识别 name，name:asc 升序
func organizationOrder(sortBy string) string {
	if !strings.Contains(sortBy, constants.SortKeyName) {
		return defaultOrder
	}
	if strings.Contains(sortBy, constants.SortKeyName+":"+constants.SortAscSuffix) {
		return "name ASC, id ASC"
	}
	return "name DESC, id DESC"
}

// pricingOrder 仅识别 zone，zone:asc 升序；同区域内按创建时间倒序
func pricingOrder(sortBy string) string {
	if !strings.Contains(sortBy, constants.SortKeyZone) {
		return "pricings.created_at DESC, pricings.id DESC"
	}
	if strings.Contains(sortBy, constants.SortKeyZone+":"+constants.SortAscSuffix) {
		return "pricings.zone ASC, pricings.created_at DESC, pricings.id DESC"
	}
	return "pricings.zone DESC, pricings.created_at DESC, pricings.id DESC"
}
