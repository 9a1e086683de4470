package constants

// 商品类型常量
const (
	ItemTypePerishable    = "PERISHABLE"
	ItemTypeNonPerishable = "NONPERISHABLE"
)

// ItemTypes 全部合法商品类型
var ItemTypes = []string{ItemTypePerishable, ItemTypeNonPerishable}

// 距离换算
const (
	MetersPerKilometer = 1000
)

// 接口成功提示
const (
	MsgItemCreated = "Item created"
	MsgItemUpdated = "Item updated"
	MsgItemDeleted = "Item deleted"
	MsgItemFetched = "Item fetched"

	MsgOrganizationCreated = "Organization created"
	MsgOrganizationUpdated = "Organization updated"
	MsgOrganizationDeleted = "Organization deleted"
	MsgOrganizationFetched = "Organization fetched"

	MsgPricingCreated    = "Pricing created"
	MsgPricingUpdated    = "Pricing updated"
	MsgPricingDeleted    = "Pricing deleted"
	MsgPricingFetched    = "Pricing fetched"
	MsgPricingCalculated = "Pricing calculated"
)

// 业务错误提示
const (
	MsgItemExists           = "Item already exist!"
	MsgItemNotFound         = "Item not found!"
	MsgItemInUse            = "Item is referenced by pricing rules!"
	MsgOrganizationExists   = "Organization already exist!"
	MsgOrganizationNotFound = "Organization not found!"
	MsgOrganizationInUse    = "Organization is referenced by pricing rules!"
	MsgPricingNotFound      = "Pricing not found!"
	MsgPricingNotCalculable = "Pricing could not be calculated! Check your input"
	MsgTotalDistanceInvalid = "totalDistance must be greater than or equal to 0"
	MsgServiceUnavailable   = "Service unavailable"
)

// 通用错误提示
const (
	MsgValidationFailed = "Validation failed"
	MsgInternalError    = "Internal server error"
	MsgRouteNotFound    = "Route not found!"
	MsgUnauthorized     = "Unauthorized"
	MsgTooManyRequests  = "Too many requests, retry in %d seconds"
)

// 排序关键字
const (
	SortKeyCreatedAt = "createdAt"
	SortKeyName      = "name"
	SortKeyZone      = "zone"
	SortAscSuffix    = "asc"
)
