package repository

// ItemListFilter 物品列表过滤条件
type ItemListFilter struct {
	Page     int
	PageSize int
	Type     string
	SortBy   string
}

// OrganizationListFilter 组织列表过滤条件
type OrganizationListFilter struct {
	Page     int
	PageSize int
	Search   string
	SortBy   string
}

// PricingListFilter 计价规则列表过滤条件
type PricingListFilter struct {
	Page           int
	PageSize       int
	Search         string
	SortBy         string
	ItemID         uint
	OrganizationID uint
	ItemType       string
}

// PricingMatch 动态计价规则匹配条件，ItemType 为空时不按物品类型过滤
type PricingMatch struct {
	Zone           string
	OrganizationID uint
	ItemType       string
}
