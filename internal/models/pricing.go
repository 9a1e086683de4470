package models

import "time"

// Pricing 按区域的计价规则
//
// BaseDistance 单位为米，PricePerKM 为每公里价格，FixPrice 为起步价。
type Pricing struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	OrganizationID uint      `gorm:"not null;index:idx_pricing_lookup,priority:2" json:"organizationId"`
	ItemID         uint      `gorm:"not null;index" json:"itemId"`
	Zone           string    `gorm:"type:varchar(255);not null;index:idx_pricing_lookup,priority:1" json:"zone"`
	BaseDistance   float64   `gorm:"not null" json:"baseDistance"`
	PricePerKM     float64   `gorm:"column:price_per_km;not null" json:"pricePerKM"`
	FixPrice       float64   `gorm:"not null" json:"fixPrice"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`

	// 关联
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Item         *Item         `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// TableName 指定表名
func (Pricing) TableName() string {
	return "pricings"
}
