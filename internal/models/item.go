package models

import "time"

// Item 配送物品类型，type 全局唯一
type Item struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Type        string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"type"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`

	// 关联
	Pricings []Pricing `gorm:"foreignKey:ItemID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"pricing,omitempty"`
}

// TableName 指定表名
func (Item) TableName() string {
	return "items"
}
